package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies well above the largest legal payload
// (a 1000-character note plus field overhead).
const maxBodyBytes = 8 << 10

const (
	msgContentType     = "Content-Type must be application/json"
	msgPayloadTooLarge = "Request payload too large"
	msgMalformedJSON   = "Invalid JSON in request body"
)

// decodeJSONBody parses a JSON request body into dst. The returned error's
// message is the exact client-facing string. malformedMsg covers syntax
// errors; typeMsg covers well-formed JSON with wrong field types.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}, malformedMsg, typeMsg string) error {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return errors.New(msgContentType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New(msgPayloadTooLarge)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return errors.New(typeMsg)
		}
		return errors.New(malformedMsg)
	}
	return nil
}

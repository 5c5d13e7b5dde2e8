// Package respond writes the uniform {success, data|error|message} JSON
// envelope used by every endpoint.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the wire shape of mood API responses.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []string    `json:"details,omitempty"`
}

// InternalErrorMessage is the only text a 500 ever carries; internal error
// detail never reaches clients.
const InternalErrorMessage = "Internal server error"

// WriteJSON writes an arbitrary JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// Success writes {success:true, data:...}.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

// Message writes {success:true, message:...} for delete/confirmation shapes.
func Message(w http.ResponseWriter, statusCode int, msg string) {
	WriteJSON(w, statusCode, Envelope{Success: true, Message: msg})
}

// Error writes {success:false, error:...}.
func Error(w http.ResponseWriter, statusCode int, msg string) {
	WriteJSON(w, statusCode, Envelope{Success: false, Error: msg})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, msg string) { Error(w, http.StatusBadRequest, msg) }

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, msg string) { Error(w, http.StatusUnauthorized, msg) }

// Forbidden writes a 403 response.
func Forbidden(w http.ResponseWriter, msg string) { Error(w, http.StatusForbidden, msg) }

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, msg string) { Error(w, http.StatusNotFound, msg) }

// Conflict writes a 409 response.
func Conflict(w http.ResponseWriter, msg string) { Error(w, http.StatusConflict, msg) }

// InternalError writes a 500 response with the generic message.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, InternalErrorMessage)
}

package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// GeminiSuggester calls the Gemini generateContent REST API.
type GeminiSuggester struct {
	client *resty.Client
	model  string
	apiKey string
}

// NewGeminiSuggester creates a suggester against the given API base URL
// (https://generativelanguage.googleapis.com for the real service).
func NewGeminiSuggester(baseURL, apiKey, model string) *GeminiSuggester {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &GeminiSuggester{client: c, model: model, apiKey: apiKey}
}

// request/response structs for JSON binding

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// SuggestActivities asks the model for three activities for the given mood
// and returns the raw suggestion text.
func (g *GeminiSuggester) SuggestActivities(ctx context.Context, mood string) (string, error) {
	prompt := fmt.Sprintf("Suggest 3 activities to help someone who feels: %s. Only return the activity suggestions as a list.", mood)
	reqBody := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(&reqBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

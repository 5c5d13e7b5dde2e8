package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/moodtrack/moodtrack/internal/api/respond"
	"github.com/moodtrack/moodtrack/internal/suggest"
)

// suggestErrorText is sent verbatim so the frontend can render it in the
// suggestion list without special-casing failures.
const suggestErrorText = "Error fetching suggestions from Gemini AI."

// ActivitiesHandler proxies mood descriptions to the AI suggestion provider.
type ActivitiesHandler struct {
	suggester suggest.Suggester
}

func NewActivitiesHandler(s suggest.Suggester) *ActivitiesHandler {
	return &ActivitiesHandler{suggester: s}
}

// Suggest handles POST /api/activities.
func (h *ActivitiesHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Mood string `json:"mood"`
	}
	if err := decodeJSONBody(w, r, &in, msgMalformedJSON, msgMalformedJSON); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	text, err := h.suggester.SuggestActivities(r.Context(), in.Mood)
	if err != nil {
		log.Error().Err(err).Msg("activity suggestion failed")
		respond.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"suggestions": []string{suggestErrorText},
		})
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": text,
	})
}

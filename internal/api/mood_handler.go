package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/moodtrack/moodtrack/internal/api/respond"
	"github.com/moodtrack/moodtrack/internal/api/validate"
	"github.com/moodtrack/moodtrack/internal/auth"
	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/services"
)

const (
	msgEntryNotFound  = "Mood entry not found"
	msgAccessDenied   = "Access denied"
	msgEntryDeleted   = "Mood entry deleted successfully"
	msgNoUpdateFields = "At least one field must be provided for update"
)

// MoodHandler is the thin transport layer over the mood service. Per request
// the flow is fixed: auth (middleware) -> validate -> service -> respond.
type MoodHandler struct {
	svc *services.MoodService
}

func NewMoodHandler(svc *services.MoodService) *MoodHandler {
	return &MoodHandler{svc: svc}
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		// only reachable if the route was registered without the auth middleware
		log.Error().Str("path", r.URL.Path).Msg("no identity on authenticated route")
		respond.InternalError(w)
		return "", false
	}
	return id.UserID, true
}

// writeServiceError maps service failures to the error taxonomy exactly once.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.NotFound(w, msgEntryNotFound)
	case errors.Is(err, model.ErrForbidden):
		respond.Forbidden(w, msgAccessDenied)
	default:
		log.Error().Err(err).Msg("mood service failure")
		respond.InternalError(w)
	}
}

// List handles GET /api/mood.
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	start, end, err := validate.DateRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	moodFilter, err := validate.MoodTypeFilter(q.Get("moodType"))
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	page, limit, err := validate.Pagination(q.Get("page"), q.Get("limit"))
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	entries, err := h.svc.GetMoodEntries(r.Context(), userID, start, end, moodFilter, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*model.MoodEntry{}
	}
	respond.Success(w, http.StatusOK, entries)
}

// Create handles POST /api/mood.
func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var in struct {
		Mood string  `json:"mood"`
		Note *string `json:"note"`
	}
	if err := decodeJSONBody(w, r, &in, msgMalformedJSON, msgMalformedJSON); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	mood, err := validate.MoodType(in.Mood)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var note *string
	if in.Note != nil {
		clean, err := validate.Note(*in.Note)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		note = &clean
	}

	entry, err := h.svc.CreateMoodEntry(r.Context(), userID, mood, note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.Success(w, http.StatusCreated, entry)
}

// GetByID handles GET /api/mood/{id}.
func (h *MoodHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	entryID := mux.Vars(r)["id"]
	if err := validate.EntryID(entryID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	entry, err := h.svc.GetMoodEntryById(r.Context(), entryID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.Success(w, http.StatusOK, entry)
}

// Update handles PUT /api/mood/{id}.
func (h *MoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	entryID := mux.Vars(r)["id"]
	if err := validate.EntryID(entryID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var in struct {
		Mood *string `json:"mood"`
		Note *string `json:"note"`
	}
	if err := decodeJSONBody(w, r, &in, msgMalformedJSON, msgMalformedJSON); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	if in.Mood == nil && in.Note == nil {
		respond.BadRequest(w, msgNoUpdateFields)
		return
	}

	var mood *model.MoodType
	if in.Mood != nil {
		m, err := validate.MoodType(*in.Mood)
		if err != nil {
			respond.BadRequest(w, validate.ErrInvalidMoodType.Error())
			return
		}
		mood = &m
	}

	var note *string
	if in.Note != nil {
		clean, err := validate.Note(*in.Note)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		note = &clean
	}

	entry, err := h.svc.UpdateMoodEntry(r.Context(), entryID, userID, mood, note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.Success(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/mood/{id}.
func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	entryID := mux.Vars(r)["id"]
	if err := validate.EntryID(entryID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.DeleteMoodEntry(r.Context(), entryID, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, msgEntryDeleted)
}

// Analytics handles GET /api/mood/analytics.
func (h *MoodHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	start, end, err := validate.DateRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	analytics, err := h.svc.GetMoodAnalytics(r.Context(), userID, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.Success(w, http.StatusOK, analytics)
}

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/moodtrack/moodtrack/internal/api/respond"
	"github.com/moodtrack/moodtrack/internal/api/validate"
	"github.com/moodtrack/moodtrack/internal/model"
	"github.com/moodtrack/moodtrack/internal/services"
)

const (
	msgOnboardingStarted   = "Onboarding started successfully"
	msgOnboardingCompleted = "Onboarding completed successfully"
	msgStepUpdated         = "Step updated successfully"
	msgEmailExists         = "User with this email already exists"
	msgNoSteps             = "User not found or no onboarding steps"
	msgStepNotFound        = "Onboarding step not found"
	msgUserNotFound        = "User not found"
	msgInvalidJSONFormat   = "Invalid JSON format"
	msgInvalidDataTypes    = "Invalid data types"
)

// OnboardingHandler serves the signup wizard endpoints. The wizard runs
// before a session exists, so none of these routes sit behind auth.
type OnboardingHandler struct {
	svc *services.OnboardingService
}

func NewOnboardingHandler(svc *services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

// Start handles POST /api/onboarding/start.
func (h *OnboardingHandler) Start(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Company   string `json:"company"`
		Role      string `json:"role"`
	}
	if err := decodeJSONBody(w, r, &in, msgInvalidJSONFormat, msgInvalidDataTypes); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Company = strings.TrimSpace(in.Company)
	in.Role = strings.TrimSpace(in.Role)

	if missing := missingFields(in.Email, in.FirstName, in.LastName); len(missing) > 0 {
		respond.WriteJSON(w, http.StatusBadRequest, respond.Envelope{
			Success: false,
			Error:   validate.ErrMissingFields.Error(),
			Details: missing,
		})
		return
	}
	if err := validate.OnboardingFields(in.Email, in.FirstName, in.LastName, in.Company, in.Role); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	user, err := h.svc.Start(r.Context(), services.StartOnboardingRequest{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Company:   in.Company,
		Role:      in.Role,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			respond.Conflict(w, msgEmailExists)
			return
		}
		log.Error().Err(err).Msg("start onboarding failed")
		respond.InternalError(w)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
		"message": msgOnboardingStarted,
	})
}

// Steps handles GET /api/onboarding/steps/{userId}.
func (h *OnboardingHandler) Steps(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	steps, err := h.svc.Steps(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.NotFound(w, msgNoSteps)
			return
		}
		log.Error().Err(err).Msg("list onboarding steps failed")
		respond.InternalError(w)
		return
	}

	completed := 0
	for _, s := range steps {
		if s.Completed {
			completed++
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"steps":          steps,
		"completedSteps": completed,
		"totalSteps":     len(steps),
	})
}

// UpdateStep handles PUT /api/onboarding/step/{stepId}.
func (h *OnboardingHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	stepID := mux.Vars(r)["stepId"]
	if err := validate.StepID(stepID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var in struct {
		Completed *bool                  `json:"completed"`
		Data      map[string]interface{} `json:"data"`
	}
	if err := decodeJSONBody(w, r, &in, msgInvalidJSONFormat, msgInvalidDataTypes); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	step, err := h.svc.UpdateStep(r.Context(), stepID, in.Completed, in.Data)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.NotFound(w, msgStepNotFound)
			return
		}
		log.Error().Err(err).Msg("update onboarding step failed")
		respond.InternalError(w)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"step":    step,
		"message": msgStepUpdated,
	})
}

// Complete handles POST /api/onboarding/complete/{userId}.
func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	user, err := h.svc.Complete(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.NotFound(w, msgUserNotFound)
			return
		}
		log.Error().Err(err).Msg("complete onboarding failed")
		respond.InternalError(w)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"message": msgOnboardingCompleted,
	})
}

func missingFields(email, firstName, lastName string) []string {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if firstName == "" {
		missing = append(missing, "firstName")
	}
	if lastName == "" {
		missing = append(missing, "lastName")
	}
	return missing
}

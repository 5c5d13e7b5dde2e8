package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/moodtrack/moodtrack/internal/api/middleware"
	"github.com/moodtrack/moodtrack/internal/auth"
	"github.com/moodtrack/moodtrack/internal/services"
	"github.com/moodtrack/moodtrack/internal/store"
	"github.com/moodtrack/moodtrack/internal/suggest"
)

// Deps carries everything the router needs. main builds these once on startup.
type Deps struct {
	Auth       auth.Authenticator
	Store      store.Store
	Moods      *services.MoodService
	Onboarding *services.OnboardingService
	Suggester  suggest.Suggester
	CORSOrigin string
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(deps Deps) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(middleware.Recovery)
	router.Use(middleware.RequestLog)
	router.Use(middleware.CORS(deps.CORSOrigin))

	healthHandler := NewHealthHandler(deps.Store)
	moodHandler := NewMoodHandler(deps.Moods)
	onboardingHandler := NewOnboardingHandler(deps.Onboarding)
	activitiesHandler := NewActivitiesHandler(deps.Suggester)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello from backend!"))
	}).Methods("GET")

	// Preflight requests match here; the CORS middleware writes the headers
	// and short-circuits before this handler runs.
	router.PathPrefix("/api/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	// Mood endpoints require a bearer token. /analytics is registered before
	// /{id} so it never matches as an entry id.
	moods := router.PathPrefix("/api/mood").Subrouter()
	moods.Use(middleware.Auth(deps.Auth))
	moods.HandleFunc("/analytics", moodHandler.Analytics).Methods("GET")
	moods.HandleFunc("", moodHandler.List).Methods("GET")
	moods.HandleFunc("", moodHandler.Create).Methods("POST")
	moods.HandleFunc("/{id}", moodHandler.GetByID).Methods("GET")
	moods.HandleFunc("/{id}", moodHandler.Update).Methods("PUT")
	moods.HandleFunc("/{id}", moodHandler.Delete).Methods("DELETE")

	// Onboarding endpoints (pre-session, no auth)
	router.HandleFunc("/api/onboarding/start", onboardingHandler.Start).Methods("POST")
	router.HandleFunc("/api/onboarding/steps/{userId}", onboardingHandler.Steps).Methods("GET")
	router.HandleFunc("/api/onboarding/step/{stepId}", onboardingHandler.UpdateStep).Methods("PUT")
	router.HandleFunc("/api/onboarding/complete/{userId}", onboardingHandler.Complete).Methods("POST")

	// Activity suggestions
	router.HandleFunc("/api/activities", activitiesHandler.Suggest).Methods("POST")

	return router
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/calebmoore/people-api/internal/events"
	eventsHandler "github.com/calebmoore/people-api/internal/handler/events"
	personHandler "github.com/calebmoore/people-api/internal/handler/person"
	middlewarePkg "github.com/calebmoore/people-api/internal/middleware"
	personModel "github.com/calebmoore/people-api/internal/model/person"
	"github.com/calebmoore/people-api/pkg/utils"
)

// NewRouter wires HTTP routes to the person store. The broker may be nil
// when the change feed is disabled.
func NewRouter(store personModel.Store, broker *events.Broker, defaultTake int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	people := personHandler.New(store, broker, defaultTake)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth)

		people.RegisterRoutes(api)

		if broker != nil {
			feed := eventsHandler.New(broker)
			feed.RegisterRoutes(api)
		}
	})

	return r
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

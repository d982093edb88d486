package handlers

import (
	"github.com/rohanthewiz/rweb"
	"sam/actions"
	"sam/db"
	"sam/router"
)

// Deps holds the shared collaborators every handler reaches for
type Deps struct {
	Orchestrator *router.Orchestrator
	Sessions     *db.SessionStore
	PlanRuns     *db.PlanRunStore
	Schema       map[string]actions.Spec
}

var deps *Deps

// SetupRoutes configures all HTTP routes for the server
func SetupRoutes(s *rweb.Server, d *Deps) {
	deps = d

	// Root endpoint - serves the chat UI
	s.Get("/", rootHandler)

	// API endpoints
	s.Get("/api/app", appInfoHandler)
	s.Get("/api/actions", listActionsHandler)
	s.Get("/api/session", listSessionsHandler)
	s.Post("/api/session", createSessionHandler)
	s.Delete("/api/session/:id", deleteSessionHandler)
	s.Post("/api/session/:id/message", chatHandler)
	s.Get("/api/session/:id/messages", getSessionMessagesHandler)

	// Plan run inspection
	s.Get("/api/plans", listPlanRunsHandler)
	s.Get("/api/plans/:id", getPlanRunHandler)
}

// rootHandler serves the chat UI
func rootHandler(c rweb.Context) error {
	return UIHandler(c)
}

// appInfoHandler returns application information
func appInfoHandler(c rweb.Context) error {
	return c.WriteJSON(map[string]interface{}{
		"name":    "sam",
		"version": "0.5.0",
		"status":  "ok",
	})
}

// listActionsHandler returns the action vocabulary with argument requirements
func listActionsHandler(c rweb.Context) error {
	return c.WriteJSON(deps.Schema)
}

package main

import (
	"log"
	"time"

	"github.com/rohanthewiz/rweb"
	"sam/actions"
	"sam/config"
	"sam/db"
	"sam/handlers"
	"sam/platform/shutdown"
	"sam/providers"
	"sam/router"
)

func main() {
	config.Initialize()
	cfg := config.Get()

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	shutdown.Register(func(time.Duration) error {
		return database.Close()
	})

	events := db.NewEventStore(database)
	notes := db.NewNoteStore(database)
	todos := db.NewTodoStore(database)
	sessions := db.NewSessionStore(database)
	planRuns := db.NewPlanRunStore(database)

	registry := actions.DefaultRegistry(events, notes, todos)
	llm := providers.NewClient()
	orchestrator := router.NewOrchestrator(llm, registry, planRuns)

	// Create a new rweb server with options
	s := rweb.NewServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: true,
	})

	// Add middleware for request logging
	s.Use(rweb.RequestInfo)

	handlers.SetupRoutes(s, &handlers.Deps{
		Orchestrator: orchestrator,
		Sessions:     sessions,
		PlanRuns:     planRuns,
		Schema:       registry.Schema(),
	})

	done := make(chan struct{})
	shutdown.Watch(done)

	go func() {
		log.Printf("Starting SAM server on %s", cfg.Address)
		if err := s.Run(); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-done
}

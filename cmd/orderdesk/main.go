package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ginzalimited/orderdesk/internal/config"
	"github.com/ginzalimited/orderdesk/internal/directory"
	"github.com/ginzalimited/orderdesk/internal/draft"
	"github.com/ginzalimited/orderdesk/internal/engine"
	"github.com/ginzalimited/orderdesk/internal/events"
	engineHttp "github.com/ginzalimited/orderdesk/internal/handler/http"
	"github.com/ginzalimited/orderdesk/internal/history"
	"github.com/ginzalimited/orderdesk/internal/session"
	"github.com/ginzalimited/orderdesk/internal/sink"
)

func main() {
	log.Println("Starting orderdesk...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := directory.Connect(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	draftStore, err := draft.NewPebbleStore(cfg.Draft.Dir)
	if err != nil {
		log.Fatalf("Failed to open draft store: %v", err)
	}

	historyLog, err := history.Open(cfg.History.Dir)
	if err != nil {
		log.Fatalf("Failed to open history log: %v", err)
	}

	sheetsSink, err := sink.NewSheetsSink(context.Background(), cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
	if err != nil {
		log.Fatalf("Failed to create sheets sink: %v", err)
	}

	var publisher events.Publisher
	var natsConn *events.NATSPublisher
	if cfg.NATS.URL != "" {
		natsConn, err = events.Connect(cfg.NATS.URL)
		if err != nil {
			log.Printf("WARN: failed to connect to NATS, events disabled: %v", err)
		} else {
			publisher = natsConn
		}
	}

	eng := engine.New(engine.Deps{
		Drafts:         draftStore,
		Sink:           sheetsSink,
		History:        historyLog,
		Customers:      directory.NewPostgresCustomerDirectory(db),
		Products:       directory.NewPostgresProductDirectory(db),
		Roster:         directory.NewPostgresRosterDirectory(db),
		Session:        session.NewPostgresLookup(db, cfg.Session.OperatorID),
		Publisher:      publisher,
		LookupDebounce: cfg.App.LookupDebounce,
	})
	if err := eng.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	engineHttp.NewEngineHandler(eng).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not listen on %s: %v\n", cfg.App.Port, err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server Shutdown Failed:%+v", err)
	}

	if natsConn != nil {
		natsConn.Close()
	}
	if err := historyLog.Close(); err != nil {
		log.Printf("WARN: failed to close history log: %v", err)
	}
	if err := draftStore.Close(); err != nil {
		log.Printf("WARN: failed to close draft store: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("WARN: failed to close database: %v", err)
	}

	log.Println("HTTP server stopped.")

	log.Println("Orderdesk stopped gracefully.")
}

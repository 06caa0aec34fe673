package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/pm-tools/project-pulse/pkg/handlers/project"
	pulsemiddleware "github.com/pm-tools/project-pulse/pkg/server/middleware"
	"github.com/pm-tools/project-pulse/pkg/services/analytics"
	"github.com/pm-tools/project-pulse/pkg/services/snapshot"
	snapshotstore "github.com/pm-tools/project-pulse/pkg/store/sqlite/snapshot"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Explorer  analytics.Explorer
	Snapshots snapshot.Controller
	History   snapshotstore.Store
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	projectHandler := handlers.NewHandler(
		config.Dependencies.Explorer,
		config.Dependencies.Snapshots,
		config.Dependencies.History,
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(pulsemiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{project}/analytics", projectHandler.GetProjectAnalytics)
		r.Post("/projects/{project}/snapshots", projectHandler.StartSnapshots)
		r.Get("/projects/{project}/snapshots/latest", projectHandler.LatestSnapshot)
		r.Delete("/projects/{project}/snapshots", projectHandler.CancelSnapshots)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

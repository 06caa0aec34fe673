package project

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/pm-tools/project-pulse/pkg/adapters"
	"github.com/pm-tools/project-pulse/pkg/models/api"
	"github.com/pm-tools/project-pulse/pkg/services/analytics"
	"github.com/pm-tools/project-pulse/pkg/services/snapshot"
	snapshotstore "github.com/pm-tools/project-pulse/pkg/store/sqlite/snapshot"
)

type Handler struct {
	explorer  analytics.Explorer
	snapshots snapshot.Controller
	history   snapshotstore.Store
}

func NewHandler(
	explorer analytics.Explorer,
	snapshots snapshot.Controller,
	history snapshotstore.Store,
) *Handler {
	return &Handler{
		explorer:  explorer,
		snapshots: snapshots,
		history:   history,
	}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	projects, err := h.explorer.ListProjects(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list projects")
		http.Error(w, "failed to list projects", http.StatusBadGateway)
		return
	}

	response := []api.Project{}
	for _, p := range projects {
		response = append(response, adapters.MapProjectDomainToApi(p))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode projects")
	}
}

func (h *Handler) GetProjectAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	project := chi.URLParam(r, "project")

	result, err := h.explorer.GetProjectAnalytics(ctx, project)
	if err != nil {
		logger.Error().
			Err(err).
			Str("project", project).
			Msg("failed to assemble project analytics")
		http.Error(w, "failed to assemble project analytics", http.StatusBadGateway)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapProjectAnalyticsDomainToApi(*result)); err != nil {
		logger.Error().
			Err(err).
			Str("project", project).
			Msg("failed to encode project analytics")
	}
}

func (h *Handler) StartSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	project := chi.URLParam(r, "project")

	// Runners outlive the request; detach from its cancellation.
	err := h.snapshots.Start(context.WithoutCancel(ctx), project)
	if err != nil {
		logger.Warn().Err(err).Str("project", project).Msg("failed to start snapshot runner")
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) LatestSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	project := chi.URLParam(r, "project")

	snap, err := h.history.Latest(ctx, project)
	if err != nil {
		logger.Error().Err(err).Str("project", project).Msg("failed to load latest snapshot")
		http.Error(w, "failed to load latest snapshot", http.StatusInternalServerError)
		return
	}
	if snap == nil {
		http.Error(w, "no snapshots captured", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(snap.Payload); err != nil {
		logger.Error().Err(err).Str("project", project).Msg("failed to write snapshot payload")
	}
}

func (h *Handler) CancelSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	project := chi.URLParam(r, "project")

	err := h.snapshots.Cancel(ctx, project)
	if err != nil {
		logger.Warn().Err(err).Str("project", project).Msg("failed to cancel snapshot runner")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

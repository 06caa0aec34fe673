package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/pm-tools/project-pulse/pkg/adapters"
	"github.com/pm-tools/project-pulse/pkg/models/store"
	"github.com/pm-tools/project-pulse/pkg/services/analytics"
	snapshotstore "github.com/pm-tools/project-pulse/pkg/store/sqlite/snapshot"
)

type RunnerConfig struct {
	RefreshInterval time.Duration
	Retention       time.Duration
}

// Runner periodically re-assembles a project's analytics and persists the
// serialized result, pruning snapshots older than the retention window.
type Runner struct {
	project  string
	explorer analytics.Explorer
	store    snapshotstore.Store
	done     chan struct{}
	config   RunnerConfig
}

func NewRunner(project string, explorer analytics.Explorer, store snapshotstore.Store) *Runner {
	return &Runner{
		project:  project,
		explorer: explorer,
		store:    store,
		done:     make(chan struct{}),
		config: RunnerConfig{
			RefreshInterval: 15 * time.Minute,
			Retention:       30 * 24 * time.Hour,
		},
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("project", r.project).Logger()
	ctx = logger.WithContext(ctx)
	defer close(r.done)

	ticker := time.NewTicker(r.config.RefreshInterval)
	defer ticker.Stop()

	// Capture once at start, then on every tick.
	r.capture(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("snapshot runner stopped")
			return
		case <-ticker.C:
			r.capture(ctx)
		}
	}
}

func (r *Runner) capture(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	result, err := r.explorer.GetProjectAnalytics(ctx, r.project)
	if err != nil {
		logger.Error().Err(err).Msg("failed to assemble analytics for snapshot")
		return
	}

	payload, err := json.Marshal(adapters.MapProjectAnalyticsDomainToApi(*result))
	if err != nil {
		logger.Error().Err(err).Msg("failed to serialize analytics snapshot")
		return
	}

	err = r.store.Add(ctx, store.AnalyticsSnapshot{
		Project:    r.project,
		CapturedAt: result.GeneratedAt,
		Payload:    payload,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to store analytics snapshot")
		return
	}

	pruned, err := r.store.Prune(ctx, r.project, result.GeneratedAt.Add(-r.config.Retention))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to prune old snapshots")
	} else if pruned > 0 {
		logger.Debug().Int64("pruned", pruned).Msg("pruned old snapshots")
	}
}

package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/pm-tools/project-pulse/pkg/services/analytics"
	"github.com/pm-tools/project-pulse/pkg/store/sqlite/snapshot"
)

// Controller manages one background snapshot runner per project.
type Controller interface {
	Start(ctx context.Context, project string) error
	Cancel(ctx context.Context, project string) error
}

type runnerDescriptor struct {
	cancelFunc context.CancelFunc
	runner     *Runner
}

type DefaultController struct {
	explorer analytics.Explorer
	store    snapshot.Store

	mu      sync.Mutex
	runners map[string]runnerDescriptor
}

func NewController(explorer analytics.Explorer, store snapshot.Store) *DefaultController {
	return &DefaultController{
		explorer: explorer,
		store:    store,
		runners:  make(map[string]runnerDescriptor),
	}
}

func (ctrl *DefaultController) Start(ctx context.Context, project string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if _, ok := ctrl.runners[project]; ok {
		return fmt.Errorf("snapshot runner already active: %s", project)
	}

	ctx, cancel := context.WithCancel(ctx)
	runner := NewRunner(project, ctrl.explorer, ctrl.store)
	ctrl.runners[project] = runnerDescriptor{
		cancelFunc: cancel,
		runner:     runner,
	}

	go runner.Run(ctx)
	return nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, project string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.runners[project]
	if !ok {
		return fmt.Errorf("snapshot runner not active: %s", project)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.runners, project)
	return nil
}

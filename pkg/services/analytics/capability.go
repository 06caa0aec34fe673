package analytics

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/pm-tools/project-pulse/pkg/store/erp"
)

// CapabilityGate answers whether the ERP exposes the extended timesheet
// surface for the active company. The answer is probed once, cached until
// Reset, and concurrent first callers share a single in-flight probe.
type CapabilityGate struct {
	client erp.Client

	group singleflight.Group

	mu    sync.RWMutex
	known bool
	value bool
}

func NewCapabilityGate(client erp.Client) *CapabilityGate {
	return &CapabilityGate{client: client}
}

// IsAvailable reports whether the extended surface exists. Any probe
// failure, including not-found, caches false; a cancelled probe leaves the
// state unknown so a later caller re-probes.
func (g *CapabilityGate) IsAvailable(ctx context.Context) bool {
	g.mu.RLock()
	if g.known {
		value := g.value
		g.mu.RUnlock()
		return value
	}
	g.mu.RUnlock()

	result, err, _ := g.group.Do("probe", func() (interface{}, error) {
		err := g.client.Probe(ctx)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return false, err
		}

		available := err == nil
		g.mu.Lock()
		g.known = true
		g.value = available
		g.mu.Unlock()
		return available, nil
	})
	if err != nil {
		return false
	}
	return result.(bool)
}

// Reset forgets the cached answer. Called when the active ERP profile or
// company changes.
func (g *CapabilityGate) Reset() {
	g.mu.Lock()
	g.known = false
	g.value = false
	g.mu.Unlock()
}

package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingClient counts probes without the bookkeeping of testify mocks,
// since the dedup test needs 50 goroutines hitting it at once.
type countingClient struct {
	mockClient
	probes   atomic.Int64
	probeErr error
	delay    time.Duration
}

func (c *countingClient) Probe(ctx context.Context) error {
	c.probes.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.probeErr
}

func TestCapabilityGate_ConcurrentCallersShareOneProbe(t *testing.T) {
	client := &countingClient{delay: 20 * time.Millisecond}
	gate := NewCapabilityGate(client)

	const callers = 50
	results := make([]bool, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = gate.IsAvailable(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), client.probes.Load(), "all callers must share one probe")
	for _, available := range results {
		assert.True(t, available)
	}
}

func TestCapabilityGate_FailureCachesFalse(t *testing.T) {
	client := &countingClient{probeErr: errors.New("boom")}
	gate := NewCapabilityGate(client)

	assert.False(t, gate.IsAvailable(context.Background()))
	assert.False(t, gate.IsAvailable(context.Background()))
	assert.Equal(t, int64(1), client.probes.Load(), "failure must be cached, not re-probed")
}

func TestCapabilityGate_ResetTriggersReprobe(t *testing.T) {
	client := &countingClient{}
	gate := NewCapabilityGate(client)

	assert.True(t, gate.IsAvailable(context.Background()))
	gate.Reset()
	assert.True(t, gate.IsAvailable(context.Background()))
	assert.Equal(t, int64(2), client.probes.Load())
}

func TestCapabilityGate_CancelledProbeLeavesStateUnknown(t *testing.T) {
	client := &countingClient{delay: 50 * time.Millisecond}
	gate := NewCapabilityGate(client)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	assert.False(t, gate.IsAvailable(ctx), "cancelled probe reports unavailable to its caller")

	// A fresh caller re-probes and gets the real answer.
	assert.True(t, gate.IsAvailable(context.Background()))
	assert.Equal(t, int64(2), client.probes.Load())
}

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/flight-emissions/internal/emissions"
	"github.com/i474232898/flight-emissions/internal/store"
)

type countingProber struct {
	calls atomic.Int32
}

func (p *countingProber) Name() string { return "counting" }

func (p *countingProber) Probe(_ context.Context) error {
	p.calls.Add(1)
	return nil
}

func TestSchedulerDisabled(t *testing.T) {
	s := New(0, emissions.NewService(nil, nil, nil))
	require.NoError(t, s.Start())
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestSchedulerRunsProbes(t *testing.T) {
	prober := &countingProber{}
	st := store.NewMemoryStore(5, 0)
	svc := emissions.NewService(nil, nil, st, prober)

	s := New(50*time.Millisecond, svc)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return len(svc.ProbeStatuses()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, s.IsRunning())
	assert.GreaterOrEqual(t, prober.calls.Load(), int32(1))
}

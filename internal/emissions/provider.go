package emissions

import (
	"context"
	"errors"
)

// ErrNoProbeHistory is returned when no probe has been recorded for a provider.
var ErrNoProbeHistory = errors.New("no probe status for provider")

// PastEstimator abstracts the past-flights emissions service.
// Implementations validate and adapt the query before any network call.
type PastEstimator interface {
	Name() string
	EstimatePast(ctx context.Context, q PastQuery) (PastEstimate, error)
}

// FutureEstimator abstracts the future-flights emissions service.
type FutureEstimator interface {
	Name() string
	EstimateFuture(ctx context.Context, q FutureQuery) (FutureEstimate, error)
}

// Prober checks that an upstream service can be reached.
type Prober interface {
	Name() string
	Probe(ctx context.Context) error
}

// ProbeStore is the contract the in-memory probe status store must satisfy.
type ProbeStore interface {
	SaveStatus(status ProbeStatus)
	Latest() []ProbeStatus
	History(provider string) ([]ProbeStatus, error)
}

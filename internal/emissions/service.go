package emissions

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service runs the past and future pipelines and records upstream probes.
// The two pipelines share nothing beyond the Service value itself.
type Service struct {
	past   PastEstimator
	future FutureEstimator
	probes []Prober
	store  ProbeStore
	newID  func() string
}

// NewService creates a new Service. store may be nil when probing is not used.
func NewService(past PastEstimator, future FutureEstimator, store ProbeStore, probes ...Prober) *Service {
	return &Service{
		past:   past,
		future: future,
		probes: probes,
		store:  store,
		newID:  func() string { return uuid.NewString() },
	}
}

// EstimatePast submits a past-flight query and returns a past-tagged Result.
func (s *Service) EstimatePast(ctx context.Context, q PastQuery) (Result, error) {
	if s.past == nil {
		return Result{}, &ConfigurationError{Message: "Past flights service is not configured"}
	}

	id := s.newID()
	log.Printf("DEBUG: past submission %s route=%v class=%q travelers=%d", id, q.Route(), q.CabinClass, q.Travelers)

	est, err := s.past.EstimatePast(ctx, q)
	if err != nil {
		log.Printf("ERROR: past submission %s failed (%s): %v", id, ErrorKind(err), err)
		return Result{}, err
	}

	res := NormalizePast(q, est)
	return Result{Kind: KindPast, ID: id, Past: &res}, nil
}

// EstimateFuture submits a future-flight query and returns a future-tagged Result.
func (s *Service) EstimateFuture(ctx context.Context, q FutureQuery) (Result, error) {
	if s.future == nil {
		return Result{}, &ConfigurationError{Message: "Future flights service is not configured"}
	}

	id := s.newID()
	log.Printf("DEBUG: future submission %s flight=%s%s %s->%s", id, q.CarrierCode, q.FlightNumber, q.Origin, q.Destination)

	est, err := s.future.EstimateFuture(ctx, q)
	if err != nil {
		log.Printf("ERROR: future submission %s failed (%s): %v", id, ErrorKind(err), err)
		return Result{}, err
	}

	res := NormalizeFuture(q, est)
	return Result{Kind: KindFuture, ID: id, Future: &res}, nil
}

// ProbeAll probes every upstream concurrently and stores each outcome.
func (s *Service) ProbeAll(ctx context.Context) error {
	if len(s.probes) == 0 {
		return fmt.Errorf("no upstream probes configured")
	}
	if s.store == nil {
		return fmt.Errorf("no probe store configured")
	}

	var wg sync.WaitGroup
	for _, p := range s.probes {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			start := time.Now()
			err := p.Probe(ctx)
			status := ProbeStatus{
				Provider:  p.Name(),
				Timestamp: start.UTC(),
				Reachable: err == nil,
				LatencyMs: float64(time.Since(start).Microseconds()) / 1000,
			}
			if err != nil {
				status.Error = err.Error()
				log.Printf("probe %s failed: %v", p.Name(), err)
			}
			s.store.SaveStatus(status)
		}()
	}
	wg.Wait()
	return nil
}

// ProbeHistory returns every retained probe outcome for one upstream, oldest first.
func (s *Service) ProbeHistory(provider string) ([]ProbeStatus, error) {
	if s.store == nil {
		return nil, ErrNoProbeHistory
	}
	return s.store.History(provider)
}

// ProbeStatuses returns the latest probe outcome per upstream.
func (s *Service) ProbeStatuses() []ProbeStatus {
	if s.store == nil {
		return nil
	}
	return s.store.Latest()
}

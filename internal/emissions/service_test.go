package emissions

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePast struct {
	est   PastEstimate
	err   error
	calls int
}

func (f *fakePast) Name() string { return "fake-past" }

func (f *fakePast) EstimatePast(_ context.Context, _ PastQuery) (PastEstimate, error) {
	f.calls++
	return f.est, f.err
}

type fakeFuture struct {
	est FutureEstimate
	err error
}

func (f *fakeFuture) Name() string { return "fake-future" }

func (f *fakeFuture) EstimateFuture(_ context.Context, _ FutureQuery) (FutureEstimate, error) {
	return f.est, f.err
}

type fakeProber struct {
	name string
	err  error
}

func (p fakeProber) Name() string                  { return p.name }
func (p fakeProber) Probe(_ context.Context) error { return p.err }

type fakeStore struct {
	mu       sync.Mutex
	statuses []ProbeStatus
}

func (s *fakeStore) SaveStatus(status ProbeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
}

func (s *fakeStore) Latest() []ProbeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ProbeStatus(nil), s.statuses...)
}

func (s *fakeStore) History(provider string) ([]ProbeStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ProbeStatus
	for _, st := range s.statuses {
		if st.Provider == provider {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoProbeHistory
	}
	return out, nil
}

func TestServiceEstimatePastTagsResult(t *testing.T) {
	past := &fakePast{est: PastEstimate{TotalEmissionsKg: 200, PerPassengerKg: 100}}
	svc := NewService(past, &fakeFuture{}, nil)

	res, err := svc.EstimatePast(context.Background(), PastQuery{Origin: "OSL", Destination: "CPH", Travelers: 2})
	require.NoError(t, err)
	assert.Equal(t, KindPast, res.Kind)
	assert.NotEmpty(t, res.ID)
	require.NotNil(t, res.Past)
	assert.Nil(t, res.Future)
	assert.Equal(t, 200.0, res.Past.TotalEmissionsKg)
}

func TestServiceEstimateFutureTagsResult(t *testing.T) {
	future := &fakeFuture{est: FutureEstimate{GramsPerPassenger: ClassEmissions{Economy: 50000}}}
	svc := NewService(&fakePast{}, future, nil)

	res, err := svc.EstimateFuture(context.Background(), FutureQuery{Travelers: 2, RadiativeForcing: true})
	require.NoError(t, err)
	assert.Equal(t, KindFuture, res.Kind)
	require.NotNil(t, res.Future)
	assert.Nil(t, res.Past)
	assert.Equal(t, 200.0, res.Future.Displayed.TotalKg.Economy)
}

func TestServicePipelinesAreIndependent(t *testing.T) {
	past := &fakePast{err: &UpstreamError{Message: "Failed to calculate emissions", StatusCode: 500}}
	future := &fakeFuture{est: FutureEstimate{GramsPerPassenger: ClassEmissions{Economy: 1000}}}
	svc := NewService(past, future, nil)

	_, err := svc.EstimatePast(context.Background(), PastQuery{})
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Failed to calculate emissions", ue.Message)

	res, err := svc.EstimateFuture(context.Background(), FutureQuery{Travelers: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Future.Displayed.PerPassengerKg.Economy)
}

func TestServiceUniqueSubmissionIDs(t *testing.T) {
	svc := NewService(&fakePast{}, &fakeFuture{}, nil)
	a, err := svc.EstimatePast(context.Background(), PastQuery{})
	require.NoError(t, err)
	b, err := svc.EstimatePast(context.Background(), PastQuery{})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestServiceMissingPipeline(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.EstimateFuture(context.Background(), FutureQuery{})
	assert.Equal(t, "configuration", ErrorKind(err))
}

func TestServiceProbeAll(t *testing.T) {
	st := &fakeStore{}
	svc := NewService(nil, nil, st,
		fakeProber{name: "up"},
		fakeProber{name: "down", err: errors.New("dial tcp: refused")},
	)

	require.NoError(t, svc.ProbeAll(context.Background()))

	statuses := svc.ProbeStatuses()
	require.Len(t, statuses, 2)
	byName := map[string]ProbeStatus{}
	for _, s := range statuses {
		byName[s.Provider] = s
	}
	assert.True(t, byName["up"].Reachable)
	assert.False(t, byName["down"].Reachable)
	assert.Contains(t, byName["down"].Error, "refused")
}

func TestServiceProbeHistory(t *testing.T) {
	svc := NewService(nil, nil, &fakeStore{}, fakeProber{name: "up"})
	require.NoError(t, svc.ProbeAll(context.Background()))
	require.NoError(t, svc.ProbeAll(context.Background()))

	history, err := svc.ProbeHistory("up")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = svc.ProbeHistory("missing")
	assert.ErrorIs(t, err, ErrNoProbeHistory)

	_, err = NewService(nil, nil, nil).ProbeHistory("up")
	assert.ErrorIs(t, err, ErrNoProbeHistory)
}

func TestServiceProbeAllWithoutProbes(t *testing.T) {
	svc := NewService(nil, nil, &fakeStore{})
	assert.Error(t, svc.ProbeAll(context.Background()))
	assert.Empty(t, svc.ProbeStatuses())
}

package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureEstimate(economy float64) FutureEstimate {
	return FutureEstimate{
		Flight: FlightDescriptor{Origin: "OSL", Destination: "CPH", CarrierCode: "SK", FlightNumber: 123},
		GramsPerPassenger: ClassEmissions{
			Economy:        economy,
			PremiumEconomy: economy * 1.5,
			Business:       economy * 3,
			First:          economy * 4,
		},
	}
}

func TestNormalizeFutureRadiativeForcing(t *testing.T) {
	for _, tc := range []struct {
		economy   float64
		travelers int
	}{
		{50000, 2},
		{12345, 1},
		{98765.4, 7},
		{0, 3},
	} {
		on := NormalizeFuture(FutureQuery{Travelers: tc.travelers, RadiativeForcing: true}, futureEstimate(tc.economy))
		off := NormalizeFuture(FutureQuery{Travelers: tc.travelers, RadiativeForcing: false}, futureEstimate(tc.economy))

		e, n := tc.economy, float64(tc.travelers)
		assert.InDelta(t, 2*e*n/1000, on.Displayed.TotalKg.Economy, 1e-9)
		assert.InDelta(t, e*n/1000, off.Displayed.TotalKg.Economy, 1e-9)

		// The figure shown alongside is the forcing-off figure, bit for bit.
		assert.Equal(t, off.Displayed, on.WithoutRadiativeForcing)
		assert.Equal(t, off.Displayed, off.WithoutRadiativeForcing)
	}
}

func TestNormalizeFutureExample(t *testing.T) {
	q := FutureQuery{CarrierCode: "SK", FlightNumber: "123", Origin: "OSL", Destination: "CPH", Travelers: 2, RadiativeForcing: true}
	r := NormalizeFuture(q, futureEstimate(50000))

	assert.Equal(t, 100.0, r.Displayed.PerPassengerKg.Economy)
	assert.Equal(t, 200.0, r.Displayed.TotalKg.Economy)
	assert.Equal(t, 50.0, r.WithoutRadiativeForcing.PerPassengerKg.Economy)
	assert.Equal(t, 100.0, r.WithoutRadiativeForcing.TotalKg.Economy)
	assert.Equal(t, 300.0, r.Displayed.PerPassengerKg.Business)
	assert.Equal(t, 50000.0, r.GramsPerPassenger.Economy)
	assert.Equal(t, 2, r.Travelers)
}

func TestNormalizeFutureClampsTravelers(t *testing.T) {
	r := NormalizeFuture(FutureQuery{Travelers: 0}, futureEstimate(1000))
	assert.Equal(t, 1, r.Travelers)
	assert.Equal(t, 1.0, r.Displayed.TotalKg.Economy)
}

func TestApplyFutureRadiativeForcingOff(t *testing.T) {
	f := FutureFigures{PerPassengerKg: ClassEmissions{Economy: 3}, TotalKg: ClassEmissions{Economy: 6}}
	assert.Equal(t, f, ApplyFutureRadiativeForcing(f, false))

	on := ApplyFutureRadiativeForcing(f, true)
	assert.Equal(t, 6.0, on.PerPassengerKg.Economy)
	assert.Equal(t, 12.0, on.TotalKg.Economy)
}

func TestNormalizePastDoesNotRescale(t *testing.T) {
	q := PastQuery{Origin: "OSL", Destination: "CPH", Travelers: 2, RadiativeForcing: true}
	est := PastEstimate{
		TotalEmissionsKg:                   200,
		PerPassengerKg:                     100,
		TotalDistanceKm:                    500,
		EmissionsWithoutRadiativeForcingKg: 100,
		Legs: []RouteLeg{
			{Origin: "OSL", Destination: "CPH", Found: true, EmissionsKg: ClassEmissions{Economy: 100, Business: 290}},
		},
	}
	r := NormalizePast(q, est)

	assert.Equal(t, 200.0, r.TotalEmissionsKg)
	assert.Equal(t, 100.0, r.PerPassengerKg)
	assert.Equal(t, 500.0, r.TotalDistanceKm)
	require.Len(t, r.Legs, 1)
	assert.Equal(t, 290.0, r.LegTotalsKg.Business)

	without, shown := PastWithoutRadiativeForcing(r)
	assert.True(t, shown)
	assert.Equal(t, 100.0, without)

	q.RadiativeForcing = false
	_, shown = PastWithoutRadiativeForcing(NormalizePast(q, est))
	assert.False(t, shown)
}

func TestNormalizePastNilLegs(t *testing.T) {
	r := NormalizePast(PastQuery{}, PastEstimate{})
	assert.NotNil(t, r.Legs)
	assert.Empty(t, r.Legs)
}

func TestSumLegEmissions(t *testing.T) {
	legs := []RouteLeg{
		{Found: true, EmissionsKg: ClassEmissions{Economy: 10, First: 40}},
		{Found: false, EmissionsKg: ClassEmissions{Economy: 5, First: 20}},
	}
	assert.Equal(t, ClassEmissions{Economy: 15, First: 60}, SumLegEmissions(legs))
	assert.Equal(t, 1, UnmatchedLegs(legs))
}

package emissions

// FutureRadiativeForcingFactor is the fixed multiplier applied client-side to
// future-flight figures when radiative forcing is requested.
const FutureRadiativeForcingFactor = 2.0

const gramsPerKilogram = 1000.0

// NormalizePast maps a past-flights estimate into a PastResult.
// Figures are already kilograms and radiative forcing was applied upstream,
// so nothing is rescaled here. Traveler count is not applied either: the
// service reports totals and per-passenger figures itself.
func NormalizePast(q PastQuery, est PastEstimate) PastResult {
	legs := est.Legs
	if legs == nil {
		legs = []RouteLeg{}
	}
	return PastResult{
		Query:                              q,
		TotalEmissionsKg:                   est.TotalEmissionsKg,
		PerPassengerKg:                     est.PerPassengerKg,
		TotalDistanceKm:                    est.TotalDistanceKm,
		EmissionsWithoutRadiativeForcingKg: est.EmissionsWithoutRadiativeForcingKg,
		Legs:                               legs,
		LegTotalsKg:                        SumLegEmissions(legs),
	}
}

// PastWithoutRadiativeForcing returns the upstream-computed figure without
// radiative forcing, and whether it should be surfaced. It is surfaced only
// when the query asked for radiative forcing.
func PastWithoutRadiativeForcing(r PastResult) (float64, bool) {
	return r.EmissionsWithoutRadiativeForcingKg, r.Query.RadiativeForcing
}

// NormalizeFuture converts grams per passenger into kilogram figures for the
// query's travelers, and applies the client-side radiative forcing factor.
func NormalizeFuture(q FutureQuery, est FutureEstimate) FutureResult {
	travelers := q.Travelers
	if travelers < 1 {
		travelers = 1
	}

	g := est.GramsPerPassenger
	base := FutureFigures{
		PerPassengerKg: ClassEmissions{
			Economy:        g.Economy / gramsPerKilogram,
			PremiumEconomy: g.PremiumEconomy / gramsPerKilogram,
			Business:       g.Business / gramsPerKilogram,
			First:          g.First / gramsPerKilogram,
		},
	}
	base.TotalKg = base.PerPassengerKg.Scale(float64(travelers))

	return FutureResult{
		Query:                   q,
		Flight:                  est.Flight,
		GramsPerPassenger:       est.GramsPerPassenger,
		Travelers:               travelers,
		RadiativeForcing:        q.RadiativeForcing,
		Displayed:               ApplyFutureRadiativeForcing(base, q.RadiativeForcing),
		WithoutRadiativeForcing: base,
	}
}

// ApplyFutureRadiativeForcing multiplies every future-flight figure by
// FutureRadiativeForcingFactor when include is set.
func ApplyFutureRadiativeForcing(f FutureFigures, include bool) FutureFigures {
	if !include {
		return f
	}
	return FutureFigures{
		PerPassengerKg: f.PerPassengerKg.Scale(FutureRadiativeForcingFactor),
		TotalKg:        f.TotalKg.Scale(FutureRadiativeForcingFactor),
	}
}

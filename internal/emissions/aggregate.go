package emissions

// SumLegEmissions adds up the per-class figures of every leg.
// Legs the upstream could not match to a scheduled flight are included;
// their figures are distance-based estimates.
func SumLegEmissions(legs []RouteLeg) ClassEmissions {
	var total ClassEmissions
	for _, leg := range legs {
		total = total.Add(leg.EmissionsKg)
	}
	return total
}

// UnmatchedLegs counts legs that fell back to a distance-based estimate.
func UnmatchedLegs(legs []RouteLeg) int {
	n := 0
	for _, leg := range legs {
		if !leg.Found {
			n++
		}
	}
	return n
}

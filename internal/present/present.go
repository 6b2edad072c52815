// Package present renders normalized emissions results into view documents.
package present

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

// Figure is one labelled value in a view.
type Figure struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// WithoutRadiativeForcing is the companion figure shown when forcing is on.
	WithoutRadiativeForcing string `json:"withoutRadiativeForcing,omitempty"`
}

// Leg is the rendered form of one route leg.
type Leg struct {
	Route     string `json:"route"`
	Flight    string `json:"flight,omitempty"`
	Matched   bool   `json:"matched"`
	Emissions string `json:"emissions"`
}

// View is what the client displays for one result.
type View struct {
	Kind        emissions.ResultKind `json:"kind"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Figures     []Figure             `json:"figures"`
	Legs        []Leg                `json:"legs,omitempty"`
	Details     []string             `json:"details"`
}

// FormatKg renders a kilogram figure, e.g. "1,234.50 kg CO₂e".
func FormatKg(kg float64) string {
	return humanize.FormatFloat("#,###.##", kg) + " kg CO₂e"
}

// FormatKm renders a distance, e.g. "1,235 km".
func FormatKm(km float64) string {
	return humanize.FormatFloat("#,###.", km) + " km"
}

// Render dispatches on the result kind.
func Render(r emissions.Result) (View, error) {
	switch r.Kind {
	case emissions.KindPast:
		if r.Past == nil {
			return View{}, fmt.Errorf("past result %s has no past payload", r.ID)
		}
		return renderPast(*r.Past), nil
	case emissions.KindFuture:
		if r.Future == nil {
			return View{}, fmt.Errorf("future result %s has no future payload", r.ID)
		}
		return renderFuture(*r.Future), nil
	default:
		return View{}, fmt.Errorf("unknown result kind %q", r.Kind)
	}
}

func tripSuffix(t emissions.FlightType) string {
	if t == emissions.FlightTypeReturn {
		return " (Return)"
	}
	return " (One way)"
}

func renderPast(r emissions.PastResult) View {
	q := r.Query

	desc := q.Origin + " → "
	if q.Via != "" {
		desc += q.Via + " → "
	}
	desc += q.Destination + tripSuffix(q.FlightType)

	figures := []Figure{
		{Label: "Total Emissions", Value: FormatKg(r.TotalEmissionsKg)},
		{Label: "Per Passenger", Value: FormatKg(r.PerPassengerKg)},
		{Label: "Total Distance", Value: FormatKm(r.TotalDistanceKm)},
	}
	if without, ok := emissions.PastWithoutRadiativeForcing(r); ok {
		figures = append(figures, Figure{Label: "Without Radiative Forcing", Value: FormatKg(without)})
	}

	legs := make([]Leg, 0, len(r.Legs))
	for _, l := range r.Legs {
		leg := Leg{
			Route:   l.Origin + " → " + l.Destination,
			Matched: l.Found,
		}
		if l.CarrierCode != "" {
			leg.Flight = fmt.Sprintf("%s %d", l.CarrierCode, l.FlightNumber)
		}
		if kg, ok := l.EmissionsKg.For(q.CabinClass); ok {
			leg.Emissions = FormatKg(kg)
		}
		legs = append(legs, leg)
	}

	details := []string{
		"Class: " + string(q.CabinClass),
		"Departure: " + q.DepartureDate,
		fmt.Sprintf("Travelers: %d", q.Travelers),
	}
	if n := emissions.UnmatchedLegs(r.Legs); n > 0 {
		details = append(details, fmt.Sprintf("Estimated from distance: %d of %d legs", n, len(r.Legs)))
	}

	return View{
		Kind:        emissions.KindPast,
		Title:       "Flight Emissions Results",
		Description: desc,
		Figures:     figures,
		Legs:        legs,
		Details:     details,
	}
}

func renderFuture(r emissions.FutureResult) View {
	classes := []struct {
		label string
		class emissions.CabinClass
	}{
		{"First Class", emissions.CabinFirst},
		{"Business Class", emissions.CabinBusiness},
		{"Premium Economy", emissions.CabinPremiumEconomy},
		{"Economy", emissions.CabinEconomy},
	}

	figures := make([]Figure, 0, 2*len(classes))
	groups := []struct {
		suffix         string
		shown, without emissions.ClassEmissions
	}{
		{"per passenger", r.Displayed.PerPassengerKg, r.WithoutRadiativeForcing.PerPassengerKg},
		{fmt.Sprintf("total for %d travelers", r.Travelers), r.Displayed.TotalKg, r.WithoutRadiativeForcing.TotalKg},
	}
	for _, g := range groups {
		for _, c := range classes {
			v, _ := g.shown.For(c.class)
			f := Figure{Label: c.label + ", " + g.suffix, Value: FormatKg(v)}
			if r.RadiativeForcing {
				w, _ := g.without.For(c.class)
				f.WithoutRadiativeForcing = FormatKg(w)
			}
			figures = append(figures, f)
		}
	}

	details := []string{
		fmt.Sprintf("Flight: %s %d", r.Flight.CarrierCode, r.Flight.FlightNumber),
		"Departure: " + r.Flight.DepartureDate.String(),
		fmt.Sprintf("Travelers: %d", r.Travelers),
	}
	if r.RadiativeForcing {
		details = append(details, fmt.Sprintf("Radiative forcing factor: %g", emissions.FutureRadiativeForcingFactor))
	}
	if r.Query.Notes != "" {
		details = append(details, "Notes: "+r.Query.Notes)
	}

	return View{
		Kind:        emissions.KindFuture,
		Title:       "Future Flight Emissions Estimate",
		Description: r.Flight.Origin + " → " + r.Flight.Destination + tripSuffix(r.Query.FlightType),
		Figures:     figures,
		Details:     details,
	}
}

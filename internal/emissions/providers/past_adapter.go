package providers

import (
	"strings"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

// PastRequest is the wire request of the past-flights service.
type PastRequest struct {
	Class         string   `json:"class" validate:"oneof=economy premium_economy business first"`
	DepartureDate string   `json:"departureDate" validate:"required,datetime=2006-01-02"`
	IRFactor      bool     `json:"ir_factor"`
	Return        bool     `json:"return"`
	Route         []string `json:"route" validate:"min=2"`
	Travelers     int      `json:"travelers" validate:"gte=1"`
}

// pastEndpoints checks both ends of the trip before the route is assembled,
// so that a stopover never stands in for a missing origin.
type pastEndpoints struct {
	Origin      string `validate:"required"`
	Destination string `validate:"required"`
}

var pastEndpointRules = []emissions.FieldRule{
	{Field: "Origin", Message: "Origin and destination airports are required"},
	{Field: "Destination", Message: "Origin and destination airports are required"},
}

// Precedence matters: a request missing both airports and a date reports the airports.
var pastRequestRules = []emissions.FieldRule{
	{Field: "Route", Message: "Origin and destination airports are required"},
	{Field: "DepartureDate", Tag: "required", Message: "Departure date is required"},
	{Field: "DepartureDate", Tag: "datetime", Message: "Departure date must be a valid date (YYYY-MM-DD)"},
	{Field: "Travelers", Message: "Number of travelers must be at least 1"},
	{Field: "Class", Message: "Cabin class must be one of Economy, Premium Economy, Business or First"},
}

// BuildPastRequest adapts a past query into the past-flights wire request.
func BuildPastRequest(q emissions.PastQuery) (PastRequest, error) {
	origin, destination := strings.TrimSpace(q.Origin), strings.TrimSpace(q.Destination)
	if err := validate.Struct(pastEndpoints{Origin: origin, Destination: destination}); err != nil {
		return PastRequest{}, emissions.ValidationFromFieldErrors(err, pastEndpointRules)
	}

	req := PastRequest{
		Class:         q.CabinClass.WireName(),
		DepartureDate: strings.TrimSpace(q.DepartureDate),
		IRFactor:      q.RadiativeForcing,
		Return:        q.FlightType == emissions.FlightTypeReturn,
		Route:         q.Route(),
		Travelers:     q.Travelers,
	}

	if err := validate.Struct(req); err != nil {
		return PastRequest{}, emissions.ValidationFromFieldErrors(err, pastRequestRules)
	}

	if strings.EqualFold(origin, destination) {
		return PastRequest{}, &emissions.ValidationError{Message: "Origin and destination must be different airports"}
	}

	return req, nil
}

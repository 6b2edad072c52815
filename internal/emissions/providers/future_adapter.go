package providers

import (
	"strconv"
	"time"

	"github.com/i474232898/flight-emissions/internal/common"
	"github.com/i474232898/flight-emissions/internal/emissions"
)

// FutureRequest is the wire request of the future-flights service.
// The service accepts a batch, but a submission only ever carries one flight.
type FutureRequest struct {
	Flights []FutureFlight `json:"flights"`
}

// FutureFlight is one flight in a FutureRequest.
type FutureFlight struct {
	Origin               string              `json:"origin"`
	Destination          string              `json:"destination"`
	OperatingCarrierCode string              `json:"operatingCarrierCode"`
	FlightNumber         int                 `json:"flightNumber"`
	DepartureDate        emissions.DateParts `json:"departureDate"`
}

// futureInput is the future query as validated before adaptation.
type futureInput struct {
	Origin        string `validate:"required"`
	Destination   string `validate:"required"`
	CarrierCode   string `validate:"required"`
	FlightNumber  string `validate:"required,numeric"`
	DepartureDate string `validate:"required,datetime=2006-01-02"`
}

var futureInputRules = []emissions.FieldRule{
	{Field: "Origin", Message: "Origin and destination airports are required"},
	{Field: "Destination", Message: "Origin and destination airports are required"},
	{Field: "CarrierCode", Message: "Airline code is required"},
	{Field: "FlightNumber", Tag: "required", Message: "Flight number is required"},
	{Field: "FlightNumber", Tag: "numeric", Message: "Flight number must be a positive integer"},
	{Field: "DepartureDate", Tag: "required", Message: "Departure date is required"},
	{Field: "DepartureDate", Tag: "datetime", Message: "Departure date must be a valid date (YYYY-MM-DD)"},
}

// BuildFutureRequest adapts a future query into the future-flights wire request.
// now decides what "today" is; a departure date before today is rejected.
func BuildFutureRequest(q emissions.FutureQuery, now time.Time) (FutureRequest, error) {
	in := futureInput{
		Origin:        common.UpperCode(q.Origin),
		Destination:   common.UpperCode(q.Destination),
		CarrierCode:   common.UpperCode(q.CarrierCode),
		FlightNumber:  q.FlightNumber,
		DepartureDate: q.DepartureDate,
	}
	if err := validate.Struct(in); err != nil {
		return FutureRequest{}, emissions.ValidationFromFieldErrors(err, futureInputRules)
	}

	if in.Origin == in.Destination {
		return FutureRequest{}, &emissions.ValidationError{Message: "Origin and destination must be different airports"}
	}

	number, err := strconv.Atoi(in.FlightNumber)
	if err != nil || number < 1 {
		return FutureRequest{}, &emissions.ValidationError{Message: "Flight number must be a positive integer"}
	}

	loc := now.Location()
	date, err := time.ParseInLocation(emissions.DateLayout, in.DepartureDate, loc)
	if err != nil {
		return FutureRequest{}, &emissions.ValidationError{Message: "Departure date must be a valid date (YYYY-MM-DD)"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if date.Before(today) {
		return FutureRequest{}, &emissions.ValidationError{Message: "Departure date must be in the future"}
	}

	return FutureRequest{
		Flights: []FutureFlight{{
			Origin:               in.Origin,
			Destination:          in.Destination,
			OperatingCarrierCode: in.CarrierCode,
			FlightNumber:         number,
			DepartureDate:        emissions.DatePartsOf(date),
		}},
	}, nil
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/flight-emissions/internal/emissions"
	"github.com/i474232898/flight-emissions/internal/present"
)

var validate = validator.New()

// RegisterHealth serves /health with the latest upstream probe outcomes.
// ?history=<provider> returns that provider's retained probe history instead.
// probing reports whether the probe scheduler is active; it may be nil.
func RegisterHealth(app *fiber.App, service *emissions.Service, probing func() bool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if provider := c.Query("history"); provider != "" {
			history, err := service.ProbeHistory(provider)
			if errors.Is(err, emissions.ErrNoProbeHistory) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			if err != nil {
				return err
			}
			return c.JSON(fiber.Map{
				"provider": provider,
				"history":  history,
			})
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "flight-emissions",
			"probing":   probing != nil && probing(),
			"upstreams": service.ProbeStatuses(),
		})
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *emissions.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/forms", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"past":         emissions.DefaultPastQuery(),
			"future":       emissions.DefaultFutureQuery(),
			"airports":     emissions.Airports,
			"airlines":     emissions.Airlines,
			"flightTypes":  emissions.FlightTypes,
			"cabinClasses": emissions.CabinClasses,
		})
	})

	v1.Post("/emissions/past", func(c *fiber.Ctx) error {
		var form pastForm
		if err := bindForm(c, &form, pastFormRules); err != nil {
			return writeError(c, err)
		}

		result, err := service.EstimatePast(c.UserContext(), form.toQuery())
		if err != nil {
			return writeError(c, err)
		}
		return writeResult(c, result)
	})

	v1.Post("/emissions/future", func(c *fiber.Ctx) error {
		var form futureForm
		if err := bindForm(c, &form, futureFormRules); err != nil {
			return writeError(c, err)
		}

		result, err := service.EstimateFuture(c.UserContext(), form.toQuery())
		if err != nil {
			return writeError(c, err)
		}
		return writeResult(c, result)
	})
}

func bindForm(c *fiber.Ctx, form any, rules []emissions.FieldRule) error {
	if err := c.BodyParser(form); err != nil {
		return &emissions.ValidationError{Message: "Request body must be a JSON form"}
	}
	if err := validate.Struct(form); err != nil {
		return emissions.ValidationFromFieldErrors(err, rules)
	}
	return nil
}

func writeResult(c *fiber.Ctx, result emissions.Result) error {
	view, err := present.Render(result)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render emissions result")
	}
	return c.JSON(fiber.Map{
		"kind":   result.Kind,
		"id":     result.ID,
		"result": result,
		"view":   view,
	})
}

// writeError surfaces the error message verbatim with a status matching its kind.
func writeError(c *fiber.Ctx, err error) error {
	kind := emissions.ErrorKind(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case "validation":
		status = fiber.StatusBadRequest
	case "configuration":
		status = fiber.StatusServiceUnavailable
	case "transport", "upstream":
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"kind":    kind,
		"message": err.Error(),
	})
}

// travelerInput accepts the traveler count as a JSON number or string,
// exactly as a form field would hold it before being committed.
type travelerInput string

func (t *travelerInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = travelerInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("travelers must be a number")
	}
	*t = travelerInput(n.String())
	return nil
}

// pastForm is the body of a past-flight submission. Omitted optional fields keep their defaults.
type pastForm struct {
	FlightType      *string        `json:"flightType" validate:"omitempty,oneof='One way' Return"`
	From            string         `json:"from" validate:"omitempty,alpha,len=3"`
	Via             string         `json:"via" validate:"omitempty,alpha,len=3"`
	Destination     string         `json:"destination" validate:"omitempty,alpha,len=3"`
	FlightClass     *string        `json:"flightClass"`
	Travelers       *travelerInput `json:"travelers"`
	RadiativeFactor *bool          `json:"radiativeFactor"`
	DepartureDate   string         `json:"departureDate"`
}

var pastFormRules = []emissions.FieldRule{
	{Field: "FlightType", Message: "Flight type must be \"One way\" or \"Return\""},
	{Field: "From", Message: "Origin must be a 3-letter airport code"},
	{Field: "Via", Message: "Stopover must be a 3-letter airport code"},
	{Field: "Destination", Message: "Destination must be a 3-letter airport code"},
}

func (f pastForm) toQuery() emissions.PastQuery {
	q := emissions.DefaultPastQuery().
		WithOrigin(f.From).
		WithVia(f.Via).
		WithDestination(f.Destination).
		WithDepartureDate(f.DepartureDate)
	if f.FlightType != nil {
		q = q.WithFlightType(emissions.FlightType(*f.FlightType))
	}
	if f.FlightClass != nil {
		q = q.WithCabinClass(emissions.CabinClass(*f.FlightClass))
	}
	if f.Travelers != nil {
		q = q.WithTravelers(string(*f.Travelers))
	}
	if f.RadiativeFactor != nil {
		q = q.WithRadiativeForcing(*f.RadiativeFactor)
	}
	return q
}

// futureForm is the body of a future-flight submission.
type futureForm struct {
	FlightType           *string        `json:"flightType" validate:"omitempty,oneof='One way' Return"`
	Origin               string         `json:"origin" validate:"omitempty,alpha,len=3"`
	Destination          string         `json:"destination" validate:"omitempty,alpha,len=3"`
	OperatingCarrierCode string         `json:"operatingCarrierCode" validate:"omitempty,alphanum,len=2"`
	FlightNumber         flightNumber   `json:"flightNumber"`
	DepartureDate        string         `json:"departureDate"`
	Travelers            *travelerInput `json:"travelers"`
	RadiativeFactor      *bool          `json:"radiativeFactor"`
	Notes                string         `json:"notes" validate:"max=500"`
}

var futureFormRules = []emissions.FieldRule{
	{Field: "FlightType", Message: "Flight type must be \"One way\" or \"Return\""},
	{Field: "Origin", Message: "Origin must be a 3-letter airport code"},
	{Field: "Destination", Message: "Destination must be a 3-letter airport code"},
	{Field: "OperatingCarrierCode", Message: "Airline code must be a 2-character IATA code"},
	{Field: "Notes", Message: "Notes must be at most 500 characters"},
}

func (f futureForm) toQuery() emissions.FutureQuery {
	q := emissions.DefaultFutureQuery().
		WithOrigin(f.Origin).
		WithDestination(f.Destination).
		WithCarrierCode(f.OperatingCarrierCode).
		WithFlightNumber(string(f.FlightNumber)).
		WithDepartureDate(f.DepartureDate).
		WithNotes(f.Notes)
	if f.FlightType != nil {
		q = q.WithFlightType(emissions.FlightType(*f.FlightType))
	}
	if f.Travelers != nil {
		q = q.WithTravelers(string(*f.Travelers))
	}
	if f.RadiativeFactor != nil {
		q = q.WithRadiativeForcing(*f.RadiativeFactor)
	}
	return q
}

// flightNumber accepts the flight number as a JSON string or integer.
type flightNumber string

func (n *flightNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = flightNumber(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errors.New("flightNumber must be an integer")
	}
	*n = flightNumber(strconv.FormatInt(v, 10))
	return nil
}

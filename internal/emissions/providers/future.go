package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

// DefaultTravelBaseURL is the future-flights (Travel Impact Model) API used when none is configured.
const DefaultTravelBaseURL = "https://travelimpactmodel.googleapis.com/v1"

const (
	futureFallbackMessage = "Failed to get flight emissions data"
	futureNoDataMessage   = "No flight emissions data returned from the API"
	missingKeyMessage     = "Google Travel API key is not configured. Please set TRAVEL_API_KEY in your environment variables."
)

// FutureFlightsProvider implements emissions.FutureEstimator for the future-flights service.
type FutureFlightsProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	probes  *gobreaker.CircuitBreaker
	now     func() time.Time
}

// NewFutureFlightsProvider creates a provider. An empty baseURL selects DefaultTravelBaseURL.
// An empty apiKey leaves the provider permanently failing with a ConfigurationError.
func NewFutureFlightsProvider(client *http.Client, apiKey, baseURL string) *FutureFlightsProvider {
	if baseURL == "" {
		baseURL = DefaultTravelBaseURL
	}
	return &FutureFlightsProvider{
		name:    "future-flights",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newBreaker("future-flights"),
		probes:  newBreaker("future-flights-probe"),
		now:     time.Now,
	}
}

// WithClock overrides the clock used to decide what "today" is.
func (p *FutureFlightsProvider) WithClock(now func() time.Time) *FutureFlightsProvider {
	p.now = now
	return p
}

func (p *FutureFlightsProvider) Name() string {
	return p.name
}

type futureResponse struct {
	FlightEmissions []struct {
		Flight struct {
			Origin               string              `json:"origin"`
			Destination          string              `json:"destination"`
			OperatingCarrierCode string              `json:"operatingCarrierCode"`
			FlightNumber         int                 `json:"flightNumber"`
			DepartureDate        emissions.DateParts `json:"departureDate"`
		} `json:"flight"`
		EmissionsGramsPerPax struct {
			First          float64 `json:"first"`
			Business       float64 `json:"business"`
			PremiumEconomy float64 `json:"premiumEconomy"`
			Economy        float64 `json:"economy"`
		} `json:"emissionsGramsPerPax"`
	} `json:"flightEmissions"`
}

// EstimateFuture checks the API key, validates and adapts q, then asks the future-flights service
// for the emissions of that single flight.
func (p *FutureFlightsProvider) EstimateFuture(ctx context.Context, q emissions.FutureQuery) (emissions.FutureEstimate, error) {
	if p.apiKey == "" {
		return emissions.FutureEstimate{}, &emissions.ConfigurationError{Message: missingKeyMessage}
	}

	body, err := BuildFutureRequest(q, p.now())
	if err != nil {
		return emissions.FutureEstimate{}, err
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	u := p.baseURL + "/flights:computeFlightEmissions?" + values.Encode()

	req, err := newJSONRequest(u, body)
	if err != nil {
		return emissions.FutureEstimate{}, err
	}

	resp, err := do(ctx, p.client, p.circuit, req)
	if err != nil {
		return emissions.FutureEstimate{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return emissions.FutureEstimate{}, upstreamFailure(resp, futureErrorMessage, futureFallbackMessage)
	}

	var payload futureResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return emissions.FutureEstimate{}, &emissions.UpstreamError{Message: futureFallbackMessage, StatusCode: resp.StatusCode}
	}
	if len(payload.FlightEmissions) == 0 {
		return emissions.FutureEstimate{}, &emissions.UpstreamError{Message: futureNoDataMessage, StatusCode: resp.StatusCode}
	}

	// Only one flight is ever submitted; later entries are not expected.
	first := payload.FlightEmissions[0]
	return emissions.FutureEstimate{
		Flight: emissions.FlightDescriptor{
			Origin:        first.Flight.Origin,
			Destination:   first.Flight.Destination,
			CarrierCode:   first.Flight.OperatingCarrierCode,
			FlightNumber:  first.Flight.FlightNumber,
			DepartureDate: first.Flight.DepartureDate,
		},
		GramsPerPassenger: emissions.ClassEmissions{
			Economy:        first.EmissionsGramsPerPax.Economy,
			PremiumEconomy: first.EmissionsGramsPerPax.PremiumEconomy,
			Business:       first.EmissionsGramsPerPax.Business,
			First:          first.EmissionsGramsPerPax.First,
		},
	}, nil
}

// Probe reports a ConfigurationError without a key, otherwise checks the API host answers.
func (p *FutureFlightsProvider) Probe(ctx context.Context) error {
	if p.apiKey == "" {
		return &emissions.ConfigurationError{Message: missingKeyMessage}
	}
	return probe(ctx, p.client, p.probes, p.baseURL)
}

func futureErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}

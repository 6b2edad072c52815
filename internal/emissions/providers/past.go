package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

// DefaultPastBaseURL is the past-flights service used when none is configured.
const DefaultPastBaseURL = "https://flights-by-scope321.replit.app/api/v1"

const pastFallbackMessage = "Failed to calculate emissions"

// PastFlightsProvider implements emissions.PastEstimator for the past-flights service.
type PastFlightsProvider struct {
	name    string
	baseURL string
	token   string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	probes  *gobreaker.CircuitBreaker
}

// NewPastFlightsProvider creates a provider. An empty baseURL selects DefaultPastBaseURL;
// a non-empty token is sent as a bearer credential.
func NewPastFlightsProvider(client *http.Client, baseURL, token string) *PastFlightsProvider {
	if baseURL == "" {
		baseURL = DefaultPastBaseURL
	}
	return &PastFlightsProvider{
		name:    "past-flights",
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		circuit: newBreaker("past-flights"),
		probes:  newBreaker("past-flights-probe"),
	}
}

func (p *PastFlightsProvider) Name() string {
	return p.name
}

type pastResponse struct {
	TotalEmissions float64           `json:"total_emissions"`
	TotalDistance  float64           `json:"total_distance"`
	PerPassenger   float64           `json:"per_passenger"`
	WithoutIR      float64           `json:"without_ir"`
	RouteDetails   []pastRouteDetail `json:"route_details"`
}

type pastRouteDetail struct {
	Origin               string              `json:"origin"`
	Destination          string              `json:"destination"`
	OperatingCarrierCode string              `json:"operatingCarrierCode"`
	FlightNumber         int                 `json:"flightNumber"`
	DepartureDate        emissions.DateParts `json:"departureDate"`
	Travelers            int                 `json:"travelers"`
	Date                 string              `json:"date"`
	Found                bool                `json:"found"`
	Emissions            struct {
		Economy        float64 `json:"economy"`
		PremiumEconomy float64 `json:"premium_economy"`
		Business       float64 `json:"business"`
		First          float64 `json:"first"`
	} `json:"emissions"`
}

// EstimatePast validates and adapts q, then posts it to the past-flights service.
func (p *PastFlightsProvider) EstimatePast(ctx context.Context, q emissions.PastQuery) (emissions.PastEstimate, error) {
	body, err := BuildPastRequest(q)
	if err != nil {
		return emissions.PastEstimate{}, err
	}

	req, err := newJSONRequest(p.baseURL+"/calculate-emissions", body)
	if err != nil {
		return emissions.PastEstimate{}, err
	}
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := do(ctx, p.client, p.circuit, req)
	if err != nil {
		return emissions.PastEstimate{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return emissions.PastEstimate{}, upstreamFailure(resp, pastErrorMessage, pastFallbackMessage)
	}

	var payload pastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return emissions.PastEstimate{}, &emissions.UpstreamError{Message: pastFallbackMessage, StatusCode: resp.StatusCode}
	}

	return mapPastResponse(payload), nil
}

// Probe checks the past-flights service answers HTTP at all.
func (p *PastFlightsProvider) Probe(ctx context.Context) error {
	return probe(ctx, p.client, p.probes, p.baseURL)
}

func pastErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func mapPastResponse(payload pastResponse) emissions.PastEstimate {
	legs := make([]emissions.RouteLeg, 0, len(payload.RouteDetails))
	for _, d := range payload.RouteDetails {
		legs = append(legs, emissions.RouteLeg{
			Origin:        d.Origin,
			Destination:   d.Destination,
			CarrierCode:   d.OperatingCarrierCode,
			FlightNumber:  d.FlightNumber,
			DepartureDate: d.DepartureDate,
			Travelers:     d.Travelers,
			Date:          d.Date,
			Found:         d.Found,
			EmissionsKg: emissions.ClassEmissions{
				Economy:        d.Emissions.Economy,
				PremiumEconomy: d.Emissions.PremiumEconomy,
				Business:       d.Emissions.Business,
				First:          d.Emissions.First,
			},
		})
	}

	return emissions.PastEstimate{
		TotalEmissionsKg:                   payload.TotalEmissions,
		PerPassengerKg:                     payload.PerPassenger,
		TotalDistanceKm:                    payload.TotalDistance,
		EmissionsWithoutRadiativeForcingKg: payload.WithoutIR,
		Legs:                               legs,
	}
}

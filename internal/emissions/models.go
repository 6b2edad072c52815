package emissions

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/flight-emissions/internal/common"
)

// FlightType is the trip shape selected on the form.
type FlightType string

const (
	FlightTypeOneWay FlightType = "One way"
	FlightTypeReturn FlightType = "Return"
)

// FlightTypes lists the selectable flight types in display order.
var FlightTypes = []FlightType{FlightTypeReturn, FlightTypeOneWay}

// CabinClass is a fare class as shown to the user.
type CabinClass string

const (
	CabinEconomy        CabinClass = "Economy"
	CabinPremiumEconomy CabinClass = "Premium Economy"
	CabinBusiness       CabinClass = "Business"
	CabinFirst          CabinClass = "First"
)

// CabinClasses lists the selectable cabin classes in display order.
var CabinClasses = []CabinClass{CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst}

// WireName returns the class as the past-flights service expects it:
// lower-case, spaces replaced by underscores.
func (c CabinClass) WireName() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(c))), " ", "_")
}

// ParseCabinClass matches s against the known classes, ignoring case and
// treating underscores as spaces.
func ParseCabinClass(s string) (CabinClass, bool) {
	wire := CabinClass(s).WireName()
	for _, c := range CabinClasses {
		if c.WireName() == wire {
			return c, true
		}
	}
	return CabinClass(s), false
}

// Airports and Airlines are the option lists offered by the forms.
var (
	Airports = []string{"OSL", "CPH", "MIA", "FRA", "SFO", "LHR", "CDG", "JFK", "ZRH", "BOS"}
	Airlines = []string{"AF", "LX", "SK", "LH", "BA", "DL", "UA"}
)

// DateLayout is the calendar date format accepted from the forms.
const DateLayout = "2006-01-02"

// DateParts is a calendar date split into components. Month is 1-indexed.
type DateParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DatePartsOf decomposes t into its calendar components.
func DatePartsOf(t time.Time) DateParts {
	return DateParts{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d DateParts) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// PastQuery is the input model for a flight that has already been flown.
type PastQuery struct {
	FlightType       FlightType `json:"flightType"`
	Origin           string     `json:"origin"`
	Via              string     `json:"via,omitempty"`
	Destination      string     `json:"destination"`
	CabinClass       CabinClass `json:"cabinClass"`
	Travelers        int        `json:"travelers"`
	RadiativeForcing bool       `json:"radiativeForcing"`
	DepartureDate    string     `json:"departureDate"`
}

// Route returns the non-empty airport codes among origin, via and destination, in order.
func (q PastQuery) Route() []string {
	return common.NonEmpty(q.Origin, q.Via, q.Destination)
}

// FutureQuery is the input model for a scheduled flight.
type FutureQuery struct {
	FlightType       FlightType `json:"flightType"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	CarrierCode      string     `json:"operatingCarrierCode"`
	FlightNumber     string     `json:"flightNumber"`
	DepartureDate    string     `json:"departureDate"`
	Travelers        int        `json:"travelers"`
	RadiativeForcing bool       `json:"radiativeForcing"`
	Notes            string     `json:"notes,omitempty"`
}

// ClassEmissions holds one figure per cabin class. The unit depends on context.
type ClassEmissions struct {
	Economy        float64 `json:"economy"`
	PremiumEconomy float64 `json:"premiumEconomy"`
	Business       float64 `json:"business"`
	First          float64 `json:"first"`
}

// Scale multiplies every class figure by f.
func (c ClassEmissions) Scale(f float64) ClassEmissions {
	return ClassEmissions{
		Economy:        c.Economy * f,
		PremiumEconomy: c.PremiumEconomy * f,
		Business:       c.Business * f,
		First:          c.First * f,
	}
}

// Add sums two sets of class figures.
func (c ClassEmissions) Add(o ClassEmissions) ClassEmissions {
	return ClassEmissions{
		Economy:        c.Economy + o.Economy,
		PremiumEconomy: c.PremiumEconomy + o.PremiumEconomy,
		Business:       c.Business + o.Business,
		First:          c.First + o.First,
	}
}

// For returns the figure for the given cabin class.
func (c ClassEmissions) For(class CabinClass) (float64, bool) {
	switch class {
	case CabinEconomy:
		return c.Economy, true
	case CabinPremiumEconomy:
		return c.PremiumEconomy, true
	case CabinBusiness:
		return c.Business, true
	case CabinFirst:
		return c.First, true
	default:
		return 0, false
	}
}

// RouteLeg is one flown segment as reported by the past-flights service.
type RouteLeg struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	CarrierCode   string         `json:"carrierCode"`
	FlightNumber  int            `json:"flightNumber"`
	DepartureDate DateParts      `json:"departureDate"`
	Travelers     int            `json:"travelers"`
	Date          string         `json:"date"`
	Found         bool           `json:"found"`
	EmissionsKg   ClassEmissions `json:"emissionsKg"`
}

// PastEstimate is the past-flights service response mapped out of its wire shape.
// All figures are kilograms.
type PastEstimate struct {
	TotalEmissionsKg                   float64
	PerPassengerKg                     float64
	TotalDistanceKm                    float64
	EmissionsWithoutRadiativeForcingKg float64
	Legs                               []RouteLeg
}

// FlightDescriptor identifies a single scheduled flight.
type FlightDescriptor struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	CarrierCode   string    `json:"carrierCode"`
	FlightNumber  int       `json:"flightNumber"`
	DepartureDate DateParts `json:"departureDate"`
}

// FutureEstimate is the first flight entry returned by the future-flights service.
type FutureEstimate struct {
	Flight            FlightDescriptor
	GramsPerPassenger ClassEmissions
}

// PastResult is the presentation-ready result for a past flight.
type PastResult struct {
	Query                              PastQuery      `json:"query"`
	TotalEmissionsKg                   float64        `json:"totalEmissionsKg"`
	PerPassengerKg                     float64        `json:"perPassengerKg"`
	TotalDistanceKm                    float64        `json:"totalDistanceKm"`
	EmissionsWithoutRadiativeForcingKg float64        `json:"emissionsWithoutRadiativeForcingKg"`
	Legs                               []RouteLeg     `json:"legs"`
	LegTotalsKg                        ClassEmissions `json:"legTotalsKg"`
}

// FutureFigures holds per-passenger and traveler-total figures in kilograms.
type FutureFigures struct {
	PerPassengerKg ClassEmissions `json:"perPassengerKg"`
	TotalKg        ClassEmissions `json:"totalKg"`
}

// FutureResult is the presentation-ready result for a scheduled flight.
// Displayed carries radiative forcing when requested; WithoutRadiativeForcing never does.
type FutureResult struct {
	Query                   FutureQuery      `json:"query"`
	Flight                  FlightDescriptor `json:"flight"`
	GramsPerPassenger       ClassEmissions   `json:"emissionsGramsPerPax"`
	Travelers               int              `json:"travelers"`
	RadiativeForcing        bool             `json:"radiativeForcing"`
	Displayed               FutureFigures    `json:"displayed"`
	WithoutRadiativeForcing FutureFigures    `json:"withoutRadiativeForcing"`
}

// ResultKind tags which pipeline produced a Result.
type ResultKind string

const (
	KindPast   ResultKind = "past"
	KindFuture ResultKind = "future"
)

// Result is the tagged union handed to the presentation layer.
// Exactly one of Past or Future is set, matching Kind.
type Result struct {
	Kind   ResultKind    `json:"kind"`
	ID     string        `json:"id"`
	Past   *PastResult   `json:"past,omitempty"`
	Future *FutureResult `json:"future,omitempty"`
}

// ProbeStatus is the outcome of one reachability probe of an upstream service.
type ProbeStatus struct {
	Provider  string    `json:"provider"`
	Timestamp time.Time `json:"timestamp"` // always UTC
	Reachable bool      `json:"reachable"`
	Error     string    `json:"error,omitempty"`
	LatencyMs float64   `json:"latencyMs"`
}

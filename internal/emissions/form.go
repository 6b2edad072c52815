package emissions

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultPastQuery returns the initial state of the past-flights form.
func DefaultPastQuery() PastQuery {
	return PastQuery{
		FlightType:       FlightTypeOneWay,
		CabinClass:       CabinEconomy,
		Travelers:        1,
		RadiativeForcing: true,
	}
}

// DefaultFutureQuery returns the initial state of the future-flights form.
func DefaultFutureQuery() FutureQuery {
	return FutureQuery{
		FlightType:       FlightTypeOneWay,
		Travelers:        1,
		RadiativeForcing: true,
	}
}

// CommitTravelers turns raw traveler input into a count.
// Leading digits are honoured; anything below 1 or non-numeric becomes 1.
func CommitTravelers(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return 1
	}
	return n
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Each With* method returns a new query; the receiver is never modified.
// Values are trimmed but otherwise accepted as-is; validation happens at submit time.

func (q PastQuery) WithFlightType(t FlightType) PastQuery {
	q.FlightType = t
	return q
}

func (q PastQuery) WithOrigin(code string) PastQuery {
	q.Origin = strings.TrimSpace(code)
	return q
}

func (q PastQuery) WithVia(code string) PastQuery {
	q.Via = strings.TrimSpace(code)
	return q
}

func (q PastQuery) WithDestination(code string) PastQuery {
	q.Destination = strings.TrimSpace(code)
	return q
}

// WithCabinClass canonicalizes known class spellings; unknown values are kept
// so that submission can report them.
func (q PastQuery) WithCabinClass(c CabinClass) PastQuery {
	q.CabinClass, _ = ParseCabinClass(strings.TrimSpace(string(c)))
	return q
}

// WithTravelers commits raw traveler input, clamping it to at least 1.
func (q PastQuery) WithTravelers(raw string) PastQuery {
	q.Travelers = CommitTravelers(raw)
	return q
}

func (q PastQuery) WithRadiativeForcing(on bool) PastQuery {
	q.RadiativeForcing = on
	return q
}

func (q PastQuery) WithDepartureDate(date string) PastQuery {
	q.DepartureDate = strings.TrimSpace(date)
	return q
}

func (q FutureQuery) WithFlightType(t FlightType) FutureQuery {
	q.FlightType = t
	return q
}

func (q FutureQuery) WithOrigin(code string) FutureQuery {
	q.Origin = strings.TrimSpace(code)
	return q
}

func (q FutureQuery) WithDestination(code string) FutureQuery {
	q.Destination = strings.TrimSpace(code)
	return q
}

func (q FutureQuery) WithCarrierCode(code string) FutureQuery {
	q.CarrierCode = strings.TrimSpace(code)
	return q
}

func (q FutureQuery) WithFlightNumber(number string) FutureQuery {
	q.FlightNumber = strings.TrimSpace(number)
	return q
}

func (q FutureQuery) WithDepartureDate(date string) FutureQuery {
	q.DepartureDate = strings.TrimSpace(date)
	return q
}

// WithTravelers commits raw traveler input, clamping it to at least 1.
func (q FutureQuery) WithTravelers(raw string) FutureQuery {
	q.Travelers = CommitTravelers(raw)
	return q
}

func (q FutureQuery) WithRadiativeForcing(on bool) FutureQuery {
	q.RadiativeForcing = on
	return q
}

func (q FutureQuery) WithNotes(notes string) FutureQuery {
	q.Notes = strings.TrimSpace(notes)
	return q
}

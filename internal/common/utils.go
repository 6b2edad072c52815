package common

import "strings"

// NonEmpty returns the trimmed values that are not blank, preserving order.
func NonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// UpperCode normalizes an IATA airport or airline code.
func UpperCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

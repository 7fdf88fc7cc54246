package refdata

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidFlightNumber is returned for identifiers that are not carrier + number.
var ErrInvalidFlightNumber = errors.New("invalid flight number")

// flightNumRe matches a 3-letter ICAO carrier or a 2-character IATA carrier
// (one of which may be a digit, e.g. 6E), 1-4 digits and an optional suffix.
var flightNumRe = regexp.MustCompile(`^([A-Z]{3}|[A-Z][A-Z0-9]|[0-9][A-Z])(\d{1,4})([A-Z]?)$`)

// FlightNumber is a parsed carrier + number pair.
type FlightNumber struct {
	Carrier string
	Number  string
	Suffix  string
}

// String returns the normalized form, e.g. "QP1457".
func (f FlightNumber) String() string {
	return f.Carrier + f.Number + f.Suffix
}

// NumericValue returns the flight number as an integer.
func (f FlightNumber) NumericValue() int {
	n := 0
	for _, c := range f.Number {
		n = n*10 + int(c-'0')
	}
	return n
}

// ParseFlightNumber strips whitespace, uppercases and strips leading zeros of
// the numeric part, so "qp 01457" becomes QP1457.
func ParseFlightNumber(raw string) (FlightNumber, error) {
	s := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	m := flightNumRe.FindStringSubmatch(s)
	if m == nil {
		return FlightNumber{}, ErrInvalidFlightNumber
	}
	num := strings.TrimLeft(m[2], "0")
	if num == "" {
		num = "0"
	}
	return FlightNumber{Carrier: m[1], Number: num, Suffix: m[3]}, nil
}

// NormalizeFlightNumber returns the normalized string form of raw.
func NormalizeFlightNumber(raw string) (string, error) {
	fn, err := ParseFlightNumber(raw)
	if err != nil {
		return "", err
	}
	return fn.String(), nil
}

// Callsign returns the ICAO callsign used by ADS-B feeds (QP1457 → AKJ1457).
// Returns "" when the carrier's ICAO code is unknown.
func (f FlightNumber) Callsign() string {
	if len(f.Carrier) == 3 {
		return f.String()
	}
	a, ok := Airline(f.Carrier)
	if !ok || a.ICAO == "" {
		return ""
	}
	return a.ICAO + f.Number + f.Suffix
}

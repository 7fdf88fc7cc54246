// Package refdata holds the static airport, aircraft-type and airline tables.
//
// All lookups are pure and safe for concurrent use; the indexes are built once
// at package init and never mutated afterwards.
package refdata

import (
	"regexp"
	"sort"
	"strings"
	_ "time/tzdata" // embedded zoneinfo for airport timezones

	"github.com/shiva/flightlog/internal/model"
)

// ─── Indexes ────────────────────────────────────────────────

var (
	airportsByIATA  = map[string]model.Airport{}
	airportsByICAO  = map[string]model.Airport{}
	airportsByCity  = map[string]model.Airport{}
	aircraftByCode  = map[string]model.AircraftType{}
	airlinesByIATA  = map[string]model.Airline{}
	airlinesByICAO  = map[string]model.Airline{}
	airlinesByName  = map[string]model.Airline{}
	aircraftMatches []aircraftMatcher
)

type aircraftMatcher struct {
	re  *regexp.Regexp
	typ model.AircraftType
	n   int
}

func init() {
	for _, a := range airportTable {
		airportsByIATA[a.IATA] = a
		airportsByICAO[a.ICAO] = a
		// First airport listed for a city wins.
		city := strings.ToUpper(a.City)
		if _, ok := airportsByCity[city]; !ok {
			airportsByCity[city] = a
		}
	}
	for alias, code := range cityAliases {
		airportsByCity[alias] = airportsByIATA[code]
	}

	for _, t := range aircraftTable {
		aircraftByCode[t.ICAO] = t
		aircraftByCode[t.IATA] = t
		phrases := append([]string{t.ICAO, strings.ToUpper(t.Model)}, t.Aliases...)
		for _, p := range phrases {
			aircraftMatches = append(aircraftMatches, aircraftMatcher{
				re:  regexp.MustCompile(`\b` + phrasePattern(p) + `\b`),
				typ: t,
				n:   len(p),
			})
		}
	}
	// Longest phrase first so "A320NEO" wins over "A320".
	sort.SliceStable(aircraftMatches, func(i, j int) bool {
		return aircraftMatches[i].n > aircraftMatches[j].n
	})

	for _, a := range airlineTable {
		airlinesByIATA[a.IATA] = a
		airlinesByICAO[a.ICAO] = a
		airlinesByName[strings.ToUpper(a.Name)] = a
	}
}

// phrasePattern quotes p and lets spaces and hyphens match either separator.
func phrasePattern(p string) string {
	q := regexp.QuoteMeta(strings.ToUpper(p))
	q = strings.ReplaceAll(q, "-", `[\s-]?`)
	return strings.ReplaceAll(q, " ", `[\s-]?`)
}

// ─── Airports ───────────────────────────────────────────────

// Airport returns the airport for a 3-letter IATA code.
func Airport(iata string) (model.Airport, bool) {
	a, ok := airportsByIATA[strings.ToUpper(strings.TrimSpace(iata))]
	return a, ok
}

// AirportByICAO returns the airport for a 4-letter ICAO code.
func AirportByICAO(icao string) (model.Airport, bool) {
	a, ok := airportsByICAO[strings.ToUpper(strings.TrimSpace(icao))]
	return a, ok
}

// ResolveAirport accepts either an IATA or an ICAO code.
func ResolveAirport(code string) (model.Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch len(code) {
	case 3:
		return Airport(code)
	case 4:
		return AirportByICAO(code)
	}
	return model.Airport{}, false
}

// AirportByCity returns the primary airport serving a city name or alias.
func AirportByCity(city string) (model.Airport, bool) {
	a, ok := airportsByCity[strings.ToUpper(strings.TrimSpace(city))]
	return a, ok
}

// CityNames returns every known city name and alias in upper case.
func CityNames() []string {
	names := make([]string, 0, len(airportsByCity))
	for c := range airportsByCity {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// Airports returns the full airport table sorted by IATA code.
func Airports() []model.Airport {
	out := make([]model.Airport, len(airportTable))
	copy(out, airportTable)
	sort.Slice(out, func(i, j int) bool { return out[i].IATA < out[j].IATA })
	return out
}

// ─── Aircraft ───────────────────────────────────────────────

// AircraftType returns the type for an ICAO designator or IATA type code.
func AircraftType(code string) (model.AircraftType, bool) {
	t, ok := aircraftByCode[strings.ToUpper(strings.TrimSpace(code))]
	return t, ok
}

// MatchAircraft finds the first aircraft type mentioned in free text,
// preferring the most specific phrase.
func MatchAircraft(text string) (model.AircraftType, bool) {
	upper := strings.ToUpper(text)
	for _, m := range aircraftMatches {
		if m.re.MatchString(upper) {
			return m.typ, true
		}
	}
	return model.AircraftType{}, false
}

// LookupAircraft tries code lookup first, then free-text matching.
func LookupAircraft(codeOrText string) (model.AircraftType, bool) {
	if t, ok := AircraftType(codeOrText); ok {
		return t, true
	}
	return MatchAircraft(codeOrText)
}

// AircraftTypes returns the aircraft table sorted by ICAO designator.
func AircraftTypes() []model.AircraftType {
	out := make([]model.AircraftType, len(aircraftTable))
	copy(out, aircraftTable)
	sort.Slice(out, func(i, j int) bool { return out[i].ICAO < out[j].ICAO })
	return out
}

// ─── Airlines ───────────────────────────────────────────────

// Airline returns the carrier for a 2-character IATA or 3-letter ICAO code.
func Airline(code string) (model.Airline, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if a, ok := airlinesByIATA[code]; ok {
		return a, true
	}
	a, ok := airlinesByICAO[code]
	return a, ok
}

// AirlineByName returns the carrier whose name matches exactly (case-insensitive).
func AirlineByName(name string) (model.Airline, bool) {
	a, ok := airlinesByName[strings.ToUpper(strings.TrimSpace(name))]
	return a, ok
}

// Airlines returns the airline table sorted by IATA code.
func Airlines() []model.Airline {
	out := make([]model.Airline, len(airlineTable))
	copy(out, airlineTable)
	sort.Slice(out, func(i, j int) bool { return out[i].IATA < out[j].IATA })
	return out
}

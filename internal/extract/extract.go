// Package extract pulls flight facts out of unstructured provider text.
//
// Every airport candidate is validated against the reference tables before it
// is used; a token that fails validation is dropped, never surfaced as an
// error. Code extraction runs first and city-name matching is the fallback.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

// ClockTime is a time-of-day token found in text.
type ClockTime struct {
	Hour   int
	Minute int
	Pos    int
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

// Result is everything the extractor found. Empty fields mean "not found".
type Result struct {
	Departure       string
	Arrival         string
	RouteMethod     string
	Departs         *ClockTime
	Arrives         *ClockTime
	DurationMinutes *int
	AirlineName     string
	AirlineCode     string
	Aircraft        *model.AircraftType
	Registration    string
	Status          model.FlightStatus
}

// HasRoute reports whether both endpoints were validated.
func (r *Result) HasRoute() bool {
	return r.Departure != "" && r.Arrival != "" && r.Departure != r.Arrival
}

// ─── Extract ────────────────────────────────────────────────

// Extract runs every heuristic over text.
func Extract(text string) *Result {
	res := &Result{}

	// ── Step 1: route (explicit form, cue words, bare codes, then cities) ──
	if from, to, ok := ExplicitRoute(text); ok {
		res.Departure, res.Arrival, res.RouteMethod = from, to, "route"
	} else if from, to, ok := CuedRoute(text); ok {
		res.Departure, res.Arrival, res.RouteMethod = from, to, "cues"
	} else if codes := AirportCodes(text); len(codes) >= 2 {
		res.Departure, res.Arrival, res.RouteMethod = codes[0], codes[1], "codes"
	} else if cities := CityAirports(text); len(cities) >= 2 {
		res.Departure, res.Arrival, res.RouteMethod = cities[0], cities[1], "cities"
	}

	// ── Step 2: clock times and duration ──
	times := ClockTimes(text)
	if len(times) >= 2 {
		dep, arr := times[0], times[1]
		res.Departs, res.Arrives = &dep, &arr
	}
	if d, ok := ExplicitDuration(text); ok {
		res.DurationMinutes = &d
	} else if res.Departs != nil && res.Arrives != nil {
		if d := DurationBetween(*res.Departs, *res.Arrives); d > 0 {
			res.DurationMinutes = &d
		}
	}

	// ── Step 3: airline, aircraft, registration, status ──
	if a, ok := AirlineMention(text); ok {
		res.AirlineName, res.AirlineCode = a.Name, a.IATA
	}
	if t, ok := refdata.MatchAircraft(text); ok {
		res.Aircraft = &t
	}
	if m := registrationPattern.FindStringSubmatch(text); m != nil {
		res.Registration = m[1]
	}
	res.Status = Status(text)

	return res
}

// ─── Airports ───────────────────────────────────────────────

// ValidAirportCode reports whether a 3-letter token is a real, known airport
// and not a blocklisted noise word.
func ValidAirportCode(code string) bool {
	if noiseBlocklist[code] {
		return false
	}
	_, ok := refdata.Airport(code)
	return ok
}

// ExplicitRoute finds the first "XXX-YYY" style route whose codes both
// validate. Zone labels are accepted only in the arrow form.
func ExplicitRoute(text string) (string, string, bool) {
	for _, m := range routeArrowPattern.FindAllStringSubmatch(text, -1) {
		from, to := m[1], m[2]
		if from != to && ValidAirportCode(from) && ValidAirportCode(to) {
			return from, to, true
		}
	}
	for _, m := range routeParenPattern.FindAllStringSubmatch(text, -1) {
		from, to := m[1], m[2]
		if from != to && bareAirportCode(from) && bareAirportCode(to) {
			return from, to, true
		}
	}
	return "", "", false
}

// CuedRoute pairs the first code preceded by a departure word ("departs",
// "from") with the first code preceded by an arrival word ("arrives", "to").
// The cue nearest the code decides its role.
func CuedRoute(text string) (string, string, bool) {
	var from, to string
	for _, loc := range codePattern.FindAllStringIndex(text, -1) {
		code := text[loc[0]:loc[1]]
		if !bareAirportCode(code) || followsClockTime(text, loc[0]) {
			continue
		}
		lo := loc[0] - cueWindow
		if lo < 0 {
			lo = 0
		}
		window := text[lo:loc[0]]
		dep, arr := lastIndex(departureCue, window), lastIndex(arrivalCue, window)
		switch {
		case dep > arr && from == "":
			from = code
		case arr > dep && to == "" && code != from:
			to = code
		}
	}
	return from, to, from != "" && to != "" && from != to
}

func lastIndex(re *regexp.Regexp, s string) int {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return -1
	}
	return locs[len(locs)-1][0]
}

// AirportCodes returns validated airport codes in order of first appearance.
// A code directly following a clock time is treated as a time-zone label.
func AirportCodes(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, loc := range codePattern.FindAllStringIndex(text, -1) {
		code := text[loc[0]:loc[1]]
		if seen[code] || !bareAirportCode(code) || followsClockTime(text, loc[0]) {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// bareAirportCode validates a code found outside an arrow-form route, where
// a zone label such as "(IST)" is far more likely than the airport.
func bareAirportCode(code string) bool {
	return !zoneLabels[code] && ValidAirportCode(code)
}

var trailingClock = regexp.MustCompile(`(?:\d{1,2}:[0-5]\d|[AaPp]\.?[Mm]\.?)\s*$`)

func followsClockTime(text string, start int) bool {
	lo := start - 12
	if lo < 0 {
		lo = 0
	}
	return trailingClock.MatchString(text[lo:start])
}

// CityAirports matches reference city names in text and returns their
// airports in order of appearance.
func CityAirports(text string) []string {
	upper := strings.ToUpper(text)
	type hit struct {
		pos  int
		iata string
	}
	var hits []hit
	for _, city := range refdata.CityNames() {
		idx := indexWord(upper, city)
		if idx < 0 {
			continue
		}
		a, _ := refdata.AirportByCity(city)
		hits = append(hits, hit{pos: idx, iata: a.IATA})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := map[string]bool{}
	var out []string
	for _, h := range hits {
		if seen[h.iata] {
			continue
		}
		seen[h.iata] = true
		out = append(out, h.iata)
	}
	return out
}

// indexWord returns the first index of word in s on word boundaries, or -1.
func indexWord(s, word string) int {
	from := 0
	for {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(word)
		if (i == 0 || !isWordByte(s[i-1])) && (end == len(s) || !isWordByte(s[end])) {
			return i
		}
		from = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

// ─── Times ──────────────────────────────────────────────────

// ClockTimes returns every clock-time token in order of appearance.
func ClockTimes(text string) []ClockTime {
	var out []ClockTime
	taken := map[int]bool{}
	for _, m := range clockPattern.FindAllStringSubmatchIndex(text, -1) {
		h, _ := strconv.Atoi(text[m[2]:m[3]])
		mm, _ := strconv.Atoi(text[m[4]:m[5]])
		if m[6] >= 0 {
			h = to24h(h, text[m[6]:m[7]])
		}
		out = append(out, ClockTime{Hour: h, Minute: mm, Pos: m[0]})
		for i := m[0]; i < m[1]; i++ {
			taken[i] = true
		}
	}
	for _, m := range clockHourPattern.FindAllStringSubmatchIndex(text, -1) {
		if taken[m[0]] {
			continue
		}
		h, _ := strconv.Atoi(text[m[2]:m[3]])
		out = append(out, ClockTime{Hour: to24h(h, text[m[4]:m[5]]), Pos: m[0]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

func to24h(h int, meridiem string) int {
	pm := strings.EqualFold(meridiem, "p")
	switch {
	case h > 12:
		return h
	case h == 12 && !pm:
		return 0
	case h < 12 && pm:
		return h + 12
	}
	return h
}

// DurationBetween returns the minutes from dep to arr. An arrival time of day
// earlier than the departure is taken to be on the next calendar day.
func DurationBetween(dep, arr ClockTime) int {
	d := arr.Minutes() - dep.Minutes()
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// ExplicitDuration parses a written duration such as "2h 15m".
func ExplicitDuration(text string) (int, bool) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if mm >= 60 || h*60+mm == 0 {
		return 0, false
	}
	return h*60 + mm, true
}

// LocalTime places a clock time on date in the given IANA zone.
func LocalTime(date string, c ClockTime, tz string) (time.Time, bool) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, loc), true
}

// ─── Airline / Status ───────────────────────────────────────

// AirlineMention finds the first reference airline named in text.
func AirlineMention(text string) (model.Airline, bool) {
	upper := strings.ToUpper(text)
	best, bestPos := model.Airline{}, -1
	for _, a := range refdata.Airlines() {
		idx := indexWord(upper, strings.ToUpper(a.Name))
		if idx >= 0 && (bestPos < 0 || idx < bestPos) {
			best, bestPos = a, idx
		}
	}
	return best, bestPos >= 0
}

// Status returns the highest-priority status keyword in text, or "".
func Status(text string) model.FlightStatus {
	for _, k := range statusKeywords {
		if k.re.MatchString(text) {
			return model.FlightStatus(k.status)
		}
	}
	return ""
}

// ─── Record ─────────────────────────────────────────────────

// Partial converts the extraction into the common adapter record for date.
// Clock times are placed in each endpoint's zone; an arrival that would land
// before departure rolls over to the next day.
func (r *Result) Partial(source, date string) *model.PartialFlightRecord {
	rec := &model.PartialFlightRecord{
		Source:          source,
		AirlineCode:     r.AirlineCode,
		AirlineName:     r.AirlineName,
		DepartureCode:   r.Departure,
		ArrivalCode:     r.Arrival,
		Registration:    r.Registration,
		Status:          r.Status,
		DurationMinutes: r.DurationMinutes,
		FromText:        true,
	}
	if r.Aircraft != nil {
		rec.AircraftCode = r.Aircraft.ICAO
		rec.AircraftText = r.Aircraft.Model
	}
	if r.Departs == nil || r.Arrives == nil {
		return rec
	}

	dep, ok1 := LocalTime(date, *r.Departs, zoneOf(r.Departure))
	arr, ok2 := LocalTime(date, *r.Arrives, zoneOf(r.Arrival))
	if !ok1 || !ok2 {
		return rec
	}
	if !arr.After(dep) {
		arr = arr.Add(24 * time.Hour)
	}
	rec.ScheduledDeparture, rec.ScheduledArrival = &dep, &arr
	return rec
}

func zoneOf(iata string) string {
	if a, ok := refdata.Airport(iata); ok {
		return a.Timezone
	}
	return "UTC"
}

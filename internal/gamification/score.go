// Package gamification scores one resolved flight against a user's lifetime
// stats. Everything here is pure: the same flight and prior stats always
// produce the same result, and nothing is persisted.
package gamification

import (
	"math"
	"sort"
	"time"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

// XP table.
const (
	XPBase           = 100
	XPPerMile        = 1
	XPInternational  = 200
	XPLongHaul       = 300
	XPWideBody       = 150
	XPNewAirport     = 100
	XPNewCountry     = 200
	XPRedEye         = 75
	XPPerLevel       = 1000
	LongHaulMinutes  = 360
	redEyeBeforeHour = 6
	redEyeAfterHour  = 22
)

// XPLine is one entry of the XP breakdown.
type XPLine struct {
	Reason string `json:"reason"`
	XP     int    `json:"xp"`
}

// ScoreResult is the delta produced by one flight.
type ScoreResult struct {
	XPDelta         int             `json:"xp_delta"`
	Breakdown       []XPLine        `json:"breakdown"`
	NewAchievements []string        `json:"new_achievements"`
	Next            model.UserStats `json:"next_stats"`
	Level           int             `json:"level"`
	XPToNext        int             `json:"xp_to_next_level"`
}

// Level is derived from total XP: 0-999 is level 1.
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// XPToNext returns the XP still needed to reach the next level.
func XPToNext(totalXP int) int {
	return Level(totalXP)*XPPerLevel - totalXP
}

// Score applies flight to prior and returns the result. prior is not
// modified. Endpoints missing from reference data earn no first-time
// bonuses and are not added to the visited sets.
func Score(flight *model.EnrichedFlight, prior model.UserStats) ScoreResult {
	next := cloneStats(prior)
	res := ScoreResult{}
	add := func(reason string, xp int) {
		if xp <= 0 {
			return
		}
		res.Breakdown = append(res.Breakdown, XPLine{Reason: reason, XP: xp})
		res.XPDelta += xp
	}

	dep, depOK := refdata.Airport(flight.Route.Departure.IATA)
	arr, arrOK := refdata.Airport(flight.Route.Arrival.IATA)
	miles := math.Max(flight.Route.DistanceMiles, 0)
	international := flight.IsInternational()
	endpoints := []struct {
		ap model.Airport
		ok bool
	}{{dep, depOK}, {arr, arrOK}}

	// ── Step 1: XP ──
	add("base", XPBase)
	add("distance", int(math.Round(miles))*XPPerMile)
	if international {
		add("international", XPInternational)
	}
	if flight.Route.DurationMinutes > LongHaulMinutes {
		add("long_haul", XPLongHaul)
	}
	if flight.Aircraft.Category == model.CategoryWideBody {
		add("wide_body", XPWideBody)
	}

	seenAirport := toSet(prior.Airports)
	seenCountry := toSet(prior.Countries)
	for _, ep := range endpoints {
		if !ep.ok {
			continue
		}
		if !seenAirport[ep.ap.IATA] {
			seenAirport[ep.ap.IATA] = true
			add("new_airport:"+ep.ap.IATA, XPNewAirport)
		}
		// Country discovery counts only when the flight actually crosses a border.
		if international && ep.ap.Country != "" && !seenCountry[ep.ap.Country] {
			seenCountry[ep.ap.Country] = true
			add("new_country:"+ep.ap.Country, XPNewCountry)
		}
	}

	redEye := isRedEye(flight, dep, depOK)
	if redEye {
		add("red_eye", XPRedEye)
	}

	// ── Step 2: stats ──
	next.TotalFlights++
	next.TotalDistanceMiles += miles
	next.TotalMinutes += max(flight.Route.DurationMinutes, 0)
	for _, ep := range endpoints {
		if !ep.ok {
			continue
		}
		next.Airports = addSorted(next.Airports, ep.ap.IATA)
		next.Countries = addSorted(next.Countries, ep.ap.Country)
		next.Continents = addSorted(next.Continents, ep.ap.Continent)
	}
	next.Airlines = addSorted(next.Airlines, flight.Airline.Code)
	next.AircraftModels = addSorted(next.AircraftModels, aircraftKey(flight.Aircraft))

	if depOK && arrOK {
		next.RouteCounts[flight.RouteKey()]++
	}
	summary := &model.FlightSummary{
		FlightNumber:  flight.FlightNumber,
		Date:          flight.Date,
		Route:         flight.RouteKey(),
		DistanceMiles: miles,
	}
	if next.LongestFlight == nil || miles > next.LongestFlight.DistanceMiles {
		next.LongestFlight = summary
	}
	if next.ShortestFlight == nil || miles < next.ShortestFlight.DistanceMiles {
		s := *summary
		next.ShortestFlight = &s
	}

	if redEye {
		next.NightFlights++
	}
	if flight.Aircraft.Category == model.CategoryWideBody {
		next.WideBodyFlights++
	}
	if international {
		next.InternationalFlights++
	}
	if flight.Route.DurationMinutes > LongHaulMinutes {
		next.LongHaulFlights++
	}
	next.TotalXP += res.XPDelta

	// ── Step 3: achievements, evaluated on the post-flight stats ──
	unlocked := toSet(next.UnlockedAchievements)
	for _, a := range catalog {
		if unlocked[a.ID] || !satisfied(a.Rule, &next) {
			continue
		}
		unlocked[a.ID] = true
		next.UnlockedAchievements = append(next.UnlockedAchievements, a.ID)
		next.AchievementPoints += a.XPReward
		res.NewAchievements = append(res.NewAchievements, a.ID)
	}

	res.Next = next
	res.Level = Level(next.TotalXP)
	res.XPToNext = XPToNext(next.TotalXP)
	return res
}

// isRedEye checks the departure hour in the departure airport's own zone.
// The scheduled time is used when known, else the actual one.
func isRedEye(f *model.EnrichedFlight, dep model.Airport, depOK bool) bool {
	t := f.Schedule.ScheduledDeparture
	if t == nil {
		t = f.Schedule.ActualDeparture
	}
	if t == nil {
		return false
	}
	tz := f.Route.Departure.Timezone
	if depOK {
		tz = dep.Timezone
	}
	local := *t
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		local = t.In(loc)
	}
	h := local.Hour()
	return h < redEyeBeforeHour || h > redEyeAfterHour
}

// aircraftKey is the identity counted in AircraftModels.
func aircraftKey(a model.AircraftInfo) string {
	if a.TypeCode != "" {
		return a.TypeCode
	}
	return a.Model
}

// ─── Helpers ────────────────────────────────────────────────

func cloneStats(s model.UserStats) model.UserStats {
	out := s
	out.Airports = sortedCopy(s.Airports)
	out.Countries = sortedCopy(s.Countries)
	out.Continents = sortedCopy(s.Continents)
	out.Airlines = sortedCopy(s.Airlines)
	out.AircraftModels = sortedCopy(s.AircraftModels)
	out.UnlockedAchievements = append([]string{}, s.UnlockedAchievements...)
	out.RouteCounts = make(map[string]int, len(s.RouteCounts)+1)
	for k, v := range s.RouteCounts {
		out.RouteCounts[k] = v
	}
	if s.LongestFlight != nil {
		l := *s.LongestFlight
		out.LongestFlight = &l
	}
	if s.ShortestFlight != nil {
		sh := *s.ShortestFlight
		out.ShortestFlight = &sh
	}
	return out
}

func sortedCopy(vals []string) []string {
	out := append([]string{}, vals...)
	sort.Strings(out)
	return out
}

func toSet(vals []string) map[string]bool {
	m := make(map[string]bool, len(vals)+2)
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// addSorted inserts v into a sorted distinct slice. Empty values are skipped.
func addSorted(set []string, v string) []string {
	if v == "" {
		return set
	}
	i := sort.SearchStrings(set, v)
	if i < len(set) && set[i] == v {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = v
	return set
}

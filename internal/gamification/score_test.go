package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

func airport(t *testing.T, code string) model.Airport {
	t.Helper()
	a, ok := refdata.Airport(code)
	require.True(t, ok, code)
	return a
}

// flight builds a resolved flight departing at the given local wall-clock
// time in the departure airport's zone.
func flight(t *testing.T, dep, arr string, miles float64, minutes int, cat model.AircraftCategory, localDep string) *model.EnrichedFlight {
	t.Helper()
	d, a := airport(t, dep), airport(t, arr)
	loc, err := time.LoadLocation(d.Timezone)
	require.NoError(t, err)
	when, err := time.ParseInLocation("2006-01-02 15:04", "2024-03-01 "+localDep, loc)
	require.NoError(t, err)

	typeCode := "B38M"
	if cat == model.CategoryWideBody {
		typeCode = "B77W"
	}
	return &model.EnrichedFlight{
		FlightNumber: "QP1457",
		Date:         "2024-03-01",
		Airline:      model.AirlineInfo{Code: "QP", Name: "Akasa Air"},
		Aircraft:     model.AircraftInfo{TypeCode: typeCode, Category: cat},
		Route: model.RouteInfo{
			Departure: d, Arrival: a,
			DistanceMiles: miles, DurationMinutes: minutes,
		},
		Schedule: model.Schedule{ScheduledDeparture: &when},
		Status:   model.StatusLanded,
	}
}

func emptyStats() model.UserStats {
	return model.UserStats{UserID: "u1", Airports: []string{}, Countries: []string{}}
}

func TestScore_DomesticFirstFlight(t *testing.T) {
	f := flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, "10:00")
	res := Score(f, emptyStats())

	assert.Equal(t, 837, res.XPDelta)
	assert.Equal(t, []XPLine{
		{Reason: "base", XP: 100},
		{Reason: "distance", XP: 537},
		{Reason: "new_airport:BOM", XP: 100},
		{Reason: "new_airport:BLR", XP: 100},
	}, res.Breakdown)
	assert.Equal(t, []string{"first_flight"}, res.NewAchievements)

	n := res.Next
	assert.Equal(t, 837, n.TotalXP)
	assert.Equal(t, 1, n.TotalFlights)
	assert.Equal(t, 537.0, n.TotalDistanceMiles)
	assert.Equal(t, 92, n.TotalMinutes)
	assert.Equal(t, []string{"BLR", "BOM"}, n.Airports)
	assert.Equal(t, []string{"IN"}, n.Countries)
	assert.Equal(t, []string{"AS"}, n.Continents)
	assert.Equal(t, []string{"QP"}, n.Airlines)
	assert.Equal(t, []string{"B38M"}, n.AircraftModels)
	assert.Equal(t, 1, n.RouteCounts["BOM-BLR"])
	assert.Equal(t, []string{"first_flight"}, n.UnlockedAchievements)
	assert.Equal(t, 50, n.AchievementPoints)
	require.NotNil(t, n.LongestFlight)
	assert.Equal(t, "BOM-BLR", n.LongestFlight.Route)
	assert.Equal(t, n.LongestFlight, n.ShortestFlight)
	assert.Zero(t, n.NightFlights)
	assert.Zero(t, n.InternationalFlights)

	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 163, res.XPToNext)
}

func TestScore_EveryBonus(t *testing.T) {
	f := flight(t, "LHR", "JFK", 3442, 480, model.CategoryWideBody, "23:00")
	res := Score(f, emptyStats())

	want := 100 + 3442 + XPInternational + XPLongHaul + XPWideBody + 2*XPNewAirport + 2*XPNewCountry + XPRedEye
	assert.Equal(t, want, res.XPDelta)
	assert.Equal(t, []string{"GB", "US"}, res.Next.Countries)
	assert.Equal(t, []string{"EU", "NA"}, res.Next.Continents)
	assert.Equal(t, 1, res.Next.NightFlights)
	assert.Equal(t, 1, res.Next.WideBodyFlights)
	assert.Equal(t, 1, res.Next.LongHaulFlights)
	assert.Equal(t, 1, res.Next.InternationalFlights)
	assert.Equal(t, []string{"first_flight", "miles_1000"}, res.NewAchievements)
	assert.Equal(t, Level(want), res.Level)
}

func TestScore_RepeatVisitsEarnNoFirstTimeBonus(t *testing.T) {
	prior := emptyStats()
	prior.Airports = []string{"BLR", "BOM"}
	prior.Countries = []string{"IN"}
	prior.TotalFlights = 1
	prior.UnlockedAchievements = []string{"first_flight"}

	res := Score(flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, "10:00"), prior)
	assert.Equal(t, 637, res.XPDelta)
	assert.Empty(t, res.NewAchievements)
}

func TestScore_CountryBonusOnlyForNewCountries(t *testing.T) {
	prior := emptyStats()
	prior.Countries = []string{"GB"}

	res := Score(flight(t, "LHR", "CDG", 216, 75, model.CategoryNarrowBody, "12:00"), prior)
	var countryXP int
	for _, l := range res.Breakdown {
		if l.Reason == "new_country:FR" || l.Reason == "new_country:GB" {
			countryXP += l.XP
		}
	}
	assert.Equal(t, XPNewCountry, countryXP, "only FR is new")
}

func TestScore_UnvalidatedEndpoint(t *testing.T) {
	f := flight(t, "BOM", "BLR", 500, 90, model.CategoryNarrowBody, "10:00")
	f.Route.Arrival = model.Airport{IATA: "ZZZ", Country: "XX"}

	res := Score(f, emptyStats())
	assert.Equal(t, 100+500+XPNewAirport+XPInternational, res.XPDelta,
		"one valid endpoint bonus; the bogus one earns nothing but the flight still crosses countries")
	assert.Equal(t, []string{"BOM"}, res.Next.Airports)
	assert.NotContains(t, res.Next.Countries, "XX")
	assert.Empty(t, res.Next.RouteCounts)
}

func TestScore_RedEyeUsesDepartureZone(t *testing.T) {
	cases := []struct {
		local string
		want  bool
	}{
		{"05:59", true},
		{"06:00", false},
		{"21:59", false},
		{"22:00", false},
		{"22:59", false},
		{"23:00", true},
		{"00:30", true},
	}
	for _, tc := range cases {
		t.Run(tc.local, func(t *testing.T) {
			res := Score(flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, tc.local), emptyStats())
			assert.Equal(t, tc.want, res.Next.NightFlights == 1)
		})
	}

	// 18:00 UTC is 23:30 in Mumbai.
	f := flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, "10:00")
	utc := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	f.Schedule.ScheduledDeparture = &utc
	assert.Equal(t, 1, Score(f, emptyStats()).Next.NightFlights)
}

func TestScore_DoesNotMutatePrior(t *testing.T) {
	prior := emptyStats()
	prior.RouteCounts = map[string]int{"BOM-BLR": 2}
	prior.Airports = []string{"BOM"}

	_ = Score(flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, "10:00"), prior)
	assert.Equal(t, 2, prior.RouteCounts["BOM-BLR"])
	assert.Equal(t, []string{"BOM"}, prior.Airports)
	assert.Zero(t, prior.TotalXP)
}

func TestScore_MonotonicOverManyFlights(t *testing.T) {
	legs := [][2]string{
		{"BOM", "BLR"}, {"BLR", "DEL"}, {"DEL", "LHR"}, {"LHR", "JFK"}, {"JFK", "GRU"},
		{"GRU", "JNB"}, {"JNB", "SYD"}, {"SYD", "SIN"}, {"SIN", "DXB"}, {"DXB", "BOM"},
		{"BOM", "BLR"}, {"BOM", "BLR"},
	}
	stats := emptyStats()
	for i, leg := range legs {
		f := flight(t, leg[0], leg[1], 1000+float64(i)*100, 200+i*30, model.CategoryNarrowBody, "10:00")
		res := Score(f, stats)

		assert.GreaterOrEqual(t, res.XPDelta, 0)
		assert.Equal(t, stats.TotalXP+res.XPDelta, res.Next.TotalXP)
		for _, id := range stats.UnlockedAchievements {
			assert.Contains(t, res.Next.UnlockedAchievements, id, "achievements are never removed")
		}
		for _, id := range res.NewAchievements {
			assert.NotContains(t, stats.UnlockedAchievements, id, "an achievement unlocks once")
		}
		stats = res.Next
	}

	assert.Equal(t, len(legs), stats.TotalFlights)
	assert.Contains(t, stats.UnlockedAchievements, "flights_10")
	assert.Contains(t, stats.UnlockedAchievements, "six_continents")
	assert.Contains(t, stats.UnlockedAchievements, "countries_5")
	assert.Equal(t, 3, stats.RouteCounts["BOM-BLR"])
}

func TestScore_DoubleApplyFollowsFormula(t *testing.T) {
	f := flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, "10:00")
	first := Score(f, emptyStats())
	second := Score(f, first.Next)

	assert.Equal(t, 637, second.XPDelta)
	assert.Equal(t, first.Next.TotalXP+second.XPDelta, second.Next.TotalXP)
	assert.Equal(t, 2, second.Next.TotalFlights)
}

func TestScore_PredicateAchievements(t *testing.T) {
	stats := emptyStats()
	for i := 0; i < 10; i++ {
		stats = Score(flight(t, "BOM", "BLR", 537, 92, model.CategoryNarrowBody, "23:30"), stats).Next
	}
	assert.Equal(t, 10, stats.NightFlights)
	assert.Contains(t, stats.UnlockedAchievements, "night_owl")
	assert.Contains(t, stats.UnlockedAchievements, "creature_of_habit")
	assert.NotContains(t, stats.UnlockedAchievements, "wide_body_fan")
}

func TestLevel(t *testing.T) {
	cases := []struct{ xp, level, toNext int }{
		{0, 1, 1000},
		{837, 1, 163},
		{999, 1, 1},
		{1000, 2, 1000},
		{4867, 5, 133},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, Level(tc.xp), "level(%d)", tc.xp)
		assert.Equal(t, tc.toNext, XPToNext(tc.xp), "toNext(%d)", tc.xp)
	}
}

func TestCatalogIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Catalog() {
		assert.False(t, seen[a.ID], "duplicate %s", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Name)
		assert.Positive(t, a.XPReward)
		if a.Rule.Predicate != "" {
			_, ok := predicates[a.Rule.Predicate]
			assert.True(t, ok, "unknown predicate %s", a.Rule.Predicate)
		} else {
			assert.Positive(t, a.Rule.Threshold, a.ID)
		}
	}
	_, ok := Achievement("first_flight")
	assert.True(t, ok)
}

func TestSixContinents(t *testing.T) {
	s := &model.UserStats{Continents: []string{"AF", "AS", "EU", "NA", "OC"}}
	assert.False(t, coversInhabitedContinents(s))
	s.Continents = append(s.Continents, "AN")
	assert.False(t, coversInhabitedContinents(s), "Antarctica does not count")
	s.Continents = append(s.Continents, "SA")
	assert.True(t, coversInhabitedContinents(s))
}

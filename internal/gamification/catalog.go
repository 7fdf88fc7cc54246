package gamification

import (
	"github.com/shiva/flightlog/internal/model"
)

// inhabitedContinents are the continent codes counted by six_continents.
var inhabitedContinents = map[string]bool{
	"AF": true, "AS": true, "EU": true, "NA": true, "OC": true, "SA": true,
}

// predicates are the named custom rules. Each reads fields maintained on
// UserStats specifically for it.
var predicates = map[string]func(s *model.UserStats) bool{
	"night_owl":         func(s *model.UserStats) bool { return s.NightFlights >= 10 },
	"six_continents":    coversInhabitedContinents,
	"wide_body_fan":     func(s *model.UserStats) bool { return s.WideBodyFlights >= 10 },
	"long_hauler":       func(s *model.UserStats) bool { return s.LongHaulFlights >= 10 },
	"globetrotter":      func(s *model.UserStats) bool { return s.InternationalFlights >= 10 },
	"creature_of_habit": func(s *model.UserStats) bool { return maxRouteCount(s) >= 5 },
}

func coversInhabitedContinents(s *model.UserStats) bool {
	n := 0
	for _, c := range s.Continents {
		if inhabitedContinents[c] {
			n++
		}
	}
	return n >= len(inhabitedContinents)
}

func threshold(m model.Metric, n int) model.Rule { return model.Rule{Metric: m, Threshold: n} }

func predicate(name string) model.Rule { return model.Rule{Predicate: name} }

// catalog is the static achievement list, in display order.
var catalog = []model.Achievement{
	// ── flights ──
	{ID: "first_flight", Name: "Wheels Up", Description: "Log your first flight", Category: "flights", Rule: threshold(model.MetricFlights, 1), XPReward: 50, Rarity: model.RarityCommon},
	{ID: "flights_10", Name: "Frequent Flyer", Description: "Log 10 flights", Category: "flights", Rule: threshold(model.MetricFlights, 10), XPReward: 100, Rarity: model.RarityCommon},
	{ID: "flights_50", Name: "Road Warrior", Description: "Log 50 flights", Category: "flights", Rule: threshold(model.MetricFlights, 50), XPReward: 250, Rarity: model.RarityRare},
	{ID: "flights_100", Name: "Centurion", Description: "Log 100 flights", Category: "flights", Rule: threshold(model.MetricFlights, 100), XPReward: 500, Rarity: model.RarityEpic},

	// ── distance ──
	{ID: "miles_1000", Name: "Thousand Miler", Description: "Fly 1,000 miles", Category: "distance", Rule: threshold(model.MetricMiles, 1000), XPReward: 50, Rarity: model.RarityCommon},
	{ID: "miles_10000", Name: "Ten Thousand Club", Description: "Fly 10,000 miles", Category: "distance", Rule: threshold(model.MetricMiles, 10000), XPReward: 150, Rarity: model.RarityRare},
	{ID: "around_the_world", Name: "Around the World", Description: "Fly the Earth's circumference, 24,901 miles", Category: "distance", Rule: threshold(model.MetricMiles, 24901), XPReward: 300, Rarity: model.RarityEpic},
	{ID: "to_the_moon", Name: "To the Moon", Description: "Fly 238,900 miles", Category: "distance", Rule: threshold(model.MetricMiles, 238900), XPReward: 1000, Rarity: model.RarityLegendary},

	// ── exploration ──
	{ID: "airports_10", Name: "Terminal Tourist", Description: "Visit 10 airports", Category: "exploration", Rule: threshold(model.MetricAirports, 10), XPReward: 100, Rarity: model.RarityCommon},
	{ID: "airports_25", Name: "Hub Hopper", Description: "Visit 25 airports", Category: "exploration", Rule: threshold(model.MetricAirports, 25), XPReward: 250, Rarity: model.RarityRare},
	{ID: "countries_5", Name: "Passport Stamps", Description: "Visit 5 countries", Category: "exploration", Rule: threshold(model.MetricCountries, 5), XPReward: 150, Rarity: model.RarityRare},
	{ID: "countries_10", Name: "Border Crosser", Description: "Visit 10 countries", Category: "exploration", Rule: threshold(model.MetricCountries, 10), XPReward: 300, Rarity: model.RarityEpic},
	{ID: "countries_25", Name: "Citizen of the World", Description: "Visit 25 countries", Category: "exploration", Rule: threshold(model.MetricCountries, 25), XPReward: 750, Rarity: model.RarityLegendary},
	{ID: "six_continents", Name: "Six Continents", Description: "Land on every inhabited continent", Category: "exploration", Rule: predicate("six_continents"), XPReward: 1000, Rarity: model.RarityLegendary},

	// ── variety ──
	{ID: "airlines_5", Name: "Brand Agnostic", Description: "Fly 5 different airlines", Category: "variety", Rule: threshold(model.MetricAirlines, 5), XPReward: 100, Rarity: model.RarityCommon},
	{ID: "airlines_10", Name: "Alliance Hopper", Description: "Fly 10 different airlines", Category: "variety", Rule: threshold(model.MetricAirlines, 10), XPReward: 250, Rarity: model.RarityRare},
	{ID: "aircraft_5", Name: "Plane Spotter", Description: "Fly 5 different aircraft types", Category: "variety", Rule: threshold(model.MetricAircraft, 5), XPReward: 100, Rarity: model.RarityCommon},
	{ID: "aircraft_10", Name: "Type Rated", Description: "Fly 10 different aircraft types", Category: "variety", Rule: threshold(model.MetricAircraft, 10), XPReward: 250, Rarity: model.RarityRare},

	// ── special ──
	{ID: "night_owl", Name: "Night Owl", Description: "Take 10 red-eye flights", Category: "special", Rule: predicate("night_owl"), XPReward: 200, Rarity: model.RarityRare},
	{ID: "wide_body_fan", Name: "Twin Aisle", Description: "Fly 10 times on wide-body aircraft", Category: "special", Rule: predicate("wide_body_fan"), XPReward: 200, Rarity: model.RarityRare},
	{ID: "long_hauler", Name: "Long Hauler", Description: "Take 10 flights over six hours", Category: "special", Rule: predicate("long_hauler"), XPReward: 300, Rarity: model.RarityEpic},
	{ID: "globetrotter", Name: "Globetrotter", Description: "Take 10 international flights", Category: "special", Rule: predicate("globetrotter"), XPReward: 200, Rarity: model.RarityRare},
	{ID: "creature_of_habit", Name: "Creature of Habit", Description: "Fly the same route 5 times", Category: "special", Rule: predicate("creature_of_habit"), XPReward: 100, Rarity: model.RarityCommon},
}

var catalogByID = func() map[string]model.Achievement {
	m := make(map[string]model.Achievement, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}()

// Catalog returns a copy of the static achievement catalog.
func Catalog() []model.Achievement {
	out := make([]model.Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Achievement looks up one catalog entry.
func Achievement(id string) (model.Achievement, bool) {
	a, ok := catalogByID[id]
	return a, ok
}

// metricValue reads the counter a threshold rule is checked against.
func metricValue(s *model.UserStats, m model.Metric) int {
	switch m {
	case model.MetricFlights:
		return s.TotalFlights
	case model.MetricMiles:
		return int(s.TotalDistanceMiles)
	case model.MetricCountries:
		return len(s.Countries)
	case model.MetricAirports:
		return len(s.Airports)
	case model.MetricAirlines:
		return len(s.Airlines)
	case model.MetricAircraft:
		return len(s.AircraftModels)
	case model.MetricContinents:
		return len(s.Continents)
	case model.MetricNightFlights:
		return s.NightFlights
	case model.MetricWideBody:
		return s.WideBodyFlights
	case model.MetricLongHaul:
		return s.LongHaulFlights
	case model.MetricInternational:
		return s.InternationalFlights
	case model.MetricRouteRepeat:
		return maxRouteCount(s)
	}
	return 0
}

// satisfied evaluates a rule against stats.
func satisfied(r model.Rule, s *model.UserStats) bool {
	if r.Predicate != "" {
		p, ok := predicates[r.Predicate]
		return ok && p(s)
	}
	return r.Threshold > 0 && metricValue(s, r.Metric) >= r.Threshold
}

func maxRouteCount(s *model.UserStats) int {
	best := 0
	for _, n := range s.RouteCounts {
		if n > best {
			best = n
		}
	}
	return best
}

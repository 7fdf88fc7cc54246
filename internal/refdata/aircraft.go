package refdata

import "github.com/shiva/flightlog/internal/model"

var (
	narrow   = model.CategoryNarrowBody
	wide     = model.CategoryWideBody
	regional = model.CategoryRegional
)

// aircraftTable is keyed by ICAO type designator. Aliases are the free-text
// spellings providers use in status pages and search snippets.
var aircraftTable = []model.AircraftType{
	// Airbus narrow-body
	{ICAO: "A319", IATA: "319", Manufacturer: "Airbus", Model: "A319", Category: narrow, CruiseSpeedMph: 515, Capacity: 140, Aliases: []string{"A319-100"}},
	{ICAO: "A320", IATA: "320", Manufacturer: "Airbus", Model: "A320", Category: narrow, CruiseSpeedMph: 511, Capacity: 180, Aliases: []string{"A320-200", "A320CEO", "AIRBUS A320"}},
	{ICAO: "A20N", IATA: "32N", Manufacturer: "Airbus", Model: "A320neo", Category: narrow, CruiseSpeedMph: 515, Capacity: 186, Aliases: []string{"A320NEO", "A320 NEO", "A320-251N", "AIRBUS A320NEO"}},
	{ICAO: "A321", IATA: "321", Manufacturer: "Airbus", Model: "A321", Category: narrow, CruiseSpeedMph: 511, Capacity: 220, Aliases: []string{"A321-200", "AIRBUS A321"}},
	{ICAO: "A21N", IATA: "32Q", Manufacturer: "Airbus", Model: "A321neo", Category: narrow, CruiseSpeedMph: 515, Capacity: 232, Aliases: []string{"A321NEO", "A321 NEO", "A321-251NX", "AIRBUS A321NEO"}},

	// Boeing narrow-body
	{ICAO: "B737", IATA: "73G", Manufacturer: "Boeing", Model: "737-700", Category: narrow, CruiseSpeedMph: 514, Capacity: 140, Aliases: []string{"737-700", "B737-700", "BOEING 737-700"}},
	{ICAO: "B738", IATA: "738", Manufacturer: "Boeing", Model: "737-800", Category: narrow, CruiseSpeedMph: 514, Capacity: 189, Aliases: []string{"737-800", "B737-800", "BOEING 737-800"}},
	{ICAO: "B38M", IATA: "7M8", Manufacturer: "Boeing", Model: "737 MAX 8", Category: narrow, CruiseSpeedMph: 521, Capacity: 189, Aliases: []string{"737 MAX 8", "737-8", "B737 MAX 8", "737 MAX", "BOEING 737 MAX"}},
	{ICAO: "B739", IATA: "739", Manufacturer: "Boeing", Model: "737-900", Category: narrow, CruiseSpeedMph: 514, Capacity: 215, Aliases: []string{"737-900", "B737-900", "737-900ER"}},
	{ICAO: "B752", IATA: "752", Manufacturer: "Boeing", Model: "757-200", Category: narrow, CruiseSpeedMph: 530, Capacity: 200, Aliases: []string{"757-200", "BOEING 757"}},

	// Wide-body
	{ICAO: "B763", IATA: "763", Manufacturer: "Boeing", Model: "767-300", Category: wide, CruiseSpeedMph: 530, Capacity: 260, Aliases: []string{"767-300", "767-300ER", "BOEING 767"}},
	{ICAO: "B772", IATA: "772", Manufacturer: "Boeing", Model: "777-200", Category: wide, CruiseSpeedMph: 560, Capacity: 314, Aliases: []string{"777-200", "777-200ER", "777-200LR"}},
	{ICAO: "B77W", IATA: "77W", Manufacturer: "Boeing", Model: "777-300ER", Category: wide, CruiseSpeedMph: 560, Capacity: 396, Aliases: []string{"777-300ER", "B777-300ER", "BOEING 777"}},
	{ICAO: "B788", IATA: "788", Manufacturer: "Boeing", Model: "787-8", Category: wide, CruiseSpeedMph: 561, Capacity: 242, Aliases: []string{"787-8", "B787-8"}},
	{ICAO: "B789", IATA: "789", Manufacturer: "Boeing", Model: "787-9", Category: wide, CruiseSpeedMph: 561, Capacity: 290, Aliases: []string{"787-9", "B787-9", "787 DREAMLINER", "DREAMLINER"}},
	{ICAO: "B744", IATA: "744", Manufacturer: "Boeing", Model: "747-400", Category: wide, CruiseSpeedMph: 567, Capacity: 416, Aliases: []string{"747-400", "JUMBO JET"}},
	{ICAO: "B748", IATA: "74H", Manufacturer: "Boeing", Model: "747-8", Category: wide, CruiseSpeedMph: 570, Capacity: 467, Aliases: []string{"747-8", "747-8I"}},
	{ICAO: "A332", IATA: "332", Manufacturer: "Airbus", Model: "A330-200", Category: wide, CruiseSpeedMph: 541, Capacity: 247, Aliases: []string{"A330-200"}},
	{ICAO: "A333", IATA: "333", Manufacturer: "Airbus", Model: "A330-300", Category: wide, CruiseSpeedMph: 541, Capacity: 277, Aliases: []string{"A330-300", "AIRBUS A330"}},
	{ICAO: "A359", IATA: "359", Manufacturer: "Airbus", Model: "A350-900", Category: wide, CruiseSpeedMph: 561, Capacity: 315, Aliases: []string{"A350-900", "A350", "AIRBUS A350"}},
	{ICAO: "A388", IATA: "388", Manufacturer: "Airbus", Model: "A380-800", Category: wide, CruiseSpeedMph: 561, Capacity: 525, Aliases: []string{"A380-800", "A380", "AIRBUS A380"}},

	// Regional
	{ICAO: "AT76", IATA: "AT7", Manufacturer: "ATR", Model: "ATR 72-600", Category: regional, CruiseSpeedMph: 317, Capacity: 70, Aliases: []string{"ATR 72-600", "ATR72-600", "ATR 72", "ATR72"}},
	{ICAO: "DH8D", IATA: "DH4", Manufacturer: "De Havilland Canada", Model: "Dash 8-400", Category: regional, CruiseSpeedMph: 414, Capacity: 78, Aliases: []string{"Q400", "DASH 8-400", "DASH 8"}},
	{ICAO: "E190", IATA: "E90", Manufacturer: "Embraer", Model: "E190", Category: regional, CruiseSpeedMph: 518, Capacity: 100, Aliases: []string{"EMBRAER 190", "ERJ-190"}},
	{ICAO: "E195", IATA: "E95", Manufacturer: "Embraer", Model: "E195", Category: regional, CruiseSpeedMph: 518, Capacity: 120, Aliases: []string{"EMBRAER 195", "ERJ-195"}},
	{ICAO: "CRJ9", IATA: "CR9", Manufacturer: "Bombardier", Model: "CRJ900", Category: regional, CruiseSpeedMph: 515, Capacity: 90, Aliases: []string{"CRJ900", "CRJ-900"}},
}

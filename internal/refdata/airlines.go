package refdata

import "github.com/shiva/flightlog/internal/model"

func r(from, to string) model.Route { return model.Route{From: from, To: to} }

// airlineTable carries the carrier route patterns used by synthesis. Routes
// are listed roughly by frequency; synthesis never treats them as authoritative.
var airlineTable = []model.Airline{
	{IATA: "QP", ICAO: "AKJ", Name: "Akasa Air", Country: "IN", FleetType: "B38M",
		CommonRoutes: []model.Route{r("BOM", "BLR"), r("BLR", "BOM"), r("BOM", "DEL"), r("DEL", "BOM"), r("BLR", "DEL"), r("BOM", "GOI")}},
	{IATA: "6E", ICAO: "IGO", Name: "IndiGo", Country: "IN", FleetType: "A20N",
		CommonRoutes: []model.Route{r("DEL", "BOM"), r("BOM", "DEL"), r("BLR", "DEL"), r("DEL", "BLR"), r("HYD", "BLR"), r("MAA", "DEL")}},
	{IATA: "AI", ICAO: "AIC", Name: "Air India", Country: "IN", FleetType: "A20N",
		CommonRoutes: []model.Route{r("DEL", "BOM"), r("BOM", "DEL"), r("DEL", "LHR"), r("BOM", "JFK"), r("DEL", "SFO")}},
	{IATA: "UK", ICAO: "VTI", Name: "Vistara", Country: "IN", FleetType: "A20N",
		CommonRoutes: []model.Route{r("DEL", "BOM"), r("BOM", "DEL"), r("DEL", "BLR")}},
	{IATA: "SG", ICAO: "SEJ", Name: "SpiceJet", Country: "IN", FleetType: "B738",
		CommonRoutes: []model.Route{r("DEL", "BOM"), r("BOM", "GOI"), r("DEL", "CCU")}},
	{IATA: "BA", ICAO: "BAW", Name: "British Airways", Country: "GB", FleetType: "A320",
		CommonRoutes: []model.Route{r("LHR", "JFK"), r("JFK", "LHR"), r("LHR", "BOM"), r("LHR", "DEL")}},
	{IATA: "AA", ICAO: "AAL", Name: "American Airlines", Country: "US", FleetType: "B738",
		CommonRoutes: []model.Route{r("JFK", "LAX"), r("DFW", "ORD"), r("LAX", "JFK")}},
	{IATA: "UA", ICAO: "UAL", Name: "United Airlines", Country: "US", FleetType: "B739",
		CommonRoutes: []model.Route{r("SFO", "ORD"), r("ORD", "SFO"), r("SFO", "LHR")}},
	{IATA: "DL", ICAO: "DAL", Name: "Delta Air Lines", Country: "US", FleetType: "A321",
		CommonRoutes: []model.Route{r("ATL", "JFK"), r("JFK", "ATL"), r("ATL", "LAX")}},
	{IATA: "EK", ICAO: "UAE", Name: "Emirates", Country: "AE", FleetType: "B77W",
		CommonRoutes: []model.Route{r("DXB", "LHR"), r("LHR", "DXB"), r("DXB", "BOM"), r("BOM", "DXB"), r("DXB", "JFK")}},
	{IATA: "QR", ICAO: "QTR", Name: "Qatar Airways", Country: "QA", FleetType: "A359",
		CommonRoutes: []model.Route{r("DOH", "LHR"), r("DOH", "BOM"), r("BOM", "DOH")}},
	{IATA: "SQ", ICAO: "SIA", Name: "Singapore Airlines", Country: "SG", FleetType: "A359",
		CommonRoutes: []model.Route{r("SIN", "LHR"), r("SIN", "SYD"), r("BOM", "SIN")}},
	{IATA: "LH", ICAO: "DLH", Name: "Lufthansa", Country: "DE", FleetType: "A321",
		CommonRoutes: []model.Route{r("FRA", "JFK"), r("FRA", "DEL"), r("FRA", "LHR")}},
	{IATA: "AF", ICAO: "AFR", Name: "Air France", Country: "FR", FleetType: "A320",
		CommonRoutes: []model.Route{r("CDG", "JFK"), r("CDG", "BOM")}},
	{IATA: "KL", ICAO: "KLM", Name: "KLM", Country: "NL", FleetType: "B789",
		CommonRoutes: []model.Route{r("AMS", "JFK"), r("AMS", "DEL")}},
	{IATA: "LX", ICAO: "SWR", Name: "Swiss", Country: "CH", FleetType: "A333",
		CommonRoutes: []model.Route{r("ZRH", "JFK"), r("ZRH", "BOM")}},
	{IATA: "CX", ICAO: "CPA", Name: "Cathay Pacific", Country: "HK", FleetType: "A359",
		CommonRoutes: []model.Route{r("HKG", "LHR"), r("HKG", "SIN")}},
	{IATA: "NH", ICAO: "ANA", Name: "All Nippon Airways", Country: "JP", FleetType: "B789",
		CommonRoutes: []model.Route{r("HND", "JFK"), r("NRT", "SIN")}},
	{IATA: "QF", ICAO: "QFA", Name: "Qantas", Country: "AU", FleetType: "B738",
		CommonRoutes: []model.Route{r("SYD", "MEL"), r("MEL", "SYD"), r("SYD", "LHR")}},
	{IATA: "NZ", ICAO: "ANZ", Name: "Air New Zealand", Country: "NZ", FleetType: "B789",
		CommonRoutes: []model.Route{r("AKL", "SYD"), r("AKL", "LAX")}},
}

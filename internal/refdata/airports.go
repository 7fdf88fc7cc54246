package refdata

import "github.com/shiva/flightlog/internal/model"

// airportTable is the static airport reference table keyed by IATA code.
var airportTable = []model.Airport{
	// India
	{IATA: "BOM", ICAO: "VABB", Name: "Chhatrapati Shivaji Maharaj International", City: "Mumbai", Country: "IN", Continent: "AS", Lat: 19.0896, Lon: 72.8656, Elevation: 39, Timezone: "Asia/Kolkata"},
	{IATA: "BLR", ICAO: "VOBL", Name: "Kempegowda International", City: "Bengaluru", Country: "IN", Continent: "AS", Lat: 13.1986, Lon: 77.7066, Elevation: 3000, Timezone: "Asia/Kolkata"},
	{IATA: "DEL", ICAO: "VIDP", Name: "Indira Gandhi International", City: "Delhi", Country: "IN", Continent: "AS", Lat: 28.5562, Lon: 77.1000, Elevation: 777, Timezone: "Asia/Kolkata"},
	{IATA: "MAA", ICAO: "VOMM", Name: "Chennai International", City: "Chennai", Country: "IN", Continent: "AS", Lat: 12.9941, Lon: 80.1709, Elevation: 52, Timezone: "Asia/Kolkata"},
	{IATA: "CCU", ICAO: "VECC", Name: "Netaji Subhas Chandra Bose International", City: "Kolkata", Country: "IN", Continent: "AS", Lat: 22.6547, Lon: 88.4467, Elevation: 16, Timezone: "Asia/Kolkata"},
	{IATA: "HYD", ICAO: "VOHS", Name: "Rajiv Gandhi International", City: "Hyderabad", Country: "IN", Continent: "AS", Lat: 17.2403, Lon: 78.4294, Elevation: 2024, Timezone: "Asia/Kolkata"},
	{IATA: "GOI", ICAO: "VOGO", Name: "Dabolim", City: "Goa", Country: "IN", Continent: "AS", Lat: 15.3808, Lon: 73.8314, Elevation: 150, Timezone: "Asia/Kolkata"},
	{IATA: "AMD", ICAO: "VAAH", Name: "Sardar Vallabhbhai Patel International", City: "Ahmedabad", Country: "IN", Continent: "AS", Lat: 23.0772, Lon: 72.6347, Elevation: 189, Timezone: "Asia/Kolkata"},
	{IATA: "PNQ", ICAO: "VAPO", Name: "Pune", City: "Pune", Country: "IN", Continent: "AS", Lat: 18.5821, Lon: 73.9197, Elevation: 1942, Timezone: "Asia/Kolkata"},
	{IATA: "COK", ICAO: "VOCI", Name: "Cochin International", City: "Kochi", Country: "IN", Continent: "AS", Lat: 10.1520, Lon: 76.4019, Elevation: 30, Timezone: "Asia/Kolkata"},

	// Rest of Asia
	{IATA: "DXB", ICAO: "OMDB", Name: "Dubai International", City: "Dubai", Country: "AE", Continent: "AS", Lat: 25.2532, Lon: 55.3657, Elevation: 62, Timezone: "Asia/Dubai"},
	{IATA: "DOH", ICAO: "OTHH", Name: "Hamad International", City: "Doha", Country: "QA", Continent: "AS", Lat: 25.2731, Lon: 51.6081, Elevation: 13, Timezone: "Asia/Qatar"},
	{IATA: "SIN", ICAO: "WSSS", Name: "Singapore Changi", City: "Singapore", Country: "SG", Continent: "AS", Lat: 1.3644, Lon: 103.9915, Elevation: 22, Timezone: "Asia/Singapore"},
	{IATA: "HKG", ICAO: "VHHH", Name: "Hong Kong International", City: "Hong Kong", Country: "HK", Continent: "AS", Lat: 22.3080, Lon: 113.9185, Elevation: 28, Timezone: "Asia/Hong_Kong"},
	{IATA: "NRT", ICAO: "RJAA", Name: "Narita International", City: "Tokyo", Country: "JP", Continent: "AS", Lat: 35.7720, Lon: 140.3929, Elevation: 141, Timezone: "Asia/Tokyo"},
	{IATA: "HND", ICAO: "RJTT", Name: "Tokyo Haneda", City: "Tokyo", Country: "JP", Continent: "AS", Lat: 35.5494, Lon: 139.7798, Elevation: 35, Timezone: "Asia/Tokyo"},
	{IATA: "ICN", ICAO: "RKSI", Name: "Incheon International", City: "Seoul", Country: "KR", Continent: "AS", Lat: 37.4602, Lon: 126.4407, Elevation: 23, Timezone: "Asia/Seoul"},
	{IATA: "BKK", ICAO: "VTBS", Name: "Suvarnabhumi", City: "Bangkok", Country: "TH", Continent: "AS", Lat: 13.6900, Lon: 100.7501, Elevation: 5, Timezone: "Asia/Bangkok"},
	{IATA: "KUL", ICAO: "WMKK", Name: "Kuala Lumpur International", City: "Kuala Lumpur", Country: "MY", Continent: "AS", Lat: 2.7456, Lon: 101.7072, Elevation: 69, Timezone: "Asia/Kuala_Lumpur"},
	{IATA: "PEK", ICAO: "ZBAA", Name: "Beijing Capital International", City: "Beijing", Country: "CN", Continent: "AS", Lat: 40.0799, Lon: 116.6031, Elevation: 116, Timezone: "Asia/Shanghai"},
	{IATA: "PVG", ICAO: "ZSPD", Name: "Shanghai Pudong International", City: "Shanghai", Country: "CN", Continent: "AS", Lat: 31.1443, Lon: 121.8083, Elevation: 13, Timezone: "Asia/Shanghai"},

	// Europe
	{IATA: "LHR", ICAO: "EGLL", Name: "Heathrow", City: "London", Country: "GB", Continent: "EU", Lat: 51.4700, Lon: -0.4543, Elevation: 83, Timezone: "Europe/London"},
	{IATA: "CDG", ICAO: "LFPG", Name: "Charles de Gaulle", City: "Paris", Country: "FR", Continent: "EU", Lat: 49.0097, Lon: 2.5479, Elevation: 392, Timezone: "Europe/Paris"},
	{IATA: "FRA", ICAO: "EDDF", Name: "Frankfurt", City: "Frankfurt", Country: "DE", Continent: "EU", Lat: 50.0379, Lon: 8.5622, Elevation: 364, Timezone: "Europe/Berlin"},
	{IATA: "AMS", ICAO: "EHAM", Name: "Schiphol", City: "Amsterdam", Country: "NL", Continent: "EU", Lat: 52.3105, Lon: 4.7683, Elevation: -11, Timezone: "Europe/Amsterdam"},
	{IATA: "ZRH", ICAO: "LSZH", Name: "Zurich", City: "Zurich", Country: "CH", Continent: "EU", Lat: 47.4582, Lon: 8.5555, Elevation: 1416, Timezone: "Europe/Zurich"},
	{IATA: "MAD", ICAO: "LEMD", Name: "Adolfo Suarez Madrid-Barajas", City: "Madrid", Country: "ES", Continent: "EU", Lat: 40.4983, Lon: -3.5676, Elevation: 1998, Timezone: "Europe/Madrid"},
	{IATA: "FCO", ICAO: "LIRF", Name: "Leonardo da Vinci-Fiumicino", City: "Rome", Country: "IT", Continent: "EU", Lat: 41.8003, Lon: 12.2389, Elevation: 13, Timezone: "Europe/Rome"},
	{IATA: "IST", ICAO: "LTFM", Name: "Istanbul", City: "Istanbul", Country: "TR", Continent: "EU", Lat: 41.2753, Lon: 28.7519, Elevation: 325, Timezone: "Europe/Istanbul"},

	// North America
	{IATA: "JFK", ICAO: "KJFK", Name: "John F. Kennedy International", City: "New York", Country: "US", Continent: "NA", Lat: 40.6413, Lon: -73.7781, Elevation: 13, Timezone: "America/New_York"},
	{IATA: "LAX", ICAO: "KLAX", Name: "Los Angeles International", City: "Los Angeles", Country: "US", Continent: "NA", Lat: 33.9416, Lon: -118.4085, Elevation: 125, Timezone: "America/Los_Angeles"},
	{IATA: "SFO", ICAO: "KSFO", Name: "San Francisco International", City: "San Francisco", Country: "US", Continent: "NA", Lat: 37.6213, Lon: -122.3790, Elevation: 13, Timezone: "America/Los_Angeles"},
	{IATA: "ORD", ICAO: "KORD", Name: "O'Hare International", City: "Chicago", Country: "US", Continent: "NA", Lat: 41.9742, Lon: -87.9073, Elevation: 672, Timezone: "America/Chicago"},
	{IATA: "ATL", ICAO: "KATL", Name: "Hartsfield-Jackson Atlanta International", City: "Atlanta", Country: "US", Continent: "NA", Lat: 33.6407, Lon: -84.4277, Elevation: 1026, Timezone: "America/New_York"},
	{IATA: "DFW", ICAO: "KDFW", Name: "Dallas/Fort Worth International", City: "Dallas", Country: "US", Continent: "NA", Lat: 32.8998, Lon: -97.0403, Elevation: 607, Timezone: "America/Chicago"},
	{IATA: "YYZ", ICAO: "CYYZ", Name: "Toronto Pearson International", City: "Toronto", Country: "CA", Continent: "NA", Lat: 43.6777, Lon: -79.6248, Elevation: 569, Timezone: "America/Toronto"},
	{IATA: "MEX", ICAO: "MMMX", Name: "Benito Juarez International", City: "Mexico City", Country: "MX", Continent: "NA", Lat: 19.4361, Lon: -99.0719, Elevation: 7316, Timezone: "America/Mexico_City"},

	// South America
	{IATA: "GRU", ICAO: "SBGR", Name: "Sao Paulo/Guarulhos International", City: "Sao Paulo", Country: "BR", Continent: "SA", Lat: -23.4356, Lon: -46.4731, Elevation: 2459, Timezone: "America/Sao_Paulo"},
	{IATA: "EZE", ICAO: "SAEZ", Name: "Ministro Pistarini International", City: "Buenos Aires", Country: "AR", Continent: "SA", Lat: -34.8222, Lon: -58.5358, Elevation: 67, Timezone: "America/Argentina/Buenos_Aires"},

	// Africa
	{IATA: "JNB", ICAO: "FAOR", Name: "O. R. Tambo International", City: "Johannesburg", Country: "ZA", Continent: "AF", Lat: -26.1392, Lon: 28.2460, Elevation: 5558, Timezone: "Africa/Johannesburg"},
	{IATA: "CPT", ICAO: "FACT", Name: "Cape Town International", City: "Cape Town", Country: "ZA", Continent: "AF", Lat: -33.9715, Lon: 18.6021, Elevation: 151, Timezone: "Africa/Johannesburg"},
	{IATA: "NBO", ICAO: "HKJK", Name: "Jomo Kenyatta International", City: "Nairobi", Country: "KE", Continent: "AF", Lat: -1.3192, Lon: 36.9278, Elevation: 5330, Timezone: "Africa/Nairobi"},
	{IATA: "CAI", ICAO: "HECA", Name: "Cairo International", City: "Cairo", Country: "EG", Continent: "AF", Lat: 30.1219, Lon: 31.4056, Elevation: 382, Timezone: "Africa/Cairo"},

	// Oceania
	{IATA: "SYD", ICAO: "YSSY", Name: "Sydney Kingsford Smith", City: "Sydney", Country: "AU", Continent: "OC", Lat: -33.9399, Lon: 151.1753, Elevation: 21, Timezone: "Australia/Sydney"},
	{IATA: "MEL", ICAO: "YMML", Name: "Melbourne", City: "Melbourne", Country: "AU", Continent: "OC", Lat: -37.6690, Lon: 144.8410, Elevation: 434, Timezone: "Australia/Melbourne"},
	{IATA: "AKL", ICAO: "NZAA", Name: "Auckland", City: "Auckland", Country: "NZ", Continent: "OC", Lat: -37.0082, Lon: 174.7850, Elevation: 23, Timezone: "Pacific/Auckland"},
}

// cityAliases maps historical or alternate city names onto an airport.
var cityAliases = map[string]string{
	"BANGALORE":     "BLR",
	"BOMBAY":        "BOM",
	"MADRAS":        "MAA",
	"CALCUTTA":      "CCU",
	"NEW DELHI":     "DEL",
	"COCHIN":        "COK",
	"NEW YORK CITY": "JFK",
}

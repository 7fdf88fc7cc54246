package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/flightlog/internal/model"
)

func TestAirportLookup(t *testing.T) {
	bom, ok := Airport("bom")
	require.True(t, ok)
	assert.Equal(t, "VABB", bom.ICAO)
	assert.Equal(t, "IN", bom.Country)
	assert.Equal(t, "Asia/Kolkata", bom.Timezone)

	byICAO, ok := AirportByICAO("VOBL")
	require.True(t, ok)
	assert.Equal(t, "BLR", byICAO.IATA)

	_, ok = Airport("CSS")
	assert.False(t, ok)
}

func TestResolveAirport(t *testing.T) {
	a, ok := ResolveAirport("EGLL")
	require.True(t, ok)
	assert.Equal(t, "LHR", a.IATA)

	a, ok = ResolveAirport(" lhr ")
	require.True(t, ok)
	assert.Equal(t, "EGLL", a.ICAO)

	_, ok = ResolveAirport("LONDON")
	assert.False(t, ok)
}

func TestAirportByCity(t *testing.T) {
	tests := map[string]string{
		"Mumbai":    "BOM",
		"Bangalore": "BLR",
		"bengaluru": "BLR",
		"Bombay":    "BOM",
		"Tokyo":     "NRT",
	}
	for city, want := range tests {
		a, ok := AirportByCity(city)
		require.True(t, ok, city)
		assert.Equal(t, want, a.IATA, city)
	}
}

func TestAirportsSortedAndComplete(t *testing.T) {
	all := Airports()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].IATA, all[i].IATA)
	}
	for _, a := range all {
		assert.Len(t, a.IATA, 3, a.IATA)
		assert.Len(t, a.ICAO, 4, a.IATA)
		assert.NotEmpty(t, a.Timezone, a.IATA)
		assert.NotEmpty(t, a.Continent, a.IATA)
	}
}

func TestAircraftType(t *testing.T) {
	b38m, ok := AircraftType("B38M")
	require.True(t, ok)
	assert.Equal(t, model.CategoryNarrowBody, b38m.Category)

	byIATA, ok := AircraftType("77W")
	require.True(t, ok)
	assert.Equal(t, "B77W", byIATA.ICAO)
	assert.Equal(t, model.CategoryWideBody, byIATA.Category)
}

func TestMatchAircraft(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Operated by Airbus A320neo (VT-ISA)", "A20N"},
		{"Aircraft: A320", "A320"},
		{"Boeing 737 MAX 8 · VT-YAE", "B38M"},
		{"Boeing 737-800", "B738"},
		{"on a 787 Dreamliner", "B789"},
		{"ATR 72-600 turboprop", "AT76"},
	}
	for _, tt := range tests {
		got, ok := MatchAircraft(tt.text)
		require.True(t, ok, tt.text)
		assert.Equal(t, tt.want, got.ICAO, tt.text)
	}

	_, ok := MatchAircraft("no aircraft here")
	assert.False(t, ok)
}

func TestAirline(t *testing.T) {
	qp, ok := Airline("QP")
	require.True(t, ok)
	assert.Equal(t, "Akasa Air", qp.Name)
	assert.NotEmpty(t, qp.CommonRoutes)

	byICAO, ok := Airline("AKJ")
	require.True(t, ok)
	assert.Equal(t, "QP", byICAO.IATA)

	byName, ok := AirlineByName("indigo")
	require.True(t, ok)
	assert.Equal(t, "6E", byName.IATA)
}

func TestAirlineRoutesUseKnownAirports(t *testing.T) {
	for _, a := range Airlines() {
		for _, r := range a.CommonRoutes {
			_, ok := Airport(r.From)
			assert.True(t, ok, "%s route from %s", a.IATA, r.From)
			_, ok = Airport(r.To)
			assert.True(t, ok, "%s route to %s", a.IATA, r.To)
			assert.NotEqual(t, r.From, r.To)
		}
	}
}

func TestParseFlightNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"QP1457", "QP1457"},
		{" qp 01457 ", "QP1457"},
		{"6E123", "6E123"},
		{"ba0001", "BA1"},
		{"AKJ1457", "AKJ1457"},
		{"UA900A", "UA900A"},
	}
	for _, tt := range tests {
		got, err := NormalizeFlightNumber(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "1457", "Q", "QP", "QP12345", "QP-1457", "??12"} {
		_, err := ParseFlightNumber(bad)
		assert.ErrorIs(t, err, ErrInvalidFlightNumber, bad)
	}
}

func TestCallsign(t *testing.T) {
	fn, err := ParseFlightNumber("QP1457")
	require.NoError(t, err)
	assert.Equal(t, "AKJ1457", fn.Callsign())
	assert.Equal(t, 1457, fn.NumericValue())

	unknown, err := ParseFlightNumber("ZZ12")
	require.NoError(t, err)
	assert.Equal(t, "", unknown.Callsign())
}

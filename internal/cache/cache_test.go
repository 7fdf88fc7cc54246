package cache

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/pkg/db"
)

func sampleFlight() *model.EnrichedFlight {
	ist := time.FixedZone("IST", 5*3600+1800)
	dep := time.Date(2024, 3, 1, 6, 15, 30, 123456789, ist)
	return &model.EnrichedFlight{
		FlightNumber: "QP1457",
		Date:         "2024-03-01",
		Airline:      model.AirlineInfo{Code: "QP", Name: "Akasa Air"},
		Route: model.RouteInfo{
			Departure:       model.Airport{IATA: "BOM", Country: "IN"},
			Arrival:         model.Airport{IATA: "BLR", Country: "IN"},
			DistanceMiles:   518.447,
			DurationMinutes: 92,
			DistanceSource:  model.DistanceComputed,
			DurationSource:  model.DurationEstimated,
		},
		Schedule: model.Schedule{ScheduledDeparture: &dep},
		Status:   model.StatusScheduled,
		Provenance: model.Provenance{
			Source:     "aviationstack",
			Confidence: model.ConfidenceMedium,
			ResolvedAt: time.Date(2024, 3, 1, 1, 0, 0, 999, time.UTC),
		},
	}
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func TestFlightCache_HitWithinTTL(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	fc := New(NewMemoryStore(), time.Hour, c.Now)
	ctx := context.Background()

	stored, err := fc.Put(ctx, "QP1457|2024-03-01", sampleFlight())
	require.NoError(t, err)

	c.t = c.t.Add(59 * time.Minute)
	got, err := fc.Get(ctx, "QP1457|2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)

	a, _ := json.Marshal(stored)
	b, _ := json.Marshal(got)
	assert.Equal(t, string(a), string(b), "hit must re-encode byte-identical")
}

func TestFlightCache_StaleIsMiss(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	fc := New(NewMemoryStore(), time.Hour, c.Now)
	ctx := context.Background()

	_, err := fc.Put(ctx, "k", sampleFlight())
	require.NoError(t, err)

	c.t = c.t.Add(time.Hour)
	got, err := fc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got, "entry at TTL age must not be served")
}

func TestFlightCache_MissingKey(t *testing.T) {
	fc := New(NewMemoryStore(), time.Hour, nil)
	got, err := fc.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*model.CacheEntry, error) {
	return nil, errors.New("boom")
}
func (failingStore) Set(context.Context, *model.CacheEntry) error { return errors.New("boom") }

func TestFlightCache_StoreErrorsDegradeToMiss(t *testing.T) {
	fc := New(failingStore{}, time.Hour, nil)
	got, err := fc.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.Nil(t, got)

	canon, err := fc.Put(context.Background(), "k", sampleFlight())
	assert.Error(t, err)
	assert.NotNil(t, canon)
}

func TestFlightCache_UnencodableStillReturnsRecord(t *testing.T) {
	store := NewMemoryStore()
	fc := New(store, time.Hour, nil)
	f := sampleFlight()
	f.Route.DistanceMiles = math.NaN()

	canon, err := fc.Put(context.Background(), "k", f)
	assert.Error(t, err)
	require.NotNil(t, canon)
	assert.Equal(t, "QP1457", canon.FlightNumber)
	assert.Equal(t, 0, store.Len(), "nothing is written")
}

func TestCanonical(t *testing.T) {
	f := sampleFlight()
	c := Canonical(f)

	assert.Equal(t, time.UTC, c.Schedule.ScheduledDeparture.Location())
	assert.Equal(t, 0, c.Schedule.ScheduledDeparture.Nanosecond())
	assert.True(t, c.Schedule.ScheduledDeparture.Equal(f.Schedule.ScheduledDeparture.Truncate(time.Second)))
	assert.Equal(t, 0, c.Provenance.ResolvedAt.Nanosecond())
	// original untouched
	assert.NotEqual(t, 0, f.Schedule.ScheduledDeparture.Nanosecond())
}

// ─── Redis store ────────────────────────────────────────────

type fakeRedis struct {
	data map[string][]byte
	ttl  map[string]time.Duration
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(v))
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttl[key] = exp
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func TestRedisStore_RoundTrip(t *testing.T) {
	fr := &fakeRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
	store := NewRedisStore(fr, 2*time.Hour)
	ctx := context.Background()

	miss, err := store.Get(ctx, "QP1457|2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, miss)

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Set(ctx, &model.CacheEntry{Key: "QP1457|2024-03-01", Payload: []byte(`{"a":1}`), CreatedAt: created}))
	assert.Equal(t, 2*time.Hour, fr.ttl["flight:QP1457|2024-03-01"])

	got, err := store.Get(ctx, "QP1457|2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"a":1}`, string(got.Payload))
	assert.True(t, got.CreatedAt.Equal(created))
}

// ─── SQL store ──────────────────────────────────────────────

func TestSQLStore_Get_Unit(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectEntrySQL)).
		WithArgs("QP1457|2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "created_at"}).
			AddRow(`{"flight_number":"QP1457"}`, created.UnixNano()))

	store := NewSQLStore(sqlDB, DialectPostgres)
	got, err := store.Get(context.Background(), "QP1457|2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.JSONEq(t, `{"flight_number":"QP1457"}`, string(got.Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_GetMiss_Unit(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectEntrySQL)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "created_at"}))

	got, err := NewSQLStore(sqlDB, DialectPostgres).Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Set_Unit(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO flight_cache`).
		WithArgs("k", `{}`, created.UnixNano()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewSQLStore(sqlDB, DialectPostgres).Set(context.Background(),
		&model.CacheEntry{Key: "k", Payload: []byte(`{}`), CreatedAt: created})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SetError_Unit(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec(`INSERT INTO flight_cache`).WillReturnError(errors.New("disk full"))

	err = NewSQLStore(sqlDB, DialectPostgres).Set(context.Background(),
		&model.CacheEntry{Key: "k", Payload: []byte(`{}`), CreatedAt: time.Now()})
	assert.ErrorContains(t, err, "disk full")
}

func TestSQLStore_Rebind(t *testing.T) {
	s := NewSQLStore(nil, DialectSQLite)
	assert.Equal(t, "VALUES (?, ?, ?)", s.rebind("VALUES ($1, $2, $3)"))
	pg := NewSQLStore(nil, DialectPostgres)
	assert.Equal(t, "VALUES ($1, $2, $3)", pg.rebind("VALUES ($1, $2, $3)"))
}

func TestSQLStore_SQLite(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenSQL(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	store := NewSQLStore(sqlDB, DialectSQLite)
	require.NoError(t, store.EnsureSchema(ctx))

	c := &clock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	fc := New(store, time.Hour, c.Now)

	stored, err := fc.Put(ctx, "QP1457|2024-03-01", sampleFlight())
	require.NoError(t, err)
	// upsert over the same key
	_, err = fc.Put(ctx, "QP1457|2024-03-01", sampleFlight())
	require.NoError(t, err)

	got, err := fc.Get(ctx, "QP1457|2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)

	a, _ := json.Marshal(stored)
	b, _ := json.Marshal(got)
	assert.Equal(t, string(a), string(b))
}

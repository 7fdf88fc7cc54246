package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/flightlog/internal/model"
)

func TestMemoryStatsStore_UnknownUserIsEmpty(t *testing.T) {
	s := NewMemoryStatsStore()
	got, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Zero(t, got.Version)
	assert.NotNil(t, got.RouteCounts)
	assert.Empty(t, got.Airports)
}

func TestMemoryStatsStore_SaveBumpsVersion(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	next := EmptyStats("u1")
	next.TotalXP = 837
	next.Airports = []string{"BLR", "BOM"}
	v, err := s.Save(ctx, next, 0, LoggedFlight{FlightNumber: "QP1457", Date: "2024-03-01", Route: "BOM-BLR", XPDelta: 837})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, 837, got.TotalXP)
	assert.Equal(t, []string{"BLR", "BOM"}, got.Airports)

	// The returned value is a copy.
	got.Airports[0] = "XXX"
	again, _ := s.Get(ctx, "u1")
	assert.Equal(t, "BLR", again.Airports[0])
}

func TestMemoryStatsStore_StaleVersionConflicts(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	_, err := s.Save(ctx, EmptyStats("u1"), 0, LoggedFlight{})
	require.NoError(t, err)

	_, err = s.Save(ctx, EmptyStats("u1"), 0, LoggedFlight{})
	assert.ErrorIs(t, err, ErrStatsConflict)

	flights, err := s.Flights(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, flights, 1, "a rejected save must not log a flight")
}

func TestMemoryStatsStore_ConcurrentSavesOneWins(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Save(ctx, EmptyStats("u1"), 0, LoggedFlight{}); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestMemoryStatsStore_FlightsNewestFirst(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	var version int64
	for _, fn := range []string{"QP1457", "QP12", "QP3"} {
		v, err := s.Save(ctx, model.UserStats{UserID: "u1"}, version, LoggedFlight{FlightNumber: fn})
		require.NoError(t, err)
		version = v
	}

	flights, err := s.Flights(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, "QP3", flights[0].FlightNumber)
	assert.Equal(t, int64(3), flights[0].Version)
	assert.Equal(t, "QP12", flights[1].FlightNumber)
	assert.False(t, flights[0].LoggedAt.IsZero())
}

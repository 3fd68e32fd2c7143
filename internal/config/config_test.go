package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CalendarCacheTTL)
	assert.False(t, cfg.PendingBlocksAvailability)
	assert.False(t, cfg.ClampOccupancy)
	assert.Equal(t, []model.ReservationStatus{model.StatusConfirmed}, cfg.GuestStatsStatuses)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PENDING_BLOCKS_AVAILABILITY", "true")
	t.Setenv("CALENDAR_CACHE_TTL", "5m")
	t.Setenv("GUEST_STATS_STATUSES", "confirmed, checked_out")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.PendingBlocksAvailability)
	assert.Equal(t, 5*time.Minute, cfg.CalendarCacheTTL)
	assert.Equal(t,
		[]model.ReservationStatus{model.StatusConfirmed, model.StatusCheckedOut},
		cfg.GuestStatsStatuses)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CALENDAR_CACHE_TTL", "soon")
	t.Setenv("CLAMP_OCCUPANCY", "yes please")
	t.Setenv("GUEST_STATS_STATUSES", "gold,platinum")

	cfg := Load()
	assert.Equal(t, time.Minute, cfg.CalendarCacheTTL)
	assert.False(t, cfg.ClampOccupancy)
	assert.Equal(t, []model.ReservationStatus{model.StatusConfirmed}, cfg.GuestStatsStatuses)
}

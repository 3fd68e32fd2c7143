// Package config loads runtime configuration from environment variables,
// with a .env file honored in local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/albertoramos98/hostflow-homolog/internal/model"
)

// Config holds everything the process needs at startup.
type Config struct {
	HTTPAddr string

	// RedisAddr enables the calendar read-cache when non-empty.
	RedisAddr        string
	CalendarCacheTTL time.Duration

	// PendingBlocksAvailability adds pending holds to the blocking-status
	// set. Off by default: multiple pending holds may coexist and the
	// overlap invariant is enforced at confirm time instead.
	PendingBlocksAvailability bool

	// GuestStatsStatuses is the qualifying-status set for guest lifetime
	// statistics.
	GuestStatsStatuses []model.ReservationStatus

	// ClampOccupancy caps the reported occupancy rate at 100%.
	ClampOccupancy bool
}

// Load reads configuration, falling back to local-development defaults.
func Load() Config {
	// Ignore a missing .env; production injects real env vars.
	_ = godotenv.Load()

	return Config{
		HTTPAddr:                  getenv("HTTP_ADDR", ":8080"),
		RedisAddr:                 getenv("REDIS_ADDR", ""),
		CalendarCacheTTL:          getdur("CALENDAR_CACHE_TTL", time.Minute),
		PendingBlocksAvailability: getbool("PENDING_BLOCKS_AVAILABILITY", false),
		GuestStatsStatuses:        getstatuses("GUEST_STATS_STATUSES", []model.ReservationStatus{model.StatusConfirmed}),
		ClampOccupancy:            getbool("CLAMP_OCCUPANCY", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getdur(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getstatuses(key string, fallback []model.ReservationStatus) []model.ReservationStatus {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []model.ReservationStatus
	for _, part := range strings.Split(v, ",") {
		s := model.ReservationStatus(strings.TrimSpace(part))
		if model.StatusIn(s, model.AllStatuses()) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

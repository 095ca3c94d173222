package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr         string
	DatabasePath string
	// MasterSecret seeds the JWT signing key.
	MasterSecret string
	// AdminSecret guards the time override and announcement endpoints.
	AdminSecret string
	// SessionizeURL is the conference schedule source. Empty disables
	// background synchronization.
	SessionizeURL string
	// SyncInterval is how often the schedule source is polled.
	SyncInterval time.Duration
	// ScheduleTimezone is the location zone-less schedule timestamps are
	// interpreted in.
	ScheduleTimezone *time.Location
	Debug            bool
	AllowedOrigins   []string
}

// Overrides optionally overrides values from environment variables.
//
// A nil pointer means "use the environment/default value".
type Overrides struct {
	Addr             *string
	DatabasePath     *string
	MasterSecret     *string
	AdminSecret      *string
	SessionizeURL    *string
	SyncInterval     *time.Duration
	ScheduleTimezone *string
	Debug            *bool
}

// Load loads server configuration from environment variables and applies any
// explicit overrides.
func Load(overrides Overrides) (*Config, error) {
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := cast.ToIntE(portStr); err == nil {
			port = p
		}
	}

	addr := fmt.Sprintf(":%d", port)
	if overrides.Addr != nil {
		addr = *overrides.Addr
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./kotlinconf.db"
	}
	if overrides.DatabasePath != nil {
		dbPath = *overrides.DatabasePath
	}

	masterSecret := os.Getenv("KOTLINCONF_MASTER_SECRET")
	if overrides.MasterSecret != nil {
		masterSecret = *overrides.MasterSecret
	}
	if masterSecret == "" {
		return nil, fmt.Errorf("KOTLINCONF_MASTER_SECRET environment variable is required")
	}

	adminSecret := os.Getenv("KOTLINCONF_ADMIN_SECRET")
	if overrides.AdminSecret != nil {
		adminSecret = *overrides.AdminSecret
	}
	if adminSecret == "" {
		return nil, fmt.Errorf("KOTLINCONF_ADMIN_SECRET environment variable is required")
	}

	sessionizeURL := os.Getenv("SESSIONIZE_URL")
	if overrides.SessionizeURL != nil {
		sessionizeURL = *overrides.SessionizeURL
	}

	syncInterval := 5 * time.Minute
	if intervalStr := os.Getenv("SYNC_INTERVAL"); intervalStr != "" {
		if d, err := time.ParseDuration(intervalStr); err == nil && d > 0 {
			syncInterval = d
		}
	}
	if overrides.SyncInterval != nil {
		syncInterval = *overrides.SyncInterval
	}

	tzName := os.Getenv("SCHEDULE_TIMEZONE")
	if overrides.ScheduleTimezone != nil {
		tzName = *overrides.ScheduleTimezone
	}
	scheduleTZ := time.UTC
	if tzName != "" {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", tzName, err)
		}
		scheduleTZ = loc
	}

	debug := cast.ToBool(os.Getenv("DEBUG"))
	if overrides.Debug != nil {
		debug = *overrides.Debug
	}

	return &Config{
		Addr:             addr,
		DatabasePath:     dbPath,
		MasterSecret:     masterSecret,
		AdminSecret:      adminSecret,
		SessionizeURL:    sessionizeURL,
		SyncInterval:     syncInterval,
		ScheduleTimezone: scheduleTZ,
		Debug:            debug,
		AllowedOrigins:   []string{"*"}, // companion app runs on devices, allow all origins
	}, nil
}

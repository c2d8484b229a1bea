package config

import "time"

const (
	// Validation gate: detected plates at or above this confidence are
	// auto-approved, anything below goes to manual review.
	PlateApproveThreshold = 0.8

	// ML service
	MLRequestTimeout = 30 * time.Second
	MLHealthTimeout  = 5 * time.Second

	// Auth
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "civicpulse-api"

	// Notifier
	EventsChannel = "civicpulse:events"

	// Analytics
	StatsCacheKey = "stats:dashboard"
	StatsCacheTTL = 30 * time.Second
)

package storage

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Aaryan-549/CivicPulse/internal/config"
)

// Dashboard aggregation hits several tables; the admin UI polls it, so the
// result is parked in Redis for a short TTL. The cache is advisory: any
// Redis failure falls back to a live query.

// GetCachedDashboard returns the cached dashboard stats, if present.
func (s *Service) GetCachedDashboard() (*DashboardStats, bool) {
	if s.Redis == nil {
		return nil, false
	}
	raw, err := s.Redis.Get(s.Ctx, config.StatsCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("WARNING: dashboard cache read failed: %v", err)
		return nil, false
	}
	var stats DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Printf("WARNING: dashboard cache entry corrupt: %v", err)
		return nil, false
	}
	return &stats, true
}

// SetCachedDashboard stores the dashboard stats with the configured TTL.
func (s *Service) SetCachedDashboard(stats *DashboardStats) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, config.StatsCacheKey, raw, config.StatsCacheTTL).Err(); err != nil {
		log.Printf("WARNING: dashboard cache write failed: %v", err)
	}
}

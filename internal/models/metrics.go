package models

import "time"

// SystemMetrics is a lightweight aggregate of runtime counters exposed on
// the readiness endpoint.
type SystemMetrics struct {
	RequestCount   uint64    `json:"request_count"`
	AvgRequestMs   float64   `json:"avg_request_ms"`
	CacheHitRatio  float64   `json:"cache_hit_ratio"`
	SearchCount    uint64    `json:"search_count"`
	AvgSearchMs    float64   `json:"avg_search_ms"`
	GoroutineCount int       `json:"goroutine_count"`
	CollectedAt    time.Time `json:"collected_at"`
}

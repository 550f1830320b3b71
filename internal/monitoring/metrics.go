package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application-level counters. Counter fields use atomics; the
// maps and response-time sample are guarded by their mutexes.
type Metrics struct {
	RequestCount int64
	ErrorCount   int64
	CacheHits    int64
	CacheMisses  int64
	StartTime    time.Time

	responseTimes   []time.Duration
	responseTimesMu sync.RWMutex

	requestsByStatus map[int]int64
	statusMu         sync.RWMutex

	evaluationsByRole map[string]int64
	roleMu            sync.RWMutex
}

const responseTimeSampleCap = 1000

// NewMetrics creates a metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:         time.Now(),
		responseTimes:     make([]time.Duration, 0, responseTimeSampleCap),
		requestsByStatus:  make(map[int]int64),
		evaluationsByRole: make(map[string]int64),
	}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments the cache hit count.
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments the cache miss count.
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// RecordEvaluation counts a completed scoring run per role.
func (m *Metrics) RecordEvaluation(role string) {
	m.roleMu.Lock()
	m.evaluationsByRole[role]++
	m.roleMu.Unlock()
}

// RecordResponseTime keeps a bounded sample of response times for percentiles.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	m.responseTimesMu.Lock()
	if len(m.responseTimes) >= responseTimeSampleCap {
		m.responseTimes = m.responseTimes[1:]
	}
	m.responseTimes = append(m.responseTimes, duration)
	m.responseTimesMu.Unlock()
}

// RecordRequestByStatus tracks request counts per HTTP status code.
func (m *Metrics) RecordRequestByStatus(status int) {
	m.statusMu.Lock()
	m.requestsByStatus[status]++
	m.statusMu.Unlock()
}

// GetStats returns a snapshot of all metrics.
func (m *Metrics) GetStats() map[string]interface{} {
	m.statusMu.RLock()
	byStatus := make(map[int]int64, len(m.requestsByStatus))
	for status, count := range m.requestsByStatus {
		byStatus[status] = count
	}
	m.statusMu.RUnlock()

	m.roleMu.RLock()
	byRole := make(map[string]int64, len(m.evaluationsByRole))
	for role, count := range m.evaluationsByRole {
		byRole[role] = count
	}
	m.roleMu.RUnlock()

	return map[string]interface{}{
		"request_count":       atomic.LoadInt64(&m.RequestCount),
		"error_count":         atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":          atomic.LoadInt64(&m.CacheHits),
		"cache_misses":        atomic.LoadInt64(&m.CacheMisses),
		"uptime_seconds":      time.Since(m.StartTime).Seconds(),
		"requests_by_status":  byStatus,
		"evaluations_by_role": byRole,
		"response_time_p50":   m.percentile(0.50).Milliseconds(),
		"response_time_p95":   m.percentile(0.95).Milliseconds(),
		"response_time_p99":   m.percentile(0.99).Milliseconds(),
	}
}

func (m *Metrics) percentile(p float64) time.Duration {
	m.responseTimesMu.RLock()
	defer m.responseTimesMu.RUnlock()

	if len(m.responseTimes) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.responseTimes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

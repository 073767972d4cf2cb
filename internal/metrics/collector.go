// Package metrics provides in-memory request statistics collection.
package metrics

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// EndpointMetrics holds aggregated metrics for a single method+route pair.
type EndpointMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// EndpointSnapshot provides computed stats from raw endpoint metrics.
type EndpointSnapshot struct {
	Count     int64   `json:"count"`
	AvgTimeMs float64 `json:"avg_time_ms"`
	MinTimeMs int64   `json:"min_time_ms"`
	MaxTimeMs int64   `json:"max_time_ms"`
}

// Snapshot represents the full request statistics at a point in time.
type Snapshot struct {
	UptimeSeconds         float64                     `json:"uptime_seconds"`
	AverageResponseTimeMs float64                     `json:"average_response_time_ms"`
	EndpointStats         map[string]EndpointSnapshot `json:"endpoint_stats"`
	StatusCodes           map[string]int64            `json:"status_code_distribution"`
	ErrorCounts           map[string]int64            `json:"error_counts"`
}

// Collector aggregates in-memory request statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	endpoints map[string]*EndpointMetrics
	statuses  map[string]int64
	errors    map[string]int64
}

// NewCollector creates a new request statistics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		endpoints: make(map[string]*EndpointMetrics),
		statuses:  make(map[string]int64),
		errors:    make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for an endpoint.
// Caller must hold write lock.
func (c *Collector) getOrCreate(endpoint string) *EndpointMetrics {
	m, ok := c.endpoints[endpoint]
	if !ok {
		m = &EndpointMetrics{
			MinTime: time.Duration(math.MaxInt64),
		}
		c.endpoints[endpoint] = m
	}
	return m
}

// RecordRequest records one handled request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(method + " " + route)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}

	c.statuses[fmt.Sprintf("%d", status)]++
	if status >= 500 {
		c.errors["server_error"]++
	} else if status >= 400 {
		c.errors["client_error"]++
	}
}

// RecordError records an error occurrence under a named class.
func (c *Collector) RecordError(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[class]++
}

// Snapshot returns a point-in-time snapshot of all statistics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		EndpointStats: make(map[string]EndpointSnapshot, len(c.endpoints)),
		StatusCodes:   make(map[string]int64, len(c.statuses)),
		ErrorCounts:   make(map[string]int64, len(c.errors)),
	}

	var totalCount int64
	var totalTime time.Duration
	for endpoint, m := range c.endpoints {
		snap.EndpointStats[endpoint] = EndpointSnapshot{
			Count:     m.Count,
			AvgTimeMs: float64(m.TotalTime.Milliseconds()) / float64(m.Count),
			MinTimeMs: m.MinTime.Milliseconds(),
			MaxTimeMs: m.MaxTime.Milliseconds(),
		}
		totalCount += m.Count
		totalTime += m.TotalTime
	}
	if totalCount > 0 {
		snap.AverageResponseTimeMs = float64(totalTime.Milliseconds()) / float64(totalCount)
	}

	for status, n := range c.statuses {
		snap.StatusCodes[status] = n
	}
	for class, n := range c.errors {
		snap.ErrorCounts[class] = n
	}

	return snap
}

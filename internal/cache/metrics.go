package cache

import "sync/atomic"

type Metrics struct {
	hits   int64
	misses int64
	errors int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordHit()   { atomic.AddInt64(&m.hits, 1) }
func (m *Metrics) RecordMiss()  { atomic.AddInt64(&m.misses, 1) }
func (m *Metrics) RecordError() { atomic.AddInt64(&m.errors, 1) }

func (m *Metrics) Snapshot() map[string]interface{} {
	hits := atomic.LoadInt64(&m.hits)
	misses := atomic.LoadInt64(&m.misses)

	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return map[string]interface{}{
		"hits":     hits,
		"misses":   misses,
		"errors":   atomic.LoadInt64(&m.errors),
		"hit_rate": hitRate,
	}
}

package server

import (
	"sync/atomic"
)

// RoomMetrics are runtime counters for one room, safe to read from any
// goroutine.
type RoomMetrics struct {
	TickCount         int64
	InputsAccepted    int64
	InputsRejected    int64
	ChanFullDiscarded int64
	SendDropped       int64
	Clients           int64
	TotalTickNs       int64
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncRejected()          { atomic.AddInt64(&m.InputsRejected, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncSendDropped()       { atomic.AddInt64(&m.SendDropped, 1) }
func (m *RoomMetrics) SetClients(n int)      { atomic.StoreInt64(&m.Clients, int64(n)) }

func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot returns a copy suitable for JSON output.
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"inputs_rejected":     atomic.LoadInt64(&m.InputsRejected),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"send_dropped":        atomic.LoadInt64(&m.SendDropped),
		"clients":             atomic.LoadInt64(&m.Clients),
		"avg_tick_ms":         avgMs,
	}
}

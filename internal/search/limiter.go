package search

import (
	"context"
	"sync/atomic"
)

// StopReason records why a search stopped, for diagnostics.
type StopReason int

const (
	StopNone StopReason = iota
	StopInterrupt
	StopCycles
)

func (r StopReason) String() string {
	switch r {
	case StopInterrupt:
		return "Interrupt"
	case StopCycles:
		return "Cycles"
	default:
		return "None"
	}
}

// Limiter is the cooperative cancellation signal search workers poll
// between simulations, composed from an external context (the
// protocol layer's cancel / timer expiry) and an optional hard cycle
// cap, per spec.md §5.
type Limiter struct {
	ctx        context.Context
	maxCycles  uint64
	cycles     atomic.Uint64
	stop       atomic.Bool
	reason     atomic.Int32
}

// NewLimiter builds a Limiter bound to ctx. maxCycles == 0 means no
// cycle cap (bounded only by ctx).
func NewLimiter(ctx context.Context, maxCycles uint64) *Limiter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Limiter{ctx: ctx, maxCycles: maxCycles}
}

// Stop reports whether the search should stop: the context is done,
// SetStop(true) was called, or the cycle cap was reached.
func (l *Limiter) Stop() bool {
	if l.stop.Load() {
		return true
	}
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
		l.reason.Store(int32(StopInterrupt))
		return true
	default:
	}
	if l.maxCycles > 0 && l.cycles.Load() >= l.maxCycles {
		l.stop.Store(true)
		l.reason.Store(int32(StopCycles))
		return true
	}
	return false
}

// SetStop forces the search to stop.
func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
	if v {
		l.reason.Store(int32(StopInterrupt))
	}
}

// RecordCycle increments the completed-simulation counter.
func (l *Limiter) RecordCycle() { l.cycles.Add(1) }

// Cycles returns the number of simulations run so far.
func (l *Limiter) Cycles() uint64 { return l.cycles.Load() }

// Reason returns why the search stopped, valid after Stop() first
// returns true.
func (l *Limiter) Reason() StopReason { return StopReason(l.reason.Load()) }

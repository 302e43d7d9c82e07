package intro

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lixenwraith/scrolldeck/clock"
	"github.com/lixenwraith/scrolldeck/marker"
	"github.com/lixenwraith/scrolldeck/parameter"
)

// Options tunes the intro sequence
type Options struct {
	// Gather is when the reveal phase begins
	Gather time.Duration
	// Total is when the reveal phase ends and the gate completes
	Total  time.Duration
	Logger *slog.Logger
}

// DefaultOptions returns the compiled-in timings
func DefaultOptions() Options {
	return Options{
		Gather: parameter.IntroGather,
		Total:  parameter.IntroTotal,
	}
}

// Gate sequences the one-time intro and reports when navigation may begin
// Not safe for concurrent use, callers serialize through one dispatch loop
type Gate struct {
	marker marker.Marker
	clock  clock.Clock
	opts   Options
	log    *slog.Logger

	state State
	phase Phase

	gatherTimer clock.Timer
	revealTimer clock.Timer

	listeners []func(State, Phase)
}

// NewGate creates a gate in StateLoading
// The marker is not consulted until Start, the persisted flag is only legible after mount
func NewGate(m marker.Marker, c clock.Clock, opts Options) *Gate {
	def := DefaultOptions()
	if opts.Gather <= 0 {
		opts.Gather = def.Gather
	}
	if opts.Total <= opts.Gather {
		opts.Total = opts.Gather + (def.Total - def.Gather)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Gate{
		marker: m,
		clock:  c,
		opts:   opts,
		log:    log,
		state:  StateLoading,
		phase:  PhaseNone,
	}
}

// OnChange registers a listener called after every state or phase change
func (g *Gate) OnChange(fn func(State, Phase)) {
	g.listeners = append(g.listeners, fn)
}

// State returns the current state
func (g *Gate) State() State {
	return g.state
}

// Phase returns the current animation phase
func (g *Gate) Phase() Phase {
	return g.phase
}

// IsComplete reports whether navigation input may be accepted
func (g *Gate) IsComplete() bool {
	switch g.state {
	case StateDone:
		return true
	case StateLoading, StatePlaying:
		return false
	default:
		return false
	}
}

// Start is the first evaluation after mount, it only acts in StateLoading
// A seen marker skips straight to done, an absent or unreadable one plays the intro
func (g *Gate) Start(ctx context.Context) {
	switch g.state {
	case StateLoading:
	case StatePlaying, StateDone:
		return
	}

	if g.readSeen(ctx) {
		g.log.Debug("intro skipped", "reason", "seen")
		g.set(StateDone, PhaseNone)
		return
	}

	g.set(StatePlaying, PhaseGather)
	g.gatherTimer = g.clock.AfterFunc(g.opts.Gather, g.onGatherEnd)
	g.revealTimer = g.clock.AfterFunc(g.opts.Total, func() {
		g.Complete(context.Background())
	})
}

// Complete finishes the intro, persisting the seen marker
// Only meaningful while playing, done is terminal
func (g *Gate) Complete(ctx context.Context) {
	switch g.state {
	case StatePlaying:
	case StateLoading, StateDone:
		return
	}

	g.Stop()
	g.writeSeen(ctx)
	g.set(StateDone, PhaseNone)
}

// Stop cancels the pending phase timers, used when the owning session unmounts
func (g *Gate) Stop() {
	if g.gatherTimer != nil {
		g.gatherTimer.Stop()
		g.gatherTimer = nil
	}
	if g.revealTimer != nil {
		g.revealTimer.Stop()
		g.revealTimer = nil
	}
}

func (g *Gate) onGatherEnd() {
	g.gatherTimer = nil
	switch g.state {
	case StatePlaying:
		g.set(StatePlaying, PhaseReveal)
	case StateLoading, StateDone:
	}
}

// readSeen degrades every failure to "not seen"
func (g *Gate) readSeen(ctx context.Context) (seen bool) {
	if g.marker == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			g.log.Warn("intro marker read panicked", "panic", r)
			seen = false
		}
	}()

	seen, err := g.marker.Seen(ctx)
	if err != nil {
		g.log.Warn("intro marker read failed", "error", err)
		return false
	}
	return seen
}

// writeSeen never fails the transition, a lost write only replays the intro next time
func (g *Gate) writeSeen(ctx context.Context) {
	if g.marker == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.log.Warn("intro marker write panicked", "panic", r)
		}
	}()

	if err := g.marker.MarkSeen(ctx); err != nil {
		g.log.Warn("intro marker write failed", "error", err)
	}
}

func (g *Gate) set(s State, p Phase) {
	g.state = s
	g.phase = p
	g.log.Debug("intro state", "state", s.String(), "phase", p.String())
	for _, fn := range g.listeners {
		fn(s, p)
	}
}

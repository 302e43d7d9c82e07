package navigation

import (
	"io"
	"log/slog"
	"time"

	"github.com/lixenwraith/scrolldeck/clock"
	"github.com/lixenwraith/scrolldeck/probe"
)

// Gate reports whether the intro has finished
type Gate interface {
	IsComplete() bool
}

// Prober measures the scroll edges of the scene at index
type Prober interface {
	ProbeActive(index int) probe.Result
}

// ProberFunc adapts a function to Prober
type ProberFunc func(index int) probe.Result

// ProbeActive calls f
func (f ProberFunc) ProbeActive(index int) probe.Result {
	return f(index)
}

// Source identifies which input adapter requested a transition
type Source uint8

const (
	SourceDirect Source = iota
	SourceWheel
	SourceTouch
	SourceKey
)

// String returns the source name
func (s Source) String() string {
	switch s {
	case SourceDirect:
		return "direct"
	case SourceWheel:
		return "wheel"
	case SourceTouch:
		return "touch"
	case SourceKey:
		return "key"
	default:
		return "unknown"
	}
}

// Snapshot is the published navigation state
type Snapshot struct {
	Active int  `json:"active"`
	Count  int  `json:"count"`
	Locked bool `json:"locked"`
}

// Transition describes one accepted index change
type Transition struct {
	From   int
	To     int
	Source Source
}

// Options configures engine construction
type Options struct {
	// Initial is the deep-link start index, clamped into range
	Initial int
	Logger  *slog.Logger
}

// Engine owns the active index and the transition lock
// Not safe for concurrent use, every call must come from one dispatch loop
type Engine struct {
	count  int
	gate   Gate
	prober Prober
	clock  clock.Clock
	cfg    Config
	log    *slog.Logger

	active    int
	locked    bool
	lastWheel time.Time

	touchStartY float64
	touching    bool

	closed bool

	snapshotListeners   []func(Snapshot)
	transitionListeners []func(Transition)
}

// New creates an engine over count scenes
// A nil gate counts as complete, a nil prober reports every scene as permissive
func New(count int, gate Gate, prober Prober, c clock.Clock, cfg Config, opts Options) *Engine {
	if count < 1 {
		count = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		count:  count,
		gate:   gate,
		prober: prober,
		clock:  c,
		cfg:    cfg.normalized(),
		log:    log,
	}
	e.active = e.clamp(opts.Initial)
	return e
}

// OnChange registers a listener for every published state change
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.snapshotListeners = append(e.snapshotListeners, fn)
}

// OnTransition registers a listener for accepted index changes
func (e *Engine) OnTransition(fn func(Transition)) {
	e.transitionListeners = append(e.transitionListeners, fn)
}

// Active returns the current index
func (e *Engine) Active() int {
	return e.active
}

// Locked reports whether a transition is in flight
func (e *Engine) Locked() bool {
	return e.locked
}

// Count returns the scene count
func (e *Engine) Count() int {
	return e.count
}

// Snapshot returns the current published state
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Active: e.active, Count: e.count, Locked: e.locked}
}

// JumpTo is the direct-jump adapter, it bypasses the scroll-edge guard
// Returns true when the transition was taken
func (e *Engine) JumpTo(index int) bool {
	return e.jump(index, SourceDirect) == ReasonNone
}

// Advance jumps to the next scene
func (e *Engine) Advance() bool {
	return e.jump(e.active+1, SourceDirect) == ReasonNone
}

// Retreat jumps to the previous scene
func (e *Engine) Retreat() bool {
	return e.jump(e.active-1, SourceDirect) == ReasonNone
}

// Wheel handles one wheel event with vertical delta deltaY
func (e *Engine) Wheel(deltaY float64) Decision {
	if e.closed {
		return Decision{Reason: ReasonClosed}
	}

	now := e.clock.Now()
	d := DecideWheel(deltaY, e.probeActive(), e.lastWheel, now, e.cfg)
	d = e.apply(d, SourceWheel)
	if d.Accepted {
		e.lastWheel = now
	}
	return d
}

// TouchStart records the vertical coordinate at gesture start
func (e *Engine) TouchStart(y float64) {
	if e.closed {
		return
	}
	e.touchStartY = y
	e.touching = true
}

// TouchEnd completes the gesture at vertical coordinate y
func (e *Engine) TouchEnd(y float64) Decision {
	if e.closed {
		return Decision{Reason: ReasonClosed}
	}
	if !e.touching {
		return Decision{Reason: ReasonNoGesture}
	}
	start := e.touchStartY
	e.touching = false
	e.touchStartY = 0

	return e.apply(DecideTouch(start, y, e.probeActive(), e.cfg), SourceTouch)
}

// TouchCancel drops an in-progress gesture
func (e *Engine) TouchCancel() {
	e.touching = false
	e.touchStartY = 0
}

// Key handles a key press
func (e *Engine) Key(k Key) Decision {
	if e.closed {
		return Decision{Reason: ReasonClosed}
	}
	return e.apply(DecideKey(k, e.probeActive()), SourceKey)
}

// Close detaches listeners and clears the lock
// A cooldown timer still pending after Close fires into a closed engine and does nothing
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.locked = false
	e.touching = false
	e.snapshotListeners = nil
	e.transitionListeners = nil
}

// apply turns an adapter decision into a jumpTo call
func (e *Engine) apply(d Decision, src Source) Decision {
	var target int
	switch d.Direction {
	case DirNext:
		target = e.active + 1
	case DirPrev:
		target = e.active - 1
	case DirNone:
		e.log.Debug("input ignored", "source", src.String(), "reason", d.Reason.String())
		return d
	}

	if r := e.jump(target, src); r != ReasonNone {
		d.Reason = r
		return d
	}
	d.Accepted = true
	return d
}

// jump is the single path that mutates the active index
func (e *Engine) jump(index int, src Source) Reason {
	r := e.admit(index)
	if r != ReasonNone {
		e.log.Debug("jump rejected", "source", src.String(), "target", index, "reason", r.String())
		return r
	}

	from := e.active
	e.locked = true
	e.active = e.clamp(index)
	e.clock.AfterFunc(e.cfg.Cooldown, e.release)

	e.log.Debug("jump", "source", src.String(), "from", from, "to", e.active)
	for _, fn := range e.transitionListeners {
		fn(Transition{From: from, To: e.active, Source: src})
	}
	e.publish()
	return ReasonNone
}

// admit checks lock, idempotence and intro gating before any mutation
func (e *Engine) admit(index int) Reason {
	switch {
	case e.closed:
		return ReasonClosed
	case e.locked:
		return ReasonLocked
	case e.clamp(index) == e.active:
		return ReasonSameIndex
	case e.gate != nil && !e.gate.IsComplete():
		return ReasonIntro
	default:
		return ReasonNone
	}
}

func (e *Engine) release() {
	if e.closed {
		return
	}
	e.locked = false
	e.publish()
}

func (e *Engine) publish() {
	snap := e.Snapshot()
	for _, fn := range e.snapshotListeners {
		fn(snap)
	}
}

func (e *Engine) probeActive() probe.Result {
	if e.prober == nil {
		return probe.Permissive
	}
	return e.prober.ProbeActive(e.active)
}

func (e *Engine) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > e.count-1 {
		return e.count - 1
	}
	return index
}

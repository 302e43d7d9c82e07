package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/scrolldeck/clock"
	"github.com/lixenwraith/scrolldeck/intro"
	"github.com/lixenwraith/scrolldeck/marker"
	"github.com/lixenwraith/scrolldeck/navigation"
	"github.com/lixenwraith/scrolldeck/probe"
	"github.com/lixenwraith/scrolldeck/scene"
	"github.com/lixenwraith/scrolldeck/status"
)

// State is the snapshot published to presentation layers
type State struct {
	Session string      `json:"session"`
	Active  int         `json:"active"`
	SceneID string      `json:"scene"`
	Count   int         `json:"count"`
	Locked  bool        `json:"locked"`
	Intro   intro.State `json:"intro"`
	Phase   intro.Phase `json:"phase"`
	Ready   bool        `json:"ready"`
}

// Options configures a session
type Options struct {
	// Navigation left zero uses navigation.DefaultConfig
	Navigation navigation.Config
	Intro      intro.Options
	// Prober with zero tolerance falls back to the default tolerance
	Prober probe.Prober

	// Anchor is a deep-link fragment resolved through the deck links, wins over Initial
	Anchor  string
	Initial int

	// Clock defaults to the system clock
	Clock  clock.Clock
	Logger *slog.Logger
	// Stats receives input outcome counters, nil creates a private registry
	Stats *status.Registry
	// QueueSize is the dispatch loop capacity
	QueueSize int
}

// Session is one navigation session: registry, intro gate, probe and engine on one loop
type Session struct {
	id     string
	deck   *scene.Deck
	root   probe.ContentRoot
	prober probe.Prober
	loop   *Loop
	log    *slog.Logger
	stats  *status.Registry

	gate   *intro.Gate
	engine *navigation.Engine

	state atomic.Pointer[State]

	subsMu sync.Mutex
	subSeq int
	subs   map[int]func(State)

	mounted bool
	closed  bool
}

// New assembles a session, nothing runs until Run
func New(deck *scene.Deck, m marker.Marker, root probe.ContentRoot, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	base := opts.Clock
	if base == nil {
		base = clock.NewReal()
	}
	queue := opts.QueueSize
	if queue <= 0 {
		queue = 256
	}

	policy := opts.Navigation
	if policy.IsZero() {
		policy = navigation.DefaultConfig()
	}

	prober := opts.Prober
	if prober.Tolerance == 0 {
		prober = probe.New(-1)
	}

	stats := opts.Stats
	if stats == nil {
		stats = status.NewRegistry()
	}

	s := &Session{
		id:     uuid.NewString(),
		stats:  stats,
		deck:   deck,
		root:   root,
		prober: prober,
		loop:   NewLoop(queue),
		subs:   make(map[int]func(State)),
	}
	s.log = log.With("session", s.id)

	// Timer callbacks join the same queue as input events
	clk := clock.Dispatching{Base: base, Post: s.loop.Post}

	introOpts := opts.Intro
	introOpts.Logger = s.log.With("component", "intro")
	s.gate = intro.NewGate(m, clk, introOpts)

	initial := opts.Initial
	if opts.Anchor != "" {
		initial = deck.Links.Resolve(opts.Anchor)
	}

	s.engine = navigation.New(
		deck.Registry.Len(),
		s.gate,
		navigation.ProberFunc(s.probeScene),
		clk,
		policy,
		navigation.Options{Initial: initial, Logger: s.log.With("component", "navigation")},
	)

	s.gate.OnChange(func(intro.State, intro.Phase) { s.publish() })
	s.engine.OnChange(func(navigation.Snapshot) { s.publish() })
	s.engine.OnTransition(func(tr navigation.Transition) {
		s.stats.Inc("transition." + tr.Source.String())
	})
	s.storeState()

	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Deck returns the scene deck
func (s *Session) Deck() *scene.Deck {
	return s.deck
}

// OnTransition registers a listener for accepted transitions, call before Run
// Listeners run on the loop goroutine
func (s *Session) OnTransition(fn func(navigation.Transition)) {
	s.engine.OnTransition(fn)
}

// Subscribe registers fn for every state change and returns its cancel func
// fn runs on the loop goroutine and must not block
func (s *Session) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Stats returns a copy of the input outcome counters
func (s *Session) Stats() map[string]int64 {
	return s.stats.Snapshot()
}

// State returns the latest published snapshot, safe from any goroutine
func (s *Session) State() State {
	return *s.state.Load()
}

// Run mounts the session, dispatches until ctx ends, then unmounts
// Mount runs on this goroutine before any queued input is dispatched
func (s *Session) Run(ctx context.Context) error {
	s.mount(ctx)
	err := s.loop.Run(ctx)
	s.unmount()
	return err
}

// Done is closed once the session stops dispatching
func (s *Session) Done() <-chan struct{} {
	return s.loop.Done()
}

// Do runs fn on the loop and waits, for host work that must not interleave with navigation
func (s *Session) Do(fn func()) bool {
	return s.loop.Call(fn)
}

// Wheel forwards a wheel event
func (s *Session) Wheel(deltaY float64) navigation.Decision {
	var d navigation.Decision
	if !s.loop.Call(func() { d = s.engine.Wheel(deltaY) }) {
		return navigation.Decision{Reason: navigation.ReasonClosed}
	}
	s.record("wheel", d)
	return d
}

// TouchStart forwards a gesture start
func (s *Session) TouchStart(y float64) {
	s.loop.Call(func() { s.engine.TouchStart(y) })
}

// TouchEnd forwards a gesture end
func (s *Session) TouchEnd(y float64) navigation.Decision {
	var d navigation.Decision
	if !s.loop.Call(func() { d = s.engine.TouchEnd(y) }) {
		return navigation.Decision{Reason: navigation.ReasonClosed}
	}
	s.record("touch", d)
	return d
}

// TouchCancel drops a gesture in progress
func (s *Session) TouchCancel() {
	s.loop.Call(func() { s.engine.TouchCancel() })
}

// Key forwards a key press
func (s *Session) Key(k navigation.Key) navigation.Decision {
	var d navigation.Decision
	if !s.loop.Call(func() { d = s.engine.Key(k) }) {
		return navigation.Decision{Reason: navigation.ReasonClosed}
	}
	s.record("key", d)
	return d
}

// JumpTo is the direct-jump path for indicators and external controls
func (s *Session) JumpTo(index int) bool {
	var ok bool
	s.loop.Call(func() { ok = s.engine.JumpTo(index) })
	if ok {
		s.stats.Inc("jump.accepted")
	} else {
		s.stats.Inc("jump.refused")
	}
	return ok
}

// JumpToAnchor resolves a deep-link fragment and jumps to it
// Returns the resolved index and whether the jump was taken
// An unknown fragment is refused with index -1 and leaves the deck where it is
func (s *Session) JumpToAnchor(fragment string) (int, bool) {
	index, ok := s.deck.Links.Lookup(fragment)
	if !ok {
		s.stats.Inc("anchor.unknown")
		s.log.Debug("anchor ignored", "fragment", fragment, "reason", "unknown")
		return -1, false
	}
	return index, s.JumpTo(index)
}

// SkipIntro completes a playing intro immediately
func (s *Session) SkipIntro() {
	s.loop.Call(func() { s.gate.Complete(context.Background()) })
}

func (s *Session) mount(ctx context.Context) {
	if s.mounted {
		return
	}
	s.mounted = true
	s.log.Info("session mounted", "scenes", s.deck.Registry.Len(), "active", s.engine.Active())
	s.gate.Start(ctx)
	s.publish()
}

func (s *Session) unmount() {
	if s.closed {
		return
	}
	s.closed = true
	s.gate.Stop()
	s.engine.Close()
	s.log.Info("session unmounted", "active", s.engine.Active())
}

// record counts an input outcome as "<source>.accepted" or "<source>.<reason>"
func (s *Session) record(source string, d navigation.Decision) {
	if d.Accepted {
		s.stats.Inc(source + ".accepted")
		return
	}
	s.stats.Inc(source + "." + d.Reason.String())
}

func (s *Session) probeScene(index int) probe.Result {
	d, ok := s.deck.Registry.At(index)
	if !ok {
		return probe.Permissive
	}
	return s.prober.Probe(s.root, d)
}

func (s *Session) storeState() State {
	snap := s.engine.Snapshot()
	st := State{
		Session: s.id,
		Active:  snap.Active,
		Count:   snap.Count,
		Locked:  snap.Locked,
		Intro:   s.gate.State(),
		Phase:   s.gate.Phase(),
		Ready:   s.gate.IsComplete(),
	}
	if d, ok := s.deck.Registry.At(snap.Active); ok {
		st.SceneID = d.ID
	}
	s.state.Store(&st)
	return st
}

func (s *Session) publish() {
	st := s.storeState()

	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

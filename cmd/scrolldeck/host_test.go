package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrolldeck/clock"
	"github.com/lixenwraith/scrolldeck/input"
	"github.com/lixenwraith/scrolldeck/marker"
	"github.com/lixenwraith/scrolldeck/render"
	"github.com/lixenwraith/scrolldeck/scene"
	"github.com/lixenwraith/scrolldeck/session"
)

type hostHarness struct {
	h       *host
	sess    *session.Session
	content *render.Deck
	clk     *clock.Manual
}

func newHostHarness(t *testing.T) *hostHarness {
	t.Helper()

	reg, err := scene.New([]scene.Descriptor{
		{ID: "hero", Title: "Hero", Body: "Welcome."},
		{ID: "features", Title: "Features", Body: strings.Repeat("feature line\n\n", 40), OwnsInternalScroll: true},
		{ID: "outro", Title: "Outro", Body: "Bye."},
	})
	if err != nil {
		t.Fatalf("scene.New: %v", err)
	}
	deck := &scene.Deck{Registry: reg, Links: scene.NewLinks(reg, nil)}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	clk := clock.NewManual(time.Unix(1000, 0))
	content := render.NewDeck(reg, 16)
	sess := session.New(deck, marker.NewMemory(true), content, session.Options{Clock: clk})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sess.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	h := newHost(screen, sess, content, input.NewMachine(16, 40), true, nil)
	h.presenter.Resize()
	return &hostHarness{h: h, sess: sess, content: content, clk: clk}
}

// settle lets the cooldown expire and waits for the release to run on the loop
func (hh *hostHarness) settle() {
	hh.clk.Advance(time.Second)
	hh.sess.Do(func() {})
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestHostKeyNavigation(t *testing.T) {
	hh := newHostHarness(t)

	if !hh.h.handle(key(tcell.KeyDown, 0)) {
		t.Fatal("down should not quit")
	}
	st := hh.sess.State()
	if st.Active != 1 || !st.Locked {
		t.Fatalf("after down: %+v", st)
	}

	// Locked, the second press is absorbed
	hh.h.handle(key(tcell.KeyDown, 0))
	if hh.sess.State().Active != 1 {
		t.Errorf("locked deck moved to %d", hh.sess.State().Active)
	}

	hh.settle()
	if hh.sess.State().Locked {
		t.Error("lock should release after cooldown")
	}
}

func TestHostWheelScrollsEmbeddedBody(t *testing.T) {
	hh := newHostHarness(t)
	hh.h.handle(key(tcell.KeyRune, '2'))
	hh.settle()
	if hh.sess.State().SceneID != "features" {
		t.Fatalf("jump landed on %q", hh.sess.State().SceneID)
	}

	hh.h.handle(tcell.NewEventMouse(10, 10, tcell.WheelDown, tcell.ModNone))

	r, _ := hh.content.Region("features")
	if r.ScrollOffset() != 32 {
		t.Errorf("body offset = %v px, want 32", r.ScrollOffset())
	}
	if hh.sess.State().Active != 1 {
		t.Error("wheel inside scrollable body must not navigate")
	}

	// Wheel up at the top edge leaves the scene
	hh.h.handle(tcell.NewEventMouse(10, 10, tcell.WheelUp, tcell.ModNone))
	hh.h.handle(tcell.NewEventMouse(10, 10, tcell.WheelUp, tcell.ModNone))
	hh.settle()
	if hh.sess.State().Active != 0 {
		t.Errorf("wheel up at top edge should retreat, active=%d", hh.sess.State().Active)
	}
}

func TestHostIndicatorTap(t *testing.T) {
	hh := newHostHarness(t)
	w, h := hh.h.screen.Size()
	top := (h - 3) / 2

	hh.h.handle(tcell.NewEventMouse(w-2, top+2, tcell.Button1, tcell.ModNone))
	hh.h.handle(tcell.NewEventMouse(w-2, top+2, tcell.ButtonNone, tcell.ModNone))

	if hh.sess.State().Active != 2 {
		t.Errorf("indicator tap should jump to 2, active=%d", hh.sess.State().Active)
	}
}

func TestHostSwipe(t *testing.T) {
	hh := newHostHarness(t)

	// 5 rows up at 16px per row is past the 50px threshold
	hh.h.handle(tcell.NewEventMouse(20, 15, tcell.Button1, tcell.ModNone))
	hh.h.handle(tcell.NewEventMouse(20, 10, tcell.ButtonNone, tcell.ModNone))

	if hh.sess.State().Active != 1 {
		t.Errorf("swipe up should advance, active=%d", hh.sess.State().Active)
	}
}

func TestHostQuit(t *testing.T) {
	hh := newHostHarness(t)
	if hh.h.handle(key(tcell.KeyRune, 'q')) {
		t.Error("q should quit")
	}
}

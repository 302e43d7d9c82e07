package main

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrolldeck/input"
	"github.com/lixenwraith/scrolldeck/navigation"
	"github.com/lixenwraith/scrolldeck/render"
	"github.com/lixenwraith/scrolldeck/session"
)

// host applies translated terminal input to a session and its content root
// Native scrolling of embedded bodies happens here whenever the engine lets an input through
type host struct {
	screen    tcell.Screen
	sess      *session.Session
	content   *render.Deck
	presenter *render.Presenter
	machine   *input.Machine
	log       *slog.Logger

	skippable bool

	// Cell where the current pointer gesture began
	startX, startY int
}

func newHost(screen tcell.Screen, sess *session.Session, content *render.Deck, m *input.Machine, skippable bool, log *slog.Logger) *host {
	return &host{
		screen:    screen,
		sess:      sess,
		content:   content,
		presenter: render.NewPresenter(screen, content),
		machine:   m,
		log:       log,
		skippable: skippable,
	}
}

// handle processes one event, false means quit
func (h *host) handle(ev tcell.Event) bool {
	in := h.machine.Process(ev)

	switch in.Type {
	case input.IntentNone:
	case input.IntentQuit:
		return false
	case input.IntentResize:
		h.presenter.Resize()
		h.screen.Sync()
	case input.IntentSkipIntro:
		if h.skippable {
			h.sess.SkipIntro()
		}
	case input.IntentNext, input.IntentPrev:
		d := h.sess.Key(in.Key)
		if !d.PreventDefault {
			h.nativeKey(in.Key)
		}
	case input.IntentJump:
		h.sess.JumpTo(in.Index)
	case input.IntentScrollLine:
		h.content.Scroll(h.activeID(), in.Rows)
	case input.IntentWheel:
		d := h.sess.Wheel(in.DeltaY)
		if !d.PreventDefault {
			h.content.Scroll(h.activeID(), h.content.RowsFor(in.DeltaY))
		}
	case input.IntentTouchStart:
		h.startX, h.startY = in.CellX, in.CellY
		h.sess.TouchStart(in.Y)
	case input.IntentTouchEnd:
		h.touchEnd(in)
	}

	h.draw()
	return true
}

func (h *host) touchEnd(in input.Intent) {
	// A tap on an indicator dot is a direct jump, not a swipe
	if in.CellX == h.startX && in.CellY == h.startY {
		st := h.sess.State()
		if index, ok := h.presenter.IndicatorAt(in.CellX, in.CellY, st.Count); ok {
			h.sess.TouchCancel()
			h.sess.JumpTo(index)
			return
		}
	}

	d := h.sess.TouchEnd(in.Y)
	if !d.PreventDefault {
		// Dragging up moves the content down
		h.content.Scroll(h.activeID(), h.startY-in.CellY)
	}
}

func (h *host) nativeKey(k navigation.Key) {
	id := h.activeID()
	switch k {
	case navigation.KeySpace:
		h.content.Page(id, true)
	case navigation.KeyDown:
		h.content.Scroll(id, 1)
	case navigation.KeyUp:
		h.content.Scroll(id, -1)
	}
}

func (h *host) activeID() string {
	return h.sess.State().SceneID
}

func (h *host) draw() {
	h.presenter.Draw(h.sess.State())
}

package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scrolldeck/intro"
	"github.com/lixenwraith/scrolldeck/parameter"
	"github.com/lixenwraith/scrolldeck/session"
)

// Styles used by the presenter
var (
	styleBase    = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHeading = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBullet  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleCode    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleRule    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDot     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDotOn   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleLock    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleMascot  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

const defaultMascot = "◆ scrolldeck ◆"

// Presenter draws session state onto a tcell screen
// Purely reactive: reads state and the deck, never drives navigation
type Presenter struct {
	screen tcell.Screen
	deck   *Deck
}

// NewPresenter creates a presenter for screen over deck
func NewPresenter(screen tcell.Screen, deck *Deck) *Presenter {
	return &Presenter{screen: screen, deck: deck}
}

// Resize reflows scene bodies to the current screen size
func (p *Presenter) Resize() {
	w, h := p.screen.Size()
	p.deck.Layout(w, h)
}

// Draw renders one frame for st
func (p *Presenter) Draw(st session.State) {
	p.screen.Clear()
	w, h := p.screen.Size()

	switch st.Intro {
	case intro.StateLoading:
		p.text(centerX(w, "…"), h/2, "…", styleDim)
	case intro.StatePlaying:
		p.drawIntro(st, w, h)
	case intro.StateDone:
		p.drawScene(st, w, h)
	}

	p.screen.Show()
}

func (p *Presenter) drawIntro(st session.State, w, h int) {
	mascot := defaultMascot
	if d, ok := p.deck.reg.At(0); ok && d.Mascot != "" {
		mascot = d.Mascot
	}

	switch st.Phase {
	case intro.PhaseNone:
	case intro.PhaseGather:
		p.text(centerX(w, mascot), h/2, mascot, styleDim)
	case intro.PhaseReveal:
		p.text(centerX(w, mascot), h/2, mascot, styleMascot.Bold(true))
		if d, ok := p.deck.reg.At(0); ok && d.Title != "" {
			p.text(centerX(w, d.Title), h/2+2, d.Title, styleTitle)
		}
	}

	hint := "enter to skip"
	p.text(centerX(w, hint), h-1, hint, styleDim)
}

func (p *Presenter) drawScene(st session.State, w, h int) {
	desc, ok := p.deck.reg.At(st.Active)
	if !ok {
		return
	}
	margin := parameter.TermBodyMargin

	title := desc.Title
	if title == "" {
		title = desc.ID
	}
	p.text(margin, 0, title, styleTitle)
	bw, _ := BodyArea(w, h)
	for x := 0; x < bw; x++ {
		p.screen.SetContent(margin+x, 1, '─', nil, styleRule)
	}

	lines, more := p.deck.Visible(desc.ID)
	for i, line := range lines {
		p.text(margin, 2+i, line.Text, lineStyle(line.Kind))
	}

	p.drawIndicators(st, w, h)

	footer := fmt.Sprintf("%d/%d", st.Active+1, st.Count)
	if desc.OwnsInternalScroll && more {
		footer += "  ↓ more"
	}
	p.text(margin, h-1, footer, styleDim)

	if st.Locked {
		p.text(w-2, 0, "⧗", styleLock)
	}
}

// drawIndicators draws one dot per scene down the right edge
func (p *Presenter) drawIndicators(st session.State, w, h int) {
	x := w - 2
	top := (h - st.Count) / 2
	if top < 1 {
		top = 1
	}
	for i := 0; i < st.Count && top+i < h-1; i++ {
		r, style := '○', styleDot
		if i == st.Active {
			r, style = '●', styleDotOn
		}
		p.screen.SetContent(x, top+i, r, nil, style)
	}
}

// IndicatorAt maps a click at (x, y) to a scene index for direct jumps
func (p *Presenter) IndicatorAt(x, y, count int) (int, bool) {
	w, h := p.screen.Size()
	if x != w-2 {
		return 0, false
	}
	top := (h - count) / 2
	if top < 1 {
		top = 1
	}
	i := y - top
	if i < 0 || i >= count || y >= h-1 {
		return 0, false
	}
	return i, true
}

func (p *Presenter) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func lineStyle(k LineKind) tcell.Style {
	switch k {
	case LineHeading:
		return styleHeading
	case LineBullet:
		return styleBullet
	case LineCode:
		return styleCode
	case LineRule:
		return styleRule
	default:
		return styleBase
	}
}

func centerX(w int, s string) int {
	x := (w - runewidth.StringWidth(s)) / 2
	if x < 0 {
		return 0
	}
	return x
}

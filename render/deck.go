package render

import (
	"sync"

	"github.com/lixenwraith/scrolldeck/parameter"
	"github.com/lixenwraith/scrolldeck/probe"
	"github.com/lixenwraith/scrolldeck/scene"
)

// Deck is the content root of the terminal host
// Holds the flattened body of every scene and a viewport for each embed scene
// Safe for concurrent use: the host scrolls while the session probes
type Deck struct {
	mu         sync.RWMutex
	reg        *scene.Registry
	cellHeight float64

	width  int
	height int

	bodies map[string][]Line
	views  map[string]*Viewport
}

// NewDeck creates a content root for reg, cellHeight <= 0 uses the default
func NewDeck(reg *scene.Registry, cellHeight float64) *Deck {
	if cellHeight <= 0 {
		cellHeight = parameter.TermCellHeight
	}
	d := &Deck{
		reg:        reg,
		cellHeight: cellHeight,
		bodies:     make(map[string][]Line),
		views:      make(map[string]*Viewport),
	}
	for _, id := range reg.Embedded() {
		d.views[id] = NewViewport(0, 0, cellHeight)
	}
	return d
}

// BodyArea returns the body size for a screen of width x height cells
func BodyArea(width, height int) (int, int) {
	w := width - 2*parameter.TermBodyMargin - parameter.TermIndicatorGap
	h := height - 4 // title, rule, footer, spacer
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Layout reflows every body for a screen of width x height cells
// Viewport offsets are kept and reclamped
func (d *Deck) Layout(width, height int) {
	bw, bh := BodyArea(width, height)

	d.mu.Lock()
	defer d.mu.Unlock()

	if bw == d.width && bh == d.height && len(d.bodies) > 0 {
		return
	}
	d.width, d.height = bw, bh

	for _, desc := range d.reg.All() {
		lines := Flatten(desc.Body, bw)
		d.bodies[desc.ID] = lines
		if v, ok := d.views[desc.ID]; ok {
			v.Total = len(lines)
			v.SetVisible(bh)
		}
	}
}

// Region returns a point-in-time copy of the scene's viewport
// Non-embed scenes have no region
func (d *Deck) Region(sceneID string) (probe.Region, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v, ok := d.views[sceneID]
	if !ok {
		return nil, false
	}
	snap := *v
	return &snap, true
}

// Scroll moves an embed scene's body by rows, reports whether the offset changed
func (d *Deck) Scroll(sceneID string, rows int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.views[sceneID]
	if !ok {
		return false
	}
	before := v.Offset
	v.ScrollBy(rows)
	return v.Offset != before
}

// Page moves an embed scene's body by half a viewport, down when forward is set
func (d *Deck) Page(sceneID string, forward bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.views[sceneID]
	if !ok {
		return false
	}
	before := v.Offset
	if forward {
		v.PageDown()
	} else {
		v.PageUp()
	}
	return v.Offset != before
}

// Visible returns the rows of a scene body currently on screen and whether more sit below
func (d *Deck) Visible(sceneID string) ([]Line, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	lines := d.bodies[sceneID]
	offset := 0
	if v, ok := d.views[sceneID]; ok {
		offset = v.Offset
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + d.height
	more := end < len(lines)
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]Line, end-offset)
	copy(out, lines[offset:end])
	return out, more
}

// RowsFor converts a wheel delta in px into whole rows, at least one row
func (d *Deck) RowsFor(deltaY float64) int {
	rows := int(deltaY / d.cellHeight)
	switch {
	case rows == 0 && deltaY > 0:
		return 1
	case rows == 0 && deltaY < 0:
		return -1
	}
	return rows
}

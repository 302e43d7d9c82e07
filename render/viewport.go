package render

// Viewport tracks the scroll position of a scene body measured in rows
// Pixel accessors let the probe measure it like any other scroll region
type Viewport struct {
	Offset     int // First visible row
	Total      int // Total row count
	Visible    int // Visible row count (viewport height)
	CellHeight float64
}

// NewViewport creates a viewport over total rows with visible rows shown
func NewViewport(total, visible int, cellHeight float64) *Viewport {
	return &Viewport{
		Total:      total,
		Visible:    visible,
		CellHeight: cellHeight,
	}
}

// --- Scroll manipulation ---

// ScrollBy adjusts offset by delta, clamping to valid range
func (v *Viewport) ScrollBy(delta int) {
	v.Offset += delta
	v.Clamp()
}

// ScrollTo sets offset to specific position
func (v *Viewport) ScrollTo(pos int) {
	v.Offset = pos
	v.Clamp()
}

// Clamp ensures offset is within valid range
func (v *Viewport) Clamp() {
	v.Offset = ClampScroll(v.Offset, v.Visible, v.Total)
}

// PageUp scrolls up by half visible height
func (v *Viewport) PageUp() {
	v.ScrollBy(-PageDelta(v.Visible))
}

// PageDown scrolls down by half visible height
func (v *Viewport) PageDown() {
	v.ScrollBy(PageDelta(v.Visible))
}

// SetTotal updates total count and reclamps
func (v *Viewport) SetTotal(total int) {
	v.Total = total
	v.Clamp()
}

// SetVisible updates visible count and reclamps
func (v *Viewport) SetVisible(visible int) {
	v.Visible = visible
	v.Clamp()
}

// --- Position queries ---

// AtTop returns true if scrolled to top
func (v *Viewport) AtTop() bool {
	return v.Offset == 0
}

// AtBottom returns true if scrolled to bottom
func (v *Viewport) AtBottom() bool {
	if v.Total <= v.Visible {
		return true
	}
	return v.Offset >= v.Total-v.Visible
}

// --- Pixel measurements ---

// ContentHeight returns the full body height in px
func (v *Viewport) ContentHeight() float64 {
	return float64(v.Total) * v.CellHeight
}

// VisibleHeight returns the shown height in px
func (v *Viewport) VisibleHeight() float64 {
	return float64(v.Visible) * v.CellHeight
}

// ScrollOffset returns the scroll position in px
func (v *Viewport) ScrollOffset() float64 {
	return float64(v.Offset) * v.CellHeight
}

// PageDelta returns the half-page scroll step
func PageDelta(visible int) int {
	delta := visible / 2
	if delta < 1 {
		delta = 1
	}
	return delta
}

// ClampScroll ensures scroll offset is within valid range
func ClampScroll(scroll, visible, total int) int {
	if total <= visible {
		return 0
	}
	maxScroll := total - visible
	if scroll < 0 {
		return 0
	}
	if scroll > maxScroll {
		return maxScroll
	}
	return scroll
}

package probe

import (
	"math"

	"github.com/lixenwraith/scrolldeck/parameter"
	"github.com/lixenwraith/scrolldeck/scene"
)

// Region is a measurable scroll container, all values in pixels
type Region interface {
	ContentHeight() float64
	VisibleHeight() float64
	ScrollOffset() float64
}

// ContentRoot locates the scroll region belonging to a scene
type ContentRoot interface {
	Region(sceneID string) (Region, bool)
}

// Result is a fresh measurement of the active scene's scroll edges
type Result struct {
	Scrollable bool
	AtTop      bool
	AtBottom   bool
}

// Permissive is reported for anything that cannot hold navigation back
var Permissive = Result{Scrollable: false, AtTop: true, AtBottom: true}

// Prober measures scroll regions with a pixel tolerance
type Prober struct {
	Tolerance float64
}

// New creates a prober, negative tolerance falls back to the default
func New(tolerance float64) Prober {
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = parameter.ProbeTolerance
	}
	return Prober{Tolerance: tolerance}
}

// Probe measures the region of scene d under root
// Scenes without internal scroll and missing or malformed regions are Permissive
func (p Prober) Probe(root ContentRoot, d scene.Descriptor) Result {
	if !d.OwnsInternalScroll || root == nil {
		return Permissive
	}

	r, ok := root.Region(d.ID)
	if !ok || r == nil {
		return Permissive
	}

	return p.Measure(r.ContentHeight(), r.VisibleHeight(), r.ScrollOffset())
}

// Measure applies the edge rules to raw measurements
func (p Prober) Measure(content, visible, offset float64) Result {
	if !valid(content) || !valid(visible) || !valid(offset) {
		return Permissive
	}

	eps := p.Tolerance
	return Result{
		Scrollable: content > visible+eps,
		AtTop:      offset <= eps,
		AtBottom:   offset+visible >= content-eps,
	}
}

func valid(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

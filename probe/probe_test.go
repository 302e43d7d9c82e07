package probe

import (
	"math"
	"testing"

	"github.com/lixenwraith/scrolldeck/scene"
)

type fakeRegion struct {
	content, visible, offset float64
}

func (f fakeRegion) ContentHeight() float64 { return f.content }
func (f fakeRegion) VisibleHeight() float64 { return f.visible }
func (f fakeRegion) ScrollOffset() float64  { return f.offset }

type fakeRoot map[string]Region

func (f fakeRoot) Region(id string) (Region, bool) {
	r, ok := f[id]
	return r, ok
}

func TestNonEmbedSceneIsPermissive(t *testing.T) {
	p := New(5)
	root := fakeRoot{"hero": fakeRegion{content: 5000, visible: 800, offset: 100}}

	got := p.Probe(root, scene.Descriptor{ID: "hero"})
	if got != Permissive {
		t.Errorf("Expected %+v for non-embed scene, got %+v", Permissive, got)
	}
}

func TestMissingOrMalformedRootIsPermissive(t *testing.T) {
	p := New(5)
	embed := scene.Descriptor{ID: "docs", OwnsInternalScroll: true}

	tests := []struct {
		name string
		root ContentRoot
	}{
		{"nil root", nil},
		{"missing region", fakeRoot{}},
		{"nil region", fakeRoot{"docs": nil}},
		{"NaN content", fakeRoot{"docs": fakeRegion{content: math.NaN(), visible: 800}}},
		{"Inf offset", fakeRoot{"docs": fakeRegion{content: 2000, visible: 800, offset: math.Inf(1)}}},
		{"negative visible", fakeRoot{"docs": fakeRegion{content: 2000, visible: -1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Probe(tc.root, embed); got != Permissive {
				t.Errorf("Expected permissive result, got %+v", got)
			}
		})
	}
}

func TestMeasureEdges(t *testing.T) {
	p := New(5)

	tests := []struct {
		name                     string
		content, visible, offset float64
		want                     Result
	}{
		{"fits exactly", 800, 800, 0, Result{false, true, true}},
		{"overflow within tolerance", 804, 800, 0, Result{false, true, true}},
		{"top of long content", 2000, 800, 0, Result{true, true, false}},
		{"sub-pixel near top", 2000, 800, 4.6, Result{true, true, false}},
		{"middle", 2000, 800, 600, Result{true, false, false}},
		{"sub-pixel short of bottom", 2000, 800, 1195.5, Result{true, false, true}},
		{"bottom", 2000, 800, 1200, Result{true, false, true}},
		{"just outside tolerance", 2000, 800, 1194, Result{true, false, false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Measure(tc.content, tc.visible, tc.offset)
			if got != tc.want {
				t.Errorf("Measure(%v, %v, %v): expected %+v, got %+v", tc.content, tc.visible, tc.offset, tc.want, got)
			}
		})
	}
}

func TestProbeUsesRegion(t *testing.T) {
	p := New(5)
	root := fakeRoot{"docs": fakeRegion{content: 2000, visible: 800, offset: 600}}

	got := p.Probe(root, scene.Descriptor{ID: "docs", OwnsInternalScroll: true})
	want := Result{Scrollable: true, AtTop: false, AtBottom: false}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestNewDefaultsTolerance(t *testing.T) {
	if p := New(-1); p.Tolerance != 5 {
		t.Errorf("Expected default tolerance 5, got %v", p.Tolerance)
	}
	if p := New(0); p.Tolerance != 0 {
		t.Errorf("Expected explicit zero tolerance to be kept, got %v", p.Tolerance)
	}
}

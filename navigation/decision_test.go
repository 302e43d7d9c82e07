package navigation

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/scrolldeck/probe"
)

func TestEdgeAllows(t *testing.T) {
	tests := []struct {
		res  probe.Result
		dir  Direction
		want bool
	}{
		{probe.Permissive, DirNext, true},
		{probe.Permissive, DirPrev, true},
		{midScroll, DirNext, false},
		{midScroll, DirPrev, false},
		{atScrollTop, DirPrev, true},
		{atScrollTop, DirNext, false},
		{atScrollBase, DirNext, true},
		{atScrollBase, DirPrev, false},
		{midScroll, DirNone, false},
	}

	for _, tc := range tests {
		if got := EdgeAllows(tc.res, tc.dir); got != tc.want {
			t.Errorf("EdgeAllows(%+v, %s): expected %v, got %v", tc.res, tc.dir, tc.want, got)
		}
	}
}

func TestDecideWheel(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 1, 1, 0, 0, 10, 0, time.UTC)
	recent := now.Add(-100 * time.Millisecond)
	stale := now.Add(-2 * time.Second)

	tests := []struct {
		name    string
		delta   float64
		res     probe.Result
		last    time.Time
		wantDir Direction
		prevent bool
		reason  Reason
	}{
		{"advance", 30, probe.Permissive, time.Time{}, DirNext, true, ReasonNone},
		{"retreat", -30, probe.Permissive, stale, DirPrev, true, ReasonNone},
		{"exact threshold", 20, probe.Permissive, time.Time{}, DirNext, true, ReasonNone},
		{"below threshold", 19.9, probe.Permissive, time.Time{}, DirNone, true, ReasonThreshold},
		{"debounced", 120, probe.Permissive, recent, DirNone, true, ReasonDebounce},
		{"inside embed", 120, midScroll, time.Time{}, DirNone, false, ReasonEdgeGuard},
		{"embed bottom", 120, atScrollBase, time.Time{}, DirNext, true, ReasonNone},
		{"zero", 0, probe.Permissive, time.Time{}, DirNone, false, ReasonNoDirection},
		{"NaN", math.NaN(), probe.Permissive, time.Time{}, DirNone, false, ReasonNoDirection},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := DecideWheel(tc.delta, tc.res, tc.last, now, cfg)
			if d.Direction != tc.wantDir || d.PreventDefault != tc.prevent || d.Reason != tc.reason {
				t.Errorf("Expected {%s %v %s}, got {%s %v %s}",
					tc.wantDir, tc.prevent, tc.reason, d.Direction, d.PreventDefault, d.Reason)
			}
		})
	}
}

func TestDecideTouch(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		start, end float64
		res        probe.Result
		want       Direction
		reason     Reason
	}{
		{"tap", 300, 302, probe.Permissive, DirNone, ReasonThreshold},
		{"short", 300, 251, probe.Permissive, DirNone, ReasonThreshold},
		{"swipe up", 300, 250, probe.Permissive, DirNext, ReasonNone},
		{"swipe down", 200, 280, probe.Permissive, DirPrev, ReasonNone},
		{"swipe up mid embed", 300, 100, midScroll, DirNone, ReasonEdgeGuard},
		{"swipe up embed bottom", 300, 100, atScrollBase, DirNext, ReasonNone},
		{"swipe down embed top", 100, 300, atScrollTop, DirPrev, ReasonNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := DecideTouch(tc.start, tc.end, tc.res, cfg)
			if d.Direction != tc.want || d.Reason != tc.reason {
				t.Errorf("Expected {%s %s}, got {%s %s}", tc.want, tc.reason, d.Direction, d.Reason)
			}
		})
	}
}

func TestDecideKey(t *testing.T) {
	tests := []struct {
		key     Key
		res     probe.Result
		want    Direction
		prevent bool
	}{
		{KeyDown, probe.Permissive, DirNext, true},
		{KeySpace, probe.Permissive, DirNext, true},
		{KeyUp, probe.Permissive, DirPrev, true},
		{KeyNone, probe.Permissive, DirNone, false},
		{KeyDown, midScroll, DirNone, false},
		{KeySpace, atScrollBase, DirNext, true},
		{KeyUp, atScrollBase, DirNone, false},
	}

	for _, tc := range tests {
		d := DecideKey(tc.key, tc.res)
		if d.Direction != tc.want || d.PreventDefault != tc.prevent {
			t.Errorf("DecideKey(%d, %+v): expected {%s %v}, got {%s %v}",
				tc.key, tc.res, tc.want, tc.prevent, d.Direction, d.PreventDefault)
		}
	}
}

func TestReasonStrings(t *testing.T) {
	if ReasonIntro.String() != "intro_incomplete" {
		t.Errorf("Unexpected name %q", ReasonIntro.String())
	}
	if Reason(200).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range reason")
	}
}

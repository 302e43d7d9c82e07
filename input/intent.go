package input

import "github.com/lixenwraith/scrolldeck/navigation"

// IntentType discriminates host actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit      // q, Esc, Ctrl+C
	IntentResize    // Terminal resize event
	IntentSkipIntro // Enter while the intro plays

	// Scene navigation
	IntentNext // Down, Space, PgDn
	IntentPrev // Up, PgUp
	IntentJump // 1-9, direct jump to a scene

	// Embedded content
	IntentScrollLine // j/k, scroll the active body without navigating

	// Pointer
	IntentWheel      // Mouse wheel
	IntentTouchStart // Button1 pressed
	IntentTouchEnd   // Button1 released
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentResize:     "resize",
	IntentSkipIntro:  "skip_intro",
	IntentNext:       "next",
	IntentPrev:       "prev",
	IntentJump:       "jump",
	IntentScrollLine: "scroll_line",
	IntentWheel:      "wheel",
	IntentTouchStart: "touch_start",
	IntentTouchEnd:   "touch_end",
}

// String returns the intent name used in logs
func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is one translated terminal event
type Intent struct {
	Type IntentType

	// Key is the navigation key for Next/Prev
	Key navigation.Key
	// Index is the target scene for Jump
	Index int
	// Rows is the line count for ScrollLine
	Rows int
	// DeltaY is the wheel delta in px, positive scrolls down
	DeltaY float64
	// Y is the pointer position in px for touch intents
	Y float64

	// Cell position of pointer intents
	CellX, CellY int
}

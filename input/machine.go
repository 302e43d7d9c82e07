package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrolldeck/parameter"
)

// Machine translates tcell events into intents
// Tracks button state so a press, drag and release read as one gesture
type Machine struct {
	keyTable   *KeyTable
	cellHeight float64
	wheelDelta float64

	pressed bool
}

// NewMachine creates a translator, non-positive sizes use the defaults
func NewMachine(cellHeight, wheelDelta float64) *Machine {
	if cellHeight <= 0 {
		cellHeight = parameter.TermCellHeight
	}
	if wheelDelta <= 0 {
		wheelDelta = parameter.TermWheelDelta
	}
	return &Machine{
		keyTable:   DefaultKeyTable(),
		cellHeight: cellHeight,
		wheelDelta: wheelDelta,
	}
}

// Reset drops any gesture in progress
func (m *Machine) Reset() {
	m.pressed = false
}

// Pressed reports whether a pointer gesture is in progress
func (m *Machine) Pressed() bool {
	return m.pressed
}

// Process translates one event
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		m.pressed = false
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

func (m *Machine) processKey(ev *tcell.EventKey) Intent {
	entry, ok := m.keyTable.Lookup(ev)
	if !ok {
		return Intent{}
	}
	switch entry.Intent {
	case IntentJump:
		return Intent{Type: IntentJump, Index: entry.Index}
	case IntentScrollLine:
		return Intent{Type: IntentScrollLine, Rows: entry.Rows}
	default:
		return Intent{Type: entry.Intent, Key: entry.Key}
	}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) Intent {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return Intent{Type: IntentWheel, DeltaY: -m.wheelDelta, CellX: x, CellY: y}
	case buttons&tcell.WheelDown != 0:
		return Intent{Type: IntentWheel, DeltaY: m.wheelDelta, CellX: x, CellY: y}
	case buttons&tcell.Button1 != 0:
		if m.pressed {
			// Drag, the gesture resolves on release
			return Intent{}
		}
		m.pressed = true
		return Intent{Type: IntentTouchStart, Y: m.px(y), CellX: x, CellY: y}
	case buttons == tcell.ButtonNone && m.pressed:
		m.pressed = false
		return Intent{Type: IntentTouchEnd, Y: m.px(y), CellX: x, CellY: y}
	}
	return Intent{}
}

func (m *Machine) px(row int) float64 {
	return float64(row) * m.cellHeight
}

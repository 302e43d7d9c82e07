package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrolldeck/navigation"
)

// KeyEntry describes what a key does
type KeyEntry struct {
	Intent IntentType
	Key    navigation.Key
	Rows   int
	Index  int
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]KeyEntry

	// Rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	t := &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyEnter:  {Intent: IntentSkipIntro},
			tcell.KeyDown:   {Intent: IntentNext, Key: navigation.KeyDown},
			tcell.KeyPgDn:   {Intent: IntentNext, Key: navigation.KeySpace},
			tcell.KeyUp:     {Intent: IntentPrev, Key: navigation.KeyUp},
			tcell.KeyPgUp:   {Intent: IntentPrev, Key: navigation.KeyUp},
		},
		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			' ': {Intent: IntentNext, Key: navigation.KeySpace},
			'j': {Intent: IntentScrollLine, Rows: 1},
			'k': {Intent: IntentScrollLine, Rows: -1},
		},
	}
	for r := '1'; r <= '9'; r++ {
		t.Runes[r] = KeyEntry{Intent: IntentJump, Index: int(r - '1')}
	}
	return t
}

// Lookup resolves a key event against the table
func (t *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModCtrl != 0 && ev.Rune() == 'c' {
			return KeyEntry{Intent: IntentQuit}, true
		}
		e, ok := t.Runes[ev.Rune()]
		return e, ok
	}
	e, ok := t.SpecialKeys[ev.Key()]
	return e, ok
}

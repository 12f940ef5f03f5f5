package host

import (
	"github.com/nsf/termbox-go"
)

// keymap maps the left hand block of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keymap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var quitKeys = map[termbox.Key]struct{}{
	termbox.KeyCtrlC: {},
	termbox.KeyEsc:   {},
}

// keyAction is the meaning of a terminal event for the interpreter.
type keyAction int

const (
	actionNone keyAction = iota
	actionKey
	actionQuit
)

// translateEvent maps a terminal event to a key index or a quit request.
func translateEvent(ev termbox.Event) (keyAction, byte) {
	if ev.Type != termbox.EventKey {
		return actionNone, 0
	}
	if _, ok := quitKeys[ev.Key]; ok {
		return actionQuit, 0
	}

	ch := ev.Ch
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	key, ok := keymap[ch]
	if !ok {
		return actionNone, 0
	}
	return actionKey, key
}

// Package keypad contains the 16 key input model shared between the
// interpreter and its host.
package keypad

import (
	"errors"
	"fmt"
	"strings"
)

// KeyCount is the number of logical keys 0x0-0xF.
const KeyCount = 16

// ErrQuit is returned by an Input when the user asked to end the run
// while the interpreter was waiting for a key.
var ErrQuit = errors.New("quit requested")

// State is a snapshot of the pressed keys, indexed by logical key.
type State [KeyCount]bool

// Input is the blocking key source used by the wait-for-key instruction.
type Input interface {
	// WaitKey blocks until a key is pressed and returns its index 0-15.
	// There is no timeout; an error is only returned when the host can
	// not deliver keys anymore.
	WaitKey() (byte, error)
}

// Pressed returns whether the given key is pressed.
func (s State) Pressed(key byte) bool {
	if int(key) >= KeyCount {
		return false
	}
	return s[key]
}

// Press returns a copy of the state with the given keys pressed.
func (s State) Press(keys ...byte) State {
	for _, key := range keys {
		if int(key) < KeyCount {
			s[key] = true
		}
	}
	return s
}

// String returns the pressed keys as hex digits, for example "1A".
func (s State) String() string {
	var sb strings.Builder
	for key, pressed := range s {
		if pressed {
			fmt.Fprintf(&sb, "%X", key)
		}
	}
	return sb.String()
}

// Queue is an Input that returns keys from a fixed sequence.
// It is used for scripted and headless runs.
type Queue struct {
	keys []byte
}

// NewQueue returns a queue that delivers the given keys in order.
func NewQueue(keys ...byte) *Queue {
	return &Queue{keys: keys}
}

// WaitKey returns the next queued key or ErrQuit if the queue is drained.
func (q *Queue) WaitKey() (byte, error) {
	if len(q.keys) == 0 {
		return 0, ErrQuit
	}
	key := q.keys[0]
	q.keys = q.keys[1:]
	return key, nil
}

// Len returns the number of keys left in the queue.
func (q *Queue) Len() int {
	return len(q.keys)
}

package interpreter

import (
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// Event reports timer edges that occurred during a cycle.
type Event uint8

const (
	// DelayExpired is set when the delay timer went from 1 to 0.
	DelayExpired Event = 1 << iota
	// SoundExpired is set when the sound timer went from 1 to 0.
	SoundExpired
)

// Has returns whether all bits of flag are set.
func (e Event) Has(flag Event) bool {
	return e&flag == flag
}

// Cycle executes a single instruction and counts both timers down.
//
// Unknown instructions are skipped. A RangeError is returned when the
// instruction would access storage out of range; in that case neither
// the machine state nor the timers were changed. An error returned by
// the key input while waiting for a key is passed through.
func (in *Interpreter) Cycle() (Event, error) {
	word, err := in.Memory.ReadWord(in.PC)
	if err != nil {
		return 0, &RangeError{PC: in.PC, Err: err}
	}

	ins := opcode.Decode(word)
	in.logger.Debug("Executing",
		log.Hex("pc", in.PC),
		log.Hex("opcode", word),
		log.String("pattern", ins.Kind.Pattern()),
		log.Stringer("instruction", ins))

	if err := in.execute(ins); err != nil {
		return 0, err
	}

	in.cycles++
	return in.tickTimers(), nil
}

// tickTimers decrements both timers if they are running.
func (in *Interpreter) tickTimers() Event {
	var event Event

	if in.DelayTimer > 0 {
		if in.DelayTimer == 1 {
			event |= DelayExpired
		}
		in.DelayTimer--
	}

	if in.SoundTimer > 0 {
		if in.SoundTimer == 1 {
			event |= SoundExpired
		}
		in.SoundTimer--
	}

	return event
}

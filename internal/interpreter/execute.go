package interpreter

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// execute applies a decoded instruction to the machine state and sets the
// program counter to the next instruction.
//
// Flag producing instructions write VF before the result register, so an
// instruction that targets VF itself ends up with the result, and an
// operand read from VF after the flag write sees the flag.
//
//nolint:funlen,cyclop,gocognit // a single exhaustive switch over all variants
func (in *Interpreter) execute(ins opcode.Instruction) error {
	next := in.PC + opcode.Size
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case opcode.Clear:
		in.Display.Clear()

	case opcode.Return:
		address, err := in.Stack.Pop()
		if err != nil {
			return in.rangeError(ins, err)
		}
		next = address

	case opcode.Jump:
		next = ins.NNN

	case opcode.Call:
		if err := in.Stack.Push(next); err != nil {
			return in.rangeError(ins, err)
		}
		next = ins.NNN

	case opcode.SkipEqualImmediate:
		if in.V[x] == ins.NN {
			next += opcode.Size
		}

	case opcode.SkipNotEqualImmediate:
		if in.V[x] != ins.NN {
			next += opcode.Size
		}

	case opcode.SkipEqualRegister:
		if in.V[x] == in.V[y] {
			next += opcode.Size
		}

	case opcode.LoadImmediate:
		in.V[x] = ins.NN

	case opcode.AddImmediate:
		in.V[x] += ins.NN

	case opcode.LoadRegister:
		in.V[x] = in.V[y]

	case opcode.Or:
		in.V[x] |= in.V[y]

	case opcode.And:
		in.V[x] &= in.V[y]

	case opcode.Xor:
		in.V[x] ^= in.V[y]

	case opcode.AddRegister:
		in.V[FlagRegister] = flag(uint16(in.V[x])+uint16(in.V[y]) > 0xFF)
		in.V[x] += in.V[y]

	case opcode.Sub:
		in.V[FlagRegister] = flag(in.V[x] > in.V[y])
		in.V[x] -= in.V[y]

	case opcode.ShiftRight:
		in.V[FlagRegister] = in.V[x] & 0x01
		in.V[x] >>= 1

	case opcode.SubReverse:
		in.V[FlagRegister] = flag(in.V[x] < in.V[y])
		in.V[x] = in.V[y] - in.V[x]

	case opcode.ShiftLeft:
		in.V[FlagRegister] = in.V[x] >> 7
		in.V[x] <<= 1

	case opcode.SkipNotEqualRegister:
		if in.V[x] != in.V[y] {
			next += opcode.Size
		}

	case opcode.LoadIndex:
		in.I = ins.NNN

	case opcode.JumpOffset:
		next = uint16(in.V[0]) + ins.NNN

	case opcode.Random:
		in.V[x] = in.random() & ins.NN

	case opcode.Draw:
		if err := in.draw(ins); err != nil {
			return err
		}

	case opcode.SkipKeyPressed, opcode.SkipKeyNotPressed:
		key := in.V[x]
		if int(key) >= keypad.KeyCount {
			return in.rangeError(ins, fmt.Errorf("%w: key %d", ErrKeyIndex, key))
		}
		if in.keys.Pressed(key) == (ins.Kind == opcode.SkipKeyPressed) {
			next += opcode.Size
		}

	case opcode.LoadDelay:
		in.V[x] = in.DelayTimer

	case opcode.WaitKey:
		key, err := in.input.WaitKey()
		if err != nil {
			return fmt.Errorf("waiting for key: %w", err)
		}
		if int(key) >= keypad.KeyCount {
			return in.rangeError(ins, fmt.Errorf("%w: key %d", ErrKeyIndex, key))
		}
		in.V[x] = key
		in.logger.Debug("Key pressed", log.Hex("key", key))

	case opcode.SetDelay:
		in.DelayTimer = in.V[x]

	case opcode.SetSound:
		in.SoundTimer = in.V[x]

	case opcode.AddIndex:
		in.V[FlagRegister] = flag(uint32(in.I)+uint32(in.V[x]) > 0xFFFF)
		in.I += uint16(in.V[x])

	case opcode.LoadGlyph:
		// the byte at address V[X] is loaded, not the glyph address for V[X]
		value, err := in.Memory.Read(uint16(in.V[x]))
		if err != nil {
			return in.rangeError(ins, err)
		}
		in.I = uint16(value)

	case opcode.StoreBCD:
		if err := in.storeBCD(ins); err != nil {
			return err
		}

	case opcode.StoreRegisters:
		dst, err := in.Memory.Slice(in.I, int(x)+1)
		if err != nil {
			return in.rangeError(ins, err)
		}
		copy(dst, in.V[:x+1])

	case opcode.LoadRegisters:
		src, err := in.Memory.Slice(in.I, int(x)+1)
		if err != nil {
			return in.rangeError(ins, err)
		}
		copy(in.V[:x+1], src)

	case opcode.Unknown:
		in.logUnknown(ins)
	}

	if ins.IsSkip() && next == in.PC+2*opcode.Size {
		in.logger.Debug("Skipped instruction", log.Hex("pc", in.PC+opcode.Size))
	}

	in.PC = next
	return nil
}

// draw renders the sprite of N bytes at address I to the coordinates
// V[X],V[Y] and sets VF to the collision result. VF is cleared before the
// coordinates are read, so VF as a coordinate register reads as 0.
func (in *Interpreter) draw(ins opcode.Instruction) error {
	sprite, err := in.Memory.Slice(in.I, int(ins.N))
	if err != nil {
		return in.rangeError(ins, err)
	}

	flags := in.V[FlagRegister]
	in.V[FlagRegister] = 0

	collision, err := in.Display.Draw(in.V[ins.X], in.V[ins.Y], sprite)
	if err != nil {
		in.V[FlagRegister] = flags
		return in.rangeError(ins, err)
	}

	in.V[FlagRegister] |= flag(collision)
	return nil
}

// storeBCD stores the hundreds, tens and ones digit of V[X] at I, I+1, I+2.
func (in *Interpreter) storeBCD(ins opcode.Instruction) error {
	if !memory.InRange(in.I, 3) {
		return in.rangeError(ins, fmt.Errorf("%w: 3 bytes at $%04X", memory.ErrAddress, in.I))
	}

	value := in.V[ins.X]
	digits := [3]byte{value / 100, (value / 10) % 10, value % 10}
	for i, digit := range digits {
		if err := in.Memory.Write(in.I+uint16(i), digit); err != nil {
			return in.rangeError(ins, err)
		}
	}
	return nil
}

func (in *Interpreter) logUnknown(ins opcode.Instruction) {
	name := "-"
	if op, ok := opcode.Lookup(ins.Word); ok {
		name = op.Instruction.Name
	}
	in.logger.Debug("Unknown opcode",
		log.Hex("pc", in.PC),
		log.Hex("opcode", ins.Word),
		log.String("instruction", name))
}

func (in *Interpreter) rangeError(ins opcode.Instruction, err error) error {
	return &RangeError{PC: in.PC, Instruction: ins, Err: err}
}

func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}

// Package interpreter implements the CHIP-8 fetch-decode-execute core.
//
// The Interpreter owns the complete machine state: registers, address
// register, program counter, call stack, timers, memory, framebuffer and
// the key snapshot. A host drives it by calling Cycle in a loop, repainting
// when DrawFlag is set and refreshing the key snapshot with SetKeys.
//
// Timers count down once per executed cycle, not per wall clock tick.
package interpreter

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// FlagRegister is the index of the register that doubles as carry,
// borrow and collision flag.
const FlagRegister = 0xF

// Interpreter is the complete state of one CHIP-8 machine.
type Interpreter struct {
	logger *log.Logger
	input  keypad.Input
	random func() byte

	V          [16]byte // general purpose registers V0-VF
	I          uint16   // address register
	PC         uint16   // program counter
	Stack      Stack    // return addresses
	DelayTimer byte
	SoundTimer byte

	Memory  memory.Memory
	Display display.Framebuffer

	keys   keypad.State
	cycles uint64
}

// New returns an initialized interpreter. The input is used by the
// wait-for-key instruction.
func New(logger *log.Logger, input keypad.Input) *Interpreter {
	in := &Interpreter{
		logger: logger,
		input:  input,
	}
	in.Seed(rand.Uint64())
	in.Initialize()
	return in
}

// Initialize resets the machine: registers, timers and stack are cleared,
// memory is cleared and the glyph table installed, the framebuffer and
// key snapshot are cleared and the program counter is set to the start
// of the program area.
func (in *Interpreter) Initialize() {
	clear(in.V[:])
	in.I = 0
	in.PC = memory.ProgramStart
	in.Stack.Reset()
	in.DelayTimer = 0
	in.SoundTimer = 0
	in.Memory.Reset()
	in.Display.Reset()
	in.keys = keypad.State{}
	in.cycles = 0
}

// LoadProgram copies a program image to the start of the program area.
func (in *Interpreter) LoadProgram(image []byte) error {
	if err := in.Memory.Load(image); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	in.logger.Debug("Program loaded",
		log.Int("size", len(image)),
		log.Hex("address", uint16(memory.ProgramStart)))
	return nil
}

// Seed replaces the random byte source with a deterministic one.
func (in *Interpreter) Seed(seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	in.random = func() byte {
		return byte(rng.Uint32())
	}
}

// SetRandom replaces the random byte source.
func (in *Interpreter) SetRandom(random func() byte) {
	in.random = random
}

// SetKeys replaces the key snapshot.
func (in *Interpreter) SetKeys(keys keypad.State) {
	in.keys = keys
}

// Keys returns the current key snapshot.
func (in *Interpreter) Keys() keypad.State {
	return in.keys
}

// Framebuffer returns the framebuffer for presentation by the host.
func (in *Interpreter) Framebuffer() *display.Framebuffer {
	return &in.Display
}

// DrawFlag returns whether the framebuffer was drawn to since the host
// last cleared the flag.
func (in *Interpreter) DrawFlag() bool {
	return in.Display.Dirty()
}

// ClearDrawFlag is called by the host after it repainted.
func (in *Interpreter) ClearDrawFlag() {
	in.Display.ClearDirty()
}

// Cycles returns the number of cycles executed since initialization.
func (in *Interpreter) Cycles() uint64 {
	return in.cycles
}

// String returns the register state as text.
func (in *Interpreter) String() string {
	ret, ok := in.Stack.Peek()
	top := "----"
	if ok {
		top = fmt.Sprintf("%04X", ret)
	}
	return fmt.Sprintf("PC: %04X, I: %04X, V: % 02X, SP: %d, top: %s, DT: %02X, ST: %02X, keys: %v",
		in.PC, in.I, in.V[:], in.Stack.Len(), top, in.DelayTimer, in.SoundTimer, in.keys)
}

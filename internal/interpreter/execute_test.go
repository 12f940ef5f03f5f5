package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		name    string
		words   []uint16
		x       byte
		value   byte
		flag    byte
		checkVF bool
	}{
		{"add immediate wraps", []uint16{0x61FA, 0x710A}, 1, 4, 0, false},
		{"add immediate leaves flag", []uint16{0x6F07, 0x61FF, 0x7102}, 1, 1, 7, true},
		{"load register", []uint16{0x6233, 0x8120}, 1, 0x33, 0, false},
		{"or", []uint16{0x61F0, 0x620F, 0x8121}, 1, 0xFF, 0, false},
		{"and", []uint16{0x61F3, 0x623F, 0x8122}, 1, 0x33, 0, false},
		{"xor", []uint16{0x61FF, 0x620F, 0x8123}, 1, 0xF0, 0, false},
		{"add with carry", []uint16{0x61C8, 0x6264, 0x8124}, 1, 44, 1, true},
		{"add without carry", []uint16{0x610A, 0x6214, 0x8124}, 1, 30, 0, true},
		{"sub without borrow", []uint16{0x611E, 0x620A, 0x8125}, 1, 20, 1, true},
		{"sub with borrow", []uint16{0x610A, 0x621E, 0x8125}, 1, 0xEC, 0, true},
		{"sub equal", []uint16{0x6105, 0x6205, 0x8125}, 1, 0, 0, true},
		{"shift right odd", []uint16{0x6105, 0x8106}, 1, 2, 1, true},
		{"shift right even", []uint16{0x6104, 0x8106}, 1, 2, 0, true},
		{"sub reverse without borrow", []uint16{0x610A, 0x621E, 0x8127}, 1, 20, 1, true},
		{"sub reverse with borrow", []uint16{0x611E, 0x620A, 0x8127}, 1, 0xEC, 0, true},
		{"shift left high bit", []uint16{0x6181, 0x810E}, 1, 2, 1, true},
		{"shift left", []uint16{0x6141, 0x810E}, 1, 0x82, 0, true},
		{"add into flag register", []uint16{0x6FC8, 0x6264, 0x8F24}, 0xF, 101, 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter(t, nil, tt.words...)
			runCycles(t, in, len(tt.words))

			assert.Equal(t, tt.value, in.V[tt.x])
			if tt.checkVF {
				assert.Equal(t, tt.flag, in.V[FlagRegister])
			}
			assert.Equal(t, uint16(memory.ProgramStart+2*len(tt.words)), in.PC)
		})
	}
}

func TestExecute_Skips(t *testing.T) {
	tests := []struct {
		name  string
		setup []uint16
		skip  uint16
		keys  keypad.State
		taken bool
	}{
		{"3XNN equal", []uint16{0x6142}, 0x3142, keypad.State{}, true},
		{"3XNN not equal", []uint16{0x6142}, 0x3143, keypad.State{}, false},
		{"4XNN not equal", []uint16{0x6142}, 0x4143, keypad.State{}, true},
		{"4XNN equal", []uint16{0x6142}, 0x4142, keypad.State{}, false},
		{"5XY0 equal", []uint16{0x6142, 0x6242}, 0x5120, keypad.State{}, true},
		{"5XY0 not equal", []uint16{0x6142, 0x6243}, 0x5120, keypad.State{}, false},
		{"9XY0 not equal", []uint16{0x6142, 0x6243}, 0x9120, keypad.State{}, true},
		{"9XY0 equal", []uint16{0x6142, 0x6242}, 0x9120, keypad.State{}, false},
		{"EX9E pressed", []uint16{0x6107}, 0xE19E, keypad.State{}.Press(7), true},
		{"EX9E released", []uint16{0x6107}, 0xE19E, keypad.State{}, false},
		{"EXA1 released", []uint16{0x6107}, 0xE1A1, keypad.State{}, true},
		{"EXA1 pressed", []uint16{0x6107}, 0xE1A1, keypad.State{}.Press(7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := append(append([]uint16{}, tt.setup...), tt.skip)
			in := newTestInterpreter(t, nil, words...)
			in.SetKeys(tt.keys)
			runCycles(t, in, len(words))

			skipAddress := uint16(memory.ProgramStart + 2*len(tt.setup))
			expected := skipAddress + 2
			if tt.taken {
				expected = skipAddress + 4
			}
			assert.Equal(t, expected, in.PC)
		})
	}
}

func TestExecute_KeyIndexOutOfRange(t *testing.T) {
	in := newTestInterpreter(t, nil, 0x6110, 0xE19E)
	runCycles(t, in, 1)

	_, err := in.Cycle()
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(err, ErrKeyIndex))
	assert.Equal(t, uint16(0x202), in.PC)
}

func TestExecute_JumpAndCall(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x2206, // 200: call $206
		0x6A01, // 202: ld VA, $01
		0x1208, // 204: jp $208
		0x00EE, // 206: ret
		0x6B02, // 208: ld VB, $02
	)

	runCycles(t, in, 1)
	assert.Equal(t, uint16(0x206), in.PC)
	assert.Equal(t, 1, in.Stack.Len())

	runCycles(t, in, 1)
	assert.Equal(t, uint16(0x202), in.PC)
	assert.True(t, in.Stack.Empty())

	runCycles(t, in, 3)
	assert.Equal(t, uint16(0x20A), in.PC)
	assert.Equal(t, byte(1), in.V[0xA])
	assert.Equal(t, byte(2), in.V[0xB])
}

func TestExecute_JumpOffset(t *testing.T) {
	in := newTestInterpreter(t, nil, 0x6010, 0xB300)
	runCycles(t, in, 2)
	assert.Equal(t, uint16(0x310), in.PC)
}

func TestExecute_CallDepth(t *testing.T) {
	// every call targets the next instruction, which is another call
	words := make([]uint16, StackLimit+1)
	for i := range words {
		words[i] = 0x2000 | uint16(memory.ProgramStart+2*(i+1))
	}
	in := newTestInterpreter(t, nil, words...)

	runCycles(t, in, StackLimit)
	assert.True(t, in.Stack.Full())

	pc := in.PC
	_, err := in.Cycle()
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, pc, in.PC, "failed call must not move the program counter")
	assert.Equal(t, StackLimit, in.Stack.Len())

	var rangeErr *RangeError
	assert.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, pc, rangeErr.PC)
}

func TestExecute_ReturnWithEmptyStack(t *testing.T) {
	in := newTestInterpreter(t, nil, 0x00EE)

	_, err := in.Cycle()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(memory.ProgramStart), in.PC)
	assert.Equal(t, uint64(0), in.Cycles())
}

func TestExecute_DrawCollision(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0xA300, // ld I, $300
		0x600A, // ld V0, $0A
		0x6105, // ld V1, $05
		0xD011, // drw V0, V1, $1
		0xD011, // drw V0, V1, $1
	)
	assert.NoError(t, in.Memory.Write(0x300, 0x80))

	runCycles(t, in, 4)
	assert.Equal(t, byte(0), in.V[FlagRegister])
	assert.Equal(t, byte(1), in.Framebuffer().Pixel(10, 5))

	runCycles(t, in, 1)
	assert.Equal(t, byte(1), in.V[FlagRegister])
	assert.Equal(t, byte(0), in.Framebuffer().Pixel(10, 5))
}

func TestExecute_DrawOutOfRange(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x603F, // ld V0, $3F
		0x611F, // ld V1, $1F
		0x6F07, // ld VF, $07
		0xD012, // drw V0, V1, $2
	)
	runCycles(t, in, 3)

	_, err := in.Cycle()
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(err, display.ErrPixel))
	assert.Equal(t, byte(7), in.V[FlagRegister])
	assert.Equal(t, byte(0), in.Framebuffer().Pixel(display.Width-1, display.Height-1))
}

func TestExecute_DrawClearsFlagBeforeCoordinates(t *testing.T) {
	tests := []struct {
		name string
		draw uint16
	}{
		{"flag as x", 0xDF11}, // drw VF, V1, $1
		{"flag as y", 0xD1F1}, // drw V1, VF, $1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter(t, nil,
				0x6F05, // ld VF, $05
				0xA300, // ld I, $300
				tt.draw,
			)
			assert.NoError(t, in.Memory.Write(0x300, 0x80))

			runCycles(t, in, 3)
			assert.Equal(t, byte(1), in.Framebuffer().Pixel(0, 0))
			assert.Equal(t, byte(0), in.Framebuffer().Pixel(5, 0))
			assert.Equal(t, byte(0), in.Framebuffer().Pixel(0, 5))
			assert.Equal(t, byte(0), in.V[FlagRegister])
		})
	}
}

func TestExecute_DrawEmptySprite(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0xAFFF, // ld I, $FFF
		0xF01E, // add I, V0
		0x60FF, // ld V0, $FF
		0xF01E, // add I, V0
		0xD010, // drw V0, V1, $0
	)
	runCycles(t, in, 5)

	assert.Equal(t, uint16(0x10FE), in.I)
	assert.True(t, in.DrawFlag())
	assert.Equal(t, byte(0), in.V[FlagRegister])
}

func TestExecute_Random(t *testing.T) {
	in := newTestInterpreter(t, nil, 0xC10F, 0xC2F0)
	in.SetRandom(func() byte { return 0xAB })

	runCycles(t, in, 2)
	assert.Equal(t, byte(0x0B), in.V[1])
	assert.Equal(t, byte(0xA0), in.V[2])
}

func TestExecute_Timers(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x6102, // ld V1, $02
		0xF115, // ld DT, V1
		0xF118, // ld ST, V1
		0xF207, // ld V2, DT
	)
	runCycles(t, in, 2)
	// set to 2 and ticked once in the same cycle
	assert.Equal(t, byte(1), in.DelayTimer)

	event, err := in.Cycle()
	assert.NoError(t, err)
	assert.True(t, event.Has(DelayExpired))
	assert.False(t, event.Has(SoundExpired))
	assert.Equal(t, byte(0), in.DelayTimer)
	assert.Equal(t, byte(1), in.SoundTimer)

	event, err = in.Cycle()
	assert.NoError(t, err)
	assert.True(t, event.Has(SoundExpired))
	assert.False(t, event.Has(DelayExpired))
	assert.Equal(t, byte(0), in.SoundTimer)
	assert.Equal(t, byte(0), in.V[2])
}

func TestExecute_TimerExpiresOnce(t *testing.T) {
	in := newTestInterpreter(t, nil, 0x1200) // jp $200
	in.DelayTimer = 1

	event, err := in.Cycle()
	assert.NoError(t, err)
	assert.True(t, event.Has(DelayExpired))
	assert.Equal(t, byte(0), in.DelayTimer)

	event, err = in.Cycle()
	assert.NoError(t, err)
	assert.Equal(t, Event(0), event)
	assert.Equal(t, byte(0), in.DelayTimer)
}

func TestExecute_WaitKey(t *testing.T) {
	in := newTestInterpreter(t, []byte{0xC}, 0xF30A, 0xF40A)

	runCycles(t, in, 1)
	assert.Equal(t, byte(0xC), in.V[3])
	assert.Equal(t, uint16(0x202), in.PC)

	// queue is drained
	_, err := in.Cycle()
	assert.True(t, errors.Is(err, keypad.ErrQuit))
	assert.Equal(t, uint16(0x202), in.PC)
}

func TestExecute_AddIndex(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0xAFFF, // ld I, $FFF
		0x6102, // ld V1, $02
		0xF11E, // add I, V1
	)
	runCycles(t, in, 3)
	assert.Equal(t, uint16(0x1001), in.I)
	assert.Equal(t, byte(0), in.V[FlagRegister])
}

func TestExecute_AddIndexOverflow(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x6102, // ld V1, $02
		0xF11E, // add I, V1
	)
	in.I = 0xFFFF

	runCycles(t, in, 2)
	assert.Equal(t, uint16(0x0001), in.I)
	assert.Equal(t, byte(1), in.V[FlagRegister])
}

func TestExecute_LoadGlyph(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x6105, // ld V1, $05
		0xF129, // ld F, V1
	)
	runCycles(t, in, 2)

	// the byte at address 5 is the first row of glyph 1
	assert.Equal(t, uint16(memory.Glyphs[5]), in.I)
}

func TestExecute_StoreBCD(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x619C, // ld V1, $9C
		0xA300, // ld I, $300
		0xF133, // ld B, V1
	)
	runCycles(t, in, 3)

	digits, err := in.Memory.Slice(0x300, 3)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), digits[0])
	assert.Equal(t, byte(5), digits[1])
	assert.Equal(t, byte(6), digits[2])
	assert.Equal(t, uint16(0x300), in.I)
}

func TestExecute_StoreBCDOutOfRange(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0xAFFE, // ld I, $FFE
		0xF133, // ld B, V1
	)
	runCycles(t, in, 1)

	_, err := in.Cycle()
	assert.True(t, errors.Is(err, ErrOutOfRange))

	b, err := in.Memory.Read(0xFFE)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestExecute_StoreAndLoadRegisters(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x6011, // ld V0, $11
		0x6122, // ld V1, $22
		0x6233, // ld V2, $33
		0x6344, // ld V3, $44
		0xA300, // ld I, $300
		0xF255, // ld [I], V2
		0x6000, // ld V0, $00
		0x6100, // ld V1, $00
		0x6200, // ld V2, $00
		0xF165, // ld V1, [I]
	)
	runCycles(t, in, 6)

	stored, err := in.Memory.Slice(0x300, 4)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x11), stored[0])
	assert.Equal(t, byte(0x22), stored[1])
	assert.Equal(t, byte(0x33), stored[2])
	assert.Equal(t, byte(0), stored[3], "only V0 to VX are stored")
	assert.Equal(t, uint16(0x300), in.I)

	runCycles(t, in, 4)
	assert.Equal(t, byte(0x11), in.V[0])
	assert.Equal(t, byte(0x22), in.V[1])
	assert.Equal(t, byte(0), in.V[2], "only V0 to VX are loaded")
	assert.Equal(t, byte(0x44), in.V[3])
}

func TestExecute_UnknownOpcode(t *testing.T) {
	in := newTestInterpreter(t, nil,
		0x0123, // machine code routine
		0x8008, // undefined ALU operation
		0xF0FF, // undefined misc operation
	)
	in.DelayTimer = 5

	runCycles(t, in, 3)
	assert.Equal(t, uint16(0x206), in.PC)
	assert.Equal(t, byte(2), in.DelayTimer)
	assert.Equal(t, uint64(3), in.Cycles())
}

func TestCycle_FetchOutOfRange(t *testing.T) {
	in := newTestInterpreter(t, nil, 0x1FFF) // jp $FFF
	runCycles(t, in, 1)
	in.SoundTimer = 3

	_, err := in.Cycle()
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, uint16(0xFFF), in.PC)
	assert.Equal(t, byte(3), in.SoundTimer, "timers must not tick on a failed cycle")
}

func TestRangeError_Message(t *testing.T) {
	in := newTestInterpreter(t, nil, 0x00EE)

	_, err := in.Cycle()
	assert.ErrorContains(t, err, "$0200 ret: return with empty call stack")

	in = newTestInterpreter(t, nil, 0x1FFF)
	runCycles(t, in, 1)
	_, err = in.Cycle()
	assert.ErrorContains(t, err, "$0FFF: ")
}

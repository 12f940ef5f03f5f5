// Package opcode decodes CHIP-8 instruction words into a closed set of
// instruction variants carrying their operand fields.
package opcode

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of CHIP-8 instructions in bytes.
const Size = 2

// Instruction is a decoded instruction word.
type Instruction struct {
	Kind Kind
	Word uint16 // raw instruction word

	X   byte   // register index from bits 8-11
	Y   byte   // register index from bits 4-7
	N   byte   // low nibble
	NN  byte   // low byte
	NNN uint16 // low 12 bits
}

// Decode classifies an instruction word. Words that match no known
// pattern decode to Unknown with all operand fields still extracted.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    extractRegisterX(word),
		Y:    extractRegisterY(word),
		N:    byte(word & 0x000F),
		NN:   byte(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}
	ins.Kind = classify(word)
	return ins
}

// classify dispatches on the top nibble and, for the families that need
// it, on the low nibble or low byte.
func classify(word uint16) Kind {
	switch word & 0xF000 {
	case 0x0000:
		switch word & 0x00FF {
		case 0x00E0:
			return Clear
		case 0x00EE:
			return Return
		}
	case 0x1000:
		return Jump
	case 0x2000:
		return Call
	case 0x3000:
		return SkipEqualImmediate
	case 0x4000:
		return SkipNotEqualImmediate
	case 0x5000:
		return SkipEqualRegister
	case 0x6000:
		return LoadImmediate
	case 0x7000:
		return AddImmediate
	case 0x8000:
		return classifyALU(word)
	case 0x9000:
		return SkipNotEqualRegister
	case 0xA000:
		return LoadIndex
	case 0xB000:
		return JumpOffset
	case 0xC000:
		return Random
	case 0xD000:
		return Draw
	case 0xE000:
		switch word & 0x00FF {
		case 0x009E:
			return SkipKeyPressed
		case 0x00A1:
			return SkipKeyNotPressed
		}
	case 0xF000:
		return classifyMisc(word)
	}
	return Unknown
}

func classifyALU(word uint16) Kind {
	switch word & 0x000F {
	case 0x0:
		return LoadRegister
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddRegister
	case 0x5:
		return Sub
	case 0x6:
		return ShiftRight
	case 0x7:
		return SubReverse
	case 0xE:
		return ShiftLeft
	}
	return Unknown
}

func classifyMisc(word uint16) Kind {
	switch word & 0x00FF {
	case 0x07:
		return LoadDelay
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelay
	case 0x18:
		return SetSound
	case 0x1E:
		return AddIndex
	case 0x29:
		return LoadGlyph
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	}
	return Unknown
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (ins Instruction) IsSkip() bool {
	i := ins.Kind.Instruction()
	if i == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.Name)
}

// Lookup finds the instruction set entry for a word by matching the
// opcode table masks of its top nibble.
func Lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(word uint16) byte {
	return byte((word & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(word uint16) byte {
	return byte((word & 0x00F0) >> 4)
}

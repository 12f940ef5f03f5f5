package opcode

import (
	"fmt"
)

// String returns the instruction in assembly notation, for example
// "ld V2, $34". Unknown words are rendered as a data word.
func (ins Instruction) String() string {
	i := ins.Kind.Instruction()
	if i == nil {
		return fmt.Sprintf(".word $%04X", ins.Word)
	}
	if params := ins.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", i.Name, params)
	}
	return i.Name
}

// formatParams formats the operands of the instruction.
func (ins Instruction) formatParams() string {
	switch ins.Kind {
	case Clear, Return:
		return "" // No parameters
	case Jump, Call:
		return fmt.Sprintf("$%03X", ins.NNN)
	case JumpOffset:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case SkipEqualImmediate, SkipNotEqualImmediate, LoadImmediate, AddImmediate, Random:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case SkipEqualRegister, SkipNotEqualRegister, LoadRegister, Or, And, Xor, AddRegister, Sub, SubReverse:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case ShiftRight, ShiftLeft, SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", ins.X)
	case LoadIndex:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	default:
		return ins.formatMiscParams()
	}
}

// formatMiscParams formats the operands of the FX instruction family.
func (ins Instruction) formatMiscParams() string {
	switch ins.Kind {
	case LoadDelay:
		return fmt.Sprintf("V%X, DT", ins.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", ins.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", ins.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case LoadGlyph:
		return fmt.Sprintf("F, V%X", ins.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", ins.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", ins.X)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}

package opcode

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies one of the decoded instruction variants.
type Kind uint8

// Instruction variants, named after their effect. The comment of each
// constant is the opcode pattern it is decoded from.
const (
	Unknown               Kind = iota // ????
	Clear                             // 00E0
	Return                            // 00EE
	Jump                              // 1NNN
	Call                              // 2NNN
	SkipEqualImmediate                // 3XNN
	SkipNotEqualImmediate             // 4XNN
	SkipEqualRegister                 // 5XY0
	LoadImmediate                     // 6XNN
	AddImmediate                      // 7XNN
	LoadRegister                      // 8XY0
	Or                                // 8XY1
	And                               // 8XY2
	Xor                               // 8XY3
	AddRegister                       // 8XY4
	Sub                               // 8XY5
	ShiftRight                        // 8XY6
	SubReverse                        // 8XY7
	ShiftLeft                         // 8XYE
	SkipNotEqualRegister              // 9XY0
	LoadIndex                         // ANNN
	JumpOffset                        // BNNN
	Random                            // CXNN
	Draw                              // DXYN
	SkipKeyPressed                    // EX9E
	SkipKeyNotPressed                 // EXA1
	LoadDelay                         // FX07
	WaitKey                           // FX0A
	SetDelay                          // FX15
	SetSound                          // FX18
	AddIndex                          // FX1E
	LoadGlyph                         // FX29
	StoreBCD                          // FX33
	StoreRegisters                    // FX55
	LoadRegisters                     // FX65

	kindCount
)

var kindInfo = [kindCount]struct {
	name        string
	pattern     string
	instruction *chip8.Instruction
}{
	Unknown:               {"Unknown", "????", nil},
	Clear:                 {"Clear", "00E0", chip8.Cls},
	Return:                {"Return", "00EE", chip8.Ret},
	Jump:                  {"Jump", "1NNN", chip8.Jp},
	Call:                  {"Call", "2NNN", chip8.Call},
	SkipEqualImmediate:    {"SkipEqualImmediate", "3XNN", chip8.Se},
	SkipNotEqualImmediate: {"SkipNotEqualImmediate", "4XNN", chip8.Sne},
	SkipEqualRegister:     {"SkipEqualRegister", "5XY0", chip8.Se},
	LoadImmediate:         {"LoadImmediate", "6XNN", chip8.Ld},
	AddImmediate:          {"AddImmediate", "7XNN", chip8.Add},
	LoadRegister:          {"LoadRegister", "8XY0", chip8.Ld},
	Or:                    {"Or", "8XY1", chip8.Or},
	And:                   {"And", "8XY2", chip8.And},
	Xor:                   {"Xor", "8XY3", chip8.Xor},
	AddRegister:           {"AddRegister", "8XY4", chip8.Add},
	Sub:                   {"Sub", "8XY5", chip8.Sub},
	ShiftRight:            {"ShiftRight", "8XY6", chip8.Shr},
	SubReverse:            {"SubReverse", "8XY7", chip8.Subn},
	ShiftLeft:             {"ShiftLeft", "8XYE", chip8.Shl},
	SkipNotEqualRegister:  {"SkipNotEqualRegister", "9XY0", chip8.Sne},
	LoadIndex:             {"LoadIndex", "ANNN", chip8.Ld},
	JumpOffset:            {"JumpOffset", "BNNN", chip8.Jp},
	Random:                {"Random", "CXNN", chip8.Rnd},
	Draw:                  {"Draw", "DXYN", chip8.Drw},
	SkipKeyPressed:        {"SkipKeyPressed", "EX9E", chip8.Skp},
	SkipKeyNotPressed:     {"SkipKeyNotPressed", "EXA1", chip8.Sknp},
	LoadDelay:             {"LoadDelay", "FX07", chip8.Ld},
	WaitKey:               {"WaitKey", "FX0A", chip8.Ld},
	SetDelay:              {"SetDelay", "FX15", chip8.Ld},
	SetSound:              {"SetSound", "FX18", chip8.Ld},
	AddIndex:              {"AddIndex", "FX1E", chip8.Add},
	LoadGlyph:             {"LoadGlyph", "FX29", chip8.Ld},
	StoreBCD:              {"StoreBCD", "FX33", chip8.Ld},
	StoreRegisters:        {"StoreRegisters", "FX55", chip8.Ld},
	LoadRegisters:         {"LoadRegisters", "FX65", chip8.Ld},
}

// String returns the name of the variant.
func (k Kind) String() string {
	if k >= kindCount {
		return kindInfo[Unknown].name
	}
	return kindInfo[k].name
}

// Pattern returns the opcode pattern of the variant, for example "8XY4".
func (k Kind) Pattern() string {
	if k >= kindCount {
		return kindInfo[Unknown].pattern
	}
	return kindInfo[k].pattern
}

// Instruction returns the instruction set entry that the variant belongs to,
// nil for Unknown.
func (k Kind) Instruction() *chip8.Instruction {
	if k >= kindCount {
		return nil
	}
	return kindInfo[k].instruction
}

// kinds returns all known variants in opcode order, excluding Unknown.
func kinds() []Kind {
	all := make([]Kind, 0, kindCount-1)
	for k := Clear; k < kindCount; k++ {
		all = append(all, k)
	}
	return all
}

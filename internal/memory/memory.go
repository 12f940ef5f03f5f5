// Package memory provides the CHIP-8 address space.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Hexadecimal glyph table (16 glyphs of 5 bytes)
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: Program image and work RAM
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address the program image is loaded to and
	// where execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits behind ProgramStart.
	MaxProgramSize = Size - ProgramStart

	// GlyphSize is the number of bytes of a single glyph.
	GlyphSize = 5
)

// Glyphs is the built-in 4x5 font for the hexadecimal digits 0-F.
var Glyphs = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

var (
	// ErrImageTooLarge is returned when a program image does not fit behind ProgramStart.
	ErrImageTooLarge = errors.New("program image too large")
	// ErrAddress is returned for accesses outside of the address space.
	ErrAddress = errors.New("address out of range")
)

// Memory is the flat CHIP-8 byte store.
type Memory struct {
	data [Size]byte
}

// Reset clears the whole address space and installs the glyph table.
func (m *Memory) Reset() {
	clear(m.data[:])
	copy(m.data[:], Glyphs[:])
}

// Load copies a program image to ProgramStart.
// The glyph table is never touched by a load.
func (m *Memory) Load(image []byte) error {
	if err := CheckImage(image); err != nil {
		return err
	}
	copy(m.data[ProgramStart:], image)
	return nil
}

// CheckImage returns ErrImageTooLarge if the image does not fit behind
// ProgramStart.
func CheckImage(image []byte) error {
	if len(image) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrImageTooLarge, len(image), MaxProgramSize)
	}
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= Size {
		return 0, fmt.Errorf("%w: read at $%04X", ErrAddress, address)
	}
	return m.data[address], nil
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= Size {
		return fmt.Errorf("%w: write at $%04X", ErrAddress, address)
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian 16 bit word at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if int(address)+1 >= Size {
		return 0, fmt.Errorf("%w: word read at $%04X", ErrAddress, address)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Slice returns length bytes starting at address. An empty slice is valid
// at any address, as no byte is accessed. The returned slice
// aliases the memory and must not be retained across writes.
func (m *Memory) Slice(address uint16, length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	end := int(address) + length
	if length < 0 || end > Size {
		return nil, fmt.Errorf("%w: %d bytes at $%04X", ErrAddress, length, address)
	}
	return m.data[address:end], nil
}

// InRange reports whether length bytes starting at address are addressable.
func InRange(address uint16, length int) bool {
	return length == 0 || (length > 0 && int(address)+length <= Size)
}

// Bytes returns a copy of the whole address space.
func (m *Memory) Bytes() []byte {
	data := make([]byte, Size)
	copy(data, m.data[:])
	return data
}

// Package display implements the CHIP-8 monochrome framebuffer.
package display

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Width of the framebuffer in pixels.
	Width = 64
	// Height of the framebuffer in pixels.
	Height = 32
	// PixelCount is the number of pixels of the framebuffer.
	PixelCount = Width * Height

	// SpriteWidth is the number of pixels of a single sprite row.
	SpriteWidth = 8
)

// ErrPixel is returned when a sprite pixel lies outside of the pixel array.
var ErrPixel = errors.New("pixel out of range")

// Framebuffer is a 64x32 row-major grid of pixels that are either 0 or 1.
// Pixels are only ever changed by XOR against sprite bits or by Clear.
type Framebuffer struct {
	pixels [PixelCount]byte
	dirty  bool
}

// Clear turns all pixels off. The dirty flag is left untouched.
func (f *Framebuffer) Clear() {
	clear(f.pixels[:])
}

// Reset clears all pixels and the dirty flag.
func (f *Framebuffer) Reset() {
	f.Clear()
	f.dirty = false
}

// Draw XORs the sprite rows onto the framebuffer with the top left corner
// at x,y and returns whether any pixel that was on got turned off.
//
// Coordinates are not wrapped. The pixel for sprite bit i of row j is
// addressed by the linear index (x+i) + (y+j)*Width, so a column past the
// right edge continues on the next row. If any set bit maps past the end
// of the pixel array, no pixel is changed and ErrPixel is returned.
// The dirty flag is set on every call that does not return an error,
// also if no pixel changed.
func (f *Framebuffer) Draw(x, y byte, sprite []byte) (bool, error) {
	for j, row := range sprite {
		for i := range SpriteWidth {
			if row&(0x80>>i) == 0 {
				continue
			}
			if index := pixelIndex(x, y, i, j); index >= PixelCount {
				return false, fmt.Errorf("%w: sprite row %d bit %d at %d,%d", ErrPixel, j, i, x, y)
			}
		}
	}

	var collision bool
	for j, row := range sprite {
		for i := range SpriteWidth {
			if row&(0x80>>i) == 0 {
				continue
			}
			index := pixelIndex(x, y, i, j)
			if f.pixels[index] == 1 {
				collision = true
			}
			f.pixels[index] ^= 1
		}
	}

	f.dirty = true
	return collision, nil
}

func pixelIndex(x, y byte, i, j int) int {
	return int(x) + i + (int(y)+j)*Width
}

// Pixel returns the pixel value at x,y.
func (f *Framebuffer) Pixel(x, y int) byte {
	return f.pixels[x+y*Width]
}

// Pixels returns a copy of the row-major pixel array.
func (f *Framebuffer) Pixels() []byte {
	pixels := make([]byte, PixelCount)
	copy(pixels, f.pixels[:])
	return pixels
}

// Dirty returns whether the framebuffer was drawn to since the flag was
// last cleared.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty resets the dirty flag after the host consumed the pixels.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

// String renders the framebuffer as text, one line per pixel row.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := range Height {
		for x := range Width {
			if f.Pixel(x, y) == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

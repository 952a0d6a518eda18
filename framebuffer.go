// framebuffer.go - 64x32 monochrome framebuffer with XOR sprite drawing

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

// Framebuffer is the machine's 64x32 one-bit pixel grid. The CPU is its
// only mutator (clear and sprite draw); everything else reads snapshots.
type Framebuffer struct {
	pixels [PIXEL_COUNT]byte
}

func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	fb.pixels = [PIXEL_COUNT]byte{}
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (fb *Framebuffer) Pixel(x, y int) bool {
	x = ((x % DISPLAY_WIDTH) + DISPLAY_WIDTH) % DISPLAY_WIDTH
	y = ((y % DISPLAY_HEIGHT) + DISPLAY_HEIGHT) % DISPLAY_HEIGHT
	return fb.pixels[y*DISPLAY_WIDTH+x] != 0
}

// DrawSprite XORs an 8-pixel-wide sprite onto the grid at (x, y), one
// byte per row, MSB leftmost. Both axes wrap; nothing clips. Returns
// true if any lit pixel was turned off anywhere during the draw.
func (fb *Framebuffer) DrawSprite(x, y byte, sprite []byte) bool {
	px := int(x) % DISPLAY_WIDTH
	py := int(y) % DISPLAY_HEIGHT
	collision := false

	for row, bits := range sprite {
		for col := 0; col < SPRITE_WIDTH; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			sx := (px + col) % DISPLAY_WIDTH
			sy := (py + row) % DISPLAY_HEIGHT
			idx := sy*DISPLAY_WIDTH + sx
			if fb.pixels[idx] != 0 {
				collision = true
			}
			fb.pixels[idx] ^= 1
		}
	}
	return collision
}

// Snapshot returns an immutable copy of the pixel grid, one byte per
// pixel in row-major order, 0 or 1.
func (fb *Framebuffer) Snapshot() []byte {
	out := make([]byte, PIXEL_COUNT)
	copy(out, fb.pixels[:])
	return out
}

// RenderRGBA expands the grid into dst as 32-bit RGBA pixels using the
// given on/off colors (0xRRGGBBAA). dst must hold PIXEL_COUNT*4 bytes.
func (fb *Framebuffer) RenderRGBA(dst []byte, on, off uint32) {
	for i, p := range fb.pixels {
		c := off
		if p != 0 {
			c = on
		}
		dst[i*4+0] = byte(c >> 24)
		dst[i*4+1] = byte(c >> 16)
		dst[i*4+2] = byte(c >> 8)
		dst[i*4+3] = byte(c)
	}
}

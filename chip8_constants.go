// chip8_constants.go - CHIP-8 machine constants and built-in font

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

const (
	// Memory map

	MEMORY_SIZE = 4096   // Total addressable memory
	ADDR_MASK   = 0x0FFF // 12-bit address space
	ENTRY_ADDR  = 0x200  // Programs load and start here
	FONT_ADDR   = 0x050  // Built-in font region (0x050-0x09F)

	// Register file

	REG_COUNT   = 16  // V0-VF
	FLAG_REG    = 0xF // VF doubles as carry/borrow/collision flag
	STACK_DEPTH = 16  // Call stack capacity

	// Display

	DISPLAY_WIDTH  = 64
	DISPLAY_HEIGHT = 32
	PIXEL_COUNT    = DISPLAY_WIDTH * DISPLAY_HEIGHT
	SPRITE_WIDTH   = 8 // Sprites are always 8 pixels wide

	// Input

	KEY_COUNT = 16 // Hex keypad, keys 0x0-0xF

	// Timing

	TIMER_HZ                 = 60 // Delay/sound timer cadence
	DEFAULT_CYCLES_PER_FRAME = 10 // CPU cycles per 60Hz frame

	// Font

	GLYPH_BYTES = 5 // Each hex digit glyph is 5 rows of 8 pixels
)

// FontSprites holds the 16 built-in hex digit glyphs (0-F), 5 bytes each.
// Copied to FONT_ADDR on reset; Fx29 computes glyph addresses from it.
var FontSprites = [16 * GLYPH_BYTES]byte{
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

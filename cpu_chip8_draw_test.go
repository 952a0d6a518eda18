// cpu_chip8_draw_test.go - Sprite drawing and clear-screen opcode tests

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import "testing"

func countLitPixels(fb *Framebuffer) int {
	n := 0
	for _, p := range fb.Snapshot() {
		if p != 0 {
			n++
		}
	}
	return n
}

func TestDrawClearScreen(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0x00E0)
	rig.fb.DrawSprite(0, 0, []byte{0xFF, 0xFF})

	redraw := rig.cpu.Step()

	requireTrue(t, "redraw", redraw)
	if n := countLitPixels(rig.fb); n != 0 {
		t.Fatalf("lit pixels after clear = %d, want 0", n)
	}
}

func TestDrawGlyphSprite(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0xF029, 0xD125) // LD F, V0; DRW V1, V2, 5
	rig.cpu.V[0] = 0x0
	rig.cpu.V[1] = 4
	rig.cpu.V[2] = 2

	rig.cpu.Step()
	redraw := rig.cpu.Step()

	requireTrue(t, "redraw", redraw)
	requireEqualU8(t, "VF", rig.cpu.V[FLAG_REG], 0)
	// Glyph 0 row 0 is 0xF0: pixels at x=4..7, y=2.
	for x := 4; x <= 7; x++ {
		requireTrue(t, "glyph pixel", rig.fb.Pixel(x, 2))
	}
	requireFalse(t, "pixel past glyph", rig.fb.Pixel(8, 2))
}

func TestDrawTwiceErasesAndCollides(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0xD014, 0xA208, 0xD014)
	rig.cpu.I = 0x208
	rig.cpu.Memory[0x208] = 0xA5
	rig.cpu.Memory[0x209] = 0x5A
	rig.cpu.Memory[0x20A] = 0xFF
	rig.cpu.Memory[0x20B] = 0x81

	rig.cpu.Step()
	requireEqualU8(t, "VF after first draw", rig.cpu.V[FLAG_REG], 0)
	if n := countLitPixels(rig.fb); n == 0 {
		t.Fatal("first draw lit nothing")
	}

	rig.cpu.Step() // LD I, 0x208
	rig.cpu.Step()
	requireEqualU8(t, "VF after second draw", rig.cpu.V[FLAG_REG], 1)
	if n := countLitPixels(rig.fb); n != 0 {
		t.Fatalf("lit pixels after XOR erase = %d, want 0", n)
	}
}

func TestDrawWrapsHorizontally(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0xD011)
	rig.cpu.V[0] = 60
	rig.cpu.V[1] = 0
	rig.cpu.I = 0x300
	rig.cpu.Memory[0x300] = 0xFF

	rig.cpu.Step()

	for x := 60; x <= 63; x++ {
		requireTrue(t, "right edge pixel", rig.fb.Pixel(x, 0))
	}
	for x := 0; x <= 3; x++ {
		requireTrue(t, "wrapped pixel", rig.fb.Pixel(x, 0))
	}
	requireFalse(t, "pixel past wrap", rig.fb.Pixel(4, 0))
}

func TestDrawWrapsVertically(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0xD012)
	rig.cpu.V[0] = 0
	rig.cpu.V[1] = 31
	rig.cpu.I = 0x300
	rig.cpu.Memory[0x300] = 0x80
	rig.cpu.Memory[0x301] = 0x80

	rig.cpu.Step()

	requireTrue(t, "bottom edge pixel", rig.fb.Pixel(0, 31))
	requireTrue(t, "wrapped pixel", rig.fb.Pixel(0, 0))
}

func TestDrawCoordinatesWrapBeforeDrawing(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0xD011)
	rig.cpu.V[0] = 68 // 68 % 64 = 4
	rig.cpu.V[1] = 34 // 34 % 32 = 2
	rig.cpu.I = 0x300
	rig.cpu.Memory[0x300] = 0x80

	rig.cpu.Step()

	requireTrue(t, "wrapped origin pixel", rig.fb.Pixel(4, 2))
}

func TestDrawCollisionComputedOncePerSprite(t *testing.T) {
	rig := newCPUTestRig(t)
	// First row collides, second row does not; VF must still be 1
	// after the whole draw, not reset by the later row.
	rig.fb.DrawSprite(0, 0, []byte{0x80})
	rig.load(0xD012)
	rig.cpu.I = 0x300
	rig.cpu.Memory[0x300] = 0x80
	rig.cpu.Memory[0x301] = 0x80

	rig.cpu.Step()
	requireEqualU8(t, "VF", rig.cpu.V[FLAG_REG], 1)
}

func TestDrawZeroRowSprite(t *testing.T) {
	rig := newCPUTestRig(t)
	rig.load(0xD010) // DRW V0, V1, 0: draws nothing, still a redraw
	redraw := rig.cpu.Step()

	requireTrue(t, "redraw", redraw)
	requireEqualU8(t, "VF", rig.cpu.V[FLAG_REG], 0)
	if n := countLitPixels(rig.fb); n != 0 {
		t.Fatalf("lit pixels = %d, want 0", n)
	}
}

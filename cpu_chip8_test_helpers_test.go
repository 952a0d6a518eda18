// cpu_chip8_test_helpers_test.go - Shared rig and assertions for CPU tests

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import "testing"

// fixedRandSource replays a fixed byte sequence so Cxnn is deterministic.
type fixedRandSource struct {
	seq []byte
	pos int
}

func (s *fixedRandSource) RandomByte() byte {
	if len(s.seq) == 0 {
		return 0
	}
	b := s.seq[s.pos%len(s.seq)]
	s.pos++
	return b
}

type cpuTestRig struct {
	t      *testing.T
	cpu    *CPU
	fb     *Framebuffer
	keypad *Keypad
	rand   *fixedRandSource
}

func newCPUTestRig(t *testing.T) *cpuTestRig {
	t.Helper()
	fb := NewFramebuffer()
	keypad := NewKeypad()
	rand := &fixedRandSource{}
	return &cpuTestRig{
		t:      t,
		cpu:    NewCPU(fb, keypad, rand),
		fb:     fb,
		keypad: keypad,
		rand:   rand,
	}
}

// load places the given opcode words at ENTRY_ADDR, big-endian, and
// points PC at the first one.
func (rig *cpuTestRig) load(words ...uint16) {
	rig.t.Helper()
	prog := make([]byte, len(words)*2)
	for i, w := range words {
		prog[i*2] = byte(w >> 8)
		prog[i*2+1] = byte(w)
	}
	if err := rig.cpu.LoadProgramBytes(prog); err != nil {
		rig.t.Fatalf("load: %v", err)
	}
}

func requireEqualU8(t *testing.T, name string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}

func requireEqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%04X, want 0x%04X", name, got, want)
	}
}

func requireEqualU64(t *testing.T, name string, got, want uint64) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = %d, want %d", name, got, want)
	}
}

func requireTrue(t *testing.T, name string, got bool) {
	t.Helper()
	if !got {
		t.Fatalf("%s = false, want true", name)
	}
}

func requireFalse(t *testing.T, name string, got bool) {
	t.Helper()
	if got {
		t.Fatalf("%s = true, want false", name)
	}
}

// chip8_decode_test.go - Instruction decode tests

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import "testing"

func TestDecodeOperandFields(t *testing.T) {
	ins := DecodeInstruction(0xD123)
	if ins.Kind != InsDraw {
		t.Fatalf("kind = %v, want InsDraw", ins.Kind)
	}
	requireEqualU8(t, "X", ins.X, 0x1)
	requireEqualU8(t, "Y", ins.Y, 0x2)
	requireEqualU8(t, "N", ins.N, 0x3)
	requireEqualU8(t, "NN", ins.NN, 0x23)
	requireEqualU16(t, "NNN", ins.NNN, 0x123)
	requireEqualU16(t, "Raw", ins.Raw, 0xD123)
}

func TestDecodePatternSelection(t *testing.T) {
	cases := []struct {
		op   uint16
		kind InstructionKind
	}{
		{0x00E0, InsClearScreen},
		{0x00EE, InsReturn},
		{0x1234, InsJump},
		{0x2345, InsCall},
		{0x3456, InsSkipEqImm},
		{0x4567, InsSkipNeImm},
		{0x5670, InsSkipEqReg},
		{0x6789, InsLoadImm},
		{0x789A, InsAddImm},
		{0x89A0, InsCopy},
		{0x89A1, InsOr},
		{0x89A2, InsAnd},
		{0x89A3, InsXor},
		{0x89A4, InsAdd},
		{0x89A5, InsSub},
		{0x89A6, InsShiftRight},
		{0x89A7, InsSubReverse},
		{0x89AE, InsShiftLeft},
		{0x9AB0, InsSkipNeReg},
		{0xABCD, InsLoadIndex},
		{0xBCDE, InsJumpOffset},
		{0xCDEF, InsRandom},
		{0xDEF0, InsDraw},
		{0xE19E, InsSkipKeyDown},
		{0xE1A1, InsSkipKeyUp},
		{0xF107, InsReadDelay},
		{0xF10A, InsWaitKey},
		{0xF115, InsSetDelay},
		{0xF118, InsSetSound},
		{0xF11E, InsAddIndex},
		{0xF129, InsFontGlyph},
		{0xF133, InsStoreBCD},
		{0xF155, InsStoreRegs},
		{0xF165, InsLoadRegs},
	}
	for _, tc := range cases {
		if got := DecodeInstruction(tc.op).Kind; got != tc.kind {
			t.Errorf("decode(0x%04X) = %v, want %v", tc.op, got, tc.kind)
		}
	}
}

func TestDecodeRejectsNearMisses(t *testing.T) {
	// Patterns one bit off a valid encoding must fall to InsUnknown.
	for _, op := range []uint16{0x0000, 0x00E1, 0x00FE, 0x5121, 0x8128, 0x9ABF, 0xE19F, 0xF100, 0xF156} {
		if got := DecodeInstruction(op).Kind; got != InsUnknown {
			t.Errorf("decode(0x%04X) = %v, want InsUnknown", op, got)
		}
	}
}

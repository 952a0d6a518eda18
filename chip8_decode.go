// chip8_decode.go - Opcode word to typed instruction decoding

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

// InstructionKind enumerates every opcode pattern of the base
// instruction set, one variant per pattern. Anything that decodes to
// none of them becomes InsUnknown and executes as a counted no-op.
type InstructionKind int

const (
	InsUnknown InstructionKind = iota
	InsClearScreen                 // 00E0
	InsReturn                      // 00EE
	InsJump                        // 1nnn
	InsCall                        // 2nnn
	InsSkipEqImm                   // 3xnn
	InsSkipNeImm                   // 4xnn
	InsSkipEqReg                   // 5xy0
	InsLoadImm                     // 6xnn
	InsAddImm                      // 7xnn
	InsCopy                        // 8xy0
	InsOr                          // 8xy1
	InsAnd                         // 8xy2
	InsXor                         // 8xy3
	InsAdd                         // 8xy4
	InsSub                         // 8xy5
	InsShiftRight                  // 8xy6
	InsSubReverse                  // 8xy7
	InsShiftLeft                   // 8xyE
	InsSkipNeReg                   // 9xy0
	InsLoadIndex                   // Annn
	InsJumpOffset                  // Bnnn
	InsRandom                      // Cxnn
	InsDraw                        // Dxyn
	InsSkipKeyDown                 // Ex9E
	InsSkipKeyUp                   // ExA1
	InsReadDelay                   // Fx07
	InsWaitKey                     // Fx0A
	InsSetDelay                    // Fx15
	InsSetSound                    // Fx18
	InsAddIndex                    // Fx1E
	InsFontGlyph                   // Fx29
	InsStoreBCD                    // Fx33
	InsStoreRegs                   // Fx55
	InsLoadRegs                    // Fx65
)

// Instruction is one decoded opcode word. The operand fields are all
// populated from their fixed bit positions regardless of kind; register
// indices come from 4-bit fields and are always in range.
type Instruction struct {
	Kind InstructionKind
	X    byte   // Second nibble, register index
	Y    byte   // Third nibble, register index
	N    byte   // Low nibble, 4-bit literal
	NN   byte   // Low byte, 8-bit literal
	NNN  uint16 // Low 12 bits, address literal
	Raw  uint16
}

// DecodeInstruction splits a 16-bit opcode word into its operand fields
// and classifies it by pattern.
func DecodeInstruction(op uint16) Instruction {
	ins := Instruction{
		X:   byte(op>>8) & 0xF,
		Y:   byte(op>>4) & 0xF,
		N:   byte(op) & 0xF,
		NN:  byte(op),
		NNN: op & ADDR_MASK,
		Raw: op,
	}

	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0:
			ins.Kind = InsClearScreen
		case 0x00EE:
			ins.Kind = InsReturn
		}
	case 0x1000:
		ins.Kind = InsJump
	case 0x2000:
		ins.Kind = InsCall
	case 0x3000:
		ins.Kind = InsSkipEqImm
	case 0x4000:
		ins.Kind = InsSkipNeImm
	case 0x5000:
		if ins.N == 0 {
			ins.Kind = InsSkipEqReg
		}
	case 0x6000:
		ins.Kind = InsLoadImm
	case 0x7000:
		ins.Kind = InsAddImm
	case 0x8000:
		switch ins.N {
		case 0x0:
			ins.Kind = InsCopy
		case 0x1:
			ins.Kind = InsOr
		case 0x2:
			ins.Kind = InsAnd
		case 0x3:
			ins.Kind = InsXor
		case 0x4:
			ins.Kind = InsAdd
		case 0x5:
			ins.Kind = InsSub
		case 0x6:
			ins.Kind = InsShiftRight
		case 0x7:
			ins.Kind = InsSubReverse
		case 0xE:
			ins.Kind = InsShiftLeft
		}
	case 0x9000:
		if ins.N == 0 {
			ins.Kind = InsSkipNeReg
		}
	case 0xA000:
		ins.Kind = InsLoadIndex
	case 0xB000:
		ins.Kind = InsJumpOffset
	case 0xC000:
		ins.Kind = InsRandom
	case 0xD000:
		ins.Kind = InsDraw
	case 0xE000:
		switch ins.NN {
		case 0x9E:
			ins.Kind = InsSkipKeyDown
		case 0xA1:
			ins.Kind = InsSkipKeyUp
		}
	case 0xF000:
		switch ins.NN {
		case 0x07:
			ins.Kind = InsReadDelay
		case 0x0A:
			ins.Kind = InsWaitKey
		case 0x15:
			ins.Kind = InsSetDelay
		case 0x18:
			ins.Kind = InsSetSound
		case 0x1E:
			ins.Kind = InsAddIndex
		case 0x29:
			ins.Kind = InsFontGlyph
		case 0x33:
			ins.Kind = InsStoreBCD
		case 0x55:
			ins.Kind = InsStoreRegs
		case 0x65:
			ins.Kind = InsLoadRegs
		}
	}
	return ins
}

// cpu_chip8.go - CHIP-8 CPU core

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later

This module implements the CHIP-8 interpreter core: the register file,
memory, call stack, timers, and the fetch-decode-execute cycle for the
full base instruction set.

Core Features:
- Complete base CHIP-8 instruction set (35 opcode patterns)
- Typed instruction decode with exhaustive dispatch
- Exact VF carry/borrow/shift/collision flag semantics
- Logical wait-for-key suspension (Fx0A) with external key delivery
- Injected random source for deterministic Cxnn under test
- Recoverable fault counters for stack overflow/underflow and
  unrecognized opcodes (both execute as no-ops, as on historical
  interpreters, but are observable)

Quirk conventions (modern/SCHIP behavior):
- 8xy6/8xyE shift Vx in place; Vy is not read
- Fx55/Fx65 leave the index register unchanged
*/

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
)

// RunState distinguishes normal execution from the logical suspension
// entered by Fx0A. While waiting, Step is a no-op; only DeliverKey can
// resume the core.
type RunState int

const (
	StateRunning RunState = iota
	StateWaitingForKey
)

// RandomSource supplies the byte stream consumed by Cxnn. Production
// uses a PCG-seeded source; tests substitute a fixed sequence.
type RandomSource interface {
	RandomByte() byte
}

type pcgRandSource struct {
	rng *rand.Rand
}

func (s *pcgRandSource) RandomByte() byte {
	return byte(s.rng.IntN(256))
}

// NewRandomSource returns the default uniform random byte source.
func NewRandomSource() RandomSource {
	return &pcgRandSource{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// FaultCounters records conditions the original interpreter swallowed
// silently. Execution continues regardless; the counters exist so hosts
// and tests can observe misbehaving programs.
type FaultCounters struct {
	StackOverflow  uint64
	StackUnderflow uint64
	UnknownOpcode  uint64
}

// CPU is the machine state plus the execution engine that mutates it.
type CPU struct {
	Memory [MEMORY_SIZE]byte
	V      [REG_COUNT]byte        // General purpose registers V0-VF
	I      uint16                 // Index register
	PC     uint16                 // Program counter
	Stack  [STACK_DEPTH]uint16    // Call stack (return addresses)
	SP     byte                   // Stack pointer, 0..STACK_DEPTH
	DT     byte                   // Delay timer
	ST     byte                   // Sound timer
	Faults FaultCounters

	state   RunState
	waitReg byte // Target register while in StateWaitingForKey

	fb     *Framebuffer
	keypad *Keypad
	rng    RandomSource
}

// NewCPU wires a core to its framebuffer, keypad and random source and
// performs an initial reset.
func NewCPU(fb *Framebuffer, keypad *Keypad, rng RandomSource) *CPU {
	cpu := &CPU{
		fb:     fb,
		keypad: keypad,
		rng:    rng,
	}
	cpu.Reset()
	return cpu
}

// Reset clears all machine state and repopulates the font region.
// Loaded program bytes are discarded; reload before resuming execution.
func (cpu *CPU) Reset() {
	cpu.Memory = [MEMORY_SIZE]byte{}
	cpu.V = [REG_COUNT]byte{}
	cpu.Stack = [STACK_DEPTH]uint16{}
	cpu.I = 0
	cpu.PC = ENTRY_ADDR
	cpu.SP = 0
	cpu.DT = 0
	cpu.ST = 0
	cpu.Faults = FaultCounters{}
	cpu.state = StateRunning
	cpu.waitReg = 0
	copy(cpu.Memory[FONT_ADDR:], FontSprites[:])
}

// LoadProgram reads a ROM image from disk and copies it into memory at
// ENTRY_ADDR. On any failure no machine state is touched.
func (cpu *CPU) LoadProgram(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading program %s: %w", filename, err)
	}
	return cpu.LoadProgramBytes(data)
}

// LoadProgramBytes copies a raw program image into memory at ENTRY_ADDR
// and points PC at it. The font region and all other reserved state are
// left intact. Fails without mutation if the image does not fit.
func (cpu *CPU) LoadProgramBytes(data []byte) error {
	if ENTRY_ADDR+len(data) > MEMORY_SIZE {
		return fmt.Errorf("program size %d exceeds available memory (%d bytes from 0x%03X)",
			len(data), MEMORY_SIZE-ENTRY_ADDR, ENTRY_ADDR)
	}
	copy(cpu.Memory[ENTRY_ADDR:], data)
	cpu.PC = ENTRY_ADDR
	return nil
}

// WaitingForKey reports whether the core is suspended on Fx0A.
func (cpu *CPU) WaitingForKey() bool {
	return cpu.state == StateWaitingForKey
}

// DeliverKey resolves a pending Fx0A wait with the given key code.
// The code is written to the target register exactly once and the core
// resumes. A delivery while running is ignored; latching the key state
// itself is the keypad's job, not this method's.
func (cpu *CPU) DeliverKey(code byte) {
	if cpu.state != StateWaitingForKey {
		return
	}
	cpu.V[cpu.waitReg] = code & 0xF
	cpu.state = StateRunning
}

func (cpu *CPU) readByte(addr uint16) byte {
	return cpu.Memory[addr&ADDR_MASK]
}

func (cpu *CPU) writeByte(addr uint16, val byte) {
	cpu.Memory[addr&ADDR_MASK] = val
}

// push records a return address. A full stack drops the call and counts
// the fault; PC has already advanced past the opcode, so execution
// falls through to the next instruction.
func (cpu *CPU) push(addr uint16) bool {
	if cpu.SP >= STACK_DEPTH {
		cpu.Faults.StackOverflow++
		return false
	}
	cpu.Stack[cpu.SP] = addr
	cpu.SP++
	return true
}

// pop retrieves a return address. An empty stack makes the return a
// counted no-op.
func (cpu *CPU) pop() (uint16, bool) {
	if cpu.SP == 0 {
		cpu.Faults.StackUnderflow++
		return 0, false
	}
	cpu.SP--
	return cpu.Stack[cpu.SP], true
}

// Step fetches, decodes and executes one instruction. It returns true
// if the framebuffer changed and the host should redraw. While the core
// is suspended on Fx0A, Step does nothing: the suspending instruction
// has already retired its PC advance.
func (cpu *CPU) Step() bool {
	if cpu.state == StateWaitingForKey {
		return false
	}

	op := uint16(cpu.readByte(cpu.PC))<<8 | uint16(cpu.readByte(cpu.PC+1))
	cpu.PC = (cpu.PC + 2) & ADDR_MASK

	return cpu.execute(DecodeInstruction(op))
}

// skip advances PC over the next instruction.
func (cpu *CPU) skip() {
	cpu.PC = (cpu.PC + 2) & ADDR_MASK
}

func (cpu *CPU) execute(ins Instruction) bool {
	redraw := false

	switch ins.Kind {
	case InsClearScreen:
		cpu.fb.Clear()
		redraw = true

	case InsReturn:
		if addr, ok := cpu.pop(); ok {
			cpu.PC = addr
		}

	case InsJump:
		cpu.PC = ins.NNN

	case InsCall:
		if cpu.push(cpu.PC) {
			cpu.PC = ins.NNN
		}

	case InsSkipEqImm:
		if cpu.V[ins.X] == ins.NN {
			cpu.skip()
		}

	case InsSkipNeImm:
		if cpu.V[ins.X] != ins.NN {
			cpu.skip()
		}

	case InsSkipEqReg:
		if cpu.V[ins.X] == cpu.V[ins.Y] {
			cpu.skip()
		}

	case InsSkipNeReg:
		if cpu.V[ins.X] != cpu.V[ins.Y] {
			cpu.skip()
		}

	case InsLoadImm:
		cpu.V[ins.X] = ins.NN

	case InsAddImm:
		cpu.V[ins.X] += ins.NN

	case InsCopy:
		cpu.V[ins.X] = cpu.V[ins.Y]

	case InsOr:
		cpu.V[ins.X] |= cpu.V[ins.Y]

	case InsAnd:
		cpu.V[ins.X] &= cpu.V[ins.Y]

	case InsXor:
		cpu.V[ins.X] ^= cpu.V[ins.Y]

	case InsAdd:
		sum := uint16(cpu.V[ins.X]) + uint16(cpu.V[ins.Y])
		cpu.V[ins.X] = byte(sum)
		cpu.V[FLAG_REG] = boolToFlag(sum > 0xFF)

	case InsSub:
		noBorrow := cpu.V[ins.X] > cpu.V[ins.Y]
		cpu.V[ins.X] -= cpu.V[ins.Y]
		cpu.V[FLAG_REG] = boolToFlag(noBorrow)

	case InsShiftRight:
		bit := cpu.V[ins.X] & 0x01
		cpu.V[ins.X] >>= 1
		cpu.V[FLAG_REG] = bit

	case InsSubReverse:
		noBorrow := cpu.V[ins.Y] > cpu.V[ins.X]
		cpu.V[ins.X] = cpu.V[ins.Y] - cpu.V[ins.X]
		cpu.V[FLAG_REG] = boolToFlag(noBorrow)

	case InsShiftLeft:
		bit := (cpu.V[ins.X] & 0x80) >> 7
		cpu.V[ins.X] <<= 1
		cpu.V[FLAG_REG] = bit

	case InsLoadIndex:
		cpu.I = ins.NNN

	case InsJumpOffset:
		cpu.PC = (ins.NNN + uint16(cpu.V[0])) & ADDR_MASK

	case InsRandom:
		cpu.V[ins.X] = cpu.rng.RandomByte() & ins.NN

	case InsDraw:
		sprite := make([]byte, ins.N)
		for row := range sprite {
			sprite[row] = cpu.readByte(cpu.I + uint16(row))
		}
		collision := cpu.fb.DrawSprite(cpu.V[ins.X], cpu.V[ins.Y], sprite)
		cpu.V[FLAG_REG] = boolToFlag(collision)
		redraw = true

	case InsSkipKeyDown:
		if cpu.keypad.IsDown(cpu.V[ins.X]) {
			cpu.skip()
		}

	case InsSkipKeyUp:
		if !cpu.keypad.IsDown(cpu.V[ins.X]) {
			cpu.skip()
		}

	case InsReadDelay:
		cpu.V[ins.X] = cpu.DT

	case InsWaitKey:
		cpu.state = StateWaitingForKey
		cpu.waitReg = ins.X

	case InsSetDelay:
		cpu.DT = cpu.V[ins.X]

	case InsSetSound:
		cpu.ST = cpu.V[ins.X]

	case InsAddIndex:
		cpu.I += uint16(cpu.V[ins.X])

	case InsFontGlyph:
		cpu.I = FONT_ADDR + uint16(cpu.V[ins.X]&0xF)*GLYPH_BYTES

	case InsStoreBCD:
		v := cpu.V[ins.X]
		cpu.writeByte(cpu.I, v/100)
		cpu.writeByte(cpu.I+1, (v/10)%10)
		cpu.writeByte(cpu.I+2, v%10)

	case InsStoreRegs:
		for i := byte(0); i <= ins.X; i++ {
			cpu.writeByte(cpu.I+uint16(i), cpu.V[i])
		}

	case InsLoadRegs:
		for i := byte(0); i <= ins.X; i++ {
			cpu.V[i] = cpu.readByte(cpu.I + uint16(i))
		}

	case InsUnknown:
		cpu.Faults.UnknownOpcode++
	}

	return redraw
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

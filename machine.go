// machine.go - Machine orchestration and the 60Hz frame loop

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Machine owns the CPU core, framebuffer, keypad, timers and the video
// and audio backends, and drives them all from a single 60Hz loop:
// a batch of CPU cycles per frame, one timer tick, one frame push when
// something was drawn. The core itself is not reentrant; the machine's
// mutex is the single point of exclusion between the frame loop and the
// backend's key/reset callbacks.
type Machine struct {
	cpu    *CPU
	fb     *Framebuffer
	keypad *Keypad
	clock  *TimerClock
	video  VideoOutput
	beeper *Beeper
	audio  *TonePlayer

	cyclesPerFrame int
	frameRGBA      []byte
	romBytes       []byte
	romName        string

	mu            sync.Mutex
	loggedFaults  FaultCounters
	pendingRedraw bool
}

// NewMachine assembles a machine around the given backends. audio may
// be nil when no audio device is available; the tone signal is then
// simply dropped.
func NewMachine(video VideoOutput, beeper *Beeper, audio *TonePlayer, cyclesPerFrame int) *Machine {
	if cyclesPerFrame < 1 {
		cyclesPerFrame = DEFAULT_CYCLES_PER_FRAME
	}
	fb := NewFramebuffer()
	keypad := NewKeypad()
	cpu := NewCPU(fb, keypad, NewRandomSource())

	m := &Machine{
		cpu:            cpu,
		fb:             fb,
		keypad:         keypad,
		clock:          NewTimerClock(cpu),
		video:          video,
		beeper:         beeper,
		audio:          audio,
		cyclesPerFrame: cyclesPerFrame,
		frameRGBA:      make([]byte, PIXEL_COUNT*4),
		pendingRedraw:  true, // Push the cleared screen on the first frame
	}
	video.SetKeypadHandler(m.handleKey)
	video.SetHardResetHandler(m.Reset)
	return m
}

func (m *Machine) CPU() *CPU {
	return m.cpu
}

// LoadROM reads a program image from disk into the machine and labels
// the display with the ROM name.
func (m *Machine) LoadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ROM %s: %w", path, err)
	}
	return m.LoadROMBytes(data, filepath.Base(path))
}

// LoadROMBytes loads a raw program image. The bytes are retained so a
// hard reset can reload them.
func (m *Machine) LoadROMBytes(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.cpu.LoadProgramBytes(data); err != nil {
		return err
	}
	m.romBytes = make([]byte, len(data))
	copy(m.romBytes, data)
	m.romName = name
	m.video.SetTitle("Cosmac8 - " + name)
	return nil
}

// Reset returns the machine to power-on state and reloads the current
// ROM. Wired to the frontend's hard-reset chord.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cpu.Reset()
	m.fb.Clear()
	m.keypad.Reset()
	m.loggedFaults = FaultCounters{}
	m.pendingRedraw = true
	if m.beeper != nil {
		m.beeper.SetToneActive(false)
	}
	if m.romBytes != nil {
		// Cannot fail: the image fit when it was first loaded.
		_ = m.cpu.LoadProgramBytes(m.romBytes)
	}
}

// handleKey routes a frontend keypad event into the latch, and on
// key-down also resolves any pending wait-for-key suspension.
func (m *Machine) handleKey(code byte, pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pressed {
		m.keypad.Press(code)
		m.cpu.DeliverKey(code)
	} else {
		m.keypad.Release(code)
	}
}

// RunFrame executes one 60Hz frame: up to cyclesPerFrame CPU steps
// (none while the core is suspended on Fx0A), one timer tick, the tone
// gate update, and a frame push if anything was drawn. Returns whether
// a frame was pushed.
func (m *Machine) RunFrame() bool {
	m.mu.Lock()

	redraw := m.pendingRedraw
	m.pendingRedraw = false
	for i := 0; i < m.cyclesPerFrame; i++ {
		if m.cpu.WaitingForKey() {
			break
		}
		if m.cpu.Step() {
			redraw = true
		}
	}

	tone := m.clock.Tick()
	if m.beeper != nil {
		m.beeper.SetToneActive(tone)
	}
	m.logNewFaults()

	if redraw {
		m.fb.RenderRGBA(m.frameRGBA, PIXEL_ON_COLOR, PIXEL_OFF_COLOR)
	}
	m.mu.Unlock()

	if redraw {
		if err := m.video.UpdateFrame(m.frameRGBA); err != nil {
			fmt.Fprintf(os.Stderr, "frame update: %v\n", err)
		}
	}
	return redraw
}

// logNewFaults reports the first occurrence of each recoverable fault
// kind. The conditions are defined no-ops, so execution continues; the
// log line is there for ROM authors. Caller holds the mutex.
func (m *Machine) logNewFaults() {
	f := m.cpu.Faults
	if f.StackOverflow > 0 && m.loggedFaults.StackOverflow == 0 {
		fmt.Fprintf(os.Stderr, "warning: call stack overflow, call dropped (PC=0x%03X)\n", m.cpu.PC)
	}
	if f.StackUnderflow > 0 && m.loggedFaults.StackUnderflow == 0 {
		fmt.Fprintf(os.Stderr, "warning: return with empty call stack ignored (PC=0x%03X)\n", m.cpu.PC)
	}
	if f.UnknownOpcode > 0 && m.loggedFaults.UnknownOpcode == 0 {
		fmt.Fprintf(os.Stderr, "warning: unrecognized opcode treated as no-op (PC=0x%03X)\n", m.cpu.PC)
	}
	m.loggedFaults = f
}

// Run drives the frame loop at TIMER_HZ until the video backend shuts
// down.
func (m *Machine) Run() {
	if m.audio != nil {
		m.audio.Start()
	}

	ticker := time.NewTicker(time.Second / TIMER_HZ)
	defer ticker.Stop()

	for {
		select {
		case <-m.video.Done():
			return
		case <-ticker.C:
			m.RunFrame()
		}
	}
}

// Shutdown stops the backends in reverse start order.
func (m *Machine) Shutdown() {
	if m.audio != nil {
		m.audio.Close()
	}
	_ = m.video.Stop()
}

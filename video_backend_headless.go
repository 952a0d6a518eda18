// video_backend_headless.go - No-op display backend for tests and benchmarks

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"sync"
)

// HeadlessOutput swallows frames and exposes test hooks to inspect the
// last one and to inject keypad events as a physical frontend would.
type HeadlessOutput struct {
	mu            sync.Mutex
	running       bool
	title         string
	lastFrame     []byte
	frameCount    uint64
	done          chan struct{}
	stopOnce      sync.Once
	keypadHandler func(byte, bool)
	resetHandler  func()
}

func NewHeadlessOutput() (VideoOutput, error) {
	return &HeadlessOutput{
		done: make(chan struct{}),
	}, nil
}

func (ho *HeadlessOutput) Start() error {
	ho.mu.Lock()
	ho.running = true
	ho.mu.Unlock()
	return nil
}

func (ho *HeadlessOutput) Stop() error {
	ho.mu.Lock()
	ho.running = false
	ho.mu.Unlock()
	ho.stopOnce.Do(func() { close(ho.done) })
	return nil
}

func (ho *HeadlessOutput) IsStarted() bool {
	ho.mu.Lock()
	defer ho.mu.Unlock()
	return ho.running
}

func (ho *HeadlessOutput) Done() <-chan struct{} {
	return ho.done
}

func (ho *HeadlessOutput) SetTitle(title string) {
	ho.mu.Lock()
	ho.title = title
	ho.mu.Unlock()
}

func (ho *HeadlessOutput) UpdateFrame(buffer []byte) error {
	if len(buffer) != PIXEL_COUNT*4 {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("buffer size %d, want %d", len(buffer), PIXEL_COUNT*4),
		}
	}
	ho.mu.Lock()
	if ho.lastFrame == nil {
		ho.lastFrame = make([]byte, PIXEL_COUNT*4)
	}
	copy(ho.lastFrame, buffer)
	ho.frameCount++
	ho.mu.Unlock()
	return nil
}

func (ho *HeadlessOutput) SetKeypadHandler(fn func(byte, bool)) {
	ho.mu.Lock()
	ho.keypadHandler = fn
	ho.mu.Unlock()
}

func (ho *HeadlessOutput) SetHardResetHandler(fn func()) {
	ho.mu.Lock()
	ho.resetHandler = fn
	ho.mu.Unlock()
}

// LastFrame returns a copy of the most recent frame, or nil if none has
// been pushed yet.
func (ho *HeadlessOutput) LastFrame() []byte {
	ho.mu.Lock()
	defer ho.mu.Unlock()
	if ho.lastFrame == nil {
		return nil
	}
	out := make([]byte, len(ho.lastFrame))
	copy(out, ho.lastFrame)
	return out
}

func (ho *HeadlessOutput) FrameCount() uint64 {
	ho.mu.Lock()
	defer ho.mu.Unlock()
	return ho.frameCount
}

// InjectKey simulates a frontend keypad event.
func (ho *HeadlessOutput) InjectKey(code byte, pressed bool) {
	ho.mu.Lock()
	handler := ho.keypadHandler
	ho.mu.Unlock()
	if handler != nil {
		handler(code, pressed)
	}
}

// InjectHardReset simulates the frontend's hard-reset chord.
func (ho *HeadlessOutput) InjectHardReset() {
	ho.mu.Lock()
	handler := ho.resetHandler
	ho.mu.Unlock()
	if handler != nil {
		handler()
	}
}

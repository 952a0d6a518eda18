// video_interface.go - Display backend interface

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import "fmt"

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// Display colors, 0xRRGGBBAA.
const (
	PIXEL_ON_COLOR  = 0xFFFFFFFF
	PIXEL_OFF_COLOR = 0x000000FF
)

// VideoOutput is the minimal interface display backends implement. The
// machine pushes full RGBA frames; backends own scaling and windowing.
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	IsStarted() bool

	// Done is closed when the backend shuts down (window closed, quit
	// key, terminal EOF). The machine's run loop exits on it.
	Done() <-chan struct{}

	// UpdateFrame takes DISPLAY_WIDTH*DISPLAY_HEIGHT raw RGBA pixels.
	UpdateFrame(buffer []byte) error

	// SetTitle labels the window or terminal, typically with the ROM name.
	SetTitle(title string)

	// SetKeypadHandler registers the callback for virtual keypad
	// transitions. pressed=true on key-down, false on key-up.
	SetKeypadHandler(fn func(key byte, pressed bool))

	// SetHardResetHandler registers the callback for the backend's
	// hard-reset chord, if it has one.
	SetHardResetHandler(fn func())
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Windowed Ebiten backend
	VIDEO_BACKEND_TERMINAL        // ANSI terminal backend
	VIDEO_BACKEND_HEADLESS        // No-op backend for tests and benchmarks
)

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int, scale int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput(scale)
	case VIDEO_BACKEND_TERMINAL:
		return NewTerminalOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessOutput()
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

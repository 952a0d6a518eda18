// video_backend_terminal.go - ANSI terminal display backend

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later

Renders the framebuffer into the controlling terminal using half-block
characters (two display rows per text row) and reads the keypad from raw
stdin. Terminals deliver no key-up events, so a release is synthesized a
short hold time after each key-down.
*/

package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	TERM_KEY_HOLD = 120 * time.Millisecond // Synthesized key-up delay
)

// terminalKeypadCodes maps stdin bytes to virtual keypad codes, the
// same 1234/QWER/ASDF/ZXCV layout as the windowed backend.
var terminalKeypadCodes = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

type TerminalOutput struct {
	running      bool
	title        string
	oldTermState *term.State
	fd           int
	done         chan struct{}
	stopOnce     sync.Once

	mu               sync.Mutex
	keypadHandler    func(byte, bool)
	hardResetHandler func()
	releaseTimers    [KEY_COUNT]*time.Timer
}

func NewTerminalOutput() (VideoOutput, error) {
	return &TerminalOutput{
		fd:    int(os.Stdin.Fd()),
		title: "Cosmac8",
		done:  make(chan struct{}),
	}, nil
}

func (to *TerminalOutput) Start() error {
	if to.running {
		return nil
	}

	oldState, err := term.MakeRaw(to.fd)
	if err != nil {
		return &VideoError{Operation: "terminal setup", Details: "failed to set raw mode", Err: err}
	}
	to.oldTermState = oldState
	to.running = true

	// Alternate screen, hidden cursor, clear.
	fmt.Print("\x1b[?1049h\x1b[?25l\x1b[2J")

	go to.readInput()
	return nil
}

func (to *TerminalOutput) Stop() error {
	to.stopOnce.Do(func() {
		to.running = false
		fmt.Print("\x1b[?25h\x1b[?1049l")
		if to.oldTermState != nil {
			_ = term.Restore(to.fd, to.oldTermState)
			to.oldTermState = nil
		}
		close(to.done)
	})
	return nil
}

func (to *TerminalOutput) IsStarted() bool {
	return to.running
}

func (to *TerminalOutput) Done() <-chan struct{} {
	return to.done
}

func (to *TerminalOutput) SetTitle(title string) {
	to.mu.Lock()
	to.title = title
	to.mu.Unlock()
}

func (to *TerminalOutput) SetKeypadHandler(fn func(byte, bool)) {
	to.mu.Lock()
	to.keypadHandler = fn
	to.mu.Unlock()
}

func (to *TerminalOutput) SetHardResetHandler(fn func()) {
	to.mu.Lock()
	to.hardResetHandler = fn
	to.mu.Unlock()
}

// readInput consumes raw stdin bytes until quit. ESC or Ctrl+C ends the
// session; R triggers a hard reset; keypad bytes press their key and
// schedule the synthesized release.
func (to *TerminalOutput) readInput() {
	buf := make([]byte, 1)
	for to.running {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			to.Stop()
			return
		}
		b := buf[0]
		switch {
		case b == 0x1B || b == 0x03: // ESC or Ctrl+C
			to.Stop()
			return
		case b == 'R':
			to.mu.Lock()
			handler := to.hardResetHandler
			to.mu.Unlock()
			if handler != nil {
				handler()
			}
		default:
			if code, ok := terminalKeypadCodes[b]; ok {
				to.pressKey(code)
			}
		}
	}
}

func (to *TerminalOutput) pressKey(code byte) {
	to.mu.Lock()
	handler := to.keypadHandler
	if t := to.releaseTimers[code]; t != nil {
		t.Stop()
	}
	to.releaseTimers[code] = time.AfterFunc(TERM_KEY_HOLD, func() {
		to.mu.Lock()
		h := to.keypadHandler
		to.mu.Unlock()
		if h != nil {
			h(code, false)
		}
	})
	to.mu.Unlock()

	if handler != nil {
		handler(code, true)
	}
}

func (to *TerminalOutput) UpdateFrame(buffer []byte) error {
	if len(buffer) != PIXEL_COUNT*4 {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("buffer size %d, want %d", len(buffer), PIXEL_COUNT*4),
		}
	}

	lit := func(x, y int) bool {
		return buffer[(y*DISPLAY_WIDTH+x)*4] != 0
	}

	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for y := 0; y < DISPLAY_HEIGHT; y += 2 {
		for x := 0; x < DISPLAY_WIDTH; x++ {
			upper, lower := lit(x, y), lit(x, y+1)
			switch {
			case upper && lower:
				sb.WriteRune('█')
			case upper:
				sb.WriteRune('▀')
			case lower:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	to.mu.Lock()
	title := to.title
	to.mu.Unlock()
	sb.WriteString(title)
	sb.WriteString(" | keys 1234/qwer/asdf/zxcv | R reset | ESC quit\x1b[K")

	fmt.Print(sb.String())
	return nil
}

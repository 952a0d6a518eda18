// video_backend_ebiten.go - Ebiten windowed display backend

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// keypadBinding maps a physical key to a virtual keypad code. The
// standard layout mirrors the COSMAC VIP keypad onto 1234/QWER/ASDF/ZXCV.
type keypadBinding struct {
	key  ebiten.Key
	code byte
}

var keypadBindings = []keypadBinding{
	{ebiten.KeyDigit1, 0x1}, {ebiten.KeyDigit2, 0x2}, {ebiten.KeyDigit3, 0x3}, {ebiten.KeyDigit4, 0xC},
	{ebiten.KeyQ, 0x4}, {ebiten.KeyW, 0x5}, {ebiten.KeyE, 0x6}, {ebiten.KeyR, 0xD},
	{ebiten.KeyA, 0x7}, {ebiten.KeyS, 0x8}, {ebiten.KeyD, 0x9}, {ebiten.KeyF, 0xE},
	{ebiten.KeyZ, 0xA}, {ebiten.KeyX, 0x0}, {ebiten.KeyC, 0xB}, {ebiten.KeyV, 0xF},
}

type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	scale       int
	fullscreen  bool
	title       string
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	vsyncChan   chan struct{}
	done        chan struct{}

	keypadHandler    func(byte, bool)
	hardResetHandler func()
	resetInProgress  atomic.Bool
	showStatusBar    bool
}

func NewEbitenOutput(scale int) (VideoOutput, error) {
	if scale < 1 {
		return nil, &VideoError{
			Operation: "backend creation",
			Details:   fmt.Sprintf("invalid scale factor: %d", scale),
		}
	}
	return &EbitenOutput{
		scale:         scale,
		title:         "Cosmac8",
		frameBuffer:   make([]byte, PIXEL_COUNT*4),
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
		showStatusBar: true,
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(DISPLAY_WIDTH*eo.scale, DISPLAY_HEIGHT*eo.scale)
	ebiten.SetWindowTitle(eo.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer func() {
			eo.running = false
			select {
			case <-eo.done:
			default:
				close(eo.done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil && err != ebiten.Termination {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	return eo.done
}

func (eo *EbitenOutput) SetTitle(title string) {
	eo.bufferMutex.Lock()
	eo.title = title
	eo.bufferMutex.Unlock()
	if eo.running {
		ebiten.SetWindowTitle(title)
	}
}

func (eo *EbitenOutput) UpdateFrame(buffer []byte) error {
	if len(buffer) != PIXEL_COUNT*4 {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("buffer size %d, want %d", len(buffer), PIXEL_COUNT*4),
		}
	}
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, buffer)
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetKeypadHandler(fn func(byte, bool)) {
	eo.bufferMutex.Lock()
	eo.keypadHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetHardResetHandler(fn func()) {
	eo.bufferMutex.Lock()
	eo.hardResetHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) emitKey(code byte, pressed bool) {
	eo.bufferMutex.RLock()
	handler := eo.keypadHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(code, pressed)
	}
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(DISPLAY_WIDTH*eo.scale, DISPLAY_HEIGHT*eo.scale)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		if eo.resetInProgress.CompareAndSwap(false, true) {
			eo.bufferMutex.RLock()
			handler := eo.hardResetHandler
			eo.bufferMutex.RUnlock()
			if handler != nil {
				go func() {
					defer eo.resetInProgress.Store(false)
					handler()
				}()
			} else {
				eo.resetInProgress.Store(false)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.showStatusBar = !eo.showStatusBar
	}

	for _, b := range keypadBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			eo.emitKey(b.code, true)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			eo.emitKey(b.code, false)
		}
	}
	return nil
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(DISPLAY_WIDTH, DISPLAY_HEIGHT)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	title := eo.title
	eo.bufferMutex.RUnlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(eo.scale), float64(eo.scale))
	screen.DrawImage(eo.window, op)

	if eo.showStatusBar {
		status := fmt.Sprintf("%s | %0.f FPS | F10 reset  F11 fullscreen  F12 hide", title, ebiten.ActualFPS())
		text.Draw(screen, status, basicfont.Face7x13, 4, DISPLAY_HEIGHT*eo.scale-4, color.White)
	}

	atomic.AddUint64(&eo.frameCount, 1)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return DISPLAY_WIDTH * eo.scale, DISPLAY_HEIGHT * eo.scale
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&eo.frameCount)
}

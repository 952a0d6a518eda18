//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

type TonePlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	beeper    *Beeper
	sampleBuf []float32 // Pre-allocated sample buffer
	started   bool
	mutex     sync.Mutex
}

func NewTonePlayer(beeper *Beeper, sampleRate int) (*TonePlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	tp := &TonePlayer{
		ctx:       ctx,
		beeper:    beeper,
		sampleBuf: make([]float32, 4096),
	}
	tp.player = ctx.NewPlayer(tp)
	return tp, nil
}

// Read pulls samples from the beeper on oto's playback goroutine.
func (tp *TonePlayer) Read(p []byte) (n int, err error) {
	numSamples := len(p) / 4

	if len(tp.sampleBuf) < numSamples {
		tp.sampleBuf = make([]float32, numSamples)
	}
	samples := tp.sampleBuf[:numSamples]

	for i := 0; i < numSamples; i++ {
		samples[i] = tp.beeper.GenerateSample()
	}

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (tp *TonePlayer) Start() {
	tp.mutex.Lock()
	defer tp.mutex.Unlock()

	if !tp.started && tp.player != nil {
		tp.player.Play()
		tp.started = true
	}
}

func (tp *TonePlayer) Stop() {
	tp.mutex.Lock()
	defer tp.mutex.Unlock()

	if tp.started && tp.player != nil {
		tp.player.Close()
		tp.player = nil
		tp.started = false
	}
}

func (tp *TonePlayer) Close() {
	tp.Stop()
}

func (tp *TonePlayer) IsStarted() bool {
	tp.mutex.Lock()
	defer tp.mutex.Unlock()
	return tp.started
}

// audio_beeper.go - Square-wave tone source gated by the sound timer

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import "sync/atomic"

const (
	SAMPLE_RATE = 44100 // Output sample rate in Hz
	TONE_FREQ   = 440.0 // Beep pitch
	TONE_VOLUME = 0.25  // Output amplitude
)

// Beeper turns the machine's per-tick tone signal into a continuous
// square wave. The gate is set from the machine thread once per timer
// tick; samples are pulled from the audio backend's own goroutine, so
// the gate is the only shared state.
type Beeper struct {
	gate       atomic.Bool
	phase      float64
	phaseStep  float64
	sampleRate int
}

func NewBeeper(sampleRate int) *Beeper {
	return &Beeper{
		phaseStep:  TONE_FREQ / float64(sampleRate),
		sampleRate: sampleRate,
	}
}

// SetToneActive opens or closes the tone gate for the current tick.
func (b *Beeper) SetToneActive(on bool) {
	b.gate.Store(on)
}

func (b *Beeper) ToneActive() bool {
	return b.gate.Load()
}

// GenerateSample produces the next mono sample. The phase accumulator
// keeps running while gated off so reopening the gate does not click at
// an arbitrary waveform position.
func (b *Beeper) GenerateSample() float32 {
	b.phase += b.phaseStep
	if b.phase >= 1.0 {
		b.phase -= 1.0
	}
	if !b.gate.Load() {
		return 0
	}
	if b.phase < 0.5 {
		return TONE_VOLUME
	}
	return -TONE_VOLUME
}

//go:build headless

// audio_backend_headless.go - No-op audio backend

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

type TonePlayer struct {
	beeper  *Beeper
	started bool
}

func NewTonePlayer(beeper *Beeper, sampleRate int) (*TonePlayer, error) {
	return &TonePlayer{beeper: beeper}, nil
}

func (tp *TonePlayer) Read(p []byte) (n int, err error) {
	return len(p), nil
}

func (tp *TonePlayer) Start() {
	tp.started = true
}

func (tp *TonePlayer) Stop() {
	tp.started = false
}

func (tp *TonePlayer) Close() {
	tp.started = false
}

func (tp *TonePlayer) IsStarted() bool {
	return tp.started
}

// timer_clock.go - 60Hz delay/sound timer clock

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

// TimerClock decrements the CPU's delay and sound timers at the 60Hz
// cadence the host drives it at, independent of instruction rate.
type TimerClock struct {
	cpu *CPU
}

func NewTimerClock(cpu *CPU) *TimerClock {
	return &TimerClock{cpu: cpu}
}

// Tick advances both timers by one 60Hz period and reports whether the
// tone should sound for this tick. The tone is gated on the sound timer
// still being nonzero after the decrement: the tick that lands on zero
// is silent, matching COSMAC VIP behavior.
func (tc *TimerClock) Tick() bool {
	if tc.cpu.DT > 0 {
		tc.cpu.DT--
	}
	if tc.cpu.ST > 0 {
		tc.cpu.ST--
		return tc.cpu.ST > 0
	}
	return false
}

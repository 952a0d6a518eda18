// input_keypad.go - 16-key hex keypad state

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

// Keypad latches the current up/down state of the 16 virtual keys.
// Key codes are 4-bit; anything wider is masked, never rejected.
type Keypad struct {
	keys [KEY_COUNT]bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (kp *Keypad) Reset() {
	kp.keys = [KEY_COUNT]bool{}
}

func (kp *Keypad) Press(code byte) {
	kp.keys[code&0xF] = true
}

func (kp *Keypad) Release(code byte) {
	kp.keys[code&0xF] = false
}

func (kp *Keypad) IsDown(code byte) bool {
	return kp.keys[code&0xF]
}

// Package joypad implements the active-low button matrix exposed at
// 0xFF00: the guest selects either the action or direction
// nibble, and a clear bit means "pressed".
package joypad

import "github.com/tjweir/dmgboy/internal/interrupts"

// Button identifies one of the eight joypad inputs.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

const Register uint16 = 0xFF00

// Joypad tracks button state and the guest's nibble selection.
type Joypad struct {
	selectButtons   bool
	selectDirection bool
	state           [8]bool

	irq *interrupts.Controller
}

// New returns a Joypad with no buttons held.
func New(irq *interrupts.Controller) *Joypad {
	return &Joypad{irq: irq}
}

// SetPressed updates a single button's held state. A transition into
// the held state while its nibble is selected raises the Joypad
// interrupt, matching real hardware's wake-on-keypress behavior.
func (j *Joypad) SetPressed(b Button, pressed bool) {
	was := j.state[b]
	j.state[b] = pressed
	if pressed && !was && j.nibbleSelected(b) {
		j.irq.Request(interrupts.JoypadFlag)
	}
}

func (j *Joypad) nibbleSelected(b Button) bool {
	if b <= ButtonStart {
		return !j.selectButtons
	}
	return !j.selectDirection
}

// Read returns the current 0xFF00 register value.
func (j *Joypad) Read(addr uint16) uint8 {
	out := uint8(0xCF)
	if !j.selectButtons {
		out = clearIf(out, 3, j.state[ButtonStart])
		out = clearIf(out, 2, j.state[ButtonSelect])
		out = clearIf(out, 1, j.state[ButtonB])
		out = clearIf(out, 0, j.state[ButtonA])
	}
	if !j.selectDirection {
		out = clearIf(out, 0, j.state[ButtonRight])
		out = clearIf(out, 1, j.state[ButtonLeft])
		out = clearIf(out, 2, j.state[ButtonUp])
		out = clearIf(out, 3, j.state[ButtonDown])
	}
	return out
}

// Write updates the nibble-selection bits (bits 5/4); bits 0-3 are
// read-only from the guest's perspective.
func (j *Joypad) Write(addr uint16, value uint8) {
	j.selectButtons = value&0x20 != 0
	j.selectDirection = value&0x10 != 0
}

func clearIf(v uint8, bit uint8, cond bool) uint8 {
	if cond {
		return v &^ (1 << bit)
	}
	return v
}

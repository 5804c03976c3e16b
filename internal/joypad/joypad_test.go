package joypad

import (
	"testing"

	"github.com/tjweir/dmgboy/internal/interrupts"
)

func TestReadDefaultsToAllReleased(t *testing.T) {
	j := New(interrupts.NewController())
	j.Write(Register, 0x30) // select neither nibble
	if got := j.Read(Register); got&0x0F != 0x0F {
		t.Fatalf("Read() low nibble = %#02x, want 0x0F with no nibble selected", got&0x0F)
	}
}

func TestActionButtonClearsBitWhenSelected(t *testing.T) {
	j := New(interrupts.NewController())
	j.SetPressed(ButtonA, true)
	j.Write(Register, 0x10) // select buttons (bit 5 low), bit4=1 means direction not selected
	if got := j.Read(Register); got&0x01 != 0 {
		t.Fatalf("bit 0 (A) = 1, want 0 (pressed) with action nibble selected, full=%#02x", got)
	}
}

func TestDirectionButtonIgnoredWhenWrongNibbleSelected(t *testing.T) {
	j := New(interrupts.NewController())
	j.SetPressed(ButtonUp, true)
	j.Write(Register, 0x10) // bit5=0 selects the action nibble; bit4=1 leaves direction deselected
	if got := j.Read(Register); got&0x0F != 0x0F {
		t.Fatalf("Up should not affect the action nibble, got %#02x", got&0x0F)
	}
}

func TestPressTransitionRaisesJoypadIRQOnlyWhenSelected(t *testing.T) {
	irq := interrupts.NewController()
	j := New(irq)

	j.Write(Register, 0x10) // selectButtons=false (selected), selectDirection=true (not selected)
	j.SetPressed(ButtonDown, true)
	if irq.Flag&(1<<interrupts.JoypadFlag) != 0 {
		t.Fatal("direction press should not raise Joypad IRQ while the direction nibble is deselected")
	}

	j.SetPressed(ButtonA, true)
	if irq.Flag&(1<<interrupts.JoypadFlag) == 0 {
		t.Fatal("expected Joypad IRQ on A press while the action nibble is selected")
	}
}

func TestNoIRQOnRepeatedPressWithoutRelease(t *testing.T) {
	irq := interrupts.NewController()
	j := New(irq)
	j.Write(Register, 0x10)
	j.SetPressed(ButtonA, true)
	irq.Clear(interrupts.JoypadFlag)

	j.SetPressed(ButtonA, true) // already held, not a transition
	if irq.Flag&(1<<interrupts.JoypadFlag) != 0 {
		t.Fatal("expected no IRQ for a repeated press with no release in between")
	}
}

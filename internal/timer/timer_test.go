package timer

import (
	"testing"

	"github.com/tjweir/dmgboy/internal/interrupts"
)

var periods = map[uint8]int{0: 1024, 1: 16, 2: 64, 3: 256}

func TestFallingEdgeIncrementsPerPeriod(t *testing.T) {
	for mode, period := range periods {
		irq := interrupts.NewController()
		tm := New(irq)
		tm.Write(TacAddr, 0x04|mode)

		tm.Tick(period - 1)
		if tm.tima != 0 {
			t.Fatalf("mode %d: TIMA incremented early at %d T-cycles", mode, period-1)
		}
		tm.Tick(1)
		if tm.tima != 1 {
			t.Fatalf("mode %d: TIMA = %d after %d T-cycles, want 1", mode, tm.tima, period)
		}
	}
}

func TestTimerDisabledNeverIncrements(t *testing.T) {
	irq := interrupts.NewController()
	tm := New(irq)
	tm.Write(TacAddr, 0x00) // enable bit clear
	tm.Tick(4096)
	if tm.tima != 0 {
		t.Fatalf("TIMA = %d with timer disabled, want 0", tm.tima)
	}
}

func TestDivWriteResetsCounterAndEdgeTiming(t *testing.T) {
	irq := interrupts.NewController()
	tm := New(irq)
	tm.Write(TacAddr, 0x04|0x01) // period 16

	tm.Tick(10)
	tm.Write(DivAddr, 0xFF) // any value resets the internal counter
	if tm.Read(DivAddr) != 0 {
		t.Fatalf("DIV = %#02x after write, want 0x00", tm.Read(DivAddr))
	}

	tm.Tick(15)
	if tm.tima != 0 {
		t.Fatalf("TIMA incremented early after DIV reset")
	}
	tm.Tick(1)
	if tm.tima != 1 {
		t.Fatalf("TIMA = %d after a full period post-reset, want 1", tm.tima)
	}
}

func TestTIMAOverflowReloadsTMAAndRequestsIRQ(t *testing.T) {
	irq := interrupts.NewController()
	tm := New(irq)
	tm.Write(TacAddr, 0x04|0x01) // period 16
	tm.Write(TmaAddr, 0x7F)
	tm.tima = 0xFF

	tm.Tick(16)
	if tm.tima != 0x7F {
		t.Fatalf("TIMA = %#02x after overflow, want TMA (0x7F)", tm.tima)
	}
	if irq.Flag&(1<<interrupts.TimerFlag) == 0 {
		t.Fatal("expected the Timer interrupt flag to be set on TIMA overflow")
	}
}

func TestTACReadMasksReservedBits(t *testing.T) {
	irq := interrupts.NewController()
	tm := New(irq)
	tm.Write(TacAddr, 0x05)
	if got := tm.Read(TacAddr); got != 0xFD {
		t.Fatalf("Read(TAC) = %#02x, want 0xFD (reserved bits set)", got)
	}
}

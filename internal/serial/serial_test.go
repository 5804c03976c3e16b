package serial

import "testing"

func TestPrintfPortCapturesWrittenBytes(t *testing.T) {
	p := New()
	p.Write(DataAddr, 'h')
	p.Write(ControlAddr, 0x81)
	p.Write(DataAddr, 'i')
	p.Write(ControlAddr, 0x81)

	if got := string(p.Output()); got != "hi" {
		t.Fatalf("Output() = %q, want \"hi\"", got)
	}
}

func TestTransferBitSelfClearsImmediately(t *testing.T) {
	p := New()
	p.Write(DataAddr, 'x')
	p.Write(ControlAddr, 0x81)
	if got := p.Read(ControlAddr); got&0x80 != 0 {
		t.Fatalf("control transfer bit still set after write, got %#02x", got)
	}
}

func TestControlWriteWithoutInternalClockDoesNotTransfer(t *testing.T) {
	p := New()
	p.Write(DataAddr, 'y')
	p.Write(ControlAddr, 0x80) // transfer requested, but no internal-clock bit
	if len(p.Output()) != 0 {
		t.Fatalf("expected no output for a non-printf control write, got %q", p.Output())
	}
}

package cartridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tjweir/dmgboy/pkg/dmglog"
)

// buildROM returns a ROM image of the given number of 16 KiB banks with
// a valid header for cartType and a correct header checksum. Each bank's
// first byte is stamped with its own bank index so bank-switch tests can
// tell banks apart.
func buildROM(t *testing.T, banks int, cartType Type, ramCode uint8) []byte {
	t.Helper()
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	copy(rom[0x0134:], "TESTGAME")
	rom[0x0147] = byte(cartType)
	// ROMBanks = 2 << rom[0x0148]
	romSizeCode := byte(0)
	for (2 << romSizeCode) < banks {
		romSizeCode++
	}
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramCode

	var checksum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		checksum = checksum - rom[i] - 1
	}
	rom[0x014D] = checksum
	return rom
}

func writeROM(t *testing.T, dir, name string, rom []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, rom, 0o644); err != nil {
		t.Fatalf("writing test ROM: %v", err)
	}
	return path
}

func TestHeaderChecksumValid(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 2, TypeROMOnly, 0x00)
	path := writeROM(t, dir, "valid.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Header().Title != "TESTGAME" {
		t.Fatalf("Title = %q, want TESTGAME", c.Header().Title)
	}
}

func TestHeaderChecksumMismatchIsFatal(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 2, TypeROMOnly, 0x00)
	rom[0x014D] ^= 0xFF // corrupt the stored checksum
	path := writeROM(t, dir, "corrupt.gb", rom)

	if _, err := Load(path, dmglog.Null()); err == nil {
		t.Fatal("expected a load error for a corrupt header checksum")
	}
}

func TestMBC1BankZeroImmutable(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 4, TypeMBC1, 0x00)
	path := writeROM(t, dir, "mbc1.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for bank := uint8(1); bank < 4; bank++ {
		c.Write(0x2000, bank)
		if got := c.Read(0x0000); got != 0 {
			t.Fatalf("bank 0 byte changed after selecting bank %d: got %#02x", bank, got)
		}
	}
}

func TestMBC1BankZeroImmutableInMode1(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 64, TypeMBC1, 0x00)
	path := writeROM(t, dir, "mbc1-mode1.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Write(0x6000, 0x01) // switch to RAM/advanced banking mode
	c.Write(0x4000, 0x01) // bank2 = 1, would select bank 32 at 0x0000 under the real-hardware quirk
	if got := c.Read(0x0000); got != 0 {
		t.Fatalf("Read(0x0000) in mode 1 = %#02x, want 0 (bank 0 is always mapped below 0x4000)", got)
	}
}

func TestMBC1BankSwitchSelectsHighBank(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 4, TypeMBC1, 0x00)
	path := writeROM(t, dir, "mbc1.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Write(0x2000, 3)
	if got := c.Read(0x4000); got != 3 {
		t.Fatalf("Read(0x4000) = %#02x after selecting bank 3, want 0x03", got)
	}

	c.Write(0x2000, 0) // coerced to 1
	if got := c.Read(0x4000); got != 1 {
		t.Fatalf("Read(0x4000) = %#02x after writing bank 0, want 0x01 (coerced)", got)
	}
}

func TestMBC1RAMEnableGate(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 2, TypeMBC1RAM, 0x02) // 8 KiB RAM
	path := writeROM(t, dir, "mbc1ram.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := c.Read(0xA000); got != 0xFF {
		t.Fatalf("Read(0xA000) with RAM disabled = %#02x, want 0xFF", got)
	}
	c.Write(0xA000, 0x42) // dropped, RAM disabled
	if got := c.Read(0xA000); got != 0xFF {
		t.Fatalf("write while RAM disabled should be dropped, got %#02x", got)
	}

	c.Write(0x0000, 0x0A) // enable
	c.Write(0xA000, 0x42)
	if got := c.Read(0xA000); got != 0x42 {
		t.Fatalf("Read(0xA000) with RAM enabled = %#02x, want 0x42", got)
	}
}

func TestBatterySaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 2, TypeMBC1RAMBattery, 0x02)
	path := writeROM(t, dir, "save.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Write(0x0000, 0x0A) // enable RAM
	c.Write(0xA010, 0x99)

	if err := c.FlushSave(); err != nil {
		t.Fatalf("FlushSave: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "TESTGAME.sav")); err != nil {
		t.Fatalf("expected a .sav file: %v", err)
	}

	c2, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	c2.Write(0x0000, 0x0A)
	if got := c2.Read(0xA010); got != 0x99 {
		t.Fatalf("reloaded save byte = %#02x, want 0x99", got)
	}
}

func TestUnsupportedCartTypeFallsBackToROMOnly(t *testing.T) {
	dir := t.TempDir()
	rom := buildROM(t, 2, Type(0xFF), 0x00)
	path := writeROM(t, dir, "unknown.gb", rom)

	c, err := Load(path, dmglog.Null())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// ROM-only controller: bank-switch writes are no-ops, 0x4000 always
	// reads bank 1's stamped byte.
	c.Write(0x2000, 3)
	if got := c.Read(0x4000); got != 1 {
		t.Fatalf("Read(0x4000) = %#02x, want 0x01 (fixed bank 1, ROM-only fallback)", got)
	}
}

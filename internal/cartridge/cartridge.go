package cartridge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"
	"github.com/tjweir/dmgboy/internal/gberr"
	"github.com/tjweir/dmgboy/pkg/dmglog"
)

// controller is the memory-bank-controller behavior a Cartridge
// delegates to; it is the seam a new MBC is added behind.
type controller interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	RAM() []byte
	LoadRAM(data []byte)
}

// Cartridge owns the ROM image, its parsed header, and (if present) the
// battery-backed external RAM save file.
type Cartridge struct {
	header     *Header
	controller controller
	log        dmglog.Logger

	savePath string
	dirty    bool
}

// Load parses romPath, constructs the matching bank controller, and
// (for battery cartridges) loads the adjacent .sav file if one exists.
// It returns a *gberr.LoadError for any I/O or header failure.
func Load(romPath string, log dmglog.Logger) (*Cartridge, error) {
	if log == nil {
		log = dmglog.Null()
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return nil, &gberr.LoadError{Path: romPath, Cause: err}
	}

	header, err := parseHeader(data)
	if err != nil {
		return nil, &gberr.LoadError{Path: romPath, Cause: err}
	}

	c := &Cartridge{header: header, log: log}

	switch header.Type {
	case TypeROMOnly:
		c.controller = &romOnly{rom: data}
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBattery:
		c.controller = newMBC1(data, header.RAMSize)
	default:
		log.Warnf("cartridge: unsupported type %s, falling back to ROM-only behavior", header.Type)
		c.controller = &romOnly{rom: data}
	}

	if header.Type.HasBattery() {
		c.savePath = savePathFor(romPath, header.Title)
		if err := c.loadSave(); err != nil {
			log.Warnf("cartridge: could not load save file %s: %v", c.savePath, err)
		}
	}

	log.Infof("cartridge: loaded %q (%s, %d ROM bank(s), hash=%016x)",
		header.Title, header.Type, header.ROMBanks, xxhash.Sum64(data))

	return c, nil
}

// Header returns the cartridge's parsed header.
func (c *Cartridge) Header() *Header { return c.header }

// Read dispatches a cartridge-space read (0x0000-0x7FFF, 0xA000-0xBFFF)
// to the active bank controller.
func (c *Cartridge) Read(addr uint16) uint8 { return c.controller.Read(addr) }

// Write dispatches a cartridge-space write to the active bank
// controller and marks the save dirty if it touched external RAM.
func (c *Cartridge) Write(addr uint16, value uint8) {
	c.controller.Write(addr, value)
	if addr >= 0xA000 && addr < 0xC000 && c.header.Type.HasBattery() {
		c.dirty = true
	}
}

// FlushSave writes the cartridge RAM to disk if it has changed since
// the last flush. A flush failure is reported, never panicked.
func (c *Cartridge) FlushSave() error {
	if !c.dirty || c.savePath == "" {
		return nil
	}
	ram := c.controller.RAM()
	if len(ram) == 0 {
		return nil
	}

	tmp := c.savePath + ".tmp"
	if err := os.WriteFile(tmp, ram, 0o644); err != nil {
		return fmt.Errorf("cartridge: writing save file: %w", err)
	}
	if err := os.Rename(tmp, c.savePath); err != nil {
		return fmt.Errorf("cartridge: committing save file: %w", err)
	}
	c.dirty = false
	return nil
}

func (c *Cartridge) loadSave() error {
	data, err := os.ReadFile(c.savePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	c.controller.LoadRAM(data)
	return nil
}

func savePathFor(romPath, title string) string {
	dir := filepath.Dir(romPath)
	base := title
	if base == "" {
		base = filepath.Base(romPath)
	}
	return filepath.Join(dir, base+".sav")
}

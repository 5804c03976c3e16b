// Package cartridge implements ROM header parsing, the MBC1 banking
// controller, and battery-backed save loading.
package cartridge

import "fmt"

// Type identifies the cartridge's memory bank controller, decoded from
// the 0x0147 header byte.
type Type uint8

const (
	TypeROMOnly Type = 0x00
	TypeMBC1    Type = 0x01
	TypeMBC1RAM Type = 0x02
	TypeMBC1RAMBattery Type = 0x03
)

func (t Type) String() string {
	switch t {
	case TypeROMOnly:
		return "ROM ONLY"
	case TypeMBC1:
		return "MBC1"
	case TypeMBC1RAM:
		return "MBC1+RAM"
	case TypeMBC1RAMBattery:
		return "MBC1+RAM+BATTERY"
	default:
		return fmt.Sprintf("UNKNOWN(%#02x)", uint8(t))
	}
}

// HasRAM reports whether the header declares external cartridge RAM.
func (t Type) HasRAM() bool {
	return t == TypeMBC1RAM || t == TypeMBC1RAMBattery
}

// HasBattery reports whether the header declares a battery-backed save.
func (t Type) HasBattery() bool {
	return t == TypeMBC1RAMBattery
}

var ramSizeCodes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header holds the parsed cartridge header.
type Header struct {
	Title         string
	Type          Type
	ROMBanks      int
	RAMSize       int
	HeaderChecksum uint8
}

// parseHeader decodes the header fields out of a full ROM image and
// validates the header checksum per the Pan Docs algorithm.
func parseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("cartridge: ROM too small to contain a header (%d bytes)", len(rom))
	}

	h := &Header{
		Type:           Type(rom[0x0147]),
		ROMBanks:       2 << rom[0x0148],
		HeaderChecksum: rom[0x014D],
	}
	if size, ok := ramSizeCodes[rom[0x0149]]; ok {
		h.RAMSize = size
	}

	title := make([]byte, 0, 16)
	for i := 0x0134; i <= 0x0143; i++ {
		b := rom[i]
		if b == 0 {
			break
		}
		title = append(title, b)
	}
	h.Title = string(title)

	var checksum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		checksum = checksum - rom[i] - 1
	}
	if checksum != h.HeaderChecksum {
		return nil, fmt.Errorf("cartridge: header checksum mismatch (computed %#02x, stored %#02x)", checksum, h.HeaderChecksum)
	}

	return h, nil
}

package ide

import "path/filepath"

// Track describes one entry of a CD-ROM's two-slot track table (§3):
// track[0] is the single data track, track[1] is the lead-out.
type Track struct {
	Start      uint32
	Length     uint32
	SectorSize uint16
	Attr       uint8
	Mode2      bool
}

// Drive is a Drive Descriptor (§3): a drive slot's image handle, geometry,
// role, and identify block.
type Drive struct {
	Image Image

	Cylinders     uint32
	Heads         uint32
	SPT           uint32
	TotalSectors  uint32

	Present     bool
	Placeholder bool
	CD          bool

	// LoadState is the medium-change sense-ramp counter (§4.5), mutated
	// only by REQUEST SENSE and Mount.
	LoadState uint8

	Identify [256]uint16
	Tracks   [2]Track
}

// buildHDDIdentify constructs the 256-word HDD identify block from the
// fixed template in §4.3, patched with the drive's geometry and sector
// count.
func buildHDDIdentify(cylinders, heads, spt, totalSectors uint32) [256]uint16 {
	var id [256]uint16

	id[0] = 0x0040
	id[1] = uint16(cylinders)
	id[3] = uint16(heads)
	id[4] = uint16(512 * spt)
	id[5] = 512
	id[6] = uint16(spt)

	id[10] = ('A' << 8) | 'O'
	id[11] = ('H' << 8) | 'D'
	id[12] = ('0' << 8) | '0'
	id[13] = ('0' << 8) | '0'
	id[14] = ('0' << 8) | ' '
	for i := 15; i <= 19; i++ {
		id[i] = (' ' << 8) | ' '
	}

	id[20] = 3   // buffer type
	id[21] = 512 // cache size
	id[22] = 4   // number of ecc bytes

	for i := 27; i <= 46; i++ {
		id[i] = (' ' << 8) | ' '
	}

	id[47] = 0x8010 // max multiple sectors
	id[48] = 1      // dword io
	id[49] = 1 << 9 // lba supported
	id[50] = 0x4001
	id[51] = 0x0200
	id[52] = 0x0200
	id[53] = 0x0007
	id[54] = uint16(cylinders)
	id[55] = uint16(heads)
	id[56] = uint16(spt)
	id[57] = uint16(totalSectors)
	id[58] = uint16(totalSectors >> 16)
	id[59] = 0x110
	id[60] = uint16(totalSectors)
	id[61] = uint16(totalSectors >> 16)

	for i := 65; i <= 68; i++ {
		id[i] = 120
	}

	id[80] = 0x007E
	id[82] = (1 << 14) | (1 << 9)
	id[83] = (1 << 14) | (1 << 13) | (1 << 12) | (1 << 10)
	id[84] = 1 << 14
	id[85] = (1 << 14) | (1 << 9)
	id[86] = (1 << 14) | (1 << 13) | (1 << 12) | (1 << 10)
	id[87] = 1 << 14
	id[93] = 1 | (1 << 14) | (1 << 13) | (1 << 9) | (1 << 8) | (1 << 3) | (1 << 1) | (1 << 0)
	id[100] = uint16(totalSectors)
	id[101] = uint16(totalSectors >> 16)

	return id
}

// buildCDIdentify constructs the 256-word CD-ROM (ATAPI) identify block
// from the fixed template in §4.3.
func buildCDIdentify() [256]uint16 {
	var id [256]uint16

	id[0] = 0x8580

	id[10] = ('A' << 8) | 'O'
	id[11] = ('C' << 8) | 'D'
	id[12] = ('0' << 8) | '0'
	id[13] = ('0' << 8) | '0'
	id[14] = ('0' << 8) | ' '
	for i := 15; i <= 19; i++ {
		id[i] = (' ' << 8) | ' '
	}

	for i := 27; i <= 46; i++ {
		id[i] = (' ' << 8) | ' '
	}

	id[49] = 1 << 9 // lba supported
	id[53] = 0x0007

	for i := 65; i <= 68; i++ {
		id[i] = 120
	}

	id[80] = 0x007E
	id[82] = (1 << 9) | (1 << 4)
	id[83] = 1 << 14
	id[84] = 1 << 14
	id[85] = (1 << 14) | (1 << 9) | (1 << 4)
	id[87] = 1 << 14
	id[93] = 1 | (1 << 14) | (1 << 13) | (1 << 9) | (1 << 8) | (1 << 3) | (1 << 1) | (1 << 0)

	return id
}

// patchModelName writes the image file's leaf name into identify words
// 27..46, two bytes per word, big-endian, space-padded. Applies to both
// HDD and CD identify blocks, matching the source's unconditional patch
// after either template is built.
func patchModelName(id *[256]uint16, path string) {
	name := []byte(filepath.Base(path))

	pos := 0
	for i := 0; i < 20; i++ {
		word := id[27+i]
		if pos < len(name) {
			word = (uint16(name[pos]) << 8) | 0x20
			pos++
		}
		if pos < len(name) {
			word = (word & 0xFF00) | uint16(name[pos])
			pos++
		}
		id[27+i] = word
	}
}

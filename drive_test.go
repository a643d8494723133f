package ide

import "testing"

// TestBuildHDDIdentify_Scenario1 mounts a 1,048,576,000-byte image and
// checks the identify-block words called out by the literal HDD identify
// scenario (§8): word0 fixed, word1 cylinder count, and the total-sector
// words at 60/61 computed from the published total sector count rather
// than re-derived from truncated CHS geometry.
func TestBuildHDDIdentify_Scenario1(t *testing.T) {
	const fileSize = 1048576000
	const heads, spt = 16, 63

	totalSectors := uint32(fileSize / sectorSize)
	cylinders := totalSectors / (heads * spt)

	if totalSectors != 2048000 {
		t.Fatalf("totalSectors = %d, want 2048000", totalSectors)
	}
	if cylinders != 2031 {
		t.Fatalf("cylinders = %d, want 2031", cylinders)
	}

	id := buildHDDIdentify(cylinders, heads, spt, totalSectors)

	if id[0] != 0x0040 {
		t.Errorf("id[0] = %#04x, want 0x0040", id[0])
	}
	if id[1] != uint16(cylinders) {
		t.Errorf("id[1] = %d, want %d", id[1], cylinders)
	}
	if got := uint32(id[60]) | uint32(id[61])<<16; got != totalSectors {
		t.Errorf("id[60..61] = %d, want %d", got, totalSectors)
	}
	if got := uint32(id[57]) | uint32(id[58])<<16; got != totalSectors {
		t.Errorf("id[57..58] = %d, want %d", got, totalSectors)
	}
}

func TestHDDGeometryInvariant(t *testing.T) {
	sizes := []int64{512, 512 * 1000, 1048576000, 1 << 34}
	const heads, spt = 16, 63

	for _, size := range sizes {
		totalSectors := uint32(size / sectorSize)
		cylinders := totalSectors / (heads * spt)
		if cylinders > 65535 {
			cylinders = 65535
		}
		if totalSectors != uint32(size/sectorSize) {
			t.Errorf("size %d: total_sectors invariant violated", size)
		}
		if want := uint32(size / (heads * spt * sectorSize)); want <= 65535 && cylinders != want {
			t.Errorf("size %d: cylinders = %d, want %d", size, cylinders, want)
		}
		if cylinders > 65535 {
			t.Errorf("size %d: cylinders %d exceeds 65535 cap", size, cylinders)
		}
	}
}

func TestPatchModelName(t *testing.T) {
	id := buildHDDIdentify(100, 16, 63, 100*16*63)
	patchModelName(&id, "/images/disk.img")

	var name []byte
	for i := 27; i <= 46; i++ {
		name = append(name, byte(id[i]>>8), byte(id[i]))
	}

	got := string(name[:len("disk.img")])
	if got != "disk.img" {
		t.Errorf("patched model name = %q, want %q", got, "disk.img")
	}
}

func TestBuildCDIdentify(t *testing.T) {
	id := buildCDIdentify()
	if id[0] != 0x8580 {
		t.Errorf("id[0] = %#04x, want 0x8580", id[0])
	}
}

package ide

import (
	"bytes"
	"testing"
)

// buildCDImage constructs a fake CD image of n sectors at the given raw
// sectorSize, each sector's 2048-byte user-data payload filled with a
// distinct byte value so a test can tell sectors apart after stripping.
func buildCDImage(sectorSize int, mode2 bool, n int) []byte {
	pre := 0
	if sectorSize != cookedCDSectorSize {
		pre = 16
		if mode2 {
			pre = 24
		}
	}
	buf := make([]byte, n*sectorSize)
	for i := 0; i < n; i++ {
		payload := buf[i*sectorSize+pre : i*sectorSize+pre+cookedCDSectorSize]
		for j := range payload {
			payload[j] = byte(i + 1)
		}
	}
	return buf
}

func TestReadCDSectors_StripsSectorFraming(t *testing.T) {
	tests := []struct {
		name       string
		sectorSize int
		mode2      bool
	}{
		{"cooked 2048", cookedCDSectorSize, false},
		{"raw 2352 non-mode2", rawCDSectorSize, false},
		{"mode2 2336", 2336, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const n = 3
			img := newMemImage("test.iso", buildCDImage(tt.sectorSize, tt.mode2, n))

			var d Drive
			d.Image = img
			d.Tracks[0] = Track{SectorSize: uint16(tt.sectorSize), Mode2: tt.mode2, Length: n}

			var c Channel
			c.readCDSectors(&d, 0, n)

			for i := 0; i < n; i++ {
				sector := c.buf[i*cookedCDSectorSize : (i+1)*cookedCDSectorSize]
				if !bytes.Equal(sector, bytes.Repeat([]byte{byte(i + 1)}, cookedCDSectorSize)) {
					t.Errorf("sector %d not stripped correctly", i)
				}
			}
		})
	}
}

// TestProcessCDRead_Scenario5 mirrors the literal READ(10) scenario (§8):
// 1 sector at LBA 16, 2352-byte sectors, expects the read to land at file
// offset 16*2352+16 and the channel to settle into WAIT_PKT_RD.
func TestProcessCDRead_Scenario5(t *testing.T) {
	const sectorSz = rawCDSectorSize
	img := newMemImage("test.iso", buildCDImage(sectorSz, false, 17))

	win := &fakeWindow{}
	ch := &Channel{Base: 0x100, Window: win}
	ch.Drives[0] = Drive{Image: img, CD: true}
	ch.Drives[0].Tracks[0] = Track{SectorSize: sectorSz, Length: 17}

	ch.regs = RegisterView{PktLBA: 16, PktCnt: 1, PktSizeLimit: 65535}
	ch.state = stateInitRW

	if err := ch.processCDRead(); err != nil {
		t.Fatalf("processCDRead: %v", err)
	}

	// buildCDImage fills sector index i's user-data payload with byte
	// value i+1; LBA 16 must land on sector index 16's payload (value
	// 17), proving the read located file offset 16*2352+16 exactly.
	if got := ch.buf[0]; got != 17 {
		t.Errorf("read landed on the wrong sector: payload byte = %d, want 17", got)
	}
	if ch.regs.PktCnt != 0 {
		t.Errorf("PktCnt = %d, want 0", ch.regs.PktCnt)
	}
	if ch.state != stateWaitPktRd {
		t.Errorf("state = %d, want stateWaitPktRd", ch.state)
	}

	payload := win.sentData[len(win.sentData)-1]
	if len(payload) != cookedCDSectorSize/4 {
		t.Errorf("sent %d words, want %d", len(payload), cookedCDSectorSize/4)
	}
}

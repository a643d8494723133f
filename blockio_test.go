package ide

import (
	"bytes"
	"testing"
)

func newHDDChannel(t *testing.T, img Image) (*Channel, *fakeWindow) {
	t.Helper()
	win := &fakeWindow{}
	ch := &Channel{Base: 0x100, Ver: Version3, Window: win}
	ch.Drives[0] = Drive{Image: img, Present: true}
	return ch, win
}

// TestHDDReadWriteRoundTrip covers the round-trip property from §8: write
// N sectors of a pattern at LBA L, then read them back and expect the
// same pattern.
func TestHDDReadWriteRoundTrip(t *testing.T) {
	const lba, nsec = 3, 2
	img := newMemImage("disk.img", make([]byte, 64*sectorSize))
	ch, win := newHDDChannel(t, img)

	pattern := bytes.Repeat([]byte{0xA5}, nsec*sectorSize)

	ch.regs = RegisterView{Cmd: CmdWrite, SectorCount: nsec, LBA: true}
	advanceLBA(&ch.regs, lba)
	if _, err := ch.handleHDD(&ch.Drives[0]); err != nil {
		t.Fatalf("prepWrite: %v", err)
	}

	win.recvData = bytesToWords(pattern)
	if err := ch.processWrite(); err != nil {
		t.Fatalf("processWrite: %v", err)
	}

	ch.regs = RegisterView{Cmd: CmdRead, SectorCount: nsec}
	advanceLBA(&ch.regs, lba)
	ch.state = stateInitRW
	ch.short = false
	if err := ch.processRead(); err != nil {
		t.Fatalf("processRead: %v", err)
	}

	got := img.data[lba*sectorSize : (lba+nsec)*sectorSize]
	if !bytes.Equal(got, pattern) {
		t.Errorf("round trip mismatch: got %x, want %x", got, pattern)
	}

	lastSent := win.sentData[len(win.sentData)-1]
	var gotBytes [nsec * sectorSize]byte
	wordsToBytes(lastSent, gotBytes[:])
	if !bytes.Equal(gotBytes[:], pattern) {
		t.Errorf("SendData payload mismatch: got %x, want %x", gotBytes, pattern)
	}
}

func TestProcessRead_ZeroFillsOnFailure(t *testing.T) {
	img := &errImage{memImage: newMemImage("disk.img", nil), err: errTestIO}
	ch, win := newHDDChannel(t, img)
	ch.Drives[0].Image = img

	ch.regs = RegisterView{Cmd: CmdRead, SectorCount: 1}
	ch.state = stateInitRW

	if err := ch.processRead(); err != nil {
		t.Fatalf("processRead: %v", err)
	}
	if !ch.short {
		t.Errorf("short = false, want true after a failing ReadAt")
	}

	payload := win.sentData[len(win.sentData)-1]
	for _, w := range payload {
		if w != 0 {
			t.Fatalf("zero-fill failed, found non-zero word %#x", w)
		}
	}
	if ch.regs.Status&StatusERR != 0 {
		t.Errorf("status %#x surfaces ERR on a read failure; §7 requires silent zero-fill", ch.regs.Status)
	}
}

func TestClampBurst(t *testing.T) {
	cases := map[uint8]uint32{0: maxBurst, 1: 1, maxBurst: maxBurst, maxBurst + 1: maxBurst, 255: maxBurst}
	for in, want := range cases {
		if got := clampBurst(in); got != want {
			t.Errorf("clampBurst(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAdvanceLBAAndLBA28RoundTrip(t *testing.T) {
	var r RegisterView
	for _, lba := range []uint32{0, 1, 0xFFFFFF, 0x123456} {
		advanceLBA(&r, lba)
		if got := lba28(&r); got != lba {
			t.Errorf("lba28(advanceLBA(%#x)) = %#x", lba, got)
		}
	}
}

var errTestIO = &testIOError{}

type testIOError struct{}

func (*testIOError) Error() string { return "test I/O failure" }

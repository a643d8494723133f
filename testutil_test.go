package ide

import "io"

// memImage is an in-memory Image backed by a growable byte slice, the
// basis for every other fake Image in this package's tests.
type memImage struct {
	data []byte
	name string
	pos  int64
}

func newMemImage(name string, data []byte) *memImage {
	return &memImage{data: data, name: name}
}

func (m *memImage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (m *memImage) WriteAt(p []byte, off int64) (int, error) {
	need := off + int64(len(p))
	if need > int64(len(m.data)) {
		grown := make([]byte, need)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:], p)
	return len(p), nil
}

func (m *memImage) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.data)) + offset
	}
	return m.pos, nil
}

func (m *memImage) Size() int64  { return int64(len(m.data)) }
func (m *memImage) Name() string { return m.name }
func (m *memImage) Close() error { return nil }

// errImage wraps a memImage but fails every read and write, exercising
// the silent zero-fill path (§7).
type errImage struct {
	*memImage
	err error
}

func (e *errImage) ReadAt(p []byte, off int64) (int, error)  { return 0, e.err }
func (e *errImage) WriteAt(p []byte, off int64) (int, error) { return 0, e.err }

// configWrite records one WriteConfig call observed by fakeWindow.
type configWrite struct {
	reg   ConfigReg
	value uint32
	ver   Version
}

// fakeWindow is a RegisterWindow test double: it records every
// transaction and lets a test preload the words RecvRegs/RecvData hand
// back, following the teacher's pattern of small single-purpose fakes
// (ata_test.go's errSeeker/nReader/errWriter family).
type fakeWindow struct {
	recvRegs [3]uint32
	recvData []uint32

	sentRegs      [][3]uint32
	sentData      [][]uint32
	writtenConfig []configWrite
	resetBufCalls int

	err error
}

func (w *fakeWindow) SendRegs(base uint32, words [3]uint32) error {
	if w.err != nil {
		return w.err
	}
	w.sentRegs = append(w.sentRegs, words)
	return nil
}

func (w *fakeWindow) RecvRegs(base uint32, words *[3]uint32) error {
	if w.err != nil {
		return w.err
	}
	*words = w.recvRegs
	return nil
}

func (w *fakeWindow) SendData(base uint32, words []uint32) error {
	if w.err != nil {
		return w.err
	}
	w.sentData = append(w.sentData, append([]uint32(nil), words...))
	return nil
}

func (w *fakeWindow) RecvData(base uint32, words []uint32) error {
	if w.err != nil {
		return w.err
	}
	copy(words, w.recvData)
	return nil
}

func (w *fakeWindow) WriteConfig(base uint32, reg ConfigReg, value uint32, ver Version) error {
	if w.err != nil {
		return w.err
	}
	w.writtenConfig = append(w.writtenConfig, configWrite{reg, value, ver})
	return nil
}

func (w *fakeWindow) ResetBuf(base uint32) error {
	if w.err != nil {
		return w.err
	}
	w.resetBufCalls++
	return nil
}

// lastSentRegs returns the most recent SendRegs payload, or a zero value
// if none was sent.
func (w *fakeWindow) lastSentRegs() [3]uint32 {
	if len(w.sentRegs) == 0 {
		return [3]uint32{}
	}
	return w.sentRegs[len(w.sentRegs)-1]
}

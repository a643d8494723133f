package ide

import "io"

// Image is the host-side disk/CD image file collaborator (§6). It is
// supplied by the caller; this package never opens files itself.
type Image interface {
	io.ReaderAt
	io.WriterAt
	// Seek behaves like io.Seeker; Size and Name report the file's
	// current length and display name (used for the identify-block
	// model string).
	Seek(offset int64, whence int) (int64, error)
	Size() int64
	Name() string
	Close() error
}

// ConfigReg names a register-window configuration slot written by Mount
// (§6): 0 identify block, 1 cylinders, 2 heads, 3 sectors-per-track,
// 4 heads*spt, 5 total sectors, 6 mount/capability bits.
type ConfigReg uint8

// Configuration register indices written during Mount.
const (
	ConfigRegIdentify  ConfigReg = 0
	ConfigRegCylinders ConfigReg = 1
	ConfigRegHeads     ConfigReg = 2
	ConfigRegSPT       ConfigReg = 3
	ConfigRegHeadsSPT  ConfigReg = 4
	ConfigRegTotalSect ConfigReg = 5
	ConfigRegMount     ConfigReg = 6
)

// RegisterWindow is the hardware bus transport collaborator (§6): the
// FPGA-side DMA-style register window that carries task-file register
// snapshots and bulk data between this core and the front-end. It is
// supplied by the caller and never constructed by this package.
type RegisterWindow interface {
	// SendRegs and RecvRegs exchange the 3-word register snapshot at
	// the channel's base address.
	SendRegs(base uint32, words [3]uint32) error
	RecvRegs(base uint32, words *[3]uint32) error

	// SendData and RecvData move the variable-length bulk data window
	// at base+255, in 32-bit words.
	SendData(base uint32, words []uint32) error
	RecvData(base uint32, words []uint32) error

	// WriteConfig programs a geometry/identify/capability register
	// during Mount. ver selects legacy addressing (reg index << 2) or
	// the packed v3 layout.
	WriteConfig(base uint32, reg ConfigReg, value uint32, ver Version) error

	// ResetBuf pulses the buffer-refill line after a 12-byte packet is
	// received.
	ResetBuf(base uint32) error
}

package ide

import "fmt"

// RequestKind names the kind of register-window event a front-end signals
// on a channel (§5). The numeric values mirror the request-line encoding
// carried over the bus.
type RequestKind uint8

// Request kinds dispatched by OnRequest.
const (
	RequestNop     RequestKind = 0
	RequestCommand RequestKind = 4
	RequestData    RequestKind = 5
	RequestReset   RequestKind = 6
)

// Request is one event delivered to a Channel by its front-end.
type Request struct {
	Kind RequestKind
}

// state is a Channel's position in the per-channel state machine (§5).
type state uint8

const (
	stateIdle state = iota
	stateReset
	stateInitRW
	stateWaitRd
	stateWaitWr
	stateWaitEnd
	stateWaitPktCmd
	stateWaitPktRd
	// stateWaitPktEnd is never entered by this core; the source declares
	// it alongside the other packet states but has no transition into
	// it. Kept for parity with the source's state enum (§5, §9).
	stateWaitPktEnd
)

// Channel is one of the two independently-operated ATA channels (§5):
// two Drive slots, a task-file register snapshot, and the scratch buffer
// used for every data-phase transfer. Channels share no state; a caller
// running two channels concurrently needs no extra locking.
type Channel struct {
	// Label identifies this channel in metrics; defaults to Base if unset.
	Label string

	Base   uint32
	Ver    Version
	Window RegisterWindow
	Drives [2]Drive

	state   state
	regs    RegisterView
	short   bool
	prepCnt uint32
	cdPos   int64
	buf     [maxBurst * sectorSize]byte
}

func (c *Channel) label() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("0x%04X", c.Base)
}

// getRegs pulls the current task-file register snapshot from the
// hardware (get_regs), discarding any stale Error/Status.
func (c *Channel) getRegs() error {
	var words [3]uint32
	if err := c.Window.RecvRegs(c.Base, &words); err != nil {
		return err
	}
	c.regs.Unpack(words)
	return nil
}

// setRegs publishes the current register snapshot (set_regs), using the
// currently-selected drive's CD flag to pick the word layout.
func (c *Channel) setRegs() error {
	cd := c.Drives[c.regs.Drv&1].CD
	return c.Window.SendRegs(c.Base, c.regs.Pack(cd))
}

// OnRequest dispatches one front-end event (x86_ide_io).
func (c *Channel) OnRequest(req Request) error {
	switch req.Kind {
	case RequestNop:
		return c.onNop()
	case RequestCommand:
		return c.onCommand()
	case RequestData:
		return c.onData()
	case RequestReset:
		return c.onReset()
	default:
		return ErrInvalidRequest
	}
}

// onCommand reads the freshly-written task file, dispatches the command
// to the selected drive's handler, and publishes a generic ABRT response
// if the handler reports failure (§4.2, §7).
func (c *Channel) onCommand() error {
	if err := c.getRegs(); err != nil {
		return err
	}

	d := &c.Drives[c.regs.Drv&1]
	commandsTotal.WithLabelValues(c.label(), fmt.Sprintf("0x%02X", uint8(c.regs.Cmd))).Inc()

	var abort bool
	var err error
	if d.CD {
		abort, err = c.handleCD(d)
	} else {
		abort, err = c.handleHDD(d)
	}
	if err != nil {
		return err
	}
	if !abort {
		return nil
	}

	errorsTotal.WithLabelValues(c.label(), "command").Inc()
	c.state = stateIdle
	c.regs.Status = StatusRDY | StatusERR | StatusIRQ
	c.regs.Error = ErrABRT
	return c.setRegs()
}

// onData services one data-phase poll, routed by the channel's current
// state (§5). A poll in a state that expects no data publishes a generic
// ABRT and returns the channel to IDLE.
func (c *Channel) onData() error {
	switch c.state {
	case stateInitRW, stateWaitRd:
		return c.processRead()

	case stateWaitWr:
		if err := c.processWrite(); err != nil {
			return err
		}
		if c.regs.SectorCount == 0 {
			c.state = stateIdle
			c.regs.Status = StatusRDY | StatusIRQ
			return c.setRegs()
		}
		return c.prepWrite()

	case stateWaitEnd:
		c.state = stateIdle
		c.regs.Status = StatusRDY | StatusIRQ
		return c.setRegs()

	case stateWaitPktCmd:
		return c.processPktCmd()

	case stateWaitPktRd:
		if c.regs.PktCnt == 0 {
			c.state = stateIdle
			c.regs.SectorCount = 3
			c.regs.Status = StatusRDY | StatusIRQ
			return c.setRegs()
		}
		return c.processCDRead()

	default:
		errorsTotal.WithLabelValues(c.label(), "data").Inc()
		c.state = stateIdle
		c.regs.Status = StatusRDY | StatusERR | StatusIRQ
		c.regs.Error = ErrABRT
		return c.setRegs()
	}
}

// onNop services an idle poll. Its only job is clearing BSY once a reset
// has settled: a channel sitting in stateReset answers the next poll by
// going IDLE and raising RDY, mirroring how a real drive drops BSY once
// ready rather than on the reset pulse itself (§4.2, §9).
func (c *Channel) onNop() error {
	if c.state != stateReset {
		return nil
	}
	c.state = stateIdle
	c.regs.Status = StatusRDY
	return c.setRegs()
}

// onReset answers a channel reset with the device-signature convention
// (§4.2): no device attached reports 0xFFFF, a CD-ROM reports the ATAPI
// signature 0xEB14, an HDD reports 0x0000.
func (c *Channel) onReset() error {
	d := &c.Drives[0]

	switch {
	case !d.Present && !d.Placeholder:
		c.regs.Cylinder = 0xFFFF
	case d.CD:
		c.regs.Cylinder = 0xEB14
	default:
		c.regs.Cylinder = 0x0000
	}
	c.regs.Sector = 1
	c.regs.SectorCount = 1
	c.regs.Status = StatusBSY

	c.state = stateReset
	return c.setRegs()
}

// handleHDD executes one ATA command against an HDD drive (handle_ide).
// It reports (abort=true) for CmdResetSoft, for a read or write issued
// without the LBA bit (CHS addressing is not supported), and for any
// command this core does not implement, matching the source's blanket
// ABRT for HDD reset.
func (c *Channel) handleHDD(d *Drive) (bool, error) {
	switch c.regs.Cmd {
	case CmdIdentify:
		return false, c.sendIdentify(d)

	case CmdReadRetry, CmdRead, CmdReadMult:
		if !c.regs.LBA {
			return true, nil
		}
		c.state = stateInitRW
		c.short = false
		return false, c.processRead()

	case CmdWriteRetry, CmdWrite, CmdWriteMult:
		if !c.regs.LBA {
			return true, nil
		}
		c.state = stateInitRW
		c.short = false
		return false, c.prepWrite()

	case CmdSetMult:
		c.state = stateIdle
		c.regs.Status = StatusRDY | StatusIRQ
		return false, c.setRegs()

	default:
		return true, nil
	}
}

// handleCD executes one ATA command against a CD-ROM drive (handle_cd).
// CmdIdentify (the HDD identify opcode) always aborts on a CD-ROM device
// — callers probe drive type with CmdIdentifyPacket instead. CmdResetSoft
// succeeds here, unlike on an HDD, and republishes the ATAPI signature
// directly rather than going through the generic ABRT path (§4.6, §9).
func (c *Channel) handleCD(d *Drive) (bool, error) {
	switch c.regs.Cmd {
	case CmdIdentifyPacket:
		return false, c.sendIdentify(d)

	case CmdIdentify:
		return true, nil

	case CmdPacket:
		limit := c.regs.Cylinder
		if limit == 0 {
			limit = maxBurst * sectorSize
		}
		c.regs.PktSizeLimit = limit
		c.regs.PktIOSize = 6
		c.regs.SectorCount = 1
		c.state = stateWaitPktCmd
		c.regs.Status = StatusRDY | StatusDRQ
		return false, c.setRegs()

	case CmdResetSoft:
		c.state = stateReset
		c.regs.Cylinder = 0xEB14
		c.regs.Sector = 1
		c.regs.SectorCount = 1
		c.regs.Status = StatusRDY
		return false, c.setRegs()

	default:
		return true, nil
	}
}

// sendIdentify ships a drive's 256-word identify block and returns the
// channel to IDLE (§4.3).
func (c *Channel) sendIdentify(d *Drive) error {
	words := packWords16(d.Identify[:])
	if err := c.Window.SendData(c.Base, words); err != nil {
		return err
	}

	c.state = stateIdle
	c.regs.Status = StatusRDY | StatusDRQ | StatusIRQ
	return c.setRegs()
}

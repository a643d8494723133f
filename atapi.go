package ide

import (
	"encoding/binary"
	"fmt"

	"github.com/coreos/pkg/capnslog"
)

var plog = capnslog.NewPackageLogger("github.com/mister-x86/ide", "ide")

// processPktCmd consumes the 12-byte ATAPI command packet queued by
// CmdPacket and dispatches it to the matching handler (§4.5).
func (c *Channel) processPktCmd() error {
	words := make([]uint32, 3)
	if err := c.Window.RecvData(c.Base, words); err != nil {
		return err
	}
	if err := c.Window.ResetBuf(c.Base); err != nil {
		return err
	}

	var cmdbuf [12]byte
	wordsToBytes(words, cmdbuf[:])

	d := &c.Drives[c.regs.Drv]
	c.regs.PktCnt = 0
	packetCommandsTotal.WithLabelValues(c.label(), fmt.Sprintf("0x%02X", cmdbuf[0])).Inc()

	var fail bool
	var err error

	switch PacketCommand(cmdbuf[0]) {
	case PktRead10:
		err = c.pktRead10(d, cmdbuf[:])
	case PktReadCapacity:
		if d.LoadState == 0 {
			err = c.pktSend(readCapacity(d))
		} else {
			err = c.cdErrNoMedium()
		}
	case PktModeSense10:
		err = c.pktSend(modeSense(cmdbuf[2]))
	case PktReadSubchannel:
		err = c.pktSend(readSubchannel(d, cmdbuf[:]))
	case PktReadTOC:
		err = c.pktSend(readTOC(d, cmdbuf[:]))
	case PktInquiry:
		err = c.pktSend(cdInquiry(cmdbuf[4]))
	case PktRequestSense:
		err = c.pktSend(getSense(d))
	case PktTestUnitReady:
		if d.LoadState == 0 {
			c.state = stateIdle
			c.regs.SectorCount = 3
			c.regs.Status = StatusRDY | StatusIRQ
			c.regs.Error = 0
			err = c.setRegs()
		} else {
			err = c.cdErrNoMedium()
		}
	default:
		fail = true
	}
	if err != nil {
		return err
	}

	if fail {
		plog.Errorf("ide: unsupported packet command 0x%02X", cmdbuf[0])
		errorsTotal.WithLabelValues(c.label(), "packet").Inc()
		c.state = stateIdle
		c.regs.SectorCount = 3
		c.regs.Status = StatusRDY | StatusERR | StatusIRQ
		c.regs.Error = ErrABRT
		return c.setRegs()
	}
	return nil
}

// pktRead10 handles ATAPI READ(10) (0x28): an all-zero transfer count
// succeeds without a data phase; otherwise the burst enters INIT_RW and
// runs through processCDRead, unless no medium is loaded.
func (c *Channel) pktRead10(d *Drive, cmdbuf []byte) error {
	cnt := uint32(cmdbuf[7])<<8 | uint32(cmdbuf[8])
	lba := uint32(cmdbuf[2])<<24 | uint32(cmdbuf[3])<<16 | uint32(cmdbuf[4])<<8 | uint32(cmdbuf[5])

	c.regs.PktCnt = cnt
	c.regs.PktLBA = lba

	if cnt == 0 {
		c.state = stateIdle
		c.regs.SectorCount = 3
		c.regs.Status = StatusRDY | StatusIRQ
		c.regs.Error = 0
		return c.setRegs()
	}

	c.state = stateInitRW
	if d.LoadState != 0 {
		return c.cdErrNoMedium()
	}
	return c.processCDRead()
}

// readCapacity handles ATAPI READ CAPACITY (0x25). This preserves the
// one-LBA overshoot of the source (§9 item 1): it reports file_size/2048
// rather than file_size/2048 - 1.
func readCapacity(d *Drive) []byte {
	var resp [8]byte
	binary.BigEndian.PutUint32(resp[0:4], uint32(d.Image.Size()/cookedCDSectorSize))
	binary.BigEndian.PutUint32(resp[4:8], cookedCDSectorSize)
	return resp[:]
}

// pktSend publishes an ATAPI packet response (§4.5): ship the payload,
// then advertise its size and transition to WAIT_PKT_RD.
func (c *Channel) pktSend(data []byte) error {
	size := uint16(len(data))

	padded := data
	if r := len(data) % 4; r != 0 {
		padded = append(append([]byte(nil), data...), make([]byte, 4-r)...)
	}
	if err := c.Window.SendData(c.Base, bytesToWords(padded)); err != nil {
		return err
	}

	c.regs.PktIOSize = (size + 1) / 2
	c.regs.Cylinder = size
	c.regs.SectorCount = 2
	c.regs.Status = StatusRDY | StatusDRQ | StatusIRQ
	if err := c.setRegs(); err != nil {
		return err
	}
	c.state = stateWaitPktRd
	return nil
}

// cdErrNoMedium emits the fixed NO_MEDIUM response (§4.6).
func (c *Channel) cdErrNoMedium() error {
	c.state = stateIdle
	c.regs.SectorCount = 3
	c.regs.Status = StatusRDY | StatusERR | StatusIRQ
	c.regs.Error = ATAError(2<<4) | ErrABRT
	return c.setRegs()
}

// modeSense builds the MODE SENSE(10) response for page (§4.5): an
// 8-byte parameter header followed by any of pages 0x01, 0x0E, 0x2A —
// page 0x3F concatenates all three — or, for an unrecognized page, a
// stub page (page code, length 6) carrying six zero bytes.
func modeSense(page byte) []byte {
	buf := make([]byte, 8)
	valid := false

	if page == 0x01 || page == 0x3F {
		valid = true
		start := len(buf)
		buf = append(buf, 0x01, 0x00)
		buf = append(buf, 0x00, 3, 0x00, 0x00, 0x00, 0x00)
		buf[start+1] = byte(len(buf) - start - 2)
	}

	if page == 0x0E || page == 0x3F {
		valid = true
		start := len(buf)
		buf = append(buf, 0x0E, 0x00)
		buf = append(buf,
			0x04, 0x00, 0x00, 0x00, 0x00, 75,
			0x01, 0xFF, 0x02, 0xFF, 0x00, 0x00, 0x00, 0x00,
		)
		buf[start+1] = byte(len(buf) - start - 2)
	}

	if page == 0x2A || page == 0x3F {
		valid = true
		start := len(buf)
		buf = append(buf, 0x2A, 0x00)
		buf = append(buf, 0x07, 0x00, 0x71, 0xFF, 0x2F, 0x03)
		for _, v := range []uint16{176 * 8, 256, 6 * 256, 176 * 8} {
			buf = append(buf, byte(v>>8), byte(v))
		}
		buf[start+1] = byte(len(buf) - start - 2)
	}

	if !valid {
		plog.Errorf("ide: MODE SENSE on page 0x%02X not supported", page)
		buf = append(buf, page, 0x06, 0, 0, 0, 0, 0, 0)
	}

	n := uint16(len(buf) - 2)
	buf[0] = byte(n >> 8)
	buf[1] = byte(n)
	return buf
}

// tocEntry appends one 8-byte READ TOC entry: reserved, ADR/CONTROL,
// track number, reserved, then the start address in MSF or LBA form.
func tocEntry(buf []byte, adrControl, track byte, m MSF, timeFlag bool) []byte {
	buf = append(buf, 0x00, adrControl, track, 0x00)
	if timeFlag {
		return append(buf, 0x00, m.Min, m.Sec, m.Fr)
	}
	sec := uint32(m.Min)*60*framesPerSecond + uint32(m.Sec)*framesPerSecond + uint32(m.Fr) - frameLeadInPadding
	return append(buf, byte(sec>>24), byte(sec>>16), byte(sec>>8), byte(sec))
}

// readTOC builds the ATAPI READ TOC response (§4.5), truncating strictly
// at AllocationLength because some DOS CD-ROM drivers reject a response
// that claims more data than their buffer can hold (preserved verbatim
// from the original's comment on OAKCDROM.SYS compatibility).
func readTOC(d *Drive, cmdbuf []byte) []byte {
	allocLen := uint32(cmdbuf[7])<<8 | uint32(cmdbuf[8])
	format := cmdbuf[2] & 0xF
	fromTrack := cmdbuf[6]
	timeFlag := cmdbuf[1]&2 != 0

	first, last, leadOut, ok := cdTrackRange(d)
	if !ok {
		plog.Errorf("ide: READ TOC failed to get track info")
		return make([]byte, 8)
	}

	buf := make([]byte, 2, 16)

	switch format {
	case 1:
		buf = append(buf, 1, 1)
		start, attr, ok := cdTrackInfo(d, first)
		if !ok {
			attr, start = 0x41, MSF{}
		}
		buf = tocEntry(buf, (attr>>4)|0x10, byte(first), start, timeFlag)

	case 0:
		buf = append(buf, byte(first), byte(last))
		for track := first; track <= last; track++ {
			start, attr, ok := cdTrackInfo(d, track)
			if !ok {
				attr, start = 0x41, MSF{}
			}
			if track < int(fromTrack) {
				continue
			}
			if uint32(len(buf))+8 > allocLen {
				return finishTOC(buf)
			}
			buf = tocEntry(buf, (attr>>4)|0x10, byte(track), start, timeFlag)
		}
		if uint32(len(buf))+8 <= allocLen {
			buf = tocEntry(buf, 0x14, 0xAA, leadOut, timeFlag)
		}

	default:
		plog.Errorf("ide: READ TOC format %d not supported", format)
		return make([]byte, 8)
	}

	return finishTOC(buf)
}

func finishTOC(buf []byte) []byte {
	n := uint16(len(buf) - 2)
	buf[0] = byte(n >> 8)
	buf[1] = byte(n)
	return buf
}

// readSubchannel builds the ATAPI READ SUBCHANNEL response (§4.5). The
// AUDIO STATUS byte is unconditionally 0x13 (no audio operation); this
// core never models a playing/paused audio state (preserved as-observed,
// §9 item 2).
func readSubchannel(d *Drive, cmdbuf []byte) []byte {
	paramList := cmdbuf[3]
	subQ := cmdbuf[2]&0x40 != 0
	timeFlag := cmdbuf[1]&2 != 0

	if paramList == 0 || paramList > 3 || paramList == 2 || paramList == 3 {
		return make([]byte, 8)
	}

	const astat = 0x13
	attr := d.Tracks[0].Attr
	const track, index = 1, 1
	rel := MSF{Min: 0, Sec: 2, Fr: 0}
	abs := MSF{Min: 0, Sec: 2, Fr: 0}

	buf := []byte{0x00, astat, 0x00, 0x00}
	if subQ {
		buf = append(buf, 0x01, (attr>>4)|0x10, track, index)
		if timeFlag {
			buf = append(buf, 0x00, abs.Min, abs.Sec, abs.Fr, 0x00, rel.Min, rel.Sec, rel.Fr)
		} else {
			absSec := uint32(abs.Min)*60*framesPerSecond + uint32(abs.Sec)*framesPerSecond + uint32(abs.Fr) - frameLeadInPadding
			relSec := uint32(rel.Min)*60*framesPerSecond + uint32(rel.Sec)*framesPerSecond + uint32(rel.Fr) - frameLeadInPadding
			buf = append(buf, byte(absSec>>24), byte(absSec>>16), byte(absSec>>8), byte(absSec))
			buf = append(buf, byte(relSec>>24), byte(relSec>>16), byte(relSec>>8), byte(relSec))
		}
	}

	n := uint16(len(buf) - 4)
	buf[2] = byte(n >> 8)
	buf[3] = byte(n)
	return buf
}

// cdInquiry builds the ATAPI INQUIRY response (§4.5): a fixed-identity
// CD-ROM device descriptor, space-padded to maxlen.
func cdInquiry(maxlen byte) []byte {
	size := 47
	if int(maxlen) > size {
		size = int(maxlen)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = ' '
	}

	buf[0] = (0 << 5) | 5 // peripheral qualifier 0, device type 5 (CD-ROM)
	buf[1] = 0x80         // RMB: removable media
	buf[2] = 0x00         // ANSI version
	buf[3] = 0x21         // response data format
	buf[4] = maxlen - 5   // additional length

	copy(buf[8:16], "MiSTer  ")
	copy(buf[16:32], "CDROM           ")

	return buf[:maxlen]
}

// getSense builds the REQUEST SENSE response and advances the
// medium-change sense ramp (§4.5): a drive with no medium loaded (3)
// reports MEDIUM NOT PRESENT on every call and stays at 3; once a medium
// is mounted the ramp ticks 2→1→0 across successive calls until it
// settles at 0 (NO SENSE / ready).
func getSense(d *Drive) []byte {
	switch d.LoadState {
	case 3:
		return senseBuffer(2, 0x3A, 0x00)
	case 2:
		d.LoadState--
		return senseBuffer(2, 0x04, 0x01)
	case 1:
		d.LoadState--
		return senseBuffer(2, 0x28, 0x00)
	default:
		return senseBuffer(0, 0, 0)
	}
}

func senseBuffer(sk, asc, ascq uint8) []byte {
	buf := make([]byte, 18)
	buf[0] = 0x70
	buf[2] = sk & 0xF
	buf[12] = asc
	buf[13] = ascq
	return buf
}

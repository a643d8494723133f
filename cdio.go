package ide

// readCDSectors fills c.buf with cnt sectors of 2048-byte user data read
// from d's image starting at byte offset off, stripping the
// sync/header/subheader prologue and ECC epilogue around each sector's
// payload for any non-2048 sector format (§4.4). A read failure latches
// c.short and zero-fills every remaining sector without attempting
// further reads, matching the source's "null sticks for the rest of the
// burst" behavior.
func (c *Channel) readCDSectors(d *Drive, off int64, cnt uint32) {
	track := d.Tracks[0]

	if track.SectorSize == cookedCDSectorSize {
		span := c.buf[:cnt*cookedCDSectorSize]
		if !c.short {
			_, err := d.Image.ReadAt(span, off)
			c.short = err != nil
		}
		if c.short {
			for i := range span {
				span[i] = 0
			}
		}
		return
	}

	pre := uint32(16)
	if track.Mode2 {
		pre = 24
	}

	pos := off
	bufOff := uint32(0)
	for i := uint32(0); i < cnt; i++ {
		chunk := c.buf[bufOff : bufOff+cookedCDSectorSize]
		if !c.short {
			_, err := d.Image.ReadAt(chunk, pos+int64(pre))
			c.short = err != nil
		}
		if c.short {
			for i := range chunk {
				chunk[i] = 0
			}
		}
		pos += int64(track.SectorSize)
		bufOff += cookedCDSectorSize
	}
}

// processCDRead services one READ(10) burst (process_cd_read): clamp the
// remaining sector count to the hardware burst size and the packet's
// advertised size limit, read the clamped chunk, and hand it to
// pktSend. c.cdPos tracks the resume offset across bursts in place of
// the source's reliance on a continuous OS file cursor (the Go Image
// collaborator is offset-addressed, not cursor-based).
func (c *Channel) processCDRead() error {
	d := &c.Drives[c.regs.Drv]
	track := d.Tracks[0]

	cnt := c.regs.PktCnt
	if cnt*4 > maxBurst {
		cnt = maxBurst / 4
	}
	for cnt*cookedCDSectorSize > uint32(c.regs.PktSizeLimit) {
		if cnt <= 1 {
			break
		}
		cnt--
	}

	if c.state == stateInitRW {
		c.cdPos = int64(c.regs.PktLBA) * int64(track.SectorSize)
	}

	c.readCDSectors(d, c.cdPos, cnt)
	c.cdPos += int64(cnt) * int64(track.SectorSize)

	c.regs.PktCnt -= cnt
	return c.pktSend(c.buf[:cnt*cookedCDSectorSize])
}

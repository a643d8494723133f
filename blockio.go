package ide

// advanceLBA splits an updated 28-bit LBA back into the sector/cylinder/
// head register triple, matching the bit-by-bit shift sequence the
// source applies after every chunked transfer.
func advanceLBA(regs *RegisterView, lba uint32) {
	regs.Sector = uint8(lba)
	lba >>= 8
	regs.Cylinder = uint16(lba)
	lba >>= 16
	regs.Head = uint8(lba & 0xF)
}

func lba28(regs *RegisterView) uint32 {
	return uint32(regs.Sector) | uint32(regs.Cylinder)<<8 | uint32(regs.Head)<<24
}

// clampBurst clamps a requested sector count to [1, maxBurst], treating
// zero as "as many as fit in one burst" (§4.4).
func clampBurst(n uint8) uint32 {
	cnt := uint32(n)
	if cnt == 0 || cnt > maxBurst {
		cnt = maxBurst
	}
	return cnt
}

// processRead services one HDD read burst (process_read): seek to the
// current LBA, read up to maxBurst sectors, zero-fill on any I/O
// failure, ship the chunk to the hardware, and advance LBA/sector_count.
func (c *Channel) processRead() error {
	d := &c.Drives[c.regs.Drv]

	lba := lba28(&c.regs)
	cnt := clampBurst(c.regs.SectorCount)

	span := c.buf[:cnt*sectorSize]
	_, err := d.Image.ReadAt(span, int64(lba)*sectorSize)
	c.short = err != nil
	if c.short {
		for i := range span {
			span[i] = 0
		}
	}

	if err := c.Window.SendData(c.Base, bytesToWords(span)); err != nil {
		return err
	}

	lba += cnt
	c.regs.SectorCount -= uint8(cnt)
	advanceLBA(&c.regs, lba)

	if c.regs.SectorCount != 0 {
		c.state = stateWaitRd
	} else {
		c.state = stateWaitEnd
	}

	c.regs.IOSize = uint8(cnt)
	c.regs.Status = StatusRDY | StatusDRQ | StatusIRQ
	return c.setRegs()
}

// prepWrite publishes a DRQ for the next write burst (prep_write). The
// first burst of a write withholds IRQ so the host pushes data before
// the interrupt is expected.
func (c *Channel) prepWrite() error {
	c.prepCnt = clampBurst(c.regs.SectorCount)
	c.regs.Status = StatusRDY | StatusDRQ | StatusIRQ

	if c.state == stateInitRW {
		c.regs.Status &^= StatusIRQ
	}

	c.state = stateWaitWr
	c.regs.IOSize = uint8(c.prepCnt)
	return c.setRegs()
}

// processWrite drains one HDD write burst (process_write): receive the
// pending chunk, write it at the current LBA (best-effort — a failure is
// absorbed, not surfaced, per §7), and advance LBA/sector_count. The
// caller (Channel.onData) decides whether another prepWrite follows or
// the channel returns to IDLE.
func (c *Channel) processWrite() error {
	d := &c.Drives[c.regs.Drv]

	words := make([]uint32, c.prepCnt*128)
	if err := c.Window.RecvData(c.Base, words); err != nil {
		return err
	}
	span := c.buf[:c.prepCnt*sectorSize]
	wordsToBytes(words, span)

	lba := lba28(&c.regs)
	if !c.short {
		_, err := d.Image.WriteAt(span, int64(lba)*sectorSize)
		c.short = err != nil
	}

	lba += c.prepCnt
	c.regs.SectorCount -= uint8(c.prepCnt)
	advanceLBA(&c.regs, lba)

	return nil
}

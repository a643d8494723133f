package ide

// Mount attaches img to slot (0 or 1) of ch, building the slot's
// Drive Descriptor and identify block and programming the register
// window's config registers (§6). cd selects an ATAPI CD-ROM slot over
// an ATA HDD slot.
//
// A CD slot may be mounted with img == nil to model an empty tray: the
// drive reports present-but-no-medium, matching the hot-swap behavior
// x86_ide_set offers for virtual CD changers. An HDD slot always
// requires a backing image.
func Mount(ch *Channel, slot int, img Image, cd bool, ver Version) error {
	if slot != 0 && slot != 1 {
		return ErrInvalidRequest
	}
	d := &ch.Drives[slot]

	if img == nil {
		if !cd {
			return ErrNoImage
		}
		d.Image = nil
		d.CD = true
		d.Present = true
		d.Placeholder = true
		d.LoadState = 3
		d.Tracks = [2]Track{}
		d.Identify = buildCDIdentify()

		if err := writeIdentify(ch, d, ver); err != nil {
			return err
		}
		ch.state = stateReset
		return ch.Window.WriteConfig(ch.Base, ConfigRegMount, mountBits(d), ver)
	}

	d.Image = img
	d.CD = cd
	d.Present = true
	d.Placeholder = false

	if cd {
		if err := parseISO(d); err != nil {
			return err
		}
		d.Identify = buildCDIdentify()
		d.LoadState = 1
	} else {
		const heads = 16
		spt := uint32(63)
		if ver == Version3 {
			spt = 256
		}
		totalSectors := uint32(img.Size() / sectorSize)
		cylinders := totalSectors / (heads * spt)
		if cylinders > 65535 {
			cylinders = 65535
		}
		d.Heads = heads
		d.SPT = spt
		d.Cylinders = cylinders
		d.TotalSectors = totalSectors
		d.Identify = buildHDDIdentify(cylinders, heads, spt, totalSectors)
	}
	patchModelName(&d.Identify, img.Name())

	if err := writeIdentify(ch, d, ver); err != nil {
		return err
	}
	if !cd {
		if err := writeGeometry(ch, d, ver); err != nil {
			return err
		}
	}

	ch.state = stateReset
	return ch.Window.WriteConfig(ch.Base, ConfigRegMount, mountBits(d), ver)
}

// writeIdentify pushes a drive's 256-word identify block through the
// config-register path, one packed 32-bit word at a time.
func writeIdentify(ch *Channel, d *Drive, ver Version) error {
	for _, w := range packWords16(d.Identify[:]) {
		if err := ch.Window.WriteConfig(ch.Base, ConfigRegIdentify, w, ver); err != nil {
			return err
		}
	}
	return nil
}

// writeGeometry programs the HDD CHS config registers read by the
// front-end's BIOS/INT13 translation layer.
func writeGeometry(ch *Channel, d *Drive, ver Version) error {
	regs := [...]struct {
		reg   ConfigReg
		value uint32
	}{
		{ConfigRegCylinders, d.Cylinders},
		{ConfigRegHeads, d.Heads},
		{ConfigRegSPT, d.SPT},
		{ConfigRegHeadsSPT, d.Heads * d.SPT},
		{ConfigRegTotalSect, d.TotalSectors},
	}
	for _, r := range regs {
		if err := ch.Window.WriteConfig(ch.Base, r.reg, r.value, ver); err != nil {
			return err
		}
	}
	return nil
}

// mountBits packs a drive's presence/role/medium state into the mount
// capability register (config register 6): bit 0 present, bit 1
// placeholder (no medium), bit 2 CD-ROM, bits 3-4 the medium-change
// sense-ramp state.
func mountBits(d *Drive) uint32 {
	var v uint32
	if d.Present {
		v |= 1 << 0
	}
	if d.Placeholder {
		v |= 1 << 1
	}
	if d.CD {
		v |= 1 << 2
	}
	v |= uint32(d.LoadState&0x3) << 3
	return v
}

package ide

import (
	"bytes"

	"github.com/pkg/errors"
)

// Redbook CD timing constants (GLOSSARY).
const (
	rawCDSectorSize    = 2352
	framesPerSecond    = 75
	frameLeadInPadding = 150
)

// MSF is a Minute/Second/Frame CD timecode.
type MSF struct {
	Min, Sec, Fr uint8
}

// framesToMSF converts an absolute frame count to a Redbook MSF timecode.
func framesToMSF(frames uint32) MSF {
	fr := frames % framesPerSecond
	frames /= framesPerSecond
	sec := frames % 60
	frames /= 60
	return MSF{Min: uint8(frames), Sec: uint8(sec), Fr: uint8(fr)}
}

// msfToLBA converts a Redbook MSF timecode to an absolute frame offset,
// undoing the 150-frame lead-in pregap added by framesToMSF's callers.
func msfToLBA(m MSF) int64 {
	return int64(m.Min)*60*framesPerSecond + int64(m.Sec)*framesPerSecond + int64(m.Fr) - frameLeadInPadding
}

// canReadPVD probes a single (sectorSize, mode2) combination for a valid
// ISO-9660 or High Sierra primary volume descriptor at sector 16 (§4.7).
func canReadPVD(img Image, sectorSize int, mode2 bool) bool {
	seek := int64(16 * sectorSize)
	if sectorSize == rawCDSectorSize && !mode2 {
		seek += 16
	}
	if mode2 {
		seek += 24
	}

	pvd := make([]byte, cookedCDSectorSize)
	n, err := img.ReadAt(pvd, seek)
	if err != nil && n == 0 {
		return false
	}

	if pvd[0] == 1 && bytes.Equal(pvd[1:6], []byte("CD001")) && pvd[6] == 1 {
		return true
	}
	if pvd[8] == 1 && bytes.Equal(pvd[9:14], []byte("CDROM")) && pvd[14] == 1 {
		return true
	}
	return false
}

// checkISOFile probes, in order, cooked 2048-byte sectors, raw 2352-byte
// non-mode-2 sectors, 2336-byte mode-2 sectors, and raw 2352-byte mode-2
// sectors, returning the first sector format that yields a valid volume
// descriptor (§4.7).
func checkISOFile(img Image) (sectorSize uint16, mode2 bool, ok bool) {
	switch {
	case canReadPVD(img, cookedCDSectorSize, false):
		return cookedCDSectorSize, false, true
	case canReadPVD(img, rawCDSectorSize, false):
		return rawCDSectorSize, false, true
	case canReadPVD(img, 2336, true):
		return 2336, true, true
	case canReadPVD(img, rawCDSectorSize, true):
		return rawCDSectorSize, true, true
	}
	return 0, false, false
}

// parseISO populates d.Tracks from img, matching ParseIsoFile: track[0]
// is the data track (attr 0x40) sized in sectors of the detected format;
// track[1] is the lead-out, starting where track[0] ends. If img is nil
// or no volume descriptor is found, only track[0].Attr is set and every
// length stays zero, so later lookups (GetCDTracks-equivalent) report
// "no disc"; a missing volume descriptor also returns ErrNotISO.
func parseISO(d *Drive) error {
	d.Tracks = [2]Track{}
	d.Tracks[0].Attr = 0x40

	if d.Image == nil {
		return nil
	}

	sectorSz, mode2, ok := checkISOFile(d.Image)
	if !ok {
		return errors.WithMessage(ErrNotISO, d.Image.Name())
	}

	d.Tracks[0].SectorSize = sectorSz
	d.Tracks[0].Mode2 = mode2
	d.Tracks[0].Length = uint32(d.Image.Size() / int64(sectorSz))
	d.Tracks[1].Start = d.Tracks[0].Length

	return nil
}

// cdTrackRange mirrors GetCDTracks: this core always reports a single
// data track numbered 1, with the lead-out MSF derived from track[1].
func cdTrackRange(d *Drive) (first, last int, leadOut MSF, ok bool) {
	if d.Tracks[0].Length == 0 {
		return 0, 0, MSF{}, false
	}
	return 1, 1, framesToMSF(d.Tracks[1].Start + frameLeadInPadding), true
}

// cdTrackInfo mirrors GetCDTrackInfo, including its bound check against
// len(d.Tracks) rather than the last valid track index — preserved
// as-observed (§9 item 3, DESIGN.md).
func cdTrackInfo(d *Drive, track int) (start MSF, attr uint8, ok bool) {
	if d.Tracks[0].Length == 0 || track < 1 || track >= len(d.Tracks) {
		return MSF{}, 0, false
	}
	t := d.Tracks[track-1]
	return framesToMSF(t.Start + frameLeadInPadding), t.Attr, true
}

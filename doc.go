// Package ide implements an emulated IDE/ATAPI disk controller core.
//
// A Channel services ATA commands for an attached hard disk and ATAPI
// packet commands for an attached CD-ROM, against a host-side image file,
// through a register-window transport supplied by the caller. The core is
// single-threaded and cooperative: Channel.OnRequest is the only entry
// point, never blocks, and holds no state between calls beyond the
// Channel value itself.
package ide

const (
	// Version is the protocol layout this package speaks on the register
	// window: legacy (reg index << 2) for ver < 3, packed for ver == 3.
	Version1 Version = 1
	Version2 Version = 2
	Version3 Version = 3
)

// Version selects the register-window addressing and drive-slot layout.
// Version3 packs two drive slots per channel (master/slave); Version1 and
// Version2 address a single drive per channel.
type Version uint8

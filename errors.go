package ide

import "github.com/pkg/errors"

// Sentinel errors for programmer-facing failures. Device-facing failures
// (unsupported command, no medium, packet command unsupported, unknown
// state at DATA) are never returned as Go errors — they are reported
// purely through the published RegisterView, matching the ATA protocol's
// own error-reporting channel (§7).
var (
	// ErrInvalidRequest is returned when OnRequest is called with a
	// RequestKind this core does not recognize.
	ErrInvalidRequest = errors.New("ide: invalid request kind")

	// ErrNoImage is returned by Mount when an HDD mount is requested
	// without a backing image (an imageless CD mount is an empty tray).
	ErrNoImage = errors.New("ide: no image supplied")

	// ErrNotISO is returned by Mount when a CD image fails ISO-9660 /
	// High Sierra volume descriptor detection.
	ErrNotISO = errors.New("ide: image is not a recognizable CD image")
)

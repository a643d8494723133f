package ide

// Status is the ATA status register, published to the host on every
// register-window write.
type Status uint8

// ATA status register bits.
const (
	StatusBSY Status = 0x80 // busy
	StatusRDY Status = 0x40 // ready
	StatusDF  Status = 0x20 // device fault
	StatusSKC Status = 0x10 // seek complete
	StatusDRQ Status = 0x08 // data request
	StatusIRQ Status = 0x04 // rise IRQ
	StatusIDX Status = 0x02 // index
	StatusERR Status = 0x01 // error (ATA) / check (ATAPI)
)

// ATAError is the ATA error register, valid only when StatusERR is set.
type ATAError uint8

// ATA error register bits.
const (
	ErrICRC ATAError = 0x80 // Ultra DMA bad CRC
	ErrUNC  ATAError = 0x40 // uncorrected error
	ErrMC   ATAError = 0x20 // media change
	ErrIDNF ATAError = 0x10 // id not found
	ErrMCR  ATAError = 0x08 // media change request
	ErrABRT ATAError = 0x04 // command aborted
	ErrNTK0 ATAError = 0x02 // track 0 not found
	ErrNDAM ATAError = 0x01 // address mark not found
)

// ATACommand is an ATA or ATA-packet command opcode.
type ATACommand uint8

// Command opcodes handled by this core.
const (
	CmdIdentify       ATACommand = 0xEC
	CmdIdentifyPacket ATACommand = 0xA1
	CmdPacket         ATACommand = 0xA0
	CmdResetSoft      ATACommand = 0x08

	CmdReadRetry  ATACommand = 0x20
	CmdRead       ATACommand = 0x21
	CmdReadMult   ATACommand = 0xC4
	CmdWriteRetry ATACommand = 0x30
	CmdWrite      ATACommand = 0x31
	CmdWriteMult  ATACommand = 0xC5
	CmdSetMult    ATACommand = 0xC6
)

// PacketCommand is an ATAPI packet opcode, carried in byte 0 of the
// 12-byte command packet delivered after CmdPacket.
type PacketCommand uint8

// ATAPI packet opcodes handled by this core.
const (
	PktTestUnitReady  PacketCommand = 0x00
	PktRequestSense   PacketCommand = 0x03
	PktInquiry        PacketCommand = 0x12
	PktReadCapacity   PacketCommand = 0x25
	PktRead10         PacketCommand = 0x28
	PktReadSubchannel PacketCommand = 0x42
	PktReadTOC        PacketCommand = 0x43
	PktModeSense10    PacketCommand = 0x5A
)

// maxBurst is the maximum number of 512-byte sectors moved per hardware
// burst (32 sectors, 16 KiB).
const maxBurst = 32

// sectorSize is the fixed HDD sector size in bytes.
const sectorSize = 512

// cookedCDSectorSize is the user-data payload size of a CD sector.
const cookedCDSectorSize = 2048

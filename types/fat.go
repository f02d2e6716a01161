package types

// Fat magics. The fat header and arch table are always big-endian on disk,
// regardless of host byte order; FatMagic/FatMagic64 are the values as read
// after a big-endian decode, the CIGAM forms are what you'd see if you
// (incorrectly) read them little-endian.
const (
	FatMagic      uint32 = 0xcafebabe
	FatCigam      uint32 = 0xbebafeca
	FatMagic64    uint32 = 0xcafebabf
	FatCigam64    uint32 = 0xbfbafeca
)

// FatHeader is the 8-byte header at the start of a universal binary.
type FatHeader struct {
	Magic    uint32
	NFatArch uint32
}

const FatHeaderSize = 8

// FatArch32 is one arch-table entry when the fat magic is FatMagic.
type FatArch32 struct {
	CPU      CPU
	SubCPU   uint32
	Offset   uint32
	Size     uint32
	Align    uint32
}

const FatArch32Size = 20

// FatArch64 is one arch-table entry when the fat magic is FatMagic64.
type FatArch64 struct {
	CPU      CPU
	SubCPU   uint32
	Offset   uint64
	Size     uint64
	Align    uint32
	Reserved uint32
}

const FatArch64Size = 32

package types

// CsMagic identifies the kind of blob a code-signing structure holds.
// The super-blob and everything inside it is always big-endian on disk,
// independent of the enclosing Mach-O's own byte order.
type CsMagic uint32

const (
	CSMAGIC_REQUIREMENT           CsMagic = 0xfade0c00 // single Requirement blob
	CSMAGIC_REQUIREMENTS          CsMagic = 0xfade0c01 // Requirements vector
	CSMAGIC_CODEDIRECTORY         CsMagic = 0xfade0c02 // CodeDirectory blob
	CSMAGIC_EMBEDDED_SIGNATURE    CsMagic = 0xfade0cc0 // embedded form of signature data (the super-blob)
	CSMAGIC_EMBEDDED_ENTITLEMENTS CsMagic = 0xfade7171 // embedded entitlements (XML plist)
	CSMAGIC_DETACHED_SIGNATURE    CsMagic = 0xfade0cc1 // multi-arch collection of embedded signatures
	CSMAGIC_BLOBWRAPPER           CsMagic = 0xfade0b01 // CMS blob wrapper
)

// CsSlotType tags one entry in the super-blob's index.
type CsSlotType uint32

const (
	CSSLOT_CODEDIRECTORY CsSlotType = 0
	CSSLOT_INFOSLOT       CsSlotType = 1
	CSSLOT_REQUIREMENTS   CsSlotType = 2
	CSSLOT_RESOURCEDIR    CsSlotType = 3
	CSSLOT_APPLICATION    CsSlotType = 4
	CSSLOT_ENTITLEMENTS   CsSlotType = 5
)

// CsCodeDirectoryFlag is the CodeDirectory's policy-flag bitfield.
type CsCodeDirectoryFlag uint32

const (
	CS_VALID     CsCodeDirectoryFlag = 0x00000001 // dynamically valid
	CS_ADHOC     CsCodeDirectoryFlag = 0x00000002 // ad hoc signed
	CS_RUNTIME   CsCodeDirectoryFlag = 0x00010000 // hardened runtime policies apply
)

// SbHeader is the fixed 12-byte super-blob prefix: magic, then the total
// byte length of the super-blob, then the number of index entries.
type SbHeader struct {
	Magic  CsMagic
	Length uint32
	Count  uint32
}

const SbHeaderSize = 12

// BlobIndex is one (type, offset) pair in the super-blob's index; Offset is
// relative to the start of the super-blob itself.
type BlobIndex struct {
	Type   CsSlotType
	Offset uint32
}

const BlobIndexSize = 8

// CdHeader is the CodeDirectory's fixed leading fields; flags is all this
// analyzer inspects, so the rest of the (much larger) record is untouched.
type CdHeader struct {
	Magic   CsMagic
	Length  uint32
	Version uint32
	Flags   CsCodeDirectoryFlag
}

const CdHeaderSize = 16

// GenericBlobHeader is the (magic, length) prefix shared by simple blobs
// like the entitlements blob, whose payload is everything after it.
type GenericBlobHeader struct {
	Magic  CsMagic
	Length uint32
}

const GenericBlobHeaderSize = 8

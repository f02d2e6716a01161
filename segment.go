package macho

import (
	"encoding/binary"

	"github.com/quickmacho/machore/types"
)

// sectionAllowList maps a segment name to the section names within it whose
// contents get handed to the string extractor (spec §4.5).
var sectionAllowList = map[string]map[string]bool{
	"__TEXT":       {"__cstring": true, "__const": true, "__oslogstring": true},
	"__DATA":       {"__const": true, "__cfstring": true},
	"__DATA_CONST": {"__const": true},
}

func cstr16(b [16]byte) string {
	n := len(b)
	for i, c := range b {
		if c == 0 {
			n = i
			break
		}
	}
	return string(b[:n])
}

func readName16(c cursor, off int) [16]byte {
	var out [16]byte
	b, err := c.readBytes(off, 16)
	if err == nil {
		copy(out[:], b)
	}
	return out
}

// Segment32 field offsets (LoadCmdHeader=8 bytes, then Name[16]). Nsect
// follows Addr, Memsz, Offset, Filesz, Maxprot, Prot (six 4-byte fields).
const (
	seg32NameOff  = 8
	seg32NsectOff = 8 + 16 + 4*6
)

// Segment64 field offsets. Addr/Memsz/Offset/Filesz are 8 bytes each;
// Maxprot/Prot are 4 bytes each, then Nsect.
const (
	seg64NameOff  = 8
	seg64NsectOff = 8 + 16 + 8*4 + 4*2
)

// Section32 field offsets (Addr/Size are 4 bytes each).
const (
	sect32SizeOff   = 16 + 16 + 4
	sect32OffsetOff = sect32SizeOff + 4
)

// Section64 field offsets (Addr/Size are 8 bytes each).
const (
	sect64SizeOff   = 16 + 16 + 8
	sect64OffsetOff = sect64SizeOff + 8
)

// scanSegment32 reads a 32-bit segment command's name and inline section
// array (56-byte segment header, 68 bytes/section) and forwards
// allow-listed sections to the string extractor. slice is the containing
// Mach-O image, used to resolve each section's file-backed byte range;
// cmd is this load command's own body.
func scanSegment32(slice, cmd cursor, order binary.ByteOrder, acc *archBuilder) {
	segName := cstr16(readName16(cmd, seg32NameOff))
	nsect, err := cmd.readU32(seg32NsectOff, order)
	if err != nil {
		acc.warn(cmd.absolute(0), "segment command truncated before nsect")
		return
	}
	allowed := sectionAllowList[segName]
	if allowed == nil {
		return
	}

	const sectSize = int(types.Section32Size)
	base := int(types.Segment32Size)
	for i := uint32(0); i < nsect; i++ {
		off := base + int(i)*sectSize
		sect, err := cmd.subrange(off, sectSize)
		if err != nil {
			acc.warn(cmd.absolute(off), "segment %s: section %d out of range", segName, i)
			break
		}
		sectName := cstr16(readName16(sect, 0))
		if !allowed[sectName] {
			continue
		}
		size, _ := sect.readU32(sect32SizeOff, order)
		fileOff, _ := sect.readU32(sect32OffsetOff, order)
		extractStrings(slice, segName, sectName, int64(fileOff), int64(size), acc)
	}
}

// scanSegment64 is the 64-bit analog of scanSegment32 (72-byte segment
// header, 80 bytes/section).
func scanSegment64(slice, cmd cursor, order binary.ByteOrder, acc *archBuilder) {
	segName := cstr16(readName16(cmd, seg64NameOff))
	nsect, err := cmd.readU32(seg64NsectOff, order)
	if err != nil {
		acc.warn(cmd.absolute(0), "segment command truncated before nsect")
		return
	}
	allowed := sectionAllowList[segName]
	if allowed == nil {
		return
	}

	const sectSize = int(types.Section64Size)
	base := int(types.Segment64Size)
	for i := uint32(0); i < nsect; i++ {
		off := base + int(i)*sectSize
		sect, err := cmd.subrange(off, sectSize)
		if err != nil {
			acc.warn(cmd.absolute(off), "segment %s: section %d out of range", segName, i)
			break
		}
		sectName := cstr16(readName16(sect, 0))
		if !allowed[sectName] {
			continue
		}
		size, _ := sect.readU64(sect64SizeOff, order)
		fileOff, _ := sect.readU32(sect64OffsetOff, order)
		extractStrings(slice, segName, sectName, int64(fileOff), int64(size), acc)
	}
}

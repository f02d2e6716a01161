package macho

import "encoding/binary"

// Hand-built minimal Mach-O byte buffers for tests. No real Apple binaries
// are checked into this repo; these fixtures are the smallest byte
// sequences that satisfy each component's contract.

func putU32(buf []byte, off int, v uint32, order binary.ByteOrder) {
	order.PutUint32(buf[off:off+4], v)
}

func putU64(buf []byte, off int, v uint64, order binary.ByteOrder) {
	order.PutUint64(buf[off:off+8], v)
}

func putName16(buf []byte, off int, name string) {
	copy(buf[off:off+16], name)
}

// buildThinHeader64 returns a 32-byte 64-bit Mach-O header (LE) with the
// given filetype, ncmds and sizeofcmds, cpu x86_64, flags as given.
func buildThinHeader64(filetype, ncmds, sizecmds, flags uint32) []byte {
	buf := make([]byte, 32)
	order := binary.LittleEndian
	putU32(buf, 0, 0xfeedfacf, order) // Magic64
	putU32(buf, 4, 0x01000007, order) // CPU_TYPE_X86_64
	putU32(buf, 8, 0x3, order)        // cpusubtype
	putU32(buf, 12, filetype, order)
	putU32(buf, 16, ncmds, order)
	putU32(buf, 20, sizecmds, order)
	putU32(buf, 24, flags, order)
	putU32(buf, 28, 0, order) // reserved
	return buf
}

// appendDylibCmd appends an LC_LOAD_DYLIB record with the given name and
// current_version, returning the new buffer.
func appendDylibCmd(buf []byte, name string, currentVersion uint32) []byte {
	order := binary.LittleEndian
	const hdrLen = 24
	nameBytes := append([]byte(name), 0)
	total := hdrLen + len(nameBytes)
	for total%4 != 0 {
		total++
		nameBytes = append(nameBytes, 0)
	}

	rec := make([]byte, total)
	putU32(rec, 0, 0xc, order) // LC_LOAD_DYLIB
	putU32(rec, 4, uint32(total), order)
	putU32(rec, 8, hdrLen, order) // name offset
	putU32(rec, 12, 0, order)     // timestamp
	putU32(rec, 16, currentVersion, order)
	putU32(rec, 20, 0, order) // compat version
	copy(rec[hdrLen:], nameBytes)

	return append(buf, rec...)
}

// appendSegment64 appends an LC_SEGMENT_64 record with one section whose
// content is placed at absolute offset sectFileOff within the eventual
// whole-image buffer (the caller is responsible for placing the bytes
// there separately; this only writes the section header).
func appendSegment64(buf []byte, segName, sectName string, sectFileOff, sectSize uint32) []byte {
	order := binary.LittleEndian
	const segLen = 72 + 80 // one section
	rec := make([]byte, segLen)
	putU32(rec, 0, 0x19, order) // LC_SEGMENT_64
	putU32(rec, 4, uint32(segLen), order)
	putName16(rec, 8, segName)
	putU64(rec, 24, 0, order)    // addr
	putU64(rec, 32, 0x1000, order) // memsz
	putU64(rec, 40, 0, order)    // offset
	putU64(rec, 48, 0x1000, order) // filesz
	putU32(rec, 56, 7, order)    // maxprot
	putU32(rec, 60, 7, order)    // prot
	putU32(rec, 64, 1, order)    // nsect
	putU32(rec, 68, 0, order)    // flag

	sect := rec[72:]
	putName16(sect, 0, sectName)
	putName16(sect, 16, segName)
	putU64(sect, 32, 0, order)        // addr
	putU64(sect, 40, uint64(sectSize), order)
	putU32(sect, 48, sectFileOff, order)
	putU32(sect, 52, 0, order) // align
	putU32(sect, 56, 0, order) // reloff
	putU32(sect, 60, 0, order) // nreloc
	putU32(sect, 64, 0, order) // flags
	putU32(sect, 68, 0, order) // reserve1
	putU32(sect, 72, 0, order) // reserve2

	return append(buf, rec...)
}

// appendSymtabCmd appends an LC_SYMTAB record.
func appendSymtabCmd(buf []byte, symoff, nsyms, stroff, strsize uint32) []byte {
	order := binary.LittleEndian
	rec := make([]byte, 24)
	putU32(rec, 0, 0x2, order) // LC_SYMTAB
	putU32(rec, 4, 24, order)
	putU32(rec, 8, symoff, order)
	putU32(rec, 12, nsyms, order)
	putU32(rec, 16, stroff, order)
	putU32(rec, 20, strsize, order)
	return append(buf, rec...)
}

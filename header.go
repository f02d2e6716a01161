package macho

import (
	"encoding/binary"

	"github.com/quickmacho/machore/types"
)

// header is the decoded result of reading a Mach-O image's fixed-size
// header: its bitness/endianness (needed by every downstream reader) plus
// the fields callers actually use.
type header struct {
	is64      bool
	order     binary.ByteOrder
	cpu       types.CPU
	fileType  types.HeaderFileType
	ncmds     uint32
	sizecmds  uint32
	flags     types.HeaderFlag
	cmdRegion int // byte offset where the load-command region starts
}

// readHeader identifies the magic at the start of s (one of the four
// Mach-O forms - 32/64 bit, either endianness) and decodes the fields that
// follow in their declared order.
func readHeader(s cursor) (header, error) {
	rawMagic, err := s.readU32LE(0)
	if err != nil {
		return header{}, newError(TruncatedInput, s.absolute(0), "buffer too small for a Mach-O header")
	}

	var is64 bool
	var order binary.ByteOrder
	switch rawMagic {
	case 0xfeedface:
		is64, order = false, binary.LittleEndian
	case 0xcefaedfe: // byte-swapped Magic32
		is64, order = false, binary.BigEndian
	case 0xfeedfacf:
		is64, order = true, binary.LittleEndian
	case 0xcffaedfe: // byte-swapped Magic64
		is64, order = true, binary.BigEndian
	default:
		return header{}, newError(UnknownMagic, s.absolute(0), "magic %#x is neither Mach-O nor fat", rawMagic)
	}

	cpuType, err := s.readU32(4, order)
	if err != nil {
		return header{}, newError(TruncatedInput, s.absolute(4), "header truncated reading cputype")
	}
	// cpusubtype at offset 8 is not read; ArchReport doesn't surface it.
	fileType, err := s.readU32(12, order)
	if err != nil {
		return header{}, newError(TruncatedInput, s.absolute(12), "header truncated reading filetype")
	}
	ncmds, err := s.readU32(16, order)
	if err != nil {
		return header{}, newError(TruncatedInput, s.absolute(16), "header truncated reading ncmds")
	}
	sizecmds, err := s.readU32(20, order)
	if err != nil {
		return header{}, newError(TruncatedInput, s.absolute(20), "header truncated reading sizeofcmds")
	}
	flags, err := s.readU32(24, order)
	if err != nil {
		return header{}, newError(TruncatedInput, s.absolute(24), "header truncated reading flags")
	}

	cmdRegion := int(types.FileHeaderSize32)
	if is64 {
		cmdRegion = int(types.FileHeaderSize64)
	}
	if !s.checkRange(cmdRegion, 0) {
		return header{}, newError(TruncatedInput, s.absolute(cmdRegion), "header extends past buffer")
	}

	return header{
		is64:      is64,
		order:     order,
		cpu:       types.CPU(cpuType),
		fileType:  types.HeaderFileType(fileType),
		ncmds:     ncmds,
		sizecmds:  sizecmds,
		flags:     types.HeaderFlag(flags),
		cmdRegion: cmdRegion,
	}, nil
}

// archName maps the decoded CPU type to the fixed short-name set the
// report uses.
func archName(cpu types.CPU) string { return cpu.Name() }

// reportFileType maps the canonical MH_* constants to the report's closed
// filetype enum; anything not named falls through to NotSupported.
func reportFileType(t types.HeaderFileType) HeaderFileType {
	switch t {
	case types.MH_OBJECT:
		return FiletypeObject
	case types.MH_EXECUTE:
		return FiletypeExecutable
	case types.MH_FVMLIB:
		return FiletypeFvmLib
	case types.MH_CORE:
		return FiletypeCore
	case types.MH_PRELOAD:
		return FiletypePreload
	case types.MH_DYLIB:
		return FiletypeDylib
	case types.MH_DYLINKER:
		return FiletypeDylinker
	case types.MH_BUNDLE:
		return FiletypeBundle
	case types.MH_DYLIB_STUB:
		return FiletypeDylibStub
	case types.MH_DSYM:
		return FiletypeDsym
	case types.MH_KEXT_BUNDLE:
		return FiletypeKextBundle
	default:
		return FiletypeNotSupported
	}
}

func reportFlags(f types.HeaderFlag) HeaderFlags {
	return HeaderFlags{
		NoUndefinedRefs:      f.NoUndefs(),
		DyldCompatible:       f.DyldLink(),
		DefinesWeakSymbols:   f.WeakDefines(),
		UsesWeakSymbols:      f.BindsToWeak(),
		AllowsStackExecution: f.AllowStackExecution(),
		EnforceNoHeapExec:    f.NoHeapExecution(),
	}
}

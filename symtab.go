package macho

import (
	"encoding/binary"

	"github.com/quickmacho/machore/types"
)

// readSymtab walks the nlist array an LC_SYMTAB command points at, resolving
// each entry's name against the string pool it also points at. symoff and
// stroff are relative to the start of the containing slice, not the command
// itself (spec §4.8). is64 selects nlist32 vs nlist64 entry width, per the
// slice's own header.
func readSymtab(s, body cursor, order binary.ByteOrder, is64 bool, acc *archBuilder) error {
	symoff, err := body.readU32(8, order)
	if err != nil {
		return newError(MalformedSymbolTable, body.absolute(0), "symtab command truncated before symoff")
	}
	nsyms, err := body.readU32(12, order)
	if err != nil {
		return newError(MalformedSymbolTable, body.absolute(0), "symtab command truncated before nsyms")
	}
	stroff, err := body.readU32(16, order)
	if err != nil {
		return newError(MalformedSymbolTable, body.absolute(0), "symtab command truncated before stroff")
	}
	strsize, err := body.readU32(20, order)
	if err != nil {
		return newError(MalformedSymbolTable, body.absolute(0), "symtab command truncated before strsize")
	}

	strings, err := s.subrange(int(stroff), int(strsize))
	if err != nil {
		return newError(MalformedSymbolTable, s.absolute(int(stroff)), "string pool [%d,%d) lies outside the slice", stroff, uint64(stroff)+uint64(strsize))
	}

	entrySize := int(types.Nlist32Size)
	if is64 {
		entrySize = int(types.Nlist64Size)
	}
	table, err := s.subrange(int(symoff), int(nsyms)*entrySize)
	if err != nil {
		return newError(MalformedSymbolTable, s.absolute(int(symoff)), "nlist table of %d entries lies outside the slice", nsyms)
	}

	for i := uint32(0); i < nsyms; i++ {
		off := int(i) * entrySize
		strx, err := table.readU32(off, order)
		if err != nil {
			break
		}
		nType, err := table.readU8(off + 4)
		if err != nil {
			break
		}
		nSect, err := table.readU8(off + 5)
		if err != nil {
			break
		}

		if strx == 0 {
			continue
		}

		raw, _, err := strings.asCstrLimit(int(strx), int(strsize)-int(strx))
		if err != nil {
			acc.warn(table.absolute(off), "symbol %d: string offset %d outside the string pool", i, strx)
			continue
		}

		var class SymbolClassification
		switch {
		case nType&types.N_STAB != 0:
			class = ClassSTAB
		case nType&types.N_EXT != 0:
			class = ClassExternal
		default:
			class = ClassPrivateExternal
		}

		acc.addSymbol(SymbolEntry{
			Name:           string(raw),
			Classification: class,
			HasNoSection:   nSect == types.NoSect,
		})
	}

	return nil
}

package macho

import "github.com/quickmacho/machore/types"

// walkLoadCommands iterates at most h.ncmds records within the first
// h.sizecmds bytes after the header, dispatching each recognized command
// tag to its sub-parser. Malformed individual records become warnings on
// acc and don't stop the walk, except a record that would run past the
// command region, which ends the walk there; cmdsize==0 would loop forever
// so that one case is fatal.
func walkLoadCommands(s cursor, h header, acc *archBuilder) error {
	region, err := s.subrange(h.cmdRegion, int(h.sizecmds))
	if err != nil {
		return newError(MalformedLoadCommand, s.absolute(h.cmdRegion), "load-command region of %d bytes exceeds the slice", h.sizecmds)
	}

	pos := 0
	for i := uint32(0); i < h.ncmds; i++ {
		if !region.checkRange(pos, 8) {
			acc.warn(region.absolute(pos), "load command %d starts past the declared command region", i)
			break
		}
		cmdTag, _ := region.readU32(pos, h.order)
		cmdSize, _ := region.readU32(pos+4, h.order)

		cmd := types.LoadCmd(cmdTag)

		if cmdSize == 0 {
			return newError(MalformedLoadCommand, region.absolute(pos), "load command %d has cmdsize 0", i)
		}
		if cmdSize < 8 {
			acc.warn(region.absolute(pos), "load command %d has cmdsize %d < 8", i, cmdSize)
			pos += int(cmdSize)
			continue
		}
		if cmdSize%4 != 0 {
			acc.warn(region.absolute(pos), "load command %d has non-4-byte-aligned cmdsize %d", i, cmdSize)
			pos += int(cmdSize)
			continue
		}
		if !region.checkRange(pos, int(cmdSize)) {
			acc.warn(region.absolute(pos), "load command %d of size %d overruns the command region", i, cmdSize)
			break
		}

		body, err := region.subrange(pos, int(cmdSize))
		if err != nil {
			acc.warn(region.absolute(pos), "load command %d body unreadable: %v", i, err)
			pos += int(cmdSize)
			continue
		}

		switch {
		case cmd.IsDylib():
			decodeDylib(body, h.order, acc)
		case cmd == types.LC_SEGMENT:
			scanSegment32(s, body, h.order, acc)
		case cmd == types.LC_SEGMENT_64:
			scanSegment64(s, body, h.order, acc)
		case cmd == types.LC_SYMTAB:
			if err := readSymtab(s, body, h.order, h.is64, acc); err != nil {
				if pe, ok := err.(*ParseError); ok {
					acc.warn(pe.Offset, "symbol table: %s", pe.Message)
				} else {
					acc.warn(region.absolute(pos), "symbol table: %v", err)
				}
			}
		case cmd == types.LC_CODE_SIGNATURE:
			if err := parseCodeSignature(s, body, h.order, acc); err != nil {
				if pe, ok := err.(*ParseError); ok {
					acc.warn(pe.Offset, "code signature: %s", pe.Message)
				} else {
					acc.warn(region.absolute(pos), "code signature: %v", err)
				}
			}
		default:
			// Not one of the kinds this analyzer cares about; skipped, not an error.
		}

		pos += int(cmdSize)
	}
	return nil
}

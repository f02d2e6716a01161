// Package macho implements a read-only, bounds-checked analyzer for Mach-O
// and fat/universal binaries. Parse never panics on malformed input and
// never trusts a length or offset it hasn't range-checked against the
// buffer it came from.
package macho

// Parse analyzes buf as a Mach-O image or a fat/universal archive of them.
// A fatal error here means the input couldn't even be split into slices
// (a buffer too short to hold a magic number, or a fat header too malformed
// to trust). A magic that is neither fat nor Mach-O is not fatal here: the
// buffer becomes one slice whose ArchReport carries the warning. Once
// slicing succeeds, each slice gets its own best-effort ArchReport and a
// problem in one slice never drops another - len(report.Arch) always
// equals the number of slices demultiplex found, preserving the caller's
// ability to correlate reports back to architectures.
func Parse(buf []byte) (*Report, error) {
	isFat, slices, err := demultiplex(buf)
	if err != nil {
		return nil, err
	}

	arches := make([]ArchReport, 0, len(slices))
	for _, sl := range slices {
		arches = append(arches, parseSlice(sl.data, sl.offset))
	}

	return &Report{IsFat: isFat, Arch: arches}, nil
}

// parseSlice always produces an ArchReport, even for a slice whose header
// or load-command region turns out to be unreadable: the failure becomes a
// warning rather than a dropped slot, so arches.count == nfat_arch holds
// even under a MalformedSlice condition.
func parseSlice(data []byte, offset int64) ArchReport {
	acc := newArchBuilder()
	s := newCursor(data, offset)

	h, err := readHeader(s)
	if err != nil {
		acc.report.Architecture = "Unknown"
		acc.report.FileType = FiletypeNotSupported
		if pe, ok := err.(*ParseError); ok {
			acc.warn(pe.Offset, "%s", pe.Message)
		} else {
			acc.warn(offset, "%v", err)
		}
		return acc.build()
	}

	acc.report.Architecture = archName(h.cpu)
	acc.report.FileType = reportFileType(h.fileType)
	acc.report.Flags = reportFlags(h.flags)

	if err := walkLoadCommands(s, h, acc); err != nil {
		if pe, ok := err.(*ParseError); ok {
			acc.warn(pe.Offset, "%s", pe.Message)
		} else {
			acc.warn(offset, "%v", err)
		}
	}

	return acc.build()
}

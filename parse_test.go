package macho

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildWholeImage assembles a complete thin 64-bit Mach-O image: header,
// one LC_LOAD_DYLIB, one LC_SEGMENT_64 (__TEXT,__cstring) whose file range
// points at the trailing string data, and one LC_SYMTAB over a trailing
// nlist64 + string pool. Returned alongside is the file offset at which the
// __cstring content starts, for assertions.
func buildWholeImage(t *testing.T) (buf []byte, cstringOff uint32) {
	t.Helper()
	order := binary.LittleEndian

	cmds := []byte{}
	cmds = appendDylibCmd(cmds, "/usr/lib/libSystem.B.dylib", 0x01020304)

	// Segment + symtab offsets are computed after we know the header+cmds
	// length, so placeholder the section offset and patch it below.
	cmds = appendSegment64(cmds, "__TEXT", "__cstring", 0, 6) // patched below; "hello\x00" is 6 bytes
	segCmdOff := len(appendDylibCmd(nil, "/usr/lib/libSystem.B.dylib", 0x01020304))

	symtabPlaceholder := len(cmds)
	cmds = appendSymtabCmd(cmds, 0, 0, 0, 0) // patched below

	header := buildThinHeader64(0x2, 3, uint32(len(cmds)), 0x85)
	headerLen := len(header)

	image := append(append([]byte{}, header...), cmds...)

	stringData := []byte("hello\x00")
	stringDataOff := uint32(len(image))
	image = append(image, stringData...)

	symName := []byte("_main\x00")
	strPoolOff := uint32(len(image))
	// string pool index 0 is conventionally empty (n_strx==0 means no name)
	strPool := append([]byte{0}, symName...)
	image = append(image, strPool...)

	symOff := uint32(len(image))
	nlist := make([]byte, 16)
	putU32(nlist, 0, uint32(len(strPool)-len(symName)), order) // strx into symName
	nlist[4] = 0x01                                            // N_EXT
	nlist[5] = 0x01                                            // n_sect (has a section)
	image = append(image, nlist...)

	// Patch the section's file offset/size.
	sectOff := headerLen + segCmdOff + 72 + 48 // segment header + section Offset field
	putU32(image, sectOff, stringDataOff, order)

	// Patch the symtab command.
	putU32(image, headerLen+symtabPlaceholder+8, symOff, order)
	putU32(image, headerLen+symtabPlaceholder+12, 1, order)
	putU32(image, headerLen+symtabPlaceholder+16, strPoolOff, order)
	putU32(image, headerLen+symtabPlaceholder+20, uint32(len(strPool)), order)

	return image, stringDataOff
}

func TestParseWholeImage(t *testing.T) {
	buf, stringOff := buildWholeImage(t)

	report, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if report.IsFat {
		t.Fatal("expected a thin report")
	}
	if len(report.Arch) != 1 {
		t.Fatalf("expected 1 arch, got %d", len(report.Arch))
	}

	a := report.Arch[0]
	if a.Architecture != "x86_64" {
		t.Fatalf("architecture = %q", a.Architecture)
	}
	if len(a.Dylibs) != 1 || a.Dylibs[0].Path != "/usr/lib/libSystem.B.dylib" {
		t.Fatalf("dylibs = %+v", a.Dylibs)
	}
	if a.Dylibs[0].CurrentVersion != "1.2.4" { // 0x01020304 as three lanes: 0x01.0x02.0x04
		t.Fatalf("version = %q", a.Dylibs[0].CurrentVersion)
	}

	if len(a.Strings) != 1 {
		t.Fatalf("expected 1 string, got %+v", a.Strings)
	}
	s := a.Strings[0]
	if string(s.Content) != "hello" || s.OriginalOffset != int64(stringOff) {
		t.Fatalf("string = %+v", s)
	}

	if len(a.Symbols) != 1 || a.Symbols[0].Name != "_main" || a.Symbols[0].Classification != ClassExternal || a.Symbols[0].HasNoSection {
		t.Fatalf("symbols = %+v", a.Symbols)
	}
}

func TestParseDeterministic(t *testing.T) {
	buf, _ := buildWholeImage(t)

	r1, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Fatalf("Parse is not deterministic: %s", diff)
	}
}

func TestParseZeroCmdsizeDoesNotFailParse(t *testing.T) {
	header := buildThinHeader64(0x2, 1, 8, 0)
	rec := make([]byte, 8) // cmd=0, cmdsize=0
	buf := append(header, rec...)

	_, err := Parse(buf)
	// cmdsize==0 is fatal at the load-command level, which parseSlice turns
	// into a warning on the ArchReport rather than aborting Parse
	// (fatal-fat errors abort parse; fatal-slice errors don't, per spec).
	if err != nil {
		t.Fatalf("Parse should not itself fail: %v", err)
	}
}

func TestTruncatedPrefixesNeverCrash(t *testing.T) {
	buf, _ := buildWholeImage(t)
	for k := 0; k <= len(buf); k++ {
		if _, err := Parse(buf[:k]); err != nil {
			continue // a typed error is an acceptable outcome
		}
	}
}

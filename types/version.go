package types

import "fmt"

// DylibVersion is the packed 32-bit "current_version" / "compatibility_version"
// word carried by a dylib_command.
//
// The canonical Mach-O layout is X.Y.Z encoded as (u16 major, u8 minor, u8 patch):
// major = v>>16, minor = (v>>8)&0xff, patch = v&0xff. This type intentionally
// does NOT implement that layout. The tool this analyzer was distilled from
// instead treated the word as three 8-bit lanes - major = v>>24, minor =
// (v>>16)&0xff, patch = v&0xff - discarding the top byte of what is actually
// the minor/patch pair. That reading is preserved here for compatibility with
// existing report consumers; see the decoding note in DESIGN.md.
type DylibVersion uint32

// String formats the version the way the original tool did: MAJOR.MINOR.PATCH
// with MAJOR/MINOR/PATCH read as three separate bytes of the 32-bit word.
func (v DylibVersion) String() string {
	major := (v >> 24) & 0xff
	minor := (v >> 16) & 0xff
	patch := v & 0xff
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

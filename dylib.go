package macho

import (
	"encoding/binary"

	"github.com/quickmacho/machore/types"
)

const dylibPathLimit = 256

// decodeDylib extracts the path and current_version from a dylib load
// command's own payload. cmd is the full command body (header included),
// matching LC_LOAD_DYLIB / LC_LOAD_WEAK_DYLIB / LC_ID_DYLIB /
// LC_REEXPORT_DYLIB / LC_LOAD_UPWARD_DYLIB / LC_LAZY_LOAD_DYLIB.
func decodeDylib(cmd cursor, order binary.ByteOrder, acc *archBuilder) {
	nameOffset, err := cmd.readU32(8, order)
	if err != nil {
		acc.warn(cmd.absolute(0), "dylib command too short to carry a name offset")
		return
	}
	currentVersion, err := cmd.readU32(16, order)
	if err != nil {
		acc.warn(cmd.absolute(0), "dylib command too short to carry a version")
		return
	}

	path, isTruncated := "", false
	raw, found, err := cmd.asCstrLimit(int(nameOffset), dylibPathLimit)
	if err != nil {
		acc.warn(cmd.absolute(int(nameOffset)), "dylib name offset %d out of range", nameOffset)
	} else {
		path = string(raw)
		isTruncated = !found && len(raw) == dylibPathLimit
	}

	acc.addDylib(DylibEntry{
		Path:           path,
		IsTruncated:    isTruncated,
		CurrentVersion: types.DylibVersion(currentVersion).String(),
	})
}

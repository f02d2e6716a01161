package macho

import (
	"encoding/binary"

	"github.com/quickmacho/machore/types"
)

// slice is one inner Mach-O image discovered by the fat demultiplexer,
// together with its absolute offset in the original buffer (used only to
// report accurate error/warning offsets). data is a sub-slice of the input
// buffer, not a copy.
type slice struct {
	data   []byte
	offset int64
}

// demultiplex detects a fat/universal wrapper and yields one slice per
// embedded architecture, in on-disk order. A non-fat buffer yields exactly
// one slice spanning the whole input (isFat=false).
func demultiplex(buf []byte) (isFat bool, slices []slice, err error) {
	top := newCursor(buf, 0)

	magic, err := top.readU32BE(0)
	if err != nil {
		return false, nil, newError(TruncatedInput, 0, "buffer too small to contain a magic number")
	}

	switch magic {
	case types.FatMagic, types.FatCigam:
		s, err := parseFatArchTable(top, false)
		return true, s, err
	case types.FatMagic64, types.FatCigam64:
		s, err := parseFatArchTable(top, true)
		return true, s, err
	default:
		return false, []slice{{data: buf, offset: 0}}, nil
	}
}

// parseFatArchTable reads the fat header and nfat_arch records, which are
// always big-endian regardless of what's inside each slice. wide selects
// the 64-bit arch-table layout (fat_arch_64, used by the 0xCAFEBABF magic).
func parseFatArchTable(top cursor, wide bool) ([]slice, error) {
	nfatArch, err := top.readU32BE(4)
	if err != nil {
		return nil, newError(MalformedFat, 0, "fat header truncated")
	}

	recSize := int(types.FatArch32Size)
	if wide {
		recSize = int(types.FatArch64Size)
	}

	// Guard the nfat_arch * recSize multiplication against overflow before
	// it's used to validate ranges below.
	tableBytes := uint64(nfatArch) * uint64(recSize)
	if tableBytes > uint64(len(top.buf)) {
		return nil, newError(MalformedFat, types.FatHeaderSize,
			"arch table of %d records would read past the buffer", nfatArch)
	}

	slices := make([]slice, 0, nfatArch)
	for i := uint32(0); i < nfatArch; i++ {
		recOff := types.FatHeaderSize + int(i)*recSize
		var offset, size uint64
		if wide {
			o, err := top.readU64(recOff+8, binary.BigEndian)
			if err != nil {
				return nil, newError(MalformedFat, top.absolute(recOff), "fat_arch_64 record %d truncated", i)
			}
			sz, err := top.readU64(recOff+16, binary.BigEndian)
			if err != nil {
				return nil, newError(MalformedFat, top.absolute(recOff), "fat_arch_64 record %d truncated", i)
			}
			offset, size = o, sz
		} else {
			o, err := top.readU32BE(recOff + 8)
			if err != nil {
				return nil, newError(MalformedFat, top.absolute(recOff), "fat_arch record %d truncated", i)
			}
			sz, err := top.readU32BE(recOff + 12)
			if err != nil {
				return nil, newError(MalformedFat, top.absolute(recOff), "fat_arch record %d truncated", i)
			}
			offset, size = uint64(o), uint64(sz)
		}

		if offset > uint64(len(top.buf)) || size > uint64(len(top.buf))-offset {
			return nil, newError(MalformedFat, top.absolute(recOff),
				"arch %d slice range [%d,%d) lies outside the buffer", i, offset, offset+size)
		}

		slices = append(slices, slice{
			data:   top.buf[offset : offset+size],
			offset: int64(offset),
		})
	}
	return slices, nil
}

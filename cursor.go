package macho

import "encoding/binary"

// cursor is a bounds-checked view over a sub-range of an immutable buffer.
// It never reads past length; every accessor returns an error instead.
// Parsers pass cursors down instead of raw byte slices so an offset can
// never silently walk out of the range it was validated against.
type cursor struct {
	buf    []byte
	base   int64 // absolute file offset of buf[0], for error reporting only
	offset int
	length int
}

// newCursor wraps buf as a cursor whose absolute offsets (for error
// messages) are reported relative to base.
func newCursor(buf []byte, base int64) cursor {
	return cursor{buf: buf, base: base, length: len(buf)}
}

func (c cursor) absolute(off int) int64 { return c.base + int64(off) }

// checkRange reports whether [off, off+n) lies within the cursor's buffer,
// guarding against both overruns and integer overflow of off+n.
func (c cursor) checkRange(off, n int) bool {
	if off < 0 || n < 0 {
		return false
	}
	end := off + n
	if end < off { // overflow
		return false
	}
	return end <= c.length
}

func (c cursor) readBytes(off, n int) ([]byte, error) {
	if !c.checkRange(off, n) {
		return nil, newError(TruncatedInput, c.absolute(off), "read of %d bytes exceeds buffer length %d", n, c.length)
	}
	return c.buf[off : off+n], nil
}

func (c cursor) readU32(off int, order binary.ByteOrder) (uint32, error) {
	b, err := c.readBytes(off, 4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

func (c cursor) readU32LE(off int) (uint32, error) { return c.readU32(off, binary.LittleEndian) }
func (c cursor) readU32BE(off int) (uint32, error) { return c.readU32(off, binary.BigEndian) }

func (c cursor) readU64(off int, order binary.ByteOrder) (uint64, error) {
	b, err := c.readBytes(off, 8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}

func (c cursor) readU16(off int, order binary.ByteOrder) (uint16, error) {
	b, err := c.readBytes(off, 2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

func (c cursor) readU8(off int) (uint8, error) {
	b, err := c.readBytes(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// subrange derives a new cursor over [off, off+n) of c, re-based so its own
// absolute offsets stay meaningful in error messages.
func (c cursor) subrange(off, n int) (cursor, error) {
	b, err := c.readBytes(off, n)
	if err != nil {
		return cursor{}, err
	}
	return newCursor(b, c.absolute(off)), nil
}

// asCstrLimit scans up to max bytes starting at off for a NUL terminator.
// It returns the bytes before the NUL (or, if none is found, the first max
// bytes) and whether a NUL was found. Absence of a NUL is not itself an
// error - callers decide whether that means "truncated".
func (c cursor) asCstrLimit(off, max int) ([]byte, bool, error) {
	if off < 0 || off > c.length {
		return nil, false, newError(TruncatedInput, c.absolute(off), "cstring start out of range")
	}
	limit := max
	if off+limit > c.length {
		limit = c.length - off
	}
	window := c.buf[off : off+limit]
	for i, b := range window {
		if b == 0 {
			return window[:i], true, nil
		}
	}
	return window, false, nil
}

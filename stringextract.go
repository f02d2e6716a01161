package macho

// extractStrings splits the file-backed byte range [fileOff, fileOff+fileSize)
// of slice on NUL bytes, emitting one StringEntry per non-empty run (spec
// §4.7). A section whose range doesn't fit inside the slice is skipped with
// a warning rather than truncated silently.
func extractStrings(slice cursor, segName, sectName string, fileOff, fileSize int64, acc *archBuilder) {
	if fileOff < 0 || fileSize < 0 || !slice.checkRange(int(fileOff), int(fileSize)) {
		acc.warn(slice.absolute(int(fileOff)), "section %s,%s file range [%d,%d) lies outside the slice", segName, sectName, fileOff, fileOff+fileSize)
		return
	}
	region, err := slice.subrange(int(fileOff), int(fileSize))
	if err != nil {
		acc.warn(slice.absolute(int(fileOff)), "section %s,%s unreadable: %v", segName, sectName, err)
		return
	}

	pos := 0
	for pos < int(fileSize) {
		for pos < int(fileSize) {
			b, err := region.readU8(pos)
			if err != nil || b != 0 {
				break
			}
			pos++
		}
		if pos >= int(fileSize) {
			break
		}
		raw, found, err := region.asCstrLimit(pos, int(fileSize)-pos)
		if err != nil {
			break
		}
		if len(raw) > 0 {
			size := len(raw)
			if found {
				size++ // include the trailing NUL
			}
			acc.addString(StringEntry{
				Content:         append([]byte(nil), raw...),
				Size:            size,
				OriginalSegment: segName,
				OriginalSection: sectName,
				OriginalOffset:  region.absolute(pos),
			})
		}
		pos += len(raw)
		if found {
			pos++ // skip the terminator we just consumed
		} else {
			break
		}
	}
}

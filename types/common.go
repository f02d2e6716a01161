package types

import "strconv"

// IntName pairs a raw integer value with its symbolic name for table-driven
// String() methods across the enumerations in this package.
type IntName struct {
	I uint32
	S string
}

// StringName looks up i in names, falling back to its hex representation.
// When goSyntax is set the result is qualified the way Go's %#v prints consts.
func StringName(i uint32, names []IntName, goSyntax bool) string {
	for _, n := range names {
		if n.I == i {
			if goSyntax {
				return "macho." + n.S
			}
			return n.S
		}
	}
	return "0x" + strconv.FormatUint(uint64(i), 16)
}

package types

// A CPU is a Mach-O cpu type, as found in the first word of a mach_header.
type CPU uint32

const (
	cpuArch64 = 0x01000000 // 64 bit ABI
)

const (
	CPUX86   CPU = 7
	CPUAmd64 CPU = CPUX86 | cpuArch64
	CPUArm   CPU = 12
	CPUArm64 CPU = CPUArm | cpuArch64
)

var cpuStrings = []IntName{
	{uint32(CPUX86), "x86"},
	{uint32(CPUAmd64), "x86_64"},
	{uint32(CPUArm), "ARM"},
	{uint32(CPUArm64), "ARM64"},
}

// Name maps a cpu type to the short architecture name the report uses.
// Unrecognized types map to "Unknown" rather than erroring: an unknown
// CPU type is not malformed input, just an architecture this analyzer
// doesn't name.
func (c CPU) Name() string {
	for _, n := range cpuStrings {
		if n.I == uint32(c) {
			return n.S
		}
	}
	return "Unknown"
}

func (c CPU) String() string { return StringName(uint32(c), cpuStrings, false) }

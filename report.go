package macho

// Report is the result of one Parse call. It owns every byte slice and
// string its entries reference - none of them alias the input buffer - so
// the input may be discarded (or reused) the moment Parse returns.
type Report struct {
	IsFat bool
	Arch  []ArchReport
}

// Destroy is a no-op in Go: Report's allocations are ordinary garbage-
// collected memory, reachable only from the returned value, and need no
// explicit release. It exists so callers translating the language-neutral
// API (see spec §6) have something to call.
func (r *Report) Destroy() {}

// ArchReport is produced for one Mach-O slice: a thin image, or one member
// of a fat/universal archive.
type ArchReport struct {
	Architecture string // one of x86, x86_64, ARM, ARM64, Unknown
	FileType     HeaderFileType

	Flags HeaderFlags

	Dylibs  []DylibEntry
	Strings []StringEntry
	Symbols []SymbolEntry

	Security *SecurityRecord // nil unless an LC_CODE_SIGNATURE command was found

	Warnings []Warning
}

// HeaderFileType mirrors the Mach-O file-role enum from spec §3; unrecognized
// MH_* values map to NotSupported rather than erroring.
type HeaderFileType int

const (
	FiletypeObject HeaderFileType = iota
	FiletypeExecutable
	FiletypeFvmLib
	FiletypeCore
	FiletypePreload
	FiletypeDylib
	FiletypeDylinker
	FiletypeBundle
	FiletypeDylibStub
	FiletypeDsym
	FiletypeKextBundle
	FiletypeNotSupported
)

func (t HeaderFileType) String() string {
	switch t {
	case FiletypeObject:
		return "Object"
	case FiletypeExecutable:
		return "Executable"
	case FiletypeFvmLib:
		return "FvmLib"
	case FiletypeCore:
		return "Core"
	case FiletypePreload:
		return "Preload"
	case FiletypeDylib:
		return "Dylib"
	case FiletypeDylinker:
		return "Dylinker"
	case FiletypeBundle:
		return "Bundle"
	case FiletypeDylibStub:
		return "DylibStub"
	case FiletypeDsym:
		return "Dsym"
	case FiletypeKextBundle:
		return "KextBundle"
	default:
		return "NotSupported"
	}
}

// HeaderFlags is the six-boolean decoding of the Mach-O header flags word
// that the report surfaces (spec §4.3).
type HeaderFlags struct {
	NoUndefinedRefs      bool
	DyldCompatible       bool
	DefinesWeakSymbols   bool
	UsesWeakSymbols      bool
	AllowsStackExecution bool
	EnforceNoHeapExec    bool
}

// DylibEntry describes one dynamically linked library referenced by a
// LC_*_DYLIB load command.
type DylibEntry struct {
	Path          string
	IsTruncated   bool // path ran into the 256-byte scan limit with no NUL
	CurrentVersion string
}

// StringEntry is one NUL-terminated C string recovered from a designated
// read-only section, together with where it came from.
type StringEntry struct {
	Content          []byte // exact bytes, not including the trailing NUL
	Size             int    // byte length including the trailing NUL
	OriginalSegment  string
	OriginalSection  string
	OriginalOffset   int64 // absolute offset of the first content byte
}

// SymbolClassification buckets a symbol table entry per spec §4.8.
type SymbolClassification int

const (
	ClassSTAB SymbolClassification = iota
	ClassExternal
	ClassPrivateExternal
)

func (c SymbolClassification) String() string {
	switch c {
	case ClassSTAB:
		return "STAB"
	case ClassExternal:
		return "EXTERNAL"
	default:
		return "PRIVATE_EXTERNAL"
	}
}

// SymbolEntry is one nlist entry whose name was resolvable in the string pool.
type SymbolEntry struct {
	Name           string
	Classification SymbolClassification
	HasNoSection   bool
}

// SecurityRecord summarizes the code-signing super-blob. It is present on
// an ArchReport iff a code-signature load command was found and points at
// an in-range super-blob with a recognized magic; IsSigned is then always
// true (spec §4.9).
type SecurityRecord struct {
	IsSigned                      bool
	HasHardenedRuntime            bool
	IsLibraryValidationDisabled   bool
	IsDylibEnvVarAllowed          bool
	EntitlementsXML               []byte // nil if no entitlements slot was present/valid
}

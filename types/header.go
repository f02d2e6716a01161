package types

// A FileHeader represents a Mach-O file header. It is filled in by the
// header reader after magic/bitness/endianness have been resolved.
type FileHeader struct {
	Magic        Magic
	CPU          CPU
	SubCPU       uint32
	Type         HeaderFileType
	NCommands    uint32
	SizeCommands uint32
	Flags        HeaderFlag
	Reserved     uint32 // only present in the 64-bit header
}

const (
	FileHeaderSize32 = 7 * 4
	FileHeaderSize64 = 8 * 4
)

// Magic identifies the byte layout of the bytes that follow it.
type Magic uint32

const (
	Magic32    Magic = 0xfeedface // 32-bit Mach-O, native endian
	Magic64    Magic = 0xfeedfacf // 64-bit Mach-O, native endian
	MagicFat   Magic = 0xcafebabe // fat/universal, 32-bit arch offsets, always big-endian
	MagicFat64 Magic = 0xcafebabf // fat/universal, 64-bit arch offsets, always big-endian
)

var magicStrings = []IntName{
	{uint32(Magic32), "32-bit MachO"},
	{uint32(Magic64), "64-bit MachO"},
	{uint32(MagicFat), "Fat MachO"},
	{uint32(MagicFat64), "Fat MachO (64-bit)"},
}

func (m Magic) String() string { return StringName(uint32(m), magicStrings, false) }

// HeaderFileType is the Mach-O file type, e.g. an object file, executable,
// or dynamic library. The numeric values are the canonical MH_* constants.
type HeaderFileType uint32

const (
	MH_OBJECT      HeaderFileType = 0x1 /* relocatable object file */
	MH_EXECUTE     HeaderFileType = 0x2 /* demand paged executable file */
	MH_FVMLIB      HeaderFileType = 0x3 /* fixed VM shared library file */
	MH_CORE        HeaderFileType = 0x4 /* core file */
	MH_PRELOAD     HeaderFileType = 0x5 /* preloaded executable file */
	MH_DYLIB       HeaderFileType = 0x6 /* dynamically bound shared library */
	MH_DYLINKER    HeaderFileType = 0x7 /* dynamic link editor */
	MH_BUNDLE      HeaderFileType = 0x8 /* dynamically bound bundle file */
	MH_DYLIB_STUB  HeaderFileType = 0x9 /* shared library stub for static linking only, no section contents */
	MH_DSYM        HeaderFileType = 0xa /* companion file with only debug sections */
	MH_KEXT_BUNDLE HeaderFileType = 0xb /* x86_64 kexts */
)

var fileTypeStrings = []IntName{
	{uint32(MH_OBJECT), "Object"},
	{uint32(MH_EXECUTE), "Execute"},
	{uint32(MH_FVMLIB), "FvmLib"},
	{uint32(MH_CORE), "Core"},
	{uint32(MH_PRELOAD), "Preload"},
	{uint32(MH_DYLIB), "Dylib"},
	{uint32(MH_DYLINKER), "Dylinker"},
	{uint32(MH_BUNDLE), "Bundle"},
	{uint32(MH_DYLIB_STUB), "DylibStub"},
	{uint32(MH_DSYM), "Dsym"},
	{uint32(MH_KEXT_BUNDLE), "KextBundle"},
}

func (t HeaderFileType) String() string { return StringName(uint32(t), fileTypeStrings, false) }

// HeaderFlag is the header's bitfield of feature flags.
type HeaderFlag uint32

const (
	NoUndefs                   HeaderFlag = 0x1
	IncrLink                   HeaderFlag = 0x2
	DyldLink                   HeaderFlag = 0x4
	BindAtLoad                 HeaderFlag = 0x8
	Prebound                   HeaderFlag = 0x10
	SplitSegs                  HeaderFlag = 0x20
	LazyInit                   HeaderFlag = 0x40
	TwoLevel                   HeaderFlag = 0x80
	ForceFlat                  HeaderFlag = 0x100
	NoMultiDefs                HeaderFlag = 0x200
	NoFixPrebinding            HeaderFlag = 0x400
	Prebindable                HeaderFlag = 0x800
	AllModsBound               HeaderFlag = 0x1000
	SubsectionsViaSymbols      HeaderFlag = 0x2000
	Canonical                  HeaderFlag = 0x4000
	WeakDefines                HeaderFlag = 0x8000
	BindsToWeak                HeaderFlag = 0x10000
	AllowStackExecution        HeaderFlag = 0x20000
	RootSafe                   HeaderFlag = 0x40000
	SetuidSafe                 HeaderFlag = 0x80000
	NoReexportedDylibs         HeaderFlag = 0x100000
	PIE                        HeaderFlag = 0x200000
	DeadStrippableDylib        HeaderFlag = 0x400000
	HasTLVDescriptors          HeaderFlag = 0x800000
	NoHeapExecution            HeaderFlag = 0x1000000
	AppExtensionSafe           HeaderFlag = 0x2000000
	NlistOutofsyncWithDyldinfo HeaderFlag = 0x4000000
	SimSupport                 HeaderFlag = 0x8000000
	DylibInCache               HeaderFlag = 0x80000000
)

// The six predicates the report surfaces. Kept as named accessors (rather
// than callers masking HeaderFlag themselves) so the bit layout stays in
// one place.
func (f HeaderFlag) NoUndefs() bool            { return f&NoUndefs != 0 }
func (f HeaderFlag) DyldLink() bool            { return f&DyldLink != 0 }
func (f HeaderFlag) WeakDefines() bool         { return f&WeakDefines != 0 }
func (f HeaderFlag) BindsToWeak() bool         { return f&BindsToWeak != 0 }
func (f HeaderFlag) AllowStackExecution() bool { return f&AllowStackExecution != 0 }
func (f HeaderFlag) NoHeapExecution() bool     { return f&NoHeapExecution != 0 }

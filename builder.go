package macho

import "fmt"

// archBuilder accumulates the pieces of one ArchReport as the load-command
// walk visits dylib, segment, symtab and code-signature commands. It's the
// only place in the pipeline that allocates into the eventual Report.
type archBuilder struct {
	report ArchReport
}

func newArchBuilder() *archBuilder {
	return &archBuilder{}
}

func (b *archBuilder) warn(offset int64, format string, args ...any) {
	b.report.Warnings = append(b.report.Warnings, Warning{Offset: offset, Message: fmt.Sprintf(format, args...)})
}

func (b *archBuilder) addDylib(e DylibEntry)   { b.report.Dylibs = append(b.report.Dylibs, e) }
func (b *archBuilder) addString(e StringEntry) { b.report.Strings = append(b.report.Strings, e) }
func (b *archBuilder) addSymbol(e SymbolEntry) { b.report.Symbols = append(b.report.Symbols, e) }

func (b *archBuilder) build() ArchReport { return b.report }

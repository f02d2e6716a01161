// Command machore is a thin CLI over the macho package: it reads a file,
// parses it, and prints a human-readable summary of the report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/quickmacho/machore"
)

func main() {
	firstOnly := flag.Bool("first-only", false, "when the input is fat, process only the first slice")
	showStrings := flag.Bool("strings", false, "include strings in output")
	showSymbols := flag.Bool("symbols", false, "include symbols in output (capped to 20)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <path> [--first-only] [--strings] [--symbols]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// The flag package stops at the first non-flag argument, so parse again
	// after each positional one to accept flags on either side of the path.
	var paths []string
	args := os.Args[1:]
	for {
		if err := flag.CommandLine.Parse(args); err != nil {
			os.Exit(1)
		}
		if flag.NArg() == 0 {
			break
		}
		paths = append(paths, flag.Arg(0))
		args = flag.Args()[1:]
	}

	if len(paths) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "machore: ", log.Lshortfile)

	path := paths[0]
	buf, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("reading %s: %v", path, err)
		os.Exit(1)
	}

	report, err := macho.Parse(buf)
	if err != nil {
		logger.Printf("parsing %s: %v", path, err)
		os.Exit(1)
	}

	arches := report.Arch
	if *firstOnly && len(arches) > 1 {
		arches = arches[:1]
	}

	for i, a := range arches {
		fmt.Printf("slice %d: %s, filetype=%s\n", i, a.Architecture, a.FileType)
		fmt.Printf("  flags: no_undefined_refs=%t dyld_compatible=%t weak_defines=%t weak_binds=%t stack_exec=%t no_heap_exec=%t\n",
			a.Flags.NoUndefinedRefs, a.Flags.DyldCompatible, a.Flags.DefinesWeakSymbols,
			a.Flags.UsesWeakSymbols, a.Flags.AllowsStackExecution, a.Flags.EnforceNoHeapExec)

		for _, d := range a.Dylibs {
			trunc := ""
			if d.IsTruncated {
				trunc = " (truncated)"
			}
			fmt.Printf("  dylib: %s %s%s\n", d.Path, d.CurrentVersion, trunc)
		}

		if a.Security != nil {
			fmt.Printf("  security: signed=%t hardened_runtime=%t lib_validation_disabled=%t dyld_env_allowed=%t entitlements=%dB\n",
				a.Security.IsSigned, a.Security.HasHardenedRuntime,
				a.Security.IsLibraryValidationDisabled, a.Security.IsDylibEnvVarAllowed,
				len(a.Security.EntitlementsXML))
		}

		if *showStrings {
			for _, s := range a.Strings {
				fmt.Printf("  string %s,%s @%#x: %q\n", s.OriginalSegment, s.OriginalSection, s.OriginalOffset, s.Content)
			}
		}

		if *showSymbols {
			n := len(a.Symbols)
			if n > 20 {
				n = 20
			}
			for _, sym := range a.Symbols[:n] {
				fmt.Printf("  symbol %s [%s] no_section=%t\n", sym.Name, sym.Classification, sym.HasNoSection)
			}
			if len(a.Symbols) > 20 {
				fmt.Printf("  ... %d more symbols omitted\n", len(a.Symbols)-20)
			}
		}

		for _, w := range a.Warnings {
			fmt.Printf("  warning: %s\n", w.Message)
		}
	}
}

// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"stspcr/internal/version"
)

// Options holds every CLI flag from spec.md §6's configuration surface,
// plus the merPCR-derived CLI supplements (--quiet, an "stdout" output
// sentinel).
type Options struct {
	STSFile  string
	SeqFiles []string

	WordSize      int
	Margin        int
	Mismatches    int
	ProtectLen    int
	DefaultSize   int
	Threads       int
	IUPAC         bool

	Output string // path, or "stdout"
	Quiet  bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with a custom usage banner,
// matching the teacher's internal/cli/options.go convention.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: STS/e-PCR search engine

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, os.Args[1:]) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.STSFile, "sts", "", "STS definition file (TSV) [*]")
	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA file(s), gzip-transparent (repeatable or '-') [*]")

	fs.IntVar(&opt.WordSize, "word-size", 11, "k-mer word size, 3..16 [11]")
	fs.IntVar(&opt.Margin, "margin", 50, "tolerance +/- around declared PCR size [50]")
	fs.IntVar(&opt.Mismatches, "mismatches", 0, "max mismatches per primer, 0..10 [0]")
	fs.IntVar(&opt.ProtectLen, "three-prime-window", 1, "exact-match length at each primer's 3' end [1]")
	fs.IntVar(&opt.DefaultSize, "default-pcr-size", 240, "PCR size used when an STS record omits one [240]")
	fs.IntVar(&opt.Threads, "threads", 1, "worker count, forced to 1 below 100kb payloads [1]")
	fs.BoolVar(&opt.IUPAC, "iupac", false, "enable IUPAC-ambiguity-aware comparison [false]")

	fs.StringVar(&opt.Output, "output", "stdout", "output sink path, or \"stdout\" [stdout]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress WARN: diagnostics [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.SeqFiles = seq

	if opt.STSFile == "" {
		return opt, errors.New("--sts is required")
	}
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.WordSize < 3 || opt.WordSize > 16 {
		return opt, errors.New("--word-size must be in [3,16]")
	}
	if opt.Margin < 0 || opt.Margin > 10_000 {
		return opt, errors.New("--margin must be in [0,10000]")
	}
	if opt.Mismatches < 0 || opt.Mismatches > 10 {
		return opt, errors.New("--mismatches must be in [0,10]")
	}
	if opt.ProtectLen < 0 {
		return opt, errors.New("--three-prime-window must be >= 0")
	}
	if opt.DefaultSize < 1 || opt.DefaultSize > 10_000 {
		return opt, errors.New("--default-pcr-size must be in [1,10000]")
	}
	if opt.Threads < 1 {
		return opt, errors.New("--threads must be >= 1")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

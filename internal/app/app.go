// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	coreengine "stspcr-core/engine"

	"stspcr/internal/cli"
	"stspcr/internal/cmdutil"
	"stspcr/internal/fastaio"
	"stspcr/internal/output"
	"stspcr/internal/stsfile"
	"stspcr/internal/version"
)

// Run is the entry point cmd/stspcr/main.go calls.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext parses argv, runs the search, and writes formatted hits
// to the configured sink, returning a process exit code. Mirrors the
// teacher's internal/app/app.go wiring shape.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	errw := bufio.NewWriter(stderr)
	defer func() { _ = errw.Flush() }()

	fs := cli.NewFlagSet("stspcr")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(errw)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(errw)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(errw, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintln(stdout, "stspcr", version.Version)
		return 0
	}

	lib, loadRep, err := stsfile.Load(opts.STSFile, opts.DefaultSize)
	if err != nil {
		fmt.Fprintln(errw, err)
		return 2
	}
	for _, msg := range loadRep.MalformedAt {
		cmdutil.Warnf(errw, opts.Quiet, "%s", msg)
	}
	if loadRep.Malformed > 0 || loadRep.InvalidPrimer > 0 {
		cmdutil.Warnf(errw, opts.Quiet,
			"%s: skipped %d malformed line(s), %d invalid-primer line(s)",
			opts.STSFile, loadRep.Malformed, loadRep.InvalidPrimer)
	}
	if loadRep.Loaded == 0 {
		fmt.Fprintln(errw, "no valid STS records loaded")
		return 2
	}

	eng, err := coreengine.New(lib, coreengine.Config{
		WordSize:      opts.WordSize,
		Margin:        opts.Margin,
		MaxMismatches: opts.Mismatches,
		ProtectLen:    opts.ProtectLen,
		DefaultSize:   opts.DefaultSize,
		Threads:       opts.Threads,
		IUPAC:         opts.IUPAC,
	})
	if err != nil {
		fmt.Fprintln(errw, err)
		return 2
	}
	for _, rej := range eng.Report.Rejects {
		cmdutil.Warnf(errw, opts.Quiet, "%s: %s", rej.STSID, rej.Reason)
	}
	cmdutil.Warnf(errw, opts.Quiet,
		"loaded %d STS (too-short %d, wholly-ambiguous %d, size-adjusted %d)",
		eng.Report.Loaded, eng.Report.TooShort, eng.Report.WhollyAmbig, eng.Report.SizeAdjusted)

	sink, err := output.Open(opts.Output)
	if err != nil {
		fmt.Fprintln(errw, err)
		return 2
	}
	defer func() { _ = sink.Close() }()

	ctx := parent
	for _, seqFile := range opts.SeqFiles {
		records, err := fastaio.Load(seqFile)
		if err != nil {
			fmt.Fprintln(errw, err)
			return 2
		}
		for _, rec := range records {
			hits, err := eng.Search(ctx, rec.Label, rec.Payload)
			if err != nil {
				fmt.Fprintln(errw, err)
				return 1
			}
			if err := output.WriteHits(sink.Writer(), hits, sink.IsStdio); err != nil {
				fmt.Fprintln(errw, err)
				return 1
			}
		}
	}
	return 0
}

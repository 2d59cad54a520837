// Command huffcrunch compresses and decompresses text files with a static
// Huffman code.
//
// Usage:
//
//     huffcrunch compress -in FILE -out FILE.huf
//     huffcrunch decompress -in FILE.huf -out FILE [-table FILE.huf.table]
//
// Compression writes the code table next to the output, in a sidecar file
// named after it with a ".table" suffix.
//
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chronos-tachyon/huffcrunch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: huffcrunch compress|decompress [flags]")
		return 2
	}

	cmd := args[0]
	fs := flag.NewFlagSet("huffcrunch "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input file")
	out := fs.String("out", "", "output file")
	table := fs.String("table", "", "code table sidecar (default: input file + \""+huffcrunch.SidecarSuffix+"\")")
	verbose := fs.Bool("v", false, "log at debug level and dump the code table")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *in == "" || *out == "" {
		fmt.Fprintln(stderr, "huffcrunch: -in and -out are required")
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var err error
	switch cmd {
	case "compress":
		err = compress(logger, *in, *out)
	case "decompress":
		tablePath := *table
		if tablePath == "" {
			tablePath = *in + huffcrunch.SidecarSuffix
		}
		err = decompress(logger, *in, tablePath, *out)
	default:
		fmt.Fprintf(stderr, "huffcrunch: unknown command %q\n", cmd)
		return 2
	}

	if err != nil {
		logger.Error("failed", "command", cmd, "kind", errorKind(err), "error", err)
		return 1
	}
	return 0
}

func compress(logger *slog.Logger, inPath, outPath string) error {
	res, err := huffcrunch.CompressFile(inPath)
	if err != nil {
		return err
	}
	logger.Debug("code table", "table", res.Table.String(), "dump", res.Table.DebugString())

	if err := huffcrunch.WriteFile(outPath, res.Data); err != nil {
		return err
	}

	sidecarPath := outPath + huffcrunch.SidecarSuffix
	raw, err := huffcrunch.MarshalSidecar(res.Table, res.Data, res.SymbolCount)
	if err != nil {
		return err
	}
	if err := huffcrunch.WriteFile(sidecarPath, raw); err != nil {
		return err
	}

	logger.Info("compressed",
		"in", inPath,
		"out", outPath,
		"table", sidecarPath,
		"symbols", res.SymbolCount,
		"bytes", res.CompressedSize,
		"ratio", fmt.Sprintf("%.2f%%", res.Ratio()*100))
	return nil
}

func decompress(logger *slog.Logger, inPath, tablePath, outPath string) error {
	data, err := huffcrunch.ReadFile(inPath)
	if err != nil {
		return err
	}
	raw, err := huffcrunch.ReadFile(tablePath)
	if err != nil {
		return err
	}

	t, expected, err := huffcrunch.UnmarshalSidecar(raw, data)
	if err != nil {
		return err
	}
	logger.Debug("code table", "table", t.String(), "dump", t.DebugString())

	symbols, err := huffcrunch.DecompressCount(data, t, expected)
	if err != nil {
		return err
	}

	if err := huffcrunch.WriteFile(outPath, []byte(huffcrunch.StringFromSymbols(symbols))); err != nil {
		return err
	}

	logger.Info("decompressed",
		"in", inPath,
		"out", outPath,
		"bytes", len(data),
		"symbols", len(symbols))
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, huffcrunch.ErrEmptyInput):
		return "empty-input"
	case errors.Is(err, huffcrunch.ErrUnknownSymbol):
		return "unknown-symbol"
	case errors.Is(err, huffcrunch.ErrMalformedStream):
		return "malformed-stream"
	case errors.Is(err, huffcrunch.ErrIO):
		return "io"
	default:
		return "other"
	}
}

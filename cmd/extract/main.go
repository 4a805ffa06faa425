// Command extract runs question extraction on a local PDF without the server.
// Usage: go run ./cmd/extract <file.pdf> [-format json|csv|xlsx] [-out path]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"examparse/internal/domain"
	"examparse/internal/export"
	"examparse/internal/extract"
	"examparse/internal/pdftext"
)

type options struct {
	pdfPath string
	format  string
	out     string
	anchor  extract.AnchorMode
	verbose bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags accepts flags before or after the PDF path.
func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: extract <file.pdf> [flags]\n")
		fs.PrintDefaults()
	}
	format := fs.String("format", "json", "Output format: json, csv or xlsx")
	out := fs.String("out", "", "Output file (default stdout; required for xlsx)")
	anchor := fs.String("anchor", string(extract.AnchorSearch), "Question anchoring: search or offset")
	verbose := fs.Bool("v", false, "Log pipeline warnings to stderr")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	var positional []string
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return options{}, err
		}
	}
	if len(positional) != 1 {
		fs.Usage()
		return options{}, fmt.Errorf("expected exactly one pdf path")
	}

	mode, err := extract.ParseAnchorMode(*anchor)
	if err != nil {
		return options{}, err
	}
	switch *format {
	case "json", string(domain.ExportFormatCSV):
	case string(domain.ExportFormatXLSX):
		if *out == "" {
			return options{}, fmt.Errorf("xlsx output needs -out")
		}
	default:
		return options{}, fmt.Errorf("unknown format %q", *format)
	}

	return options{
		pdfPath: positional[0],
		format:  *format,
		out:     *out,
		anchor:  mode,
		verbose: *verbose,
	}, nil
}

func run(opts options) error {
	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeline := extract.New(extract.Config{
		Opener:     pdftext.NewOpener(),
		AnchorMode: opts.anchor,
		Logger:     log,
	})
	res, err := pipeline.Process(ctx, opts.pdfPath)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return emit(w, opts, res)
}

func emit(w io.Writer, opts options, res *domain.ExtractionResult) error {
	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Questions)
	}

	file, err := export.Render(&domain.Extraction{
		OriginalName: filepath.Base(opts.pdfPath),
		Questions:    res.Questions,
	}, domain.ExportFormat(opts.format))
	if err != nil {
		return err
	}
	_, err = w.Write(file.Data)
	return err
}

// Command javalens is a thin wrapper around the core pipeline: it reads
// a batch config.Manifest, runs tokenize->parse->resolve->bind->extract,
// and prints the resulting usages and diagnostics one per line. Per
// spec.md §6 this wrapper is explicitly not part of the core API — it
// exists only to exercise it end-to-end, the role the teacher's own
// cmd/funxy plays relative to its internal/ packages.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/javalens/internal/config"
	"github.com/funvibe/javalens/internal/diagnostics"
	"github.com/funvibe/javalens/internal/extract"
	"github.com/funvibe/javalens/internal/pipeline"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: javalens <manifest.yaml>")
		os.Exit(2)
	}

	manifest, err := config.Load(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sources, err := readSources(manifest.Sources)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := pipeline.NewContext(sources...)
	ctx.TargetPath = manifest.TargetOrFirst()
	ctx.WildcardImportRoots = splitDottedPaths(manifest.WildcardImportRoots)

	result := pipeline.Standard().Run(ctx)

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	if result.Failed() {
		fmt.Fprintln(os.Stderr, result.FatalErr)
		os.Exit(1)
	}

	printDiagnostics(result.Diagnostics, color)
	printUsages(result.Extraction, color)
}

func splitDottedPaths(paths []string) [][]string {
	out := make([][]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, strings.Split(p, "."))
	}
	return out
}

func readSources(paths []string) ([]pipeline.Source, error) {
	sources := make([]pipeline.Source, 0, len(paths))
	for _, p := range paths {
		text, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", p, err)
		}
		sources = append(sources, pipeline.Source{Path: p, Text: string(text)})
	}
	return sources, nil
}

func printDiagnostics(bag *diagnostics.Bag, color bool) {
	for _, d := range bag.Items() {
		prefix := string(d.Code)
		if color {
			prefix = severityColor(d.Severity) + prefix + colorReset
		}
		fmt.Printf("%s %s:%d:%d: %s\n", prefix, d.File, d.Span.Line, d.Span.Column, d.Message)
	}
}

func printUsages(e *extract.Extraction, color bool) {
	for _, u := range e.Usages {
		dest := "<unresolved>"
		if color && u.DestinationOpt == nil {
			dest = colorRed + dest + colorReset
		}
		if u.DestinationOpt != nil {
			dest = fmt.Sprintf("%s:%d:%d", u.DestinationOpt.File, u.DestinationOpt.Pos.Line, u.DestinationOpt.Pos.Column)
		}
		fmt.Printf("%s:%d:%d -> %s\n", u.Loc.File, u.Loc.Pos.Line, u.Loc.Pos.Column, dest)
	}
}

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
)

func severityColor(sev diagnostics.Severity) string {
	switch sev {
	case diagnostics.SeverityError:
		return colorRed
	default:
		return colorYellow
	}
}

// Package main is the entry point for the nodeedit schema inspector.
//
// It loads document schema files (TOML, YAML or JSON), compiles them and
// prints the node and mark types they define. Without arguments it prints
// the built-in schema.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/config/loader"
	"github.com/dshills/nodeedit/internal/config/schemas"
	"github.com/dshills/nodeedit/internal/engine/model"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	logLevel    string
	quiet       bool
	showVersion bool
	files       []string
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "nodeedit %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid log level %q\n", opts.logLevel)
		return 2
	}
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(level)

	if len(opts.files) == 0 {
		schema, err := schemas.Default()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if !opts.quiet {
			printSchema(stdout, "<built-in>", schema)
		}
		return 0
	}

	status := 0
	for _, path := range opts.files {
		entry := log.WithField("path", path)
		entry.Debug("loading schema")
		schema, err := loader.LoadSchema(loader.DefaultFS(), path)
		if err != nil {
			entry.Debug("schema rejected")
			reportError(stderr, path, err)
			status = 1
			continue
		}
		entry.WithFields(logrus.Fields{
			"nodes": len(schema.NodeTypes()),
			"marks": len(schema.Spec.Marks),
		}).Debug("schema compiled")
		if opts.quiet {
			fmt.Fprintf(stdout, "%s: ok\n", path)
			continue
		}
		printSchema(stdout, path, schema)
	}
	return status
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("nodeedit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
	fs.BoolVar(&opts.quiet, "q", false, "Only report whether each schema compiles")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "nodeedit - document schema inspector\n\n")
		fmt.Fprintf(stderr, "Usage: nodeedit [options] [schema files...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  nodeedit                  Print the built-in schema\n")
		fmt.Fprintf(stderr, "  nodeedit schema.toml      Compile and print a schema file\n")
		fmt.Fprintf(stderr, "  nodeedit -q a.yaml b.json Check several schema files\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.files = fs.Args()
	return opts, nil
}

func reportError(w io.Writer, path string, err error) {
	var verrs *loader.ValidationErrors
	var perr *loader.ParseError
	switch {
	case errors.As(err, &verrs):
		fmt.Fprintf(w, "%s: invalid schema:\n", path)
		for _, e := range verrs.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	case errors.As(err, &perr):
		fmt.Fprintf(w, "%s\n", perr)
	default:
		fmt.Fprintf(w, "%s: %v\n", path, err)
	}
}

func printSchema(w io.Writer, source string, schema *model.Schema) {
	fmt.Fprintf(w, "# %s (top node %s)\n", source, schema.TopNode.Name)
	for _, nt := range schema.NodeTypes() {
		var flags []string
		if nt.Inline {
			flags = append(flags, "inline")
		}
		if nt.IsTextblock() {
			flags = append(flags, "textblock")
		}
		if nt.IsAtom() {
			flags = append(flags, "atom")
		}
		if !nt.Selectable {
			flags = append(flags, "unselectable")
		}
		content := nt.ContentExpr()
		if content == "" {
			content = "-"
		}
		fmt.Fprintf(w, "node %-16s content=%-28s groups=%s", nt.Name, content, strings.Join(nt.Groups, ","))
		if len(flags) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(flags, " "))
		}
		fmt.Fprintln(w)
	}
	for _, ms := range schema.Spec.Marks {
		fmt.Fprintf(w, "mark %s\n", ms.Name)
	}
}

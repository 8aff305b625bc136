package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mixlang/mixgen/internal/config"
	"github.com/mixlang/mixgen/internal/frontend/gosrc"
	"github.com/mixlang/mixgen/internal/pipeline"
)

func supportsColor() bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func red(s string) string {
	if !supportsColor() {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <manifest.yaml>\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("MIXGEN_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	var (
		outPath string
		workDir string
		goPkgs  []string
	)
	flag.Usage = usage
	flag.StringVar(&outPath, "o", "", "write generated source to this file instead of stdout")
	flag.StringVar(&workDir, "dir", ".", "working directory for Go package inspection")
	flag.Func("pkg", "Go package pattern to inspect for types (repeatable)", func(v string) error {
		goPkgs = append(goPkgs, v)
		return nil
	})
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	p := pipeline.New(
		&pipeline.ManifestProcessor{},
		&gosrc.Processor{WorkDir: workDir, Packages: goPkgs},
		&pipeline.ComposeProcessor{},
	)
	ctx := p.Run(pipeline.NewPipelineContext(flag.Arg(0)))

	for _, note := range ctx.Notes {
		fmt.Fprintln(os.Stderr, note)
	}

	if len(ctx.Errors) > 0 {
		fmt.Fprintln(os.Stderr, "Composition failed with errors:")
		for _, err := range ctx.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", red(err.Error()))
		}
		os.Exit(1)
	}

	var out strings.Builder
	for i, res := range ctx.Results {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(res.Source)
		if !strings.HasSuffix(res.Source, "\n") {
			out.WriteString("\n")
		}
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(out.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", outPath, err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(out.String())
}

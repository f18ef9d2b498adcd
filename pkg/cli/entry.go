// Package cli implements the tmc command-line entry point: argument
// parsing, stdin/file input selection, and dispatch into the
// compilation pipeline, grounded on the teacher's pkg/cli/entry.go
// os.Args-driven dispatch shape (a sequence of handleXxx() bool
// checks tried in order from Run), trimmed down to tmc's flag set.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/tmc/internal/config"
	"github.com/funvibe/tmc/internal/exporter/awmorp"
	"github.com/funvibe/tmc/internal/machinebin"
	"github.com/funvibe/tmc/internal/pipeline"
	"github.com/funvibe/tmc/internal/prettyprinter"
	"github.com/funvibe/tmc/internal/tmcconfig"
)

// Flags holds the parsed command-line arguments for a single run.
type Flags struct {
	Path       string
	Stdin      bool
	Alphabet   []string
	Format     string
	Tokens     bool
	Parser     bool
	Annotated  bool
	Simplified bool
}

func handleVersion(args []string) bool {
	if len(args) == 2 && (args[1] == "-v" || args[1] == "-version" || args[1] == "--version") {
		fmt.Println("tmc " + config.Version)
		return true
	}
	return false
}

func handleHelp(args []string) bool {
	if len(args) == 2 && (args[1] == "-h" || args[1] == "-help" || args[1] == "--help") {
		printUsage()
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: tmc [path] [flags]

  --stdin              read source from standard input instead of a file
  --alphabet a,b,c     tape alphabet used to expand 'any' patterns
  --format FORMAT      export format: awmorp (default) or binary
  --tokens             dump the token stream and exit
  --parser             dump the parsed AST and exit
  --annotated          dump the type/ownership-annotated AST and exit
  --simplified         dump the fully simplified AST and exit`)
}

func parseFlags(args []string) (Flags, error) {
	f := Flags{Format: tmcconfig.FormatAwmorp}

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--stdin":
			f.Stdin = true
		case arg == "--tokens":
			f.Tokens = true
		case arg == "--parser":
			f.Parser = true
		case arg == "--annotated":
			f.Annotated = true
		case arg == "--simplified":
			f.Simplified = true
		case arg == "--alphabet":
			if i+1 >= len(args) {
				return f, fmt.Errorf("--alphabet requires a value")
			}
			i++
			f.Alphabet = strings.Split(args[i], ",")
		case strings.HasPrefix(arg, "--alphabet="):
			f.Alphabet = strings.Split(strings.TrimPrefix(arg, "--alphabet="), ",")
		case arg == "--format":
			if i+1 >= len(args) {
				return f, fmt.Errorf("--format requires a value")
			}
			i++
			f.Format = args[i]
		case strings.HasPrefix(arg, "--format="):
			f.Format = strings.TrimPrefix(arg, "--format=")
		case strings.HasPrefix(arg, "-"):
			return f, fmt.Errorf("unrecognized flag %q", arg)
		default:
			if f.Path != "" {
				return f, fmt.Errorf("unexpected extra argument %q", arg)
			}
			f.Path = arg
		}
	}

	if f.Format != tmcconfig.FormatAwmorp && f.Format != tmcconfig.FormatBinary {
		return f, fmt.Errorf("--format must be %q or %q", tmcconfig.FormatAwmorp, tmcconfig.FormatBinary)
	}
	return f, nil
}

func readSource(f Flags) (src, dir, name string, err error) {
	if f.Stdin || (f.Path == "" && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", "", fmt.Errorf("reading stdin: %w", err)
		}
		wd, _ := os.Getwd()
		return string(data), wd, "stdin", nil
	}
	if f.Path == "" {
		return "", "", "", fmt.Errorf("no input: pass a file path, use --stdin, or pipe source in")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", "", "", fmt.Errorf("reading %s: %w", f.Path, err)
	}
	dir = filepath.Dir(f.Path)
	name = config.TrimSourceExt(filepath.Base(f.Path))
	return string(data), dir, name, nil
}

func resolveAlphabet(f Flags, dir string) []string {
	if len(f.Alphabet) > 0 {
		return f.Alphabet
	}
	if path, err := tmcconfig.FindConfig(dir); err == nil && path != "" {
		if cfg, err := tmcconfig.LoadConfig(path); err == nil && len(cfg.Alphabet) > 0 {
			return cfg.Alphabet
		}
	}
	return nil
}

// Run is the tmc binary's entry point.
func Run() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	args := os.Args
	if handleVersion(args) || handleHelp(args) {
		return
	}

	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		os.Exit(2)
	}

	src, dir, name, err := readSource(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	runID := uuid.NewString()
	alphabet := resolveAlphabet(flags, dir)

	res, cerr := pipeline.Compile(src, dir, name, pipeline.Options{Alphabet: alphabet})

	if flags.Tokens {
		for _, t := range res.Tokens {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, t.String())
		}
		return
	}
	if flags.Parser && res.Parsed.Node != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, prettyprinter.PrintExp(res.Parsed))
		return
	}
	if flags.Annotated && res.Annotated.Node != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, prettyprinter.PrintExp(res.Annotated))
		return
	}
	if flags.Simplified && res.PostSimplified.Node != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, prettyprinter.PrintExp(res.PostSimplified))
		return
	}

	if cerr != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, cerr.Error())
		os.Exit(1)
	}

	switch flags.Format {
	case tmcconfig.FormatBinary:
		data, err := machinebin.Encode(res.Machine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] export failed: %s\n", runID, err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	default:
		out, err := awmorp.Export(res.Machine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] export failed: %s\n", runID, err)
			os.Exit(1)
		}
		fmt.Print(out)
	}
}

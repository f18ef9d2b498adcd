// Package pipeline orchestrates the tmc compilation stages: lexing,
// parsing, simplification, type checking, ownership checking, union
// resolution, a second simplification pass, and machine generation.
// Grounded on the teacher's internal/pipeline sequencing shape, but
// replacing its "continue on errors to collect diagnostics" LSP-driven
// policy with first-error-wins, since a batch compiler has no partial
// client to keep serving once a stage fails.
package pipeline

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/diagnostics"
	"github.com/funvibe/tmc/internal/lexer"
	"github.com/funvibe/tmc/internal/machine"
	"github.com/funvibe/tmc/internal/ownership"
	"github.com/funvibe/tmc/internal/parser"
	"github.com/funvibe/tmc/internal/simplify"
	"github.com/funvibe/tmc/internal/token"
	"github.com/funvibe/tmc/internal/typesystem"
	"github.com/funvibe/tmc/internal/unionresolve"
)

// Options configures a single compilation run.
type Options struct {
	// Alphabet is the tape alphabet used to expand `any` patterns.
	Alphabet []string
	// Importer resolves `import 'name'` statements before falling
	// back to relative filesystem lookup; nil disables it.
	Importer lexer.Importer
}

// Result carries every intermediate artifact a compilation produced,
// so the CLI's debug-dump flags can render any stage without
// recompiling.
type Result struct {
	Tokens         []token.Token
	Parsed         ast.Exp
	PreSimplified  ast.Exp
	Annotated      ast.Exp
	PostSimplified ast.Exp
	Machine        *machine.Machine
}

// Compile runs every stage in order, stopping at the first error.
func Compile(src, dir, name string, opts Options) (*Result, *diagnostics.CompileError) {
	res := &Result{}

	toks, err := lexer.Tokenize(src, dir, name, opts.Importer)
	if err != nil {
		return res, err
	}
	res.Tokens = toks

	parsed, err := parser.Parse(toks)
	if err != nil {
		return res, err
	}
	res.Parsed = parsed

	cfg := simplify.Config{Alphabet: opts.Alphabet}
	res.PreSimplified = simplify.Run(parsed, cfg)

	checked, err := typesystem.Check(res.PreSimplified)
	if err != nil {
		return res, err
	}

	if err := ownership.Check(checked); err != nil {
		return res, err
	}

	resolved := unionresolve.Resolve(checked)
	res.Annotated = resolved

	res.PostSimplified = simplify.Run(resolved, cfg)

	res.Machine = machine.Generate(res.PostSimplified)

	return res, nil
}

// Package diagnostics carries the compiler's structured, phase-tagged
// errors. Every stage of the pipeline reports failures as a *CompileError
// rather than a bare error string, so the CLI can print a uniform
// "file: [phase] error at line:col [CODE]: message" line regardless of
// which stage produced it.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/tmc/internal/token"
)

// Phase names the pipeline stage an error originated in.
type Phase string

const (
	PhaseLexer     Phase = "lexer"
	PhaseParser    Phase = "parser"
	PhaseType      Phase = "type"
	PhaseOwnership Phase = "ownership"
	PhaseUnion     Phase = "union"
	PhaseSimplify  Phase = "simplify"
	PhaseGenerate  Phase = "generate"
	PhaseExport    Phase = "export"
	PhaseConfig    Phase = "config"
)

// ErrorCode is a short, stable identifier for a specific kind of failure,
// independent of its rendered message (spec.md §7's error kinds).
type ErrorCode string

const (
	ErrLexUnterminatedSymbol ErrorCode = "L001"
	ErrLexInvalidChar        ErrorCode = "L002"
	ErrLexReservedSymbolChar ErrorCode = "L003"

	ErrParseUnexpectedToken ErrorCode = "P001"
	ErrParseExpectedToken   ErrorCode = "P002"
	ErrParseUnresolvedImport ErrorCode = "P003"

	ErrTypeUndefinedIdentifier ErrorCode = "T001"
	ErrTypeCastFailure         ErrorCode = "T002"
	ErrTypeUnresolved          ErrorCode = "T003"

	ErrOwnershipUseAfterMove ErrorCode = "O001"
	ErrOwnershipUnused       ErrorCode = "O002"
	ErrOwnershipBorrowEscape ErrorCode = "O003"

	ErrUnionAmbiguous ErrorCode = "U001"

	ErrExportReservedChar ErrorCode = "E001"
	ErrExportEmptyAlphabet ErrorCode = "E002"

	ErrConfigInvalid ErrorCode = "C001"
)

var templates = map[ErrorCode]string{
	ErrLexUnterminatedSymbol:  "unterminated symbol literal",
	ErrLexInvalidChar:         "invalid identifier %q",
	ErrLexReservedSymbolChar:  "symbol %q may not contain reserved characters ('_', ';', '*' or whitespace)",
	ErrParseUnexpectedToken:   "unexpected token %s",
	ErrParseExpectedToken:     "expected %s, found %s",
	ErrParseUnresolvedImport:  "cannot resolve import %q",
	ErrTypeUndefinedIdentifier: "undefined identifier %q",
	ErrTypeCastFailure:        "cannot cast %s to %s",
	ErrTypeUnresolved:         "could not resolve type of expression",
	ErrOwnershipUseAfterMove:  "tape %q used after being consumed",
	ErrOwnershipUnused:        "tape %q is never consumed",
	ErrOwnershipBorrowEscape:  "function taking a tape returns %s, neither a tape nor a symbol",
	ErrUnionAmbiguous:         "union type could not be resolved to Symbol or Union",
	ErrExportReservedChar:     "symbol %q is reserved in the awmorp export format",
	ErrExportEmptyAlphabet:    "declared alphabet is empty",
	ErrConfigInvalid:          "invalid configuration: %s",
}

// CompileError is the single error type returned by every pipeline stage.
type CompileError struct {
	Code  ErrorCode
	Phase Phase
	Args  []interface{}
	Loc   token.Location
	Hint  string
}

func New(phase Phase, code ErrorCode, loc token.Location, args ...interface{}) *CompileError {
	return &CompileError{Code: code, Phase: phase, Args: args, Loc: loc}
}

func (e *CompileError) WithHint(hint string) *CompileError {
	e.Hint = hint
	return e
}

func (e *CompileError) message() string {
	tmpl, ok := templates[e.Code]
	if !ok {
		return string(e.Code)
	}
	if len(e.Args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, e.Args...)
}

func (e *CompileError) Error() string {
	s := fmt.Sprintf("%s: [%s] error at %d:%d [%s]: %s",
		e.Loc.Source, e.Phase, e.Loc.Line, e.Loc.Column, e.Code, e.message())
	if e.Hint != "" {
		s += " (" + e.Hint + ")"
	}
	return s
}

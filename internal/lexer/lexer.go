// Package lexer tokenizes tape-language source text, grounded character-
// for-character in original_source's lexer.rs state machine. Imports are
// resolved and spliced in place during tokenization, exactly as the
// original does, first through the caller's Importer when one is given,
// then relative to the importing file's directory.
package lexer

import (
	"os"
	"path/filepath"
	"unicode"

	"github.com/funvibe/tmc/internal/diagnostics"
	"github.com/funvibe/tmc/internal/token"
)

var punctuation = map[rune]token.Type{
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	':': token.COLON,
	'>': token.ARROW,
	'=': token.EQUALS,
	',': token.COMMA,
	'|': token.PIPE,
	'@': token.AT,
}

// Importer resolves an import path to source text; the lexer consults it
// before falling back to the filesystem.
type Importer interface {
	Resolve(path, fromDir string) (src string, dir string, ok bool)
}

type state struct {
	dir        string
	importName string
	importer   Importer

	toks []token.Token
	loc  token.Location
	acc  []rune

	inQuotes  bool
	isImport  bool
	isComment bool
}

// Tokenize converts src into a token stream. dir is the directory used
// to resolve relative imports (empty for stdin input); importName
// labels the produced tokens' Source field.
func Tokenize(src, dir, importName string, importer Importer) ([]token.Token, *diagnostics.CompileError) {
	s := &state{
		dir:        dir,
		importName: importName,
		importer:   importer,
		loc:        token.Location{Source: importName, Line: 1, Column: 1},
	}
	for _, r := range src {
		if err := s.push(r); err != nil {
			return nil, err
		}
	}
	if err := s.consume(); err != nil {
		return nil, err
	}
	return s.toks, nil
}

func (s *state) push(r rune) *diagnostics.CompileError {
	switch {
	case s.isComment:
		if r == '\n' {
			s.isComment = false
			s.loc.Line++
			s.loc.Column = 1
		}
		return nil

	case s.inQuotes:
		if r == '\'' {
			if s.isImport {
				if err := s.doImport(string(s.acc)); err != nil {
					return err
				}
				s.isImport = false
			} else {
				sym := string(s.acc)
				s.pushTok(token.Token{Type: token.SYMBOL, Lexeme: sym, Literal: sym})
			}
			s.inQuotes = false
			s.loc.Column += len(s.acc) + 2
			s.acc = nil
			return nil
		}
		if r == '\n' {
			return diagnostics.New(diagnostics.PhaseLexer, diagnostics.ErrLexUnterminatedSymbol, s.loc)
		}
		s.acc = append(s.acc, r)
		return nil

	case r == '\'':
		if err := s.consume(); err != nil {
			return err
		}
		s.inQuotes = true
		return nil

	case r == '#':
		s.isComment = true
		return nil

	case unicode.IsSpace(r):
		if err := s.consume(); err != nil {
			return err
		}
		if r == '\n' {
			s.loc.Line++
			s.loc.Column = 1
		} else {
			s.loc.Column++
		}
		return nil

	default:
		if t, ok := punctuation[r]; ok {
			if err := s.consume(); err != nil {
				return err
			}
			s.pushTok(token.Token{Type: t, Lexeme: string(r)})
			s.loc.Column++
			return nil
		}
		s.acc = append(s.acc, r)
		return nil
	}
}

func (s *state) consume() *diagnostics.CompileError {
	if len(s.acc) == 0 {
		return nil
	}
	word := string(s.acc)

	switch {
	case s.isImport:
		return diagnostics.New(diagnostics.PhaseLexer, diagnostics.ErrParseUnresolvedImport, s.loc, word)
	case word == "import":
		s.isImport = true
	default:
		if kw, ok := token.LookupKeyword(word); ok {
			s.pushTok(token.Token{Type: kw, Lexeme: word})
		} else if isValidIdentifier(word) {
			s.pushTok(token.Token{Type: token.IDENTIFIER, Lexeme: word, Literal: word})
		} else {
			return diagnostics.New(diagnostics.PhaseLexer, diagnostics.ErrLexInvalidChar, s.loc, word)
		}
	}

	s.loc.Column += len(s.acc)
	s.acc = nil
	return nil
}

func (s *state) pushTok(t token.Token) {
	t.Loc = s.loc
	s.toks = append(s.toks, t)
}

func (s *state) doImport(path string) *diagnostics.CompileError {
	if s.importer != nil {
		if src, dir, ok := s.importer.Resolve(path, s.dir); ok {
			toks, err := Tokenize(src, dir, path, s.importer)
			if err != nil {
				return err
			}
			s.toks = append(s.toks, toks...)
			return nil
		}
	}
	if s.dir != "" {
		full := filepath.Join(s.dir, path)
		if data, readErr := os.ReadFile(full); readErr == nil {
			toks, err := Tokenize(string(data), filepath.Dir(full), path, s.importer)
			if err != nil {
				return err
			}
			s.toks = append(s.toks, toks...)
			return nil
		}
	}
	return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrParseUnresolvedImport, s.loc, path)
}

func isValidIdentifier(id string) bool {
	if id == "_" {
		return true
	}
	r := []rune(id)
	if len(r) == 0 || !unicode.IsLetter(r[0]) {
		return false
	}
	for _, c := range r[1:] {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

// Package parser implements the tape-language's recursive-descent
// grammar, grounded line-for-line in original_source's parser.rs:
// three precedence layers (union, application, term) over a handful of
// term shapes (parenthesized expression, match, let, function,
// identifier, symbol).
package parser

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/diagnostics"
	"github.com/funvibe/tmc/internal/token"
)

type parser struct {
	toks []token.Token
	pos  int
}

// Parse converts a token stream into the root expression. The root
// expression must consume every token; anything left over is a parse
// error.
func Parse(toks []token.Token) (ast.Exp, *diagnostics.CompileError) {
	p := &parser{toks: toks}
	exp, ok, err := p.parseExp()
	if err != nil {
		return ast.Exp{}, err
	}
	if !ok {
		return ast.Exp{}, p.unexpected("expression (while parsing root expression)")
	}
	if p.pos != len(p.toks) {
		return ast.Exp{}, p.unexpected("EOF")
	}
	return exp, nil
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) loc() token.Location {
	if t, ok := p.peek(); ok {
		return t.Loc
	}
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Loc
	}
	return token.Location{}
}

func (p *parser) unexpected(ctx string) *diagnostics.CompileError {
	t, ok := p.peek()
	if !ok {
		return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrParseUnexpectedToken, p.loc(), "EOF ("+ctx+")")
	}
	return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrParseUnexpectedToken, t.Loc, string(t.Type)+" ("+ctx+")")
}

func (p *parser) acceptToken(t token.Type) (token.Location, bool) {
	tok, ok := p.peek()
	if !ok || tok.Type != t {
		return token.Location{}, false
	}
	p.pos++
	return tok.Loc, true
}

func (p *parser) expectToken(t token.Type, ctx string) (token.Location, *diagnostics.CompileError) {
	if loc, ok := p.acceptToken(t); ok {
		return loc, nil
	}
	return token.Location{}, p.unexpected("expected " + string(t) + " (" + ctx + ")")
}

func (p *parser) acceptIdentifier() (string, token.Location, bool) {
	tok, ok := p.peek()
	if !ok || tok.Type != token.IDENTIFIER {
		return "", token.Location{}, false
	}
	p.pos++
	return tok.Literal, tok.Loc, true
}

func (p *parser) expectIdentifier(ctx string) (string, token.Location, *diagnostics.CompileError) {
	if id, loc, ok := p.acceptIdentifier(); ok {
		return id, loc, nil
	}
	return "", token.Location{}, p.unexpected("expected identifier (" + ctx + ")")
}

// parseExp := parseApply ('|' parseExp)*  (right-nested union)
func (p *parser) parseExp() (ast.Exp, bool, *diagnostics.CompileError) {
	exp, ok, err := p.parseApply()
	if err != nil || !ok {
		return ast.Exp{}, ok, err
	}

	for {
		loc, ok := p.acceptToken(token.PIPE)
		if !ok {
			break
		}
		rhs, ok, err := p.parseExp()
		if err != nil {
			return ast.Exp{}, false, err
		}
		if !ok {
			return ast.Exp{}, false, p.unexpected("expression (while parsing union)")
		}
		exp = ast.New(ast.Union{LHS: exp, RHS: rhs}, loc)
	}

	return exp, true, nil
}

// parseApply := parseTerm parseTerm*  (left-associative application)
func (p *parser) parseApply() (ast.Exp, bool, *diagnostics.CompileError) {
	exp, ok, err := p.parseTerm()
	if err != nil || !ok {
		return ast.Exp{}, ok, err
	}

	for {
		start := p.pos
		arg, ok, err := p.parseTerm()
		if err != nil {
			return ast.Exp{}, false, err
		}
		if !ok {
			p.pos = start
			break
		}
		exp = ast.Exp{Node: ast.Application{Func: exp, Arg: arg}, Annot: exp.Annot}
	}

	return exp, true, nil
}

func (p *parser) parseTerm() (ast.Exp, bool, *diagnostics.CompileError) {
	if loc, ok := p.acceptToken(token.LPAREN); ok {
		exp, ok, err := p.parseExp()
		if err != nil {
			return ast.Exp{}, false, err
		}
		if !ok {
			return ast.Exp{}, false, p.unexpected("expression (while parsing parenthesis expression)")
		}
		if _, err := p.expectToken(token.RPAREN, "while parsing parenthesis expression"); err != nil {
			return ast.Exp{}, false, err
		}
		_ = loc
		return exp, true, nil
	}

	if exp, ok, err := p.parseMatch(); ok || err != nil {
		return exp, ok, err
	}
	if exp, ok, err := p.parseLet(); ok || err != nil {
		return exp, ok, err
	}
	if exp, ok, err := p.parseFunction(); ok || err != nil {
		return exp, ok, err
	}
	if exp, ok, err := p.parseIdentifier(); ok || err != nil {
		return exp, ok, err
	}
	return p.parseSymbol()
}

func (p *parser) parseMatch() (ast.Exp, bool, *diagnostics.CompileError) {
	loc, ok := p.acceptToken(token.MATCH)
	if !ok {
		return ast.Exp{}, false, nil
	}

	scrutinee, ok, err := p.parseExp()
	if err != nil {
		return ast.Exp{}, false, err
	}
	if !ok {
		return ast.Exp{}, false, p.unexpected("expression (while parsing match expression)")
	}

	if _, err := p.expectToken(token.LBRACE, "while parsing match expression"); err != nil {
		return ast.Exp{}, false, err
	}

	var arms []ast.Arm
	for {
		if _, ok := p.acceptToken(token.RBRACE); ok {
			break
		}

		var catchID *string
		start := p.pos
		if id, _, ok := p.acceptIdentifier(); ok {
			if _, ok := p.acceptToken(token.AT); ok {
				if id != "_" {
					name := id
					catchID = &name
				}
			} else {
				p.pos = start
			}
		}

		var pat ast.Pattern
		if _, ok := p.acceptToken(token.ANY); ok {
			pat = ast.Pattern{IsAny: true}
		} else {
			exp, ok, err := p.parseExp()
			if err != nil {
				return ast.Exp{}, false, err
			}
			if !ok {
				return ast.Exp{}, false, p.unexpected("expression (while parsing match pattern)")
			}
			pat = ast.Pattern{Union: exp}
		}

		if _, err := p.expectToken(token.ARROW, "while parsing match arm"); err != nil {
			return ast.Exp{}, false, err
		}
		body, ok, err := p.parseExp()
		if err != nil {
			return ast.Exp{}, false, err
		}
		if !ok {
			return ast.Exp{}, false, p.unexpected("expression (while parsing match arm)")
		}
		if _, err := p.expectToken(token.COMMA, "while parsing match arm"); err != nil {
			return ast.Exp{}, false, err
		}

		arms = append(arms, ast.Arm{CatchID: catchID, Pat: pat, Exp: body})
	}

	return ast.New(ast.Match{Exp: scrutinee, Arms: arms}, loc), true, nil
}

func (p *parser) parseLet() (ast.Exp, bool, *diagnostics.CompileError) {
	loc, ok := p.acceptToken(token.LET)
	if !ok {
		return ast.Exp{}, false, nil
	}

	var bindings []ast.Binding
	for {
		if _, ok := p.acceptToken(token.IN); ok {
			break
		}

		name, _, err := p.expectIdentifier("while parsing let expression")
		if err != nil {
			return ast.Exp{}, false, err
		}
		if _, err := p.expectToken(token.EQUALS, "while parsing let binding"); err != nil {
			return ast.Exp{}, false, err
		}
		val, ok, err := p.parseExp()
		if err != nil {
			return ast.Exp{}, false, err
		}
		if !ok {
			return ast.Exp{}, false, p.unexpected("expression (while parsing let binding)")
		}
		if _, err := p.expectToken(token.COMMA, "while parsing let expression"); err != nil {
			return ast.Exp{}, false, err
		}

		bindings = append(bindings, ast.Binding{Name: name, Value: val})
	}

	body, ok, err := p.parseExp()
	if err != nil {
		return ast.Exp{}, false, err
	}
	if !ok {
		return ast.Exp{}, false, p.unexpected("expression (while parsing let expression)")
	}

	return ast.New(ast.Let{Bindings: bindings, Body: body}, loc), true, nil
}

func (p *parser) parseFunction() (ast.Exp, bool, *diagnostics.CompileError) {
	start := p.pos
	arg, loc, ok := p.acceptIdentifier()
	if !ok {
		return ast.Exp{}, false, nil
	}
	if _, ok := p.acceptToken(token.COLON); !ok {
		p.pos = start
		return ast.Exp{}, false, nil
	}

	body, ok, err := p.parseExp()
	if err != nil {
		return ast.Exp{}, false, err
	}
	if !ok {
		return ast.Exp{}, false, p.unexpected("expression (while parsing function body)")
	}

	return ast.New(ast.Function{Arg: arg, Exp: body}, loc), true, nil
}

func (p *parser) parseIdentifier() (ast.Exp, bool, *diagnostics.CompileError) {
	id, loc, ok := p.acceptIdentifier()
	if !ok {
		return ast.Exp{}, false, nil
	}
	return ast.New(ast.Identifier{Name: id}, loc), true, nil
}

func (p *parser) parseSymbol() (ast.Exp, bool, *diagnostics.CompileError) {
	tok, ok := p.peek()
	if !ok || tok.Type != token.SYMBOL {
		return ast.Exp{}, false, nil
	}
	p.pos++
	return ast.New(ast.Symbol{Value: tok.Literal, Blank: tok.Literal == ""}, tok.Loc), true, nil
}

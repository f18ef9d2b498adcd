// Package prettyprinter renders AST and Machine values back to
// readable text for the CLI's debug-dump flags (--tokens, --parser,
// --annotated, --simplified), grounded on the teacher's CodePrinter:
// a bytes.Buffer-backed writer tracking indentation depth.
package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/machine"
)

// CodePrinter accumulates pretty-printed output with tracked indent.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

// NewCodePrinter returns an empty printer.
func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *CodePrinter) writeln(s string) {
	p.writeIndent()
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// String returns the accumulated output.
func (p *CodePrinter) String() string {
	return p.buf.String()
}

// PrintExp renders an AST expression as tmc source text.
func PrintExp(e ast.Exp) string {
	p := NewCodePrinter()
	p.exp(e)
	return p.String()
}

func (p *CodePrinter) exp(e ast.Exp) {
	switch n := e.Node.(type) {
	case ast.Identifier:
		p.inline(n.Name)
	case ast.Symbol:
		if n.Blank {
			p.inline("''")
		} else {
			p.inline(fmt.Sprintf("'%s'", n.Value))
		}
	case ast.Abort:
		p.inline("abort")
	case ast.Union:
		p.buf.WriteString(exprToString(n.LHS))
		p.buf.WriteString(" | ")
		p.buf.WriteString(exprToString(n.RHS))
	case ast.Match:
		p.buf.WriteString("match ")
		p.buf.WriteString(exprToString(n.Exp))
		p.buf.WriteString(" {\n")
		p.indent++
		for _, arm := range n.Arms {
			p.writeIndent()
			if arm.CatchID != nil {
				p.buf.WriteString(*arm.CatchID)
				p.buf.WriteString(" @ ")
			}
			if arm.Pat.IsAny {
				p.buf.WriteString("any")
			} else {
				p.buf.WriteString(exprToString(arm.Pat.Union))
			}
			p.buf.WriteString(" > ")
			p.buf.WriteString(exprToString(arm.Exp))
			p.buf.WriteString(",\n")
		}
		p.indent--
		p.writeIndent()
		p.buf.WriteString("}")
	case ast.Let:
		for _, b := range n.Bindings {
			p.writeIndent()
			fmt.Fprintf(&p.buf, "let %s = %s in\n", b.Name, exprToString(b.Value))
		}
		p.exp(n.Body)
	case ast.Function:
		fmt.Fprintf(&p.buf, "%s: %s", n.Arg, exprToString(n.Exp))
	case ast.Application:
		fmt.Fprintf(&p.buf, "%s %s", exprToString(n.Func), exprToString(n.Arg))
	default:
		p.inline(fmt.Sprintf("<%T>", n))
	}
}

func (p *CodePrinter) inline(s string) {
	p.buf.WriteString(s)
}

func exprToString(e ast.Exp) string {
	return PrintExp(e)
}

// PrintMachine renders a machine.Machine's states and transitions as
// a readable table, used by debug tooling that wants a human view
// instead of the awmorp export format.
func PrintMachine(m *machine.Machine) string {
	p := NewCodePrinter()
	p.writeln(fmt.Sprintf("states: %d", m.StateCount))
	for _, t := range m.Transitions {
		p.writeln(fmt.Sprintf("%s --[%s/%s, %s]--> %s",
			stateName(t.From.State), symName(t.From.Symbol), symName(t.To.Symbol), t.Dir, stateName(t.To.State)))
	}
	return p.String()
}

func stateName(s int) string {
	switch s {
	case 0:
		return "start"
	case 1:
		return "accept"
	case 2:
		return "reject"
	default:
		return fmt.Sprintf("s%d", s)
	}
}

func symName(s *string) string {
	if s == nil {
		return "*"
	}
	if *s == "" {
		return "_"
	}
	return *s
}

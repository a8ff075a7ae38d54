package format

import (
	"fmt"
	"strings"

	"github.com/dhamidi/pddlc/pddl/parser"
)

// ASTText dumps a parse tree one node per line, children indented,
// using the parser's visitor.
func ASTText(n parser.Node, showSpans bool) string {
	printer := &astPrinter{showSpans: showSpans}
	parser.Walk(n, printer)
	return printer.b.String()
}

type astPrinter struct {
	b         strings.Builder
	depth     int
	showSpans bool
}

func (p *astPrinter) Begin(n parser.Node) bool {
	p.b.WriteString(strings.Repeat("  ", p.depth))
	p.b.WriteString(nodeLabel(n))
	if p.showSpans {
		fmt.Fprintf(&p.b, " [%s]", n.NodeSpan())
	}
	p.b.WriteString("\n")
	p.depth++
	return true
}

func (p *astPrinter) End(parser.Node) bool {
	p.depth--
	return true
}

func nodeLabel(n parser.Node) string {
	switch node := n.(type) {
	case *parser.File:
		return "File"
	case *parser.Domain:
		return "Domain " + node.Name
	case *parser.Problem:
		return "Problem " + node.Name
	case *parser.Requirement:
		return "Requirement " + node.Name
	case *parser.TypedList:
		return "TypedList"
	case *parser.TypedGroup:
		return "TypedGroup"
	case *parser.Name:
		return "Name " + node.Value
	case *parser.PredicateDecl:
		return "PredicateDecl " + node.Name.Value
	case *parser.Action:
		return "Action " + node.Name.Value
	case *parser.AndExpr:
		return "And"
	case *parser.OrExpr:
		return "Or"
	case *parser.NotExpr:
		return "Not"
	case *parser.EqualExpr:
		return "Equal"
	case *parser.PredicateExpr:
		return "Predicate " + node.Name.Value
	case *parser.InitLiteral:
		if node.Negated {
			return "InitLiteral not"
		}
		return "InitLiteral"
	}
	return fmt.Sprintf("%T", n)
}

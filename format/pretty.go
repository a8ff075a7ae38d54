package format

import (
	"fmt"
	"strings"

	"github.com/dhamidi/pddlc/pddl/parser"
)

// PDDLText renders a parse tree back to PDDL source. Parsing the output
// yields a tree equal to the input up to source locations.
func PDDLText(file *parser.File) string {
	var b strings.Builder
	if file.Domain != nil {
		writeDomain(&b, file.Domain)
	}
	if file.Problem != nil {
		if file.Domain != nil {
			b.WriteString("\n")
		}
		writeProblem(&b, file.Problem)
	}
	return b.String()
}

func writeDomain(b *strings.Builder, d *parser.Domain) {
	fmt.Fprintf(b, "(define (domain %s)\n", d.Name)
	if len(d.Requirements) > 0 {
		b.WriteString("  (:requirements")
		for _, req := range d.Requirements {
			b.WriteString(" " + req.Name)
		}
		b.WriteString(")\n")
	}
	if d.Types != nil && len(d.Types.Groups) > 0 {
		fmt.Fprintf(b, "  (:types %s)\n", typedListString(d.Types))
	}
	if d.Constants != nil && len(d.Constants.Groups) > 0 {
		fmt.Fprintf(b, "  (:constants %s)\n", typedListString(d.Constants))
	}
	if len(d.Predicates) > 0 {
		b.WriteString("  (:predicates\n")
		for _, decl := range d.Predicates {
			b.WriteString("    (" + decl.Name.Value)
			if params := typedListString(decl.Params); params != "" {
				b.WriteString(" " + params)
			}
			b.WriteString(")\n")
		}
		b.WriteString("  )\n")
	}
	for _, action := range d.Actions {
		fmt.Fprintf(b, "  (:action %s\n", action.Name.Value)
		fmt.Fprintf(b, "    :parameters (%s)\n", typedListString(action.Params))
		if action.Precondition != nil {
			fmt.Fprintf(b, "    :precondition %s\n", exprString(action.Precondition))
		}
		if action.Effect != nil {
			fmt.Fprintf(b, "    :effect %s\n", exprString(action.Effect))
		}
		b.WriteString("  )\n")
	}
	b.WriteString(")\n")
}

func writeProblem(b *strings.Builder, p *parser.Problem) {
	fmt.Fprintf(b, "(define (problem %s)\n", p.Name)
	if p.DomainRef != "" {
		fmt.Fprintf(b, "  (:domain %s)\n", p.DomainRef)
	}
	if p.Objects != nil && len(p.Objects.Groups) > 0 {
		fmt.Fprintf(b, "  (:objects %s)\n", typedListString(p.Objects))
	}
	if len(p.Init) > 0 {
		b.WriteString("  (:init")
		for _, lit := range p.Init {
			b.WriteString(" " + initLiteralString(lit))
		}
		b.WriteString(")\n")
	}
	if p.Goal != nil {
		fmt.Fprintf(b, "  (:goal %s)\n", exprString(p.Goal))
	}
	b.WriteString(")\n")
}

// typedListString renders groups as `names - type`. An untyped group only
// ever appears last in a parsed list, so the rendering parses back into
// the same grouping.
func typedListString(list *parser.TypedList) string {
	if list == nil {
		return ""
	}
	var parts []string
	for _, group := range list.Groups {
		for _, name := range group.Names {
			parts = append(parts, name.Value)
		}
		if group.Type != nil {
			parts = append(parts, "-", group.Type.Value)
		}
	}
	return strings.Join(parts, " ")
}

func exprString(e parser.Expr) string {
	switch n := e.(type) {
	case *parser.AndExpr:
		return exprJunction("and", n.Args)
	case *parser.OrExpr:
		return exprJunction("or", n.Args)
	case *parser.NotExpr:
		return "(not " + exprString(n.Arg) + ")"
	case *parser.EqualExpr:
		return fmt.Sprintf("(= %s %s)", n.Left.Value, n.Right.Value)
	case *parser.PredicateExpr:
		var b strings.Builder
		b.WriteString("(" + n.Name.Value)
		for _, arg := range n.Args {
			b.WriteString(" " + arg.Value)
		}
		b.WriteString(")")
		return b.String()
	}
	return ""
}

func exprJunction(connective string, args []parser.Expr) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, connective)
	for _, arg := range args {
		parts = append(parts, exprString(arg))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func initLiteralString(lit *parser.InitLiteral) string {
	s := exprString(lit.Pred)
	if lit.Negated {
		return "(not " + s + ")"
	}
	return s
}

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/pddlc/pddl"
)

// TextEncoder writes the canonical textual dump of a problem: types
// indented under their parent, predicates with parameter types, actions
// with numbered parameters, and conditions as s-expressions. The output
// is deterministic and stable across runs.
type TextEncoder struct {
	w       io.Writer
	problem *pddl.Problem
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(problem *pddl.Problem) error {
	e.problem = problem
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	if e.problem == nil {
		return nil, fmt.Errorf("no problem to encode")
	}
	var b strings.Builder
	p := e.problem

	fmt.Fprintf(&b, "domain %s\n", p.DomainName)
	fmt.Fprintf(&b, "problem %s\n", p.ProblemName)
	if len(p.Requirements) > 0 {
		fmt.Fprintf(&b, "requirements %s\n", strings.Join(p.Requirements, " "))
	}

	b.WriteString("\ntypes\n")
	e.writeTypeTree(&b, 0, 1)

	if len(p.Constants) > 0 {
		b.WriteString("\nconstants\n")
		for _, constant := range p.Constants {
			fmt.Fprintf(&b, "  %s - %s\n", constant.Name, p.Types[constant.Type].Name)
		}
	}

	if len(p.Predicates) > 0 {
		b.WriteString("\npredicates\n")
		for _, pred := range p.Predicates {
			b.WriteString("  (" + pred.Name)
			for _, t := range pred.Params {
				b.WriteString(" " + p.Types[t].Name)
			}
			b.WriteString(")\n")
		}
	}

	for _, action := range p.Actions {
		fmt.Fprintf(&b, "\naction %s\n", action.Name)
		b.WriteString("  parameters\n")
		for i, param := range action.Params {
			fmt.Fprintf(&b, "    %d: %s - %s\n", i, param.Name, p.Types[param.Type].Name)
		}
		b.WriteString("  preconditions\n")
		for _, eval := range action.Preconditions {
			fmt.Fprintf(&b, "    %s\n", e.evalString(eval, action.Params))
		}
		b.WriteString("  effects\n")
		for _, eval := range action.Effects {
			fmt.Fprintf(&b, "    %s\n", e.evalString(eval, action.Params))
		}
	}

	if len(p.Init) > 0 {
		b.WriteString("\ninit\n")
		for _, eval := range p.Init {
			fmt.Fprintf(&b, "  %s\n", e.evalString(eval, nil))
		}
	}

	b.WriteString("\ngoal\n")
	fmt.Fprintf(&b, "  %s\n", e.conditionString(p.Goal, nil))

	return []byte(b.String()), nil
}

// writeTypeTree prints the subtree of types whose parent is root,
// skipping the root's self-parent loop.
func (e *TextEncoder) writeTypeTree(b *strings.Builder, root pddl.TypeIndex, depth int) {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), e.problem.Types[root].Name)
	for i, t := range e.problem.Types {
		if pddl.TypeIndex(i) != root && t.Parent == root {
			e.writeTypeTree(b, pddl.TypeIndex(i), depth+1)
		}
	}
}

func (e *TextEncoder) evalString(eval pddl.PredicateEvaluation, params []pddl.Parameter) string {
	var b strings.Builder
	if eval.Negated {
		b.WriteString("(not ")
	}
	b.WriteString("(" + e.problem.Predicates[eval.Predicate].Name)
	for _, arg := range eval.Args {
		switch arg.Kind {
		case pddl.ArgConstant:
			b.WriteString(" " + e.problem.Constants[arg.Index].Name)
		case pddl.ArgParameter:
			b.WriteString(" " + params[arg.Index].Name)
		}
	}
	b.WriteString(")")
	if eval.Negated {
		b.WriteString(")")
	}
	return b.String()
}

func (e *TextEncoder) conditionString(c pddl.Condition, params []pddl.Parameter) string {
	switch n := c.(type) {
	case nil:
		return "(and)"
	case pddl.TrivialTrue:
		return "(and)"
	case pddl.TrivialFalse:
		return "(or)"
	case pddl.Literal:
		return e.evalString(n.Eval, params)
	case pddl.And:
		return e.junctionString("and", n.Args, params)
	case pddl.Or:
		return e.junctionString("or", n.Args, params)
	}
	return ""
}

func (e *TextEncoder) junctionString(connective string, args []pddl.Condition, params []pddl.Parameter) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, connective)
	for _, arg := range args {
		parts = append(parts, e.conditionString(arg, params))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Package ground expands a normalized problem into propositional form:
// ground atoms, ground actions, and a bounded-horizon CNF encoding in
// DIMACS format.
package ground

import (
	"fmt"
	"strings"

	"github.com/dhamidi/pddlc/pddl"
)

// Atom is one ground predicate application.
type Atom struct {
	Predicate pddl.PredicateIndex
	Args      []pddl.ConstantIndex
}

// Lit is a signed reference to an atom: index+1, negative when negated.
type Lit int

func (l Lit) Atom() int     { return abs(int(l)) - 1 }
func (l Lit) Negated() bool { return l < 0 }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Action is a ground action instance.
type Action struct {
	Name string
	Pre  []Lit
	Eff  []Lit
}

// Grounding holds the propositional expansion of a problem.
type Grounding struct {
	Problem *pddl.Problem
	Atoms   []Atom
	Actions []Action

	// Init lists the atoms true initially; closed world, everything
	// else is false. Goal holds the goal's DNF: each element is one
	// conjunction of literals, any of which satisfies the goal.
	Init []int
	Goal [][]Lit

	atomIndex map[string]int
}

// Ground enumerates all well-typed bindings of every action over the
// problem's constant buckets.
func Ground(problem *pddl.Problem) (*Grounding, error) {
	g := &Grounding{
		Problem:   problem,
		atomIndex: map[string]int{},
	}

	for _, eval := range problem.Init {
		if eval.Negated {
			// Closed world: negated init literals add nothing.
			continue
		}
		lit, err := g.internEval(eval, nil)
		if err != nil {
			return nil, err
		}
		g.Init = append(g.Init, lit.Atom())
	}

	for _, action := range problem.Actions {
		binding := make([]pddl.ConstantIndex, len(action.Params))
		if err := g.bind(action, binding, 0); err != nil {
			return nil, err
		}
	}

	if err := g.groundGoal(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grounding) bind(action pddl.Action, binding []pddl.ConstantIndex, param int) error {
	if param == len(binding) {
		return g.emit(action, binding)
	}
	bucket := g.Problem.Buckets[action.Params[param].Type]
	for _, constant := range bucket {
		binding[param] = constant
		if err := g.bind(action, binding, param+1); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grounding) emit(action pddl.Action, binding []pddl.ConstantIndex) error {
	out := Action{Name: g.actionName(action, binding)}
	for _, eval := range action.Preconditions {
		lit, err := g.internEval(eval, binding)
		if err != nil {
			return err
		}
		// A binding requiring an atom both ways is unreachable.
		for _, prev := range out.Pre {
			if prev == -lit {
				return nil
			}
		}
		out.Pre = append(out.Pre, lit)
	}
	for _, eval := range action.Effects {
		lit, err := g.internEval(eval, binding)
		if err != nil {
			return err
		}
		out.Eff = append(out.Eff, lit)
	}
	g.Actions = append(g.Actions, out)
	return nil
}

func (g *Grounding) groundGoal() error {
	if g.Problem.GoalLiterals != nil {
		conjunct, err := g.internConjunct(g.Problem.GoalLiterals)
		if err != nil {
			return err
		}
		g.Goal = [][]Lit{conjunct}
		return nil
	}
	switch g.Problem.Goal.(type) {
	case pddl.TrivialTrue:
		// An empty conjunct is trivially satisfied.
		g.Goal = [][]Lit{{}}
		return nil
	case pddl.TrivialFalse:
		g.Goal = nil
		return nil
	}
	or, ok := g.Problem.Goal.(pddl.Or)
	if !ok {
		return fmt.Errorf("ground goal: unexpected condition %T", g.Problem.Goal)
	}
	for _, disjunct := range or.Args {
		var evals []pddl.PredicateEvaluation
		switch n := disjunct.(type) {
		case pddl.Literal:
			evals = []pddl.PredicateEvaluation{n.Eval}
		case pddl.And:
			for _, arg := range n.Args {
				lit, ok := arg.(pddl.Literal)
				if !ok {
					return fmt.Errorf("ground goal: disjunct is not a conjunction of literals")
				}
				evals = append(evals, lit.Eval)
			}
		default:
			return fmt.Errorf("ground goal: unexpected disjunct %T", disjunct)
		}
		conjunct, err := g.internConjunct(evals)
		if err != nil {
			return err
		}
		g.Goal = append(g.Goal, conjunct)
	}
	return nil
}

func (g *Grounding) internConjunct(evals []pddl.PredicateEvaluation) ([]Lit, error) {
	out := make([]Lit, 0, len(evals))
	for _, eval := range evals {
		lit, err := g.internEval(eval, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, nil
}

// internEval resolves an evaluation's arguments under the binding and
// interns the resulting atom.
func (g *Grounding) internEval(eval pddl.PredicateEvaluation, binding []pddl.ConstantIndex) (Lit, error) {
	atom := Atom{Predicate: eval.Predicate}
	for _, arg := range eval.Args {
		switch arg.Kind {
		case pddl.ArgConstant:
			atom.Args = append(atom.Args, pddl.ConstantIndex(arg.Index))
		case pddl.ArgParameter:
			if binding == nil {
				return 0, fmt.Errorf("unbound parameter in ground context")
			}
			atom.Args = append(atom.Args, binding[arg.Index])
		}
	}

	key := atomKey(atom)
	idx, ok := g.atomIndex[key]
	if !ok {
		idx = len(g.Atoms)
		g.atomIndex[key] = idx
		g.Atoms = append(g.Atoms, atom)
	}
	lit := Lit(idx + 1)
	if eval.Negated {
		lit = -lit
	}
	return lit, nil
}

func atomKey(atom Atom) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", atom.Predicate)
	for _, arg := range atom.Args {
		fmt.Fprintf(&b, " %d", arg)
	}
	return b.String()
}

// AtomName renders an atom as `pred(arg, ...)` for comments and tests.
func (g *Grounding) AtomName(idx int) string {
	atom := g.Atoms[idx]
	var b strings.Builder
	b.WriteString(g.Problem.Predicates[atom.Predicate].Name)
	b.WriteString("(")
	for i, arg := range atom.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.Problem.Constants[arg].Name)
	}
	b.WriteString(")")
	return b.String()
}

func (g *Grounding) actionName(action pddl.Action, binding []pddl.ConstantIndex) string {
	var b strings.Builder
	b.WriteString(action.Name)
	b.WriteString("(")
	for i, constant := range binding {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.Problem.Constants[constant].Name)
	}
	b.WriteString(")")
	return b.String()
}

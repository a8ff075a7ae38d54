package pddl

import "fmt"

// NormalizeCondition rewrites a condition into disjunctive normal form:
// nested junctions of the same connective are flattened, trivial children
// absorbed, empty and single-child junctions eliminated, and conjunctions
// distributed over their first disjunctive child until none remain. The
// rewrite is idempotent. DNF can blow up exponentially; no attempt is
// made to bound it.
func NormalizeCondition(c Condition) Condition {
	switch n := c.(type) {
	case And:
		return normalizeAnd(n)
	case Or:
		return normalizeOr(n)
	default:
		return c
	}
}

func normalizeAnd(n And) Condition {
	args := make([]Condition, 0, len(n.Args))
	for _, arg := range n.Args {
		switch norm := NormalizeCondition(arg).(type) {
		case TrivialTrue:
			// dropped
		case TrivialFalse:
			return TrivialFalse{}
		case And:
			args = append(args, norm.Args...)
		default:
			args = append(args, norm)
		}
	}

	switch len(args) {
	case 0:
		return TrivialTrue{}
	case 1:
		return args[0]
	}

	for i, arg := range args {
		or, ok := arg.(Or)
		if !ok {
			continue
		}
		// Distribute over the first disjunctive child: each disjunct
		// replaces the Or at its position inside a copy of the And.
		out := Or{Args: make([]Condition, 0, len(or.Args))}
		for _, disjunct := range or.Args {
			inner := make([]Condition, len(args))
			copy(inner, args)
			inner[i] = disjunct
			out.Args = append(out.Args, And{Args: inner})
		}
		return NormalizeCondition(out)
	}
	return And{Args: args}
}

func normalizeOr(n Or) Condition {
	args := make([]Condition, 0, len(n.Args))
	for _, arg := range n.Args {
		switch norm := NormalizeCondition(arg).(type) {
		case TrivialFalse:
			// dropped
		case TrivialTrue:
			return TrivialTrue{}
		case Or:
			args = append(args, norm.Args...)
		default:
			args = append(args, norm)
		}
	}

	switch len(args) {
	case 0:
		return TrivialFalse{}
	case 1:
		return args[0]
	}
	return Or{Args: args}
}

// toList flattens one DNF conjunct to its literals: a top-level And is
// stripped, a bare literal yields itself, TrivialTrue yields nothing.
func toList(c Condition) ([]PredicateEvaluation, error) {
	switch n := c.(type) {
	case TrivialTrue:
		return nil, nil
	case Literal:
		return []PredicateEvaluation{n.Eval}, nil
	case And:
		out := make([]PredicateEvaluation, 0, len(n.Args))
		for _, arg := range n.Args {
			lit, ok := arg.(Literal)
			if !ok {
				return nil, &NormalizerError{Message: fmt.Sprintf("conjunct is not a literal: %T", arg)}
			}
			out = append(out, lit.Eval)
		}
		return out, nil
	}
	return nil, &NormalizerError{Message: fmt.Sprintf("condition is not a conjunct: %T", c)}
}

// Normalize seals an abstract problem into its normalized form: every
// action's precondition and effect in DNF, actions with disjunctive
// preconditions split into one action per disjunct, unreachable and
// effect-free actions dropped, the goal flattened on the conjunctive
// branch, and constants bucketed per type.
func Normalize(abstract *AbstractProblem) (*Problem, error) {
	problem := &Problem{
		DomainName:   abstract.DomainName,
		ProblemName:  abstract.ProblemName,
		Requirements: abstract.Requirements,
		Types:        abstract.Types,
		Constants:    abstract.Constants,
		Predicates:   abstract.Predicates,
		Init:         abstract.Init,
	}

	for _, action := range abstract.Actions {
		split, err := normalizeAction(action)
		if err != nil {
			return nil, err
		}
		problem.Actions = append(problem.Actions, split...)
	}

	goal := abstract.Goal
	if goal == nil {
		goal = TrivialTrue{}
	}
	problem.Goal = NormalizeCondition(goal)
	if _, isOr := problem.Goal.(Or); !isOr {
		if _, isFalse := problem.Goal.(TrivialFalse); !isFalse {
			literals, err := toList(problem.Goal)
			if err != nil {
				return nil, err
			}
			problem.GoalLiterals = literals
		}
	}

	problem.Buckets = bucketConstants(problem.Types, problem.Constants)
	return problem, nil
}

func normalizeAction(action AbstractAction) ([]Action, error) {
	effect := NormalizeCondition(action.Effect)
	switch effect.(type) {
	case TrivialTrue, TrivialFalse:
		// No observable effect; the action is dropped.
		return nil, nil
	case Or:
		return nil, &NormalizerError{Message: fmt.Sprintf("action %q: disjunctive effect", action.Name)}
	}
	effects, err := toList(effect)
	if err != nil {
		return nil, err
	}
	if len(effects) == 0 {
		return nil, nil
	}

	pre := NormalizeCondition(action.Precondition)
	switch p := pre.(type) {
	case TrivialFalse:
		// Unreachable.
		return nil, nil
	case Or:
		out := make([]Action, 0, len(p.Args))
		for i, disjunct := range p.Args {
			preconditions, err := toList(disjunct)
			if err != nil {
				return nil, err
			}
			out = append(out, Action{
				Name:          fmt.Sprintf("%s[%d]", action.Name, i),
				Params:        action.Params,
				Preconditions: preconditions,
				Effects:       effects,
			})
		}
		return out, nil
	default:
		preconditions, err := toList(pre)
		if err != nil {
			return nil, err
		}
		return []Action{{
			Name:          action.Name,
			Params:        action.Params,
			Preconditions: preconditions,
			Effects:       effects,
		}}, nil
	}
}

// bucketConstants appends each constant to the bucket of every type on
// its parent chain, stopping at the self-parented root.
func bucketConstants(types []Type, constants []Constant) [][]ConstantIndex {
	buckets := make([][]ConstantIndex, len(types))
	for i, constant := range constants {
		t := constant.Type
		for {
			buckets[t] = append(buckets[t], ConstantIndex(i))
			parent := types[t].Parent
			if parent == t {
				break
			}
			t = parent
		}
	}
	return buckets
}

// Package pddl holds the validated planning problem model: the semantic
// builder that checks a parsed domain/problem pair, and the normalizer
// that rewrites conditions into disjunctive normal form.
package pddl

// Entities are owned by their problem and reference each other by index
// into the owning vectors, so a problem can be copied or serialized
// without breaking identity.

type TypeIndex int
type ConstantIndex int
type PredicateIndex int

// Type is a node in the type hierarchy. The root type "object" is its own
// parent; every ancestor walk terminates there.
type Type struct {
	Name   string
	Parent TypeIndex
}

// Constant names one domain constant or problem object.
type Constant struct {
	Name string
	Type TypeIndex
}

// Predicate declares a name and the types of its parameters.
type Predicate struct {
	Name   string
	Params []TypeIndex
}

// Parameter is one formal parameter of an action.
type Parameter struct {
	Name string
	Type TypeIndex
}

type ArgumentKind int

const (
	ArgConstant ArgumentKind = iota
	ArgParameter
)

// Argument is either a constant reference or an action-parameter
// reference, by index.
type Argument struct {
	Kind  ArgumentKind
	Index int
}

// PredicateEvaluation is a possibly negated application of a predicate to
// arguments.
type PredicateEvaluation struct {
	Predicate PredicateIndex
	Args      []Argument
	Negated   bool
}

// Condition is the closed sum of condition forms. Negation never appears
// as a node; it lives on the literal's Negated flag.
type Condition interface {
	condition()
}

type And struct {
	Args []Condition
}

type Or struct {
	Args []Condition
}

type Literal struct {
	Eval PredicateEvaluation
}

type TrivialTrue struct{}

type TrivialFalse struct{}

func (And) condition()          {}
func (Or) condition()           {}
func (Literal) condition()      {}
func (TrivialTrue) condition()  {}
func (TrivialFalse) condition() {}

// AbstractAction is a validated action before normalization.
type AbstractAction struct {
	Name         string
	Params       []Parameter
	Precondition Condition
	Effect       Condition
}

// Action is a normalized action: preconditions and effects are flat
// literal lists.
type Action struct {
	Name          string
	Params        []Parameter
	Preconditions []PredicateEvaluation
	Effects       []PredicateEvaluation
}

// AbstractProblem is the semantic builder's output: validated, indexed,
// not yet normalized.
type AbstractProblem struct {
	DomainName   string
	ProblemName  string
	Requirements []string
	Types        []Type
	Constants    []Constant
	Predicates   []Predicate
	Actions      []AbstractAction
	Init         []PredicateEvaluation
	Goal         Condition
}

// Problem is the sealed, normalized output consumed by grounding.
type Problem struct {
	DomainName   string
	ProblemName  string
	Requirements []string
	Types        []Type
	Constants    []Constant
	Predicates   []Predicate
	Actions      []Action
	Init         []PredicateEvaluation

	// Goal holds the normalized goal condition. GoalLiterals is its flat
	// form when the goal is conjunctive, nil when a top-level Or remains.
	Goal         Condition
	GoalLiterals []PredicateEvaluation

	// Buckets lists, per type, every constant whose declared type is a
	// subtype of that type.
	Buckets [][]ConstantIndex
}

// isSubtype reports whether a is a subtype of b, reflexively, by walking
// a's parent chain.
func isSubtype(types []Type, a, b TypeIndex) bool {
	for {
		if a == b {
			return true
		}
		parent := types[a].Parent
		if parent == a {
			return false
		}
		a = parent
	}
}

// IsSubtype reports whether type a is a subtype of type b.
func (p *AbstractProblem) IsSubtype(a, b TypeIndex) bool {
	return isSubtype(p.Types, a, b)
}

// IsSubtype reports whether type a is a subtype of type b.
func (p *Problem) IsSubtype(a, b TypeIndex) bool {
	return isSubtype(p.Types, a, b)
}

package pddl

import (
	"github.com/dhamidi/pddlc/pddl/parser"
)

// Builder accumulates a validated AbstractProblem. Every operation checks
// its own invariants and returns a *SemanticError on violation; after the
// first error the caller stops, so a builder never holds partial junk that
// was reported as good.
type Builder struct {
	problem AbstractProblem

	types      map[string]TypeIndex
	constants  map[string]ConstantIndex
	predicates map[string]PredicateIndex
	actions    map[string]int
	params     []map[string]int // per action
}

// NewBuilder returns a builder seeded with the root type "object", which
// is its own parent.
func NewBuilder() *Builder {
	b := &Builder{
		types:      map[string]TypeIndex{},
		constants:  map[string]ConstantIndex{},
		predicates: map[string]PredicateIndex{},
		actions:    map[string]int{},
	}
	b.problem.Types = append(b.problem.Types, Type{Name: "object", Parent: 0})
	b.types["object"] = 0
	return b
}

func (b *Builder) lookupType(name parser.Name) (TypeIndex, error) {
	if idx, ok := b.types[name.Value]; ok {
		return idx, nil
	}
	return 0, semanticErr(UnknownType, name.NodeSpan(), "unknown type %q", name.Value)
}

// AddType declares a type. An empty parent means the root type "object".
func (b *Builder) AddType(name parser.Name, parent *parser.Name) error {
	if _, ok := b.types[name.Value]; ok {
		return semanticErr(DuplicateName, name.NodeSpan(), "duplicate type %q", name.Value)
	}
	parentIdx := TypeIndex(0)
	if parent != nil {
		idx, err := b.lookupType(*parent)
		if err != nil {
			return err
		}
		parentIdx = idx
	}
	b.types[name.Value] = TypeIndex(len(b.problem.Types))
	b.problem.Types = append(b.problem.Types, Type{Name: name.Value, Parent: parentIdx})
	return nil
}

// AddConstant declares a domain constant or problem object. The namespace
// is shared between the two.
func (b *Builder) AddConstant(name parser.Name, typeName *parser.Name) error {
	if _, ok := b.constants[name.Value]; ok {
		return semanticErr(DuplicateName, name.NodeSpan(), "duplicate constant %q", name.Value)
	}
	typeIdx := TypeIndex(0)
	if typeName != nil {
		idx, err := b.lookupType(*typeName)
		if err != nil {
			return err
		}
		typeIdx = idx
	}
	b.constants[name.Value] = ConstantIndex(len(b.problem.Constants))
	b.problem.Constants = append(b.problem.Constants, Constant{Name: name.Value, Type: typeIdx})
	return nil
}

// AddPredicate declares a predicate with the parameter types taken from
// its typed list.
func (b *Builder) AddPredicate(name parser.Name, params *parser.TypedList) error {
	if _, ok := b.predicates[name.Value]; ok {
		return semanticErr(DuplicateName, name.NodeSpan(), "duplicate predicate %q", name.Value)
	}
	var types []TypeIndex
	if params != nil {
		for _, group := range params.Groups {
			typeIdx := TypeIndex(0)
			if group.Type != nil {
				idx, err := b.lookupType(*group.Type)
				if err != nil {
					return err
				}
				typeIdx = idx
			}
			for range group.Names {
				types = append(types, typeIdx)
			}
		}
	}
	b.predicates[name.Value] = PredicateIndex(len(b.problem.Predicates))
	b.problem.Predicates = append(b.problem.Predicates, Predicate{Name: name.Value, Params: types})
	return nil
}

// AddAction declares an action and returns its index for the parameter
// and condition operations.
func (b *Builder) AddAction(name parser.Name) (int, error) {
	if _, ok := b.actions[name.Value]; ok {
		return 0, semanticErr(DuplicateName, name.NodeSpan(), "duplicate action %q", name.Value)
	}
	idx := len(b.problem.Actions)
	b.actions[name.Value] = idx
	b.problem.Actions = append(b.problem.Actions, AbstractAction{
		Name:         name.Value,
		Precondition: TrivialTrue{},
		Effect:       TrivialTrue{},
	})
	b.params = append(b.params, map[string]int{})
	return idx, nil
}

// AddParameter appends one formal parameter to an action. Parameter names
// are unique within the action.
func (b *Builder) AddParameter(action int, name parser.Name, typeName *parser.Name) error {
	if _, ok := b.params[action][name.Value]; ok {
		return semanticErr(DuplicateName, name.NodeSpan(), "duplicate parameter %q", name.Value)
	}
	typeIdx := TypeIndex(0)
	if typeName != nil {
		idx, err := b.lookupType(*typeName)
		if err != nil {
			return err
		}
		typeIdx = idx
	}
	b.params[action][name.Value] = len(b.problem.Actions[action].Params)
	b.problem.Actions[action].Params = append(b.problem.Actions[action].Params,
		Parameter{Name: name.Value, Type: typeIdx})
	return nil
}

// SetPrecondition validates and attaches an action's precondition.
func (b *Builder) SetPrecondition(action int, expr parser.Expr) error {
	cond, err := b.buildCondition(expr, action, false)
	if err != nil {
		return err
	}
	b.problem.Actions[action].Precondition = cond
	return nil
}

// SetEffect validates and attaches an action's effect. Disjunctive
// effects are rejected.
func (b *Builder) SetEffect(action int, expr parser.Expr) error {
	cond, err := b.buildCondition(expr, action, false)
	if err != nil {
		return err
	}
	if disjunctive(cond) {
		return semanticErr(UnsupportedConstruct, expr.NodeSpan(), "disjunctive effect")
	}
	b.problem.Actions[action].Effect = cond
	return nil
}

// AddInit appends one ground literal to the initial state.
func (b *Builder) AddInit(lit *parser.InitLiteral) error {
	pred, ok := b.predicates[lit.Pred.Name.Value]
	if !ok {
		return semanticErr(UnknownPredicate, lit.Pred.Name.NodeSpan(),
			"unknown predicate %q", lit.Pred.Name.Value)
	}
	eval := PredicateEvaluation{Predicate: pred, Negated: lit.Negated}
	signature := b.problem.Predicates[pred].Params
	if len(lit.Pred.Args) != len(signature) {
		return semanticErr(ArityMismatch, lit.Pred.NodeSpan(),
			"predicate %q expects %d arguments, got %d",
			lit.Pred.Name.Value, len(signature), len(lit.Pred.Args))
	}
	for i, arg := range lit.Pred.Args {
		if arg.Variable {
			return semanticErr(InvalidInit, arg.NodeSpan(),
				"init literal argument %q is not ground", arg.Value)
		}
		constant, ok := b.constants[arg.Value]
		if !ok {
			return semanticErr(UnknownConstant, arg.NodeSpan(), "unknown constant %q", arg.Value)
		}
		declared := b.problem.Constants[constant].Type
		if !b.problem.IsSubtype(declared, signature[i]) {
			return semanticErr(TypeMismatch, arg.NodeSpan(),
				"constant %q has type %q, predicate %q expects %q",
				arg.Value, b.problem.Types[declared].Name,
				lit.Pred.Name.Value, b.problem.Types[signature[i]].Name)
		}
		eval.Args = append(eval.Args, Argument{Kind: ArgConstant, Index: int(constant)})
	}
	b.problem.Init = append(b.problem.Init, eval)
	return nil
}

// SetGoal validates and attaches the goal condition. Goals range over
// constants only.
func (b *Builder) SetGoal(expr parser.Expr) error {
	cond, err := b.buildCondition(expr, -1, false)
	if err != nil {
		return err
	}
	b.problem.Goal = cond
	return nil
}

// buildCondition converts an AST expression into a model condition,
// resolving names and pushing negation down onto literals. action < 0
// means no parameters are in scope (the goal).
func (b *Builder) buildCondition(expr parser.Expr, action int, negated bool) (Condition, error) {
	switch e := expr.(type) {
	case *parser.AndExpr:
		return b.buildJunction(e.Args, action, negated, !negated)
	case *parser.OrExpr:
		return b.buildJunction(e.Args, action, negated, negated)
	case *parser.NotExpr:
		return b.buildCondition(e.Arg, action, !negated)
	case *parser.EqualExpr:
		return b.buildEquality(e, negated)
	case *parser.PredicateExpr:
		eval, err := b.buildEvaluation(e, action, negated)
		if err != nil {
			return nil, err
		}
		return Literal{Eval: eval}, nil
	}
	return nil, semanticErr(UnsupportedConstruct, expr.NodeSpan(), "unsupported condition")
}

// buildJunction builds the And/Or over args; under negation the
// connective flips (De Morgan).
func (b *Builder) buildJunction(args []parser.Expr, action int, negated, conjunction bool) (Condition, error) {
	out := make([]Condition, 0, len(args))
	for _, arg := range args {
		cond, err := b.buildCondition(arg, action, negated)
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	if conjunction {
		return And{Args: out}, nil
	}
	return Or{Args: out}, nil
}

// buildEquality folds constant-constant equality to a trivial condition.
// Equality over parameters has no model representation and is rejected.
func (b *Builder) buildEquality(e *parser.EqualExpr, negated bool) (Condition, error) {
	if e.Left.Variable || e.Right.Variable {
		return nil, semanticErr(UnsupportedConstruct, e.NodeSpan(), "equality over parameters")
	}
	for _, name := range []parser.Name{e.Left, e.Right} {
		if _, ok := b.constants[name.Value]; !ok {
			return nil, semanticErr(UnknownConstant, name.NodeSpan(), "unknown constant %q", name.Value)
		}
	}
	equal := e.Left.Value == e.Right.Value
	if equal != negated {
		return TrivialTrue{}, nil
	}
	return TrivialFalse{}, nil
}

func (b *Builder) buildEvaluation(e *parser.PredicateExpr, action int, negated bool) (PredicateEvaluation, error) {
	pred, ok := b.predicates[e.Name.Value]
	if !ok {
		return PredicateEvaluation{}, semanticErr(UnknownPredicate, e.Name.NodeSpan(),
			"unknown predicate %q", e.Name.Value)
	}
	signature := b.problem.Predicates[pred].Params
	if len(e.Args) != len(signature) {
		return PredicateEvaluation{}, semanticErr(ArityMismatch, e.NodeSpan(),
			"predicate %q expects %d arguments, got %d", e.Name.Value, len(signature), len(e.Args))
	}

	eval := PredicateEvaluation{Predicate: pred, Negated: negated}
	for i, arg := range e.Args {
		var argument Argument
		var declared TypeIndex
		if arg.Variable {
			if action < 0 {
				return PredicateEvaluation{}, semanticErr(UnknownSymbol, arg.NodeSpan(),
					"variable %q outside an action", arg.Value)
			}
			param, ok := b.params[action][arg.Value]
			if !ok {
				return PredicateEvaluation{}, semanticErr(UnknownSymbol, arg.NodeSpan(),
					"unknown parameter %q", arg.Value)
			}
			argument = Argument{Kind: ArgParameter, Index: param}
			declared = b.problem.Actions[action].Params[param].Type
		} else {
			constant, ok := b.constants[arg.Value]
			if !ok {
				return PredicateEvaluation{}, semanticErr(UnknownConstant, arg.NodeSpan(),
					"unknown constant %q", arg.Value)
			}
			argument = Argument{Kind: ArgConstant, Index: int(constant)}
			declared = b.problem.Constants[constant].Type
		}
		if !b.problem.IsSubtype(declared, signature[i]) {
			return PredicateEvaluation{}, semanticErr(TypeMismatch, arg.NodeSpan(),
				"%q has type %q, predicate %q expects %q",
				arg.Value, b.problem.Types[declared].Name,
				e.Name.Value, b.problem.Types[signature[i]].Name)
		}
		eval.Args = append(eval.Args, argument)
	}
	return eval, nil
}

// disjunctive reports whether an Or appears anywhere in the condition.
func disjunctive(c Condition) bool {
	switch n := c.(type) {
	case Or:
		return true
	case And:
		for _, arg := range n.Args {
			if disjunctive(arg) {
				return true
			}
		}
	}
	return false
}

// Build validates a parsed domain/problem pair and produces the abstract
// problem. The problem's :domain reference must match the domain's name.
func Build(domain *parser.Domain, problem *parser.Problem) (*AbstractProblem, error) {
	b := NewBuilder()
	b.problem.DomainName = domain.Name
	b.problem.ProblemName = problem.Name
	for _, req := range domain.Requirements {
		b.problem.Requirements = append(b.problem.Requirements, req.Name)
	}

	if problem.DomainRef != "" && problem.DomainRef != domain.Name {
		return nil, semanticErr(DomainMismatch, problem.NodeSpan(),
			"problem %q references domain %q, domain file defines %q",
			problem.Name, problem.DomainRef, domain.Name)
	}

	if domain.Types != nil {
		for _, group := range domain.Types.Groups {
			for _, name := range group.Names {
				if err := b.AddType(name, group.Type); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, list := range []*parser.TypedList{domain.Constants, problem.Objects} {
		if list == nil {
			continue
		}
		for _, group := range list.Groups {
			for _, name := range group.Names {
				if err := b.AddConstant(name, group.Type); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, decl := range domain.Predicates {
		if err := b.AddPredicate(decl.Name, decl.Params); err != nil {
			return nil, err
		}
	}

	for _, action := range domain.Actions {
		idx, err := b.AddAction(action.Name)
		if err != nil {
			return nil, err
		}
		if action.Params != nil {
			for _, group := range action.Params.Groups {
				for _, name := range group.Names {
					if err := b.AddParameter(idx, name, group.Type); err != nil {
						return nil, err
					}
				}
			}
		}
		if action.Precondition != nil {
			if err := b.SetPrecondition(idx, action.Precondition); err != nil {
				return nil, err
			}
		}
		if action.Effect != nil {
			if err := b.SetEffect(idx, action.Effect); err != nil {
				return nil, err
			}
		}
	}

	for _, lit := range problem.Init {
		if err := b.AddInit(lit); err != nil {
			return nil, err
		}
	}
	if problem.Goal != nil {
		if err := b.SetGoal(problem.Goal); err != nil {
			return nil, err
		}
	} else {
		b.problem.Goal = TrivialTrue{}
	}

	out := b.problem
	return &out, nil
}

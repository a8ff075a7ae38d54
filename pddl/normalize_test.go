package pddl

import (
	"reflect"
	"testing"
)

func lit(pred PredicateIndex, negated bool) Literal {
	return Literal{Eval: PredicateEvaluation{Predicate: pred, Negated: negated}}
}

func TestNormalizeCondition(t *testing.T) {
	p := lit(0, false)
	q := lit(1, false)
	r := lit(2, false)
	s := lit(3, false)

	tests := []struct {
		name string
		in   Condition
		want Condition
	}{
		{"literal", p, p},
		{"empty and", And{}, TrivialTrue{}},
		{"empty or", Or{}, TrivialFalse{}},
		{"single child and", And{Args: []Condition{p}}, p},
		{"single child or", Or{Args: []Condition{p}}, p},
		{
			"flatten nested and",
			And{Args: []Condition{p, And{Args: []Condition{q, r}}}},
			And{Args: []Condition{p, q, r}},
		},
		{
			"flatten nested or",
			Or{Args: []Condition{p, Or{Args: []Condition{q, r}}}},
			Or{Args: []Condition{p, q, r}},
		},
		{
			"and absorbs true",
			And{Args: []Condition{p, TrivialTrue{}, q}},
			And{Args: []Condition{p, q}},
		},
		{
			"and collapses on false",
			And{Args: []Condition{p, TrivialFalse{}, q}},
			TrivialFalse{},
		},
		{
			"or absorbs false",
			Or{Args: []Condition{p, TrivialFalse{}, q}},
			Or{Args: []Condition{p, q}},
		},
		{
			"or collapses on true",
			Or{Args: []Condition{p, TrivialTrue{}, q}},
			TrivialTrue{},
		},
		{
			"and over empty or",
			And{Args: []Condition{p, Or{}}},
			TrivialFalse{},
		},
		{
			"or over empty and",
			Or{Args: []Condition{p, And{}}},
			TrivialTrue{},
		},
		{
			"distribution",
			And{Args: []Condition{p, Or{Args: []Condition{q, And{Args: []Condition{r, s}}}}, lit(4, false)}},
			Or{Args: []Condition{
				And{Args: []Condition{p, q, lit(4, false)}},
				And{Args: []Condition{p, r, s, lit(4, false)}},
			}},
		},
		{
			"double distribution",
			And{Args: []Condition{
				Or{Args: []Condition{p, q}},
				Or{Args: []Condition{r, s}},
			}},
			Or{Args: []Condition{
				And{Args: []Condition{p, r}},
				And{Args: []Condition{p, s}},
				And{Args: []Condition{q, r}},
				And{Args: []Condition{q, s}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCondition(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeCondition() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalizeConditionIdempotent(t *testing.T) {
	p := lit(0, false)
	q := lit(1, true)
	r := lit(2, false)

	inputs := []Condition{
		And{Args: []Condition{p, Or{Args: []Condition{q, r}}}},
		Or{Args: []Condition{And{Args: []Condition{p, q}}, r}},
		And{Args: []Condition{Or{Args: []Condition{p, q}}, Or{Args: []Condition{q, r}}}},
	}

	for _, in := range inputs {
		once := NormalizeCondition(in)
		twice := NormalizeCondition(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("normalization is not idempotent: %#v != %#v", once, twice)
		}
	}
}

// assignments enumerates all truth assignments over n predicates and checks
// that the condition keeps its meaning across normalization.
func TestNormalizeConditionPreservesMeaning(t *testing.T) {
	p := lit(0, false)
	notP := lit(0, true)
	q := lit(1, false)
	r := lit(2, false)

	conditions := []Condition{
		And{Args: []Condition{p, Or{Args: []Condition{q, r}}}},
		Or{Args: []Condition{notP, And{Args: []Condition{q, r}}}},
		And{Args: []Condition{Or{Args: []Condition{p, q}}, Or{Args: []Condition{notP, r}}}},
	}

	for _, cond := range conditions {
		norm := NormalizeCondition(cond)
		for mask := 0; mask < 8; mask++ {
			truth := func(eval PredicateEvaluation) bool {
				value := mask&(1<<eval.Predicate) != 0
				return value != eval.Negated
			}
			if got, want := evaluate(norm, truth), evaluate(cond, truth); got != want {
				t.Errorf("assignment %03b: normalized = %v, original = %v", mask, got, want)
			}
		}
	}
}

func evaluate(c Condition, truth func(PredicateEvaluation) bool) bool {
	switch n := c.(type) {
	case TrivialTrue:
		return true
	case TrivialFalse:
		return false
	case Literal:
		return truth(n.Eval)
	case And:
		for _, arg := range n.Args {
			if !evaluate(arg, truth) {
				return false
			}
		}
		return true
	case Or:
		for _, arg := range n.Args {
			if evaluate(arg, truth) {
				return true
			}
		}
		return false
	}
	return false
}

func TestNormalizeGripper(t *testing.T) {
	abstract := mustBuild(t, gripperDomain, gripperProblem)
	problem, err := Normalize(abstract)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(problem.Actions) != 2 {
		t.Fatalf("action count = %d, want 2", len(problem.Actions))
	}
	move := problem.Actions[0]
	if move.Name != "move" {
		t.Errorf("Actions[0].Name = %q, want move", move.Name)
	}
	if len(move.Preconditions) != 1 {
		t.Errorf("move precondition count = %d, want 1", len(move.Preconditions))
	}
	if len(move.Effects) != 2 {
		t.Errorf("move effect count = %d, want 2", len(move.Effects))
	}

	if len(problem.GoalLiterals) != 1 {
		t.Errorf("goal literal count = %d, want 1", len(problem.GoalLiterals))
	}
}

func TestNormalizeSplitsDisjunctivePrecondition(t *testing.T) {
	abstract := mustBuild(t, `
		(define (domain d)
		  (:predicates (p) (q) (r))
		  (:action act
		    :parameters ()
		    :precondition (or (p) (q))
		    :effect (r)))`, `
		(define (problem x) (:domain d))`)

	problem, err := Normalize(abstract)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(problem.Actions) != 2 {
		t.Fatalf("action count = %d, want 2", len(problem.Actions))
	}
	if problem.Actions[0].Name != "act[0]" || problem.Actions[1].Name != "act[1]" {
		t.Errorf("split names = %q, %q", problem.Actions[0].Name, problem.Actions[1].Name)
	}
	for i, action := range problem.Actions {
		if len(action.Preconditions) != 1 {
			t.Errorf("action %d precondition count = %d, want 1", i, len(action.Preconditions))
		}
		if !reflect.DeepEqual(action.Effects, problem.Actions[0].Effects) {
			t.Errorf("split actions do not share effects")
		}
	}
}

func TestNormalizeDropsActions(t *testing.T) {
	abstract := mustBuild(t, `
		(define (domain d)
		  (:constants a b - object)
		  (:predicates (p) (q))
		  (:action unreachable
		    :parameters ()
		    :precondition (= a b)
		    :effect (p))
		  (:action inert
		    :parameters ()
		    :precondition (p))
		  (:action useful
		    :parameters ()
		    :precondition (p)
		    :effect (q)))`, `
		(define (problem x) (:domain d))`)

	problem, err := Normalize(abstract)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(problem.Actions) != 1 {
		t.Fatalf("action count = %d, want 1", len(problem.Actions))
	}
	if problem.Actions[0].Name != "useful" {
		t.Errorf("surviving action = %q, want useful", problem.Actions[0].Name)
	}
}

func TestNormalizeDisjunctiveGoal(t *testing.T) {
	abstract := mustBuild(t, `
		(define (domain d) (:predicates (p) (q)))`, `
		(define (problem x) (:domain d) (:goal (or (p) (q))))`)

	problem, err := Normalize(abstract)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if _, ok := problem.Goal.(Or); !ok {
		t.Fatalf("Goal = %T, want Or", problem.Goal)
	}
	if problem.GoalLiterals != nil {
		t.Errorf("GoalLiterals = %v, want nil for a disjunctive goal", problem.GoalLiterals)
	}
}

func TestNormalizeBuckets(t *testing.T) {
	abstract := mustBuild(t, `
		(define (domain d)
		  (:types vehicle - object truck car - vehicle)
		  (:predicates (parked ?v - vehicle)))`, `
		(define (problem x) (:domain d)
		  (:objects t1 t2 - truck c1 - car plain - object))`)

	problem, err := Normalize(abstract)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	counts := make([]int, len(problem.Buckets))
	for i, bucket := range problem.Buckets {
		counts[i] = len(bucket)
	}
	// object, vehicle, truck, car
	want := []int{4, 3, 2, 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("bucket sizes = %v, want %v", counts, want)
	}

	for typeIdx, bucket := range problem.Buckets {
		seen := map[ConstantIndex]bool{}
		for _, c := range bucket {
			if seen[c] {
				t.Errorf("constant %d appears twice in bucket %d", c, typeIdx)
			}
			seen[c] = true
			if !problem.IsSubtype(problem.Constants[c].Type, TypeIndex(typeIdx)) {
				t.Errorf("constant %q in bucket for %q is not a subtype",
					problem.Constants[c].Name, problem.Types[typeIdx].Name)
			}
		}
	}
}

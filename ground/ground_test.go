package ground

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/pddlc/pddl"
	"github.com/dhamidi/pddlc/pddl/parser"
)

func compile(t *testing.T, domainSrc, problemSrc string) *pddl.Problem {
	t.Helper()
	domain, err := parser.ParseFile([]byte(domainSrc), "domain.pddl")
	if err != nil {
		t.Fatalf("parse domain: %v", err)
	}
	problemFile, err := parser.ParseFile([]byte(problemSrc), "problem.pddl")
	if err != nil {
		t.Fatalf("parse problem: %v", err)
	}
	abstract, err := pddl.Build(domain.Domain, problemFile.Problem)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	problem, err := pddl.Normalize(abstract)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return problem
}

func driveProblem(t *testing.T) *pddl.Problem {
	t.Helper()
	return compile(t, `
		(define (domain logistics)
		  (:types location vehicle - object truck - vehicle)
		  (:predicates
		    (at ?v - vehicle ?l - location)
		    (road ?from ?to - location))
		  (:action drive
		    :parameters (?t - truck ?from ?to - location)
		    :precondition (and (at ?t ?from) (road ?from ?to))
		    :effect (and (at ?t ?to) (not (at ?t ?from)))))`, `
		(define (problem deliver)
		  (:domain logistics)
		  (:objects depot market - location t1 - truck)
		  (:init (at t1 depot) (road depot market))
		  (:goal (at t1 market)))`)
}

func TestGround(t *testing.T) {
	g, err := Ground(driveProblem(t))
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}

	// One truck, two locations: 1*2*2 drive bindings.
	if len(g.Actions) != 4 {
		t.Errorf("action count = %d, want 4", len(g.Actions))
	}
	// at(t1, depot), at(t1, market) and the four road atoms.
	if len(g.Atoms) != 6 {
		t.Errorf("atom count = %d, want 6", len(g.Atoms))
	}
	if len(g.Init) != 2 {
		t.Errorf("init atom count = %d, want 2", len(g.Init))
	}
	if len(g.Goal) != 1 || len(g.Goal[0]) != 1 {
		t.Fatalf("goal = %v, want one conjunct with one literal", g.Goal)
	}

	names := make(map[string]bool)
	for _, action := range g.Actions {
		names[action.Name] = true
	}
	if !names["drive(t1, depot, market)"] {
		t.Errorf("missing ground action, got %v", names)
	}

	goalAtom := g.Goal[0][0]
	if goalAtom.Negated() {
		t.Error("goal literal is negated")
	}
	if got := g.AtomName(goalAtom.Atom()); got != "at(t1, market)" {
		t.Errorf("goal atom = %q, want at(t1, market)", got)
	}
}

func TestGroundInterningIsStable(t *testing.T) {
	g, err := Ground(driveProblem(t))
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	seen := make(map[string]bool)
	for i := range g.Atoms {
		name := g.AtomName(i)
		if seen[name] {
			t.Errorf("atom %q interned twice", name)
		}
		seen[name] = true
	}
}

func TestGroundDropsContradictoryBindings(t *testing.T) {
	problem := compile(t, `
		(define (domain d)
		  (:predicates (p ?x - object) (q))
		  (:action swap
		    :parameters (?x ?y - object)
		    :precondition (and (p ?x) (not (p ?y)))
		    :effect (q)))`, `
		(define (problem x) (:domain d)
		  (:objects a b - object)
		  (:goal (q)))`)

	g, err := Ground(problem)
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	// Bindings with ?x = ?y require p both ways and are dropped.
	if len(g.Actions) != 2 {
		t.Errorf("action count = %d, want 2", len(g.Actions))
	}
}

func TestGroundNegatedInit(t *testing.T) {
	problem := compile(t, `
		(define (domain d) (:predicates (p ?x - object)))`, `
		(define (problem x) (:domain d)
		  (:objects a - object)
		  (:init (not (p a)))
		  (:goal (p a)))`)

	g, err := Ground(problem)
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	if len(g.Init) != 0 {
		t.Errorf("init atom count = %d, want 0 under the closed world", len(g.Init))
	}
}

func TestGroundTrivialGoal(t *testing.T) {
	problem := compile(t,
		`(define (domain d) (:predicates (p ?x - object)))`,
		`(define (problem x) (:domain d) (:objects a - object))`)

	g, err := Ground(problem)
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	if len(g.Goal) != 1 || len(g.Goal[0]) != 0 {
		t.Errorf("goal = %v, want one empty conjunct", g.Goal)
	}
}

func TestEncode(t *testing.T) {
	g, err := Ground(driveProblem(t))
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}

	horizon := 2
	cnf, err := g.Encode(horizon)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	wantVars := (horizon+1)*len(g.Atoms) + horizon*len(g.Actions)
	if cnf.Vars != wantVars {
		t.Errorf("Vars = %d, want %d", cnf.Vars, wantVars)
	}

	for _, clause := range cnf.Clauses {
		for _, lit := range clause {
			if lit == 0 {
				t.Fatal("clause contains the reserved literal 0")
			}
			if v := abs(lit); v > cnf.Vars {
				t.Fatalf("literal %d exceeds variable count %d", lit, cnf.Vars)
			}
		}
	}

	// The initial state pins every atom at step 0.
	units := make(map[int]bool)
	for _, clause := range cnf.Clauses[:len(g.Atoms)] {
		if len(clause) != 1 {
			t.Fatalf("initial clause %v is not a unit", clause)
		}
		units[abs(clause[0])] = true
	}
	if len(units) != len(g.Atoms) {
		t.Errorf("initial units cover %d atoms, want %d", len(units), len(g.Atoms))
	}
}

func TestEncodeErrors(t *testing.T) {
	g, err := Ground(driveProblem(t))
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	if _, err := g.Encode(-1); err == nil {
		t.Error("Encode(-1) succeeded, want error")
	}

	g.Goal = nil
	if _, err := g.Encode(1); err == nil {
		t.Error("Encode with unsatisfiable goal succeeded, want error")
	}
}

func TestEncodeDisjunctiveGoalSelectors(t *testing.T) {
	problem := compile(t, `
		(define (domain d) (:predicates (p) (q)))`, `
		(define (problem x) (:domain d)
		  (:init (p))
		  (:goal (or (p) (q))))`)

	g, err := Ground(problem)
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	if len(g.Goal) != 2 {
		t.Fatalf("goal conjunct count = %d, want 2", len(g.Goal))
	}

	cnf, err := g.Encode(0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	base := len(g.Atoms)
	if cnf.Vars != base+2 {
		t.Errorf("Vars = %d, want %d state vars plus 2 selectors", cnf.Vars, base)
	}
	last := cnf.Clauses[len(cnf.Clauses)-1]
	if len(last) != 2 {
		t.Errorf("selector clause = %v, want two selectors", last)
	}
}

func TestWriteDIMACS(t *testing.T) {
	g, err := Ground(driveProblem(t))
	if err != nil {
		t.Fatalf("Ground failed: %v", err)
	}
	cnf, err := g.Encode(1)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var b strings.Builder
	if err := g.WriteDIMACS(&b, cnf); err != nil {
		t.Fatalf("WriteDIMACS failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")

	if !strings.HasPrefix(lines[0], "c ") {
		t.Errorf("first line = %q, want a comment", lines[0])
	}
	wantHeader := fmt.Sprintf("p cnf %d %d", cnf.Vars, len(cnf.Clauses))
	if lines[2] != wantHeader {
		t.Errorf("header = %q, want %q", lines[2], wantHeader)
	}
	body := lines[3:]
	if len(body) != len(cnf.Clauses) {
		t.Fatalf("clause line count = %d, want %d", len(body), len(cnf.Clauses))
	}
	for _, line := range body {
		if !strings.HasSuffix(line, " 0") {
			t.Errorf("clause line %q is not zero-terminated", line)
		}
	}
}

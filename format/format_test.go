package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/pddlc/pddl"
	"github.com/dhamidi/pddlc/pddl/parser"
)

const fixtureDomain = `
(define (domain logistics)
  (:requirements :strips :typing)
  (:types location vehicle - object truck - vehicle)
  (:predicates
    (at ?v - vehicle ?l - location)
    (road ?from ?to - location))
  (:action drive
    :parameters (?t - truck ?from ?to - location)
    :precondition (and (at ?t ?from) (road ?from ?to))
    :effect (and (at ?t ?to) (not (at ?t ?from)))))
`

const fixtureProblem = `
(define (problem deliver)
  (:domain logistics)
  (:objects depot market - location t1 - truck)
  (:init (at t1 depot) (road depot market))
  (:goal (at t1 market)))
`

func compile(t *testing.T) *pddl.Problem {
	t.Helper()
	domain, err := parser.ParseFile([]byte(fixtureDomain), "domain.pddl")
	if err != nil {
		t.Fatalf("parse domain: %v", err)
	}
	problemFile, err := parser.ParseFile([]byte(fixtureProblem), "problem.pddl")
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

func TestTextEncoder(t *testing.T) {
	var b strings.Builder
	if err := NewTextEncoder(&b).Encode(compile(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got := b.String()

	wantLines := []string{
		"domain logistics",
		"problem deliver",
		"requirements :strips :typing",
		"  object",
		"    location",
		"    vehicle",
		"      truck",
		"  depot - location",
		"  t1 - truck",
		"  (at vehicle location)",
		"action drive",
		"    0: ?t - truck",
		"    (at ?t ?from)",
		"    (not (at ?t ?from))",
		"  (road depot market)",
		"  (at t1 market)",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("output lacks line %q\noutput:\n%s", line, got)
		}
	}
}

func TestTextEncoderDeterministic(t *testing.T) {
	problem := compile(t)
	var first, second strings.Builder
	NewTextEncoder(&first).Encode(problem)
	NewTextEncoder(&second).Encode(problem)
	if first.String() != second.String() {
		t.Error("two encodings of the same problem differ")
	}
}

func TestJSONEncoder(t *testing.T) {
	var b strings.Builder
	if err := NewJSONEncoder(&b).Encode(compile(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var out struct {
		Domain  string `json:"domain"`
		Problem string `json:"problem"`
		Types   []struct {
			Name   string `json:"name"`
			Parent string `json:"parent"`
		} `json:"types"`
		Actions []struct {
			Name    string `json:"name"`
			Effects []struct {
				Predicate string   `json:"predicate"`
				Args      []string `json:"args"`
				Negated   bool     `json:"negated"`
			} `json:"effects"`
		} `json:"actions"`
		Goal []struct {
			Predicate string   `json:"predicate"`
			Args      []string `json:"args"`
		} `json:"goal"`
	}
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Domain != "logistics" || out.Problem != "deliver" {
		t.Errorf("header = %q/%q, want logistics/deliver", out.Domain, out.Problem)
	}
	if out.Types[0].Parent != "" {
		t.Errorf("root type parent = %q, want empty", out.Types[0].Parent)
	}
	if len(out.Actions) != 1 || out.Actions[0].Name != "drive" {
		t.Fatalf("actions = %+v", out.Actions)
	}
	effects := out.Actions[0].Effects
	if len(effects) != 2 || !effects[1].Negated {
		t.Errorf("effects = %+v", effects)
	}
	if len(out.Goal) != 1 || out.Goal[0].Predicate != "at" {
		t.Errorf("goal = %+v", out.Goal)
	}
}

func TestJSONEncoderDisjunctiveGoal(t *testing.T) {
	domain, err := parser.ParseFile([]byte(`(define (domain d) (:predicates (p) (q)))`), "d.pddl")
	if err != nil {
		t.Fatal(err)
	}
	problemFile, err := parser.ParseFile([]byte(`(define (problem x) (:domain d) (:goal (or (p) (q))))`), "p.pddl")
	if err != nil {
		t.Fatal(err)
	}
	abstract, err := pddl.Build(domain.Domain, problemFile.Problem)
	if err != nil {
		t.Fatal(err)
	}
	problem, err := pddl.Normalize(abstract)
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := NewJSONEncoder(&b).Encode(problem); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var out struct {
		Goal      []json.RawMessage `json:"goal"`
		GoalAnyOf []struct {
			AllOf []struct {
				Predicate string `json:"predicate"`
			} `json:"allOf"`
		} `json:"goalAnyOf"`
	}
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Goal != nil {
		t.Errorf("goal = %v, want absent for a disjunctive goal", out.Goal)
	}
	if len(out.GoalAnyOf) != 2 {
		t.Fatalf("goalAnyOf size = %d, want 2", len(out.GoalAnyOf))
	}
	if out.GoalAnyOf[0].AllOf[0].Predicate != "p" {
		t.Errorf("first disjunct = %+v", out.GoalAnyOf[0])
	}
}

func TestMarshalTextWithoutProblem(t *testing.T) {
	encoders := []struct {
		name string
		enc  Encoder
	}{
		{"text", NewTextEncoder(&strings.Builder{})},
		{"json", NewJSONEncoder(&strings.Builder{})},
	}
	for _, tt := range encoders {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.enc.MarshalText(); err == nil {
				t.Error("MarshalText before Encode succeeded, want error")
			}
		})
	}
}

func TestASTText(t *testing.T) {
	file, err := parser.ParseFile([]byte(fixtureDomain), "domain.pddl")
	if err != nil {
		t.Fatal(err)
	}
	got := ASTText(file, false)
	for _, want := range []string{"File", "Domain logistics", "Action drive"} {
		if !strings.Contains(got, want) {
			t.Errorf("AST dump lacks %q:\n%s", want, got)
		}
	}

	withSpans := ASTText(file, true)
	if !strings.Contains(withSpans, "domain.pddl:") {
		t.Errorf("span dump lacks positions:\n%s", withSpans)
	}
}

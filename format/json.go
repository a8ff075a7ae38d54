package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/pddlc/pddl"
)

// JSONEncoder renders a problem as JSON with all index references
// resolved to names.
type JSONEncoder struct {
	w       io.Writer
	problem *pddl.Problem
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(problem *pddl.Problem) error {
	e.problem = problem
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.problem == nil {
		return nil, fmt.Errorf("no problem to encode")
	}
	return json.MarshalIndent(e.buildProblemData(), "", "  ")
}

type jsonProblem struct {
	Domain       string          `json:"domain"`
	Problem      string          `json:"problem"`
	Requirements []string        `json:"requirements,omitempty"`
	Types        []jsonType      `json:"types"`
	Constants    []jsonConstant  `json:"constants,omitempty"`
	Predicates   []jsonPredicate `json:"predicates,omitempty"`
	Actions      []jsonAction    `json:"actions,omitempty"`
	Init         []jsonLiteral   `json:"init,omitempty"`
	Goal         []jsonLiteral   `json:"goal,omitempty"`
	GoalAnyOf    []jsonCondition `json:"goalAnyOf,omitempty"`
}

type jsonType struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

type jsonConstant struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonPredicate struct {
	Name   string   `json:"name"`
	Params []string `json:"params,omitempty"`
}

type jsonAction struct {
	Name          string          `json:"name"`
	Params        []jsonParameter `json:"params,omitempty"`
	Preconditions []jsonLiteral   `json:"preconditions,omitempty"`
	Effects       []jsonLiteral   `json:"effects,omitempty"`
}

type jsonParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonLiteral struct {
	Predicate string   `json:"predicate"`
	Args      []string `json:"args,omitempty"`
	Negated   bool     `json:"negated,omitempty"`
}

type jsonCondition struct {
	AllOf []jsonLiteral `json:"allOf"`
}

func (e *JSONEncoder) buildProblemData() jsonProblem {
	p := e.problem
	data := jsonProblem{
		Domain:       p.DomainName,
		Problem:      p.ProblemName,
		Requirements: p.Requirements,
	}

	for i, t := range p.Types {
		out := jsonType{Name: t.Name}
		if pddl.TypeIndex(i) != t.Parent {
			out.Parent = p.Types[t.Parent].Name
		}
		data.Types = append(data.Types, out)
	}
	for _, constant := range p.Constants {
		data.Constants = append(data.Constants, jsonConstant{
			Name: constant.Name,
			Type: p.Types[constant.Type].Name,
		})
	}
	for _, pred := range p.Predicates {
		out := jsonPredicate{Name: pred.Name}
		for _, t := range pred.Params {
			out.Params = append(out.Params, p.Types[t].Name)
		}
		data.Predicates = append(data.Predicates, out)
	}
	for _, action := range p.Actions {
		out := jsonAction{Name: action.Name}
		for _, param := range action.Params {
			out.Params = append(out.Params, jsonParameter{
				Name: param.Name,
				Type: p.Types[param.Type].Name,
			})
		}
		for _, eval := range action.Preconditions {
			out.Preconditions = append(out.Preconditions, e.buildLiteral(eval, action.Params))
		}
		for _, eval := range action.Effects {
			out.Effects = append(out.Effects, e.buildLiteral(eval, action.Params))
		}
		data.Actions = append(data.Actions, out)
	}
	for _, eval := range p.Init {
		data.Init = append(data.Init, e.buildLiteral(eval, nil))
	}

	if p.GoalLiterals != nil {
		for _, eval := range p.GoalLiterals {
			data.Goal = append(data.Goal, e.buildLiteral(eval, nil))
		}
	} else if or, ok := p.Goal.(pddl.Or); ok {
		for _, disjunct := range or.Args {
			data.GoalAnyOf = append(data.GoalAnyOf, e.buildDisjunct(disjunct))
		}
	}
	return data
}

func (e *JSONEncoder) buildDisjunct(c pddl.Condition) jsonCondition {
	var out jsonCondition
	switch n := c.(type) {
	case pddl.Literal:
		out.AllOf = append(out.AllOf, e.buildLiteral(n.Eval, nil))
	case pddl.And:
		for _, arg := range n.Args {
			if lit, ok := arg.(pddl.Literal); ok {
				out.AllOf = append(out.AllOf, e.buildLiteral(lit.Eval, nil))
			}
		}
	}
	return out
}

func (e *JSONEncoder) buildLiteral(eval pddl.PredicateEvaluation, params []pddl.Parameter) jsonLiteral {
	out := jsonLiteral{
		Predicate: e.problem.Predicates[eval.Predicate].Name,
		Negated:   eval.Negated,
	}
	for _, arg := range eval.Args {
		switch arg.Kind {
		case pddl.ArgConstant:
			out.Args = append(out.Args, e.problem.Constants[arg.Index].Name)
		case pddl.ArgParameter:
			out.Args = append(out.Args, params[arg.Index].Name)
		}
	}
	return out
}

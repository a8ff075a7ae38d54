// Package parser lexes and parses PDDL domain and problem files.
package parser

// Node is the interface implemented by all PDDL AST nodes.
type Node interface {
	node()
	NodeSpan() Span
}

type span struct {
	Span Span
}

func (s span) NodeSpan() Span { return s.Span }

// File is the root of a parse: a domain definition, a problem definition,
// or both when the inputs are concatenated.
type File struct {
	span
	Domain  *Domain
	Problem *Problem
}

func (*File) node() {}

// Domain represents `(define (domain name) ...)`.
type Domain struct {
	span
	Name         string
	Requirements []Requirement
	Types        *TypedList
	Constants    *TypedList
	Predicates   []*PredicateDecl
	Actions      []*Action
}

func (*Domain) node() {}

// Requirement is one `:requirements` entry, e.g. ":strips".
type Requirement struct {
	span
	Name string
}

func (*Requirement) node() {}

// Problem represents `(define (problem name) (:domain ref) ...)`.
type Problem struct {
	span
	Name      string
	DomainRef string
	Objects   *TypedList
	Init      []*InitLiteral
	Goal      Expr
}

func (*Problem) node() {}

// TypedList is PDDL's typed-name syntax: groups of names, each group with
// an optional `- type` suffix.
type TypedList struct {
	span
	Groups []*TypedGroup
}

func (*TypedList) node() {}

// TypedGroup is one run of names sharing one optional type.
type TypedGroup struct {
	span
	Names []Name
	Type  *Name // nil when no `- type` was given
}

func (*TypedGroup) node() {}

// Name is an identifier or variable occurrence with its location.
type Name struct {
	span
	Value    string
	Variable bool
}

func (*Name) node() {}

// PredicateDecl declares one predicate with its typed parameters.
type PredicateDecl struct {
	span
	Name   Name
	Params *TypedList
}

func (*PredicateDecl) node() {}

// Action represents `(:action name :parameters (...) ...)`.
type Action struct {
	span
	Name         Name
	Params       *TypedList
	Precondition Expr // nil when absent
	Effect       Expr // nil when absent
}

func (*Action) node() {}

// Expr is a condition or effect expression.
type Expr interface {
	Node
	expr()
}

// AndExpr is `(and e...)`.
type AndExpr struct {
	span
	Args []Expr
}

func (*AndExpr) node() {}
func (*AndExpr) expr() {}

// OrExpr is `(or e...)`.
type OrExpr struct {
	span
	Args []Expr
}

func (*OrExpr) node() {}
func (*OrExpr) expr() {}

// NotExpr is `(not e)`.
type NotExpr struct {
	span
	Arg Expr
}

func (*NotExpr) node() {}
func (*NotExpr) expr() {}

// EqualExpr is `(= a b)`.
type EqualExpr struct {
	span
	Left  Name
	Right Name
}

func (*EqualExpr) node() {}
func (*EqualExpr) expr() {}

// PredicateExpr is the application of a predicate to terms.
type PredicateExpr struct {
	span
	Name Name
	Args []Name
}

func (*PredicateExpr) node() {}
func (*PredicateExpr) expr() {}

// InitLiteral is one entry of the `:init` section: a ground predicate
// application, possibly negated.
type InitLiteral struct {
	span
	Negated bool
	Pred    *PredicateExpr
}

func (*InitLiteral) node() {}

package pddl

import (
	"fmt"

	"github.com/dhamidi/pddlc/pddl/parser"
)

type SemanticErrorKind int

const (
	DuplicateName SemanticErrorKind = iota
	UnknownType
	UnknownConstant
	UnknownPredicate
	UnknownSymbol
	ArityMismatch
	TypeMismatch
	DomainMismatch
	InvalidInit
	UnsupportedConstruct
)

var semanticErrorKindNames = map[SemanticErrorKind]string{
	DuplicateName:        "DuplicateName",
	UnknownType:          "UnknownType",
	UnknownConstant:      "UnknownConstant",
	UnknownPredicate:     "UnknownPredicate",
	UnknownSymbol:        "UnknownSymbol",
	ArityMismatch:        "ArityMismatch",
	TypeMismatch:         "TypeMismatch",
	DomainMismatch:       "DomainMismatch",
	InvalidInit:          "InvalidInit",
	UnsupportedConstruct: "UnsupportedConstruct",
}

func (k SemanticErrorKind) String() string {
	if name, ok := semanticErrorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// SemanticError reports a validation failure during the semantic build.
type SemanticError struct {
	Kind    SemanticErrorKind
	Span    parser.Span
	Message string
}

func (e *SemanticError) Error() string {
	if e.Span.Start.Line > 0 {
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func semanticErr(kind SemanticErrorKind, span parser.Span, format string, args ...any) error {
	return &SemanticError{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// NormalizerError reports input the normalizer cannot handle. A
// semantically valid problem never triggers it.
type NormalizerError struct {
	Message string
}

func (e *NormalizerError) Error() string {
	return "normalize: " + e.Message
}

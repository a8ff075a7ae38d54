// Package format renders normalized planning problems for diagnostics,
// golden tests and machine consumption.
package format

import (
	"encoding"

	"github.com/dhamidi/pddlc/pddl"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(problem *pddl.Problem) error
}

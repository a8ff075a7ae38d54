package ground

import (
	"bufio"
	"fmt"
	"io"
)

// CNF is a propositional formula in conjunctive normal form, variables
// numbered from 1 as DIMACS requires.
type CNF struct {
	Vars    int
	Clauses [][]int
}

func (c *CNF) add(clause ...int) {
	c.Clauses = append(c.Clauses, clause)
}

// Encode builds the bounded-horizon planning formula: state variables per
// atom and step, one occurrence variable per ground action and step,
// initial state under the closed world, action preconditions and effects,
// explanatory frame axioms, pairwise action exclusion, and the goal at
// the final step. A satisfying assignment is a plan of at most `horizon`
// steps; the encoding is emitted, not solved.
func (g *Grounding) Encode(horizon int) (*CNF, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("encode: negative horizon %d", horizon)
	}
	if len(g.Goal) == 0 {
		return nil, fmt.Errorf("encode: goal is unsatisfiable")
	}

	numAtoms := len(g.Atoms)
	numActions := len(g.Actions)

	atomVar := func(atom, step int) int {
		return step*numAtoms + atom + 1
	}
	actionVar := func(action, step int) int {
		return (horizon+1)*numAtoms + step*numActions + action + 1
	}
	timed := func(lit Lit, step int) int {
		v := atomVar(lit.Atom(), step)
		if lit.Negated() {
			return -v
		}
		return v
	}

	cnf := &CNF{Vars: (horizon+1)*numAtoms + horizon*numActions}

	// Initial state, closed world: every atom gets a unit clause.
	initial := make([]bool, numAtoms)
	for _, atom := range g.Init {
		initial[atom] = true
	}
	for atom := 0; atom < numAtoms; atom++ {
		if initial[atom] {
			cnf.add(atomVar(atom, 0))
		} else {
			cnf.add(-atomVar(atom, 0))
		}
	}

	for step := 0; step < horizon; step++ {
		for i, action := range g.Actions {
			occ := actionVar(i, step)
			for _, pre := range action.Pre {
				cnf.add(-occ, timed(pre, step))
			}
			for _, eff := range action.Eff {
				cnf.add(-occ, timed(eff, step+1))
			}
		}

		// At most one action per step.
		for i := 0; i < numActions; i++ {
			for j := i + 1; j < numActions; j++ {
				cnf.add(-actionVar(i, step), -actionVar(j, step))
			}
		}

		// Explanatory frames: a value change requires an action
		// causing it.
		for atom := 0; atom < numAtoms; atom++ {
			adders := []int{-atomVar(atom, step+1), atomVar(atom, step)}
			deleters := []int{atomVar(atom, step+1), -atomVar(atom, step)}
			for i, action := range g.Actions {
				for _, eff := range action.Eff {
					if eff.Atom() != atom {
						continue
					}
					if eff.Negated() {
						deleters = append(deleters, actionVar(i, step))
					} else {
						adders = append(adders, actionVar(i, step))
					}
				}
			}
			cnf.add(adders...)
			cnf.add(deleters...)
		}
	}

	// Goal at the final step. Disjunctive goals get one selector
	// variable per disjunct implying its literals.
	if len(g.Goal) == 1 {
		for _, lit := range g.Goal[0] {
			cnf.add(timed(lit, horizon))
		}
	} else {
		selectors := make([]int, len(g.Goal))
		for i, conjunct := range g.Goal {
			cnf.Vars++
			selectors[i] = cnf.Vars
			for _, lit := range conjunct {
				cnf.add(-selectors[i], timed(lit, horizon))
			}
		}
		cnf.add(selectors...)
	}

	return cnf, nil
}

// WriteDIMACS writes the formula in DIMACS CNF format with a comment
// header naming the problem.
func (g *Grounding) WriteDIMACS(w io.Writer, cnf *CNF) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "c %s / %s\n", g.Problem.DomainName, g.Problem.ProblemName)
	fmt.Fprintf(bw, "c %d atoms, %d ground actions\n", len(g.Atoms), len(g.Actions))
	fmt.Fprintf(bw, "p cnf %d %d\n", cnf.Vars, len(cnf.Clauses))
	for _, clause := range cnf.Clauses {
		for _, lit := range clause {
			fmt.Fprintf(bw, "%d ", lit)
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}

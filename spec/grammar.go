package spec

import (
	"fmt"
	"strings"
)

// Epsilon is the reserved right-hand-side name denoting the empty string.
const Epsilon = "ε"

// Grammar is a context-free grammar as a caller writes it: plain names, no validation.
type Grammar struct {
	NonTerminals []string      `json:"non_terminals" yaml:"non_terminals"`
	Terminals    []string      `json:"terminals" yaml:"terminals"`
	Start        string        `json:"start" yaml:"start"`
	Productions  []*Production `json:"productions" yaml:"productions"`
}

type Production struct {
	LHS string   `json:"lhs" yaml:"lhs"`
	RHS []string `json:"rhs" yaml:"rhs"`

	// Row is the line the production was written on when it came from a textual source.
	Row int `json:"-" yaml:"-"`
}

func (p *Production) String() string {
	if len(p.RHS) == 0 {
		return fmt.Sprintf("%v -> %v", p.LHS, Epsilon)
	}
	return fmt.Sprintf("%v -> %v", p.LHS, strings.Join(p.RHS, " "))
}

// String renders one production per line in the form `LEFT -> s1 s2`.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, prod := range g.Productions {
		fmt.Fprintln(&b, prod)
	}
	return b.String()
}

package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEliminateUnit(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		removed []string
		prods   []string
	}{
		{
			caption: "a unit production is replaced by the productions of its right-hand side",
			src: `
S: a A;
A: S | b;
`,
			removed: []string{"A -> S"},
			prods: []string{
				"S -> a A",
				"A -> a A",
				"A -> b",
			},
		},
		{
			caption: "a cycle of unit productions terminates and yields no duplicates",
			src: `
S: A | a S;
A: B | b;
B: S | c;
`,
			removed: []string{"S -> A", "A -> B", "B -> S"},
			prods: []string{
				"S -> b",
				"S -> c",
				"S -> a S",
				"A -> c",
				"A -> a S",
				"A -> b",
				"B -> a S",
				"B -> b",
				"B -> c",
			},
		},
		{
			caption: "a unit production to a non-terminal without productions disappears",
			src: `
S: A | a;
A: A;
`,
			removed: []string{"S -> A", "A -> A"},
			prods: []string{
				"S -> a",
			},
		},
		{
			caption: "a grammar without unit productions stays as it is",
			src: `
S: A B;
A: a;
B: b;
`,
			removed: nil,
			prods: []string{
				"S -> A B",
				"A -> a",
				"B -> b",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := newTestGrammar(t, tt.src)
			res := eliminateUnit(g, logger{})
			testInvariants(t, res.grammar)
			require.Equal(t, tt.removed, res.removed)
			testProductionTexts(t, tt.prods, res.grammar)
			for _, prod := range res.grammar.Productions() {
				require.False(t, prod.IsUnit(), "a unit production remains: %v", prod)
			}
			require.Equal(t, g.NonTerminals(), res.grammar.NonTerminals())
		})
	}
}

func TestEliminateUnit_KeepsStartEmpty(t *testing.T) {
	g := newTestGrammar(t, `S: A; A: ;`)
	g, err := EliminateEpsilon(g, EmptyStringKeep)
	require.NoError(t, err)

	u := EliminateUnit(g)
	testInvariants(t, u)
	testProductionTexts(t, []string{
		"S -> ε",
	}, u)
}

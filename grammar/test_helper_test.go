package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/greibach/grammar/symbol"
	"github.com/nihei9/greibach/spec"
)

func newTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	s, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse a grammar: %v", err)
	}
	b := GrammarBuilder{
		Spec: s,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return g
}

type testProductionGenerator func(lhs string, rhs ...string) *Production

// newTestProductionGenerator resolves names against g; ε stands for the empty production.
func newTestProductionGenerator(t *testing.T, g *Grammar) testProductionGenerator {
	return func(lhs string, rhs ...string) *Production {
		t.Helper()

		l, ok := g.symbolOf(lhs)
		if !ok {
			t.Fatalf("symbol was not found: %v", lhs)
		}
		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			sym, ok := g.symbolOf(text)
			if !ok {
				t.Fatalf("symbol was not found: %v", text)
			}
			rhsSym = append(rhsSym, sym)
		}
		prod, err := newProduction(l, rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}

		return prod
	}
}

// productionTexts renders the productions of g in order, one `LEFT -> s1 s2` string each.
func productionTexts(g *Grammar) []string {
	var texts []string
	for _, prod := range g.Productions() {
		texts = append(texts, prod.String())
	}
	return texts
}

func testProductionTexts(t *testing.T, expected []string, g *Grammar) {
	t.Helper()

	actual := productionTexts(g)
	if len(actual) != len(expected) {
		t.Fatalf("unexpected productions; want: %v, got: %v\nwant:\n%v\ngot:\n%v", len(expected), len(actual), strings.Join(expected, "\n"), strings.Join(actual, "\n"))
	}
	for i, e := range expected {
		if actual[i] != e {
			t.Fatalf("unexpected production #%v; want: %v, got: %v\ngot:\n%v", i, e, actual[i], strings.Join(actual, "\n"))
		}
	}
}

func testInvariants(t *testing.T, g *Grammar) {
	t.Helper()

	if err := g.Validate(); err != nil {
		t.Fatalf("a grammar violates the invariants: %v\n%v", err, g)
	}
}

func rhsKeyText(rhs []symbol.Symbol) string {
	names := make([]string, len(rhs))
	for i, sym := range rhs {
		names[i] = sym.Name()
	}
	return strings.Join(names, " ")
}

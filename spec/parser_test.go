package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/greibach/error"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		grammar *Grammar
		synErr  *SyntaxError
	}{
		{
			caption: "identifiers on the left of a colon are non-terminals",
			src: `
S
    : a A
    ;
A
    : S
    | b
    ;
`,
			grammar: &Grammar{
				NonTerminals: []string{"S", "A"},
				Terminals:    []string{"a", "b"},
				Start:        "S",
				Productions: []*Production{
					{LHS: "S", RHS: []string{"a", "A"}},
					{LHS: "A", RHS: []string{"S"}},
					{LHS: "A", RHS: []string{"b"}},
				},
			},
		},
		{
			caption: "%start overrides the first non-terminal",
			src: `
// comments are ignored
%start B
A: x;
B: A A;
`,
			grammar: &Grammar{
				NonTerminals: []string{"A", "B"},
				Terminals:    []string{"x"},
				Start:        "B",
				Productions: []*Production{
					{LHS: "A", RHS: []string{"x"}},
					{LHS: "B", RHS: []string{"A", "A"}},
				},
			},
		},
		{
			caption: "ε and an empty alternative denote the empty string",
			src: `
S: a B | ;
B: ε;
`,
			grammar: &Grammar{
				NonTerminals: []string{"S", "B"},
				Terminals:    []string{"a"},
				Start:        "S",
				Productions: []*Production{
					{LHS: "S", RHS: []string{"a", "B"}},
					{LHS: "S", RHS: []string{}},
					{LHS: "B", RHS: []string{Epsilon}},
				},
			},
		},
		{
			caption: "quoted strings are terminals",
			src: `
E: E '+' T | T;
T: '(' E ')' | 'id';
`,
			grammar: &Grammar{
				NonTerminals: []string{"E", "T"},
				Terminals:    []string{"+", "(", ")", "id"},
				Start:        "E",
				Productions: []*Production{
					{LHS: "E", RHS: []string{"E", "+", "T"}},
					{LHS: "E", RHS: []string{"T"}},
					{LHS: "T", RHS: []string{"(", "E", ")"}},
					{LHS: "T", RHS: []string{"id"}},
				},
			},
		},
		{
			caption: "a grammar needs a production",
			src:     `// nothing`,
			synErr:  synErrNoProduction,
		},
		{
			caption: "a production needs a colon",
			src:     `S a;`,
			synErr:  synErrNoColon,
		},
		{
			caption: "a production needs a semicolon",
			src:     `S: a`,
			synErr:  synErrNoSemicolon,
		},
		{
			caption: "ε cannot be mixed with other symbols",
			src:     `S: a ε;`,
			synErr:  synErrEpsilonNotAlone,
		},
		{
			caption: "%start cannot follow productions",
			src:     `S: a; %start S`,
			synErr:  synErrMisplacedStart,
		},
		{
			caption: "%start needs a name",
			src:     `%start : a;`,
			synErr:  synErrNoStartSymbol,
		},
		{
			caption: "a string literal must be closed",
			src:     `S: 'a;`,
			synErr:  synErrUnclosedString,
		},
		{
			caption: "a string literal cannot be empty",
			src:     `S: '';`,
			synErr:  synErrEmptyString,
		},
		{
			caption: "an unknown character is an invalid token",
			src:     `S: a # b;`,
			synErr:  synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.synErr), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			for _, prod := range g.Productions {
				prod.Row = 0
			}
			require.Equal(t, tt.grammar, g)
		})
	}
}

func TestParseBytes_AttachesSource(t *testing.T) {
	src := []byte("S\n    : a\n    ;\nA a;\n")
	_, err := ParseBytes("broken", src)
	require.Error(t, err)

	var specErr *verr.SpecError
	require.True(t, errors.As(err, &specErr))
	require.Equal(t, "broken", specErr.SourceName)
	require.Equal(t, 4, specErr.Row)
	require.Contains(t, specErr.Error(), "\n    A a;")
}

func TestParse_RecordsRows(t *testing.T) {
	g, err := Parse(strings.NewReader("S\n    : a\n    | b\n    ;\n"))
	require.NoError(t, err)
	require.Len(t, g.Productions, 2)
	require.Equal(t, 2, g.Productions[0].Row)
	require.Equal(t, 3, g.Productions[1].Row)
}

func TestGrammar_String(t *testing.T) {
	g := &Grammar{
		Productions: []*Production{
			{LHS: "S", RHS: []string{"a", "A"}},
			{LHS: "A", RHS: []string{}},
		},
	}
	require.Equal(t, "S -> a A\nA -> ε\n", g.String())
}

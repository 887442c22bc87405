package grammar

import (
	"errors"
	"testing"

	verr "github.com/nihei9/greibach/error"
	"github.com/stretchr/testify/require"
)

func TestConvertToGreibach(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		helpers []string
		prods   []string
	}{
		{
			caption: "one helper serves every occurrence of a terminal",
			src:     `S: a b | c b S;`,
			helpers: []string{"N1"},
			prods: []string{
				"S -> a N1",
				"N1 -> b",
				"S -> c N1 S",
			},
		},
		{
			caption: "a helper name avoids the names in use",
			src:     `S: a N1 b; N1: c;`,
			helpers: []string{"N2"},
			prods: []string{
				"S -> a N1 N2",
				"N2 -> b",
				"N1 -> c",
			},
		},
		{
			caption: "the empty production of the start symbol stays first",
			src:     `S: '[' S ']' S | '[' ']' | ;`,
			helpers: []string{"N1"},
			prods: []string{
				"S -> ε",
				"S -> [ S N1 S",
				"N1 -> ]",
				"S -> [ N1",
			},
		},
		{
			caption: "a grammar already in Greibach normal form stays as it is",
			src:     `S: a A; A: a A | b;`,
			helpers: nil,
			prods: []string{
				"S -> a A",
				"A -> a A",
				"A -> b",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := newTestGrammar(t, tt.src)
			res, err := convertToGreibach(g, logger{})
			require.NoError(t, err)
			testInvariants(t, res.grammar)
			require.NoError(t, CheckGreibach(res.grammar))
			require.Equal(t, tt.helpers, res.helpers)
			testProductionTexts(t, tt.prods, res.grammar)

			again, err := ConvertToGreibach(res.grammar)
			require.NoError(t, err)
			require.Equal(t, res.grammar.String(), again.String())
		})
	}
}

func TestConvertToGreibach_RejectsLeadingNonTerminal(t *testing.T) {
	_, err := ConvertToGreibach(newTestGrammar(t, `S: A a; A: a;`))
	require.ErrorIs(t, err, ErrNotGreibach)
}

func TestCheckGreibach(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		errs    []*SemanticError
	}{
		{
			caption: "a production in Greibach normal form",
			src:     `S: a S B | ; B: b;`,
		},
		{
			caption: "a leading non-terminal and an embedded terminal",
			src:     `S: A a; A: a;`,
			errs:    []*SemanticError{semErrLeadingNonTerminal, semErrEmbeddedTerminal},
		},
		{
			caption: "an empty production of a non-start symbol",
			src:     `S: a A; A: ;`,
			errs:    []*SemanticError{semErrNonStartEmpty},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := CheckGreibach(newTestGrammar(t, tt.src))
			if len(tt.errs) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrNotGreibach)

			var specErrs verr.SpecErrors
			if !errors.As(err, &specErrs) {
				t.Fatalf("unexpected error type: %T: %v", err, err)
			}
			require.Len(t, specErrs, len(tt.errs))
			for i, e := range tt.errs {
				require.ErrorIs(t, specErrs[i], e)
			}
		})
	}
}

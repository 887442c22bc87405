package catalog

import (
	"errors"
	"testing"

	verr "github.com/nihei9/greibach/error"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.Equal(t, []string{
		"arith",
		"balanced",
		"chain",
		"cycle",
		"epsilon",
		"greibach",
		"nullable",
		"useless",
	}, Names())
}

func TestLoad(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Spec(name)
			require.NoError(t, err)
			require.NotEmpty(t, s.Productions)

			g, err := Load(name)
			require.NoError(t, err)
			require.NoError(t, g.Validate())
			require.Equal(t, s.Start, g.Start().Name())
		})
	}
}

func TestLoad_Greibach(t *testing.T) {
	g, err := Load("greibach")
	require.NoError(t, err)
	require.Equal(t, "S", g.Start().Name())
	require.Equal(t, []string{"S", "A"}, g.NonTerminals())
	require.Equal(t, []string{"a", "b"}, g.Terminals())
	require.Equal(t, "S -> a A\nA -> S\nA -> b\n", g.String())
}

func TestLoad_UnknownGrammar(t *testing.T) {
	_, err := Load("nothing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "arith, balanced")

	_, err = Source("nothing")
	require.Error(t, err)

	var specErrs verr.SpecErrors
	require.False(t, errors.As(err, &specErrs))
}

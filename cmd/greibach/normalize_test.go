package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nihei9/greibach/grammar"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteNormalized(t *testing.T) {
	g, err := readGrammar("greibach")
	require.NoError(t, err)
	gnf, report, err := grammar.Normalize(g, grammar.EnableReporting())
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, writeNormalized(&b, formatText, gnf, nil))
		require.Equal(t, "S -> a A\nA -> a A\nA -> b\n", b.String())
	})

	t.Run("text with a report", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, writeNormalized(&b, formatText, gnf, report))
		out := b.String()
		require.True(t, strings.HasPrefix(out, "# greibach\n\nS -> a A\n"))
		require.Contains(t, out, "# Report")
		require.Contains(t, out, "empty string: keep")
		require.Contains(t, out, "removed unit productions:\n    A -> S")
		require.Contains(t, out, "terminal helpers: -")
	})

	t.Run("json", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, writeNormalized(&b, formatJSON, gnf, report))
		var out normalizeOutput
		require.NoError(t, json.Unmarshal(b.Bytes(), &out))
		require.Equal(t, gnf.Spec(), out.Grammar)
		require.Equal(t, report, out.Report)
	})

	t.Run("yaml", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, writeNormalized(&b, formatYAML, gnf, nil))
		var out normalizeOutput
		require.NoError(t, yaml.Unmarshal(b.Bytes(), &out))
		require.Equal(t, gnf.Spec(), out.Grammar)
		require.Nil(t, out.Report)
	})
}

func TestReadGrammar_UnknownName(t *testing.T) {
	_, err := readGrammar("no-such-grammar")
	require.Error(t, err)
}

// Package catalog provides the demo grammars shipped with greibach.
package catalog

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	verr "github.com/nihei9/greibach/error"
	"github.com/nihei9/greibach/grammar"
	"github.com/nihei9/greibach/spec"
)

const ext = ".grm"

//go:embed grammars/*.grm
var grammars embed.FS

// Names returns the names of the demo grammars in alphabetical order.
func Names() []string {
	es, err := grammars.ReadDir("grammars")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range es {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names
}

// Source returns the text of a demo grammar.
func Source(name string) ([]byte, error) {
	src, err := grammars.ReadFile(path.Join("grammars", name+ext))
	if err != nil {
		return nil, fmt.Errorf("unknown grammar %v; available grammars: %v", name, strings.Join(Names(), ", "))
	}
	return src, nil
}

// Spec parses a demo grammar without validating it.
func Spec(name string) (*spec.Grammar, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	return spec.ParseBytes(name, src)
}

// Load parses and validates a demo grammar.
func Load(name string) (*grammar.Grammar, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	s, err := spec.ParseBytes(name, src)
	if err != nil {
		return nil, err
	}
	b := grammar.GrammarBuilder{
		Spec: s,
	}
	g, err := b.Build()
	if err != nil {
		if specErrs, ok := err.(verr.SpecErrors); ok {
			for _, e := range specErrs {
				e.SourceName = name
				e.Source = src
			}
		}
		return nil, err
	}
	return g, nil
}

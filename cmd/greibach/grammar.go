package main

import (
	"fmt"
	"strings"

	"github.com/nihei9/greibach/catalog"
	"github.com/nihei9/greibach/grammar"
)

func readGrammar(name string) (*grammar.Grammar, error) {
	for _, n := range catalog.Names() {
		if n == name {
			return catalog.Load(name)
		}
	}
	return nil, fmt.Errorf("Unknown grammar %v; run `greibach list` to see the available grammars: %v", name, strings.Join(catalog.Names(), ", "))
}

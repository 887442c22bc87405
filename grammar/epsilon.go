package grammar

import (
	"fmt"
	"log/slog"

	"github.com/nihei9/greibach/grammar/symbol"
)

// EmptyStringPolicy decides what happens to the empty string when the start symbol can derive it.
type EmptyStringPolicy string

const (
	// EmptyStringKeep keeps a single production `start -> ε` when the language contains the empty string.
	// It is the only empty production any stage outputs and is exempt from the Greibach shape.
	EmptyStringKeep = EmptyStringPolicy("keep")

	// EmptyStringDrop removes the empty string from the language.
	EmptyStringDrop = EmptyStringPolicy("drop")
)

func (p EmptyStringPolicy) String() string {
	return string(p)
}

func ParseEmptyStringPolicy(s string) (EmptyStringPolicy, error) {
	switch p := EmptyStringPolicy(s); p {
	case EmptyStringKeep, EmptyStringDrop:
		return p, nil
	}
	return "", fmt.Errorf("unknown empty-string policy: %v; it must be %v or %v", s, EmptyStringKeep, EmptyStringDrop)
}

// maxNullableOccurrences bounds the number of nullable symbols in one right-hand side, since the rewriting
// emits up to 2^n productions for n occurrences.
const maxNullableOccurrences = 20

// genNullableSet returns the non-terminals deriving the empty string. Empty productions seed the set; a
// production whose right-hand side consists of nullable non-terminals only adds its LHS. The loop stops
// after a full pass adds nothing.
func genNullableSet(prods *productionSet) map[symbol.Symbol]struct{} {
	nullable := map[symbol.Symbol]struct{}{}
	for _, prod := range prods.getAllProductions() {
		if prod.IsEmpty() {
			nullable[prod.lhs] = struct{}{}
		}
	}
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			if _, ok := nullable[prod.lhs]; ok {
				continue
			}
			if !isNullable(nullable, prod) {
				continue
			}
			nullable[prod.lhs] = struct{}{}
			more = true
		}
		if !more {
			break
		}
	}
	return nullable
}

func isNullable(nullable map[symbol.Symbol]struct{}, prod *Production) bool {
	for _, sym := range prod.rhs {
		switch sym.Kind() {
		case symbol.KindEpsilon:
		case symbol.KindNonTerminal:
			if _, ok := nullable[sym]; !ok {
				return false
			}
		case symbol.KindTerminal:
			return false
		default:
			return false
		}
	}
	return true
}

// EliminateEpsilon returns a grammar without empty productions deriving the same language. Whether the
// empty string itself survives is decided by policy.
func EliminateEpsilon(g *Grammar, policy EmptyStringPolicy) (*Grammar, error) {
	res, err := eliminateEpsilon(g, policy, logger{})
	if err != nil {
		return nil, err
	}
	return res.grammar, nil
}

type epsilonResult struct {
	grammar  *Grammar
	nullable []string
}

func eliminateEpsilon(g *Grammar, policy EmptyStringPolicy, log logger) (*epsilonResult, error) {
	if _, err := ParseEmptyStringPolicy(policy.String()); err != nil {
		return nil, err
	}

	nullable := genNullableSet(g.productionSet)
	var nullableNames []string
	for _, name := range g.nonTerminals.Names() {
		if _, ok := nullable[symbol.MustNonTerminal(name)]; ok {
			nullableNames = append(nullableNames, name)
		}
	}
	log.debug("computed the nullable set", slog.Any("nullable", nullableNames))

	prods := newProductionSet()
	if _, ok := nullable[g.start]; ok && policy == EmptyStringKeep {
		prods.append(newEmptyProduction(g.start))
	}
	for _, prod := range g.productionSet.getAllProductions() {
		if prod.IsEmpty() {
			log.trace("dropped an empty production", productionAttr(prod))
			continue
		}

		var positions []int
		for i, sym := range prod.rhs {
			if _, ok := nullable[sym]; ok {
				positions = append(positions, i)
			}
		}
		if len(positions) == 0 {
			prods.append(prod)
			continue
		}
		if len(positions) > maxNullableOccurrences {
			return nil, fmt.Errorf("too many nullable symbols in a production; limit: %v, production: %v", maxNullableOccurrences, prod)
		}

		for _, rhs := range genDeletionRewrites(prod.rhs, positions) {
			if len(rhs) == 0 {
				continue
			}
			p := mustNewProduction(prod.lhs, rhs)
			if prods.append(p) && !p.Equals(prod) {
				log.trace("added a production by deleting nullable symbols", productionAttr(p), slog.String("from", prod.String()))
			}
		}
	}

	return &epsilonResult{
		grammar:  g.withProductions(prods),
		nullable: nullableNames,
	}, nil
}

// genDeletionRewrites enumerates every right-hand side obtained by deleting a subset of the symbols at
// positions. Bit i of the mask deletes the symbol at positions[i]; mask 0 reproduces rhs itself.
func genDeletionRewrites(rhs []symbol.Symbol, positions []int) [][]symbol.Symbol {
	perms := 1 << len(positions)
	rewrites := make([][]symbol.Symbol, 0, perms)
	for mask := 0; mask < perms; mask++ {
		deleted := map[int]struct{}{}
		for i, pos := range positions {
			if (mask>>i)&1 > 0 {
				deleted[pos] = struct{}{}
			}
		}
		r := make([]symbol.Symbol, 0, len(rhs)-len(deleted))
		for i, sym := range rhs {
			if _, ok := deleted[i]; ok {
				continue
			}
			r = append(r, sym)
		}
		rewrites = append(rewrites, r)
	}
	return rewrites
}

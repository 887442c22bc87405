package grammar

import (
	"log/slog"

	"github.com/nihei9/greibach/grammar/symbol"
)

// genGeneratingSet returns the non-terminals deriving at least one terminal string, the empty string
// included. It is a monotone fixed point over the finite set of non-terminals.
func genGeneratingSet(prods *productionSet) map[symbol.Symbol]struct{} {
	gen := map[symbol.Symbol]struct{}{}
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			if _, ok := gen[prod.lhs]; ok {
				continue
			}
			if !isGenerating(gen, prod) {
				continue
			}
			gen[prod.lhs] = struct{}{}
			more = true
		}
		if !more {
			break
		}
	}
	return gen
}

func isGenerating(gen map[symbol.Symbol]struct{}, prod *Production) bool {
	for _, sym := range prod.rhs {
		switch sym.Kind() {
		case symbol.KindTerminal, symbol.KindEpsilon:
		case symbol.KindNonTerminal:
			if _, ok := gen[sym]; !ok {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Reduce removes useless productions: those mentioning a non-terminal that derives no terminal string and
// those whose LHS is unreachable from the start symbol. The symbol sets are shrunk to the symbols still in
// use; the start symbol always stays.
func Reduce(g *Grammar) *Grammar {
	reduced, _ := reduce(g, logger{})
	return reduced
}

func reduce(g *Grammar, log logger) (*Grammar, []string) {
	gen := genGeneratingSet(g.productionSet)
	generating := newProductionSet()
	for _, prod := range g.productionSet.getAllProductions() {
		if _, ok := gen[prod.lhs]; !ok || !isGenerating(gen, prod) {
			continue
		}
		generating.append(prod)
	}

	reachable := genClosure(generating, []symbol.Symbol{g.start}, followAll)
	prods := newProductionSet()
	for _, prod := range generating.getAllProductions() {
		if !reachable.contains(prod.lhs) {
			continue
		}
		prods.append(prod)
	}

	reduced := g.withUsedSymbols(prods)
	var removed []string
	for _, name := range g.nonTerminals.Names() {
		if reduced.nonTerminals.Contains(name) {
			continue
		}
		removed = append(removed, name)
	}
	if len(removed) > 0 {
		log.debug("removed useless non-terminals", slog.Any("non_terminals", removed))
	}
	return reduced, removed
}

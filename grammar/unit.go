package grammar

import (
	"log/slog"
)

// EliminateUnit returns a grammar without unit productions `A -> B`. Each unit production is replaced by
// copies, with A as LHS, of the non-unit productions reachable from B through chains of unit productions.
func EliminateUnit(g *Grammar) *Grammar {
	res := eliminateUnit(g, logger{})
	return res.grammar
}

type unitResult struct {
	grammar *Grammar
	removed []string
}

func eliminateUnit(g *Grammar, log logger) *unitResult {
	prods := newProductionSet()
	var removed []string
	for _, prod := range g.productionSet.getAllProductions() {
		if !prod.IsUnit() {
			prods.append(prod)
			continue
		}

		removed = append(removed, prod.String())
		c := genClosure(g.productionSet, prod.rhs, followUnit)
		if log.traceEnabled() {
			log.trace("expanded a unit production", productionAttr(prod), symbolsAttr("reached", c.reached))
		}
		for _, cand := range c.candidates {
			p := mustNewProduction(prod.lhs, cand.rhs)
			if prods.append(p) {
				log.trace("added a production replacing a unit production", productionAttr(p), slog.String("from", cand.String()))
			}
		}
	}
	if len(removed) > 0 {
		log.debug("removed unit productions", slog.Int("count", len(removed)))
	}

	return &unitResult{
		grammar: g.withProductions(prods),
		removed: removed,
	}
}

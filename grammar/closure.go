package grammar

import "github.com/nihei9/greibach/grammar/symbol"

// followFunc inspects a production met during a closure walk. It returns the symbols the walk continues
// from and whether the production is a candidate the caller wants to collect. Only non-terminals among the
// returned symbols are followed.
type followFunc func(prod *Production) ([]symbol.Symbol, bool)

type closure struct {
	// reached lists the expanded non-terminals in breadth-first order, seeds included.
	reached []symbol.Symbol

	// candidates lists the collected productions in the order they were met.
	candidates []*Production

	visited map[symbol.Symbol]struct{}
}

func (c *closure) contains(sym symbol.Symbol) bool {
	_, ok := c.visited[sym]
	return ok
}

// genClosure walks breadth-first from seeds over the productions of each reached non-terminal. A
// non-terminal is expanded at most once however many paths reach it, so the walk terminates on cyclic
// grammars and never collects a production twice.
func genClosure(prods *productionSet, seeds []symbol.Symbol, follow followFunc) *closure {
	c := &closure{
		visited: map[symbol.Symbol]struct{}{},
	}
	queue := make([]symbol.Symbol, 0, len(seeds))
	for _, sym := range seeds {
		if sym.IsNonTerminal() {
			queue = append(queue, sym)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if c.contains(cur) {
			continue
		}
		c.visited[cur] = struct{}{}
		c.reached = append(c.reached, cur)

		ps, _ := prods.findByLHS(cur)
		for _, prod := range ps {
			next, candidate := follow(prod)
			if candidate {
				c.candidates = append(c.candidates, prod)
			}
			for _, sym := range next {
				if !sym.IsNonTerminal() || c.contains(sym) {
					continue
				}
				queue = append(queue, sym)
			}
		}
	}
	return c
}

// followUnit follows unit productions and collects every other non-empty production.
func followUnit(prod *Production) ([]symbol.Symbol, bool) {
	if prod.IsUnit() {
		return prod.rhs, false
	}
	return nil, !prod.IsEmpty()
}

// followAll follows every non-terminal a production mentions.
func followAll(prod *Production) ([]symbol.Symbol, bool) {
	return prod.rhs, false
}

// followLeftCorner follows the leading symbol of each production.
func followLeftCorner(prod *Production) ([]symbol.Symbol, bool) {
	return prod.rhs[:1], false
}

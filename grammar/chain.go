package grammar

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nihei9/greibach/grammar/symbol"
)

var (
	ErrEmptyProduction = errors.New("only the start symbol may have an empty production")
	ErrUnitProduction  = errors.New("unit productions must be eliminated beforehand")
	ErrTooManyRules    = errors.New("the grammar grows beyond the production limit")
)

// maxProductions bounds the size of a grammar during substitution. Leading substitution can multiply the
// number of productions, so a pathological input fails instead of exhausting memory.
const maxProductions = 1 << 16

// alternatives is the list of right-hand sides of one non-terminal without duplicates.
type alternatives struct {
	rhss [][]symbol.Symbol
	seen map[string]struct{}
}

func newAlternatives() *alternatives {
	return &alternatives{
		seen: map[string]struct{}{},
	}
}

func rhsKey(rhs []symbol.Symbol) string {
	var b []byte
	for _, sym := range rhs {
		b = append(b, sym.Byte()...)
	}
	return string(b)
}

func (a *alternatives) add(rhs []symbol.Symbol) bool {
	key := rhsKey(rhs)
	if _, ok := a.seen[key]; ok {
		return false
	}
	a.seen[key] = struct{}{}
	a.rhss = append(a.rhss, rhs)
	return true
}

func concatSymbols(seqs ...[]symbol.Symbol) []symbol.Symbol {
	n := 0
	for _, seq := range seqs {
		n += len(seq)
	}
	r := make([]symbol.Symbol, 0, n)
	for _, seq := range seqs {
		r = append(r, seq...)
	}
	return r
}

// ruleTable is the working copy of a grammar the chain elimination rewrites in place.
type ruleTable struct {
	rules map[symbol.Symbol]*alternatives
	count int
}

func newRuleTable(order []symbol.Symbol, prods *productionSet) *ruleTable {
	t := &ruleTable{
		rules: map[symbol.Symbol]*alternatives{},
	}
	for _, nt := range order {
		t.rules[nt] = newAlternatives()
	}
	for _, prod := range prods.getAllProductions() {
		if t.rules[prod.lhs].add(prod.rhs) {
			t.count++
		}
	}
	return t
}

func (t *ruleTable) replace(lhs symbol.Symbol, alts *alternatives) error {
	t.count += len(alts.rhss) - len(t.rules[lhs].rhss)
	if t.count > maxProductions {
		return fmt.Errorf("%w; limit: %v, non-terminal: %v", ErrTooManyRules, maxProductions, lhs)
	}
	t.rules[lhs] = alts
	return nil
}

// substituteLeading replaces every alternative of lhs that starts with one of the non-terminals accepted
// by target by the alternatives of that non-terminal followed by the rest of the original alternative.
func (t *ruleTable) substituteLeading(lhs symbol.Symbol, target func(symbol.Symbol) bool) error {
	alts := newAlternatives()
	for _, rhs := range t.rules[lhs].rhss {
		head := rhs[0]
		if !head.IsNonTerminal() || !target(head) {
			alts.add(rhs)
			continue
		}
		for _, delta := range t.rules[head].rhss {
			alts.add(concatSymbols(delta, rhs[1:]))
		}
	}
	return t.replace(lhs, alts)
}

// eliminateLeftRecursion turns `A -> A α | β` into `A -> β | β A'` and `A' -> α | α A'`. It reports
// whether A was directly left-recursive.
func (t *ruleTable) eliminateLeftRecursion(lhs symbol.Symbol, names *nameAllocator) (symbol.Symbol, bool, error) {
	var recs, bases [][]symbol.Symbol
	for _, rhs := range t.rules[lhs].rhss {
		if rhs[0] != lhs {
			bases = append(bases, rhs)
			continue
		}
		// A -> A derives nothing new.
		if len(rhs) == 1 {
			continue
		}
		recs = append(recs, rhs[1:])
	}
	if len(recs) == 0 {
		return symbol.SymbolNil, false, nil
	}

	helper := symbol.MustNonTerminal(names.primed(lhs.Name()))
	alts := newAlternatives()
	for _, beta := range bases {
		alts.add(beta)
		alts.add(concatSymbols(beta, []symbol.Symbol{helper}))
	}
	helperAlts := newAlternatives()
	for _, alpha := range recs {
		helperAlts.add(alpha)
		helperAlts.add(concatSymbols(alpha, []symbol.Symbol{helper}))
	}
	t.rules[helper] = newAlternatives()
	if err := t.replace(lhs, alts); err != nil {
		return symbol.SymbolNil, false, err
	}
	if err := t.replace(helper, helperAlts); err != nil {
		return symbol.SymbolNil, false, err
	}
	return helper, true, nil
}

// EliminateNonTerminalChains returns an equivalent grammar in which every production's right-hand side
// begins with a terminal, so no production consists of non-terminals only. The input must have no unit
// productions and no empty production except `start -> ε`.
//
// Non-terminals are ordered A1..An. Leading Aj with j < i are substituted into Ai and immediate left
// recursion of Ai is removed with a fresh Ai'. Every Ai then starts with a terminal or a later Aj, so
// substituting back from An down to A1, and then into the primed helpers in creation order, exposes a
// leading terminal everywhere.
func EliminateNonTerminalChains(g *Grammar) (*Grammar, error) {
	res, err := eliminateNonTerminalChains(g, logger{})
	if err != nil {
		return nil, err
	}
	return res.grammar, nil
}

type chainResult struct {
	grammar       *Grammar
	leftRecursive []string
	useless       []string
	helpers       []string
}

func eliminateNonTerminalChains(g *Grammar, log logger) (*chainResult, error) {
	rest, empty := splitStartEmpty(g)
	for _, prod := range rest.productionSet.getAllProductions() {
		if prod.IsEmpty() {
			return nil, fmt.Errorf("%w; production: %v", ErrEmptyProduction, prod)
		}
		if prod.IsUnit() {
			return nil, fmt.Errorf("%w; production: %v", ErrUnitProduction, prod)
		}
	}

	reduced, useless := reduce(rest, log)

	var order []symbol.Symbol
	for _, name := range reduced.nonTerminals.Names() {
		order = append(order, symbol.MustNonTerminal(name))
	}

	var leftRec []string
	for _, nt := range order {
		var corners []symbol.Symbol
		for _, prod := range reduced.ProductionsOf(nt) {
			corners = append(corners, prod.rhs[0])
		}
		c := genClosure(reduced.productionSet, corners, followLeftCorner)
		if c.contains(nt) {
			leftRec = append(leftRec, nt.Name())
		}
	}
	if len(leftRec) > 0 {
		log.debug("found left-recursive non-terminals", slog.Any("non_terminals", leftRec))
	}

	t := newRuleTable(order, reduced.productionSet)
	names := newNameAllocator(g)
	index := map[symbol.Symbol]int{}
	for i, nt := range order {
		index[nt] = i
	}

	var helpers []symbol.Symbol
	for i, ai := range order {
		for j := 0; j < i; j++ {
			aj := order[j]
			err := t.substituteLeading(ai, func(sym symbol.Symbol) bool {
				return sym == aj
			})
			if err != nil {
				return nil, err
			}
		}
		helper, ok, err := t.eliminateLeftRecursion(ai, names)
		if err != nil {
			return nil, err
		}
		if ok {
			log.trace("removed immediate left recursion", slog.String("non_terminal", ai.Name()), slog.String("helper", helper.Name()))
			helpers = append(helpers, helper)
		}
	}

	isOrdered := func(sym symbol.Symbol) bool {
		_, ok := index[sym]
		return ok
	}
	for i := len(order) - 1; i >= 0; i-- {
		if err := t.substituteLeading(order[i], isOrdered); err != nil {
			return nil, err
		}
	}
	isHelperOrOrdered := func(sym symbol.Symbol) bool {
		if isOrdered(sym) {
			return true
		}
		_, ok := t.rules[sym]
		return ok
	}
	for _, z := range helpers {
		if err := t.substituteLeading(z, isHelperOrOrdered); err != nil {
			return nil, err
		}
	}

	prods := newProductionSet()
	if empty != nil {
		prods.append(empty)
	}
	for _, nt := range append(order, helpers...) {
		for _, rhs := range t.rules[nt].rhss {
			if !rhs[0].IsTerminal() {
				return nil, fmt.Errorf("a production still starts with a non-terminal; LHS: %v, RHS: %v", nt, rhs)
			}
			prods.append(mustNewProduction(nt, rhs))
		}
	}

	// Substitution drops the alternatives leading with a non-terminal that lost all of its productions,
	// which can leave helpers unreachable.
	res, _ := reduce(reduced.withProductions(prods), log)

	var helperNames []string
	for _, z := range helpers {
		if !res.nonTerminals.Contains(z.Name()) {
			continue
		}
		helperNames = append(helperNames, z.Name())
	}
	return &chainResult{
		grammar:       res,
		leftRecursive: leftRec,
		useless:       useless,
		helpers:       helperNames,
	}, nil
}

// splitStartEmpty separates `start -> ε` from the rest of the grammar so that the stages after the
// epsilon elimination never substitute it.
func splitStartEmpty(g *Grammar) (*Grammar, *Production) {
	var empty *Production
	prods := newProductionSet()
	for _, prod := range g.productionSet.getAllProductions() {
		if prod.IsEmpty() && prod.lhs == g.start && empty == nil {
			empty = prod
			continue
		}
		prods.append(prod)
	}
	if empty == nil {
		return g, nil
	}
	return newGrammar(g.start, g.nonTerminals, g.terminals, prods), empty
}

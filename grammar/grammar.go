package grammar

import (
	"fmt"
	"strings"

	verr "github.com/nihei9/greibach/error"
	"github.com/nihei9/greibach/grammar/symbol"
	"github.com/nihei9/greibach/spec"
)

// Grammar is an immutable context-free grammar. Every transformation in this package returns a new Grammar
// and leaves its input untouched.
type Grammar struct {
	nonTerminals  *symbol.Set
	terminals     *symbol.Set
	start         symbol.Symbol
	productionSet *productionSet
}

func newGrammar(start symbol.Symbol, nonTerms, terms *symbol.Set, prods *productionSet) *Grammar {
	return &Grammar{
		nonTerminals:  nonTerms,
		terminals:     terms,
		start:         start,
		productionSet: prods,
	}
}

// withProductions returns a grammar sharing g's start symbol and symbol sets. The sets are extended with
// every symbol the productions use.
func (g *Grammar) withProductions(prods *productionSet) *Grammar {
	nonTerms := g.nonTerminals.Clone()
	terms := g.terminals.Clone()
	for _, prod := range prods.getAllProductions() {
		nonTerms.Add(prod.lhs.Name())
		for _, sym := range prod.rhs {
			switch sym.Kind() {
			case symbol.KindNonTerminal:
				nonTerms.Add(sym.Name())
			case symbol.KindTerminal:
				terms.Add(sym.Name())
			case symbol.KindEpsilon:
			}
		}
	}
	return newGrammar(g.start, nonTerms, terms, prods)
}

// withUsedSymbols returns a grammar whose symbol sets contain exactly the start symbol and the symbols the
// productions use.
func (g *Grammar) withUsedSymbols(prods *productionSet) *Grammar {
	nonTerms := symbol.NewSet(g.start.Name())
	terms := symbol.NewSet()
	for _, prod := range prods.getAllProductions() {
		nonTerms.Add(prod.lhs.Name())
		for _, sym := range prod.rhs {
			switch sym.Kind() {
			case symbol.KindNonTerminal:
				nonTerms.Add(sym.Name())
			case symbol.KindTerminal:
				terms.Add(sym.Name())
			case symbol.KindEpsilon:
			}
		}
	}
	return newGrammar(g.start, nonTerms, terms, prods)
}

func (g *Grammar) Start() symbol.Symbol {
	return g.start
}

func (g *Grammar) NonTerminals() []string {
	return g.nonTerminals.Names()
}

func (g *Grammar) Terminals() []string {
	return g.terminals.Names()
}

func (g *Grammar) IsNonTerminal(name string) bool {
	return g.nonTerminals.Contains(name)
}

func (g *Grammar) IsTerminal(name string) bool {
	return g.terminals.Contains(name)
}

// Productions returns the productions in the order they were generated.
func (g *Grammar) Productions() []*Production {
	prods := g.productionSet.getAllProductions()
	ps := make([]*Production, len(prods))
	copy(ps, prods)
	return ps
}

func (g *Grammar) ProductionsOf(lhs symbol.Symbol) []*Production {
	prods, _ := g.productionSet.findByLHS(lhs)
	ps := make([]*Production, len(prods))
	copy(ps, prods)
	return ps
}

// Validate checks the structural invariants every Grammar must satisfy: the start symbol and every LHS are
// declared non-terminals, every RHS symbol is declared with its own kind, ε appears only alone, and no name
// is both a terminal and a non-terminal.
func (g *Grammar) Validate() error {
	var errs specErrors
	if g.start.IsNil() {
		errs = append(errs, &verr.SpecError{
			Cause: semErrNoStartSymbol,
		})
	} else if !g.start.IsNonTerminal() || !g.nonTerminals.Contains(g.start.Name()) {
		errs = append(errs, &verr.SpecError{
			Cause:  semErrUndefinedStart,
			Detail: g.start.Name(),
		})
	}
	for _, name := range g.terminals.Names() {
		if g.nonTerminals.Contains(name) {
			errs = append(errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: name,
			})
		}
	}
	if g.productionSet == nil {
		return errs.orNil()
	}
	for i, prod := range g.productionSet.getAllProductions() {
		if !prod.lhs.IsNonTerminal() || !g.nonTerminals.Contains(prod.lhs.Name()) {
			errs = append(errs, &verr.SpecError{
				Cause:      semErrUndefinedLHS,
				Detail:     prod.lhs.Name(),
				Production: i + 1,
			})
		}
		for _, sym := range prod.rhs {
			var declared bool
			switch sym.Kind() {
			case symbol.KindTerminal:
				declared = g.terminals.Contains(sym.Name())
			case symbol.KindNonTerminal:
				declared = g.nonTerminals.Contains(sym.Name())
			case symbol.KindEpsilon:
				declared = len(prod.rhs) == 1
				if !declared {
					errs = append(errs, &verr.SpecError{
						Cause:      semErrMixedEpsilon,
						Detail:     prod.String(),
						Production: i + 1,
					})
					continue
				}
			}
			if !declared {
				errs = append(errs, &verr.SpecError{
					Cause:      semErrUndefinedSym,
					Detail:     sym.Name(),
					Production: i + 1,
				})
			}
		}
	}
	return errs.orNil()
}

// Spec converts the grammar back to the caller-facing representation. An empty production gets the
// right-hand side [ε].
func (g *Grammar) Spec() *spec.Grammar {
	prods := make([]*spec.Production, 0, g.productionSet.len())
	for _, prod := range g.productionSet.getAllProductions() {
		rhs := make([]string, len(prod.rhs))
		for i, sym := range prod.rhs {
			rhs[i] = sym.Name()
		}
		prods = append(prods, &spec.Production{
			LHS: prod.lhs.Name(),
			RHS: rhs,
		})
	}
	return &spec.Grammar{
		NonTerminals: g.nonTerminals.Names(),
		Terminals:    g.terminals.Names(),
		Start:        g.start.Name(),
		Productions:  prods,
	}
}

// String renders one production per line in the form `LEFT -> s1 s2`.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, prod := range g.productionSet.getAllProductions() {
		fmt.Fprintln(&b, prod)
	}
	return b.String()
}

// symbolOf resolves a name against the grammar's symbol sets.
func (g *Grammar) symbolOf(name string) (symbol.Symbol, bool) {
	switch {
	case name == symbol.NameEpsilon:
		return symbol.Epsilon, true
	case g.nonTerminals.Contains(name):
		return symbol.MustNonTerminal(name), true
	case g.terminals.Contains(name):
		return symbol.MustTerminal(name), true
	}
	return symbol.SymbolNil, false
}

type specErrors verr.SpecErrors

func (errs specErrors) orNil() error {
	if len(errs) == 0 {
		return nil
	}
	return verr.SpecErrors(errs)
}

// GrammarBuilder validates a caller-supplied grammar specification and builds a Grammar from it. Build
// reports every problem it finds at once rather than stopping at the first one.
type GrammarBuilder struct {
	Spec *spec.Grammar

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.Spec == nil {
		return nil, verr.SpecErrors{
			{
				Cause: semErrNoStartSymbol,
			},
		}
	}

	nonTerms := symbol.NewSet()
	for _, name := range b.Spec.NonTerminals {
		if !b.checkName(name) {
			continue
		}
		nonTerms.Add(name)
	}
	terms := symbol.NewSet()
	for _, name := range b.Spec.Terminals {
		if !b.checkName(name) {
			continue
		}
		if nonTerms.Contains(name) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: name,
			})
			continue
		}
		terms.Add(name)
	}

	var start symbol.Symbol
	switch {
	case b.Spec.Start == "":
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoStartSymbol,
		})
	case !nonTerms.Contains(b.Spec.Start):
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrUndefinedStart,
			Detail: b.Spec.Start,
		})
	default:
		start = symbol.MustNonTerminal(b.Spec.Start)
	}

	g := newGrammar(start, nonTerms, terms, newProductionSet())
	prods := newProductionSet()
	for i, p := range b.Spec.Productions {
		prod, ok := b.buildProduction(g, i+1, p)
		if !ok {
			continue
		}
		prods.append(prod)
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return newGrammar(start, nonTerms, terms, prods), nil
}

func (b *GrammarBuilder) checkName(name string) bool {
	switch name {
	case "":
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrEmptyName,
		})
		return false
	case spec.Epsilon:
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrReservedName,
			Detail: name,
		})
		return false
	}
	return true
}

func (b *GrammarBuilder) buildProduction(g *Grammar, num int, p *spec.Production) (*Production, bool) {
	if p == nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:      semErrNoProductionSpec,
			Production: num,
		})
		return nil, false
	}

	ok := true
	lhs, found := g.symbolOf(p.LHS)
	if !found || !lhs.IsNonTerminal() {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:      semErrUndefinedLHS,
			Detail:     p.LHS,
			Production: num,
			Row:        p.Row,
		})
		ok = false
	}

	rhs := make([]symbol.Symbol, 0, len(p.RHS))
	for _, name := range p.RHS {
		sym, found := g.symbolOf(name)
		if !found {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:      semErrUndefinedSym,
				Detail:     name,
				Production: num,
				Row:        p.Row,
			})
			ok = false
			continue
		}
		if sym.IsEpsilon() && len(p.RHS) > 1 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:      semErrMixedEpsilon,
				Detail:     p.String(),
				Production: num,
				Row:        p.Row,
			})
			ok = false
			continue
		}
		rhs = append(rhs, sym)
	}
	if !ok {
		return nil, false
	}

	if len(rhs) == 0 {
		return newEmptyProduction(lhs), true
	}
	prod, err := newProduction(lhs, rhs)
	if err != nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:      err,
			Production: num,
			Row:        p.Row,
		})
		return nil, false
	}
	return prod, true
}

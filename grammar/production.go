package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nihei9/greibach/grammar/symbol"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs symbol.Symbol, rhs []symbol.Symbol) productionID {
	seq := lhs.Byte()
	for _, sym := range rhs {
		seq = append(seq, sym.Byte()...)
	}
	return productionID(sha256.Sum256(seq))
}

// Production is an immutable rule `lhs -> rhs`. An empty production has the right-hand side [ε].
type Production struct {
	id  productionID
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must contain at least one symbol; use ε for an empty production; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		switch sym.Kind() {
		case symbol.KindTerminal, symbol.KindNonTerminal:
		case symbol.KindEpsilon:
			if len(rhs) > 1 {
				return nil, fmt.Errorf("ε cannot be mixed with other symbols; LHS: %v, RHS: %v", lhs, rhs)
			}
		default:
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	r := make([]symbol.Symbol, len(rhs))
	copy(r, rhs)
	return &Production{
		id:  genProductionID(lhs, r),
		lhs: lhs,
		rhs: r,
	}, nil
}

func mustNewProduction(lhs symbol.Symbol, rhs []symbol.Symbol) *Production {
	prod, err := newProduction(lhs, rhs)
	if err != nil {
		panic(err)
	}
	return prod
}

func newEmptyProduction(lhs symbol.Symbol) *Production {
	return mustNewProduction(lhs, []symbol.Symbol{symbol.Epsilon})
}

func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

// RHS returns a copy of the right-hand side.
func (p *Production) RHS() []symbol.Symbol {
	rhs := make([]symbol.Symbol, len(p.rhs))
	copy(rhs, p.rhs)
	return rhs
}

func (p *Production) Len() int {
	return len(p.rhs)
}

func (p *Production) At(i int) symbol.Symbol {
	return p.rhs[i]
}

func (p *Production) Equals(q *Production) bool {
	return q.id == p.id
}

// IsEmpty reports whether the production derives the empty string directly.
func (p *Production) IsEmpty() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEpsilon()
}

// IsUnit reports whether the right-hand side is exactly one non-terminal.
func (p *Production) IsUnit() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsNonTerminal()
}

// IsNonTerminalOnly reports whether the right-hand side consists of non-terminals only.
func (p *Production) IsNonTerminalOnly() bool {
	for _, sym := range p.rhs {
		if !sym.IsNonTerminal() {
			return false
		}
	}
	return true
}

func (p *Production) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", p.lhs)
	for _, sym := range p.rhs {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

// productionSet keeps productions in insertion order and ignores structural duplicates.
type productionSet struct {
	prods     []*Production
	lhs2Prods map[symbol.Symbol][]*Production
	id2Prod   map[productionID]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*Production{},
		id2Prod:   map[productionID]*Production{},
	}
}

func (ps *productionSet) append(prod *Production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}

	ps.prods = append(ps.prods, prod)
	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.id2Prod[prod.id] = prod

	return true
}

func (ps *productionSet) contains(prod *Production) bool {
	_, ok := ps.id2Prod[prod.id]
	return ok
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*Production, bool) {
	if !lhs.IsNonTerminal() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() []*Production {
	return ps.prods
}

func (ps *productionSet) len() int {
	return len(ps.prods)
}

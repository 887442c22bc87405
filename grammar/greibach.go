package grammar

import (
	"errors"
	"fmt"
	"log/slog"

	verr "github.com/nihei9/greibach/error"
	"github.com/nihei9/greibach/grammar/symbol"
)

var (
	ErrNotGreibach = errors.New("a production is not in Greibach normal form")

	semErrLeadingNonTerminal = newSemanticError("the right-hand side must start with a terminal")
	semErrEmbeddedTerminal   = newSemanticError("only the first symbol of the right-hand side can be a terminal")
	semErrNonStartEmpty      = newSemanticError("only the start symbol can derive the empty string")
)

// CheckGreibach verifies that every production has the shape `A -> a B1 ... Bn`. The production
// `start -> ε` is the only accepted exception.
func CheckGreibach(g *Grammar) error {
	if g.productionSet == nil {
		return nil
	}
	var errs specErrors
	for i, prod := range g.productionSet.getAllProductions() {
		if prod.IsEmpty() {
			if prod.lhs != g.start {
				errs = append(errs, &verr.SpecError{
					Cause:      semErrNonStartEmpty,
					Detail:     prod.String(),
					Production: i + 1,
				})
			}
			continue
		}
		if !prod.rhs[0].IsTerminal() || !g.terminals.Contains(prod.rhs[0].Name()) {
			errs = append(errs, &verr.SpecError{
				Cause:      semErrLeadingNonTerminal,
				Detail:     prod.String(),
				Production: i + 1,
			})
		}
		for _, sym := range prod.rhs[1:] {
			if !sym.IsNonTerminal() || !g.nonTerminals.Contains(sym.Name()) {
				errs = append(errs, &verr.SpecError{
					Cause:      semErrEmbeddedTerminal,
					Detail:     prod.String(),
					Production: i + 1,
				})
				break
			}
		}
	}
	if err := errs.orNil(); err != nil {
		return fmt.Errorf("%w:\n%w", ErrNotGreibach, err)
	}
	return nil
}

// ConvertToGreibach replaces every terminal after the leading position with a helper non-terminal deriving
// just that terminal. Each production of the input must already start with a terminal. The symbol sets of
// the result contain exactly the symbols in use.
func ConvertToGreibach(g *Grammar) (*Grammar, error) {
	res, err := convertToGreibach(g, logger{})
	if err != nil {
		return nil, err
	}
	return res.grammar, nil
}

type greibachResult struct {
	grammar *Grammar
	helpers []string
}

func convertToGreibach(g *Grammar, log logger) (*greibachResult, error) {
	rest, empty := splitStartEmpty(g)

	names := newNameAllocator(g)
	term2Helper := map[symbol.Symbol]symbol.Symbol{}
	var helpers []string

	prods := newProductionSet()
	if empty != nil {
		prods.append(empty)
	}
	for _, prod := range rest.productionSet.getAllProductions() {
		if prod.IsEmpty() || !prod.rhs[0].IsTerminal() {
			return nil, fmt.Errorf("%w: %v: %v", ErrNotGreibach, semErrLeadingNonTerminal, prod)
		}

		rhs := make([]symbol.Symbol, len(prod.rhs))
		rhs[0] = prod.rhs[0]
		var helperProds []*Production
		for i, sym := range prod.rhs[1:] {
			switch sym.Kind() {
			case symbol.KindNonTerminal:
				rhs[i+1] = sym
			case symbol.KindTerminal:
				helper, ok := term2Helper[sym]
				if !ok {
					helper = symbol.MustNonTerminal(names.indexed("N"))
					term2Helper[sym] = helper
					helpers = append(helpers, helper.Name())
					helperProds = append(helperProds, mustNewProduction(helper, []symbol.Symbol{sym}))
					log.trace("minted a helper non-terminal", slog.String("helper", helper.Name()), slog.String("terminal", sym.Name()))
				}
				rhs[i+1] = helper
			case symbol.KindEpsilon:
				return nil, fmt.Errorf("ε cannot be mixed with other symbols; production: %v", prod)
			}
		}

		prods.append(mustNewProduction(prod.lhs, rhs))
		for _, p := range helperProds {
			prods.append(p)
		}
	}
	if len(helpers) > 0 {
		log.debug("replaced embedded terminals", slog.Any("helpers", helpers))
	}

	gnf := g.withUsedSymbols(prods)
	if err := CheckGreibach(gnf); err != nil {
		return nil, err
	}
	return &greibachResult{
		grammar: gnf,
		helpers: helpers,
	}, nil
}

package tester

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nihei9/greibach/grammar"
	"github.com/nihei9/greibach/grammar/symbol"
)

const sep = "\x1f"

// sentences maps a sentence key, terminal names joined by sep, to its length.
type sentences map[string]int

func (s sentences) add(key string, n int) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = n
	return true
}

func concat(u string, un int, v string, vn int) (string, int) {
	switch {
	case un == 0:
		return v, vn
	case vn == 0:
		return u, un
	}
	return u + sep + v, un + vn
}

// Language returns every terminal string of at most maxLen symbols the start symbol derives, sorted. A
// sentence is rendered as its terminals separated by spaces; the empty string is rendered as ε.
//
// The sets are computed bottom-up as a fixed point, so empty, unit, and cyclic productions need no special
// treatment and the computation always terminates.
func Language(g *grammar.Grammar, maxLen int) []string {
	lang := genLanguage(g, maxLen)[g.Start()]
	ss := make([]string, 0, len(lang))
	for key, n := range lang {
		ss = append(ss, render(key, n))
	}
	sort.Strings(ss)
	return ss
}

func render(key string, n int) string {
	if n == 0 {
		return symbol.NameEpsilon
	}
	return strings.ReplaceAll(key, sep, " ")
}

func genLanguage(g *grammar.Grammar, maxLen int) map[symbol.Symbol]sentences {
	lang := map[symbol.Symbol]sentences{}
	for _, name := range g.NonTerminals() {
		lang[symbol.MustNonTerminal(name)] = sentences{}
	}
	prods := g.Productions()
	for {
		more := false
		for _, prod := range prods {
			for key, n := range derive(lang, prod, maxLen) {
				if lang[prod.LHS()].add(key, n) {
					more = true
				}
			}
		}
		if !more {
			break
		}
	}
	return lang
}

// derive returns the sentences the right-hand side of prod derives using the sentences found so far.
func derive(lang map[symbol.Symbol]sentences, prod *grammar.Production, maxLen int) sentences {
	cur := sentences{"": 0}
	for _, sym := range prod.RHS() {
		next := sentences{}
		switch sym.Kind() {
		case symbol.KindEpsilon:
			next = cur
		case symbol.KindTerminal:
			for key, n := range cur {
				if n+1 > maxLen {
					continue
				}
				next.add(concat(key, n, sym.Name(), 1))
			}
		case symbol.KindNonTerminal:
			for key, n := range cur {
				for k, m := range lang[sym] {
					if n+m > maxLen {
						continue
					}
					next.add(concat(key, n, k, m))
				}
			}
		}
		if len(next) == 0 {
			return next
		}
		cur = next
	}
	return cur
}

type Result struct {
	MaxLength int

	// Missing lists the sentences only the expected grammar derives.
	Missing []string

	// Unexpected lists the sentences only the actual grammar derives.
	Unexpected []string
}

func (r *Result) Equivalent() bool {
	return len(r.Missing) == 0 && len(r.Unexpected) == 0
}

func (r *Result) String() string {
	if r.Equivalent() {
		return fmt.Sprintf("Passed: the languages agree up to length %v", r.MaxLength)
	}

	const indent = "    "
	var b strings.Builder
	fmt.Fprintf(&b, "Failed: the languages differ up to length %v", r.MaxLength)
	for _, s := range r.Missing {
		fmt.Fprintf(&b, "\n%vmissing:    %v", indent, s)
	}
	for _, s := range r.Unexpected {
		fmt.Fprintf(&b, "\n%vunexpected: %v", indent, s)
	}
	return b.String()
}

// Compare compares the sentences of at most maxLen terminals the two grammars derive.
func Compare(expected, actual *grammar.Grammar, maxLen int) *Result {
	exp := Language(expected, maxLen)
	act := Language(actual, maxLen)
	inAct := map[string]struct{}{}
	for _, s := range act {
		inAct[s] = struct{}{}
	}
	inExp := map[string]struct{}{}
	for _, s := range exp {
		inExp[s] = struct{}{}
	}

	r := &Result{
		MaxLength: maxLen,
	}
	for _, s := range exp {
		if _, ok := inAct[s]; !ok {
			r.Missing = append(r.Missing, s)
		}
	}
	for _, s := range act {
		if _, ok := inExp[s]; !ok {
			r.Unexpected = append(r.Unexpected, s)
		}
	}
	return r
}

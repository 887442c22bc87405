package spec

import (
	"bytes"
	"io"

	verr "github.com/nihei9/greibach/error"
)

// The notation resembles the one of parser generators:
//
//	%start S
//	S
//	    : a A
//	    ;
//	A
//	    : S
//	    | 'b'
//	    | ε
//	    ;
//
// Identifiers appearing on the left of a colon are non-terminals; every other identifier and every quoted
// string is a terminal. An empty alternative and an alternative consisting of ε both denote the empty
// string. The start symbol defaults to the first non-terminal.

type RootNode struct {
	Start       string
	StartPos    Position
	Productions []*ProductionNode
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

type ElementNode struct {
	ID      string
	Literal string
	Epsilon bool
	Pos     Position
}

func raiseSyntaxError(synErr *SyntaxError, pos Position) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

// Parse reads a grammar written in the notation above. The resulting grammar is not validated; pass it to
// grammar.GrammarBuilder for that.
func Parse(src io.Reader) (*Grammar, error) {
	root, err := ParseRoot(src)
	if err != nil {
		return nil, err
	}
	return root.Grammar(), nil
}

// ParseBytes is like Parse but attaches the source text to every returned SpecError.
func ParseBytes(name string, src []byte) (*Grammar, error) {
	g, err := Parse(bytes.NewReader(src))
	if err != nil {
		if specErr, ok := err.(*verr.SpecError); ok {
			specErr.SourceName = name
			specErr.Source = src
		}
		return nil, err
	}
	return g, nil
}

func ParseRoot(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			e, ok := err.(error)
			if !ok {
				panic(err)
			}
			retErr = e
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	if p.consume(tokenKindKWStart) {
		root.StartPos = p.lastTok.pos
		if !p.consume(tokenKindID) {
			raiseSyntaxError(synErrNoStartSymbol, p.peekPos())
		}
		root.Start = p.lastTok.text
	}

	prod := p.parseProduction()
	if prod == nil {
		raiseSyntaxError(synErrNoProduction, p.peekPos())
	}
	root.Productions = []*ProductionNode{prod}
	for {
		prod := p.parseProduction()
		if prod == nil {
			break
		}
		root.Productions = append(root.Productions, prod)
	}
	return root
}

func (p *parser) parseProduction() *ProductionNode {
	if p.consume(tokenKindEOF) {
		return nil
	}
	if p.consume(tokenKindKWStart) {
		raiseSyntaxError(synErrMisplacedStart, p.lastTok.pos)
	}
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoProductionName, p.peekPos())
	}
	lhs := p.lastTok.text
	pos := p.lastTok.pos
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peekPos())
	}
	alt := p.parseAlternative()
	rhs := []*AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative()
		rhs = append(rhs, alt)
	}
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrNoSemicolon, p.peekPos())
	}
	return &ProductionNode{
		LHS: lhs,
		RHS: rhs,
		Pos: pos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	alt := &AlternativeNode{
		Elements: []*ElementNode{},
		Pos:      p.peekPos(),
	}
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		alt.Elements = append(alt.Elements, elem)
	}
	for _, elem := range alt.Elements {
		if elem.Epsilon && len(alt.Elements) > 1 {
			raiseSyntaxError(synErrEpsilonNotAlone, elem.Pos)
		}
	}
	return alt
}

func (p *parser) parseElement() *ElementNode {
	switch {
	case p.consume(tokenKindID):
		return &ElementNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		}
	case p.consume(tokenKindString):
		return &ElementNode{
			Literal: p.lastTok.text,
			Pos:     p.lastTok.pos,
		}
	case p.consume(tokenKindEpsilon):
		return &ElementNode{
			Epsilon: true,
			Pos:     p.lastTok.pos,
		}
	}
	return nil
}

func (p *parser) peekPos() Position {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok.pos
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(synErrInvalidToken, tok.pos)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

// Grammar resolves identifiers into non-terminals and terminals. Non-terminals and terminals are listed in
// the order they first appear.
func (r *RootNode) Grammar() *Grammar {
	nonTerms := []string{}
	isNonTerm := map[string]bool{}
	for _, prod := range r.Productions {
		if isNonTerm[prod.LHS] {
			continue
		}
		isNonTerm[prod.LHS] = true
		nonTerms = append(nonTerms, prod.LHS)
	}

	terms := []string{}
	isTerm := map[string]bool{}
	addTerm := func(name string) {
		if isTerm[name] {
			return
		}
		isTerm[name] = true
		terms = append(terms, name)
	}

	var prods []*Production
	for _, prod := range r.Productions {
		for _, alt := range prod.RHS {
			rhs := []string{}
			for _, elem := range alt.Elements {
				switch {
				case elem.Epsilon:
					rhs = append(rhs, Epsilon)
				case elem.Literal != "":
					addTerm(elem.Literal)
					rhs = append(rhs, elem.Literal)
				default:
					if !isNonTerm[elem.ID] {
						addTerm(elem.ID)
					}
					rhs = append(rhs, elem.ID)
				}
			}
			prods = append(prods, &Production{
				LHS: prod.LHS,
				RHS: rhs,
				Row: alt.Pos.Row,
			})
		}
	}

	start := r.Start
	if start == "" && len(nonTerms) > 0 {
		start = nonTerms[0]
	}

	return &Grammar{
		NonTerminals: nonTerms,
		Terminals:    terms,
		Start:        start,
		Productions:  prods,
	}
}

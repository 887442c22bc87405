package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/nihei9/greibach/error"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindKWStart   = tokenKind("%start")
	tokenKindID        = tokenKind("id")
	tokenKindString    = tokenKind("string")
	tokenKindEpsilon   = tokenKind("ε")
	tokenKindColon     = tokenKind(":")
	tokenKindOr        = tokenKind("|")
	tokenKindSemicolon = tokenKind(";")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newStringToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindString,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// lexEntries defines the lexical structure of the grammar notation. A string literal is split into
// an opening quote, a body, and a closing quote so that an unclosed literal is reported precisely.
func lexEntries() []*mlspec.LexEntry {
	return []*mlspec.LexEntry{
		{Kind: "white_space", Pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},
		{Kind: "line_comment", Pattern: `//[^\u{000A}]*`},
		{Kind: "kw_start", Pattern: mlspec.LexPattern(mlspec.EscapePattern("%start"))},
		{Kind: "identifier", Pattern: `[A-Za-z_][0-9A-Za-z_']*`},
		{Kind: "epsilon", Pattern: `\u{03B5}`},
		{Kind: "colon", Pattern: mlspec.LexPattern(mlspec.EscapePattern(":"))},
		{Kind: "or", Pattern: mlspec.LexPattern(mlspec.EscapePattern("|"))},
		{Kind: "semicolon", Pattern: mlspec.LexPattern(mlspec.EscapePattern(";"))},
		{Kind: "string_literal_open", Pattern: `'`, Push: "string"},
		{Modes: []mlspec.LexModeName{"string"}, Kind: "char_seq", Pattern: `[^'\u{000A}]+`},
		{Modes: []mlspec.LexModeName{"string"}, Kind: "string_literal_close", Pattern: `'`, Pop: true},
		{Modes: []mlspec.LexModeName{"string"}, Kind: "line_break", Pattern: `\u{000A}`, Pop: true},
	}
}

var (
	compileLexSpecOnce sync.Once
	compiledLexSpec    *mlspec.CompiledLexSpec
	compileLexSpecErr  error
)

func compileLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		lexSpec := &mlspec.LexSpec{
			Name:    "greibach",
			Entries: lexEntries(),
		}
		clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compileLexSpecErr = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
				return
			}
			compileLexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compileLexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compileLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}
	return l.lexAndSkipWSs()
}

func (l *lexer) kindName(tok *mldriver.Token) string {
	return l.s.KindNames[tok.KindID].String()
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(newPosition(tok.Row+1, tok.Col+1)), nil
		}
		switch l.kindName(tok) {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch l.kindName(tok) {
	case "kw_start":
		return newSymbolToken(tokenKindKWStart, pos), nil
	case "identifier":
		return newIDToken(string(tok.Lexeme), pos), nil
	case "epsilon":
		return newSymbolToken(tokenKindEpsilon, pos), nil
	case "colon":
		return newSymbolToken(tokenKindColon, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "semicolon":
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case "string_literal_open":
		var b strings.Builder
		for {
			tok, err := l.d.Next()
			if err != nil {
				return nil, err
			}
			if tok.EOF || l.kindName(tok) == "line_break" {
				return nil, &verr.SpecError{
					Cause: synErrUnclosedString,
					Row:   pos.Row,
					Col:   pos.Col,
				}
			}
			switch l.kindName(tok) {
			case "char_seq":
				b.Write(tok.Lexeme)
			case "string_literal_close":
				str := b.String()
				if str == "" {
					return nil, &verr.SpecError{
						Cause: synErrEmptyString,
						Row:   pos.Row,
						Col:   pos.Col,
					}
				}
				return newStringToken(str, pos), nil
			}
		}
	default:
		return newInvalidToken(string(tok.Lexeme), pos), nil
	}
}

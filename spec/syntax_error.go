package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrUnclosedString = newSyntaxError("unclosed string")
	synErrEmptyString    = newSyntaxError("a string literal must contain at least one character")

	// syntax errors
	synErrInvalidToken     = newSyntaxError("invalid token")
	synErrNoProduction     = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrNoColon          = newSyntaxError("the colon must precede alternatives")
	synErrNoSemicolon      = newSyntaxError("the semicolon is missing at the last of an alternative")
	synErrNoStartSymbol    = newSyntaxError("%start needs a symbol name")
	synErrMisplacedStart   = newSyntaxError("%start can appear only once, before the productions")
	synErrEpsilonNotAlone  = newSyntaxError("ε must be the only element of an alternative")
)

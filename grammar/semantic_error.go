package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoStartSymbol    = newSemanticError("a grammar needs a start symbol")
	semErrUndefinedStart   = newSemanticError("the start symbol must be a non-terminal")
	semErrUndefinedLHS     = newSemanticError("the LHS of a production must be a non-terminal")
	semErrUndefinedSym     = newSemanticError("undefined symbol")
	semErrEmptyName        = newSemanticError("a symbol needs a non-empty name")
	semErrReservedName     = newSemanticError("ε is reserved for the empty string")
	semErrDuplicateName    = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrMixedEpsilon     = newSemanticError("ε cannot be mixed with other symbols")
	semErrNoProductionSpec = newSemanticError("a production must not be nil")
)

package symbol

import "fmt"

type Kind string

const (
	KindNonTerminal = Kind("non-terminal")
	KindTerminal    = Kind("terminal")
	KindEpsilon     = Kind("epsilon")
)

func (k Kind) String() string {
	return string(k)
}

// NameEpsilon is the reserved name of the empty-string marker. No terminal or non-terminal can use it.
const NameEpsilon = "ε"

// Symbol is a tagged grammar symbol. Two symbols are equal when both their kinds and names are equal,
// so a Symbol can be used as a map key.
type Symbol struct {
	kind Kind
	name string
}

var (
	SymbolNil = Symbol{}
	Epsilon   = Symbol{kind: KindEpsilon, name: NameEpsilon}
)

func NewTerminal(name string) (Symbol, error) {
	return newSymbol(KindTerminal, name)
}

func NewNonTerminal(name string) (Symbol, error) {
	return newSymbol(KindNonTerminal, name)
}

// MustTerminal is like NewTerminal but panics when the name is invalid. It is meant for names the caller
// already validated.
func MustTerminal(name string) Symbol {
	sym, err := NewTerminal(name)
	if err != nil {
		panic(err)
	}
	return sym
}

// MustNonTerminal is like NewNonTerminal but panics when the name is invalid.
func MustNonTerminal(name string) Symbol {
	sym, err := NewNonTerminal(name)
	if err != nil {
		panic(err)
	}
	return sym
}

func newSymbol(kind Kind, name string) (Symbol, error) {
	if name == "" {
		return SymbolNil, fmt.Errorf("a %v symbol needs a non-empty name", kind)
	}
	if name == NameEpsilon {
		return SymbolNil, fmt.Errorf("%v is reserved for the empty string and cannot name a %v symbol", NameEpsilon, kind)
	}
	return Symbol{
		kind: kind,
		name: name,
	}, nil
}

func (s Symbol) Kind() Kind {
	return s.kind
}

func (s Symbol) Name() string {
	return s.name
}

func (s Symbol) IsNil() bool {
	return s.kind == ""
}

func (s Symbol) IsTerminal() bool {
	return s.kind == KindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind == KindNonTerminal
}

func (s Symbol) IsEpsilon() bool {
	return s.kind == KindEpsilon
}

func (s Symbol) String() string {
	switch s.kind {
	case KindTerminal, KindNonTerminal, KindEpsilon:
		return s.name
	default:
		return "<nil>"
	}
}

// Byte returns an unambiguous encoding of the symbol used to identify productions.
func (s Symbol) Byte() []byte {
	var tag byte
	switch s.kind {
	case KindTerminal:
		tag = 't'
	case KindNonTerminal:
		tag = 'n'
	case KindEpsilon:
		tag = 'e'
	default:
		tag = 0
	}
	b := make([]byte, 0, len(s.name)+2)
	b = append(b, tag)
	b = append(b, s.name...)
	return append(b, 0)
}

// Set is a set of symbol names that remembers insertion order.
type Set struct {
	names []string
	index map[string]int
}

func NewSet(names ...string) *Set {
	s := &Set{
		index: map[string]int{},
	}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a name and reports whether the set changed.
func (s *Set) Add(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	return true
}

func (s *Set) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the names in insertion order. The caller owns the returned slice.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

func (s *Set) Clone() *Set {
	return NewSet(s.Names()...)
}

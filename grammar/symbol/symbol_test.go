package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tests := []struct {
		caption       string
		sym           Symbol
		kind          Kind
		text          string
		isNil         bool
		isTerminal    bool
		isNonTerminal bool
		isEpsilon     bool
	}{
		{
			caption:    "a terminal symbol",
			sym:        MustTerminal("a"),
			kind:       KindTerminal,
			text:       "a",
			isTerminal: true,
		},
		{
			caption:       "a non-terminal symbol",
			sym:           MustNonTerminal("expr"),
			kind:          KindNonTerminal,
			text:          "expr",
			isNonTerminal: true,
		},
		{
			caption:   "the epsilon symbol",
			sym:       Epsilon,
			kind:      KindEpsilon,
			text:      NameEpsilon,
			isEpsilon: true,
		},
		{
			caption: "the nil symbol",
			sym:     SymbolNil,
			text:    "<nil>",
			isNil:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if tt.sym.Kind() != tt.kind {
				t.Fatalf("unexpected kind; want: %v, got: %v", tt.kind, tt.sym.Kind())
			}
			if tt.sym.String() != tt.text {
				t.Fatalf("unexpected text; want: %v, got: %v", tt.text, tt.sym.String())
			}
			if tt.sym.IsNil() != tt.isNil {
				t.Fatalf("isNil; want: %v, got: %v", tt.isNil, tt.sym.IsNil())
			}
			if tt.sym.IsTerminal() != tt.isTerminal {
				t.Fatalf("isTerminal; want: %v, got: %v", tt.isTerminal, tt.sym.IsTerminal())
			}
			if tt.sym.IsNonTerminal() != tt.isNonTerminal {
				t.Fatalf("isNonTerminal; want: %v, got: %v", tt.isNonTerminal, tt.sym.IsNonTerminal())
			}
			if tt.sym.IsEpsilon() != tt.isEpsilon {
				t.Fatalf("isEpsilon; want: %v, got: %v", tt.isEpsilon, tt.sym.IsEpsilon())
			}
		})
	}
}

func TestSymbol_Equality(t *testing.T) {
	if MustTerminal("a") != MustTerminal("a") {
		t.Fatal("terminals with the same name must be equal")
	}
	if MustTerminal("a") == MustNonTerminal("a") {
		t.Fatal("a terminal and a non-terminal with the same name must differ")
	}
	if string(MustTerminal("ab").Byte()) == string(MustNonTerminal("ab").Byte()) {
		t.Fatal("byte encodings of different kinds must differ")
	}
}

func TestNewSymbol_InvalidName(t *testing.T) {
	for _, name := range []string{"", NameEpsilon} {
		if _, err := NewTerminal(name); err == nil {
			t.Errorf("NewTerminal(%q) must fail", name)
		}
		if _, err := NewNonTerminal(name); err == nil {
			t.Errorf("NewNonTerminal(%q) must fail", name)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet("S", "A", "S")
	if s.Len() != 2 {
		t.Fatalf("unexpected length; want: 2, got: %v", s.Len())
	}
	if !s.Add("B") {
		t.Fatal("adding a new name must change the set")
	}
	if s.Add("A") {
		t.Fatal("adding an existing name must not change the set")
	}
	names := s.Names()
	expected := []string{"S", "A", "B"}
	if len(names) != len(expected) {
		t.Fatalf("unexpected names; want: %v, got: %v", expected, names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Fatalf("unexpected names; want: %v, got: %v", expected, names)
		}
	}

	names[0] = "X"
	if !s.Contains("S") || s.Contains("X") {
		t.Fatal("Names must return a copy")
	}

	c := s.Clone()
	c.Add("C")
	if s.Contains("C") {
		t.Fatal("a clone must not share storage with the original")
	}

	var nilSet *Set
	if nilSet.Contains("S") || nilSet.Len() != 0 || nilSet.Names() != nil {
		t.Fatal("a nil set must behave as an empty set")
	}
}

package spec

type Report struct {
	EmptyStringPolicy      string         `json:"empty_string_policy" yaml:"empty_string_policy"`
	Stages                 []*StageReport `json:"stages" yaml:"stages"`
	Nullable               []string       `json:"nullable" yaml:"nullable"`
	RemovedUnitProductions []string       `json:"removed_unit_productions" yaml:"removed_unit_productions"`
	UselessNonTerminals    []string       `json:"useless_non_terminals" yaml:"useless_non_terminals"`
	LeftRecursive          []string       `json:"left_recursive" yaml:"left_recursive"`
	LeftRecursionHelpers   []string       `json:"left_recursion_helpers" yaml:"left_recursion_helpers"`
	TerminalHelpers        []string       `json:"terminal_helpers" yaml:"terminal_helpers"`
}

// StageReport describes the grammar a stage produced.
type StageReport struct {
	Stage        string `json:"stage" yaml:"stage"`
	Productions  int    `json:"productions" yaml:"productions"`
	NonTerminals int    `json:"non_terminals" yaml:"non_terminals"`
	Terminals    int    `json:"terminals" yaml:"terminals"`
}

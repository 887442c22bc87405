package grammar

import (
	"fmt"
	"log/slog"

	"github.com/nihei9/greibach/spec"
)

type Stage string

const (
	StageInput            = Stage("input")
	StageEpsilon          = Stage("epsilon")
	StageUnit             = Stage("unit")
	StageNonTerminalChain = Stage("non-terminal-chain")
	StageGreibach         = Stage("greibach")
)

func (s Stage) String() string {
	return string(s)
}

// Stages lists the stages of Normalize in the order they run.
var Stages = []Stage{
	StageInput,
	StageEpsilon,
	StageUnit,
	StageNonTerminalChain,
	StageGreibach,
}

type normalizeConfig struct {
	logger             logger
	emptyString        EmptyStringPolicy
	isReportingEnabled bool
	hook               func(Stage, *Grammar)
}

type NormalizeOption func(config *normalizeConfig)

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs.
func WithLogger(l *slog.Logger) NormalizeOption {
	return func(config *normalizeConfig) {
		config.logger = logger{l: l}
	}
}

// WithEmptyString decides whether `start -> ε` survives when the language contains the empty string. The
// default is EmptyStringKeep.
func WithEmptyString(policy EmptyStringPolicy) NormalizeOption {
	return func(config *normalizeConfig) {
		config.emptyString = policy
	}
}

func EnableReporting() NormalizeOption {
	return func(config *normalizeConfig) {
		config.isReportingEnabled = true
	}
}

// WithStageHook registers a function called with the grammar each stage outputs, the input included.
func WithStageHook(hook func(Stage, *Grammar)) NormalizeOption {
	return func(config *normalizeConfig) {
		config.hook = hook
	}
}

// Normalize converts a grammar into Greibach normal form: every production becomes `A -> a B1 ... Bn`,
// except `start -> ε` when the empty string belongs to the language and the policy keeps it. A malformed
// grammar is rejected before any stage runs. The report is nil unless EnableReporting is given.
func Normalize(g *Grammar, opts ...NormalizeOption) (*Grammar, *spec.Report, error) {
	config := &normalizeConfig{
		emptyString: EmptyStringKeep,
	}
	for _, opt := range opts {
		opt(config)
	}
	log := config.logger

	if g == nil {
		return nil, nil, fmt.Errorf("a grammar must not be nil")
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	var report *spec.Report
	if config.isReportingEnabled {
		report = &spec.Report{
			EmptyStringPolicy: config.emptyString.String(),
		}
	}
	done := func(stage Stage, g *Grammar) {
		log.debug("stage completed",
			slog.String("stage", stage.String()),
			slog.Int("productions", g.productionSet.len()),
			slog.Int("non_terminals", g.nonTerminals.Len()),
			slog.Int("terminals", g.terminals.Len()))
		if report != nil {
			report.Stages = append(report.Stages, &spec.StageReport{
				Stage:        stage.String(),
				Productions:  g.productionSet.len(),
				NonTerminals: g.nonTerminals.Len(),
				Terminals:    g.terminals.Len(),
			})
		}
		if config.hook != nil {
			config.hook(stage, g)
		}
	}
	done(StageInput, g)

	epsRes, err := eliminateEpsilon(g, config.emptyString, log)
	if err != nil {
		return nil, nil, err
	}
	done(StageEpsilon, epsRes.grammar)

	unitRes := eliminateUnit(epsRes.grammar, log)
	done(StageUnit, unitRes.grammar)

	chainRes, err := eliminateNonTerminalChains(unitRes.grammar, log)
	if err != nil {
		return nil, nil, err
	}
	done(StageNonTerminalChain, chainRes.grammar)

	gnfRes, err := convertToGreibach(chainRes.grammar, log)
	if err != nil {
		return nil, nil, err
	}
	done(StageGreibach, gnfRes.grammar)

	if report != nil {
		report.Nullable = epsRes.nullable
		report.RemovedUnitProductions = unitRes.removed
		report.UselessNonTerminals = chainRes.useless
		report.LeftRecursive = chainRes.leftRecursive
		report.LeftRecursionHelpers = chainRes.helpers
		report.TerminalHelpers = gnfRes.helpers
	}

	return gnfRes.grammar, report, nil
}

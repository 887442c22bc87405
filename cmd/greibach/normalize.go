package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nihei9/greibach/grammar"
	"github.com/nihei9/greibach/spec"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var normalizeFlags = struct {
	format      *string
	emptyString *string
	stages      *bool
	report      *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "normalize <grammar name>",
		Short: "Convert a grammar into Greibach normal form",
		Example: `  greibach normalize greibach
  greibach normalize arith --format json --report
  greibach normalize balanced --empty-string drop --stages`,
		Args: cobra.ExactArgs(1),
		RunE: runNormalize,
	}
	normalizeFlags.format = cmd.Flags().StringP("format", "f", formatText, "output format: text, json, or yaml")
	normalizeFlags.emptyString = cmd.Flags().String("empty-string", grammar.EmptyStringKeep.String(), "what to do with the empty string: keep or drop")
	normalizeFlags.stages = cmd.Flags().Bool("stages", false, "print the grammar every stage outputs (text format only)")
	normalizeFlags.report = cmd.Flags().Bool("report", false, "print a report of the conversion")
	rootCmd.AddCommand(cmd)
}

// normalizeOutput is the document the json and yaml formats render.
type normalizeOutput struct {
	Grammar *spec.Grammar `json:"grammar" yaml:"grammar"`
	Report  *spec.Report  `json:"report,omitempty" yaml:"report,omitempty"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
	switch *normalizeFlags.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("Unknown format %v; it must be %v, %v, or %v", *normalizeFlags.format, formatText, formatJSON, formatYAML)
	}
	policy, err := grammar.ParseEmptyStringPolicy(*normalizeFlags.emptyString)
	if err != nil {
		return err
	}

	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	w := os.Stdout
	opts := []grammar.NormalizeOption{
		grammar.WithEmptyString(policy),
		grammar.WithLogger(newLogger()),
	}
	if *normalizeFlags.report {
		opts = append(opts, grammar.EnableReporting())
	}
	if *normalizeFlags.stages && *normalizeFlags.format == formatText {
		opts = append(opts, grammar.WithStageHook(func(stage grammar.Stage, sg *grammar.Grammar) {
			if stage == grammar.StageGreibach {
				return
			}
			fmt.Fprintf(w, "# %v\n\n%v\n", stage, sg)
		}))
	}

	gnf, report, err := grammar.Normalize(g, opts...)
	if err != nil {
		return err
	}

	return writeNormalized(w, *normalizeFlags.format, gnf, report)
}

func writeNormalized(w io.Writer, format string, gnf *grammar.Grammar, report *spec.Report) error {
	switch format {
	case formatJSON:
		b, err := json.Marshal(&normalizeOutput{
			Grammar: gnf.Spec(),
			Report:  report,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\n", string(b))
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(&normalizeOutput{
			Grammar: gnf.Spec(),
			Report:  report,
		})
		if err != nil {
			return err
		}
		return enc.Close()
	}

	if report != nil {
		fmt.Fprintf(w, "# %v\n\n", grammar.StageGreibach)
	}
	fmt.Fprint(w, gnf)
	if report == nil {
		return nil
	}
	fmt.Fprintln(w)
	return writeReport(w, report)
}

const reportTemplate = `# Report

empty string: {{ .EmptyStringPolicy }}

{{ range .Stages -}}
{{ printStage . }}
{{ end }}
{{ printList "nullable" .Nullable }}
{{ printList "removed unit productions" .RemovedUnitProductions }}
{{ printList "useless non-terminals" .UselessNonTerminals }}
{{ printList "left-recursive non-terminals" .LeftRecursive }}
{{ printList "left recursion helpers" .LeftRecursionHelpers }}
{{ printList "terminal helpers" .TerminalHelpers }}
`

func writeReport(w io.Writer, report *spec.Report) error {
	fns := template.FuncMap{
		"printStage": func(s *spec.StageReport) string {
			return fmt.Sprintf("%-20v %4v productions %4v non-terminals %4v terminals", s.Stage, s.Productions, s.NonTerminals, s.Terminals)
		},
		"printList": func(title string, items []string) string {
			if len(items) == 0 {
				return fmt.Sprintf("%v: -", title)
			}
			var b strings.Builder
			fmt.Fprintf(&b, "%v:", title)
			for _, item := range items {
				fmt.Fprintf(&b, "\n    %v", item)
			}
			return b.String()
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, report)
}

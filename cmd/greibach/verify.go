package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/greibach/grammar"
	"github.com/nihei9/greibach/tester"
	"github.com/spf13/cobra"
)

var verifyFlags = struct {
	maxLength   *int
	emptyString *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "verify <grammar name>",
		Short: "Check that the conversion preserves the language",
		Long: `verify converts a grammar into Greibach normal form and compares the sentences the
input and the output derive up to a length. It also checks the shape of every output production.`,
		Example: `  greibach verify arith --max-length 7`,
		Args:    cobra.ExactArgs(1),
		RunE:    runVerify,
	}
	verifyFlags.maxLength = cmd.Flags().IntP("max-length", "n", 6, "the longest sentence to compare, in terminals")
	verifyFlags.emptyString = cmd.Flags().String("empty-string", grammar.EmptyStringKeep.String(), "what to do with the empty string: keep or drop")
	rootCmd.AddCommand(cmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if *verifyFlags.maxLength < 0 {
		return fmt.Errorf("--max-length must be non-negative: %v", *verifyFlags.maxLength)
	}
	policy, err := grammar.ParseEmptyStringPolicy(*verifyFlags.emptyString)
	if err != nil {
		return err
	}

	g, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	gnf, _, err := grammar.Normalize(g, grammar.WithEmptyString(policy), grammar.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	if err := grammar.CheckGreibach(gnf); err != nil {
		return err
	}

	expected := g
	if policy == grammar.EmptyStringDrop {
		expected, err = grammar.EliminateEpsilon(g, grammar.EmptyStringDrop)
		if err != nil {
			return err
		}
	}
	r := tester.Compare(expected, gnf, *verifyFlags.maxLength)
	fmt.Fprintln(os.Stdout, r)
	if !r.Equivalent() {
		return errors.New("Verification failed")
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/nihei9/greibach/catalog"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the demo grammars",
		Example: `  greibach list`,
		Args:    cobra.NoArgs,
		RunE:    runList,
	}
	rootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	for _, name := range catalog.Names() {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}

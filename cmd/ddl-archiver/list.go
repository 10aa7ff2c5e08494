package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List the objects of a kind in the current schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog.ParseKind(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.connect(cmd.Context()); err != nil {
			return err
		}

		names, err := a.orch.ListObjects(cmd.Context(), string(kind))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintf(out, "No %ss found.\n", kind.Lower())
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

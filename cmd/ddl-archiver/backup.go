package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raoulx24/ddl-archiver/internal/backup"
)

var objectName string

var backupCmd = &cobra.Command{
	Use:   "backup [kind] [name]",
	Short: "Back up every object of a kind, or one named object",
	Example: `  ddl-archiver backup package
  ddl-archiver backup procedure calc_bonus --retention-days 30`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := backup.Request{Name: objectName}
		if len(args) > 0 {
			req.Kind = args[0]
		}
		if len(args) > 1 {
			req.Name = args[1]
		}

		if err := backup.CheckRequest(req); err != nil {
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

		res, err := a.orch.Backup(cmd.Context(), req)
		printResult(cmd.OutOrStdout(), res)
		return err
	},
}

func init() {
	backupCmd.Flags().StringVarP(&objectName, "name", "n", "", "object name (requires a kind)")
}

func printResult(w io.Writer, res backup.Result) {
	switch {
	case res.Bulk != nil && res.Bulk.Kind != "":
		r := res.Bulk
		if r.Found == 0 {
			fmt.Fprintf(w, "No %ss found.\n", r.Kind.Lower())
			return
		}
		fmt.Fprintf(w, "Total %ss backed up: %d of %d\n", r.Kind.Lower(), r.BackedUp, r.Found)
		for _, f := range r.Failures {
			fmt.Fprintf(w, "  failed %s: %v\n", f.Name, f.Err)
		}
		if r.Pruned > 0 {
			fmt.Fprintf(w, "Old snapshot folders deleted: %d\n", r.Pruned)
		}
	case res.Single != nil && res.Single.Location.Name != "":
		r := res.Single
		fmt.Fprintf(w, "Backup of %s '%s' created at %s\n", r.Kind.Lower(), r.Name, r.Location.File())
		if r.Pruned > 0 {
			fmt.Fprintf(w, "Old snapshot folders deleted: %d\n", r.Pruned)
		}
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/fs"
	"github.com/raoulx24/ddl-archiver/internal/snapshot"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots <kind> <name>",
	Short: "List the stored snapshots of one object",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog.ParseKind(args[0])
		if err != nil {
			return err
		}
		name, err := catalog.NormalizeName(args[1])
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		snaps, err := snapshot.List(fs.New(), snapshot.ObjectDir(a.cfg.Backup.Root, kind, name))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(snaps) == 0 {
			fmt.Fprintf(out, "No snapshots of %s '%s'.\n", kind.Lower(), name)
			return nil
		}
		now := time.Now()
		for _, s := range snaps {
			fmt.Fprintf(out, "%s\t%s old\t%s\n",
				s.Timestamp.Format(snapshot.TimestampLayout),
				now.Sub(s.Created).Round(time.Minute),
				s.Path,
			)
		}
		return nil
	},
}

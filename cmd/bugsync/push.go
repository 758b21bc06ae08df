package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugsynclabs/bugsync/internal/buglist"
	"github.com/bugsynclabs/bugsync/internal/tracker"
)

var pushCmd = &cobra.Command{
	Use:   "push [file]",
	Short: "Replay local buglist changes against the remote tracker",
	Long: `Push loads the buglist file, turns every entry into a create, update,
or delete against the remote project, and rewrites the file with the
authoritative records the tracker returned.

Changes are replayed in file order. The first failing change aborts the
push; changes already replayed keep their remote effect, so fix the
problem and push again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := buglist.DefaultFilename
		if len(args) == 1 {
			path = args[0]
		}

		f, err := buglist.Load(path)
		if err != nil {
			return err
		}

		backend, err := newBackend()
		if err != nil {
			return err
		}

		changes := f.Changes()
		if len(changes) == 0 {
			fmt.Println("Nothing to push.")
			return nil
		}

		var creates, updates, deletes int
		for _, ch := range changes {
			switch ch.Op() {
			case tracker.OpCreate:
				creates++
			case tracker.OpUpdate:
				updates++
			case tracker.OpDelete:
				deletes++
			}
		}
		verbosef("pushing %d changes to %s", len(changes), f.URL)

		result, err := backend.SendBuglist(cmd.Context(), f.URL, changes)
		if err != nil {
			return err
		}

		f.ApplyResult(result)
		if err := f.Save(path); err != nil {
			return err
		}

		fmt.Printf("Pushed %d created, %d updated, %d deleted; %s rewritten with %d bugs\n",
			creates, updates, deletes, path, len(result.Bugs))
		return nil
	},
}

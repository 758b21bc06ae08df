package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bugsynclabs/bugsync/internal/buglist"
	"github.com/bugsynclabs/bugsync/internal/timeparsing"
)

var (
	pullOutput string
	pullSince  string
)

var pullCmd = &cobra.Command{
	Use:   "pull <project-url>",
	Short: "Fetch the remote issue list into a local buglist file",
	Long: `Pull fetches every issue of the given project and writes them to a
local YAML file. The project URL may be the plain web URL
(https://space.backlog.jp/projects/NAME); it is rewritten to the API
form automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}

		baseURL, err := backend.NormalizeURL(args[0])
		if err != nil {
			return err
		}

		var since *time.Time
		if pullSince != "" {
			t, err := timeparsing.ParseRelativeTime(pullSince, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --since value: %w", err)
			}
			since = &t
		}

		verbosef("fetching %s", baseURL)
		list, err := backend.FetchBuglist(cmd.Context(), baseURL, since)
		if err != nil {
			return err
		}

		f := buglist.FromBuglist(list)
		if err := f.Save(pullOutput); err != nil {
			return err
		}

		fmt.Printf("%s: %d bugs written to %s\n", list.Title, len(list.Bugs), pullOutput)
		return nil
	},
}

func init() {
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", buglist.DefaultFilename, "Output file")
	pullCmd.Flags().StringVar(&pullSince, "since", "", "Only fetch issues updated since (e.g. '2w', 'last monday', '2025-01-01')")
}

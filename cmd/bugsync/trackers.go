package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugsynclabs/bugsync/internal/tracker"
)

var trackersCmd = &cobra.Command{
	Use:   "trackers",
	Short: "List available tracker backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range tracker.List() {
			backend, err := tracker.New(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %s\n", name, backend.DisplayName())
		}
		return nil
	},
}

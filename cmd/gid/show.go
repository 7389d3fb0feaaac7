package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <global-id>",
	Short: "Show the registry record for one global identifier",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		reg := mustLoadRegistry()

		rec := reg.Get(id)
		if rec == nil {
			fmt.Fprintf(os.Stderr, "Error: %s not found in %s\n", id, reg.Path())
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(rec)
			return
		}

		fmt.Printf("%s: %s\n", rec.GlobalID, rec.Title)
		fmt.Printf("  Project:   %s\n", rec.Project)
		fmt.Printf("  Component: %s\n", rec.Component)
		fmt.Printf("  Source:    %s (local #%d)\n", rec.SourceRepo, rec.LocalNumber)
		if rec.RemoteNumber != nil {
			fmt.Printf("  Remote:    #%d\n", *rec.RemoteNumber)
		} else {
			fmt.Printf("  Remote:    not created\n")
		}
		if len(rec.Labels) > 0 {
			fmt.Printf("  Labels:    %s\n", strings.Join(rec.Labels, ", "))
		}
		if rec.Milestone != "" {
			fmt.Printf("  Milestone: %s\n", rec.Milestone)
		}
		fmt.Printf("  Status:    %s\n", rec.Status)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

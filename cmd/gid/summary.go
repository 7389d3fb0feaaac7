package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bondlegend4/globalid/internal/registry"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show identifier counts grouped by project-component prefix",
	Run: func(cmd *cobra.Command, args []string) {
		reg := mustLoadRegistry()

		summary := reg.Summarize()
		if jsonOutput {
			outputJSON(summary)
			return
		}

		if len(summary) == 0 {
			fmt.Println("No identifiers in registry yet")
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s (%d identifiers)\n", bold("Global ID summary"), reg.Len())
		for _, row := range summary {
			fmt.Printf("  %s: %d\n", row.Prefix, row.Count)
		}
	},
}

// mustLoadRegistry resolves the workspace and loads its registry, exiting
// with a hint when there is no workspace to read from.
func mustLoadRegistry() *registry.Registry {
	paths, err := resolveWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if paths.Registry == "" {
		fmt.Fprintf(os.Stderr, "Error: no gid workspace found\n")
		fmt.Fprintf(os.Stderr, "Hint: run 'gid init' or pass --registry\n")
		os.Exit(1)
	}

	reg, err := registry.Load(paths.Registry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return reg
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

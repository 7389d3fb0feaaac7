package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bondlegend4/globalid/internal/classify"
	"github.com/bondlegend4/globalid/internal/debug"
	"github.com/bondlegend4/globalid/internal/importer"
	"github.com/bondlegend4/globalid/internal/registry"
	"github.com/bondlegend4/globalid/internal/runlog"
	"github.com/bondlegend4/globalid/internal/tracker"
)

var importCmd = &cobra.Command{
	Use:   "import <owner/repo> <backlog.md>",
	Short: "Import a markdown backlog into the tracker with global IDs",
	Long: `Parses the backlog document, assigns a PROJECT-COMPONENT-NNN identifier
to every epic and issue, and creates them in the remote tracker via the
gh CLI.

Runs in dry-run mode by default: identifiers are computed and shown but
nothing is written, not even the workspace directory. Pass --live to
save the registry and create the items; a live run creates .gid/ first
if no workspace exists yet.

Behavior:
  - Classification falls back to MISC with a warning, never an error
  - A corrupt registry aborts the run before any assignment
  - A failed remote creation skips that item and continues the batch`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, backlogPath := args[0], args[1]
		live, _ := cmd.Flags().GetBool("live")

		ctx := context.Background()

		// A dry run leaves the filesystem untouched: it only auto-creates
		// the workspace when --live will actually persist something.
		var paths workspacePaths
		var err error
		if live {
			paths, err = ensureWorkspace()
		} else {
			paths, err = resolveWorkspace()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		taxonomy, err := loadTaxonomy(paths)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Corrupt state aborts here, before anything is assigned.
		reg, err := registry.Load(paths.Registry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, registry.ErrCorruptState) {
				fmt.Fprintf(os.Stderr, "Hint: fix or move %s before importing\n", paths.Registry)
			}
			os.Exit(1)
		}

		// Progress narration goes to stderr; --quiet drops it but keeps
		// the run log and fatal errors.
		var progress io.Writer = os.Stderr
		if debug.IsQuiet() {
			progress = io.Discard
		}

		var client tracker.Client
		if live {
			if err := tracker.CheckGH(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			client = tracker.NewGitHubClient(repo)
		} else {
			client = tracker.NewDryRunClient(progress)
		}

		logger := runlog.Discard()
		if live && paths.RunLog != "" {
			logger = runlog.Open(paths.RunLog)
		}
		defer func() { _ = logger.Close() }()

		result, err := importer.Run(ctx, importer.Options{
			Repo:        repo,
			BacklogPath: backlogPath,
			Live:        live,
			Registry:    reg,
			Taxonomy:    taxonomy,
			Client:      client,
			Out:         progress,
			Log:         logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(result)
		}

		if !live {
			bold := color.New(color.Bold).SprintFunc()
			fmt.Fprintf(progress, "\n%s\n", bold("Next steps:"))
			step := 1
			fmt.Fprintf(progress, "  %d. Review the global IDs above\n", step)
			if result.ProjectCode == classify.Misc {
				step++
				fmt.Fprintf(progress, "  %d. Add %q to .gid/taxonomy.yaml to replace the MISC project code\n", step, repo)
			}
			step++
			fmt.Fprintf(progress, "  %d. Re-run with --live to save the registry and create the issues\n", step)
		}
	},
}

// loadTaxonomy returns the built-in tables extended by the workspace
// taxonomy file, if one exists.
func loadTaxonomy(paths workspacePaths) (*classify.Taxonomy, error) {
	if paths.Taxonomy == "" {
		return classify.Default(), nil
	}
	return classify.Load(paths.Taxonomy)
}

func init() {
	importCmd.Flags().Bool("live", false, "Create issues remotely and persist the registry (default: dry run)")
	rootCmd.AddCommand(importCmd)
}

// Package importer orchestrates one import run: parse the backlog,
// assign global identifiers, and create the items remotely.
//
// Identifier assignment is strictly sequential; only the remote creation
// calls touch the network, and a failure there affects that item alone.
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/bondlegend4/globalid/internal/assign"
	"github.com/bondlegend4/globalid/internal/backlog"
	"github.com/bondlegend4/globalid/internal/classify"
	"github.com/bondlegend4/globalid/internal/registry"
	"github.com/bondlegend4/globalid/internal/runlog"
	"github.com/bondlegend4/globalid/internal/tracker"
)

// Options configures one run.
type Options struct {
	Repo        string // owner/name of the target repository
	BacklogPath string // markdown backlog document
	Live        bool   // false: no remote calls, no registry writes

	Registry *registry.Registry
	Taxonomy *classify.Taxonomy
	Client   tracker.Client
	Out      io.Writer      // operator progress
	Log      *runlog.Logger // run audit log
}

// Result summarizes what one run did.
type Result struct {
	ProjectCode string
	Assigned    int
	Milestones  int
	Created     int
	Failed      int
	Warnings    int
}

var warnGlyph = color.New(color.FgYellow).Sprint("⚠")

// Run executes the import. Per-item remote failures are reported and
// counted but do not abort the batch; only parse errors and registry
// write failures are fatal.
func Run(ctx context.Context, opts Options) (*Result, error) {
	out := opts.Out
	logger := opts.Log
	if logger == nil {
		logger = runlog.Discard()
	}

	assigner := assign.New(opts.Registry, opts.Taxonomy, opts.Repo)
	result := &Result{ProjectCode: assigner.ProjectCode()}

	mode := "DRY RUN"
	if opts.Live {
		mode = "LIVE"
	}
	fmt.Fprintf(out, "Starting import for %s\n", opts.Repo)
	fmt.Fprintf(out, "Reading from: %s\n", opts.BacklogPath)
	fmt.Fprintf(out, "Project code: %s\n", assigner.ProjectCode())
	fmt.Fprintf(out, "Mode: %s\n\n", mode)
	logger.Printf("run start repo=%s backlog=%s mode=%s", opts.Repo, opts.BacklogPath, mode)

	if !assigner.ProjectMatched() {
		result.Warnings++
		fmt.Fprintf(out, "%s Repository %q is not in the project taxonomy, using %s\n",
			warnGlyph, opts.Repo, classify.Misc)
		fmt.Fprintf(out, "  Add it to .gid/taxonomy.yaml to assign a real project code\n\n")
		logger.Printf("warning: unclassified project %q", opts.Repo)
	}

	milestones, epics, tasks, err := backlog.ParseFile(opts.BacklogPath)
	if err != nil {
		return nil, err
	}

	// Assign identifiers to epics first, then tasks, in document order.
	fmt.Fprintf(out, "Assigning global IDs...\n")
	items := make([]*backlog.Item, 0, len(epics)+len(tasks))
	items = append(items, epics...)
	items = append(items, tasks...)
	for _, item := range items {
		globalID, componentMatched, err := assigner.AssignID(item)
		if err != nil {
			// Insert can only fail on a duplicate key, which means the
			// registry was edited out from under us. Abort before
			// assigning anything else against bad state.
			return nil, fmt.Errorf("assigning %q: %w", item.Title, err)
		}
		if !componentMatched {
			result.Warnings++
			fmt.Fprintf(out, "%s No component match for labels %v, using %s\n",
				warnGlyph, item.Labels, classify.Misc)
			logger.Printf("warning: unclassified component for %q labels=%v", item.Title, item.Labels)
		}
		result.Assigned++
		fmt.Fprintf(out, "  %s: %s\n", globalID, truncate(item.Title, 60))
		logger.Printf("assigned %s local=%d title=%q", globalID, item.Number, item.Title)
	}

	printSummary(out, opts.Registry)

	if opts.Live {
		if err := opts.Registry.Persist(); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "\nSaved registry to %s\n", opts.Registry.Path())
		logger.Printf("registry persisted path=%s records=%d", opts.Registry.Path(), opts.Registry.Len())
	}

	// Milestones before issues so created issues can reference them.
	milestoneNumbers := make(map[string]int)
	if len(milestones) > 0 {
		fmt.Fprintf(out, "\nCreating %d milestones...\n", len(milestones))
		for _, m := range milestones {
			number, err := opts.Client.EnsureMilestone(ctx, m)
			if err != nil {
				result.Failed++
				fmt.Fprintf(out, "  Failed to create milestone %s: %v\n", m.Title, err)
				logger.Printf("milestone failed title=%q err=%v", m.Title, err)
				continue
			}
			milestoneNumbers[m.Title] = number
			result.Milestones++
			logger.Printf("milestone ready title=%q number=%d", m.Title, number)
		}
	}

	if len(epics) > 0 {
		fmt.Fprintf(out, "\nCreating %d epics...\n", len(epics))
		createBatch(ctx, opts, epics, milestoneNumbers, result, logger)
	}

	fmt.Fprintf(out, "\nCreating %d issues...\n", len(tasks))
	createBatch(ctx, opts, tasks, milestoneNumbers, result, logger)

	fmt.Fprintf(out, "\nImport complete: %d assigned, %d created", result.Assigned, result.Created)
	if result.Failed > 0 {
		fmt.Fprintf(out, ", %d failed", result.Failed)
	}
	fmt.Fprintf(out, "\n")
	logger.Printf("run done assigned=%d created=%d failed=%d warnings=%d",
		result.Assigned, result.Created, result.Failed, result.Warnings)

	return result, nil
}

// createBatch creates each item remotely and records the returned number.
// One item failing never stops the rest of the batch.
func createBatch(ctx context.Context, opts Options, items []*backlog.Item, milestoneNumbers map[string]int, result *Result, logger *runlog.Logger) {
	for _, item := range items {
		remoteNumber, err := opts.Client.CreateIssue(ctx, item)
		if err != nil {
			result.Failed++
			fmt.Fprintf(opts.Out, "  Failed to create %s: %v\n", item.GlobalID, err)
			logger.Printf("create failed id=%s err=%v", item.GlobalID, err)
			continue
		}
		result.Created++
		logger.Printf("created id=%s remote=%d", item.GlobalID, remoteNumber)

		if opts.Live {
			if err := opts.Registry.UpdateRemoteNumber(item.GlobalID, remoteNumber); err != nil {
				// Recoverable: the issue exists remotely, only the
				// write-back is missing. Report and keep going.
				result.Warnings++
				fmt.Fprintf(opts.Out, "%s Could not record remote number for %s: %v\n",
					warnGlyph, item.GlobalID, err)
				logger.Printf("warning: remote number update id=%s err=%v", item.GlobalID, err)
			}
		}

		if item.Milestone != "" {
			if number, ok := milestoneNumbers[item.Milestone]; ok {
				if err := opts.Client.SetMilestone(ctx, remoteNumber, number); err != nil {
					result.Warnings++
					fmt.Fprintf(opts.Out, "%s Milestone assignment failed for %s (add manually): %v\n",
						warnGlyph, item.GlobalID, err)
					logger.Printf("warning: milestone assign id=%s err=%v", item.GlobalID, err)
				}
			}
		}
	}
}

func printSummary(out io.Writer, reg *registry.Registry) {
	summary := reg.Summarize()
	if len(summary) == 0 {
		fmt.Fprintf(out, "\nNo identifiers in registry yet\n")
		return
	}

	fmt.Fprintf(out, "\nGlobal ID summary:\n")
	for _, row := range summary {
		fmt.Fprintf(out, "  %s: %d\n", row.Prefix, row.Count)
	}
}

// truncate shortens s to max characters, never splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

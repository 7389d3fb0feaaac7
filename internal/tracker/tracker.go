// Package tracker performs remote issue creation through the GitHub CLI.
//
// The importer treats this package as a collaborator: it hands over a
// backlog item carrying its assigned global identifier and receives the
// tracker-assigned issue number back. Retry and timeout policy belongs to
// gh itself.
package tracker

import (
	"context"

	"github.com/bondlegend4/globalid/internal/backlog"
)

// Client creates milestones and issues in a remote tracker.
type Client interface {
	// EnsureMilestone returns the number of an existing milestone with
	// the same title, creating it if absent.
	EnsureMilestone(ctx context.Context, m backlog.Milestone) (int, error)

	// CreateIssue creates an issue for item (which must already carry a
	// GlobalID) and returns the tracker-assigned issue number.
	CreateIssue(ctx context.Context, item *backlog.Item) (int, error)

	// SetMilestone attaches an already-created issue to a milestone.
	SetMilestone(ctx context.Context, issueNumber, milestoneNumber int) error
}

// issueBody decorates the item body with its global identifier, the way
// every created issue records its registry entry.
func issueBody(item *backlog.Item) string {
	return "**Global ID:** `" + item.GlobalID + "`\n\n---\n\n" + item.Body
}

package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/bondlegend4/globalid/internal/backlog"
)

// dryRunMilestoneNumber stands in for milestone numbers that were never
// created remotely.
const dryRunMilestoneNumber = 999

// DryRunClient prints what a live run would do and returns the item's
// local number instead of a tracker-assigned one. No side effects.
type DryRunClient struct {
	Out io.Writer
}

var _ Client = (*DryRunClient)(nil)

// NewDryRunClient returns a client that narrates to out.
func NewDryRunClient(out io.Writer) *DryRunClient {
	return &DryRunClient{Out: out}
}

func (c *DryRunClient) EnsureMilestone(_ context.Context, m backlog.Milestone) (int, error) {
	fmt.Fprintf(c.Out, "  [DRY RUN] Would create milestone: %s\n", m.Title)
	return dryRunMilestoneNumber, nil
}

func (c *DryRunClient) CreateIssue(_ context.Context, item *backlog.Item) (int, error) {
	kind := "issue"
	if item.IsEpic {
		kind = "epic"
	}
	fmt.Fprintf(c.Out, "  [DRY RUN] Would create %s: %s\n", kind, item.GlobalID)
	return item.Number, nil
}

func (c *DryRunClient) SetMilestone(_ context.Context, _, _ int) error {
	return nil
}

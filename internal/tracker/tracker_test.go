package tracker

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bondlegend4/globalid/internal/backlog"
)

func TestParseGHVersion(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"release output", "gh version 2.45.0 (2024-03-04)\nhttps://github.com/cli/cli/releases/tag/v2.45.0\n", "v2.45.0"},
		{"already prefixed", "gh version v2.20.0 (2022-11-01)", "v2.20.0"},
		{"garbage", "command not found", ""},
		{"empty", "", ""},
		{"non-semver", "gh version nightly (dev)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseGHVersion(tt.out); got != tt.want {
				t.Errorf("parseGHVersion(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestIssueBodyCarriesGlobalID(t *testing.T) {
	item := &backlog.Item{
		GlobalID: "VICS-PROTO-001",
		Body:     "## Problem\nsomething",
	}

	body := issueBody(item)
	if !strings.HasPrefix(body, "**Global ID:** `VICS-PROTO-001`") {
		t.Errorf("body does not lead with global id:\n%s", body)
	}
	if !strings.Contains(body, "## Problem\nsomething") {
		t.Errorf("body lost original content:\n%s", body)
	}
}

func TestDryRunClientCreateIssue(t *testing.T) {
	var buf bytes.Buffer
	client := NewDryRunClient(&buf)

	item := &backlog.Item{
		Number:   12,
		Title:    "Implement register map",
		GlobalID: "VICS-PROTO-001",
	}
	number, err := client.CreateIssue(context.Background(), item)
	if err != nil {
		t.Fatalf("CreateIssue() failed: %v", err)
	}
	if number != 12 {
		t.Errorf("CreateIssue() = %d, want local number 12", number)
	}
	if !strings.Contains(buf.String(), "[DRY RUN] Would create issue: VICS-PROTO-001") {
		t.Errorf("unexpected narration: %q", buf.String())
	}
}

func TestDryRunClientEpicNarration(t *testing.T) {
	var buf bytes.Buffer
	client := NewDryRunClient(&buf)

	item := &backlog.Item{Number: 0, Title: "Epic", GlobalID: "VICS-PROTO-002", IsEpic: true}
	if _, err := client.CreateIssue(context.Background(), item); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Would create epic: VICS-PROTO-002") {
		t.Errorf("unexpected narration: %q", buf.String())
	}
}

func TestDryRunClientEnsureMilestone(t *testing.T) {
	var buf bytes.Buffer
	client := NewDryRunClient(&buf)

	number, err := client.EnsureMilestone(context.Background(), backlog.Milestone{Title: "Foundations"})
	if err != nil {
		t.Fatalf("EnsureMilestone() failed: %v", err)
	}
	if number != dryRunMilestoneNumber {
		t.Errorf("EnsureMilestone() = %d, want %d", number, dryRunMilestoneNumber)
	}
	if !strings.Contains(buf.String(), "Would create milestone: Foundations") {
		t.Errorf("unexpected narration: %q", buf.String())
	}
}

func TestDryRunClientSetMilestoneIsNoop(t *testing.T) {
	var buf bytes.Buffer
	client := NewDryRunClient(&buf)

	if err := client.SetMilestone(context.Background(), 1, 2); err != nil {
		t.Fatalf("SetMilestone() failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("SetMilestone() wrote %q, want nothing", buf.String())
	}
}

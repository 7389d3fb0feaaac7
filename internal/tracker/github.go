package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/bondlegend4/globalid/internal/backlog"
	"github.com/bondlegend4/globalid/internal/debug"
)

// MinGHVersion is the oldest GitHub CLI release known to support the
// milestone API calls this package makes.
const MinGHVersion = "v2.20.0"

// GitHubClient shells out to the gh CLI for all remote calls.
type GitHubClient struct {
	Repo string // owner/name
}

var _ Client = (*GitHubClient)(nil)

// NewGitHubClient returns a live client for repo (owner/name form).
func NewGitHubClient(repo string) *GitHubClient {
	return &GitHubClient{Repo: repo}
}

// CheckGH verifies the gh CLI is installed, new enough, and authenticated.
func CheckGH(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "gh", "--version").Output()
	if err != nil {
		return fmt.Errorf("GitHub CLI not installed: %w", err)
	}

	if v := parseGHVersion(string(out)); v != "" && semver.Compare(v, MinGHVersion) < 0 {
		return fmt.Errorf("gh %s is too old, need %s or newer", v, MinGHVersion)
	}

	if err := exec.CommandContext(ctx, "gh", "auth", "status").Run(); err != nil {
		return fmt.Errorf("gh is not authenticated (run 'gh auth login'): %w", err)
	}

	return nil
}

// parseGHVersion extracts a canonical semver from "gh version 2.45.0
// (2024-03-04)" output. Returns empty string when the output is
// unrecognizable; callers skip the version gate in that case.
func parseGHVersion(out string) string {
	fields := strings.Fields(out)
	if len(fields) < 3 || fields[0] != "gh" || fields[1] != "version" {
		return ""
	}
	v := "v" + strings.TrimPrefix(fields[2], "v")
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

func (c *GitHubClient) EnsureMilestone(ctx context.Context, m backlog.Milestone) (int, error) {
	// Lookup first: milestones are keyed by title on the tracker side.
	lookup := exec.CommandContext(ctx, "gh", "api",
		fmt.Sprintf("repos/%s/milestones", c.Repo),
		"--jq", fmt.Sprintf(`.[] | select(.title==%q) | .number`, m.Title))
	if out, err := lookup.Output(); err == nil {
		if text := strings.TrimSpace(string(out)); text != "" {
			number, convErr := strconv.Atoi(text)
			if convErr == nil {
				debug.Logf("milestone %q exists (#%d)", m.Title, number)
				return number, nil
			}
		}
	}

	create := exec.CommandContext(ctx, "gh", "api",
		fmt.Sprintf("repos/%s/milestones", c.Repo), "-X", "POST",
		"-f", "title="+m.Title,
		"-f", "description="+m.Description)
	out, err := create.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("creating milestone %q: %w: %s", m.Title, err, strings.TrimSpace(string(out)))
	}

	var created struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(out, &created); err != nil {
		return 0, fmt.Errorf("parsing milestone response for %q: %w", m.Title, err)
	}

	return created.Number, nil
}

func (c *GitHubClient) CreateIssue(ctx context.Context, item *backlog.Item) (int, error) {
	args := []string{
		"issue", "create",
		"--repo", c.Repo,
		"--title", item.Title,
		"--body", issueBody(item),
	}
	if len(item.Labels) > 0 {
		args = append(args, "--label", strings.Join(item.Labels, ","))
	}

	out, err := exec.CommandContext(ctx, "gh", args...).Output()
	if err != nil {
		return 0, fmt.Errorf("creating issue %q: %w", item.Title, err)
	}

	// gh prints the issue URL; the number is the last path segment.
	url := strings.TrimSpace(string(out))
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return 0, fmt.Errorf("unexpected gh output for issue %q: %q", item.Title, url)
	}
	number, err := strconv.Atoi(url[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("parsing issue number from %q: %w", url, err)
	}

	return number, nil
}

func (c *GitHubClient) SetMilestone(ctx context.Context, issueNumber, milestoneNumber int) error {
	cmd := exec.CommandContext(ctx, "gh", "api",
		fmt.Sprintf("repos/%s/issues/%d", c.Repo, issueNumber),
		"-X", "PATCH",
		"-f", fmt.Sprintf("milestone=%d", milestoneNumber))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("assigning issue #%d to milestone #%d: %w: %s",
			issueNumber, milestoneNumber, err, strings.TrimSpace(string(out)))
	}
	return nil
}

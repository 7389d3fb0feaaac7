// Package backlog parses a structured backlog markdown document into
// milestones, epics, and issues.
//
// The document format is a fixed line-oriented template:
//
//	## MILESTONE: <title>
//	**Duration:** <text>
//	**Goal:** <text>
//
//	### EPIC: <title>
//	**Labels:** a, b, c
//
//	### ISSUE #<n>: <title>
//	**Labels:** a, b
//	**Epic:** <title>        (optional)
//	**Milestone:** <title>
//	**Estimated Time:** <text>
//	#### Problem ... #### Solution Tasks ... #### Acceptance Criteria ...
package backlog

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Milestone is a parsed milestone header.
type Milestone struct {
	Title       string
	Duration    string
	Description string
}

// Item is a parsed epic or issue. GlobalID is empty until the assigner
// sets it; it is set exactly once and never reassigned.
type Item struct {
	Number        int
	Title         string
	Body          string
	Labels        []string
	Milestone     string
	Epic          string
	EstimatedTime string
	IsEpic        bool
	GlobalID      string
}

// The last group of milestoneRe and issueRe captures the terminator
// (the next header, a --- rule, or end of input). Matching must resume
// AT the terminator, not after it, or an entry directly followed by the
// next header would swallow that header and drop the entry behind it.
var (
	milestoneRe = regexp.MustCompile(`(?s)## MILESTONE: (.+?)\n\*\*Duration:\*\* (.+?)\n\*\*Goal:\*\* (.+?)(\n---|\n##|$)`)
	epicRe      = regexp.MustCompile(`### EPIC: (.+?)\n\*\*Labels:\*\* (.+?)\n`)
	issueRe     = regexp.MustCompile(`(?s)### ISSUE #(\d+): (.+?)\n\*\*Labels:\*\* (.+?)\n(?:\*\*Epic:\*\* (.+?)\n)?\*\*Milestone:\*\* (.+?)\n\*\*Estimated Time:\*\* (.+?)\n+#### Problem\n(.+?)\n+#### Solution Tasks\n(.+?)\n+#### Acceptance Criteria\n(.+?)(\n+####|\n---|\n###|$)`)
)

// ParseFile reads and parses the backlog document at path.
func ParseFile(path string) ([]Milestone, []*Item, []*Item, error) {
	content, err := os.ReadFile(path) // #nosec G304 - user-provided file path is intentional
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading backlog: %w", err)
	}
	return Parse(string(content))
}

// findAllResuming returns every match of re in content. Unlike
// FindAllStringSubmatch it resumes each scan at the START of the final
// (terminator) group, so a header that doubles as the previous entry's
// terminator is still seen by the next scan.
func findAllResuming(re *regexp.Regexp, content string) [][]string {
	groupCount := re.NumSubexp() + 1
	var matches [][]string

	pos := 0
	for pos <= len(content) {
		loc := re.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}

		groups := make([]string, groupCount)
		for i := 0; i < groupCount; i++ {
			if loc[2*i] >= 0 {
				groups[i] = content[pos+loc[2*i] : pos+loc[2*i+1]]
			}
		}
		matches = append(matches, groups)

		next := pos + loc[2*(groupCount-1)]
		if next <= pos {
			break
		}
		pos = next
	}

	return matches
}

// Parse extracts milestones, epics, and issues in document order.
func Parse(content string) ([]Milestone, []*Item, []*Item, error) {
	var milestones []Milestone
	for _, m := range findAllResuming(milestoneRe, content) {
		milestones = append(milestones, Milestone{
			Title:       strings.TrimSpace(m[1]),
			Duration:    strings.TrimSpace(m[2]),
			Description: strings.TrimSpace(m[3]),
		})
	}

	var epics []*Item
	for _, m := range epicRe.FindAllStringSubmatch(content, -1) {
		epics = append(epics, &Item{
			Title:  strings.TrimSpace(m[1]),
			Body:   "Epic (see original markdown for details)",
			Labels: splitLabels(m[2]),
			IsEpic: true,
		})
	}

	var issues []*Item
	for _, m := range findAllResuming(issueRe, content) {
		number, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("issue %q: bad number %q", strings.TrimSpace(m[2]), m[1])
		}

		estimated := strings.TrimSpace(m[6])
		var body strings.Builder
		fmt.Fprintf(&body, "**Estimated Time:** %s\n\n", estimated)
		fmt.Fprintf(&body, "## Problem\n%s\n\n", strings.TrimSpace(m[7]))
		fmt.Fprintf(&body, "## Solution Tasks\n%s\n\n", strings.TrimSpace(m[8]))
		fmt.Fprintf(&body, "## Acceptance Criteria\n%s", strings.TrimSpace(m[9]))

		issues = append(issues, &Item{
			Number:        number,
			Title:         strings.TrimSpace(m[2]),
			Body:          body.String(),
			Labels:        splitLabels(m[3]),
			Epic:          strings.TrimSpace(m[4]),
			Milestone:     strings.TrimSpace(m[5]),
			EstimatedTime: estimated,
		})
	}

	return milestones, epics, issues, nil
}

func splitLabels(raw string) []string {
	parts := strings.Split(raw, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

// Package assign derives global identifiers for backlog items and records
// them in the registry.
package assign

import (
	"fmt"

	"github.com/bondlegend4/globalid/internal/backlog"
	"github.com/bondlegend4/globalid/internal/classify"
	"github.com/bondlegend4/globalid/internal/registry"
)

// Assigner produces identifiers of the form PROJECT-COMPONENT-NNN for one
// source repository. The project code is resolved once at construction;
// the component code is resolved per item from its labels.
//
// AssignID is count-then-insert against the shared registry and is not
// safe for concurrent use (see package registry).
type Assigner struct {
	registry       *registry.Registry
	taxonomy       *classify.Taxonomy
	sourceRepo     string
	projectCode    string
	projectMatched bool
}

// New builds an assigner for sourceRepo backed by reg.
func New(reg *registry.Registry, taxonomy *classify.Taxonomy, sourceRepo string) *Assigner {
	code, matched := taxonomy.ResolveProjectCode(sourceRepo)
	return &Assigner{
		registry:       reg,
		taxonomy:       taxonomy,
		sourceRepo:     sourceRepo,
		projectCode:    code,
		projectMatched: matched,
	}
}

// ProjectCode returns the project code resolved for this source repo.
func (a *Assigner) ProjectCode() string {
	return a.projectCode
}

// ProjectMatched reports whether the project code came from the taxonomy
// rather than the MISC sentinel.
func (a *Assigner) ProjectMatched() bool {
	return a.projectMatched
}

// AssignID computes the next identifier for item, records it in the
// registry, and sets item.GlobalID. The sequence number is the count of
// existing identifiers under the same PROJECT-COMPONENT prefix plus one,
// zero-padded to width 3.
//
// The second return reports whether the component code was matched from
// the taxonomy (false means the MISC sentinel was used).
func (a *Assigner) AssignID(item *backlog.Item) (string, bool, error) {
	component, matched := a.taxonomy.ResolveComponentCode(item.Labels)
	prefix := a.projectCode + "-" + component

	seq := a.registry.CountByPrefix(prefix) + 1
	globalID := fmt.Sprintf("%s-%03d", prefix, seq)

	rec := &registry.Record{
		GlobalID:    globalID,
		Project:     a.projectCode,
		Component:   component,
		LocalNumber: item.Number,
		SourceRepo:  a.sourceRepo,
		Title:       item.Title,
		Labels:      item.Labels,
		Milestone:   item.Milestone,
		Status:      registry.StatusOpen,
	}
	if err := a.registry.Insert(rec); err != nil {
		return "", matched, err
	}

	item.GlobalID = globalID
	return globalID, matched, nil
}

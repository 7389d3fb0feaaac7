// Package globalid provides a minimal public API for embedding the gid
// identifier registry in other tools.
//
// Most automation should drive the gid binary directly; this package
// exports only the types and constructors needed to assign identifiers
// and read the registry programmatically.
package globalid

import (
	"github.com/bondlegend4/globalid/internal/assign"
	"github.com/bondlegend4/globalid/internal/backlog"
	"github.com/bondlegend4/globalid/internal/classify"
	"github.com/bondlegend4/globalid/internal/configfile"
	"github.com/bondlegend4/globalid/internal/registry"
)

type (
	// Registry is the durable store mapping global identifiers to records.
	Registry = registry.Registry
	// Record is the metadata stored for one assigned identifier.
	Record = registry.Record
	// PrefixCount is one row of a registry summary.
	PrefixCount = registry.PrefixCount
	// Assigner derives PROJECT-COMPONENT-NNN identifiers for one source repo.
	Assigner = assign.Assigner
	// Taxonomy holds the project and component classification tables.
	Taxonomy = classify.Taxonomy
	// Item is a parsed backlog epic or issue.
	Item = backlog.Item
	// Milestone is a parsed backlog milestone.
	Milestone = backlog.Milestone
)

// Error kinds surfaced by the registry. Test with errors.Is.
var (
	ErrCorruptState = registry.ErrCorruptState
	ErrDuplicateID  = registry.ErrDuplicateID
	ErrNotFound     = registry.ErrNotFound
)

// Misc is the sentinel code used when classification finds no match.
const Misc = classify.Misc

// LoadRegistry reads the registry store at path, or starts an empty one
// if the file does not exist.
func LoadRegistry(path string) (*Registry, error) {
	return registry.Load(path)
}

// DefaultTaxonomy returns the built-in classification tables.
func DefaultTaxonomy() *Taxonomy {
	return classify.Default()
}

// NewAssigner builds an assigner for sourceRepo backed by reg.
func NewAssigner(reg *Registry, taxonomy *Taxonomy, sourceRepo string) *Assigner {
	return assign.New(reg, taxonomy, sourceRepo)
}

// FindWorkspaceDir locates the .gid directory for the current workspace
// ($GID_DIR, then .gid/ in the current directory or any ancestor).
// Returns empty string if not found.
func FindWorkspaceDir() string {
	return configfile.FindGidDir()
}

// Package registry is the durable store mapping global identifiers to
// their metadata records.
//
// The store is a single JSON document keyed by global identifier, loaded
// fully into memory at startup and written back atomically. Output is
// deterministic (sorted keys, fixed indentation) so registry diffs stay
// reviewable across runs.
//
// The registry is not safe for concurrent use. Identifier assignment is
// count-then-insert, which must execute as one critical section; callers
// that want parallelism must serialize through a single writer.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
)

// StatusOpen is the initial status for every record.
const StatusOpen = "open"

// Record is the metadata stored for one assigned global identifier.
type Record struct {
	GlobalID     string   `json:"global_id"`
	Project      string   `json:"project"`
	Component    string   `json:"component"`
	LocalNumber  int      `json:"local_number"`
	SourceRepo   string   `json:"source_repo"`
	RemoteNumber *int     `json:"remote_number"`
	Title        string   `json:"title"`
	Labels       []string `json:"labels"`
	Milestone    string   `json:"milestone,omitempty"`
	Status       string   `json:"status"`
}

// PrefixCount is one row of a registry summary.
type PrefixCount struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

// Registry holds all assigned identifiers for one store file.
type Registry struct {
	path    string
	records map[string]*Record
}

// Load reads the registry at path. A missing file yields an empty
// registry; an unreadable or unparsable file yields ErrCorruptState.
func Load(path string) (*Registry, error) {
	r := &Registry{
		path:    path,
		records: make(map[string]*Record),
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from workspace metadata or flag
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptState, path, err)
	}

	if err := json.Unmarshal(data, &r.records); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorruptState, path, err)
	}

	return r, nil
}

// Path returns the store file backing this registry.
func (r *Registry) Path() string {
	return r.path
}

// Len returns the number of records held.
func (r *Registry) Len() int {
	return len(r.records)
}

// Get returns the record for id, or nil if absent.
func (r *Registry) Get(id string) *Record {
	return r.records[id]
}

// CountByPrefix counts records whose global identifier starts with prefix.
// Matching is textual: "VICS-RUST" also counts a hypothetical
// "VICS-RUST2-001". Assignment always queries with the full
// PROJECT-COMPONENT prefix, so over-counting only occurs when one
// component code is a textual prefix of another.
func (r *Registry) CountByPrefix(prefix string) int {
	count := 0
	for id := range r.records {
		if strings.HasPrefix(id, prefix) {
			count++
		}
	}
	return count
}

// Insert adds a new record keyed by its global identifier. Existing
// records are never overwritten; a key collision is ErrDuplicateID.
func (r *Registry) Insert(rec *Record) error {
	if rec.GlobalID == "" {
		return fmt.Errorf("record has no global identifier")
	}
	if _, exists := r.records[rec.GlobalID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, rec.GlobalID)
	}
	if rec.Status == "" {
		rec.Status = StatusOpen
	}
	r.records[rec.GlobalID] = rec
	return nil
}

// UpdateRemoteNumber records the tracker-assigned issue number for id and
// persists the registry. Setting the same number twice is a no-op.
func (r *Registry) UpdateRemoteNumber(id string, remoteNumber int) error {
	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if rec.RemoteNumber != nil && *rec.RemoteNumber == remoteNumber {
		return nil
	}
	rec.RemoteNumber = &remoteNumber
	return r.Persist()
}

// Persist writes the full registry to its store file, replacing the old
// contents only after the new document is fully written. encoding/json
// sorts map keys, so output is deterministic for a given set of records.
func (r *Registry) Persist() error {
	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing registry %s: %w", r.path, err)
	}

	return nil
}

// Summarize groups records by their PROJECT-COMPONENT prefix and returns
// the counts sorted by prefix. Read-only.
func (r *Registry) Summarize() []PrefixCount {
	groups := make(map[string]int)
	for _, rec := range r.records {
		groups[rec.Project+"-"+rec.Component]++
	}

	summary := make([]PrefixCount, 0, len(groups))
	for prefix, count := range groups {
		summary = append(summary, PrefixCount{Prefix: prefix, Count: count})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Prefix < summary[j].Prefix
	})

	return summary
}

// Package classify maps source repositories to project codes and issue
// labels to component codes.
//
// Both tables are ordered association lists, not maps: when a repository
// name or label joins on a substring rather than an exact key, the first
// entry in table order wins, so the ordering below is part of the
// classification contract.
package classify

import "strings"

// Misc is the sentinel code for anything the taxonomy does not recognize.
const Misc = "MISC"

// Entry associates one taxonomy key with a short code.
type Entry struct {
	Match string `yaml:"match"`
	Code  string `yaml:"code"`
}

// projectTable maps known repository names to project codes.
var projectTable = []Entry{
	// Core components
	{"space-colony-modelica-core", "MODELICA"},
	{"modelica-rust-ffi", "FFI"},
	{"modelica-rust-modbus-server", "MODBUS"},
	{"godot-modelica-rust-integration", "GODOT"},

	// Parent projects
	{"v-ics-le", "VICS"},
	{"V-ICS", "VICS"},
	{"lunaco-sim", "LUNACO"},
	{"godot-colony-sim", "COLONY"},

	// Legacy names
	{"modelica-godot-integration", "CORE"},
	{"colony-sim-framework", "COLONY"},
	{"mars-irrigation", "IRRIGATION"},
}

// componentTable maps normalized labels to component codes.
var componentTable = []Entry{
	// Environment & setup
	{"setup", "ENV"},
	{"environment", "ENV"},
	{"installation", "ENV"},

	// Proof of concept
	{"poc", "POC"},
	{"proof-of-concept", "POC"},
	{"validation", "POC"},

	// Build & compilation
	{"build", "BUILD"},
	{"automation", "BUILD"},
	{"compilation", "BUILD"},
	{"ci", "BUILD"},

	// Modeling
	{"modeling", "MODEL"},
	{"model", "MODEL"},
	{"physics", "MODEL"},
	{"simulation", "MODEL"},

	// Rust / FFI
	{"rust", "RUST"},
	{"ffi", "FFI"},
	{"bindings", "FFI"},
	{"safety", "RUST"},
	{"concurrency", "RUST"},

	// Networking & protocols
	{"modbus", "PROTO"},
	{"protocol", "PROTO"},
	{"networking", "NET"},
	{"tcp", "NET"},

	// Integration
	{"integration", "INTEG"},
	{"godot", "GODOT"},
	{"api", "API"},

	// Configuration
	{"config", "CONFIG"},
	{"configuration", "CONFIG"},

	// Deployment
	{"deployment", "DEPLOY"},
	{"docker", "DEPLOY"},

	// Performance
	{"performance", "PERF"},
	{"optimization", "PERF"},

	// Visualization
	{"visualization", "VIZ"},
	{"ui", "VIZ"},
	{"frontend", "VIZ"},

	// Backend
	{"backend", "BACKEND"},
	{"server", "BACKEND"},

	// Power systems
	{"power-systems", "POWER"},
	{"electrical", "POWER"},

	// Life support
	{"life-support", "LIFE"},
	{"eclss", "LIFE"},

	// Thermal
	{"thermal", "THERMAL"},
	{"heating", "THERMAL"},

	// Security
	{"security", "SEC"},
	{"attacks", "SEC"},

	{"plc", "PLC"},

	// Testing
	{"testing", "TEST"},
	{"test", "TEST"},

	// Documentation
	{"documentation", "DOC"},
	{"docs", "DOC"},

	{"data", "DATA"},
}

// componentHeuristics are substring fallbacks applied to the joined label
// text when no single label matches the component table. Checked in order.
var componentHeuristics = []struct {
	substrings []string
	code       string
}{
	{[]string{"rust", "ffi"}, "RUST"},
	{[]string{"modbus", "protocol"}, "PROTO"},
	{[]string{"godot"}, "GODOT"},
	{[]string{"model", "physics"}, "MODEL"},
	{[]string{"config"}, "CONFIG"},
}

// Taxonomy holds the classification tables for one run. The zero value is
// not usable; construct with Default or Load.
type Taxonomy struct {
	projects   []Entry
	components []Entry
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		projects:   projectTable,
		components: componentTable,
	}
}

// ResolveProjectCode derives the project code for a repository identifier.
// An owner/ prefix is stripped before matching. Exact matches win, then
// bidirectional substring matches in table order. The second return is
// false when the sentinel was used; callers decide whether to warn.
func (t *Taxonomy) ResolveProjectCode(repo string) (string, bool) {
	name := repo
	if idx := strings.LastIndex(repo, "/"); idx >= 0 {
		name = repo[idx+1:]
	}

	for _, e := range t.projects {
		if e.Match == name {
			return e.Code, true
		}
	}

	for _, e := range t.projects {
		if strings.Contains(name, e.Match) || strings.Contains(e.Match, name) {
			return e.Code, true
		}
	}

	return Misc, false
}

// ResolveComponentCode derives the component code from an issue's labels.
// Labels are checked in their given order against the component table
// (first match wins), then the joined label text is run through the
// substring heuristics. The second return is false when the sentinel was
// used.
func (t *Taxonomy) ResolveComponentCode(labels []string) (string, bool) {
	for _, label := range labels {
		normalized := strings.ToLower(strings.TrimSpace(label))
		for _, e := range t.components {
			if e.Match == normalized {
				return e.Code, true
			}
		}
	}

	joined := strings.ToLower(strings.Join(labels, " "))
	for _, h := range componentHeuristics {
		for _, sub := range h.substrings {
			if strings.Contains(joined, sub) {
				return h.code, true
			}
		}
	}

	return Misc, false
}

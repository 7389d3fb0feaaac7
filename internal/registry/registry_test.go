package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRecord(id, project, component string) *Record {
	return &Record{
		GlobalID:    id,
		Project:     project,
		Component:   component,
		LocalNumber: 1,
		SourceRepo:  "bondlegend4/v-ics-le",
		Title:       "test record " + id,
		Labels:      []string{"modbus"},
		Status:      StatusOpen,
	}
}

func TestLoadMissingFile(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "registry.json"))
	if err != nil {
		t.Fatalf("Load() returned error for missing file: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for corrupt store")
	}
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("error = %v, want ErrCorruptState", err)
	}
}

func TestInsertAndGet(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	rec := testRecord("VICS-PROTO-001", "VICS", "PROTO")
	if err := reg.Insert(rec); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got := reg.Get("VICS-PROTO-001")
	if got == nil {
		t.Fatal("Get() returned nil for inserted record")
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertDuplicate(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	if err := reg.Insert(testRecord("VICS-PROTO-001", "VICS", "PROTO")); err != nil {
		t.Fatalf("first Insert() failed: %v", err)
	}

	err := reg.Insert(testRecord("VICS-PROTO-001", "VICS", "PROTO"))
	if err == nil {
		t.Fatal("Insert() should fail for duplicate key")
	}
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestInsertDefaultsStatus(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	rec := testRecord("VICS-PROTO-001", "VICS", "PROTO")
	rec.Status = ""
	if err := reg.Insert(rec); err != nil {
		t.Fatal(err)
	}

	if got := reg.Get("VICS-PROTO-001").Status; got != StatusOpen {
		t.Errorf("Status = %q, want %q", got, StatusOpen)
	}
}

func TestCountByPrefix(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	for _, id := range []string{"VICS-PROTO-001", "VICS-PROTO-002", "VICS-NET-001"} {
		if err := reg.Insert(testRecord(id, "VICS", "PROTO")); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		prefix string
		want   int
	}{
		{"VICS-PROTO", 2},
		{"VICS-NET", 1},
		{"VICS", 3},
		{"LUNACO", 0},
		{"", 3},
	}
	for _, tt := range tests {
		if got := reg.CountByPrefix(tt.prefix); got != tt.want {
			t.Errorf("CountByPrefix(%q) = %d, want %d", tt.prefix, got, tt.want)
		}
	}
}

func TestCountByPrefixIsTextual(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	// Matching is literal prefix matching, not component-boundary aware:
	// a RUST2 identifier counts under the RUST prefix.
	if err := reg.Insert(testRecord("VICS-RUST-001", "VICS", "RUST")); err != nil {
		t.Fatal(err)
	}
	if err := reg.Insert(testRecord("VICS-RUST2-001", "VICS", "RUST2")); err != nil {
		t.Fatal(err)
	}

	if got := reg.CountByPrefix("VICS-RUST"); got != 2 {
		t.Errorf("CountByPrefix(VICS-RUST) = %d, want 2 (textual match)", got)
	}
	if got := reg.CountByPrefix("VICS-RUST2"); got != 1 {
		t.Errorf("CountByPrefix(VICS-RUST2) = %d, want 1", got)
	}
}

func TestUpdateRemoteNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	reg, _ := Load(path)

	if err := reg.Insert(testRecord("VICS-PROTO-001", "VICS", "PROTO")); err != nil {
		t.Fatal(err)
	}

	if err := reg.UpdateRemoteNumber("VICS-PROTO-001", 42); err != nil {
		t.Fatalf("UpdateRemoteNumber() failed: %v", err)
	}

	rec := reg.Get("VICS-PROTO-001")
	if rec.RemoteNumber == nil || *rec.RemoteNumber != 42 {
		t.Errorf("RemoteNumber = %v, want 42", rec.RemoteNumber)
	}

	// The update persists.
	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got := reloaded.Get("VICS-PROTO-001")
	if got == nil || got.RemoteNumber == nil || *got.RemoteNumber != 42 {
		t.Errorf("persisted RemoteNumber = %v, want 42", got.RemoteNumber)
	}
}

func TestUpdateRemoteNumberIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	reg, _ := Load(path)

	if err := reg.Insert(testRecord("VICS-PROTO-001", "VICS", "PROTO")); err != nil {
		t.Fatal(err)
	}
	if err := reg.UpdateRemoteNumber("VICS-PROTO-001", 42); err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := reg.UpdateRemoteNumber("VICS-PROTO-001", 42); err != nil {
		t.Fatalf("second UpdateRemoteNumber() failed: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(before), string(after)); diff != "" {
		t.Errorf("store changed on idempotent update (-before +after):\n%s", diff)
	}
}

func TestUpdateRemoteNumberNotFound(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	err := reg.UpdateRemoteNumber("VICS-PROTO-999", 42)
	if err == nil {
		t.Fatal("UpdateRemoteNumber() should fail for unknown id")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	reg, _ := Load(path)

	ids := []string{"VICS-PROTO-001", "VICS-NET-001", "LUNACO-MODEL-001"}
	for _, id := range ids {
		if err := reg.Insert(testRecord(id, "X", "Y")); err != nil {
			t.Fatal(err)
		}
	}
	if err := reg.Persist(); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Load then persist with no mutation: byte-for-byte identical.
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := reloaded.Persist(); err != nil {
		t.Fatalf("Persist() after reload failed: %v", err)
	}

	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("round trip not byte-identical (-first +second):\n%s", diff)
	}

	for _, id := range ids {
		if reloaded.Get(id) == nil {
			t.Errorf("record %s lost in round trip", id)
		}
	}
}

func TestSummarize(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))

	inserts := []struct {
		id, project, component string
	}{
		{"VICS-PROTO-001", "VICS", "PROTO"},
		{"VICS-PROTO-002", "VICS", "PROTO"},
		{"VICS-NET-001", "VICS", "NET"},
		{"LUNACO-MODEL-001", "LUNACO", "MODEL"},
	}
	for _, ins := range inserts {
		if err := reg.Insert(testRecord(ins.id, ins.project, ins.component)); err != nil {
			t.Fatal(err)
		}
	}

	want := []PrefixCount{
		{Prefix: "LUNACO-MODEL", Count: 1},
		{Prefix: "VICS-NET", Count: 1},
		{Prefix: "VICS-PROTO", Count: 2},
	}
	if diff := cmp.Diff(want, reg.Summarize()); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	reg, _ := Load(filepath.Join(t.TempDir(), "registry.json"))
	if got := reg.Summarize(); len(got) != 0 {
		t.Errorf("Summarize() = %v, want empty", got)
	}
}

package configfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Registry != "registry.json" {
		t.Errorf("Registry = %q, want registry.json", cfg.Registry)
	}

	if cfg.Taxonomy != "taxonomy.yaml" {
		t.Errorf("Taxonomy = %q, want taxonomy.yaml", cfg.Taxonomy)
	}

	if cfg.RunLog != "import.log" {
		t.Errorf("RunLog = %q, want import.log", cfg.RunLog)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	gidDir := filepath.Join(tmpDir, ".gid")
	if err := os.MkdirAll(gidDir, 0750); err != nil {
		t.Fatalf("failed to create .gid directory: %v", err)
	}

	cfg := DefaultConfig()

	if err := cfg.Save(gidDir); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(gidDir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded == nil {
		t.Fatal("Load() returned nil config")
	}

	if loaded.Registry != cfg.Registry {
		t.Errorf("Registry = %q, want %q", loaded.Registry, cfg.Registry)
	}

	if loaded.Taxonomy != cfg.Taxonomy {
		t.Errorf("Taxonomy = %q, want %q", loaded.Taxonomy, cfg.Taxonomy)
	}
}

func TestLoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() returned error for nonexistent config: %v", err)
	}

	if cfg != nil {
		t.Errorf("Load() = %v, want nil for nonexistent config", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	gidDir := t.TempDir()
	if err := os.WriteFile(ConfigPath(gidDir), []byte("{bad"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(gidDir); err == nil {
		t.Error("Load() should fail for invalid metadata")
	}
}

func TestPathHelpers(t *testing.T) {
	gidDir := "/home/user/project/.gid"

	tests := []struct {
		name string
		cfg  *Config
		got  func(*Config) string
		want string
	}{
		{"registry set", &Config{Registry: "reg.json"}, func(c *Config) string { return c.RegistryPath(gidDir) }, filepath.Join(gidDir, "reg.json")},
		{"registry default", &Config{}, func(c *Config) string { return c.RegistryPath(gidDir) }, filepath.Join(gidDir, "registry.json")},
		{"taxonomy set", &Config{Taxonomy: "tax.yaml"}, func(c *Config) string { return c.TaxonomyPath(gidDir) }, filepath.Join(gidDir, "tax.yaml")},
		{"taxonomy default", &Config{}, func(c *Config) string { return c.TaxonomyPath(gidDir) }, filepath.Join(gidDir, "taxonomy.yaml")},
		{"run log default", &Config{}, func(c *Config) string { return c.RunLogPath(gidDir) }, filepath.Join(gidDir, "import.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(tt.cfg); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindGidDirFromEnv(t *testing.T) {
	gidDir := t.TempDir()
	t.Setenv("GID_DIR", gidDir)

	got := FindGidDir()
	if got == "" {
		t.Fatal("FindGidDir() = empty, want env dir")
	}
	// The env path is canonicalized, so compare resolved forms.
	wantInfo, err := os.Stat(gidDir)
	if err != nil {
		t.Fatal(err)
	}
	gotInfo, err := os.Stat(got)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(wantInfo, gotInfo) {
		t.Errorf("FindGidDir() = %q, want %q", got, gidDir)
	}
}

func TestFindGidDirWalksUp(t *testing.T) {
	root := t.TempDir()
	gidDir := filepath.Join(root, ".gid")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(gidDir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0750); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GID_DIR", "")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	got := FindGidDir()
	if got == "" {
		t.Fatal("FindGidDir() = empty, want ancestor .gid")
	}
	wantInfo, _ := os.Stat(gidDir)
	gotInfo, err := os.Stat(got)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(wantInfo, gotInfo) {
		t.Errorf("FindGidDir() = %q, want %q", got, gidDir)
	}
}

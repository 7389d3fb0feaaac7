// Package configfile manages the .gid/metadata.json file that records
// where the registry, taxonomy, and run log live inside a workspace.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigFileName = "metadata.json"

	// GidDirName is the workspace directory created by 'gid init'.
	GidDirName = ".gid"
)

type Config struct {
	Registry string `json:"registry"`
	Taxonomy string `json:"taxonomy,omitempty"`
	RunLog   string `json:"run_log,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Registry: "registry.json",
		Taxonomy: "taxonomy.yaml",
		RunLog:   "import.log",
	}
}

func ConfigPath(gidDir string) string {
	return filepath.Join(gidDir, ConfigFileName)
}

// Load reads metadata.json from the given .gid directory.
// Returns (nil, nil) if the file does not exist.
func Load(gidDir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(gidDir)) // #nosec G304 - controlled path from workspace discovery
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Save(gidDir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	if err := os.WriteFile(ConfigPath(gidDir), data, 0600); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	return nil
}

func (c *Config) RegistryPath(gidDir string) string {
	if c.Registry == "" {
		return filepath.Join(gidDir, "registry.json")
	}
	return filepath.Join(gidDir, c.Registry)
}

func (c *Config) TaxonomyPath(gidDir string) string {
	if c.Taxonomy == "" {
		return filepath.Join(gidDir, "taxonomy.yaml")
	}
	return filepath.Join(gidDir, c.Taxonomy)
}

func (c *Config) RunLogPath(gidDir string) string {
	if c.RunLog == "" {
		return filepath.Join(gidDir, "import.log")
	}
	return filepath.Join(gidDir, c.RunLog)
}

// FindGidDir locates the .gid directory for the current workspace:
//  1. $GID_DIR environment variable
//  2. .gid/ in the current directory or any ancestor
//
// Returns empty string if not found.
func FindGidDir() string {
	if envDir := os.Getenv("GID_DIR"); envDir != "" {
		if abs, err := filepath.Abs(envDir); err == nil {
			if info, err := os.Stat(abs); err == nil && info.IsDir() {
				return abs
			}
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		gidDir := filepath.Join(dir, GidDirName)
		if info, err := os.Stat(gidDir); err == nil && info.IsDir() {
			return gidDir
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	return ""
}

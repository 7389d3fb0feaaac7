package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bondlegend4/globalid/internal/config"
	"github.com/bondlegend4/globalid/internal/configfile"
	"github.com/bondlegend4/globalid/internal/debug"
)

var (
	registryOverride string // --registry flag
	jsonOutput       bool
	quiet            bool
)

func init() {
	// Initialize viper configuration
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&registryOverride, "registry", "", "Registry path (default: .gid/registry.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

var rootCmd = &cobra.Command{
	Use:   "gid",
	Short: "gid - Backlog importer with global identifiers",
	Long: `Imports a markdown backlog (milestones, epics, issues) into an issue
tracker, assigning each item a stable PROJECT-COMPONENT-NNN identifier
recorded in a durable registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("gid version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Priority: flags > viper (config file + env vars) > defaults.
		// Only fall back to viper when the flag wasn't explicitly set.
		if !cmd.Flags().Changed("json") {
			jsonOutput = config.GetBool("json")
		}
		if !cmd.Flags().Changed("quiet") {
			quiet = config.GetBool("quiet")
		}
		if !cmd.Flags().Changed("registry") && registryOverride == "" {
			registryOverride = config.GetString("registry")
		}

		debug.SetQuiet(quiet)
	},
}

// workspacePaths resolves where the registry, taxonomy, and run log live.
// The --registry flag (or GID_REGISTRY) overrides the registry location;
// everything else comes from .gid/metadata.json.
type workspacePaths struct {
	GidDir   string
	Registry string
	Taxonomy string
	RunLog   string
}

// resolveWorkspace locates the .gid directory and reads its metadata.
// When no workspace exists, Registry falls back to the --registry flag
// (empty means "not resolvable"; callers decide whether that is fatal).
func resolveWorkspace() (workspacePaths, error) {
	var paths workspacePaths
	paths.Registry = registryOverride

	gidDir := configfile.FindGidDir()
	if gidDir == "" {
		return paths, nil
	}
	paths.GidDir = gidDir

	cfg, err := configfile.Load(gidDir)
	if err != nil {
		return paths, err
	}
	if cfg == nil {
		cfg = configfile.DefaultConfig()
	}

	if paths.Registry == "" {
		paths.Registry = cfg.RegistryPath(gidDir)
	}
	paths.Taxonomy = cfg.TaxonomyPath(gidDir)
	paths.RunLog = cfg.RunLogPath(gidDir)

	debug.Logf("workspace dir=%s registry=%s", gidDir, paths.Registry)
	return paths, nil
}

// ensureWorkspace resolves the workspace, creating .gid/ in the current
// directory when none exists. Used by live import so a first run needs
// no separate init step; dry runs resolve without creating anything.
func ensureWorkspace() (workspacePaths, error) {
	paths, err := resolveWorkspace()
	if err != nil {
		return paths, err
	}
	if paths.GidDir != "" {
		return paths, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return paths, err
	}
	gidDir := filepath.Join(cwd, configfile.GidDirName)
	if err := os.MkdirAll(gidDir, 0750); err != nil {
		return paths, fmt.Errorf("creating %s: %w", gidDir, err)
	}

	cfg := configfile.DefaultConfig()
	if err := cfg.Save(gidDir); err != nil {
		return paths, err
	}

	paths.GidDir = gidDir
	if paths.Registry == "" {
		paths.Registry = cfg.RegistryPath(gidDir)
	}
	paths.Taxonomy = cfg.TaxonomyPath(gidDir)
	paths.RunLog = cfg.RunLogPath(gidDir)

	fmt.Fprintf(os.Stderr, "Initialized workspace at %s\n", gidDir)
	return paths, nil
}

func outputJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

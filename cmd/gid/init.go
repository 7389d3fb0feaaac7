package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bondlegend4/globalid/internal/configfile"
	"github.com/bondlegend4/globalid/internal/debug"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .gid workspace in the current directory",
	Long: `Creates the .gid/ directory holding the identifier registry, the
workspace metadata, a commented config.yaml, and a taxonomy.yaml stub
for workspace-local project and component codes.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		gidDir := filepath.Join(cwd, configfile.GidDirName)

		if _, err := os.Stat(configfile.ConfigPath(gidDir)); err == nil && !force {
			fmt.Fprintf(os.Stderr, "Error: workspace already initialized at %s\n", gidDir)
			fmt.Fprintf(os.Stderr, "Hint: use --force to rewrite metadata and templates\n")
			os.Exit(1)
		}

		if err := os.MkdirAll(gidDir, 0750); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create %s: %v\n", gidDir, err)
			os.Exit(1)
		}

		cfg := configfile.DefaultConfig()
		if err := cfg.Save(gidDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := createConfigYaml(gidDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := createTaxonomyYaml(gidDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Initialized gid workspace in %s\n", green("✓"), gidDir)
		debug.PrintNormal("  Registry: %s\n", cfg.RegistryPath(gidDir))
		debug.PrintNormal("  Run 'gid import <owner/repo> <backlog.md>' to assign identifiers\n")
	},
}

// createConfigYaml writes the commented config.yaml template. Skipped if
// the file already exists so local edits survive re-init.
func createConfigYaml(gidDir string) error {
	path := filepath.Join(gidDir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	template := `# gid configuration file
# Settings here apply to all gid commands run in this workspace.
# Every key can also be set via environment variables (GID_* prefix)
# or overridden with command-line flags.

# Registry path override (default: .gid/registry.json)
# registry: ""

# Enable JSON output by default
# json: false

# Suppress non-essential output
# quiet: false

# Create issues remotely by default instead of dry-running
# (equivalent to always passing --live; most workspaces should leave
# this off and pass the flag explicitly)
# live: false
`

	if err := os.WriteFile(path, []byte(template), 0600); err != nil {
		return fmt.Errorf("failed to write config.yaml: %w", err)
	}
	return nil
}

// createTaxonomyYaml writes the taxonomy stub. Skipped if present.
func createTaxonomyYaml(gidDir string) error {
	path := filepath.Join(gidDir, "taxonomy.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	template := `# Workspace-local taxonomy extensions.
# Entries here take priority over the built-in tables; within each list,
# earlier entries win, so order matters.

# projects:
#   - match: my-repo-name
#     code: MYPROJ

# components:
#   - match: my-label
#     code: MYCOMP
`

	if err := os.WriteFile(path, []byte(template), 0600); err != nil {
		return fmt.Errorf("failed to write taxonomy.yaml: %w", err)
	}
	return nil
}

func init() {
	initCmd.Flags().Bool("force", false, "Rewrite metadata even if the workspace exists")
	rootCmd.AddCommand(initCmd)
}

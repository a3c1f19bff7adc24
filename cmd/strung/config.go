package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/strung/pkg/strung/config"
	"github.com/jamesainslie/strung/pkg/strung/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage strung configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/strung/config.yaml (if set)
  2. ~/.config/strung/config.yaml

Environment variables can override config file settings using the STRUNG_ prefix:
  STRUNG_CATALOG_PATH=~/catalogs/flatwound.yaml
  STRUNG_LOGGING_LEVEL=debug`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration and starter instruments",
	Long: `Create a default configuration file and a starter instruments file if
they don't exist yet.`,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the instruments file",
	Long: `Open the instruments file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'vi'

If the instruments file doesn't exist, a starter one is created first.`,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths",
	Long:  `Display the paths of the configuration, instruments, and selections files.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("instruments_path: %s\n", cfg.InstrumentsPath)
	fmt.Printf("selections_path:  %s\n", cfg.SelectionsPath)
	if cfg.CatalogPath != "" {
		fmt.Printf("catalog_path:     %s\n", cfg.CatalogPath)
	} else {
		fmt.Printf("catalog_path:     (built-in)\n")
	}
	plain, wound := cfg.PlainTarget(), cfg.WoundTarget()
	fmt.Printf("targets.plain:    [%.1f, %.1f]\n", plain.Min, plain.Max)
	fmt.Printf("targets.wound:    [%.1f, %.1f]\n", wound.Min, wound.Max)
	fmt.Printf("logging.level:    %s\n", cfg.Logging.Level)
	return nil
}

// runConfigInit writes the default config and starter instruments files.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st := &store.Store{
		InstrumentsPath: cfg.InstrumentsPath,
		SelectionsPath:  cfg.SelectionsPath,
		DefaultPlain:    cfg.PlainTarget(),
		DefaultWound:    cfg.WoundTarget(),
	}
	if err := st.EnsureDefault(); err != nil {
		return err
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	printInfo("config:      %s", filepath.Join(configDir, "config.yaml"))
	printInfo("instruments: %s", cfg.InstrumentsPath)
	return nil
}

// runConfigEdit opens the instruments file in the user's editor.
func runConfigEdit(cmd *cobra.Command, args []string) error {
	if err := runConfigInit(cmd, args); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	editCmd := exec.Command(editor, cfg.InstrumentsPath)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// runConfigPath displays the file paths in use.
func runConfigPath(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(configDir, "config.yaml"))
	fmt.Println(cfg.InstrumentsPath)
	fmt.Println(cfg.SelectionsPath)
	return nil
}

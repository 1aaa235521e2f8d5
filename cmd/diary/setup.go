// ABOUTME: Cobra command for interactive storage setup.
// ABOUTME: Launches a bubbletea TUI wizard to choose and validate the diary storage location.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose where the diary is stored",
	Long:  "Interactive wizard to pick a storage backend, location, and slot key.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(
		cfg.Storage.Backend,
		cfg.Storage.Path,
		cfg.Storage.Key,
	)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	backend, path, key := final.Result()
	cfg.Storage.Backend = backend
	cfg.Storage.Path = path
	cfg.Storage.Key = key

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}

// ABOUTME: Compose command that opens the interactive entry form.
// ABOUTME: Runs the bubbletea model and hands the finished entry to the store.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/tui"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Write an entry interactively",
	Long:  "Open a form that walks through title, date, and contents, then saves the entry.",
	RunE:  runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	model := tui.NewComposeModel(globalStore.Add, models.Today())
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("compose form failed: %w", err)
	}

	result, ok := final.(tui.ComposeModel)
	if !ok || !result.Saved() {
		fmt.Println("Cancelled.")
		return nil
	}
	entry, err := result.Entry()
	if err != nil {
		return err
	}
	fmt.Printf("Diary entry saved: %s (%s)\n", entry.Title, models.FormatDate(entry.Date))
	return nil
}

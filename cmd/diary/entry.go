// ABOUTME: CLI commands for diary entries.
// ABOUTME: Provides add, list, and show subcommands backed by the global store.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a diary entry",
	Long:  "Add an entry with a title, contents, and an optional date (default today).",
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	Long:  "List entries newest first. The leading number is the position used by show.",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <position>",
	Short: "Show a diary entry",
	Long:  "Show the full entry at a position from list (1 = most recent).",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// Flags
var (
	entryTitle    string
	entryContents string
	entryDate     string
	entryStar     bool
	listLimit     int
	listStarred   bool
	showCopy      bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)

	addCmd.Flags().StringVarP(&entryTitle, "title", "t", "", "Entry title")
	addCmd.Flags().StringVarP(&entryContents, "contents", "c", "", "Entry contents")
	addCmd.Flags().StringVarP(&entryDate, "date", "d", "", "Entry date as YYYY-MM-DD (default today)")
	addCmd.Flags().BoolVarP(&entryStar, "star", "s", false, "Mark the entry as starred")

	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of entries to show (0 for all)")
	listCmd.Flags().BoolVar(&listStarred, "starred", false, "Only show starred entries")

	showCmd.Flags().BoolVar(&showCopy, "copy", false, "Copy the entry contents to the clipboard")
}

func runAdd(cmd *cobra.Command, args []string) error {
	date := models.Today()
	if entryDate != "" {
		parsed, err := models.ParseDate(entryDate)
		if err != nil {
			return err
		}
		date = parsed
	}

	entry := models.NewDiaryEntry(strings.TrimSpace(entryTitle), entryContents, date)
	entry.IsStar = entryStar
	if err := models.Validate(entry); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}

	if err := globalStore.Add(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Printf("Diary entry saved: %s (%s)\n", entry.Title, models.FormatDate(entry.Date))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	entries := globalStore.Entries()
	if len(entries) == 0 {
		fmt.Println("No diary entries yet.")
		return nil
	}

	shown := 0
	for i, entry := range entries {
		if listLimit > 0 && shown >= listLimit {
			break
		}
		if listStarred && !entry.IsStar {
			continue
		}
		shown++
		star := " "
		if entry.IsStar {
			star = "★"
		}
		fmt.Printf("%3d. %s %s %s\n", i+1, models.FormatDate(entry.Date), star, entry.Title)
	}

	if shown == 0 {
		fmt.Println("No starred entries.")
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[0], err)
	}

	entry, ok := globalStore.At(pos - 1)
	if !ok {
		return fmt.Errorf("position %d out of range (1-%d)", pos, globalStore.Len())
	}

	title := entry.Title
	if entry.IsStar {
		title += " ★"
	}
	fmt.Printf("%s\n", title)
	fmt.Printf("Date: %s\n\n", models.FormatDate(entry.Date))
	fmt.Println(entry.Contents)

	if showCopy {
		if err := clipboard.WriteAll(entry.Contents); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Copied contents to clipboard.")
	}
	return nil
}

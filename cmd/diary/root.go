// ABOUTME: Root Cobra command and global state for the diary CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, logging, and store initialization.
package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/logger"
	"github.com/2389-research/diary/internal/storage"
)

var globalConfig *config.Config
var globalLogger zerolog.Logger
var globalKV storage.KVStore
var globalStore *diary.Store
var ephemeral bool

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "A small personal diary for humans and agents",
	Long: `
██████╗ ██╗ █████╗ ██████╗ ██╗   ██╗
██╔══██╗██║██╔══██╗██╔══██╗╚██╗ ██╔╝
██║  ██║██║███████║██████╔╝ ╚████╔╝
██║  ██║██║██╔══██║██╔══██╗  ╚██╔╝
██████╔╝██║██║  ██║██║  ██║   ██║
╚═════╝ ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝

Dated, titled entries kept newest first.
Stored locally as a single YAML list or in SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStore(cmd) {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg
		globalLogger = logger.New(cmd.ErrOrStderr(), cfg.GetLogLevel())

		path, err := cfg.GetStoragePath()
		if err != nil {
			return fmt.Errorf("failed to resolve storage path: %w", err)
		}
		backend := cfg.GetBackend()
		if ephemeral {
			backend = storage.BackendMemory
		}
		kv, err := storage.Open(backend, path)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		globalKV = kv

		store, err := diary.NewStore(kv, cfg.GetKey(), diary.WithLogger(globalLogger))
		if err != nil {
			return err
		}
		report, err := store.Load()
		if err != nil {
			return err
		}
		globalStore = store

		if report.Unreadable != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: stored diary could not be read and was left untouched: %v\n", report.Unreadable)
		}
		if report.Skipped > 0 {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d malformed entries\n", report.Skipped)
		}
		globalLogger.Debug().
			Str("backend", backend).
			Str("path", path).
			Int("entries", len(report.Entries)).
			Int("version", report.Version).
			Msg("diary loaded")

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalKV != nil {
			_ = globalKV.Close()
			globalKV = nil
		}
		globalStore = nil
		return nil
	},
}

// storeFreeCommands never touch the diary, including cobra's shell completion
// commands which run on every tab press.
var storeFreeCommands = map[string]bool{
	"help":                          true,
	"version":                       true,
	"setup":                         true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// needsStore reports whether cmd or any of its parents requires the store.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if storeFreeCommands[c.Name()] {
			return false
		}
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the diary in memory for this run only")
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaloyanYosifov/holy-kern-base/internal/output"
	"github.com/KaloyanYosifov/holy-kern-base/internal/plugin"
	"github.com/KaloyanYosifov/holy-kern-base/libhkb"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	debug      bool
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	rootCmd := &cobra.Command{
		Use:   "hkb",
		Short: "Resolve reminder phrases into reminder times",
		Long: `hkb resolves structured reminder sentences ("in 5 minutes", "at 18:30 on 3rd of may",
"next friday") into either a relative offset or an absolute time.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.debug {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: ~/.hkb/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log resolution details to stderr")

	rootCmd.AddCommand(a.newResolveCmd())
	rootCmd.AddCommand(a.newMatchCmd())
	rootCmd.AddCommand(a.newBatchCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newPluginsCmd())

	return rootCmd
}

func (a *app) configManager() (*libhkb.ConfigManager, error) {
	if a.configPath != "" {
		return libhkb.NewConfigManagerAt(a.configPath), nil
	}
	return libhkb.NewConfigManager()
}

func (a *app) loadConfig() (*libhkb.Config, error) {
	cm, err := a.configManager()
	if err != nil {
		return nil, err
	}
	config, err := cm.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config, nil
}

func newPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List available plugins",
		Long:  `List all available hkb-* plugins in PATH`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugins, err := plugin.ListPlugins()
			if err != nil {
				return fmt.Errorf("failed to list plugins: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(plugins) == 0 {
				fmt.Fprintln(out, "No plugins found in PATH")
				return nil
			}

			fmt.Fprintln(out, "Available plugins:")
			for _, p := range plugins {
				fmt.Fprintf(out, "  - %s\n", p)
			}

			return nil
		},
	}
}

// exitCode maps an error to the process exit status: 2 for defects, 1 otherwise.
func exitCode(err error) int {
	switch {
	case libhkb.IsUserError(err):
		return 1
	case errors.Is(err, libhkb.ErrInternalInvariantViolation):
		return 2
	default:
		return 1
	}
}

func main() {
	rootCmd := newRootCmd()

	// Check if we should try to execute a plugin
	if len(os.Args) > 1 {
		cmdName := os.Args[1]
		isKnownCmd := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == cmdName || cmd.HasAlias(cmdName) {
				isKnownCmd = true
				break
			}
		}

		// If not a known command and not a flag, try plugin
		if !isKnownCmd && cmdName != "help" && !strings.HasPrefix(cmdName, "-") {
			if err := plugin.ExecutePlugin(cmdName, os.Args[2:]); err == nil {
				return
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		if exitCode(err) == 2 {
			slog.Error("internal invariant violation", "error", fmt.Sprintf("%+v", err))
		}
		output.RenderError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

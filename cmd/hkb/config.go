package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaloyanYosifov/holy-kern-base/internal/output"
)

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage hkb configuration settings`,
	}
	configCmd.AddCommand(a.newConfigSetCmd())
	configCmd.AddCommand(a.newConfigShowCmd())
	return configCmd
}

func (a *app) newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set configuration values",
		Long:  `Set configuration values like the timezone and the at/year policies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := a.configManager()
			if err != nil {
				return err
			}
			config, err := cm.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("timezone") {
				config.Timezone, _ = flags.GetString("timezone")
			}
			if flags.Changed("at-rollover") {
				config.AtRollover, _ = flags.GetString("at-rollover")
			}
			if flags.Changed("year-policy") {
				config.YearPolicy, _ = flags.GetString("year-policy")
			}
			if flags.Changed("matcher") {
				config.Matcher, _ = flags.GetString("matcher")
			}
			if flags.Changed("batch-concurrency") {
				config.BatchConcurrency, _ = flags.GetInt("batch-concurrency")
			}

			if err := cm.Save(config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			resp := output.FormatActionResponse(true, "Configuration saved to "+cm.Path())
			if jsonOutput, _ := flags.GetBool("json"); jsonOutput {
				return output.WriteJSON(cmd.OutOrStdout(), resp)
			}
			return output.RenderAction(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().String("timezone", "", "IANA timezone, or Local")
	cmd.Flags().String("at-rollover", "", "Past 'at HH:MM' times: next-day or same-day")
	cmd.Flags().String("year-policy", "", "Year of 'on' dates: nearest-future or current")
	cmd.Flags().String("matcher", "", "Matcher plugin name")
	cmd.Flags().Int("batch-concurrency", 0, "Maximum sentences resolved at once by batch")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func (a *app) newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  `Display current configuration settings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := a.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return output.WriteJSON(out, config)
			}

			fmt.Fprintf(out, "Timezone: %s\n", config.Timezone)
			fmt.Fprintf(out, "At rollover: %s\n", config.AtRollover)
			fmt.Fprintf(out, "Year policy: %s\n", config.YearPolicy)
			fmt.Fprintf(out, "Matcher: %s\n", config.Matcher)
			fmt.Fprintf(out, "Batch concurrency: %d\n", config.BatchConcurrency)

			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaloyanYosifov/holy-kern-base/internal/dateparse"
	"github.com/KaloyanYosifov/holy-kern-base/internal/output"
	"github.com/KaloyanYosifov/holy-kern-base/internal/plugin"
	"github.com/KaloyanYosifov/holy-kern-base/libhkb"
)

// resolveFlags are the per-invocation overrides of the resolution settings.
type resolveFlags struct {
	now        string
	timezone   string
	atRollover string
	yearPolicy string
	json       bool
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.now, "now", "", "Reference time (default: current time, accepts natural language)")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", "IANA timezone for the reference time (overrides config)")
	cmd.Flags().StringVar(&f.atRollover, "at-rollover", "", "Past 'at HH:MM' times: next-day or same-day (overrides config)")
	cmd.Flags().StringVar(&f.yearPolicy, "year-policy", "", "Year of 'on' dates: nearest-future or current (overrides config)")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output as JSON")
}

// resolver builds a resolver pinned to a single reference time, which it returns
// so that relative results can be rendered against the same instant.
func (a *app) resolver(config *libhkb.Config, f *resolveFlags) (*libhkb.Resolver, time.Time, error) {
	if f.timezone != "" {
		config.Timezone = f.timezone
	}
	if f.atRollover != "" {
		config.AtRollover = f.atRollover
	}
	if f.yearPolicy != "" {
		config.YearPolicy = f.yearPolicy
	}

	rc, err := config.ResolverConfig()
	if err != nil {
		return nil, time.Time{}, err
	}

	now := rc.Clock.Now()
	if f.now != "" {
		t, err := dateparse.Parse(f.now, now)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid --now: %w", err)
		}
		now = t.In(now.Location())
	}

	rc.Clock = libhkb.FixedClock(now)
	rc.Logger = a.logger
	return libhkb.NewResolver(rc), now, nil
}

func writeSpec(w io.Writer, spec libhkb.TimeSpec, now time.Time, asJSON bool) error {
	if asJSON {
		return output.WriteJSON(w, output.FormatSpecResponse(spec, now))
	}
	return output.RenderSpec(w, spec, now)
}

func (a *app) newResolveCmd() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [sentence-json]",
		Short: "Resolve a sentence into a reminder time",
		Long: `Resolve one sentence, given as JSON on the command line or on stdin, e.g.
  hkb resolve '{"shape":"at","hour":"18","minute":"30","on":{"day":"3rd","month":"may"}}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 1 {
				data = []byte(args[0])
			} else {
				var err error
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read sentence: %w", err)
				}
			}

			sentence, err := libhkb.DecodeSentence(data)
			if err != nil {
				return err
			}

			config, err := a.loadConfig()
			if err != nil {
				return err
			}
			r, now, err := a.resolver(config, &flags)
			if err != nil {
				return err
			}

			spec, err := r.Resolve(sentence)
			if err != nil {
				return err
			}
			return writeSpec(cmd.OutOrStdout(), spec, now, flags.json)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) newMatchCmd() *cobra.Command {
	var (
		flags   resolveFlags
		matcher string
	)

	cmd := &cobra.Command{
		Use:   "match <phrase...>",
		Short: "Recognize and resolve a free-text reminder phrase",
		Long: `Pass the phrase to the matcher plugin (hkb-<matcher> in PATH), which prints the
recognized sentence as JSON, then resolve it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := a.loadConfig()
			if err != nil {
				return err
			}
			if matcher == "" {
				matcher = config.Matcher
			}

			phrase := strings.ToLower(strings.Join(args, " "))
			data, err := plugin.RunMatcher(cmd.Context(), matcher, phrase)
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return fmt.Errorf("no reminder time recognized in %q", phrase)
			}
			a.logger.Debug("phrase matched", "matcher", matcher, "phrase", phrase, "sentence", string(data))

			sentence, err := libhkb.DecodeSentence(data)
			if err != nil {
				return err
			}

			r, now, err := a.resolver(config, &flags)
			if err != nil {
				return err
			}
			spec, err := r.Resolve(sentence)
			if err != nil {
				return err
			}
			return writeSpec(cmd.OutOrStdout(), spec, now, flags.json)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&matcher, "matcher", "", "Matcher plugin name (overrides config)")
	return cmd
}

func (a *app) newBatchCmd() *cobra.Command {
	var (
		flags       resolveFlags
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Resolve one sentence per line",
		Long: `Resolve a file (or stdin) of JSON sentences, one per line. Blank lines are skipped.
Sentences that fail to resolve are reported without stopping the batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch: %w", err)
				}
				defer f.Close()
				in = f
			}

			sentences, err := readSentences(in)
			if err != nil {
				return err
			}

			config, err := a.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = config.BatchConcurrency
			}

			r, now, err := a.resolver(config, &flags)
			if err != nil {
				return err
			}

			results, err := libhkb.ResolveAll(cmd.Context(), r, sentences, concurrency)
			if err != nil {
				return err
			}

			if flags.json {
				return output.WriteJSON(cmd.OutOrStdout(), output.FormatListResponse(results, now))
			}
			return output.RenderBatch(cmd.OutOrStdout(), results, now)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum sentences resolved at once (default: from config)")
	return cmd
}

func readSentences(r io.Reader) ([]libhkb.Sentence, error) {
	var sentences []libhkb.Sentence

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		s, err := libhkb.DecodeSentence(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sentences = append(sentences, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}

	return sentences, nil
}

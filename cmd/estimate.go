package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/estimate"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

func newEstimateCmd() *cobra.Command {
	var (
		runs        int
		voiceIDs    string
		noReference bool
		catalogPath string
		costRate    float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate benchmark cost and statistical confidence",
		Long: `Project the synthesis volume, API cost and confidence-interval width of a
benchmark configuration without making any API calls. No credentials needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs <= 0 {
				runs = runsFromEnv()
			}
			if voiceIDs == "" {
				voiceIDs = os.Getenv("EMOTION_BENCH_VOICES")
			}
			if !noReference {
				noReference = os.Getenv("INCLUDE_NO_REFERENCE") != ""
			}

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load emotion catalog: %w", err)
			}

			roster := voices.Roster(voices.RosterConfig{
				NoReference: noReference,
				IDs:         voices.ParseIDs(voiceIDs),
			})

			rep := estimate.Estimate(cat, roster, runs,
				estimate.WithCostPerMillionBytes(costRate))
			fmt.Print(rep.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 0, "Repetitions per phrase (default NUM_RUNS or 1)")
	cmd.Flags().StringVar(&voiceIDs, "voices", "", "Comma-separated reference voice IDs (or set EMOTION_BENCH_VOICES)")
	cmd.Flags().BoolVar(&noReference, "no-reference", false, "Estimate for the provider default voice only (or set INCLUDE_NO_REFERENCE)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "External emotion catalog YAML (default embedded catalog)")
	cmd.Flags().Float64Var(&costRate, "cost-per-million-bytes", estimate.DefaultCostPerMillionBytes, "TTS price in USD per million input bytes")

	return cmd
}

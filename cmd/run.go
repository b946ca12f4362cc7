package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/emotion-bench/internal/bench"
	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/estimate"
	"github.com/giantswarm/emotion-bench/internal/results"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

func newRunCmd() *cobra.Command {
	var (
		provider    string
		endpoint    string
		apiKey      string
		model       string
		language    string
		voiceIDs    string
		noReference bool
		runs        int
		workers     int
		outputDir   string
		catalogPath string
		emotion     string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the emotion tag leakage benchmark",
		Long: `Synthesize every catalog phrase with its emotion tag prepended, transcribe the
audio back to text, and record whether the tag leaked into the transcription.

Audio artifacts, a JSON results file and a Markdown summary are written to the
output directory, which is cleared before the run starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			// Environment fallbacks for settings not given as flags.
			if runs <= 0 {
				runs = runsFromEnv()
			}
			if voiceIDs == "" {
				voiceIDs = os.Getenv("EMOTION_BENCH_VOICES")
			}
			if !noReference {
				noReference = os.Getenv("INCLUDE_NO_REFERENCE") != ""
			}

			// Missing credentials abort here, before any case runs.
			client, err := newSpeechClient(provider, endpoint, apiKey, model)
			if err != nil {
				return err
			}

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load emotion catalog: %w", err)
			}

			roster := voices.Roster(voices.RosterConfig{
				NoReference: noReference,
				IDs:         voices.ParseIDs(voiceIDs),
			})

			fmt.Printf("Emotion catalog: %d emotions (%d phrases)\n", cat.Len(), len(cat.All()))
			fmt.Printf("Voices to test: %d\n", len(roster))
			for i, ref := range roster {
				fmt.Printf("  %d. %s\n", i+1, ref.Label())
			}
			fmt.Printf("Runs per phrase: %d\n", runs)
			if emotion != "" {
				fmt.Printf("Emotion filter: %s\n", emotion)
			} else {
				rep := estimate.Estimate(cat, roster, runs)
				fmt.Printf("Total TTS calls: %d\n", rep.TotalCalls)
				fmt.Printf("Estimated cost: $%.4f\n", rep.EstimatedCost)
			}
			fmt.Println()

			r := bench.NewRunner(client, outputDir, bench.Config{
				Runs:     runs,
				Workers:  workers,
				Emotion:  emotion,
				Language: language,
			})
			r.SetProgressFunc(func(completed, total int, _ results.BenchmarkResult) {
				fmt.Printf("\r  Processing case %d/%d...", completed, total)
			})

			col, info, runErr := r.Run(ctx, cat, roster)
			if runErr != nil && info == nil {
				return runErr
			}

			resultsFile := filepath.Join(outputDir, "benchmark_results.json")
			summaryFile := filepath.Join(outputDir, "summary.md")
			if err := results.WriteJSON(col, info, resultsFile); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			if err := results.WriteMarkdown(col, summaryFile); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}

			fmt.Printf("\n\nBenchmark completed.\n")
			fmt.Printf("Run ID: %s\n", info.ID)
			fmt.Printf("Duration: %s\n", info.Duration)
			if s := col.Summary(); s != nil {
				fmt.Printf("Results: %d total, %d pass, %d fail, %d error\n",
					s.TotalTests, s.PassCount, s.FailCount, s.ErrorCount)
				fmt.Printf("Success rate: %.2f%%\n", s.SuccessRate)
			}
			fmt.Printf("Results file: %s\n", resultsFile)
			fmt.Printf("Summary file: %s\n", summaryFile)

			// A completed run always yields a report, even when every case
			// failed; only an interrupted or misconfigured run is an error.
			if runErr != nil {
				return fmt.Errorf("benchmark interrupted: %w", runErr)
			}

			slog.Info("benchmark run complete", "run_id", info.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", providerFishAudio, "Speech provider: fishaudio or openai")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Speech API endpoint URL (overrides the provider default)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (or set FISH_AUDIO_API_KEY / OPENAI_API_KEY)")
	cmd.Flags().StringVar(&model, "model", "", "TTS model (provider default when empty)")
	cmd.Flags().StringVar(&language, "language", "", "Transcription language hint (e.g. en)")
	cmd.Flags().StringVar(&voiceIDs, "voices", "", "Comma-separated reference voice IDs (or set EMOTION_BENCH_VOICES)")
	cmd.Flags().BoolVar(&noReference, "no-reference", false, "Test only the provider default voice (or set INCLUDE_NO_REFERENCE)")
	cmd.Flags().IntVar(&runs, "runs", 0, "Repetitions per phrase (default NUM_RUNS or 1)")
	cmd.Flags().IntVar(&workers, "workers", bench.DefaultWorkers, "Concurrent benchmark workers")
	cmd.Flags().StringVar(&outputDir, "output-dir", "output", "Directory for audio artifacts and results (cleared on start)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "External emotion catalog YAML (default embedded catalog)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "Restrict the run to a single emotion tag")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall timeout for the benchmark (e.g. 30m). 0 means no timeout")

	return cmd
}

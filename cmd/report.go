package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/giantswarm/emotion-bench/internal/results"
)

func newReportCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rebuild the Markdown summary from a results file",
		Long: `Recompute the summary of an existing benchmark results file and write it as a
Markdown report. Useful after copying results between machines or when the
summary file was lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(input); os.IsNotExist(err) {
				return fmt.Errorf("results file not found: %s", input)
			}

			col, info, err := results.ReadJSON(input)
			if err != nil {
				return fmt.Errorf("failed to read results: %w", err)
			}

			if col.Len() == 0 {
				fmt.Println("No results to report.")
				return nil
			}

			if output == "" {
				output = filepath.Join(filepath.Dir(input), "summary.md")
			}
			if err := results.WriteMarkdown(col, output); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}

			if info != nil {
				fmt.Printf("Run ID: %s\n", info.ID)
			}
			if s := col.Summary(); s != nil {
				fmt.Printf("Results: %d total, %d pass, %d fail, %d error\n",
					s.TotalTests, s.PassCount, s.FailCount, s.ErrorCount)
				fmt.Printf("Success rate: %.2f%%\n", s.SuccessRate)
			}
			fmt.Printf("Summary written to: %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", filepath.Join("output", "benchmark_results.json"), "Benchmark results file to summarize")
	cmd.Flags().StringVar(&output, "output", "", "Markdown output path (default summary.md next to the input)")

	return cmd
}

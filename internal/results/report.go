package results

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// document is the on-disk shape of a benchmark results file.
type document struct {
	Run     *RunInfo          `json:"run,omitempty"`
	Results []BenchmarkResult `json:"results"`
	Summary any               `json:"summary"`
}

// WriteJSON writes the full result list plus summary to path, creating
// parent directories as needed. An existing file is overwritten. With
// zero results the file is still written, holding an empty result array
// and an empty summary mapping.
func WriteJSON(col *Collector, info *RunInfo, path string) error {
	doc := document{Run: info, Results: col.Results()}
	if s := col.Summary(); s != nil {
		doc.Summary = s
	} else {
		doc.Summary = struct{}{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}

// ReadJSON loads a results document previously written by WriteJSON.
// The stored summary is ignored; it is always recomputed from the
// result list.
func ReadJSON(path string) (*Collector, *RunInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var doc struct {
		Run     *RunInfo          `json:"run"`
		Results []BenchmarkResult `json:"results"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse results file: %w", err)
	}

	return &Collector{results: doc.Results}, doc.Run, nil
}

// WriteMarkdown renders the summary as a markdown report with GitHub
// pipe tables: header totals, the five best and worst emotions, and a
// per-emotion breakdown sorted by success rate. With zero results it is
// a no-op and writes nothing.
func WriteMarkdown(col *Collector, path string) error {
	if col.Len() == 0 {
		return nil
	}
	summary := col.Summary()

	var b strings.Builder
	b.WriteString("# Emotion Benchmark Summary\n\n")
	fmt.Fprintf(&b, "**Total Tests:** %d  \n", summary.TotalTests)
	fmt.Fprintf(&b, "**Pass:** %d | **Fail:** %d | **Error:** %d  \n",
		summary.PassCount, summary.FailCount, summary.ErrorCount)
	fmt.Fprintf(&b, "**Success Rate:** %.2f%%\n\n", summary.SuccessRate)

	b.WriteString("## Top 5 Best Performing Emotions\n\n")
	b.WriteString(rateTable(summary.BestEmotions))
	b.WriteString("\n")

	b.WriteString("## Top 5 Worst Performing Emotions\n\n")
	b.WriteString(rateTable(summary.WorstEmotions))
	b.WriteString("\n")

	b.WriteString("## Results by Emotion\n\n")
	b.WriteString(breakdownTable(col.results))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown summary: %w", err)
	}

	return nil
}

func rateTable(rates []EmotionRate) string {
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{r.Emotion, fmt.Sprintf("%.1f%%", r.SuccessRate)})
	}
	return markdownTable([]string{"Emotion", "Success Rate"}, rows)
}

// breakdownTable renders one row per emotion, sorted descending by
// success rate. Category and voice are taken from the first-seen result
// of each emotion; rows with equal rates keep alphabetical order.
func breakdownTable(list []BenchmarkResult) string {
	type group struct {
		category string
		voice    string
		pass     int
		fail     int
		errored  int
		total    int
	}
	groups := make(map[string]*group)
	for _, r := range list {
		g, ok := groups[r.Emotion]
		if !ok {
			g = &group{category: r.Category, voice: r.Voice}
			groups[r.Emotion] = g
		}
		switch r.Status {
		case StatusPass:
			g.pass++
		case StatusFail:
			g.fail++
		case StatusError:
			g.errored++
		}
		g.total++
	}

	type row struct {
		cells []string
		rate  float64
	}
	rows := make([]row, 0, len(groups))
	for _, tag := range slices.Sorted(maps.Keys(groups)) {
		g := groups[tag]
		rate := 0.0
		if g.total > 0 {
			rate = float64(g.pass) / float64(g.total) * 100
		}
		rows = append(rows, row{
			cells: []string{
				tag,
				g.category,
				g.voice,
				fmt.Sprintf("%.1f%%", rate),
				strconv.Itoa(g.pass),
				strconv.Itoa(g.fail),
				strconv.Itoa(g.errored),
				strconv.Itoa(g.total),
			},
			rate: rate,
		})
	}
	slices.SortStableFunc(rows, func(a, b row) int {
		return cmp.Compare(b.rate, a.rate)
	})

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells
	}
	return markdownTable(
		[]string{"Emotion", "Category", "Voice", "Success Rate", "Pass", "Fail", "Error", "Total"},
		cells,
	)
}

// markdownTable renders a GitHub pipe table with columns padded to the
// widest cell.
func markdownTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

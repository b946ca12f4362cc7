package bench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/detect"
	"github.com/giantswarm/emotion-bench/internal/results"
	"github.com/giantswarm/emotion-bench/internal/speech"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

// DefaultWorkers is the worker pool size used when the configuration
// does not say otherwise.
const DefaultWorkers = 4

// ProgressFunc is called after each completed case with the running
// completion count. It may be called concurrently from worker
// goroutines.
type ProgressFunc func(completed, total int, r results.BenchmarkResult)

// Config holds benchmark execution settings.
type Config struct {
	// Runs is how often each phrase is rendered per voice. Zero means one.
	Runs int
	// Workers is the worker pool size. Zero means DefaultWorkers.
	Workers int
	// Emotion restricts the run to a single catalog tag when set.
	Emotion string
	// Model overrides the synthesis model.
	Model string
	// Language is an optional transcription language hint.
	Language string
}

// Runner executes benchmark cases against a speech client.
type Runner struct {
	client    speech.Client
	outputDir string
	config    Config
	progress  ProgressFunc
}

// NewRunner creates a runner writing artifacts under outputDir.
func NewRunner(client speech.Client, outputDir string, config Config) *Runner {
	if config.Runs <= 0 {
		config.Runs = 1
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	return &Runner{client: client, outputDir: outputDir, config: config}
}

// SetProgressFunc sets the progress callback.
func (r *Runner) SetProgressFunc(fn ProgressFunc) {
	r.progress = fn
}

// Run executes the benchmark for the given catalog and voice roster.
// The output directory is destructively reset before the first case
// runs. Each worker records into its own collector; the collectors are
// merged once all workers are done, so no result state is shared during
// execution. On context cancellation the results recorded so far are
// returned together with the error.
func (r *Runner) Run(ctx context.Context, cat *catalog.Catalog, roster []voices.Reference) (*results.Collector, *results.RunInfo, error) {
	if len(roster) == 0 {
		return nil, nil, fmt.Errorf("no voices specified for benchmark run")
	}
	if r.config.Emotion != "" {
		if _, err := cat.Phrases(r.config.Emotion); err != nil {
			return nil, nil, err
		}
	}

	cases := Cases(cat, roster, r.config.Runs)
	if r.config.Emotion != "" {
		cases = filterByEmotion(cases, r.config.Emotion)
	}
	if len(cases) == 0 {
		return nil, nil, fmt.Errorf("catalog produced no test cases")
	}

	if err := r.resetOutputDir(); err != nil {
		return nil, nil, err
	}

	timestamp := time.Now()
	info := &results.RunInfo{
		ID:        fmt.Sprintf("benchmark_%s", timestamp.Format("20060102-150405")),
		Timestamp: timestamp,
		Cases:     len(cases),
		Workers:   r.config.Workers,
	}

	slog.Info("starting benchmark run",
		"id", info.ID,
		"cases", len(cases),
		"workers", r.config.Workers,
		"runs", r.config.Runs,
		"voices", len(roster),
	)

	caseCh := make(chan Case)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)

	// Dispatcher. Cancellation stops handing out new cases; cases
	// already picked up still finish and keep their results.
	g.Go(func() error {
		defer close(caseCh)
		for _, c := range cases {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case caseCh <- c:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	collectors := make([]*results.Collector, r.config.Workers)
	for i := 0; i < r.config.Workers; i++ {
		col := results.NewCollector()
		collectors[i] = col
		g.Go(func() error {
			for c := range caseCh {
				res := r.execute(gctx, c)
				col.Add(res)
				if r.progress != nil {
					r.progress(int(completed.Add(1)), len(cases), res)
				}
			}
			return nil
		})
	}

	err := g.Wait()

	merged := results.NewCollector()
	for _, col := range collectors {
		merged.Merge(col)
	}
	info.Duration = time.Since(timestamp)

	if err != nil {
		slog.Warn("benchmark run interrupted",
			"completed", merged.Len(),
			"cases", len(cases),
			"error", err,
		)
		return merged, info, err
	}

	slog.Info("benchmark run complete",
		"id", info.ID,
		"results", merged.Len(),
		"duration", info.Duration,
	)
	return merged, info, nil
}

// execute runs one case through the synthesize, persist, transcribe and
// detect pipeline. Failures never propagate: any adapter or file error
// classifies this one case as ERROR and the run continues.
func (r *Runner) execute(ctx context.Context, c Case) results.BenchmarkResult {
	slog.Debug("executing case",
		"emotion", c.Emotion,
		"voice", c.Voice.Label(),
		"phrase_idx", c.PhraseIdx,
		"run", c.Run,
	)

	res := results.BenchmarkResult{
		Emotion:   c.Emotion,
		Voice:     c.Voice.Label(),
		PhraseIdx: c.PhraseIdx,
		Phrase:    c.Phrase,
		RunNumber: c.Run,
		Category:  c.Category,
		Status:    results.StatusPass,
	}

	text := fmt.Sprintf("(%s) %s", c.Emotion, c.Phrase)

	audio, err := r.client.Synthesize(ctx, speech.SynthesizeRequest{
		Text:        text,
		ReferenceID: c.Voice.ID,
		Model:       r.config.Model,
	})
	if err != nil {
		res.Status = results.StatusError
		res.Error = results.StringPtr(err.Error())
		return res
	}

	if err := r.saveAudio(c, audio); err != nil {
		res.Status = results.StatusError
		res.Error = results.StringPtr(err.Error())
		return res
	}

	transcription, err := r.client.Transcribe(ctx, speech.TranscribeRequest{
		Audio:    audio,
		Language: r.config.Language,
	})
	if err != nil {
		res.Status = results.StatusError
		res.Error = results.StringPtr(err.Error())
		return res
	}
	res.Transcription = results.StringPtr(transcription)

	if detect.Leaked(transcription, c.Emotion) {
		res.Status = results.StatusFail
		res.Error = results.StringPtr(fmt.Sprintf("Tag leaked: '%s'", transcription))
	}

	return res
}

// resetOutputDir removes artifacts from previous sessions and recreates
// the audio directory.
func (r *Runner) resetOutputDir() error {
	if err := os.RemoveAll(r.outputDir); err != nil {
		return fmt.Errorf("failed to clear output directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(r.outputDir, "audio"), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// audioFilename names a case's artifact. The run suffix appears only
// when each phrase is executed more than once.
func (r *Runner) audioFilename(c Case) string {
	if r.config.Runs > 1 {
		return fmt.Sprintf("%s_%d_run%d.mp3", c.Voice.Label(), c.PhraseIdx, c.Run)
	}
	return fmt.Sprintf("%s_%d.mp3", c.Voice.Label(), c.PhraseIdx)
}

func (r *Runner) saveAudio(c Case, audio []byte) error {
	dir := filepath.Join(r.outputDir, "audio", c.Emotion)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, r.audioFilename(c)), audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

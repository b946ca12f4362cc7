package results

import (
	"cmp"
	"math"
	"slices"
)

// Collector accumulates benchmark results in insertion order. It is not
// safe for concurrent use: the runner gives each worker its own
// Collector and merges them after the workers are done.
type Collector struct {
	results []BenchmarkResult
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends one result.
func (c *Collector) Add(r BenchmarkResult) {
	c.results = append(c.results, r)
}

// Merge appends all results from another collector.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.results = append(c.results, other.results...)
}

// Len reports the number of collected results.
func (c *Collector) Len() int {
	return len(c.results)
}

// Results returns a copy of the collected results.
func (c *Collector) Results() []BenchmarkResult {
	out := make([]BenchmarkResult, len(c.results))
	copy(out, c.results)
	return out
}

// EmotionRate pairs an emotion with its success rate in percent.
type EmotionRate struct {
	Emotion     string  `json:"emotion"`
	SuccessRate float64 `json:"success_rate"`
}

// Summary holds aggregate statistics over a result set.
type Summary struct {
	TotalTests    int           `json:"total_tests"`
	PassCount     int           `json:"pass_count"`
	FailCount     int           `json:"fail_count"`
	ErrorCount    int           `json:"error_count"`
	SuccessRate   float64       `json:"success_rate"`
	BestEmotions  []EmotionRate `json:"best_emotions"`
	WorstEmotions []EmotionRate `json:"worst_emotions"`
}

// Summary computes aggregate statistics fresh from the current result
// list. The per-emotion rankings use a stable sort, so emotions with
// equal rates keep their first-seen order. Returns nil when the
// collector is empty.
func (c *Collector) Summary() *Summary {
	if len(c.results) == 0 {
		return nil
	}

	type tally struct {
		pass, fail, errored int
	}
	var order []string
	byEmotion := make(map[string]*tally)

	s := &Summary{TotalTests: len(c.results)}
	for _, r := range c.results {
		t, ok := byEmotion[r.Emotion]
		if !ok {
			t = &tally{}
			byEmotion[r.Emotion] = t
			order = append(order, r.Emotion)
		}
		switch r.Status {
		case StatusPass:
			s.PassCount++
			t.pass++
		case StatusFail:
			s.FailCount++
			t.fail++
		case StatusError:
			s.ErrorCount++
			t.errored++
		}
	}

	s.SuccessRate = round2(float64(s.PassCount) / float64(s.TotalTests) * 100)

	// Rank on raw rates; round only for presentation.
	rates := make([]EmotionRate, 0, len(order))
	for _, tag := range order {
		t := byEmotion[tag]
		total := t.pass + t.fail + t.errored
		rate := 0.0
		if total > 0 {
			rate = float64(t.pass) / float64(total) * 100
		}
		rates = append(rates, EmotionRate{Emotion: tag, SuccessRate: rate})
	}

	best := slices.Clone(rates)
	slices.SortStableFunc(best, func(a, b EmotionRate) int {
		return cmp.Compare(b.SuccessRate, a.SuccessRate)
	})
	worst := slices.Clone(rates)
	slices.SortStableFunc(worst, func(a, b EmotionRate) int {
		return cmp.Compare(a.SuccessRate, b.SuccessRate)
	})

	s.BestEmotions = roundRates(top(best, 5))
	s.WorstEmotions = roundRates(top(worst, 5))

	return s
}

func top(rates []EmotionRate, n int) []EmotionRate {
	if len(rates) > n {
		rates = rates[:n]
	}
	return rates
}

func roundRates(rates []EmotionRate) []EmotionRate {
	for i := range rates {
		rates[i].SuccessRate = round2(rates[i].SuccessRate)
	}
	return rates
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

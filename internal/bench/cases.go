// Package bench orchestrates benchmark execution: it expands the
// catalog into test cases, drives the speech adapters through a worker
// pool, persists audio artifacts and collects per-case results.
package bench

import (
	"github.com/giantswarm/emotion-bench/internal/catalog"
	"github.com/giantswarm/emotion-bench/internal/voices"
)

// Case is one unit of benchmark work: a single phrase rendered with a
// single voice for a single run.
type Case struct {
	Emotion   string
	Phrase    string
	PhraseIdx int
	Category  string
	Voice     voices.Reference
	Run       int
}

// Cases expands the catalog into the cartesian product of voices,
// phrases and run numbers. Run numbers are 1-based. A run count below
// one is treated as one.
func Cases(cat *catalog.Catalog, roster []voices.Reference, runs int) []Case {
	if runs < 1 {
		runs = 1
	}

	items := cat.All()
	cases := make([]Case, 0, len(items)*len(roster)*runs)
	for _, ref := range roster {
		for _, item := range items {
			for run := 1; run <= runs; run++ {
				cases = append(cases, Case{
					Emotion:   item.Tag,
					Phrase:    item.Phrase,
					PhraseIdx: item.PhraseIdx,
					Category:  item.Category,
					Voice:     ref,
					Run:       run,
				})
			}
		}
	}
	return cases
}

func filterByEmotion(cases []Case, tag string) []Case {
	filtered := make([]Case, 0, len(cases))
	for _, c := range cases {
		if c.Emotion == tag {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

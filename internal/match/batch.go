package match

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// defaultBatchConcurrency bounds how many applications score at once during
// a batch rescore.
const defaultBatchConcurrency = 8

// BatchItem pairs an application identifier with its candidate profile.
type BatchItem struct {
	ID        string
	Candidate CandidateProfile
}

// BatchResult holds one scored application.
type BatchResult struct {
	ID    string
	Score int
}

// ScoreBatch scores every item against a single job-profile snapshot.
// Items are independent, so they run concurrently; results come back in
// input order. The only invariant is that all scores reflect the same job
// snapshot, which holds because the profile is passed by value.
func (s *Scorer) ScoreBatch(ctx context.Context, job JobProfile, items []BatchItem) ([]BatchResult, error) {
	results := make([]BatchResult, len(items))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(defaultBatchConcurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = BatchResult{ID: item.ID, Score: s.Score(job, item.Candidate)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

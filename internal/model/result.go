package model

import "time"

// Failure pairs a failed URL with its cause, in the order the failure was
// recorded by the collector
type Failure struct {
	URL    string
	Reason string
}

// BatchResult aggregates the outcomes of one batch run. It is written only
// by the runner's single collector goroutine and is read-only afterward.
type BatchResult struct {
	Success   int
	Failed    int
	Cancelled int

	// Failures lists failed items in completion order; its URLs are what
	// gets persisted to the retry file
	Failures []Failure

	// Interrupted marks a run where cancellation stopped submission, so the
	// counts cover only the items that reached a worker
	Interrupted bool

	Started  time.Time
	Finished time.Time
}

// Add folds one collected item result into the aggregate. Unknown outcomes
// count as failures so a faulting worker can never vanish from the totals.
func (r *BatchResult) Add(res ItemResult) {
	switch res.Outcome {
	case OutcomeSuccess:
		r.Success++
	case OutcomeCancelled:
		r.Cancelled++
	default:
		r.Failed++
		r.Failures = append(r.Failures, Failure{URL: res.Item.URL, Reason: res.Reason})
	}
}

// Total returns the number of collected outcomes
func (r *BatchResult) Total() int {
	return r.Success + r.Failed + r.Cancelled
}

// FailedURLs returns the failed URLs in recorded order
func (r *BatchResult) FailedURLs() []string {
	urls := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		urls = append(urls, f.URL)
	}
	return urls
}

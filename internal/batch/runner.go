package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ytget/ytbatch/internal/config"
	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/model"
	"github.com/ytget/ytbatch/internal/platform"
)

// Runner drives one batch of URLs through a bounded worker pool
type Runner struct {
	fetcher media.Fetcher
	job     config.Job
	sink    *Sink
}

// NewRunner creates a runner for one batch
func NewRunner(fetcher media.Fetcher, job config.Job, sink *Sink) *Runner {
	return &Runner{
		fetcher: fetcher,
		job:     job,
		sink:    sink,
	}
}

// Run processes the URL list and returns the folded batch result. Blank
// lines and # comments are dropped before submission and never produce
// outcomes. The error return covers batch-fatal conditions only; per-item
// failures are counted in the result. Run always delivers the sink's
// terminal event before returning.
func (r *Runner) Run(urls []string, token *Token) (*model.BatchResult, error) {
	if err := r.job.Validate(); err != nil {
		r.sink.Done("Batch failed to start")
		return nil, fmt.Errorf("invalid job configuration: %w", err)
	}
	if err := platform.CreateDirectoryIfNotExists(r.job.OutputDir); err != nil {
		r.sink.Done("Batch failed to start")
		return nil, fmt.Errorf("failed to create output directory %s: %w", r.job.OutputDir, err)
	}

	valid := platform.FilterURLs(urls)
	result := &model.BatchResult{Started: time.Now()}

	if len(valid) > 0 {
		r.sink.Logf("Starting batch of %d URLs with %d workers", len(valid), r.job.MaxWorkers)
		r.runPool(valid, token, result)
	}

	result.Interrupted = token.Signaled()
	result.Finished = time.Now()
	r.sink.Done(finalStatus(result))
	return result, nil
}

// runPool drives the worker pool over the valid URLs and folds outcomes
// into result in completion order
func (r *Runner) runPool(valid []string, token *Token, result *model.BatchResult) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mirror the token into the context so blocked fetches abort instead
	// of running to completion after a cancel
	go func() {
		select {
		case <-token.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	processor := NewProcessor(r.fetcher, r.job, r.sink, token)

	workers := min(r.job.MaxWorkers, len(valid))
	jobs := make(chan model.Item)
	results := make(chan model.ItemResult, len(valid))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- processSafe(ctx, processor, item)
			}
		}()
	}

	// Release the collector once the last worker drains out
	go func() {
		wg.Wait()
		close(results)
	}()

	submitted := 0
submission:
	for _, url := range valid {
		if token.Signaled() {
			break
		}
		select {
		case <-token.Done():
			break submission
		case jobs <- model.NewItem(url):
			submitted++
		}
	}
	close(jobs)

	if submitted < len(valid) {
		r.sink.Logf("Cancellation requested, %d of %d URLs submitted", submitted, len(valid))
	}

	for res := range results {
		result.Add(res)
		r.sink.ItemDone(res.Item.URL, res.Outcome)
	}
}

// processSafe isolates a worker panic into a Failed result so sibling
// workers keep the batch going
func processSafe(ctx context.Context, processor *Processor, item model.Item) (res model.ItemResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Worker panic while processing %s: %v", item.URL, rec)
			res = model.ItemResult{
				Item:    item,
				Outcome: model.OutcomeFailed,
				Reason:  fmt.Sprintf("worker panic: %v", rec),
			}
		}
	}()
	return processor.Process(ctx, item)
}

// finalStatus builds the terminal status line for the sink
func finalStatus(result *model.BatchResult) string {
	if result.Interrupted {
		return fmt.Sprintf("Cancelled: %d done, %d failed, %d cancelled",
			result.Success, result.Failed, result.Cancelled)
	}
	return fmt.Sprintf("Completed: %d done, %d failed", result.Success, result.Failed)
}

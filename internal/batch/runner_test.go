package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/model"
)

func TestRunnerNaturalCompletion(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "out")
	fetcher := &fakeFetcher{
		onResolve: func(url string) (*media.Info, error) {
			if url == "https://example/b" {
				return nil, errors.New("geo blocked")
			}
			return &media.Info{Title: "Video " + url}, nil
		},
	}
	runner := NewRunner(fetcher, testJob(outputDir), nil)

	urls := []string{"https://example/a", "https://example/b", "https://example/c"}
	result, err := runner.Run(urls, NewToken())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Success != 2 || result.Failed != 1 || result.Cancelled != 0 {
		t.Errorf("Expected 2/1/0 outcomes, got %d/%d/%d",
			result.Success, result.Failed, result.Cancelled)
	}
	if result.Total() != 3 {
		t.Errorf("Expected total 3, got %d", result.Total())
	}
	if result.Interrupted {
		t.Error("Expected a natural completion, got interrupted")
	}
	if result.Started.IsZero() || result.Finished.Before(result.Started) {
		t.Errorf("Expected ordered timestamps, got %v and %v", result.Started, result.Finished)
	}

	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		t.Errorf("Expected output directory to be created: %v", err)
	}
}

func TestRunnerSkipsCommentsAndBlanks(t *testing.T) {
	fetcher := &fakeFetcher{
		onResolve: func(url string) (*media.Info, error) {
			if url == "https://example/a" {
				return nil, errors.New("video unavailable")
			}
			return &media.Info{Title: "Video"}, nil
		},
	}
	runner := NewRunner(fetcher, testJob(t.TempDir()), nil)

	urls := []string{"https://example/a", "# comment", "", "https://example/b"}
	result, err := runner.Run(urls, NewToken())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Total() != 2 {
		t.Errorf("Expected 2 outcomes, got %d", result.Total())
	}
	if result.Success != 1 || result.Failed != 1 {
		t.Errorf("Expected 1 success and 1 failure, got %d and %d", result.Success, result.Failed)
	}

	failed := result.FailedURLs()
	if len(failed) != 1 || failed[0] != "https://example/a" {
		t.Errorf("Expected failed URL list [https://example/a], got %v", failed)
	}

	if resolves, _ := fetcher.calls(); resolves != 2 {
		t.Errorf("Expected 2 resolve calls, got %d", resolves)
	}
}

func TestRunnerPreSignaledToken(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner := NewRunner(fetcher, testJob(t.TempDir()), nil)

	token := NewToken()
	token.Signal()

	urls := []string{"https://example/a", "https://example/b"}
	result, err := runner.Run(urls, token)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Total() != 0 {
		t.Errorf("Expected no outcomes, got %d", result.Total())
	}
	if !result.Interrupted {
		t.Error("Expected the result to be marked interrupted")
	}
	resolves, fetches := fetcher.calls()
	if resolves != 0 || fetches != 0 {
		t.Errorf("Expected no fetcher calls, got %d resolves and %d fetches", resolves, fetches)
	}
}

func TestRunnerConcurrencyBound(t *testing.T) {
	var active, peak atomic.Int32
	fetcher := &fakeFetcher{
		onFetch: func(req media.Request) error {
			cur := active.Add(1)
			for {
				seen := peak.Load()
				if cur <= seen || peak.CompareAndSwap(seen, cur) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			active.Add(-1)
			return nil
		},
	}

	job := testJob(t.TempDir())
	job.MaxWorkers = 2
	runner := NewRunner(fetcher, job, nil)

	urls := []string{
		"https://example/a", "https://example/b", "https://example/c",
		"https://example/d", "https://example/e",
	}
	result, err := runner.Run(urls, NewToken())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Success != len(urls) {
		t.Errorf("Expected %d successes, got %d", len(urls), result.Success)
	}
	if got := peak.Load(); got > 2 {
		t.Errorf("Expected at most 2 concurrent fetches, observed %d", got)
	}
}

func TestRunnerMidRunCancel(t *testing.T) {
	var started atomic.Int32
	gate := make(chan struct{})
	token := NewToken()

	fetcher := &fakeFetcher{
		onFetch: func(req media.Request) error {
			started.Add(1)
			<-gate
			return req.OnProgress(media.Progress{Fraction: 0.5})
		},
	}

	sink := NewSink()
	runner := NewRunner(fetcher, testJob(t.TempDir()), sink)

	urls := make([]string, 7)
	for i := range urls {
		urls[i] = "https://example/" + string(rune('a'+i))
	}

	type runOutcome struct {
		result *model.BatchResult
		err    error
	}
	done := make(chan runOutcome, 1)
	go func() {
		result, err := runner.Run(urls, token)
		done <- runOutcome{result, err}
	}()

	// Wait until every worker holds an item mid-fetch, then cancel
	deadline := time.Now().Add(5 * time.Second)
	for started.Load() != 3 {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for workers to start fetching")
		}
		time.Sleep(time.Millisecond)
	}
	token.Signal()

	// The submission log confirms the runner stopped handing out work
	// before we release the in-flight fetches
	sawStop := false
	for ev := range sink.Events() {
		if ev.Kind == model.EventLog && strings.HasPrefix(ev.Message, "Cancellation requested") {
			if ev.Message != "Cancellation requested, 3 of 7 URLs submitted" {
				t.Errorf("Unexpected submission log %q", ev.Message)
			}
			sawStop = true
			break
		}
	}
	if !sawStop {
		t.Fatal("Runner never reported the stopped submission")
	}
	close(gate)

	var final model.Event
	for ev := range sink.Events() {
		final = ev
	}

	outcome := <-done
	if outcome.err != nil {
		t.Fatalf("Run failed: %v", outcome.err)
	}
	result := outcome.result

	if result.Cancelled != 3 || result.Success != 0 || result.Failed != 0 {
		t.Errorf("Expected 0/0/3 outcomes, got %d/%d/%d",
			result.Success, result.Failed, result.Cancelled)
	}
	if result.Total() != 3 {
		t.Errorf("Expected 3 outcomes in total, got %d", result.Total())
	}
	if !result.Interrupted {
		t.Error("Expected the result to be marked interrupted")
	}

	if final.Kind != model.EventDone {
		t.Fatalf("Expected a terminal event, got %+v", final)
	}
	if !strings.HasPrefix(final.Message, "Cancelled:") {
		t.Errorf("Expected a cancelled status, got %q", final.Message)
	}
}

func TestRunnerWorkerPanicDemotedToFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		onResolve: func(url string) (*media.Info, error) {
			if url == "https://example/boom" {
				panic("parser exploded")
			}
			return &media.Info{Title: "Video"}, nil
		},
	}
	runner := NewRunner(fetcher, testJob(t.TempDir()), nil)

	urls := []string{"https://example/a", "https://example/boom", "https://example/c"}
	result, err := runner.Run(urls, NewToken())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Success != 2 || result.Failed != 1 {
		t.Errorf("Expected 2 successes and 1 failure, got %d and %d",
			result.Success, result.Failed)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("Expected 1 recorded failure, got %d", len(result.Failures))
	}
	failure := result.Failures[0]
	if failure.URL != "https://example/boom" {
		t.Errorf("Expected the panicking URL to fail, got %q", failure.URL)
	}
	if !strings.Contains(failure.Reason, "worker panic") {
		t.Errorf("Expected a worker panic reason, got %q", failure.Reason)
	}
}

func TestRunnerEmptyInput(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner := NewRunner(fetcher, testJob(t.TempDir()), nil)

	result, err := runner.Run([]string{"", "# only comments"}, NewToken())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Total() != 0 {
		t.Errorf("Expected no outcomes, got %d", result.Total())
	}
	if resolves, _ := fetcher.calls(); resolves != 0 {
		t.Errorf("Expected no resolve calls, got %d", resolves)
	}
}

func TestRunnerInvalidJob(t *testing.T) {
	job := testJob(t.TempDir())
	job.MaxWorkers = 0

	sink := NewSink()
	runner := NewRunner(&fakeFetcher{}, job, sink)

	if _, err := runner.Run([]string{"https://example/a"}, NewToken()); err == nil {
		t.Fatal("Expected an error for an invalid job")
	}

	// Even a failed start must terminate the event stream
	var final model.Event
	for ev := range sink.Events() {
		final = ev
	}
	if final.Kind != model.EventDone {
		t.Errorf("Expected a terminal event, got %+v", final)
	}
}

func TestRunnerDeliversTerminalEvent(t *testing.T) {
	sink := NewSink()
	runner := NewRunner(&fakeFetcher{}, testJob(t.TempDir()), sink)

	var events []model.Event
	collected := make(chan struct{})
	go func() {
		for ev := range sink.Events() {
			events = append(events, ev)
		}
		close(collected)
	}()

	if _, err := runner.Run([]string{"https://example/a"}, NewToken()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	<-collected

	if len(events) == 0 {
		t.Fatal("Expected events, got none")
	}
	final := events[len(events)-1]
	if final.Kind != model.EventDone {
		t.Errorf("Expected the last event to be terminal, got %+v", final)
	}
	if !strings.HasPrefix(final.Message, "Completed:") {
		t.Errorf("Expected a completed status, got %q", final.Message)
	}

	sawItemDone := false
	for _, ev := range events {
		if ev.Kind == model.EventItemDone {
			sawItemDone = true
			if ev.Outcome != model.OutcomeSuccess {
				t.Errorf("Expected a success outcome, got %s", ev.Outcome)
			}
		}
	}
	if !sawItemDone {
		t.Error("Expected an item completion event")
	}
}

package model

import (
	"strings"
	"testing"
)

func TestBatchResultAdd(t *testing.T) {
	result := &BatchResult{}

	result.Add(ItemResult{Item: NewItem("https://example/a"), Outcome: OutcomeSuccess})
	result.Add(ItemResult{Item: NewItem("https://example/b"), Outcome: OutcomeFailed, Reason: "network error"})
	result.Add(ItemResult{Item: NewItem("https://example/c"), Outcome: OutcomeCancelled})
	result.Add(ItemResult{Item: NewItem("https://example/d"), Outcome: OutcomeFailed, Reason: "no media"})

	if result.Success != 1 {
		t.Errorf("Expected 1 success, got %d", result.Success)
	}
	if result.Failed != 2 {
		t.Errorf("Expected 2 failed, got %d", result.Failed)
	}
	if result.Cancelled != 1 {
		t.Errorf("Expected 1 cancelled, got %d", result.Cancelled)
	}
	if result.Total() != 4 {
		t.Errorf("Expected total 4, got %d", result.Total())
	}
}

func TestBatchResultFailureOrder(t *testing.T) {
	result := &BatchResult{}
	urls := []string{"https://example/1", "https://example/2", "https://example/3"}

	for _, url := range urls {
		result.Add(ItemResult{Item: NewItem(url), Outcome: OutcomeFailed, Reason: "boom"})
	}

	failed := result.FailedURLs()
	if len(failed) != len(urls) {
		t.Fatalf("Expected %d failed URLs, got %d", len(urls), len(failed))
	}
	for i, url := range urls {
		if failed[i] != url {
			t.Errorf("Failed URL %d: expected %s, got %s", i, url, failed[i])
		}
	}
}

func TestBatchResultUnknownOutcomeCountsAsFailed(t *testing.T) {
	result := &BatchResult{}
	result.Add(ItemResult{Item: NewItem("https://example/x"), Outcome: Outcome("Bogus"), Reason: "worker fault"})

	if result.Failed != 1 {
		t.Errorf("Expected unknown outcome to count as failed, got %d failed", result.Failed)
	}
	if len(result.Failures) != 1 || result.Failures[0].URL != "https://example/x" {
		t.Errorf("Expected failure recorded for unknown outcome, got %v", result.Failures)
	}
}

func TestNewItemIDs(t *testing.T) {
	a := NewItem("https://example/a")
	b := NewItem("https://example/a")

	if a.ID == "" || b.ID == "" {
		t.Fatal("Item IDs should not be empty")
	}
	if a.ID == b.ID {
		t.Error("Two items should get distinct IDs even for the same URL")
	}
	if !strings.HasPrefix(a.ID, ItemIDPrefix) {
		t.Errorf("Item ID should start with %q, got %s", ItemIDPrefix, a.ID)
	}
}

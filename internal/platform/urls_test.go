package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterURLs(t *testing.T) {
	lines := []string{
		"https://www.youtube.com/watch?v=first",
		"",
		"# comment line",
		"  https://www.youtube.com/watch?v=second  ",
		"   ",
		"#another comment",
		"https://www.youtube.com/watch?v=first",
	}

	urls := FilterURLs(lines)

	expected := []string{
		"https://www.youtube.com/watch?v=first",
		"https://www.youtube.com/watch?v=second",
		"https://www.youtube.com/watch?v=first",
	}

	if len(urls) != len(expected) {
		t.Fatalf("Expected %d URLs, got %d", len(expected), len(urls))
	}
	for i, url := range expected {
		if urls[i] != url {
			t.Errorf("URL %d: expected %s, got %s", i, url, urls[i])
		}
	}
}

func TestFilterURLsEmptyInput(t *testing.T) {
	if urls := FilterURLs(nil); len(urls) != 0 {
		t.Errorf("Expected no URLs for nil input, got %d", len(urls))
	}

	if urls := FilterURLs([]string{"", "# only comments", "  "}); len(urls) != 0 {
		t.Errorf("Expected no URLs for comment-only input, got %d", len(urls))
	}
}

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# my queue\nhttps://www.youtube.com/watch?v=abc\n\n  https://www.youtube.com/watch?v=def\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write URL file: %v", err)
	}

	urls, err := ReadURLFile(path)
	if err != nil {
		t.Fatalf("ReadURLFile failed: %v", err)
	}

	expected := []string{
		"https://www.youtube.com/watch?v=abc",
		"https://www.youtube.com/watch?v=def",
	}
	if len(urls) != len(expected) {
		t.Fatalf("Expected %d URLs, got %d", len(expected), len(urls))
	}
	for i, url := range expected {
		if urls[i] != url {
			t.Errorf("URL %d: expected %s, got %s", i, url, urls[i])
		}
	}
}

func TestReadURLFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	if _, err := ReadURLFile(path); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

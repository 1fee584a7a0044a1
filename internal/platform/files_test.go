package platform

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	// Should end with "Downloads"
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "My Song", "My Song"},
		{"reserved characters stripped", "Song: Title / Remix?", "Song Title Remix"},
		{"angle brackets stripped", "A<B>C", "ABC"},
		{"unsafe runes become underscores", "C++ tutorial", "C__ tutorial"},
		{"emoji becomes underscore", "emoji \U0001F3B5 title", "emoji _ title"},
		{"whitespace collapsed and trimmed", "  too   many\tspaces  ", "too many spaces"},
		{"safe punctuation kept", "Track [Official] (HD) & more", "Track [Official] (HD) & more"},
		{"cyrillic kept", "Официальный клип", "Официальный клип"},
		{"only reserved characters", "???", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeName(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeName(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	result := SanitizeName(long)

	if len([]rune(result)) != MaxNameLength {
		t.Errorf("Expected %d runes, got %d", MaxNameLength, len([]rune(result)))
	}

	// Truncation must not leave trailing spaces
	padded := strings.Repeat("word ", 40)
	result = SanitizeName(padded)
	if strings.HasSuffix(result, " ") {
		t.Errorf("Truncated name should not end with a space: %q", result)
	}
}

func TestCreateUniqueDir(t *testing.T) {
	tempDir := t.TempDir()

	first, err := CreateUniqueDir(tempDir, "My Song")
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if first != filepath.Join(tempDir, "My Song") {
		t.Errorf("Expected %s, got %s", filepath.Join(tempDir, "My Song"), first)
	}

	second, err := CreateUniqueDir(tempDir, "My Song")
	if err != nil {
		t.Fatalf("Failed to create second directory: %v", err)
	}
	if second != filepath.Join(tempDir, "My Song (1)") {
		t.Errorf("Expected %s, got %s", filepath.Join(tempDir, "My Song (1)"), second)
	}

	third, err := CreateUniqueDir(tempDir, "My Song")
	if err != nil {
		t.Fatalf("Failed to create third directory: %v", err)
	}
	if third != filepath.Join(tempDir, "My Song (2)") {
		t.Errorf("Expected %s, got %s", filepath.Join(tempDir, "My Song (2)"), third)
	}

	for _, dir := range []string{first, second, third} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Directory %s was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}
}

func TestCreateUniqueDirCreatesParent(t *testing.T) {
	tempDir := t.TempDir()
	parent := filepath.Join(tempDir, "not", "yet", "there")

	created, err := CreateUniqueDir(parent, "Title")
	if err != nil {
		t.Fatalf("Failed to create directory with missing parent: %v", err)
	}
	if _, err := os.Stat(created); err != nil {
		t.Errorf("Directory %s was not created: %v", created, err)
	}
}

func TestCreateUniqueDirConcurrent(t *testing.T) {
	tempDir := t.TempDir()

	const workers = 8
	paths := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			paths[idx], errs[idx] = CreateUniqueDir(tempDir, "Same Title")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("Worker %d failed: %v", i, errs[i])
		}
		if seen[paths[i]] {
			t.Errorf("Duplicate directory handed out: %s", paths[i])
		}
		seen[paths[i]] = true
	}
}

func TestOpenFolderNonExistentDirectory(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "missing")

	err := OpenFolder(missing)
	if err == nil {
		t.Error("Expected error for non-existent directory, got nil")
	}

	if !strings.Contains(err.Error(), "directory does not exist:") {
		t.Errorf("Error message should contain 'directory does not exist:', got: %v", err)
	}
}

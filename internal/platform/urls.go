package platform

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FilterURLs extracts usable URLs from raw input lines. Lines are
// trimmed, blank lines and # comment lines are skipped. Order is kept,
// duplicates included.
func FilterURLs(lines []string) []string {
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		urls = append(urls, trimmed)
	}
	return urls
}

// ReadURLFile reads a URL list file, one URL per line, applying the
// same filtering as FilterURLs
func ReadURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	return FilterURLs(lines), nil
}

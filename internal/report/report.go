package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/ytbatch/internal/model"
	"github.com/ytget/ytbatch/internal/platform"
)

// BannerWidth is the width of the summary delimiter lines
const BannerWidth = 60

// FailedURLsFileName is the retry file written into the output directory
const FailedURLsFileName = "failed_urls.txt"

// Summarize renders the batch result as a banner-delimited block for the
// terminal
func Summarize(result *model.BatchResult) string {
	banner := strings.Repeat("=", BannerWidth)

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("📊 Download summary\n")
	fmt.Fprintf(&b, "✅ Success: %d\n", result.Success)
	fmt.Fprintf(&b, "❌ Failed: %d\n", result.Failed)
	if result.Cancelled > 0 {
		fmt.Fprintf(&b, "⚠️ Cancelled: %d\n", result.Cancelled)
	}
	if result.Interrupted {
		b.WriteString("⚠️ Batch interrupted, not every URL was processed\n")
	}

	if len(result.Failures) > 0 {
		b.WriteString("\n❌ Failed URLs:\n")
		for _, failure := range result.Failures {
			fmt.Fprintf(&b, "   - %s\n", failure.URL)
		}
	}

	b.WriteString(banner)
	return b.String()
}

// PersistFailures writes the failed URLs, one per line in completion order,
// to failed_urls.txt in dir and returns the written path. Nothing is
// written when the batch had no failures; any existing file is replaced.
func PersistFailures(result *model.BatchResult, dir string) (string, error) {
	urls := result.FailedURLs()
	if len(urls) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, url := range urls {
		b.WriteString(url + "\n")
	}

	path := filepath.Join(dir, FailedURLsFileName)
	if err := os.WriteFile(path, []byte(b.String()), platform.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", FailedURLsFileName, err)
	}
	return path, nil
}

package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/platform"
)

// Sidecar file names
const (
	MetadataFileName = "video_metadata.json"
	ReadmeFileName   = "README.md"
)

// MaxReadmeDescription caps the description length in the README
const MaxReadmeDescription = 1000

// UnknownField substitutes for missing metadata strings
const UnknownField = "Unknown"

// VideoMetadata is the sidecar JSON written next to a downloaded video
type VideoMetadata struct {
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	UploadDate string  `json:"upload_date"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	LikeCount  int64   `json:"like_count"`
	URL        string  `json:"url"`
}

// WriteSidecars writes video_metadata.json and README.md into dir from the
// resolved metadata. Returns the first error; callers treat sidecar
// failures as non-fatal.
func WriteSidecars(dir string, info *media.Info) error {
	if err := writeMetadata(dir, info); err != nil {
		return err
	}
	return writeReadme(dir, info)
}

func writeMetadata(dir string, info *media.Info) error {
	meta := VideoMetadata{
		Title:      orUnknown(info.Title),
		Uploader:   orUnknown(info.Uploader),
		UploadDate: orUnknown(info.UploadDate),
		Duration:   info.Duration,
		ViewCount:  info.ViewCount,
		LikeCount:  info.LikeCount,
		URL:        info.WebpageURL,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	path := filepath.Join(dir, MetadataFileName)
	if err := os.WriteFile(path, data, platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", MetadataFileName, err)
	}
	return nil
}

func writeReadme(dir string, info *media.Info) error {
	description := info.Description
	if description == "" {
		description = "No description"
	}

	truncated := description
	if runes := []rune(description); len(runes) > MaxReadmeDescription {
		truncated = string(runes[:MaxReadmeDescription]) + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orUnknown(info.Title))
	fmt.Fprintf(&b, "**Channel:** %s\n\n", orUnknown(info.Uploader))
	fmt.Fprintf(&b, "**Original link:** %s\n\n", info.WebpageURL)
	b.WriteString("## Description\n\n")
	fmt.Fprintf(&b, "%s\n", truncated)

	path := filepath.Join(dir, ReadmeFileName)
	if err := os.WriteFile(path, []byte(b.String()), platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", ReadmeFileName, err)
	}
	return nil
}

func orUnknown(value string) string {
	if value == "" {
		return UnknownField
	}
	return value
}

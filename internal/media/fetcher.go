package media

import (
	"context"
	"errors"

	"github.com/ytget/ytbatch/internal/config"
)

// ErrAborted reports that a transfer stopped because cancellation was
// requested, not because the downloader failed.
var ErrAborted = errors.New("download aborted")

// Info holds resolved metadata for a single video
type Info struct {
	Title       string
	Uploader    string
	UploadDate  string
	Description string
	WebpageURL  string
	Duration    float64
	ViewCount   int64
	LikeCount   int64
}

// Progress is a single progress sample for an in-flight download
type Progress struct {
	Fraction float64
	Stage    string
	Title    string
}

// ProgressFunc receives progress samples during Fetch. Returning a
// non-nil error aborts the transfer at the next sample.
type ProgressFunc func(Progress) error

// Request describes one download
type Request struct {
	URL          string
	OutputDir    string
	Mode         config.Mode
	AudioQuality config.AudioQuality
	VideoQuality config.VideoQuality

	// WriteSidecars asks the downloader for its native companion files
	// (subtitles, info JSON, description, thumbnail) in video mode
	WriteSidecars bool

	OnProgress ProgressFunc
}

// Fetcher resolves metadata and downloads media for single URLs.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	// Resolve fetches metadata without downloading anything
	Resolve(ctx context.Context, url string) (*Info, error)

	// Fetch downloads the media described by req into req.OutputDir
	Fetch(ctx context.Context, req Request) error
}

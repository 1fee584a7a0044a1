package media

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytbatch/internal/config"
)

// Retry constants
const (
	MaxFetchRetries = 1
	RetryBackoff    = 2 * time.Second
)

// Progress reporting interval
const (
	ProgressInterval = 500 * time.Millisecond
)

// Output constants
const (
	OutputTemplate  = "%(title)s.%(ext)s"
	AudioFileFormat = "mp3"
)

// YTDLPFetcher downloads media through the yt-dlp binary
type YTDLPFetcher struct{}

// NewYTDLPFetcher creates a new yt-dlp backed fetcher
func NewYTDLPFetcher() *YTDLPFetcher {
	return &YTDLPFetcher{}
}

// Install makes sure a yt-dlp binary is available, downloading one if
// needed. Call once at startup; downloads reuse the cached binary.
func Install(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// Resolve fetches video metadata without downloading anything
func (f *YTDLPFetcher) Resolve(ctx context.Context, url string) (*Info, error) {
	dl := ytdlp.New().
		SkipDownload().
		NoWarnings().
		DumpJSON()

	result, err := f.runWithRetry(ctx, dl, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("failed to resolve %s: %w", url, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata for %s: %w", url, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", url)
	}
	return convertInfo(infos[0]), nil
}

// Fetch downloads the media described by req into req.OutputDir
func (f *YTDLPFetcher) Fetch(ctx context.Context, req Request) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dl := ytdlp.New().
		ForceOverwrites().
		NoWarnings().
		Output(filepath.Join(req.OutputDir, OutputTemplate))

	switch req.Mode {
	case config.ModeVideo:
		dl = dl.Format(req.VideoQuality.FormatSelector())
		if req.WriteSidecars {
			dl = dl.WriteSubs().
				WriteAutoSubs().
				WriteInfoJSON().
				WriteDescription().
				WriteThumbnail()
		}
	default:
		dl = dl.Format(config.AudioFormatSelector).
			ExtractAudio().
			AudioFormat(AudioFileFormat).
			AudioQuality(req.AudioQuality.BitrateArg())
	}

	// The progress callback doubles as the abort checkpoint: once it
	// returns an error the transfer context is cancelled and the run
	// reports ErrAborted instead of the downloader's exit error.
	var aborted atomic.Bool
	if req.OnProgress != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			if aborted.Load() {
				return
			}
			if err := req.OnProgress(convertProgress(update)); err != nil {
				aborted.Store(true)
				cancel()
			}
		})
	}

	if _, err := f.runWithRetry(ctx, dl, req.URL); err != nil {
		if aborted.Load() || ctx.Err() != nil {
			return ErrAborted
		}
		return fmt.Errorf("failed to download %s: %w", req.URL, err)
	}
	return nil
}

// runWithRetry attempts the yt-dlp invocation with one retry on failure
func (f *YTDLPFetcher) runWithRetry(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error) {
	var lastErr error
	var result *ytdlp.Result

	for attempt := 0; attempt <= MaxFetchRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(RetryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			log.Printf("Retrying %s, attempt %d", url, attempt+1)
		}

		res, err := dl.Run(ctx, url)
		if err == nil {
			return res, nil
		}

		lastErr = err
		result = res // Keep last result even if there was an error
		log.Printf("Attempt %d failed for %s: %v", attempt+1, url, err)

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	return result, lastErr
}

// convertInfo maps yt-dlp extracted info onto the package metadata type
func convertInfo(info *ytdlp.ExtractedInfo) *Info {
	out := &Info{}
	if info == nil {
		return out
	}

	if info.Title != nil {
		out.Title = *info.Title
	}
	if info.Uploader != nil {
		out.Uploader = *info.Uploader
	}
	if info.UploadDate != nil {
		out.UploadDate = *info.UploadDate
	}
	if info.Description != nil {
		out.Description = *info.Description
	}
	if info.WebpageURL != nil {
		out.WebpageURL = *info.WebpageURL
	}
	if info.Duration != nil {
		out.Duration = *info.Duration
	}
	if info.ViewCount != nil {
		out.ViewCount = int64(*info.ViewCount)
	}
	if info.LikeCount != nil {
		out.LikeCount = int64(*info.LikeCount)
	}
	return out
}

// convertProgress maps a yt-dlp progress update onto a Progress sample
func convertProgress(update ytdlp.ProgressUpdate) Progress {
	p := Progress{Stage: string(update.Status)}

	if update.TotalBytes > 0 {
		p.Fraction = float64(update.DownloadedBytes) / float64(update.TotalBytes)
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}
	return p
}

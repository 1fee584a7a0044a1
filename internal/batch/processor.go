package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ytget/ytbatch/internal/config"
	"github.com/ytget/ytbatch/internal/media"
	"github.com/ytget/ytbatch/internal/model"
	"github.com/ytget/ytbatch/internal/platform"
)

// Processor turns one admitted item into its terminal result
type Processor struct {
	fetcher media.Fetcher
	job     config.Job
	sink    *Sink
	token   *Token
}

// NewProcessor creates a processor bound to one batch's collaborators
func NewProcessor(fetcher media.Fetcher, job config.Job, sink *Sink, token *Token) *Processor {
	return &Processor{
		fetcher: fetcher,
		job:     job,
		sink:    sink,
		token:   token,
	}
}

// Process downloads one item and classifies the result. It never returns
// an error: per-item problems become Failed results, observed cancellation
// becomes Cancelled, and neither stops the batch.
func (p *Processor) Process(ctx context.Context, item model.Item) model.ItemResult {
	if p.token.Signaled() {
		return model.ItemResult{Item: item, Outcome: model.OutcomeCancelled}
	}

	// Callers filter the URL list, so this only catches items injected
	// past the runner
	url := strings.TrimSpace(item.URL)
	if url == "" || strings.HasPrefix(url, "#") {
		return model.ItemResult{Item: item, Outcome: model.OutcomeFailed, Reason: "not a URL"}
	}

	p.sink.Logf("Processing: %s", url)
	p.sink.Status(fmt.Sprintf("Fetching metadata: %s", url))

	info, err := p.fetcher.Resolve(ctx, url)
	if err != nil {
		if errors.Is(err, media.ErrAborted) {
			return model.ItemResult{Item: item, Outcome: model.OutcomeCancelled}
		}
		p.sink.Logf("Failed to resolve %s: %v", url, err)
		return model.ItemResult{Item: item, Outcome: model.OutcomeFailed, Reason: err.Error()}
	}

	title := info.Title
	if title == "" {
		title = url
	}
	p.sink.Logf("Found: %s", title)

	outputDir := p.job.OutputDir
	itemDir := ""
	if p.job.Mode == config.ModeVideo {
		dir, err := p.createVideoDir(info)
		if err != nil {
			p.sink.Logf("Failed to create directory for %s: %v", title, err)
			return model.ItemResult{Item: item, Outcome: model.OutcomeFailed, Reason: err.Error(), Title: title}
		}
		outputDir = dir
		itemDir = dir
	}

	p.sink.Status(fmt.Sprintf("Downloading: %s", title))

	req := media.Request{
		URL:           url,
		OutputDir:     outputDir,
		Mode:          p.job.Mode,
		AudioQuality:  p.job.AudioQuality,
		VideoQuality:  p.job.VideoQuality,
		WriteSidecars: p.job.WriteSidecars,
		OnProgress: func(progress media.Progress) error {
			if p.token.Signaled() {
				return media.ErrAborted
			}
			if progress.Fraction > 0 {
				p.sink.Progress(progress.Fraction)
			}
			return nil
		},
	}

	if err := p.fetcher.Fetch(ctx, req); err != nil {
		if errors.Is(err, media.ErrAborted) {
			p.sink.Logf("Cancelled: %s", title)
			return model.ItemResult{Item: item, Outcome: model.OutcomeCancelled, Title: title, OutputDir: itemDir}
		}
		p.sink.Logf("Failed: %s: %v", url, err)
		return model.ItemResult{Item: item, Outcome: model.OutcomeFailed, Reason: err.Error(), Title: title, OutputDir: itemDir}
	}

	if p.job.Mode == config.ModeVideo && p.job.WriteSidecars {
		if err := WriteSidecars(outputDir, info); err != nil {
			// A finished download stands even when its sidecars do not
			p.sink.Logf("Failed to write sidecar files for %s: %v", title, err)
		}
	}

	p.sink.Logf("Completed: %s", title)
	return model.ItemResult{Item: item, Outcome: model.OutcomeSuccess, Title: title, OutputDir: itemDir}
}

// createVideoDir derives the per-video directory name from the sanitized
// uploader and title and creates it under the job output directory,
// disambiguating collisions with a counter suffix
func (p *Processor) createVideoDir(info *media.Info) (string, error) {
	uploader := platform.SanitizeName(info.Uploader)
	if uploader == "" {
		uploader = UnknownField
	}
	name := fmt.Sprintf("%s - %s", uploader, platform.SanitizeName(info.Title))

	dir, err := platform.CreateUniqueDir(p.job.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create video directory: %w", err)
	}
	return dir, nil
}

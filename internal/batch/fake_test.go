package batch

import (
	"context"
	"sync"

	"github.com/ytget/ytbatch/internal/config"
	"github.com/ytget/ytbatch/internal/media"
)

// fakeFetcher scripts per-URL behavior for pipeline tests. The zero value
// resolves every URL to a generic title and fetches successfully.
type fakeFetcher struct {
	mu           sync.Mutex
	resolveCalls []string
	requests     []media.Request

	onResolve func(url string) (*media.Info, error)
	onFetch   func(req media.Request) error
}

func (f *fakeFetcher) Resolve(ctx context.Context, url string) (*media.Info, error) {
	f.mu.Lock()
	f.resolveCalls = append(f.resolveCalls, url)
	f.mu.Unlock()

	if f.onResolve != nil {
		return f.onResolve(url)
	}
	return &media.Info{Title: "Video " + url, Uploader: "Channel"}, nil
}

func (f *fakeFetcher) Fetch(ctx context.Context, req media.Request) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.onFetch != nil {
		return f.onFetch(req)
	}
	return nil
}

// calls returns how many resolve and fetch invocations were observed
func (f *fakeFetcher) calls() (resolves, fetches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resolveCalls), len(f.requests)
}

// lastRequest returns the most recent fetch request
func (f *fakeFetcher) lastRequest() media.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return media.Request{}
	}
	return f.requests[len(f.requests)-1]
}

// testJob builds a valid audio-mode job writing into dir
func testJob(dir string) config.Job {
	job := config.DefaultJob()
	job.OutputDir = dir
	return job
}

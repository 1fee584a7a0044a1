package platform

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultExpandTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistExpander resolves YouTube playlist URLs into individual video URLs
type PlaylistExpander struct {
	timeout time.Duration
}

// NewPlaylistExpander creates a new playlist expander
func NewPlaylistExpander() *PlaylistExpander {
	return &PlaylistExpander{
		timeout: DefaultExpandTimeout,
	}
}

// SetTimeout sets the timeout for playlist listing operations
func (p *PlaylistExpander) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL checks if the URL points to a YouTube playlist
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(url string) string {
	if strings.Contains(url, PlaylistParam) {
		parts := strings.Split(url, PlaylistParam)
		if len(parts) > 1 {
			playlistPart := parts[1]
			if strings.Contains(playlistPart, ParamSeparator) {
				playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
			}
			return playlistPart
		}
	}
	return ""
}

// Expand lists the playlist and returns the watch URL of every entry
func (p *PlaylistExpander) Expand(ctx context.Context, url string) ([]string, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("not a playlist URL: %s", url)
	}

	playlistID := extractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %v", err)
	}

	urls := make([]string, 0, len(items))
	for _, it := range items {
		urls = append(urls, fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID))
	}
	return urls, nil
}

// ExpandAll replaces playlist URLs in the input with their video URLs.
// Plain video URLs pass through untouched. When a playlist cannot be
// listed the original URL is kept so the failure surfaces downstream.
func (p *PlaylistExpander) ExpandAll(ctx context.Context, urls []string) []string {
	expanded := make([]string, 0, len(urls))
	for _, url := range urls {
		if !IsPlaylistURL(url) {
			expanded = append(expanded, url)
			continue
		}

		videoURLs, err := p.Expand(ctx, url)
		if err != nil {
			log.Printf("Failed to expand playlist %s: %v", url, err)
			expanded = append(expanded, url)
			continue
		}
		expanded = append(expanded, videoURLs...)
	}
	return expanded
}

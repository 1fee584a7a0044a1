package media

// Package media wraps yt-dlp (via github.com/lrstanley/go-ytdlp) behind a
// small Fetcher interface: metadata resolution, audio extraction, video
// download with format selection, and progress propagation with a
// callback-driven abort path.

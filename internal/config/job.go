package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects what gets fetched for each item
type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// AudioQuality is an MP3 bitrate in kbps
type AudioQuality int

const (
	AudioQuality128 AudioQuality = 128
	AudioQuality192 AudioQuality = 192
	AudioQuality320 AudioQuality = 320
)

// String returns the bitrate as a plain number, e.g. "192"
func (q AudioQuality) String() string {
	return strconv.Itoa(int(q))
}

// BitrateArg returns the bitrate in the form the fetch collaborator
// expects, e.g. "192K"
func (q AudioQuality) BitrateArg() string {
	return fmt.Sprintf("%dK", int(q))
}

// ParseAudioQuality converts a bitrate string into an AudioQuality
func ParseAudioQuality(s string) (AudioQuality, error) {
	switch strings.TrimSpace(s) {
	case "128":
		return AudioQuality128, nil
	case "192":
		return AudioQuality192, nil
	case "320":
		return AudioQuality320, nil
	default:
		return 0, fmt.Errorf("unsupported audio quality %q (expected 128, 192 or 320)", s)
	}
}

// VideoQuality names a source-selection policy for video downloads
type VideoQuality string

const (
	VideoQualityBest  VideoQuality = "best"
	VideoQuality1080p VideoQuality = "1080p"
	VideoQuality720p  VideoQuality = "720p"
	VideoQuality480p  VideoQuality = "480p"
	VideoQualityWorst VideoQuality = "worst"
)

// String returns the string representation of VideoQuality
func (q VideoQuality) String() string {
	return string(q)
}

// FormatSelector maps the quality to the format expression understood by
// the fetch collaborator. Unknown values map to the best-quality selector.
func (q VideoQuality) FormatSelector() string {
	switch q {
	case VideoQuality1080p:
		return "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080][ext=mp4]/best[height<=1080]"
	case VideoQuality720p:
		return "bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720][ext=mp4]/best[height<=720]"
	case VideoQuality480p:
		return "bestvideo[height<=480][ext=mp4]+bestaudio[ext=m4a]/best[height<=480][ext=mp4]/best[height<=480]"
	case VideoQualityWorst:
		return "worstvideo[ext=mp4]+worstaudio[ext=m4a]/worst[ext=mp4]/worst"
	default:
		return "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	}
}

// ParseVideoQuality converts a quality name into a VideoQuality
func ParseVideoQuality(s string) (VideoQuality, error) {
	q := VideoQuality(strings.ToLower(strings.TrimSpace(s)))
	switch q {
	case VideoQualityBest, VideoQuality1080p, VideoQuality720p, VideoQuality480p, VideoQualityWorst:
		return q, nil
	default:
		return "", fmt.Errorf("unsupported video quality %q (expected best, 1080p, 720p, 480p or worst)", s)
	}
}

// AudioFormatSelector is the source-selection expression for audio-only
// downloads
const AudioFormatSelector = "bestaudio/best"

// Default values
const (
	DefaultOutputDir    = "./downloads"
	DefaultMaxWorkers   = 3
	DefaultAudioQuality = AudioQuality192
	DefaultVideoQuality = VideoQualityBest
)

// Job is the validated, immutable configuration for one batch run
type Job struct {
	OutputDir    string
	Mode         Mode
	AudioQuality AudioQuality
	VideoQuality VideoQuality
	MaxWorkers   int

	// WriteSidecars controls whether video mode persists metadata sidecar
	// files next to the media
	WriteSidecars bool

	// ExpandPlaylists enables the playlist-expansion pre-pass on the URL
	// list before submission
	ExpandPlaylists bool
}

// DefaultJob returns a Job with the stock defaults applied
func DefaultJob() Job {
	return Job{
		OutputDir:     DefaultOutputDir,
		Mode:          ModeAudio,
		AudioQuality:  DefaultAudioQuality,
		VideoQuality:  DefaultVideoQuality,
		MaxWorkers:    DefaultMaxWorkers,
		WriteSidecars: true,
	}
}

// Validate rejects invalid or unknown configuration values before any
// worker starts. Only the quality field matching the mode is checked, the
// other one is unused.
func (j Job) Validate() error {
	if strings.TrimSpace(j.OutputDir) == "" {
		return fmt.Errorf("output directory is required")
	}
	if j.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be at least 1, got %d", j.MaxWorkers)
	}

	switch j.Mode {
	case ModeAudio:
		if _, err := ParseAudioQuality(j.AudioQuality.String()); err != nil {
			return err
		}
	case ModeVideo:
		if _, err := ParseVideoQuality(j.VideoQuality.String()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q (expected audio or video)", j.Mode)
	}

	return nil
}

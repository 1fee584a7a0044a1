package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytbatch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_directory"
	KeyMode            = "download_mode"
	KeyAudioQuality    = "audio_quality"
	KeyVideoQuality    = "video_quality"
	KeyMaxWorkers      = "max_workers"
	KeyWriteSidecars   = "write_sidecars"
	KeyExpandPlaylists = "expand_playlists"
)

// Settings manages GUI configuration persisted via Fyne preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = DefaultOutputDir
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetMode returns the configured download mode
func (s *Settings) GetMode() Mode {
	mode := Mode(s.app.Preferences().String(KeyMode))
	switch mode {
	case ModeAudio, ModeVideo:
		return mode
	default:
		s.SetMode(ModeAudio)
		return ModeAudio
	}
}

// SetMode sets the download mode
func (s *Settings) SetMode(mode Mode) {
	s.app.Preferences().SetString(KeyMode, string(mode))
}

// GetAudioQuality returns the configured MP3 bitrate
func (s *Settings) GetAudioQuality() AudioQuality {
	value := s.app.Preferences().Int(KeyAudioQuality)
	if q, err := ParseAudioQuality(AudioQuality(value).String()); err == nil {
		return q
	}
	s.SetAudioQuality(DefaultAudioQuality)
	return DefaultAudioQuality
}

// SetAudioQuality sets the MP3 bitrate
func (s *Settings) SetAudioQuality(q AudioQuality) {
	s.app.Preferences().SetInt(KeyAudioQuality, int(q))
}

// GetVideoQuality returns the configured video quality
func (s *Settings) GetVideoQuality() VideoQuality {
	if q, err := ParseVideoQuality(s.app.Preferences().String(KeyVideoQuality)); err == nil {
		return q
	}
	s.SetVideoQuality(DefaultVideoQuality)
	return DefaultVideoQuality
}

// SetVideoQuality sets the video quality
func (s *Settings) SetVideoQuality(q VideoQuality) {
	s.app.Preferences().SetString(KeyVideoQuality, string(q))
}

// GetMaxWorkers returns the maximum number of concurrent downloads
func (s *Settings) GetMaxWorkers() int {
	value := s.app.Preferences().Int(KeyMaxWorkers)
	if value <= 0 {
		s.SetMaxWorkers(DefaultMaxWorkers)
		return DefaultMaxWorkers
	}
	return value
}

// SetMaxWorkers sets the maximum number of concurrent downloads
func (s *Settings) SetMaxWorkers(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxWorkers, count)
}

// GetWriteSidecars returns whether video mode writes metadata sidecars
func (s *Settings) GetWriteSidecars() bool {
	return s.app.Preferences().BoolWithFallback(KeyWriteSidecars, true)
}

// SetWriteSidecars sets whether video mode writes metadata sidecars
func (s *Settings) SetWriteSidecars(write bool) {
	s.app.Preferences().SetBool(KeyWriteSidecars, write)
}

// GetExpandPlaylists returns whether playlist URLs are expanded before
// submission
func (s *Settings) GetExpandPlaylists() bool {
	return s.app.Preferences().BoolWithFallback(KeyExpandPlaylists, false)
}

// SetExpandPlaylists sets whether playlist URLs are expanded before
// submission
func (s *Settings) SetExpandPlaylists(expand bool) {
	s.app.Preferences().SetBool(KeyExpandPlaylists, expand)
}

// GetAudioQualityOptions returns available audio quality options
func (s *Settings) GetAudioQualityOptions() []AudioQuality {
	return []AudioQuality{AudioQuality128, AudioQuality192, AudioQuality320}
}

// GetVideoQualityOptions returns available video quality options
func (s *Settings) GetVideoQualityOptions() []VideoQuality {
	return []VideoQuality{VideoQualityBest, VideoQuality1080p, VideoQuality720p, VideoQuality480p, VideoQualityWorst}
}

// Job assembles a batch job from the persisted settings
func (s *Settings) Job() Job {
	return Job{
		OutputDir:       s.GetOutputDirectory(),
		Mode:            s.GetMode(),
		AudioQuality:    s.GetAudioQuality(),
		VideoQuality:    s.GetVideoQuality(),
		MaxWorkers:      s.GetMaxWorkers(),
		WriteSidecars:   s.GetWriteSidecars(),
		ExpandPlaylists: s.GetExpandPlaylists(),
	}
}

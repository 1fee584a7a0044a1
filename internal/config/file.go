package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// FileConfig holds optional CLI defaults loaded from an ytbatch.yaml file.
// Zero-valued fields are treated as unset and leave the built-in defaults
// alone; command-line flags override both.
type FileConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	AudioQuality    int    `mapstructure:"audio_quality"`
	VideoQuality    string `mapstructure:"video_quality"`
	MaxWorkers      int    `mapstructure:"max_workers"`
	WriteSidecars   *bool  `mapstructure:"write_sidecars"`
	ExpandPlaylists bool   `mapstructure:"expand_playlists"`
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ytbatch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "ytbatch")
	}
}

// LoadFileConfig loads CLI defaults from the given file, or from
// ytbatch.yaml in the working directory and the per-user config directory
// when path is empty. A missing file is not an error unless the path was
// given explicitly.
func LoadFileConfig(path string) (*FileConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ytbatch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultConfigPath())
	}

	// Environment variable overrides
	v.SetEnvPrefix("YTBATCH")
	v.AutomaticEnv()

	cfg := &FileConfig{}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			// Config file not found is OK, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyTo overlays the file values onto a job, leaving unset fields alone
func (c *FileConfig) ApplyTo(job *Job) error {
	if c.OutputDir != "" {
		job.OutputDir = c.OutputDir
	}
	if c.AudioQuality != 0 {
		q, err := ParseAudioQuality(AudioQuality(c.AudioQuality).String())
		if err != nil {
			return err
		}
		job.AudioQuality = q
	}
	if c.VideoQuality != "" {
		q, err := ParseVideoQuality(c.VideoQuality)
		if err != nil {
			return err
		}
		job.VideoQuality = q
	}
	if c.MaxWorkers != 0 {
		job.MaxWorkers = c.MaxWorkers
	}
	if c.WriteSidecars != nil {
		job.WriteSidecars = *c.WriteSidecars
	}
	if c.ExpandPlaylists {
		job.ExpandPlaylists = true
	}
	return nil
}

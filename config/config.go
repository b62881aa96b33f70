package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAPIBaseURL points at the hosted voicenotes API.
const DefaultAPIBaseURL = "https://api.voicenotes.example.com"

// DefaultPollIntervalMS is how often processing jobs are polled.
const DefaultPollIntervalMS = 2000

type Config struct {
	APIBaseURL   string
	StateDir     string // session, cache and log files
	PollInterval time.Duration
	DefaultTags  []string // tags applied to every upload
	InputFormat  string   // ffmpeg input format (avfoundation, pulse, ...)
	InputDevice  string   // ffmpeg input device name
	Debug        bool     // verbose diagnostic logging
}

type fileConfig struct {
	APIBaseURL     string   `toml:"api_base_url"`
	StateDir       string   `toml:"state_dir"`
	PollIntervalMS int      `toml:"poll_interval_ms"`
	DefaultTags    []string `toml:"default_tags"`
	InputFormat    string   `toml:"input_format"`
	InputDevice    string   `toml:"input_device"`
	Debug          bool     `toml:"debug"`
}

func Load() (*Config, error) {
	format, device := defaultInput()
	cfg := &Config{
		APIBaseURL:   DefaultAPIBaseURL,
		StateDir:     defaultStateDir(),
		PollInterval: DefaultPollIntervalMS * time.Millisecond,
		InputFormat:  format,
		InputDevice:  device,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.APIBaseURL != "" {
				cfg.APIBaseURL = fc.APIBaseURL
			}
			if fc.StateDir != "" {
				cfg.StateDir = expandTilde(fc.StateDir)
			}
			if fc.PollIntervalMS > 0 {
				cfg.PollInterval = time.Duration(fc.PollIntervalMS) * time.Millisecond
			}
			if len(fc.DefaultTags) > 0 {
				cfg.DefaultTags = fc.DefaultTags
			}
			if fc.InputFormat != "" {
				cfg.InputFormat = fc.InputFormat
			}
			if fc.InputDevice != "" {
				cfg.InputDevice = fc.InputDevice
			}
			cfg.Debug = fc.Debug
		}
	}

	applyEnvOverrides(cfg)

	// Ensure the state directory exists
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VOICENOTES_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("VOICENOTES_STATE_DIR"); v != "" {
		cfg.StateDir = expandTilde(v)
	}
	if v := os.Getenv("VOICENOTES_POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("VOICENOTES_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "voicenotes")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "voicenotes")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "voicenotes")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "voicenotes")
	}
	return filepath.Join(".", ".voicenotes")
}

// defaultInput picks the ffmpeg capture backend for the platform.
func defaultInput() (format, device string) {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation", ":default"
	case "windows":
		return "dshow", "audio=default"
	default:
		return "pulse", "default"
	}
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

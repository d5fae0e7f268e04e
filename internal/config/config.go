// Package config resolves the run configuration from flags, an optional
// TOML file and the environment. Resolution order is always explicit
// flag > config file > environment variable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Env var names accepted for the synthesis API key. ELEVEN_LABS_KEY is
// checked first; ELEVENLABS_API_KEY is kept for backward compatibility.
const (
	EnvAPIKey       = "ELEVEN_LABS_KEY"
	EnvAPIKeyLegacy = "ELEVENLABS_API_KEY"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvConfigPath   = "VOICE_CHANGER_CONFIG"
)

// File is the on-disk TOML shape. All fields are optional.
type File struct {
	APIKey        string  `toml:"api_key"`
	VoiceID       string  `toml:"voice_id"`
	BaseURL       string  `toml:"base_url"`
	MaxSpeedRatio float64 `toml:"max_speed_ratio"`
	OpenAIAPIKey  string  `toml:"openai_api_key"`
	WhisperBin    string  `toml:"whisper_bin"`
	WhisperModel  string  `toml:"whisper_model"`
}

// DefaultPath returns the conventional config file location, or the
// VOICE_CHANGER_CONFIG override when set.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "voice-changer", "config.toml")
}

// LoadFile reads a TOML config file. A missing file yields a zero File
// and no error; a malformed one is an error.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// ResolveAPIKey picks the synthesis API key: explicit flag value first,
// then the config file, then the environment. Pure in the environment
// lookup so callers and tests can supply their own.
func ResolveAPIKey(flagValue, fileValue string, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	if fileValue != "" {
		return fileValue
	}
	if v := getenv(EnvAPIKey); v != "" {
		return v
	}
	return getenv(EnvAPIKeyLegacy)
}

// Resolve applies the same precedence to any string setting.
func Resolve(flagValue, fileValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if fileValue != "" {
		return fileValue
	}
	return envValue
}

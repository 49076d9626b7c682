package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application configuration.
//
// Values come from baseDir/config.json, overlaid with environment variables.
// The API key is env-only and never written back to disk.
type Config struct {
	// APIKey authenticates against the Gemini API. Env-only.
	APIKey string `json:"-" env:"GEMINI_API_KEY"`

	// Model is the text-generation model used for translate, dictionary
	// lookup, transcription, and pronunciation evaluation.
	Model string `json:"model,omitempty" env:"NIHONGO_MODEL"`

	// TTSModel is the audio-modality model used for speech synthesis.
	TTSModel string `json:"tts_model,omitempty" env:"NIHONGO_TTS_MODEL"`

	// Voice is the fixed prebuilt voice identity for synthesized speech.
	Voice string `json:"voice,omitempty" env:"NIHONGO_VOICE"`

	// TTSSampleRate is the PCM sample rate the TTS backend produces.
	TTSSampleRate int `json:"tts_sample_rate,omitempty" env:"NIHONGO_TTS_SAMPLE_RATE"`

	// HistoryCap bounds the recent-history collection. Oldest entries
	// beyond the cap are dropped at insertion time.
	HistoryCap int `json:"history_cap,omitempty" env:"NIHONGO_HISTORY_CAP"`

	// SourceLang is the default source-language hint ("auto" detects).
	SourceLang string `json:"source_lang,omitempty" env:"NIHONGO_SOURCE_LANG"`

	// LogLevel is one of: debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" env:"NIHONGO_LOG_LEVEL"`

	// LogFormat is "text" or "json".
	LogFormat string `json:"log_format,omitempty" env:"NIHONGO_LOG_FORMAT"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:         "gemini-2.5-flash",
		TTSModel:      "gemini-2.5-flash-preview-tts",
		Voice:         "Kore",
		TTSSampleRate: 24000,
		HistoryCap:    50,
		SourceLang:    "auto",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load loads configuration from baseDir/config.json, then overlays
// environment variables. Returns defaults (plus env) if the file is absent.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.nihongo.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.APIKey = overlay.APIKey
	if result.APIKey == "" {
		result.APIKey = base.APIKey
	}

	result.Model = overlay.Model
	if result.Model == "" {
		result.Model = base.Model
	}

	result.TTSModel = overlay.TTSModel
	if result.TTSModel == "" {
		result.TTSModel = base.TTSModel
	}

	result.Voice = overlay.Voice
	if result.Voice == "" {
		result.Voice = base.Voice
	}

	result.TTSSampleRate = overlay.TTSSampleRate
	if result.TTSSampleRate == 0 {
		result.TTSSampleRate = base.TTSSampleRate
	}

	result.HistoryCap = overlay.HistoryCap
	if result.HistoryCap == 0 {
		result.HistoryCap = base.HistoryCap
	}

	result.SourceLang = overlay.SourceLang
	if result.SourceLang == "" {
		result.SourceLang = base.SourceLang
	}

	result.LogLevel = overlay.LogLevel
	if result.LogLevel == "" {
		result.LogLevel = base.LogLevel
	}

	result.LogFormat = overlay.LogFormat
	if result.LogFormat == "" {
		result.LogFormat = base.LogFormat
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

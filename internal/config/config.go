package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/mamba/internal/debounce"
)

// Config holds everything mamba reads from config.toml.
type Config struct {
	Endpoint          string
	Users             []string
	Debounce          time.Duration
	DebounceMode      debounce.Mode
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	LogFile           string
	LogLevel          string
}

const (
	defaultConfigPath     = "~/.config/mamba/config.toml"
	defaultLogFile        = "~/.local/state/mamba/mamba.log"
	defaultEndpoint       = "https://script.google.com/macros/s/AKfycbw3f4AdTSvWfwVCssMXZ2SWq0ilYOx_yt0kbO85dRuZQdI9ZrquJgJRZMt_wrVOgdiX/exec"
	defaultLogLevel       = "info"
	defaultDebounceMS     = 300
	defaultTimeoutSeconds = 15
	defaultRequestsPerSec = 5
)

var defaultUsers = []string{"Dikshansh"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint:          defaultEndpoint,
		Users:             append([]string(nil), defaultUsers...),
		Debounce:          defaultDebounceMS * time.Millisecond,
		DebounceMode:      debounce.Shared,
		RequestTimeout:    defaultTimeoutSeconds * time.Second,
		RequestsPerSecond: defaultRequestsPerSec,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
	}
}

// Load locates and parses the mamba config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint              string   `toml:"endpoint"`
		Users                 []string `toml:"users"`
		DebounceMS            int      `toml:"debounce_ms"`
		DebounceMode          string   `toml:"debounce_mode"`
		RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
		RequestsPerSecond     float64  `toml:"requests_per_second"`
		LogFile               string   `toml:"log_file"`
		LogLevel              string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}

	var users []string
	for _, u := range raw.Users {
		if u = strings.TrimSpace(u); u != "" {
			users = append(users, u)
		}
	}
	if len(users) > 0 {
		cfg.Users = users
	}

	if raw.DebounceMS < 0 {
		return Config{}, fmt.Errorf("parse config: debounce_ms must not be negative")
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}

	mode, err := debounce.ParseMode(raw.DebounceMode)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.DebounceMode = mode

	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	// Negative disables pacing; zero keeps the default.
	if raw.RequestsPerSecond != 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	return cfg, nil
}

// ResolvedPath returns the config file location Load would read.
func ResolvedPath(path string) (string, error) {
	return resolvePath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

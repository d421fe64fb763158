package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Backend struct {
	BaseURL        string
	AuthToken      string
	RequestTimeout time.Duration
}

type Poll struct {
	Interval         time.Duration
	MaxAttempts      int
	RunningStatusMax int
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Prefs struct {
	Dir string
}

type Assets struct {
	// BaseURL of the editor module bundle; empty disables remote module
	// loading entirely.
	BaseURL string
}

type Config struct {
	Backend         Backend
	Poll            Poll
	Redis           Redis
	Prefs           Prefs
	Assets          Assets
	DefaultTargetID int
}

func FromEnv() (Config, error) {
	backend := Backend{
		BaseURL:        getEnv("JUDGE_BASE_URL", "http://localhost:5173"),
		AuthToken:      getEnv("JUDGE_AUTH_TOKEN", ""),
		RequestTimeout: getDuration("JUDGE_REQUEST_TIMEOUT", 15*time.Second),
	}

	poll := Poll{
		Interval:         getDuration("JUDGE_POLL_INTERVAL", time.Second),
		MaxAttempts:      getInt("JUDGE_POLL_MAX_ATTEMPTS", 30),
		RunningStatusMax: getInt("JUDGE_RUNNING_STATUS_MAX", 2),
	}
	if poll.Interval <= 0 {
		poll.Interval = time.Second
	}
	if poll.MaxAttempts <= 0 {
		poll.MaxAttempts = 30
	}

	redis := Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getInt("REDIS_DB", 0),
	}

	prefs := Prefs{
		Dir: getEnv("PLAYGROUND_PREFS_DIR", defaultPrefsDir()),
	}

	cfg := Config{
		Backend:         backend,
		Poll:            poll,
		Redis:           redis,
		Prefs:           prefs,
		Assets:          Assets{BaseURL: getEnv("PLAYGROUND_ASSETS_URL", "")},
		DefaultTargetID: getInt("JUDGE_DEFAULT_TARGET_ID", 71),
	}

	if !strings.HasPrefix(cfg.Backend.BaseURL, "http://") && !strings.HasPrefix(cfg.Backend.BaseURL, "https://") {
		return Config{}, fmt.Errorf("invalid backend base url: %q", cfg.Backend.BaseURL)
	}

	return cfg, nil
}

func defaultPrefsDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "playground")
	}
	return ".playground"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

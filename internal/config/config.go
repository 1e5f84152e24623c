package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL       = "http://localhost:8000/api/v1"
	defaultDBPath           = "reels.db"
	defaultLogPath          = "reels.log"
	defaultPageSize         = 10
	defaultVisibleThreshold = 50
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL       string
	APIToken         string
	DBPath           string
	LogPath          string
	PageSize         int
	VisibleThreshold int
}

// LoadDotEnv loads .env.local and .env from the working directory. Values
// already in the environment win; missing files are ignored.
func LoadDotEnv() ([]string, error) {
	if dotEnvDisabled() {
		return nil, nil
	}
	var loaded []string
	for _, p := range []string{".env.local", ".env"} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("load %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// LoadFromEnv reads the environment and applies defaults. It does not call
// Validate, so callers can layer flag overrides first.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL: os.Getenv("REELS_API_BASE_URL"),
		APIToken:   os.Getenv("REELS_API_TOKEN"),
		DBPath:     os.Getenv("REELS_DB_PATH"),
		LogPath:    os.Getenv("REELS_LOG_PATH"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}

	var err error
	if cfg.PageSize, err = intFromEnv("REELS_PAGE_SIZE", defaultPageSize); err != nil {
		return Config{}, err
	}
	if cfg.VisibleThreshold, err = intFromEnv("REELS_VISIBLE_THRESHOLD", defaultVisibleThreshold); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("APIBaseURL must be an http(s) URL: %s", c.APIBaseURL)
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.PageSize < 1 || c.PageSize > 50 {
		return fmt.Errorf("PageSize must be between 1 and 50: %d", c.PageSize)
	}
	if c.VisibleThreshold < 1 || c.VisibleThreshold > 100 {
		return fmt.Errorf("VisibleThreshold must be between 1 and 100: %d", c.VisibleThreshold)
	}
	return nil
}

func intFromEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, raw)
	}
	return n, nil
}

func dotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("REELS_DOTENV"))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}

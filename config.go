package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	APIBaseURL            string
	WebBaseURL            string
	StateDBPath           string
	PageSize              int
	RequestTimeoutSeconds int
}

func DefaultConfig() Config {
	base := strings.TrimSpace(os.Getenv("KUKE_API_URL"))
	if base == "" {
		base = "http://localhost:8080"
	}
	web := strings.TrimSpace(os.Getenv("KUKE_WEB_URL"))
	if web == "" {
		web = "http://localhost:3000"
	}
	return Config{
		APIBaseURL:            strings.TrimRight(base, "/"),
		WebBaseURL:            strings.TrimRight(web, "/"),
		StateDBPath:           defaultStateDBPath(),
		PageSize:              10,
		RequestTimeoutSeconds: 30,
	}
}

func LoadConfig() (Config, error) {
	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := SaveConfig(cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := parseConfig(string(data), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func SaveConfig(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	content := renderConfig(cfg)
	return os.WriteFile(path, []byte(content), 0o600)
}

func configPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "kuke", "config.toml")
}

func defaultStateDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "state.db"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	path := filepath.Join(dataDir, "kuke")
	_ = os.MkdirAll(path, 0o755)
	return filepath.Join(path, "state.db")
}

func parseConfig(raw string, cfg *Config) error {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config line: %q", line)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch key {
		case "api_base_url":
			cfg.APIBaseURL = strings.TrimRight(trimQuotes(value), "/")
		case "web_base_url":
			cfg.WebBaseURL = strings.TrimRight(trimQuotes(value), "/")
		case "state_db_path":
			cfg.StateDBPath = trimQuotes(value)
		case "page_size":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid page_size: %w", err)
			}
			if parsed < 1 {
				return fmt.Errorf("invalid page_size: %d", parsed)
			}
			cfg.PageSize = parsed
		case "request_timeout_seconds":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid request_timeout_seconds: %w", err)
			}
			cfg.RequestTimeoutSeconds = parsed
		default:
			// ignore unknown keys for forward compatibility
		}
	}
	return scanner.Err()
}

func trimQuotes(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	unquoted, err := strconv.Unquote(value)
	if err == nil {
		return unquoted
	}
	return strings.Trim(value, "\"")
}

func renderConfig(cfg Config) string {
	lines := []string{
		"api_base_url = \"" + cfg.APIBaseURL + "\"",
		"web_base_url = \"" + cfg.WebBaseURL + "\"",
		"state_db_path = \"" + cfg.StateDBPath + "\"",
		"page_size = " + strconv.Itoa(cfg.PageSize),
		"request_timeout_seconds = " + strconv.Itoa(cfg.RequestTimeoutSeconds),
	}
	return strings.Join(lines, "\n") + "\n"
}

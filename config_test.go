package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigParseRender(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"api_base_url = \"http://api.test/\"",
		"web_base_url = \"http://web.test\"",
		"state_db_path = \"/tmp/kuke.db\"",
		"page_size = 5",
		"request_timeout_seconds = 7",
		"unknown_key = whatever",
	}, "\n")
	cfg := DefaultConfig()
	if err := parseConfig(input, &cfg); err != nil {
		t.Fatalf("parseConfig error: %v", err)
	}
	if cfg.APIBaseURL != "http://api.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.WebBaseURL != "http://web.test" || cfg.StateDBPath != "/tmp/kuke.db" {
		t.Fatalf("unexpected config values: %+v", cfg)
	}
	if cfg.PageSize != 5 || cfg.RequestTimeoutSeconds != 7 {
		t.Fatalf("unexpected numeric values: %+v", cfg)
	}
	rendered := renderConfig(cfg)
	if !strings.Contains(rendered, "api_base_url") || !strings.Contains(rendered, "page_size = 5") {
		t.Fatalf("renderConfig missing keys: %s", rendered)
	}
}

func TestConfigLoadSave(t *testing.T) {
	root := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", root)
	os.Setenv("XDG_DATA_HOME", root)
	t.Cleanup(func() {
		os.Unsetenv("XDG_CONFIG_HOME")
		os.Unsetenv("XDG_DATA_HOME")
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	cfg.StateDBPath = filepath.Join(root, "state.db")
	cfg.PageSize = 20
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig error: %v", err)
	}
	cfg2, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig second error: %v", err)
	}
	if cfg2.StateDBPath != cfg.StateDBPath || cfg2.PageSize != 20 {
		t.Fatalf("unexpected reloaded config: %+v", cfg2)
	}
}

func TestParseConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseConfig("badline", &cfg); err == nil {
		t.Fatalf("expected error")
	}
	if err := parseConfig("page_size = nope", &cfg); err == nil {
		t.Fatalf("expected page_size error")
	}
	if err := parseConfig("page_size = 0", &cfg); err == nil {
		t.Fatalf("expected page_size range error")
	}
	if err := parseConfig("request_timeout_seconds = soon", &cfg); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestTrimQuotes(t *testing.T) {
	if got := trimQuotes("\"hello\""); got != "hello" {
		t.Fatalf("unexpected trimQuotes: %s", got)
	}
	if got := trimQuotes("hello"); got != "hello" {
		t.Fatalf("unexpected trimQuotes no quotes: %s", got)
	}
	if got := trimQuotes(""); got != "" {
		t.Fatalf("unexpected trimQuotes empty: %s", got)
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	os.Setenv("KUKE_API_URL", "http://env.test/api/")
	os.Setenv("KUKE_WEB_URL", "http://env.test/web/")
	t.Cleanup(func() {
		os.Unsetenv("KUKE_API_URL")
		os.Unsetenv("KUKE_WEB_URL")
	})

	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://env.test/api" {
		t.Fatalf("unexpected api url %q", cfg.APIBaseURL)
	}
	if cfg.WebBaseURL != "http://env.test/web" {
		t.Fatalf("unexpected web url %q", cfg.WebBaseURL)
	}
	if cfg.PageSize != 10 || cfg.RequestTimeoutSeconds != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

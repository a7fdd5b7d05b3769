package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.ProxyURL != "https://api.allorigins.win/raw" {
		t.Errorf("Unexpected default proxy %s", cfg.ProxyURL)
	}
	if cfg.DetailSearchURL != "https://e-lactancia.org/buscar/" {
		t.Errorf("Unexpected default detail search url %s", cfg.DetailSearchURL)
	}
	if cfg.SourceLang != "en" || cfg.TargetLang != "pt" {
		t.Errorf("Expected en|pt, got %s|%s", cfg.SourceLang, cfg.TargetLang)
	}
	if !cfg.TranslationEnabled {
		t.Error("Expected translation enabled by default")
	}
	if cfg.TranslationPacing != 100*time.Millisecond {
		t.Errorf("Expected 100ms pacing, got %s", cfg.TranslationPacing)
	}
	if cfg.UpstreamTimeout != 0 {
		t.Errorf("Expected no upstream timeout, got %s", cfg.UpstreamTimeout)
	}
	if cfg.ProbeInterval != 30 {
		t.Errorf("Expected probe interval 30, got %d", cfg.ProbeInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	_ = os.Setenv("PORT", "8002")
	_ = os.Setenv("ENV", "production")
	_ = os.Setenv("TARGET_LANG", "es")
	_ = os.Setenv("TRANSLATION_ENABLED", "false")
	_ = os.Setenv("TRANSLATION_PACING", "250ms")
	_ = os.Setenv("UPSTREAM_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Expected env prod, got %s", cfg.Env)
	}
	if cfg.TargetLang != "es" {
		t.Errorf("Expected target es, got %s", cfg.TargetLang)
	}
	if cfg.TranslationEnabled {
		t.Error("Expected translation disabled")
	}
	if cfg.TranslationPacing != 250*time.Millisecond {
		t.Errorf("Expected 250ms pacing, got %s", cfg.TranslationPacing)
	}
	if cfg.UpstreamTimeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %s", cfg.UpstreamTimeout)
	}
}

func TestBlankProxyDisablesProxy(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	_ = os.Setenv("PROXY_URL", " ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ProxyURL != "" {
		t.Errorf("Expected empty proxy, got %q", cfg.ProxyURL)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		key      string
		value    string
		expected string
	}{
		{"PORT", "abc", "PORT must be a valid number"},
		{"PORT", "0", "PORT must be between 1 and 65535"},
		{"PORT", "65536", "PORT must be between 1 and 65535"},
		{"PORT", "80", "PORT 80 is privileged"},
		{"ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"ENV", "invalid", "ENV must be one of"},
		{"LOG_LEVEL", "invalid", "LOG_LEVEL must be one of"},
		{"SEARCH_URL", "not a url", "invalid SEARCH_URL"},
		{"DETAIL_SEARCH_URL", "ftp://e-lactancia.org/buscar/", "must use http or https"},
		{"TRANSLATE_URL", "https://", "must include a host"},
		{"PROXY_URL", "allorigins", "invalid PROXY_URL"},
		{"TRANSLATION_PACING", "-1s", "TRANSLATION_PACING"},
		{"UPSTREAM_TIMEOUT", "-5s", "UPSTREAM_TIMEOUT"},
		{"PROBE_INTERVAL_MINUTES", "-1", "PROBE_INTERVAL_MINUTES"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			cleanupEnv()
			defer cleanupEnv()
			_ = os.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func cleanupEnv() {
	for _, key := range GetEnvVars() {
		_ = os.Unsetenv(key)
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"production", EnvProduction, false},
		{"test", EnvTest, false},
		{"TEST", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.input, err)
			}
			if env != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, env)
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	for env, expected := range map[Environment]string{
		EnvDevelopment: "dev",
		EnvStaging:     "staging",
		EnvProduction:  "prod",
		EnvTest:        "test",
	} {
		if got := env.String(); got != expected {
			t.Errorf("Expected %s, got %s", expected, got)
		}
	}
}

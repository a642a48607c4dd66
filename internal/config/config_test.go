package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should create default config when file does not exist", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)

		require.NoError(t, err)
		assert.Equal(t, defaultPort, cfg.Port)
		assert.Equal(t, defaultLang, cfg.Language)
		assert.Equal(t, defaultTriggerLabel, cfg.TriggerLabel)
		assert.Equal(t, defaultModel, cfg.Model)
		assert.FileExists(t, filepath.Join(tmpDir, ".truss-review", "config.json"))
	})

	t.Run("Should load existing config and apply defaults to missing fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")
		raw := map[string]interface{}{
			"language":      "es",
			"trigger_label": "roast-me",
			"profiles": map[string]string{
				"alice": "le teme a los punteros",
			},
		}
		data, err := json.Marshal(raw)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(configPath, data, 0644))

		cfg, err := LoadConfig(configPath)

		require.NoError(t, err)
		assert.Equal(t, "es", cfg.Language)
		assert.Equal(t, "roast-me", cfg.TriggerLabel)
		assert.Equal(t, defaultPort, cfg.Port)
		assert.Equal(t, defaultMaxDiffChars, cfg.MaxDiffChars)
		assert.Equal(t, "le teme a los punteros", cfg.Profiles["alice"])
	})

	t.Run("Should preserve a negative max diff chars to disable truncation", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"max_diff_chars": -1}`), 0644))

		cfg, err := LoadConfig(configPath)

		require.NoError(t, err)
		assert.Equal(t, -1, cfg.MaxDiffChars)
	})

	t.Run("Should reject invalid model", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"model": "gpt-9000"}`), 0644))

		_, err := LoadConfig(configPath)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gpt-9000")
	})

	t.Run("Should reject malformed allowed repos", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"allowed_repos": ["sin-barra"]}`), 0644))

		_, err := LoadConfig(configPath)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sin-barra")
	})
}

func TestLoadSecrets(t *testing.T) {
	t.Run("Should fail fast when a required secret is missing", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GIPHY_API_KEY", "g")
		t.Setenv("GITHUB_TOKEN", "gh")

		cfg := &Config{}
		err := LoadSecrets(cfg)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("Should load all secrets from the environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gm")
		t.Setenv("GIPHY_API_KEY", "gp")
		t.Setenv("GITHUB_TOKEN", "gh")
		t.Setenv("GITHUB_WEBHOOK_SECRET", "hmac")

		cfg := &Config{}
		err := LoadSecrets(cfg)

		require.NoError(t, err)
		assert.Equal(t, "gm", cfg.GeminiAPIKey)
		assert.Equal(t, "gp", cfg.GiphyAPIKey)
		assert.Equal(t, "gh", cfg.GitHubToken)
		assert.Equal(t, "hmac", cfg.WebhookSecret)
	})

	t.Run("Should treat webhook secret as optional", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gm")
		t.Setenv("GIPHY_API_KEY", "gp")
		t.Setenv("GITHUB_TOKEN", "gh")
		t.Setenv("GITHUB_WEBHOOK_SECRET", "")

		cfg := &Config{}
		err := LoadSecrets(cfg)

		require.NoError(t, err)
		assert.Empty(t, cfg.WebhookSecret)
	})
}

func TestLoadStyleGuide(t *testing.T) {
	t.Run("Should return empty string when no path is configured", func(t *testing.T) {
		guide, err := LoadStyleGuide(&Config{})

		require.NoError(t, err)
		assert.Empty(t, guide)
	})

	t.Run("Should read the configured file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "style.md")
		require.NoError(t, os.WriteFile(path, []byte("# Guía\nnada de panic()"), 0644))

		guide, err := LoadStyleGuide(&Config{StyleGuidePath: path})

		require.NoError(t, err)
		assert.Contains(t, guide, "nada de panic()")
	})

	t.Run("Should fail when the configured path is unreadable", func(t *testing.T) {
		_, err := LoadStyleGuide(&Config{StyleGuidePath: "/no/existe.md"})

		assert.Error(t, err)
	})
}

func TestRepoAllowed(t *testing.T) {
	t.Run("Should allow everything with empty allowlist", func(t *testing.T) {
		cfg := &Config{}
		assert.True(t, cfg.RepoAllowed("cualquier/repo"))
	})

	t.Run("Should match case-insensitively", func(t *testing.T) {
		cfg := &Config{AllowedRepos: []string{"Truss/Roaster"}}
		assert.True(t, cfg.RepoAllowed("truss/roaster"))
		assert.False(t, cfg.RepoAllowed("otro/repo"))
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("Should not serialize secrets", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "config.json")
		cfg := &Config{PathFile: path, GeminiAPIKey: "super-secreto"}
		applyDefaults(cfg)

		require.NoError(t, SaveConfig(cfg))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "super-secreto")
	})
}

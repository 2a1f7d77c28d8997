package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadConfig_Valid tests loading a well-formed config file
func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `{"port": 9090, "database_url": "postgres://localhost/hireio", "shortlist_limit": 10}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/hireio", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.ShortlistLimit)
}

// TestLoadConfig_MissingFile tests loading a non-existent file
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

// TestLoadConfig_InvalidJSON tests loading malformed JSON
func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestLoadConfig_EmptyPath tests loading with an empty path
func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

// TestApplyDefaults tests zero fields get filled
func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 25, cfg.ShortlistLimit)
}

// TestApplyDefaults_PreservesSetValues tests explicit values survive
func TestApplyDefaults_PreservesSetValues(t *testing.T) {
	cfg := &Config{Port: 3000, ShortlistLimit: 5}
	cfg.ApplyDefaults()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 5, cfg.ShortlistLimit)
}

// TestFromEnv tests environment variables override file values
func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/hireio")
	t.Setenv("PORT", "4000")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{Port: 8080, DatabaseURL: "postgres://file/hireio"}
	cfg.FromEnv()

	assert.Equal(t, "postgres://env/hireio", cfg.DatabaseURL)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "env-key", cfg.APIKey)
}

// TestFromEnv_InvalidPort tests a garbage PORT value is ignored
func TestFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := &Config{Port: 8080}
	cfg.FromEnv()
	assert.Equal(t, 8080, cfg.Port)
}

// TestValidate tests validation rules
func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8080, DatabaseURL: "postgres://x", ShortlistLimit: 25}, false},
		{"missing database url", Config{Port: 8080, ShortlistLimit: 25}, true},
		{"port too low", Config{Port: 0, DatabaseURL: "postgres://x", ShortlistLimit: 25}, true},
		{"port too high", Config{Port: 70000, DatabaseURL: "postgres://x", ShortlistLimit: 25}, true},
		{"zero shortlist limit", Config{Port: 8080, DatabaseURL: "postgres://x"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidate_MissingDictionary tests a dangling dictionary path fails
func TestValidate_MissingDictionary(t *testing.T) {
	cfg := Config{
		Port:           8080,
		DatabaseURL:    "postgres://x",
		ShortlistLimit: 25,
		DictionaryPath: filepath.Join(t.TempDir(), "missing.json"),
	}
	assert.Error(t, cfg.Validate())
}

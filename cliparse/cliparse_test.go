// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// noEnv points the dotenv loader at a file that does not exist
func noEnv(t *testing.T) string {
	return "-env=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("VOTE_TIME", "90m")

	cfg, err := ParseFlags([]string{noEnv(t)})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.VoteTime != 90*time.Minute {
		t.Errorf("expected 90m vote time, got %s", cfg.VoteTime)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("VOTE_TIME", "1h")

	cfg, err := ParseFlags([]string{noEnv(t), "-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-vote-time", "24h"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.VoteTime != 24*time.Hour {
		t.Errorf("CLI should override env: expected 24h, got %s", cfg.VoteTime)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("VOTE_TIME", "")
	t.Setenv("SEED_FILE", "")

	cfg, err := ParseFlags([]string{noEnv(t), "-admin-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "file:dotvote.db" {
		t.Errorf("expected default sqlite database, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.VoteTime != DefaultVoteTime {
		t.Errorf("expected default vote time, got %s", cfg.VoteTime)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Setenv("ADMIN_KEY_SALT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("VOTE_TIME", "")

	tests := []struct {
		name string
		args []string
	}{
		{"missing salt", []string{}},
		{"postgres without url", []string{"-admin-salt", "s", "-t", "postgres"}},
		{"bad vote time", []string{"-admin-salt", "s", "-vote-time", "soon"}},
		{"negative vote time", []string{"-admin-salt", "s", "-vote-time", "-1h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(append([]string{noEnv(t)}, tt.args...)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_DotEnvFile(t *testing.T) {
	t.Setenv("ADMIN_KEY_SALT", "")
	t.Setenv("SEED_FILE", "")
	// Registered so t.Setenv restores them after godotenv sets them
	t.Setenv("PORT", "")
	os.Unsetenv("ADMIN_KEY_SALT")
	os.Unsetenv("SEED_FILE")
	os.Unsetenv("PORT")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "ADMIN_KEY_SALT=from-file\nSEED_FILE=votes.yaml\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env", path, "-p", "7100"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AdminKeySalt != "from-file" {
		t.Errorf("expected salt from dotenv file, got %q", cfg.AdminKeySalt)
	}
	if cfg.SeedFile != "votes.yaml" {
		t.Errorf("expected seed file from dotenv file, got %q", cfg.SeedFile)
	}
	if cfg.Port != 7100 {
		t.Errorf("CLI should override dotenv: expected 7100, got %d", cfg.Port)
	}
}

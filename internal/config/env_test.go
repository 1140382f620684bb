package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("WORDBLAST_TEST_KEY", "value")
	if got := GetEnv("WORDBLAST_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want value", got)
	}
	if got := GetEnv("WORDBLAST_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing = %q, want fallback", got)
	}

	t.Setenv("WORDBLAST_TEST_EMPTY", "")
	if got := GetEnv("WORDBLAST_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("set-but-empty should win over fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("WORDBLAST_TEST_INT", "42")
	t.Setenv("WORDBLAST_TEST_BAD", "forty")
	if got := GetEnvInt("WORDBLAST_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("WORDBLAST_TEST_BAD", 7); got != 7 {
		t.Errorf("unparsable should fall back, got %d", got)
	}
	if got := GetEnvInt("WORDBLAST_TEST_NOPE", 7); got != 7 {
		t.Errorf("missing should fall back, got %d", got)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "WORDBLAST_DIFFICULTY=hard\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// Register cleanup for variables godotenv will set.
	t.Setenv("WORDBLAST_DIFFICULTY", "")
	os.Unsetenv("WORDBLAST_DIFFICULTY")
	t.Setenv("LOG_LEVEL", "warn")

	s := Load()
	if s.Difficulty != "hard" {
		t.Errorf("Difficulty = %q, want hard from .env", s.Difficulty)
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, environment must win over .env", s.LogLevel)
	}
	if s.AchievementsDB != "data/wordblast.db" {
		t.Errorf("AchievementsDB default = %q", s.AchievementsDB)
	}
}

// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integers. Unparsable values yield fallback.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// Settings are the runtime options shared by the binaries.
type Settings struct {
	Difficulty     string // easy, medium or hard
	LogLevel       string
	LogFile        string // empty: binary-specific default
	AchievementsDB string // empty: keep achievements in memory
	VocabFile      string // empty: embedded word bank
}

// Load reads a .env file from the working directory if there is one
// (missing files are fine) and then collects Settings from the environment.
// Variables already set in the environment win over .env entries.
func Load() Settings {
	_ = godotenv.Load()
	return Settings{
		Difficulty:     GetEnv("WORDBLAST_DIFFICULTY", "medium"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		LogFile:        GetEnv("LOG_FILE", ""),
		AchievementsDB: GetEnv("ACHIEVEMENTS_DB", "data/wordblast.db"),
		VocabFile:      GetEnv("VOCAB_FILE", ""),
	}
}

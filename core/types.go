package core

import (
	"encoding/json"
	"time"
)

// Difficulty identifies the game mode a score was achieved on.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	// MaxScore is the highest score a single game can produce.
	MaxScore = 10000
	// MaxUsernameLen bounds the accepted username length.
	MaxUsernameLen = 20
	// MaxEntries caps the persisted collection; entries beyond the cap are
	// discarded on write.
	MaxEntries = 100
	// LeaderboardSize is how many entries a leaderboard read returns.
	LeaderboardSize = 20
)

// ScoreEntry is one validated game result. Entries are immutable once
// created; rank is computed from position, never stored.
type ScoreEntry struct {
	Username   string     `json:"username"`
	Score      int        `json:"score"`
	Difficulty Difficulty `json:"difficulty"`
	Timestamp  string     `json:"timestamp"`
}

// Submission is the raw wire payload of a score submission. Score is a
// json.Number so both 500 and "500" arrive intact and non-integers can be
// rejected during validation.
type Submission struct {
	Username   string      `json:"username"`
	Score      json.Number `json:"score"`
	Difficulty string      `json:"difficulty"`
	Timestamp  string      `json:"timestamp,omitempty"`
}

// IsEmpty reports whether the submission carries no data at all, which the
// API treats the same as an absent body.
func (s Submission) IsEmpty() bool {
	return s.Username == "" && s.Score == "" && s.Difficulty == "" && s.Timestamp == ""
}

// Now returns the server-assigned timestamp for entries submitted without one.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// forbiddenWords may not appear anywhere in a username, case-insensitively.
var forbiddenWords = []string{"admin", "root", "test", "null", "undefined", "bot", "system"}

// ValidateUsername checks length, charset, and the denylist, in that order.
// The returned error names the specific rule violated.
func ValidateUsername(username string) error {
	if len(username) < 1 || len(username) > MaxUsernameLen {
		return fmt.Errorf("%w: must be 1-%d characters long", ErrInvalidUsername, MaxUsernameLen)
	}
	for _, r := range username {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return fmt.Errorf("%w: only letters, numbers, underscores, and hyphens are allowed", ErrInvalidUsername)
	}
	lower := strings.ToLower(username)
	for _, word := range forbiddenWords {
		if strings.Contains(lower, word) {
			return fmt.Errorf("%w: may not contain %q", ErrInvalidUsername, word)
		}
	}
	return nil
}

// ParseSubmission validates a raw submission and builds the entry to insert.
// Validation is fail-fast: the first violated rule wins. A submission without
// a timestamp gets the current UTC time.
func ParseSubmission(sub Submission) (ScoreEntry, error) {
	if sub.IsEmpty() {
		return ScoreEntry{}, ErrInvalidRequest
	}
	// A missing username trips the length rule, not ErrMissingField.
	if err := ValidateUsername(sub.Username); err != nil {
		return ScoreEntry{}, err
	}
	if sub.Score == "" {
		return ScoreEntry{}, fmt.Errorf("%w: score", ErrMissingField)
	}
	if sub.Difficulty == "" {
		return ScoreEntry{}, fmt.Errorf("%w: difficulty", ErrMissingField)
	}
	score, err := strconv.Atoi(sub.Score.String())
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("%w: must be a valid integer", ErrInvalidScore)
	}
	if score < 0 || score > MaxScore {
		return ScoreEntry{}, fmt.Errorf("%w: must be between 0 and %d", ErrInvalidScore, MaxScore)
	}
	difficulty := Difficulty(sub.Difficulty)
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ScoreEntry{}, fmt.Errorf("%w: must be one of easy, medium, hard", ErrInvalidDifficulty)
	}
	timestamp := sub.Timestamp
	if timestamp == "" {
		timestamp = Now()
	}
	return ScoreEntry{
		Username:   sub.Username,
		Score:      score,
		Difficulty: difficulty,
		Timestamp:  timestamp,
	}, nil
}

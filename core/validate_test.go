package core

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{Username: "ace", Score: json.Number("500"), Difficulty: "hard"}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  string
	}{
		{"single char", "a", ""},
		{"max length", strings.Repeat("a", 20), ""},
		{"dashes and underscores", "player_one-2", ""},
		{"empty", "", "1-20 characters"},
		{"too long", strings.Repeat("a", 21), "1-20 characters"},
		{"space", "no spaces", "letters, numbers"},
		{"symbols", "p@yer", "letters, numbers"},
		{"denylist admin", "admin", `"admin"`},
		{"denylist embedded", "xXadminXx", `"admin"`},
		{"denylist mixed case", "AdMiN1", `"admin"`},
		{"denylist root", "groot", `"root"`},
		{"denylist bot", "robot7", `"bot"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUsername)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseSubmissionValid(t *testing.T) {
	entry, err := ParseSubmission(validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "ace", entry.Username)
	assert.Equal(t, 500, entry.Score)
	assert.Equal(t, DifficultyHard, entry.Difficulty)
	assert.NotEmpty(t, entry.Timestamp, "server should assign a timestamp")
}

func TestParseSubmissionKeepsCallerTimestamp(t *testing.T) {
	sub := validSubmission()
	sub.Timestamp = "2026-01-02T03:04:05Z"
	entry, err := ParseSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02T03:04:05Z", entry.Timestamp)
}

func TestParseSubmissionScoreBounds(t *testing.T) {
	for _, score := range []string{"0", "10000"} {
		sub := validSubmission()
		sub.Score = json.Number(score)
		_, err := ParseSubmission(sub)
		assert.NoError(t, err, "score %s should be accepted", score)
	}
	for _, score := range []string{"-1", "10001"} {
		sub := validSubmission()
		sub.Score = json.Number(score)
		_, err := ParseSubmission(sub)
		assert.ErrorIs(t, err, ErrInvalidScore, "score %s should be rejected", score)
	}
}

func TestParseSubmissionNonIntegerScore(t *testing.T) {
	sub := validSubmission()
	sub.Score = json.Number("500.5")
	_, err := ParseSubmission(sub)
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestParseSubmissionDifficulty(t *testing.T) {
	for _, d := range []string{"easy", "medium", "hard"} {
		sub := validSubmission()
		sub.Difficulty = d
		_, err := ParseSubmission(sub)
		assert.NoError(t, err, "difficulty %s should be accepted", d)
	}
	sub := validSubmission()
	sub.Difficulty = "impossible"
	_, err := ParseSubmission(sub)
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestParseSubmissionMissingFields(t *testing.T) {
	sub := validSubmission()
	sub.Score = ""
	_, err := ParseSubmission(sub)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "score")

	sub = validSubmission()
	sub.Difficulty = ""
	_, err = ParseSubmission(sub)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "difficulty")

	// A missing username reads as a length violation.
	sub = validSubmission()
	sub.Username = ""
	_, err = ParseSubmission(sub)
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestParseSubmissionEmptyPayload(t *testing.T) {
	_, err := ParseSubmission(Submission{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestParseSubmissionInvalidUsernameWinsOverScore(t *testing.T) {
	// Fail-fast ordering: the username rule fires before the score rule.
	sub := Submission{Username: "admin", Score: json.Number("99999"), Difficulty: "hard"}
	_, err := ParseSubmission(sub)
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestHTTPStatusFromError(t *testing.T) {
	assert.Equal(t, 200, HTTPStatusFromError(nil))
	assert.Equal(t, 400, HTTPStatusFromError(ErrInvalidUsername))
	assert.Equal(t, 400, HTTPStatusFromError(ErrInvalidRequest))
	assert.Equal(t, 500, HTTPStatusFromError(ErrStorage))
}

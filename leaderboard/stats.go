package leaderboard

import (
	"math"

	"glidescore/core"
)

// Stats is the aggregate view of the whole score collection.
type Stats struct {
	TotalGames             int                     `json:"total_games"`
	AverageScore           float64                 `json:"average_score"`
	HighestScore           int                     `json:"highest_score"`
	DifficultyDistribution map[core.Difficulty]int `json:"difficulty_distribution"`
}

// ComputeStats folds the collection into its aggregate. An empty collection
// yields zeros and an empty distribution.
func ComputeStats(entries []core.ScoreEntry) Stats {
	stats := Stats{DifficultyDistribution: map[core.Difficulty]int{}}
	if len(entries) == 0 {
		return stats
	}
	sum := 0
	for _, e := range entries {
		sum += e.Score
		if e.Score > stats.HighestScore {
			stats.HighestScore = e.Score
		}
		stats.DifficultyDistribution[e.Difficulty]++
	}
	stats.TotalGames = len(entries)
	stats.AverageScore = math.Round(float64(sum)/float64(len(entries))*100) / 100
	return stats
}

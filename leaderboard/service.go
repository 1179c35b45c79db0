package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"glidescore/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName identifies this backend in health responses and telemetry.
const ServiceName = "glidescore-backend"

// Store persists the score collection. Load treats missing or corrupt state
// as an empty collection; only genuine I/O faults return an error.
type Store interface {
	Load(ctx context.Context) ([]core.ScoreEntry, error)
	Replace(ctx context.Context, entries []core.ScoreEntry) error
	Probe(ctx context.Context) error
}

// Service validates submissions, maintains the ranked collection, and
// answers read queries. Collaborators are injected; there is no package
// state.
type Service struct {
	store  Store
	logger *slog.Logger
	tracer trace.Tracer

	// mu serializes the read-modify-write of the collection so concurrent
	// submissions cannot lose updates.
	mu sync.Mutex
}

func New(store Store, logger *slog.Logger) *Service {
	if store == nil {
		panic("leaderboard.New requires a non-nil store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger,
		tracer: otel.Tracer("glidescore/leaderboard"),
	}
}

// Submit validates a submission, inserts the entry, persists the truncated
// collection, and returns the entry's 1-based rank. An entry whose score
// falls below the top-100 cutoff on its own write is still accepted; its
// rank is reported as core.MaxEntries+1.
func (s *Service) Submit(ctx context.Context, sub core.Submission) (int, error) {
	ctx, span := s.tracer.Start(ctx, "submit_score")
	defer span.End()

	entry, err := core.ParseSubmission(sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		s.logger.Warn("score submission rejected", "username", sub.Username, "error", err)
		return 0, err
	}
	span.SetAttributes(
		attribute.String("username", entry.Username),
		attribute.Int("score", entry.Score),
		attribute.String("difficulty", string(entry.Difficulty)),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return 0, err
	}

	// The stable sort keeps an appended entry behind every existing entry
	// with an equal or higher score, so its rank is known before sorting.
	rank := 1
	for _, e := range entries {
		if e.Score >= entry.Score {
			rank++
		}
	}
	if rank > core.MaxEntries {
		rank = core.MaxEntries + 1
	}

	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > core.MaxEntries {
		entries = entries[:core.MaxEntries]
	}

	if err := s.store.Replace(ctx, entries); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		s.logger.Error("failed to save scores", "error", err, "count", len(entries))
		return 0, fmt.Errorf("%w: save scores: %v", core.ErrStorage, err)
	}

	span.SetAttributes(attribute.Int("rank", rank))
	s.logger.Info("score submitted",
		"username", entry.Username,
		"score", entry.Score,
		"difficulty", entry.Difficulty,
		"rank", rank)
	return rank, nil
}

// Top returns the leaderboard: the first core.LeaderboardSize entries of the
// persisted collection. Missing storage reads as an empty board.
func (s *Service) Top(ctx context.Context) ([]core.ScoreEntry, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard_access")
	defer span.End()

	entries, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}
	if len(entries) > core.LeaderboardSize {
		entries = entries[:core.LeaderboardSize]
	}
	if entries == nil {
		entries = []core.ScoreEntry{}
	}
	span.SetAttributes(attribute.Int("entries_count", len(entries)))
	s.logger.Info("leaderboard accessed", "entries", len(entries))
	return entries, nil
}

// Stats aggregates over the entire persisted collection, not just the
// visible leaderboard.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	ctx, span := s.tracer.Start(ctx, "game_stats")
	defer span.End()

	entries, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return Stats{}, err
	}
	stats := ComputeStats(entries)
	span.SetAttributes(
		attribute.Int("total_games", stats.TotalGames),
		attribute.Int("highest_score", stats.HighestScore),
	)
	return stats, nil
}

func (s *Service) load(ctx context.Context) ([]core.ScoreEntry, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load scores", "error", err)
		return nil, fmt.Errorf("%w: load scores: %v", core.ErrStorage, err)
	}
	return entries, nil
}

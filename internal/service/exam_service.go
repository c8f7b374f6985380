package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-engine/internal/config"
	"github.com/stemsi/exstem-engine/internal/exam"
	"github.com/stemsi/exstem-engine/internal/repository"
	"github.com/stemsi/exstem-engine/internal/validator"
	"github.com/stemsi/exstem-engine/internal/worker"
)

// ErrSourceUnavailable is returned when the configured question source needs
// a connection that was not provided.
var ErrSourceUnavailable = errors.New("question source unavailable")

// NewQuestionSource picks the content provider named by cfg.QuestionSource and
// puts the Redis cache in front of it when rdb is non-nil.
func NewQuestionSource(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) (repository.QuestionSource, error) {
	var src repository.QuestionSource

	switch cfg.QuestionSource {
	case config.SourceFile:
		src = repository.NewQuestionFileRepository("")
	case config.SourcePostgres:
		if pool == nil {
			return nil, fmt.Errorf("%s: %w", cfg.QuestionSource, ErrSourceUnavailable)
		}
		src = repository.NewQuestionRepository(pool)
	default:
		return nil, fmt.Errorf("unknown question source %q", cfg.QuestionSource)
	}

	if rdb != nil {
		src = repository.NewQuestionCacheRepository(src, rdb, cfg.QBankCacheTTL, log)
	}
	return src, nil
}

// ExamService turns a question bank reference into a ready-to-start session.
type ExamService struct {
	source repository.QuestionSource
	cfg    *config.Config
	log    zerolog.Logger
	seed   func() int64
}

// NewExamService creates a new ExamService.
func NewExamService(source repository.QuestionSource, cfg *config.Config, log zerolog.Logger) *ExamService {
	return &ExamService{
		source: source,
		cfg:    cfg,
		log:    log.With().Str("component", "exam_service").Logger(),
		seed:   func() int64 { return time.Now().UnixNano() },
	}
}

// LoadBank fetches and validates a bank. Malformed records are skipped and
// logged; the load fails only when no valid question remains.
func (s *ExamService) LoadBank(ctx context.Context, ref string) (*exam.Bank, error) {
	set, err := s.source.GetQuestionSet(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}

	bank, warnings, err := exam.NewBank(*set, validator.ValidateQuestion)
	for _, w := range warnings {
		s.log.Warn().
			Err(w).
			Str("qbank_id", set.ID).
			Int("index", w.Index).
			Msg("Question skipped")
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("qbank_id", bank.ID()).
		Int("questions", bank.Len()).
		Int("skipped", len(warnings)).
		Msg("Question bank loaded")
	return bank, nil
}

// Prepare loads the bank behind ref and builds a NOT_STARTED session over
// it with a countdown ticking at the configured interval. The bank's own
// duration wins over EXAM_DURATION_SECONDS. opts are applied last.
func (s *ExamService) Prepare(ctx context.Context, ref string, opts ...exam.SessionOption) (*exam.Session, error) {
	bank, err := s.LoadBank(ctx, ref)
	if err != nil {
		return nil, err
	}

	if s.cfg.ShuffleOptions {
		bank = bank.ShuffleOptions(rand.New(rand.NewSource(s.seed())))
	}

	limit := bank.DurationSeconds()
	if limit <= 0 {
		limit = int(s.cfg.ExamDuration / time.Second)
	}

	base := []exam.SessionOption{
		exam.WithLogger(s.log),
		exam.WithTimer(worker.NewCountdown(s.cfg.TickInterval, s.log)),
	}
	session, err := exam.NewSession(bank, limit, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("session_id", session.ID()).
		Int("limit_seconds", limit).
		Bool("shuffled", s.cfg.ShuffleOptions).
		Msg("Session prepared")
	return session, nil
}

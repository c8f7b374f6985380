package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-engine/internal/config"
	"github.com/stemsi/exstem-engine/internal/model"
)

// QuestionCacheRepository is a Redis read-through cache in front of another
// QuestionSource. Redis failures degrade to the origin; they never fail a load.
type QuestionCacheRepository struct {
	origin QuestionSource
	rdb    *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewQuestionCacheRepository creates a new QuestionCacheRepository.
// A non-positive ttl caches without expiry.
func NewQuestionCacheRepository(origin QuestionSource, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *QuestionCacheRepository {
	if ttl < 0 {
		ttl = 0
	}
	return &QuestionCacheRepository{
		origin: origin,
		rdb:    rdb,
		ttl:    ttl,
		log:    log.With().Str("component", "question_cache").Logger(),
	}
}

// GetQuestionSet serves the cached payload for ref, loading it from the
// origin and writing it back on a miss.
func (r *QuestionCacheRepository) GetQuestionSet(ctx context.Context, ref string) (*model.QuestionSet, error) {
	key := config.CacheKey.QBankPayloadKey(ref)

	data, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var set model.QuestionSet
		if uerr := json.Unmarshal(data, &set); uerr == nil {
			return &set, nil
		}
		r.log.Warn().Str("key", key).Msg("Corrupt cache entry, reloading")
	case errors.Is(err, redis.Nil):
		// Miss.
	default:
		r.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, using origin")
	}

	set, err := r.origin.GetQuestionSet(ctx, ref)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("marshal question set: %w", err)
	}
	if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	} else {
		r.log.Debug().
			Str("qbank_id", ref).
			Int("questions", len(set.Questions)).
			Msg("Cache warmed")
	}
	return set, nil
}

// Invalidate drops the cached payload for ref.
func (r *QuestionCacheRepository) Invalidate(ctx context.Context, ref string) error {
	if err := r.rdb.Del(ctx, config.CacheKey.QBankPayloadKey(ref)).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", ref, err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/exstem-engine/internal/model"
)

// QuestionRepository handles question bank data access in PostgreSQL.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// GetBank retrieves a question bank row by its UUID.
func (r *QuestionRepository) GetBank(ctx context.Context, id uuid.UUID) (*model.QuestionBankRecord, error) {
	b := &model.QuestionBankRecord{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, duration_seconds, created_at, updated_at
		 FROM question_banks WHERE id = $1`, id,
	).Scan(&b.ID, &b.Title, &b.DurationSeconds, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("question bank %s: %w", id, ErrQuestionSetNotFound)
		}
		return nil, err
	}
	return b, nil
}

// ListByBank retrieves all questions of a bank, ordered by order_num.
func (r *QuestionRepository) ListByBank(ctx context.Context, bankID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_key, prompt, options, correct_option_id, explanation, difficulty
		 FROM questions WHERE bank_id = $1
		 ORDER BY order_num`, bankID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Options, &q.CorrectOptionID, &q.Explanation, &q.Difficulty); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetQuestionSet loads a whole bank. ref is the bank UUID.
func (r *QuestionRepository) GetQuestionSet(ctx context.Context, ref string) (*model.QuestionSet, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("question bank %q: %w", ref, ErrQuestionSetNotFound)
	}

	bank, err := r.GetBank(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := r.ListByBank(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return &model.QuestionSet{
		ID:              bank.ID.String(),
		Title:           bank.Title,
		DurationSeconds: bank.DurationSeconds,
		Questions:       questions,
	}, nil
}

// ReplaceAll upserts the bank row and replaces its questions in one
// transaction. A zero bank ID is assigned a new UUID.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, bank *model.QuestionBankRecord, questions []model.Question) error {
	if bank.ID == uuid.Nil {
		bank.ID = uuid.New()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO question_banks (id, title, duration_seconds)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		 SET title = EXCLUDED.title, duration_seconds = EXCLUDED.duration_seconds, updated_at = NOW()
		 RETURNING created_at, updated_at`,
		bank.ID, bank.Title, bank.DurationSeconds,
	).Scan(&bank.CreatedAt, &bank.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert bank: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE bank_id = $1`, bank.ID); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"questions"},
		[]string{"bank_id", "question_key", "order_num", "prompt", "options", "correct_option_id", "explanation", "difficulty"},
		pgx.CopyFromSlice(len(questions), func(i int) ([]any, error) {
			q := questions[i]
			opts, err := json.Marshal(q.Options)
			if err != nil {
				return nil, err
			}
			return []any{bank.ID, q.ID, i + 1, q.Prompt, opts, q.CorrectOptionID, q.Explanation, string(q.Difficulty)}, nil
		}),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: duplicate question id in bank", ErrInvalidQuestionSet)
		}
		return fmt.Errorf("copy questions: %w", err)
	}

	return tx.Commit(ctx)
}

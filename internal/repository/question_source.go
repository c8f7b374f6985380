package repository

import (
	"context"
	"errors"

	"github.com/stemsi/exstem-engine/internal/model"
)

var (
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrInvalidQuestionSet  = errors.New("invalid question set")
)

// QuestionSource is a content provider: it resolves a bank reference to the
// raw question set the engine builds a bank from.
type QuestionSource interface {
	GetQuestionSet(ctx context.Context, ref string) (*model.QuestionSet, error)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionSet is the raw payload a content provider hands to the engine:
// an ordered list of questions plus the bank's presentation metadata.
type QuestionSet struct {
	ID              string     `json:"id" yaml:"id"`
	Title           string     `json:"title" yaml:"title"`
	DurationSeconds int        `json:"duration_seconds" yaml:"duration_seconds"`
	Questions       []Question `json:"questions" yaml:"questions"`
}

// QuestionBankRecord is a question bank row in PostgreSQL.
type QuestionBankRecord struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

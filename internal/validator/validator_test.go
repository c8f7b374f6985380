package validator

import (
	"testing"

	"github.com/stemsi/exstem-engine/internal/model"
)

func validQuestion() model.Question {
	return model.Question{
		ID:     "q1",
		Prompt: "2 + 2 = ?",
		Options: []model.Option{
			{ID: "A", Label: "A", Text: "3"},
			{ID: "B", Label: "B", Text: "4"},
		},
		CorrectOptionID: "B",
		Explanation:     "Basic addition.",
		Difficulty:      model.DifficultyEasy,
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(q *model.Question)
		wantField string
	}{
		{
			name:   "valid record",
			mutate: func(q *model.Question) {},
		},
		{
			name:      "correct option not among options",
			mutate:    func(q *model.Question) { q.CorrectOptionID = "Z" },
			wantField: "correct_option_id",
		},
		{
			name:      "missing correct option",
			mutate:    func(q *model.Question) { q.CorrectOptionID = "" },
			wantField: "correct_option_id",
		},
		{
			name:      "missing prompt",
			mutate:    func(q *model.Question) { q.Prompt = "" },
			wantField: "prompt",
		},
		{
			name:      "single option",
			mutate:    func(q *model.Question) { q.Options = q.Options[:1]; q.CorrectOptionID = "A" },
			wantField: "options",
		},
		{
			name:      "duplicate option ids",
			mutate:    func(q *model.Question) { q.Options[1].ID = "A"; q.CorrectOptionID = "A" },
			wantField: "options",
		},
		{
			name:      "empty option text",
			mutate:    func(q *model.Question) { q.Options[1].Text = "" },
			wantField: "options[1].text",
		},
		{
			name:      "unknown difficulty",
			mutate:    func(q *model.Question) { q.Difficulty = "brutal" },
			wantField: "difficulty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)

			fields := ValidateQuestion(q)

			if tt.wantField == "" {
				if fields != nil {
					t.Fatalf("expected no errors, got %v", fields)
				}
				return
			}
			msg, ok := fields[tt.wantField]
			if !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, fields)
			}
			if msg == "" {
				t.Fatalf("expected translated message for %q", tt.wantField)
			}
		})
	}
}

func TestSetupIsIdempotent(t *testing.T) {
	Setup()
	first := validate
	Setup()
	if validate != first {
		t.Fatalf("Setup rebuilt the validator")
	}
}

package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `title: Sample
duration_seconds: 90
questions:
  - id: q1
    prompt: What is 2 + 2?
    options:
      - {id: A, label: A, text: "3"}
      - {id: B, label: B, text: "4"}
    correct_option_id: B
    explanation: Basic addition.
    difficulty: easy
  - id: q2
    prompt: Capital of Indonesia?
    options:
      - {id: A, label: A, text: Jakarta}
      - {id: B, label: B, text: Bandung}
    correct_option_id: A
`

const sampleJSON = `{
  "id": "json-bank",
  "title": "JSON",
  "duration_seconds": 30,
  "questions": [
    {"id": "q1", "prompt": "p", "options": [{"id": "A", "label": "A", "text": "a"}, {"id": "B", "label": "B", "text": "b"}], "correct_option_id": "A"}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestQuestionFileRepository(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.yaml", sampleYAML)
	writeFile(t, dir, "bank.json", sampleJSON)
	writeFile(t, dir, "notes.txt", sampleYAML)
	writeFile(t, dir, "empty.yml", "title: nothing\n")
	writeFile(t, dir, "broken.json", `{"questions": [`)

	repo := NewQuestionFileRepository(dir)
	ctx := context.Background()

	t.Run("yaml", func(t *testing.T) {
		set, err := repo.GetQuestionSet(ctx, "math.yaml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if set.ID != "math" || set.Title != "Sample" || set.DurationSeconds != 90 {
			t.Fatalf("metadata = %+v", set)
		}
		if len(set.Questions) != 2 || set.Questions[0].CorrectOptionID != "B" || set.Questions[0].Difficulty != "easy" {
			t.Fatalf("questions = %+v", set.Questions)
		}
		if set.Questions[1].Options[0].Text != "Jakarta" {
			t.Fatalf("options not decoded: %+v", set.Questions[1].Options)
		}
	})

	t.Run("json keeps its own id", func(t *testing.T) {
		set, err := repo.GetQuestionSet(ctx, filepath.Join(dir, "bank.json"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if set.ID != "json-bank" || len(set.Questions) != 1 {
			t.Fatalf("set = %+v", set)
		}
	})

	tests := []struct {
		name string
		ref  string
		want error
	}{
		{"missing file", "nope.yaml", ErrQuestionSetNotFound},
		{"unsupported extension", "notes.txt", ErrInvalidQuestionSet},
		{"no questions", "empty.yml", ErrInvalidQuestionSet},
		{"malformed json", "broken.json", ErrInvalidQuestionSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.GetQuestionSet(ctx, tt.ref); !errors.Is(err, tt.want) {
				t.Fatalf("GetQuestionSet(%q) = %v want %v", tt.ref, err, tt.want)
			}
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := repo.GetQuestionSet(cctx, "math.yaml"); !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v want context.Canceled", err)
		}
	})
}

func TestDecodeQuestionSet_RejectsUnknownJSONFields(t *testing.T) {
	_, err := DecodeQuestionSet(strings.NewReader(`{"questions": [], "surprise": 1}`), ".json")
	if !errors.Is(err, ErrInvalidQuestionSet) {
		t.Fatalf("err = %v want ErrInvalidQuestionSet", err)
	}
}

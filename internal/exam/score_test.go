package exam

import (
	"errors"
	"testing"

	"github.com/stemsi/exstem-engine/internal/model"
)

func abcQuestions() []model.Question {
	mk := func(id, correct string) model.Question {
		return model.Question{
			ID:     id,
			Prompt: "prompt " + id,
			Options: []model.Option{
				{ID: "A", Label: "A", Text: "alpha"},
				{ID: "B", Label: "B", Text: "bravo"},
				{ID: "C", Label: "C", Text: "charlie"},
			},
			CorrectOptionID: correct,
			Explanation:     "because " + correct,
		}
	}
	return []model.Question{mk("q0", "A"), mk("q1", "B"), mk("q2", "C")}
}

func slots(ids ...string) []model.AnswerSlot {
	out := make([]model.AnswerSlot, len(ids))
	for i, id := range ids {
		out[i] = model.AnswerSlot{OptionID: id}
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		slots        []model.AnswerSlot
		want         model.Result
		wantWarnings int
	}{
		{
			name:  "partial with unanswered",
			slots: slots("A", "C", ""),
			want:  model.Result{CorrectCount: 1, IncorrectCount: 1, UnansweredCount: 1, ScorePercent: 33},
		},
		{
			name:  "all correct",
			slots: slots("A", "B", "C"),
			want:  model.Result{CorrectCount: 3, ScorePercent: 100},
		},
		{
			name:  "two thirds",
			slots: slots("A", "B", "A"),
			want:  model.Result{CorrectCount: 2, IncorrectCount: 1, ScorePercent: 67},
		},
		{
			name:  "nothing answered",
			slots: slots("", "", ""),
			want:  model.Result{UnansweredCount: 3},
		},
		{
			name:         "fewer slots than questions",
			slots:        slots("A"),
			want:         model.Result{CorrectCount: 1, UnansweredCount: 2, ScorePercent: 33},
			wantWarnings: 1,
		},
		{
			name:         "more slots than questions",
			slots:        slots("A", "B", "C", "A"),
			want:         model.Result{CorrectCount: 3, ScorePercent: 100},
			wantWarnings: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := Compute(abcQuestions(), tt.slots)
			if got != tt.want {
				t.Fatalf("Compute = %+v want %+v", got, tt.want)
			}
			if len(warnings) != tt.wantWarnings {
				t.Fatalf("warnings = %v want %d", warnings, tt.wantWarnings)
			}
			if got.Total() != 3 {
				t.Fatalf("counts sum to %d want 3", got.Total())
			}
		})
	}
}

func TestCompute_MalformedQuestionNeverCorrect(t *testing.T) {
	qs := abcQuestions()
	qs[1].CorrectOptionID = "Z"

	got, warnings := Compute(qs, slots("A", "Z", "C"))

	if got.CorrectCount != 2 || got.IncorrectCount != 1 {
		t.Fatalf("Compute = %+v want 2 correct, 1 incorrect", got)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrDataIntegrity) {
		t.Fatalf("warnings = %v want one data integrity warning", warnings)
	}
	if warnings[0].QuestionID != "q1" {
		t.Fatalf("warning points at %q want q1", warnings[0].QuestionID)
	}
}

func TestCompute_EmptyBank(t *testing.T) {
	got, warnings := Compute(nil, nil)
	if got != (model.Result{}) || len(warnings) != 0 {
		t.Fatalf("Compute(nil, nil) = %+v, %v", got, warnings)
	}
}

func TestCompute_PercentBounds(t *testing.T) {
	qs := abcQuestions()
	for _, s := range [][]model.AnswerSlot{
		slots("", "", ""), slots("A", "", ""), slots("A", "B", ""), slots("A", "B", "C"),
		slots("C", "C", "A"),
	} {
		got, _ := Compute(qs, s)
		if got.ScorePercent < 0 || got.ScorePercent > 100 {
			t.Fatalf("ScorePercent %d out of range for %v", got.ScorePercent, s)
		}
		if got.ScorePercent != model.Percent(got.CorrectCount, len(qs)) {
			t.Fatalf("ScorePercent %d disagrees with Percent for %v", got.ScorePercent, s)
		}
	}
}

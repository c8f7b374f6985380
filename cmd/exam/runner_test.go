package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-engine/internal/exam"
	"github.com/stemsi/exstem-engine/internal/model"
	"github.com/stemsi/exstem-engine/internal/worker"
)

type stillTimer struct{}

func (stillTimer) Arm(int, func(int), func()) {}
func (stillTimer) Cancel()                     {}

func testBank(t *testing.T) *exam.Bank {
	t.Helper()
	mk := func(id, correct string) model.Question {
		return model.Question{
			ID:     id,
			Prompt: "prompt " + id,
			Options: []model.Option{
				{ID: "opt-a", Label: "A", Text: "alpha"},
				{ID: "opt-b", Label: "B", Text: "bravo"},
				{ID: "opt-c", Label: "C", Text: "charlie"},
			},
			CorrectOptionID: correct,
			Explanation:     "explains " + id,
		}
	}
	bank, _, err := exam.NewBank(model.QuestionSet{
		Title:           "Runner",
		DurationSeconds: 120,
		Questions:       []model.Question{mk("q0", "opt-a"), mk("q1", "opt-b"), mk("q2", "opt-c")},
	}, nil)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	return bank
}

func runScript(t *testing.T, script string, timer exam.Timer) (model.Result, string) {
	t.Helper()
	var out bytes.Buffer
	r := newRunner(strings.NewReader(script), &out, false)

	opts := append([]exam.SessionOption{exam.WithTimer(timer), exam.WithLogger(zerolog.Nop())}, r.hooks()...)
	s, err := exam.NewSession(testBank(t), 0, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, err := r.run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res, out.String()
}

func TestRunner_FinishScript(t *testing.T) {
	res, out := runScript(t, "a a\nn\nx\nn\np\nn\na C\nf\n", stillTimer{})

	want := model.Result{CorrectCount: 1, IncorrectCount: 1, UnansweredCount: 1, ScorePercent: 33}
	if res != want {
		t.Fatalf("result = %+v want %+v", res, want)
	}
	for _, s := range []string{
		"Soal 1/3  [02:00]",
		"✓ Benar!",
		"explains q0",
		"Perintah tidak dikenal",
		"Jawab soal ini terlebih dahulu",
		"✗ Salah. Jawaban benar: B",
		"Ujian selesai",
		"Skor: 33%",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("output missing %q:\n%s", s, out)
		}
	}
}

func TestRunner_LockedAnswer(t *testing.T) {
	_, out := runScript(t, "a b\na a\nf\n", stillTimer{})
	if !strings.Contains(out, "sudah dikunci") {
		t.Fatalf("re-answer was not rejected:\n%s", out)
	}
}

func TestRunner_EOFAbandons(t *testing.T) {
	res, out := runScript(t, "a a\n", stillTimer{})
	if res.CorrectCount != 1 || res.UnansweredCount != 2 {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(out, "Ujian dihentikan") {
		t.Fatalf("abandon not reported:\n%s", out)
	}
}

func TestRunner_Expiry(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	r := newRunner(pr, &out, false)
	opts := append([]exam.SessionOption{
		exam.WithTimer(worker.NewCountdown(5*time.Millisecond, zerolog.Nop())),
		exam.WithLogger(zerolog.Nop()),
	}, r.hooks()...)
	s, err := exam.NewSession(testBank(t), 3, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, err := r.run(context.Background(), s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.UnansweredCount != 3 || res.ElapsedSeconds != 3 {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(out.String(), "Waktu habis") {
		t.Fatalf("expiry not reported:\n%s", out.String())
	}
}

func TestResolveOption(t *testing.T) {
	q, _ := testBank(t).Question(0)
	tests := map[string]string{"a": "opt-a", "B": "opt-b", "OPT-C": "opt-c", "z": "z"}
	for in, want := range tests {
		if got := resolveOption(q, in); got != want {
			t.Errorf("resolveOption(%q) = %q want %q", in, got, want)
		}
	}
}

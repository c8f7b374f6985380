package exam

import (
	"fmt"
	"math/rand"

	"github.com/stemsi/exstem-engine/internal/model"
)

// ValidateFunc checks one question record and returns field errors, or nil
// when the record is usable.
type ValidateFunc func(q model.Question) map[string]string

// Bank is an ordered, immutable sequence of questions. Every accessor hands
// out copies, so nothing outside the bank can change a loaded question.
type Bank struct {
	id              string
	title           string
	durationSeconds int
	questions       []model.Question
}

// NewBank builds a bank from a provider payload. Records rejected by validate
// or repeating an earlier question ID are skipped and reported as warnings;
// the remaining questions keep their relative order. A nil validate only
// enforces that the correct option belongs to the question.
func NewBank(set model.QuestionSet, validate ValidateFunc) (*Bank, []IntegrityWarning, error) {
	if validate == nil {
		validate = checkCorrectOption
	}

	var warnings []IntegrityWarning
	seen := make(map[string]struct{}, len(set.Questions))
	questions := make([]model.Question, 0, len(set.Questions))

	for i, q := range set.Questions {
		if fields := validate(q); len(fields) > 0 {
			warnings = append(warnings, IntegrityWarning{
				Index:      i,
				QuestionID: q.ID,
				Reason:     "malformed question skipped",
				Fields:     fields,
			})
			continue
		}
		if _, dup := seen[q.ID]; dup {
			warnings = append(warnings, IntegrityWarning{
				Index:      i,
				QuestionID: q.ID,
				Reason:     "duplicate question id skipped",
			})
			continue
		}
		seen[q.ID] = struct{}{}
		questions = append(questions, q.Clone())
	}

	if len(questions) == 0 {
		return nil, warnings, fmt.Errorf("build bank %q: %w", set.ID, ErrEmptyBank)
	}

	return &Bank{
		id:              set.ID,
		title:           set.Title,
		durationSeconds: set.DurationSeconds,
		questions:       questions,
	}, warnings, nil
}

func checkCorrectOption(q model.Question) map[string]string {
	if q.ID == "" {
		return map[string]string{"id": "id is a required field"}
	}
	if !q.HasOption(q.CorrectOptionID) {
		return map[string]string{"correct_option_id": "correct_option_id must reference one of the question's options"}
	}
	return nil
}

func (b *Bank) ID() string           { return b.id }
func (b *Bank) Title() string        { return b.title }
func (b *Bank) DurationSeconds() int { return b.durationSeconds }
func (b *Bank) Len() int             { return len(b.questions) }

// Question returns a copy of the question at index.
func (b *Bank) Question(index int) (model.Question, bool) {
	if index < 0 || index >= len(b.questions) {
		return model.Question{}, false
	}
	return b.questions[index].Clone(), true
}

// Questions returns a copy of every question in order.
func (b *Bank) Questions() []model.Question {
	out := make([]model.Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Clone()
	}
	return out
}

// ShuffleOptions returns a new bank whose option order is permuted per
// question using r. Question order is untouched. Labels stay in their
// original positions so the display still reads A, B, C, ...; IDs and the
// correct option move together, so scoring is unaffected.
func (b *Bank) ShuffleOptions(r *rand.Rand) *Bank {
	out := &Bank{
		id:              b.id,
		title:           b.title,
		durationSeconds: b.durationSeconds,
		questions:       make([]model.Question, len(b.questions)),
	}
	for i, q := range b.questions {
		c := q.Clone()
		labels := make([]string, len(c.Options))
		for j, o := range c.Options {
			labels[j] = o.Label
		}
		r.Shuffle(len(c.Options), func(x, y int) {
			c.Options[x], c.Options[y] = c.Options[y], c.Options[x]
		})
		for j := range c.Options {
			c.Options[j].Label = labels[j]
		}
		out.questions[i] = c
	}
	return out
}

package exam

import (
	"fmt"

	"github.com/stemsi/exstem-engine/internal/model"
)

// AnswerRecorder holds one write-once answer slot per question.
// It is not safe for concurrent use; Session serializes access to it.
type AnswerRecorder struct {
	slots []model.AnswerSlot
}

// NewAnswerRecorder allocates n unset slots.
func NewAnswerRecorder(n int) *AnswerRecorder {
	r := &AnswerRecorder{}
	r.Reset(n)
	return r
}

// Reset discards every recorded answer and allocates n fresh slots.
func (r *AnswerRecorder) Reset(n int) {
	if n < 0 {
		n = 0
	}
	r.slots = make([]model.AnswerSlot, n)
}

// Len returns the number of slots.
func (r *AnswerRecorder) Len() int {
	return len(r.slots)
}

// Get returns the slot at index. Out of range reads return an unset slot.
func (r *AnswerRecorder) Get(index int) model.AnswerSlot {
	if index < 0 || index >= len(r.slots) {
		return model.AnswerSlot{}
	}
	return r.slots[index]
}

// IsAnswered reports whether the slot at index holds an option.
func (r *AnswerRecorder) IsAnswered(index int) bool {
	return r.Get(index).IsSet()
}

// Set records optionID at index. A slot that already holds an answer is
// never overwritten.
func (r *AnswerRecorder) Set(index int, optionID string) error {
	if index < 0 || index >= len(r.slots) {
		return fmt.Errorf("set answer %d: %w", index, ErrIndexOutOfRange)
	}
	if optionID == "" {
		return fmt.Errorf("set answer %d: %w", index, ErrUnknownOption)
	}
	if r.slots[index].IsSet() {
		return fmt.Errorf("set answer %d: %w", index, ErrAnswerLocked)
	}
	r.slots[index] = model.AnswerSlot{OptionID: optionID}
	return nil
}

// AnsweredCount returns how many slots hold an answer.
func (r *AnswerRecorder) AnsweredCount() int {
	n := 0
	for _, s := range r.slots {
		if s.IsSet() {
			n++
		}
	}
	return n
}

// Slots returns a copy of all slots.
func (r *AnswerRecorder) Slots() []model.AnswerSlot {
	out := make([]model.AnswerSlot, len(r.slots))
	copy(out, r.slots)
	return out
}

package exam

import (
	"errors"
	"testing"
)

func TestAnswerRecorder_WriteOnce(t *testing.T) {
	r := NewAnswerRecorder(3)

	if r.IsAnswered(0) {
		t.Fatalf("fresh slot reported as answered")
	}
	if err := r.Set(0, "A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, opt := range []string{"B", "A", "C"} {
		err := r.Set(0, opt)
		if !errors.Is(err, ErrAnswerLocked) {
			t.Fatalf("Set over locked slot = %v want ErrAnswerLocked", err)
		}
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("locked error should be an invalid state error")
		}
	}
	if got := r.Get(0).OptionID; got != "A" {
		t.Fatalf("slot changed to %q after rejected writes", got)
	}
	if r.AnsweredCount() != 1 {
		t.Fatalf("AnsweredCount = %d want 1", r.AnsweredCount())
	}
}

func TestAnswerRecorder_Rejects(t *testing.T) {
	r := NewAnswerRecorder(2)

	tests := []struct {
		name   string
		index  int
		option string
		want   error
	}{
		{"negative index", -1, "A", ErrIndexOutOfRange},
		{"index past end", 2, "A", ErrIndexOutOfRange},
		{"empty option", 1, "", ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Set(tt.index, tt.option); !errors.Is(err, tt.want) {
				t.Fatalf("Set(%d, %q) = %v want %v", tt.index, tt.option, err, tt.want)
			}
		})
	}
	if r.AnsweredCount() != 0 {
		t.Fatalf("rejected writes changed state")
	}
	if r.Get(99).IsSet() {
		t.Fatalf("out of range Get should be unset")
	}
}

func TestAnswerRecorder_ResetAndSlotsCopy(t *testing.T) {
	r := NewAnswerRecorder(2)
	_ = r.Set(1, "B")

	slots := r.Slots()
	slots[1].OptionID = "tampered"
	if r.Get(1).OptionID != "B" {
		t.Fatalf("Slots leaked internal storage")
	}

	r.Reset(4)
	if r.Len() != 4 || r.AnsweredCount() != 0 {
		t.Fatalf("Reset left len=%d answered=%d", r.Len(), r.AnsweredCount())
	}
}

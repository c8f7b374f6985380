package exam

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every rejected mutation wraps ErrInvalidState and leaves the
// session untouched; ErrDataIntegrity is only ever carried by warnings.
var (
	ErrInvalidState  = errors.New("invalid state")
	ErrDataIntegrity = errors.New("data integrity")
)

var (
	ErrNotInProgress   = fmt.Errorf("%w: session is not in progress", ErrInvalidState)
	ErrAnswerLocked    = fmt.Errorf("%w: answer already locked in", ErrInvalidState)
	ErrUnanswered      = fmt.Errorf("%w: current question is unanswered", ErrInvalidState)
	ErrIndexOutOfRange = fmt.Errorf("%w: question index out of range", ErrInvalidState)
	ErrUnknownOption   = fmt.Errorf("%w: option does not belong to question", ErrInvalidState)
	ErrAtFirstQuestion = fmt.Errorf("%w: already at first question", ErrInvalidState)
	ErrAtLastQuestion  = fmt.Errorf("%w: already at last question", ErrInvalidState)
)

var (
	ErrEmptyBank       = errors.New("question bank has no valid questions")
	ErrInvalidDuration = errors.New("exam duration must be positive")
)

// IntegrityWarning describes a malformed record the engine degraded around
// instead of aborting the session.
type IntegrityWarning struct {
	Index      int
	QuestionID string
	Reason     string
	Fields     map[string]string
}

func (w IntegrityWarning) Error() string {
	var b strings.Builder
	b.WriteString("data integrity: ")
	if w.QuestionID != "" {
		fmt.Fprintf(&b, "question %q (index %d): ", w.QuestionID, w.Index)
	}
	b.WriteString(w.Reason)
	if len(w.Fields) > 0 {
		keys := make([]string, 0, len(w.Fields))
		for k := range w.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "; %s: %s", k, w.Fields[k])
		}
	}
	return b.String()
}

func (w IntegrityWarning) Unwrap() error {
	return ErrDataIntegrity
}

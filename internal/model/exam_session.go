package model

import (
	"fmt"
	"time"
)

// SessionStatus enumerates exam session states.
type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "NOT_STARTED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// CompletionReason records which path moved a session to COMPLETED.
type CompletionReason string

const (
	CompletionFinished  CompletionReason = "FINISHED"
	CompletionExpired   CompletionReason = "EXPIRED"
	CompletionAbandoned CompletionReason = "ABANDONED"
)

// Result is the score summary computed once when a session completes.
type Result struct {
	CorrectCount    int `json:"correct_count"`
	IncorrectCount  int `json:"incorrect_count"`
	UnansweredCount int `json:"unanswered_count"`
	ScorePercent    int `json:"score_percent"`
	ElapsedSeconds  int `json:"elapsed_seconds"`
}

// Total returns the number of questions the result covers.
func (r Result) Total() int {
	return r.CorrectCount + r.IncorrectCount + r.UnansweredCount
}

// Reveal is handed back to the caller when an answer is locked in.
// It is never stored on the session.
type Reveal struct {
	QuestionID      string `json:"question_id"`
	SelectedOption  string `json:"selected_option"`
	CorrectOptionID string `json:"correct_option_id"`
	Correct         bool   `json:"correct"`
	Explanation     string `json:"explanation"`
}

// SessionSnapshot is a consistent read-only view of an exam session.
type SessionSnapshot struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Status           SessionStatus     `json:"status"`
	CurrentIndex     int               `json:"current_index"`
	QuestionCount    int               `json:"question_count"`
	AnsweredCount    int               `json:"answered_count"`
	RemainingSeconds int               `json:"remaining_seconds"`
	StartedAt        *time.Time        `json:"started_at,omitempty"`
	FinishedAt       *time.Time        `json:"finished_at,omitempty"`
	Reason           *CompletionReason `json:"reason,omitempty"`
	Result           *Result           `json:"result,omitempty"`
}

// Percent converts part/total into a whole percentage, rounding half up.
// This is the only rounding rule used for scores, so 2/3 is always 67.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	if part >= total {
		return 100
	}
	return (200*part + total) / (2 * total)
}

// FormatClock renders seconds as mm:ss. Negative input renders as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

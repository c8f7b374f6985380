package model

// AnswerSlot holds the option recorded for one question.
// The zero value is unset.
type AnswerSlot struct {
	OptionID string `json:"option_id,omitempty"`
}

// IsSet reports whether an option has been recorded.
func (s AnswerSlot) IsSet() bool {
	return s.OptionID != ""
}

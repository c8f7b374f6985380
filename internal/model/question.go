package model

// Difficulty tags a question for display and filtering.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Option is one selectable answer of a multiple choice question.
type Option struct {
	ID    string `json:"id" yaml:"id" validate:"required,max=10"`
	Label string `json:"label" yaml:"label" validate:"required,max=10"`
	Text  string `json:"text" yaml:"text" validate:"required,max=1000"`
}

// Question represents a single exam question as supplied by the content provider.
type Question struct {
	ID              string     `json:"id" yaml:"id" validate:"required,max=64"`
	Prompt          string     `json:"prompt" yaml:"prompt" validate:"required,min=1,max=2000"`
	Options         []Option   `json:"options" yaml:"options" validate:"min=2,unique=ID,dive"`
	CorrectOptionID string     `json:"correct_option_id" yaml:"correct_option_id" validate:"required,max=10"`
	Explanation     string     `json:"explanation" yaml:"explanation" validate:"max=4000"`
	Difficulty      Difficulty `json:"difficulty" yaml:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// HasOption reports whether optionID is one of the question's own options.
func (q *Question) HasOption(optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can never mutate a loaded question.
func (q Question) Clone() Question {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}

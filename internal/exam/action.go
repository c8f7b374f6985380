package exam

import "github.com/stemsi/exstem-engine/internal/model"

// ActionKind names a transition request fed to the session reducer.
type ActionKind string

const (
	// Presentation → engine.
	ActionStart        ActionKind = "start"
	ActionSelectAnswer ActionKind = "select_answer"
	ActionAdvance      ActionKind = "advance"
	ActionRetreat      ActionKind = "retreat"
	ActionFinish       ActionKind = "finish"
	ActionAbandon      ActionKind = "abandon"

	// Timer → engine.
	ActionTick   ActionKind = "tick"
	ActionExpire ActionKind = "expire"
)

// Action is the tagged input of the reducer. Only the fields relevant to
// Kind are read.
type Action struct {
	Kind      ActionKind
	Index     int
	OptionID  string
	Remaining int
}

// outcome carries what a transition produced for the caller and the hooks.
type outcome struct {
	reveal *model.Reveal
	result *model.Result
	tick   *int
}

package exam

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-engine/internal/model"
	"github.com/stemsi/exstem-engine/internal/worker"
)

// Session is a single-user timed exam over one question bank.
//
// Every mutation, whether it comes from the caller or from the timer
// goroutine, goes through dispatch and therefore through one lock, so ticks
// and answers are interleaved but never concurrent. Hooks run after the
// lock is released and may call back into the session.
type Session struct {
	mu sync.Mutex

	id    string
	bank  *Bank
	limit int
	timer Timer
	log   zerolog.Logger
	now   func() time.Time

	onTick     func(remaining int)
	onComplete func(model.Result)

	status     model.SessionStatus
	answers    *AnswerRecorder
	current    int
	remaining  int
	startedAt  time.Time
	finishedAt time.Time
	reason     model.CompletionReason
	result     *model.Result
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithID overrides the generated session ID.
func WithID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// WithTimer replaces the default one-second countdown.
func WithTimer(t Timer) SessionOption {
	return func(s *Session) { s.timer = t }
}

// WithLogger sets the logger; the session adds its own fields.
func WithLogger(log zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithClock sets the wall clock used for start and finish timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithTickHook registers fn to observe the remaining seconds after each tick.
func WithTickHook(fn func(remaining int)) SessionOption {
	return func(s *Session) { s.onTick = fn }
}

// WithCompleteHook registers fn to receive the result once the session completes.
func WithCompleteHook(fn func(model.Result)) SessionOption {
	return func(s *Session) { s.onComplete = fn }
}

// NewSession creates a NOT_STARTED session. limitSeconds falls back to the
// bank's own duration when it is not positive.
func NewSession(bank *Bank, limitSeconds int, opts ...SessionOption) (*Session, error) {
	if bank == nil || bank.Len() == 0 {
		return nil, fmt.Errorf("new session: %w", ErrEmptyBank)
	}
	if limitSeconds <= 0 {
		limitSeconds = bank.DurationSeconds()
	}
	if limitSeconds <= 0 {
		return nil, fmt.Errorf("new session: %w", ErrInvalidDuration)
	}

	s := &Session{
		bank:    bank,
		limit:   limitSeconds,
		log:     zerolog.Nop(),
		now:     time.Now,
		status:  model.SessionStatusNotStarted,
		answers: NewAnswerRecorder(bank.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.log = s.log.With().
		Str("component", "exam_session").
		Str("session_id", s.id).
		Str("qbank_id", bank.ID()).
		Logger()
	if s.timer == nil {
		s.timer = worker.NewCountdown(worker.DefaultTickInterval, s.log)
	}
	s.remaining = limitSeconds

	return s, nil
}

// ─── Mutation surface ──────────────────────────────────────────────────────

// Start resets the answers, arms the timer and moves the session to
// IN_PROGRESS. Calling it again after the first start does nothing.
func (s *Session) Start() error {
	_, err := s.dispatch(Action{Kind: ActionStart})
	return err
}

// SelectAnswer locks optionID in for the question at index and returns the
// question's explanation. A slot that is already answered is never changed.
func (s *Session) SelectAnswer(index int, optionID string) (model.Reveal, error) {
	out, err := s.dispatch(Action{Kind: ActionSelectAnswer, Index: index, OptionID: optionID})
	if err != nil {
		return model.Reveal{}, err
	}
	return *out.reveal, nil
}

// Advance moves to the next question. The current question must be answered.
func (s *Session) Advance() error {
	_, err := s.dispatch(Action{Kind: ActionAdvance})
	return err
}

// Retreat moves back one question for review. It has no answer precondition.
func (s *Session) Retreat() error {
	_, err := s.dispatch(Action{Kind: ActionRetreat})
	return err
}

// Finish completes the session at any position and returns the result.
func (s *Session) Finish() (model.Result, error) {
	out, err := s.dispatch(Action{Kind: ActionFinish})
	if err != nil {
		return model.Result{}, err
	}
	return *out.result, nil
}

// Close tears the session down. An in-progress session is completed as
// abandoned, which also stops the timer; otherwise Close does nothing.
func (s *Session) Close() {
	_, _ = s.dispatch(Action{Kind: ActionAbandon})
}

// Dispatch feeds a raw action to the reducer. Presentation layers that
// route user events by name can use it instead of the typed methods.
func (s *Session) Dispatch(a Action) (model.Reveal, *model.Result, error) {
	out, err := s.dispatch(a)
	var reveal model.Reveal
	if out.reveal != nil {
		reveal = *out.reveal
	}
	return reveal, out.result, err
}

func (s *Session) handleTick(remaining int) {
	_, _ = s.dispatch(Action{Kind: ActionTick, Remaining: remaining})
}

func (s *Session) handleExpire() {
	_, _ = s.dispatch(Action{Kind: ActionExpire})
}

// ─── Reducer ───────────────────────────────────────────────────────────────

func (s *Session) dispatch(a Action) (outcome, error) {
	s.mu.Lock()
	out, err := s.reduce(a)
	s.mu.Unlock()

	if err != nil {
		if a.Kind != ActionTick {
			s.log.Debug().Err(err).Str("action", string(a.Kind)).Msg("Action rejected")
		}
		return out, err
	}

	if out.tick != nil && s.onTick != nil {
		s.onTick(*out.tick)
	}
	if out.result != nil && s.onComplete != nil {
		s.onComplete(*out.result)
	}
	return out, nil
}

// reduce is the only place session state changes. Callers hold s.mu.
func (s *Session) reduce(a Action) (outcome, error) {
	switch a.Kind {
	case ActionStart:
		if s.status != model.SessionStatusNotStarted {
			return outcome{}, nil
		}
		s.answers.Reset(s.bank.Len())
		s.current = 0
		s.remaining = s.limit
		s.startedAt = s.now()
		s.status = model.SessionStatusInProgress
		s.timer.Arm(s.limit, s.handleTick, s.handleExpire)
		s.log.Info().
			Int("questions", s.bank.Len()).
			Int("limit_seconds", s.limit).
			Msg("Exam started")
		return outcome{}, nil

	case ActionAbandon:
		if s.status != model.SessionStatusInProgress {
			return outcome{}, nil
		}
		res := s.complete(model.CompletionAbandoned)
		return outcome{result: &res}, nil
	}

	if s.status != model.SessionStatusInProgress {
		return outcome{}, fmt.Errorf("%s: %w", a.Kind, ErrNotInProgress)
	}

	switch a.Kind {
	case ActionSelectAnswer:
		q, ok := s.bank.Question(a.Index)
		if !ok {
			return outcome{}, fmt.Errorf("select answer %d: %w", a.Index, ErrIndexOutOfRange)
		}
		if s.answers.IsAnswered(a.Index) {
			return outcome{}, fmt.Errorf("select answer %d: %w", a.Index, ErrAnswerLocked)
		}
		if !q.HasOption(a.OptionID) {
			return outcome{}, fmt.Errorf("select answer %d option %q: %w", a.Index, a.OptionID, ErrUnknownOption)
		}
		if err := s.answers.Set(a.Index, a.OptionID); err != nil {
			return outcome{}, err
		}
		return outcome{reveal: &model.Reveal{
			QuestionID:      q.ID,
			SelectedOption:  a.OptionID,
			CorrectOptionID: q.CorrectOptionID,
			Correct:         a.OptionID == q.CorrectOptionID,
			Explanation:     q.Explanation,
		}}, nil

	case ActionAdvance:
		if s.current >= s.bank.Len()-1 {
			return outcome{}, fmt.Errorf("advance: %w", ErrAtLastQuestion)
		}
		if !s.answers.IsAnswered(s.current) {
			return outcome{}, fmt.Errorf("advance from %d: %w", s.current, ErrUnanswered)
		}
		s.current++
		return outcome{}, nil

	case ActionRetreat:
		if s.current == 0 {
			return outcome{}, fmt.Errorf("retreat: %w", ErrAtFirstQuestion)
		}
		s.current--
		return outcome{}, nil

	case ActionTick:
		remaining := a.Remaining
		if remaining < 0 {
			remaining = 0
		}
		if remaining < s.remaining {
			s.remaining = remaining
		}
		left := s.remaining
		return outcome{tick: &left}, nil

	case ActionFinish:
		res := s.complete(model.CompletionFinished)
		return outcome{result: &res}, nil

	case ActionExpire:
		s.remaining = 0
		res := s.complete(model.CompletionExpired)
		return outcome{result: &res}, nil
	}

	return outcome{}, fmt.Errorf("unknown action %q: %w", a.Kind, ErrInvalidState)
}

// complete is the single exit from IN_PROGRESS and the only caller of
// Timer.Cancel.
func (s *Session) complete(reason model.CompletionReason) model.Result {
	s.timer.Cancel()

	res, warnings := Compute(s.bank.questions, s.answers.Slots())
	for _, w := range warnings {
		s.log.Warn().Err(w).Msg("Scoring degraded")
	}
	res.ElapsedSeconds = s.limit - s.remaining

	s.status = model.SessionStatusCompleted
	s.finishedAt = s.now()
	s.reason = reason
	s.result = &res

	s.log.Info().
		Str("reason", string(reason)).
		Int("correct", res.CorrectCount).
		Int("incorrect", res.IncorrectCount).
		Int("unanswered", res.UnansweredCount).
		Int("score", res.ScorePercent).
		Int("elapsed_seconds", res.ElapsedSeconds).
		Msg("Exam completed")

	return res
}

// ─── Read-only view ────────────────────────────────────────────────────────

func (s *Session) ID() string { return s.id }

// Bank returns the question bank the session runs over.
func (s *Session) Bank() *Bank { return s.bank }

func (s *Session) Status() model.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentQuestion returns a copy of the question at the current index.
func (s *Session) CurrentQuestion() model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, _ := s.bank.Question(s.current)
	return q
}

func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.AnsweredCount()
}

// RemainingSeconds is the countdown value; format it with model.FormatClock.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Answer returns the option recorded for index, if any.
func (s *Session) Answer(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.answers.Get(index)
	return slot.OptionID, slot.IsSet()
}

// IsRevealed is the presentational flag for showing a question's
// explanation: once it is answered, and for every question after completion.
func (s *Session) IsRevealed(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.bank.Len() {
		return false
	}
	return s.status == model.SessionStatusCompleted || s.answers.IsAnswered(index)
}

// Result returns the final result once the session has completed.
func (s *Session) Result() (model.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return model.Result{}, false
	}
	return *s.result, true
}

// Snapshot returns a consistent view of the whole session.
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := model.SessionSnapshot{
		ID:               s.id,
		Title:            s.bank.Title(),
		Status:           s.status,
		CurrentIndex:     s.current,
		QuestionCount:    s.bank.Len(),
		AnsweredCount:    s.answers.AnsweredCount(),
		RemainingSeconds: s.remaining,
	}
	if !s.startedAt.IsZero() {
		t := s.startedAt
		snap.StartedAt = &t
	}
	if s.status == model.SessionStatusCompleted {
		t := s.finishedAt
		reason := s.reason
		res := *s.result
		snap.FinishedAt = &t
		snap.Reason = &reason
		snap.Result = &res
	}
	return snap
}

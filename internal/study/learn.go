package study

import (
	"errors"

	"github.com/example/quizkit/pkg/models"
)

// SwipeThreshold is the horizontal displacement beyond which a drag
// counts as a swipe
const SwipeThreshold = 100

var (
	// ErrNotEnded is returned when End is called before the stack is empty
	ErrNotEnded = errors.New("learn session has not ended")
)

// LearnSession is the swipe-stack study state machine. The stack holds
// the questions not yet learnt; the active card is the top. Swiping
// right marks a question learnt for this session, swiping left defers
// it without re-queueing. When the stack empties the session ends and
// the union of new and prior learnt ids is persisted once.
type LearnSession struct {
	questions []models.KitQuestion
	stack     []models.KitQuestion

	priorLearnt []string
	newlyLearnt []string

	hadPrior  bool
	submitted bool
}

// NewLearnSession builds the stack from the kit's questions, excluding
// anything already recorded in prior progress. A nil prior means the
// user starts from the full list. A kit whose questions are all learnt
// yields an immediately ended session.
func NewLearnSession(questions []models.KitQuestion, prior *models.Progress) *LearnSession {
	s := &LearnSession{questions: questions}

	var learnt map[string]bool
	if prior != nil {
		s.hadPrior = true
		s.priorLearnt = append(s.priorLearnt, prior.Learnt...)
		learnt = make(map[string]bool, len(prior.Learnt))
		for _, id := range prior.Learnt {
			learnt[id] = true
		}
	}

	// The top of the stack is the last element, so questions are
	// pushed in reverse kit order to make the first question active
	for i := len(questions) - 1; i >= 0; i-- {
		if !learnt[questions[i].ID] {
			s.stack = append(s.stack, questions[i])
		}
	}
	return s
}

// Active returns the top of the stack. ok is false once the session
// has ended.
func (s *LearnSession) Active() (models.KitQuestion, bool) {
	if len(s.stack) == 0 {
		return models.KitQuestion{}, false
	}
	return s.stack[len(s.stack)-1], true
}

// StackSize returns how many questions remain
func (s *LearnSession) StackSize() int {
	return len(s.stack)
}

// Stack returns a copy of the remaining questions, bottom first
func (s *LearnSession) Stack() []models.KitQuestion {
	out := make([]models.KitQuestion, len(s.stack))
	copy(out, s.stack)
	return out
}

// Ended reports whether the stack is empty
func (s *LearnSession) Ended() bool {
	return len(s.stack) == 0
}

// HadPrior reports whether a progress row existed when the session started
func (s *LearnSession) HadPrior() bool {
	return s.hadPrior
}

// Drag interprets a horizontal displacement: past the threshold to the
// right marks the active card learnt, past it to the left defers the
// card, anything in between snaps back.
func (s *LearnSession) Drag(dx float64) {
	switch {
	case dx > SwipeThreshold:
		s.SwipeRight()
	case dx < -SwipeThreshold:
		s.SwipeLeft()
	}
}

// SwipeRight marks the active question learnt and removes it
func (s *LearnSession) SwipeRight() {
	q, ok := s.Active()
	if !ok {
		return
	}
	s.newlyLearnt = append(s.newlyLearnt, q.ID)
	s.stack = s.stack[:len(s.stack)-1]
}

// SwipeLeft removes the active question without marking it learnt.
// It is not re-queued within this session.
func (s *LearnSession) SwipeLeft() {
	if len(s.stack) == 0 {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// AllLearnt returns the union of this session's learnt ids and the
// prior progress, deduplicated and restricted to the kit's current
// question ids - stale ids from deleted questions are tolerated in
// stored progress but never written back.
func (s *LearnSession) AllLearnt() []string {
	current := make(map[string]bool, len(s.questions))
	for _, q := range s.questions {
		current[q.ID] = true
	}

	seen := make(map[string]bool)
	var union []string
	for _, id := range append(append([]string(nil), s.newlyLearnt...), s.priorLearnt...) {
		if current[id] && !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	return union
}

// NotKnown returns the questions absent from the learnt union, in kit order
func (s *LearnSession) NotKnown() []models.KitQuestion {
	learnt := make(map[string]bool)
	for _, id := range s.AllLearnt() {
		learnt[id] = true
	}

	var out []models.KitQuestion
	for _, q := range s.questions {
		if !learnt[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// KnownPercentage is the floor percentage of the kit the user knows
func (s *LearnSession) KnownPercentage() int {
	if len(s.questions) == 0 {
		return 100
	}
	return len(s.AllLearnt()) * 100 / len(s.questions)
}

// End persists the learnt union exactly once. Calling it again after a
// successful submit is a no-op, which guards against duplicate writes
// from repeated renders or retries. A failed persist leaves the session
// unsubmitted so the caller can surface the error and retry manually.
func (s *LearnSession) End(persist func(learnt []string) error) error {
	if !s.Ended() {
		return ErrNotEnded
	}
	if s.submitted {
		return nil
	}
	if err := persist(s.AllLearnt()); err != nil {
		return err
	}
	s.submitted = true
	return nil
}

// Submitted reports whether the session result has been persisted
func (s *LearnSession) Submitted() bool {
	return s.submitted
}

package study

import (
	"errors"
	"math/rand"
	"time"

	"github.com/example/quizkit/pkg/models"
)

// maxCandidates is the target size of a multiple-choice answer set.
// Kits with fewer questions get a smaller set - the sampling target is
// always min(maxCandidates, len(questions)).
const maxCandidates = 5

// ErrNoQuestions is returned when an exam is started over an empty kit
var ErrNoQuestions = errors.New("exam requires at least one question")

// ExamSession is the multiple-choice study state machine. It walks the
// kit's questions in order, offering a sampled candidate answer set at
// each step. Exactly one answer attempt is allowed per question; the
// session locks until Advance is called.
type ExamSession struct {
	questions []models.KitQuestion
	rnd       *rand.Rand

	index      int
	candidates []string
	locked     bool
	ended      bool

	correctAnswerID string
	wrongAnswerID   string
	correctIDs      []string
}

// ExamSummary is the terminal result of an exam
type ExamSummary struct {
	Percentage int
	CorrectIDs []string
	Correct    []models.KitQuestion
	Incorrect  []models.KitQuestion
}

// NewExamSession starts an exam over the given ordered questions.
// Pass a nil rnd to seed from the clock.
func NewExamSession(questions []models.KitQuestion, rnd *rand.Rand) (*ExamSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &ExamSession{questions: questions, rnd: rnd}
	s.candidates = s.sampleCandidates()
	return s, nil
}

// sampleCandidates builds the answer set for the current question: the
// correct id plus distinct random others, up to min(5, N), shuffled.
func (s *ExamSession) sampleCandidates() []string {
	picked := map[int]bool{s.index: true}
	candidates := []string{s.questions[s.index].ID}

	target := len(s.questions)
	if target > maxCandidates {
		target = maxCandidates
	}

	// target never exceeds the question count, so this always
	// terminates even for single-question kits
	for len(candidates) < target {
		i := s.rnd.Intn(len(s.questions))
		if picked[i] {
			continue
		}
		picked[i] = true
		candidates = append(candidates, s.questions[i].ID)
	}

	s.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates
}

// Current returns the question being asked
func (s *ExamSession) Current() models.KitQuestion {
	return s.questions[s.index]
}

// Index returns the zero-based position in the question list
func (s *ExamSession) Index() int {
	return s.index
}

// Candidates returns the candidate answer ids for the current question
func (s *ExamSession) Candidates() []string {
	out := make([]string, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Locked reports whether the current question has been answered
func (s *ExamSession) Locked() bool {
	return s.locked
}

// Ended reports whether every question has been answered and advanced past
func (s *ExamSession) Ended() bool {
	return s.ended
}

// CorrectAnswerID returns the id highlighted as correct, empty before answering
func (s *ExamSession) CorrectAnswerID() string {
	return s.correctAnswerID
}

// WrongAnswerID returns the id of a wrong pick, empty when the answer was right
func (s *ExamSession) WrongAnswerID() string {
	return s.wrongAnswerID
}

// Answer records the user's pick. A correct choice is added to the
// correct set; a wrong one highlights the true answer. Either way the
// question locks, and further calls are no-ops until Advance.
func (s *ExamSession) Answer(choiceID string) {
	if s.locked || s.ended {
		return
	}

	current := s.questions[s.index]
	if choiceID == current.ID {
		s.correctAnswerID = choiceID
		s.correctIDs = append(s.correctIDs, choiceID)
	} else {
		s.wrongAnswerID = choiceID
		s.correctAnswerID = current.ID
	}
	s.locked = true
}

// Advance moves to the next question, resampling candidates, or ends
// the session after the last one. It is only permitted while locked.
func (s *ExamSession) Advance() {
	if !s.locked || s.ended {
		return
	}

	s.correctAnswerID = ""
	s.wrongAnswerID = ""
	s.locked = false

	if s.index >= len(s.questions)-1 {
		s.ended = true
		return
	}
	s.index++
	s.candidates = s.sampleCandidates()
}

// Summary partitions the questions into correct and incorrect sets and
// computes the floor percentage of correct answers.
func (s *ExamSession) Summary() ExamSummary {
	correctSet := make(map[string]bool, len(s.correctIDs))
	for _, id := range s.correctIDs {
		correctSet[id] = true
	}

	summary := ExamSummary{
		Percentage: len(s.correctIDs) * 100 / len(s.questions),
		CorrectIDs: append([]string(nil), s.correctIDs...),
	}
	for _, q := range s.questions {
		if correctSet[q.ID] {
			summary.Correct = append(summary.Correct, q)
		} else {
			summary.Incorrect = append(summary.Incorrect, q)
		}
	}
	return summary
}

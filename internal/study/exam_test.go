package study

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/example/quizkit/pkg/models"
)

func makeQuestions(n int) []models.KitQuestion {
	questions := make([]models.KitQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.KitQuestion{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("question %d", i+1),
			Answer:   fmt.Sprintf("answer %d", i+1),
			Position: i,
		})
	}
	return questions
}

func TestNewExamSessionEmptyKit(t *testing.T) {
	_, err := NewExamSession(nil, rand.New(rand.NewSource(1)))
	if err != ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestExamCandidates(t *testing.T) {
	tests := []struct {
		questions int
		want      int
	}{
		{questions: 1, want: 1},
		{questions: 2, want: 2},
		{questions: 4, want: 4},
		{questions: 5, want: 5},
		{questions: 8, want: 5},
		{questions: 20, want: 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d questions", tt.questions), func(t *testing.T) {
			questions := makeQuestions(tt.questions)
			valid := make(map[string]bool, len(questions))
			for _, q := range questions {
				valid[q.ID] = true
			}

			session, err := NewExamSession(questions, rand.New(rand.NewSource(42)))
			if err != nil {
				t.Fatalf("NewExamSession: %v", err)
			}

			// Check every step, since candidates are resampled on Advance
			for !session.Ended() {
				candidates := session.Candidates()
				if len(candidates) != tt.want {
					t.Fatalf("question %d: got %d candidates, want %d", session.Index(), len(candidates), tt.want)
				}

				currentCount := 0
				seen := make(map[string]bool)
				for _, id := range candidates {
					if !valid[id] {
						t.Fatalf("candidate %q is not a question in the kit", id)
					}
					if seen[id] {
						t.Fatalf("candidate %q appears twice", id)
					}
					seen[id] = true
					if id == session.Current().ID {
						currentCount++
					}
				}
				if currentCount != 1 {
					t.Fatalf("current question appears %d times in candidates, want exactly 1", currentCount)
				}

				session.Answer(session.Current().ID)
				session.Advance()
			}
		})
	}
}

func TestExamSingleQuestionKit(t *testing.T) {
	session, err := NewExamSession(makeQuestions(1), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewExamSession: %v", err)
	}

	if got := session.Candidates(); len(got) != 1 || got[0] != "q1" {
		t.Fatalf("candidates = %v, want [q1]", got)
	}

	session.Answer("q1")
	session.Advance()

	if !session.Ended() {
		t.Fatal("session should have ended after the only question")
	}
	if got := session.Summary().Percentage; got != 100 {
		t.Fatalf("percentage = %d, want 100", got)
	}
}

func TestExamAnswerLocksQuestion(t *testing.T) {
	session, err := NewExamSession(makeQuestions(3), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewExamSession: %v", err)
	}

	// A wrong answer locks the question and reveals the true answer
	session.Answer("q2")
	if !session.Locked() {
		t.Fatal("question should lock after the first answer")
	}
	if session.WrongAnswerID() != "q2" {
		t.Fatalf("wrong answer id = %q, want q2", session.WrongAnswerID())
	}
	if session.CorrectAnswerID() != "q1" {
		t.Fatalf("correct answer id = %q, want q1", session.CorrectAnswerID())
	}

	// A second attempt on a locked question must not change the outcome
	session.Answer("q1")
	if session.CorrectAnswerID() != "q1" || session.WrongAnswerID() != "q2" {
		t.Fatal("answering a locked question changed the recorded outcome")
	}
	if got := len(session.Summary().CorrectIDs); got != 0 {
		t.Fatalf("correct set has %d entries after a locked retry, want 0", got)
	}
}

func TestExamAdvanceRequiresAnswer(t *testing.T) {
	session, err := NewExamSession(makeQuestions(3), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewExamSession: %v", err)
	}

	session.Advance()
	if session.Index() != 0 {
		t.Fatalf("Advance before answering moved to index %d", session.Index())
	}

	session.Answer("q1")
	session.Advance()
	if session.Index() != 1 {
		t.Fatalf("index = %d after answer and advance, want 1", session.Index())
	}
	if session.Locked() {
		t.Fatal("advancing should unlock the next question")
	}
	if session.CorrectAnswerID() != "" || session.WrongAnswerID() != "" {
		t.Fatal("advancing should clear the highlighted answers")
	}
}

func TestExamSummary(t *testing.T) {
	tests := []struct {
		name       string
		questions  int
		correct    map[int]bool // index -> answer correctly
		percentage int
	}{
		{
			name:       "all correct",
			questions:  4,
			correct:    map[int]bool{0: true, 1: true, 2: true, 3: true},
			percentage: 100,
		},
		{
			name:       "all wrong",
			questions:  4,
			correct:    map[int]bool{},
			percentage: 0,
		},
		{
			name:       "two of three floors to 66",
			questions:  3,
			correct:    map[int]bool{0: true, 2: true},
			percentage: 66,
		},
		{
			name:       "one of three floors to 33",
			questions:  3,
			correct:    map[int]bool{1: true},
			percentage: 33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := makeQuestions(tt.questions)
			session, err := NewExamSession(questions, rand.New(rand.NewSource(11)))
			if err != nil {
				t.Fatalf("NewExamSession: %v", err)
			}

			for !session.Ended() {
				current := session.Current()
				if tt.correct[session.Index()] {
					session.Answer(current.ID)
				} else {
					// Pick any wrong candidate, or an id outside the set
					wrong := "not-a-question"
					for _, id := range session.Candidates() {
						if id != current.ID {
							wrong = id
							break
						}
					}
					session.Answer(wrong)
				}
				session.Advance()
			}

			summary := session.Summary()
			if summary.Percentage != tt.percentage {
				t.Fatalf("percentage = %d, want %d", summary.Percentage, tt.percentage)
			}
			if got := len(summary.Correct) + len(summary.Incorrect); got != tt.questions {
				t.Fatalf("summary covers %d questions, want %d", got, tt.questions)
			}
			for i, q := range summary.Correct {
				if !tt.correct[q.Position] {
					t.Fatalf("correct[%d] = %s, which was answered wrong", i, q.ID)
				}
			}
			for i, q := range summary.Incorrect {
				if tt.correct[q.Position] {
					t.Fatalf("incorrect[%d] = %s, which was answered right", i, q.ID)
				}
			}
		})
	}
}

func TestExamEndedIgnoresFurtherInput(t *testing.T) {
	session, err := NewExamSession(makeQuestions(2), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewExamSession: %v", err)
	}

	for !session.Ended() {
		session.Answer(session.Current().ID)
		session.Advance()
	}

	session.Answer("q1")
	session.Advance()
	if got := session.Summary().Percentage; got != 100 {
		t.Fatalf("percentage changed to %d after the session ended", got)
	}
}

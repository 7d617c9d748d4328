package app

import (
	"sync"
	"testing"
	"time"

	"quiz-timer-service/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSubmitAnswerScoring(t *testing.T) {
	session := NewSession("s", testQuestions(4))

	q, ok := session.CurrentQuestion()
	if !ok || q.ID != 1 {
		t.Fatalf("expected question 1 first, got %+v ok=%v", q, ok)
	}
	if !session.SubmitAnswer(q.CorrectAnswer) {
		t.Fatalf("expected correct answer to be accepted")
	}
	if session.Score() != 10 {
		t.Fatalf("expected score 10, got %d", session.Score())
	}

	for _, wrong := range []int{-1, 99} {
		if session.SubmitAnswer(wrong) {
			t.Fatalf("expected %d to be incorrect", wrong)
		}
		if session.Score() != 10 {
			t.Fatalf("score changed on wrong answer: %d", session.Score())
		}
	}

	q, _ = session.CurrentQuestion()
	if session.SubmitAnswer((q.CorrectAnswer + 1) % 4) {
		t.Fatalf("expected in-range wrong answer to be incorrect")
	}
	if !session.IsCompleted() {
		t.Fatalf("expected completion after 4 answers")
	}
}

func TestSessionCompletion(t *testing.T) {
	clock := newFakeClock()
	session := NewSessionWithClock("s", testQuestions(3), clock.Now)

	if _, done := session.EndedAt(); done {
		t.Fatalf("new session should not be completed")
	}
	for i := 0; i < 3; i++ {
		clock.Advance(5 * time.Second)
		session.SubmitAnswer(0)
	}
	if !session.IsCompleted() {
		t.Fatalf("expected completed")
	}
	if _, ok := session.CurrentQuestion(); ok {
		t.Fatalf("expected no current question once completed")
	}
	ended, done := session.EndedAt()
	if !done || !ended.Equal(clock.Now()) {
		t.Fatalf("expected end timestamp %v, got %v (done=%v)", clock.Now(), ended, done)
	}

	clock.Advance(time.Minute)
	if session.SubmitAnswer(1) {
		t.Fatalf("submission after completion must report false")
	}
	session.Finish()
	if again, _ := session.EndedAt(); !again.Equal(ended) {
		t.Fatalf("end timestamp changed after completion: %v -> %v", ended, again)
	}
	if got := session.DurationSeconds(); got != 15 {
		t.Fatalf("expected duration frozen at 15s, got %d", got)
	}
	if stats := session.Stats(); stats.AnsweredQuestions != 3 || stats.CurrentQuestionIndex != 3 {
		t.Fatalf("post-completion submission mutated state: %+v", stats)
	}
}

func TestProgressAndAccuracy(t *testing.T) {
	session := NewSession("s", testQuestions(3))
	if session.ProgressPercentage() != 0 || session.AccuracyPercentage() != 0 {
		t.Fatalf("expected zero percentages before answers")
	}

	session.SubmitAnswer(1) // question 1, correct is 1
	if got := session.ProgressPercentage(); got != 33 {
		t.Fatalf("expected progress 33, got %d", got)
	}
	session.SubmitAnswer(0) // question 2, correct is 2
	if got := session.ProgressPercentage(); got != 66 {
		t.Fatalf("expected progress 66, got %d", got)
	}
	if got := session.AccuracyPercentage(); got != 50 {
		t.Fatalf("expected accuracy 50, got %d", got)
	}
	session.SubmitAnswer(0)
	if got := session.ProgressPercentage(); got != 100 {
		t.Fatalf("expected progress 100, got %d", got)
	}
	if got := session.AccuracyPercentage(); got != 33 {
		t.Fatalf("expected accuracy 33, got %d", got)
	}
	if session.CorrectCount() != 1 {
		t.Fatalf("expected 1 correct, got %d", session.CorrectCount())
	}
}

func TestEmptySessionStartsCompleted(t *testing.T) {
	session := NewSession("s", nil)
	if !session.IsCompleted() {
		t.Fatalf("expected zero-question session to be completed")
	}
	if _, ok := session.CurrentQuestion(); ok {
		t.Fatalf("expected no current question")
	}
	if session.ProgressPercentage() != 0 || session.AccuracyPercentage() != 0 {
		t.Fatalf("expected zero percentages")
	}
	if session.SubmitAnswer(0) {
		t.Fatalf("expected no-op false")
	}
}

func TestFinishEarly(t *testing.T) {
	clock := newFakeClock()
	session := NewSessionWithClock("s", testQuestions(5), clock.Now)
	session.SubmitAnswer(1)
	clock.Advance(42 * time.Second)

	session.Finish()
	if !session.IsCompleted() {
		t.Fatalf("expected finished session to be completed")
	}
	if _, ok := session.CurrentQuestion(); ok {
		t.Fatalf("expected no current question after finish")
	}
	clock.Advance(time.Hour)
	results := session.Results()
	if results.AnsweredQuestions != 1 || results.TotalQuestions != 5 || results.Score != 10 {
		t.Fatalf("unexpected results after early finish: %+v", results)
	}
	if results.DurationSeconds != 42 {
		t.Fatalf("expected duration 42, got %d", results.DurationSeconds)
	}
}

func TestDurationCountsWhileInProgress(t *testing.T) {
	clock := newFakeClock()
	session := NewSessionWithClock("s", testQuestions(2), clock.Now)
	clock.Advance(2500 * time.Millisecond)
	if got := session.DurationSeconds(); got != 2 {
		t.Fatalf("expected truncated duration 2, got %d", got)
	}
}

func TestResultsAnswerDetailsInOrder(t *testing.T) {
	session := NewSession("s", testQuestions(3))
	session.SubmitAnswer(1)
	session.SubmitAnswer(3)

	results := session.Results()
	want := []domain.AnswerDetail{
		{QuestionID: 1, Question: "Question", SelectedAnswer: 1, CorrectAnswer: 1, IsCorrect: true},
		{QuestionID: 2, Question: "Question", SelectedAnswer: 3, CorrectAnswer: 2, IsCorrect: false},
	}
	if len(results.AnswerDetails) != len(want) {
		t.Fatalf("expected %d details, got %d", len(want), len(results.AnswerDetails))
	}
	for i := range want {
		if results.AnswerDetails[i] != want[i] {
			t.Fatalf("detail %d = %+v, want %+v", i, results.AnswerDetails[i], want[i])
		}
	}
	if results.Score != results.CorrectAnswers*domain.PointsPerCorrectAnswer {
		t.Fatalf("score %d inconsistent with %d correct", results.Score, results.CorrectAnswers)
	}
}

func TestAnswerSnapshot(t *testing.T) {
	session := NewSession("s", testQuestions(2))

	outcome := session.Answer(1)
	if !outcome.IsCorrect || outcome.Score != 10 || outcome.Progress != 50 || outcome.IsCompleted {
		t.Fatalf("unexpected first outcome: %+v", outcome)
	}
	if outcome.NextQuestion == nil || outcome.NextQuestion.ID != 2 {
		t.Fatalf("expected question 2 next, got %+v", outcome.NextQuestion)
	}

	outcome = session.Answer(0)
	if outcome.IsCorrect || !outcome.IsCompleted || outcome.NextQuestion != nil || outcome.Progress != 100 {
		t.Fatalf("unexpected final outcome: %+v", outcome)
	}
}

func TestConcurrentSubmissionsAdvanceOncePerAnswer(t *testing.T) {
	session := NewSession("s", testQuestions(20))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.SubmitAnswer(0)
		}()
	}
	wg.Wait()

	stats := session.Stats()
	if stats.AnsweredQuestions != 20 || stats.CurrentQuestionIndex != 20 || !stats.IsCompleted {
		t.Fatalf("unexpected stats after concurrent submissions: %+v", stats)
	}
}

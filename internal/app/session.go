package app

import (
	"sync"
	"time"

	"quiz-timer-service/internal/domain"
)

// Session is one play-through over a fixed, already-sampled question list.
// It only moves forward: each submission advances the position by one until
// the list is exhausted, after which the session is read-only.
type Session struct {
	id        string
	questions []domain.Question
	now       func() time.Time

	mu        sync.RWMutex
	position  int
	answers   map[int]int // question id -> selected index
	answered  []domain.Question
	score     int
	completed bool
	startedAt time.Time
	endedAt   time.Time
}

// NewSession copies questions so the caller keeps no handle on session state.
func NewSession(id string, questions []domain.Question) *Session {
	return NewSessionWithClock(id, questions, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, questions []domain.Question, now func() time.Time) *Session {
	copied := make([]domain.Question, len(questions))
	for i, q := range questions {
		copied[i] = q.Clone()
	}
	s := &Session{
		id:        id,
		questions: copied,
		now:       now,
		answers:   make(map[int]int, len(copied)),
		answered:  make([]domain.Question, 0, len(copied)),
		startedAt: now(),
	}
	if len(copied) == 0 {
		s.completed = true
		s.endedAt = s.startedAt
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// EndedAt returns the completion time, or false while the session is in progress.
func (s *Session) EndedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endedAt, s.completed
}

func (s *Session) TotalQuestions() int {
	return len(s.questions)
}

func (s *Session) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

func (s *Session) IsCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

// CurrentQuestion returns the question awaiting an answer, or false once completed.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := s.currentLocked()
	if q == nil {
		return domain.Question{}, false
	}
	return q.Clone(), true
}

// SubmitAnswer records selected against the current question and advances.
// Any index is accepted; one that differs from the correct index (including
// -1 for "no answer") is simply wrong. On a completed session it is a no-op
// that reports false.
func (s *Session) SubmitAnswer(selected int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(selected)
}

// Answer is SubmitAnswer plus a consistent snapshot of the state it produced.
func (s *Session) Answer(selected int) domain.AnswerOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct := s.submitLocked(selected)
	outcome := domain.AnswerOutcome{
		IsCorrect:   correct,
		IsCompleted: s.completed,
		Score:       s.score,
		Progress:    s.progressLocked(),
	}
	if next := s.currentLocked(); next != nil {
		q := next.Clone()
		outcome.NextQuestion = &q
	}
	return outcome
}

// Finish closes the session to further answers. Questions not yet answered
// stay unanswered. Finishing a completed session changes nothing.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return
	}
	s.completeLocked()
}

func (s *Session) ProgressPercentage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progressLocked()
}

func (s *Session) AccuracyPercentage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accuracyLocked()
}

func (s *Session) CorrectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.correctLocked()
}

// DurationSeconds is the elapsed time from start to completion (or now), in whole seconds.
func (s *Session) DurationSeconds() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.durationLocked()
}

func (s *Session) Stats() domain.SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SessionStats{
		SessionID:            s.id,
		CurrentQuestionIndex: s.position,
		TotalQuestions:       len(s.questions),
		AnsweredQuestions:    len(s.answered),
		Score:                s.score,
		ProgressPercentage:   s.progressLocked(),
		AccuracyPercentage:   s.accuracyLocked(),
		IsCompleted:          s.completed,
		DurationSeconds:      s.durationLocked(),
	}
}

func (s *Session) Results() domain.Results {
	s.mu.RLock()
	defer s.mu.RUnlock()

	details := make([]domain.AnswerDetail, 0, len(s.answered))
	for _, q := range s.answered {
		selected := s.answers[q.ID]
		details = append(details, domain.AnswerDetail{
			QuestionID:     q.ID,
			Question:       q.Prompt,
			SelectedAnswer: selected,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      q.IsCorrect(selected),
		})
	}
	return domain.Results{
		SessionID:          s.id,
		TotalQuestions:     len(s.questions),
		AnsweredQuestions:  len(s.answered),
		CorrectAnswers:     s.correctLocked(),
		Score:              s.score,
		AccuracyPercentage: s.accuracyLocked(),
		DurationSeconds:    s.durationLocked(),
		IsCompleted:        s.completed,
		AnswerDetails:      details,
	}
}

func (s *Session) submitLocked(selected int) bool {
	current := s.currentLocked()
	if current == nil {
		return false
	}

	s.answers[current.ID] = selected
	s.answered = append(s.answered, *current)

	correct := current.IsCorrect(selected)
	if correct {
		s.score += domain.PointsPerCorrectAnswer
	}

	s.position++
	if s.position >= len(s.questions) {
		s.completeLocked()
	}
	return correct
}

func (s *Session) completeLocked() {
	s.completed = true
	s.endedAt = s.now()
}

func (s *Session) currentLocked() *domain.Question {
	if s.completed || s.position >= len(s.questions) {
		return nil
	}
	return &s.questions[s.position]
}

func (s *Session) progressLocked() int {
	if len(s.questions) == 0 {
		return 0
	}
	return len(s.answered) * 100 / len(s.questions)
}

func (s *Session) accuracyLocked() int {
	if len(s.answered) == 0 {
		return 0
	}
	return s.correctLocked() * 100 / len(s.answered)
}

func (s *Session) correctLocked() int {
	count := 0
	for id, selected := range s.answers {
		for i := range s.questions {
			if s.questions[i].ID == id {
				if s.questions[i].IsCorrect(selected) {
					count++
				}
				break
			}
		}
	}
	return count
}

func (s *Session) durationLocked() int64 {
	end := s.endedAt
	if !s.completed {
		end = s.now()
	}
	return int64(end.Sub(s.startedAt) / time.Second)
}

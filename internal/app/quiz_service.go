package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quiz-timer-service/internal/domain"
)

// SessionRepository abstracts where live sessions are registered (in-memory, Redis-aware, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuizService contains the quiz use cases shared by the HTTP and console surfaces.
type QuizService struct {
	bank     *Bank
	sessions SessionRepository
	logger   *zap.SugaredLogger
	newID    func() string
	newSess  func(id string, questions []domain.Question) *Session
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithIDGenerator replaces the UUID session id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *QuizService) { s.newID = newID }
}

// WithSessionFactory lets tests build sessions with a fake clock.
func WithSessionFactory(newSess func(id string, questions []domain.Question) *Session) Option {
	return func(s *QuizService) { s.newSess = newSess }
}

func NewQuizService(bank *Bank, store SessionRepository, logger *zap.SugaredLogger, opts ...Option) *QuizService {
	s := &QuizService{
		bank:     bank,
		sessions: store,
		logger:   logger,
		newID:    uuid.NewString,
		newSess:  NewSession,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TotalQuestions is the size of the underlying bank.
func (s *QuizService) TotalQuestions() int {
	return s.bank.TotalCount()
}

// CreateSession samples questionCount questions and registers a new session.
func (s *QuizService) CreateSession(_ context.Context, questionCount int) *Session {
	questions := s.bank.Sample(questionCount)
	session := s.newSess(s.newID(), questions)
	s.sessions.Save(session)

	s.logger.Infow("quiz session created",
		"sessionId", session.ID(),
		"requested", questionCount,
		"questions", session.TotalQuestions(),
	)
	return session
}

// GetSession returns the session registered under sessionID.
func (s *QuizService) GetSession(_ context.Context, sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// CurrentQuestion returns the question awaiting an answer; false once the session is completed.
func (s *QuizService) CurrentQuestion(ctx context.Context, sessionID string) (domain.Question, bool, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Question{}, false, err
	}
	q, ok := session.CurrentQuestion()
	return q, ok, nil
}

// SubmitAnswer forwards selected to the session and reports the resulting state.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, selected int) (domain.AnswerOutcome, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.AnswerOutcome{}, err
	}

	wasCompleted := session.IsCompleted()
	outcome := session.Answer(selected)
	s.logger.Debugw("answer submitted",
		"sessionId", sessionID,
		"selected", selected,
		"correct", outcome.IsCorrect,
		"score", outcome.Score,
	)
	if !wasCompleted && outcome.IsCompleted {
		s.logger.Infow("quiz session completed", "sessionId", sessionID, "score", outcome.Score)
	}
	return outcome, nil
}

// EndSession closes the session to further answers. It is idempotent and
// reports false only when the session is unknown.
func (s *QuizService) EndSession(ctx context.Context, sessionID string) bool {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return false
	}
	if !session.IsCompleted() {
		session.Finish()
		s.logger.Infow("quiz session ended early",
			"sessionId", sessionID,
			"answered", session.Stats().AnsweredQuestions,
			"total", session.TotalQuestions(),
		)
	}
	return true
}

// FinalResults summarizes the session's answers so far.
func (s *QuizService) FinalResults(ctx context.Context, sessionID string) (domain.Results, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Results{}, err
	}
	return session.Results(), nil
}

// Stats returns a progress snapshot for the session.
func (s *QuizService) Stats(ctx context.Context, sessionID string) (domain.SessionStats, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.SessionStats{}, err
	}
	return session.Stats(), nil
}

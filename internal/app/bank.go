package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"quiz-timer-service/internal/domain"
)

// QuestionLoader fetches the question catalog from a backing source (seed data, Postgres, cache).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// Bank is the immutable catalog sessions sample from.
type Bank struct {
	questions []domain.Question

	mu  sync.Mutex // guards rnd; *rand.Rand is not safe for concurrent use
	rnd *rand.Rand
}

// LoadBank builds a bank from whatever the loader returns.
func LoadBank(ctx context.Context, loader QuestionLoader) (*Bank, error) {
	questions, err := loader.LoadQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return NewBank(questions)
}

func NewBank(questions []domain.Question) (*Bank, error) {
	return NewBankWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewBankWithRand is used by tests that need a reproducible shuffle.
func NewBankWithRand(questions []domain.Question, rnd *rand.Rand) (*Bank, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	seen := make(map[int]struct{}, len(questions))
	copied := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id: %w", q.ID, domain.ErrInvalidQuestion)
		}
		seen[q.ID] = struct{}{}
		copied = append(copied, q.Clone())
	}
	return &Bank{questions: copied, rnd: rnd}, nil
}

// TotalCount returns the number of questions in the bank.
func (b *Bank) TotalCount() int {
	return len(b.questions)
}

// Sample draws up to n distinct questions in uniformly random order.
// Non-positive n yields an empty slice; n above the bank size is clamped.
func (b *Bank) Sample(n int) []domain.Question {
	if n <= 0 {
		return []domain.Question{}
	}
	if n > len(b.questions) {
		n = len(b.questions)
	}

	shuffled := make([]domain.Question, len(b.questions))
	for i, q := range b.questions {
		shuffled[i] = q.Clone()
	}

	b.mu.Lock()
	b.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	b.mu.Unlock()

	return shuffled[:n:n]
}

func validateQuestion(q domain.Question) error {
	switch {
	case q.Prompt == "":
		return fmt.Errorf("question %d: empty prompt: %w", q.ID, domain.ErrInvalidQuestion)
	case len(q.Options) == 0:
		return fmt.Errorf("question %d: no options: %w", q.ID, domain.ErrInvalidQuestion)
	case q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options):
		return fmt.Errorf("question %d: correct answer %d out of range: %w", q.ID, q.CorrectAnswer, domain.ErrInvalidQuestion)
	case q.TimeLimit <= 0:
		return fmt.Errorf("question %d: non-positive time limit: %w", q.ID, domain.ErrInvalidQuestion)
	}
	return nil
}

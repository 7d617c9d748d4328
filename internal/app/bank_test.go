package app

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"quiz-timer-service/internal/domain"
)

func TestNewBankRejectsEmpty(t *testing.T) {
	if _, err := NewBank(nil); !errors.Is(err, domain.ErrEmptyBank) {
		t.Fatalf("expected ErrEmptyBank, got %v", err)
	}
}

func TestNewBankValidatesQuestions(t *testing.T) {
	valid := domain.Question{ID: 1, Prompt: "p", Options: []string{"a", "b"}, CorrectAnswer: 1, TimeLimit: 30}
	tests := []struct {
		name   string
		mutate func(q *domain.Question)
	}{
		{"empty prompt", func(q *domain.Question) { q.Prompt = "" }},
		{"no options", func(q *domain.Question) { q.Options = nil }},
		{"correct index too high", func(q *domain.Question) { q.CorrectAnswer = 2 }},
		{"negative correct index", func(q *domain.Question) { q.CorrectAnswer = -1 }},
		{"zero time limit", func(q *domain.Question) { q.TimeLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid.Clone()
			tt.mutate(&q)
			if _, err := NewBank([]domain.Question{q}); !errors.Is(err, domain.ErrInvalidQuestion) {
				t.Fatalf("expected ErrInvalidQuestion, got %v", err)
			}
		})
	}

	if _, err := NewBank([]domain.Question{valid, valid}); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected duplicate id rejection, got %v", err)
	}
}

func TestSampleClampsAndDrawsDistinct(t *testing.T) {
	bank := newTestBank(t, 25)

	for _, n := range []int{1, 5, 25} {
		got := bank.Sample(n)
		if len(got) != n {
			t.Fatalf("Sample(%d) returned %d questions", n, len(got))
		}
		assertDistinctFromBank(t, got, 25)
	}

	if got := bank.Sample(1000); len(got) != 25 {
		t.Fatalf("expected clamp to 25, got %d", len(got))
	}
	if got := bank.Sample(0); len(got) != 0 {
		t.Fatalf("expected empty sample for 0, got %d", len(got))
	}
	if got := bank.Sample(-3); len(got) != 0 {
		t.Fatalf("expected empty sample for negative count, got %d", len(got))
	}
}

func TestSampleDoesNotMutateBank(t *testing.T) {
	bank := newTestBank(t, 10)
	before := bank.Sample(10)
	before[0].Options[0] = "mutated"
	before[0].Prompt = "mutated"

	for _, q := range bank.questions {
		if q.Prompt == "mutated" || q.Options[0] == "mutated" {
			t.Fatalf("sample shares state with bank: %+v", q)
		}
	}
	for i, q := range bank.questions {
		if q.ID != i+1 {
			t.Fatalf("bank order changed by sampling: position %d holds id %d", i, q.ID)
		}
	}
}

func TestSampleIsShuffled(t *testing.T) {
	bank := newTestBank(t, 25)
	identity := 0
	for i := 0; i < 20; i++ {
		got := bank.Sample(25)
		inOrder := true
		for j, q := range got {
			if q.ID != j+1 {
				inOrder = false
				break
			}
		}
		if inOrder {
			identity++
		}
	}
	if identity == 20 {
		t.Fatalf("sampling never permuted the bank")
	}
}

func TestLoadBank(t *testing.T) {
	bank, err := LoadBank(context.Background(), loaderFunc(func(context.Context) ([]domain.Question, error) {
		return testQuestions(3), nil
	}))
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if bank.TotalCount() != 3 {
		t.Fatalf("expected 3 questions, got %d", bank.TotalCount())
	}

	boom := errors.New("boom")
	_, err = LoadBank(context.Background(), loaderFunc(func(context.Context) ([]domain.Question, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}

type loaderFunc func(ctx context.Context) ([]domain.Question, error)

func (f loaderFunc) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	return f(ctx)
}

func newTestBank(t *testing.T, n int) *Bank {
	t.Helper()
	bank, err := NewBankWithRand(testQuestions(n), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("new bank: %v", err)
	}
	return bank
}

// testQuestions builds n questions with ids 1..n whose correct answer is id%4.
func testQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:            i,
			Prompt:        "Question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			TimeLimit:     30,
		})
	}
	return questions
}

func assertDistinctFromBank(t *testing.T, questions []domain.Question, bankSize int) {
	t.Helper()
	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if q.ID < 1 || q.ID > bankSize {
			t.Fatalf("question id %d not in bank", q.ID)
		}
		if seen[q.ID] {
			t.Fatalf("question id %d drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-timer-service/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID   int             `bun:"id,pk"`
	Data json.RawMessage `bun:"data,type:jsonb"`
}

// SeedQuestions upserts questions into the questions table.
func SeedQuestions(ctx context.Context, db bun.IDB, questions []domain.Question) (int, error) {
	rows, err := toRows(questions)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	_, err = db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	return len(rows), nil
}

func toRows(questions []domain.Question) ([]questionRow, error) {
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		data, err := json.Marshal(q)
		if err != nil {
			return nil, fmt.Errorf("marshal question %d: %w", q.ID, err)
		}
		rows = append(rows, questionRow{ID: q.ID, Data: data})
	}
	return rows, nil
}

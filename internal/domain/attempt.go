package domain

import (
	"context"
	"time"
)

// QuizAttempt is the durable record of one finished quiz.
type QuizAttempt struct {
	ID        string
	Topic     string
	Mode      QuizMode
	Score     int
	Total     int
	Review    []ReviewItem
	CreatedAt time.Time
}

// AttemptRepository persists finished attempts for later review.
type AttemptRepository interface {
	Save(ctx context.Context, attempt *QuizAttempt) error
	ListRecent(ctx context.Context, limit int) ([]*QuizAttempt, error)
}

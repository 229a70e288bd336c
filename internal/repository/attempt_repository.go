package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"quizwhiz/internal/domain"
	"quizwhiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

// reviewRecord is the stored form of one review row. Questions are flattened
// to what the review screen needs; the full question does not round-trip.
type reviewRecord struct {
	Kind          string `json:"kind"`
	Prompt        string `json:"prompt"`
	UserAnswer    string `json:"user_answer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

func encodeReview(review []domain.ReviewItem) (string, error) {
	records := make([]reviewRecord, len(review))
	for i, item := range review {
		records[i] = reviewRecord{
			Kind:          string(item.Question.Kind()),
			Prompt:        item.Question.Prompt(),
			UserAnswer:    item.UserAnswer,
			Correct:       item.Correct,
			CorrectAnswer: item.CorrectAnswer,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeReview(data string) ([]domain.ReviewItem, error) {
	var records []reviewRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	review := make([]domain.ReviewItem, len(records))
	for i, r := range records {
		var q domain.Question
		switch domain.QuestionKind(r.Kind) {
		case domain.KindTrueFalse:
			q = &domain.TrueFalseQuestion{Text: r.Prompt, Answer: r.CorrectAnswer}
		case domain.KindFillInBlank:
			q = &domain.FillInBlankQuestion{Text: r.Prompt, Answer: r.CorrectAnswer}
		default:
			q = &domain.MultipleChoiceQuestion{Text: r.Prompt, Answer: r.CorrectAnswer}
		}
		review[i] = domain.ReviewItem{
			Question:      q,
			UserAnswer:    r.UserAnswer,
			Correct:       r.Correct,
			CorrectAnswer: r.CorrectAnswer,
		}
	}
	return review, nil
}

// Save implements domain.AttemptRepository.
func (r *sqlxAttemptRepository) Save(ctx context.Context, attempt *domain.QuizAttempt) error {
	review, err := encodeReview(attempt.Review)
	if err != nil {
		return fmt.Errorf("failed to encode review: %w", err)
	}
	model := &models.QuizAttempt{
		ID:        attempt.ID,
		Topic:     attempt.Topic,
		Mode:      string(attempt.Mode),
		Score:     attempt.Score,
		Total:     attempt.Total,
		Review:    review,
		CreatedAt: attempt.CreatedAt,
	}

	query := `INSERT INTO quiz_attempts (id, topic, mode, score, total, review, created_at)
		VALUES (:id, :topic, :mode, :score, :total, :review, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	return nil
}

// ListRecent implements domain.AttemptRepository.
func (r *sqlxAttemptRepository) ListRecent(ctx context.Context, limit int) ([]*domain.QuizAttempt, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []models.QuizAttempt
	query := `SELECT id, topic, mode, score, total, review, created_at
		FROM quiz_attempts ORDER BY created_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(rows))
	for _, row := range rows {
		review, err := decodeReview(row.Review)
		if err != nil {
			return nil, fmt.Errorf("failed to decode review for attempt %s: %w", row.ID, err)
		}
		attempts = append(attempts, &domain.QuizAttempt{
			ID:        row.ID,
			Topic:     row.Topic,
			Mode:      domain.QuizMode(row.Mode),
			Score:     row.Score,
			Total:     row.Total,
			Review:    review,
			CreatedAt: row.CreatedAt,
		})
	}
	return attempts, nil
}

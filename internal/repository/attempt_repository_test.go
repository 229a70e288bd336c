package repository

import (
	"context"
	"testing"
	"time"

	"quizwhiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAttemptTestDB creates a new sqlx.DB instance and sqlmock for attempt repository testing.
func setupAttemptTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	// Bind as sqlite3 so named parameters compile to ? placeholders.
	sqlxDB := sqlx.NewDb(mockDB, "sqlite3")
	return sqlxDB, mock
}

func sampleAttempt() *domain.QuizAttempt {
	q0 := &domain.MultipleChoiceQuestion{Text: "Q0", Options: []string{"A", "B", "C", "D"}, Answer: "A", Level: domain.DifficultyEasy}
	q1 := &domain.TrueFalseQuestion{Text: "Q1", Answer: "True", Level: domain.DifficultyMedium}
	return &domain.QuizAttempt{
		ID:    "01HZX3ATTEMPT",
		Topic: "astronomy",
		Mode:  domain.ModeMixed,
		Score: 1,
		Total: 2,
		Review: []domain.ReviewItem{
			{Question: q0, UserAnswer: "A", Correct: true, CorrectAnswer: "A"},
			{Question: q1, UserAnswer: "false", Correct: false, CorrectAnswer: "True"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestAttemptRepository_Save(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	mock.ExpectExec(`INSERT INTO quiz_attempts`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), sampleAttempt())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_ListRecent(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	review := `[{"kind":"MCQ","prompt":"Q0","user_answer":"B","correct":false,"correct_answer":"A"}]`

	rows := sqlmock.NewRows([]string{"id", "topic", "mode", "score", "total", "review", "created_at"}).
		AddRow("01HZX3ATTEMPT", "astronomy", "mcq", 0, 1, review, now)

	mock.ExpectQuery(`SELECT id, topic, mode, score, total, review, created_at\s+FROM quiz_attempts ORDER BY created_at DESC LIMIT`).
		WithArgs(10).
		WillReturnRows(rows)

	attempts, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	attempt := attempts[0]
	assert.Equal(t, "01HZX3ATTEMPT", attempt.ID)
	assert.Equal(t, domain.ModeMultipleChoice, attempt.Mode)
	assert.Equal(t, 0, attempt.Score)
	require.Len(t, attempt.Review, 1)
	assert.Equal(t, "Q0", attempt.Review[0].Question.Prompt())
	assert.False(t, attempt.Review[0].Correct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_ListRecent_DefaultLimit(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	mock.ExpectQuery(`SELECT id, topic, mode, score, total, review, created_at`).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "topic", "mode", "score", "total", "review", "created_at"}))

	attempts, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRoundTrip(t *testing.T) {
	attempt := sampleAttempt()
	encoded, err := encodeReview(attempt.Review)
	require.NoError(t, err)

	decoded, err := decodeReview(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "Q0", decoded[0].Question.Prompt())
	assert.True(t, decoded[0].Correct)
	assert.Equal(t, domain.KindTrueFalse, decoded[1].Question.Kind())
	assert.Equal(t, "True", decoded[1].CorrectAnswer)
}

package models

import "time"

// QuizAttempt is the database row for one finished quiz attempt.
type QuizAttempt struct {
	ID        string    `db:"id"`
	Topic     string    `db:"topic"`
	Mode      string    `db:"mode"`
	Score     int       `db:"score"`
	Total     int       `db:"total"`
	Review    string    `db:"review"` // JSON-encoded review list
	CreatedAt time.Time `db:"created_at"`
}

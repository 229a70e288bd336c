package dto

import "time"

// StartQuizRequest is the request body for creating a quiz session
type StartQuizRequest struct {
	Topic string `json:"topic"`
	Mode  string `json:"mode,omitempty"` // "mcq" (default) or "mixed"
}

// QuestionView is a question as shown to the student. It never carries the
// correct answer.
type QuestionView struct {
	Kind       string   `json:"kind"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options,omitempty"`
	Difficulty string   `json:"difficulty"`
	Number     int      `json:"number"` // 1-based position in the quiz
}

// StartQuizResponse returns the new session and its access token
type StartQuizResponse struct {
	SessionID string        `json:"session_id"`
	Token     string        `json:"token"`
	State     string        `json:"state"`
	Total     int           `json:"total"`
	Question  *QuestionView `json:"question"`
}

// AnswerRequest carries one submitted answer
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// RemediationView is the tutoring content shown after a wrong answer.
// The follow-up question is included without its answer key.
type RemediationView struct {
	Diagnosis   string       `json:"diagnosis"`
	MicroLesson string       `json:"micro_lesson"`
	FollowUp    QuestionView `json:"follow_up"`
}

// AnswerResult describes what a submitted answer did to the session
type AnswerResult struct {
	Correct     bool             `json:"correct"`
	State       string           `json:"state"`
	Question    *QuestionView    `json:"question,omitempty"`    // next question, when playing continues
	Remediation *RemediationView `json:"remediation,omitempty"` // present after a wrong answer
	Report      *ReportResponse  `json:"report,omitempty"`      // present when the quiz finished
}

// FollowUpResult reveals how the follow-up check went
type FollowUpResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// ResumeResult continues the quiz after remediation
type ResumeResult struct {
	State    string          `json:"state"`
	Question *QuestionView   `json:"question,omitempty"`
	Report   *ReportResponse `json:"report,omitempty"`
}

// SessionView is the full current state of a session, enough for a client
// to rebuild its screen after a reload.
type SessionView struct {
	SessionID          string           `json:"session_id"`
	Topic              string           `json:"topic"`
	Mode               string           `json:"mode"`
	State              string           `json:"state"`
	Total              int              `json:"total"`
	CurrentNumber      int              `json:"current_number"` // 1-based
	Question           *QuestionView    `json:"question,omitempty"`
	Remediation        *RemediationView `json:"remediation,omitempty"`
	RemediationPending bool             `json:"remediation_pending,omitempty"`
	FollowUpAnswered   bool             `json:"follow_up_answered,omitempty"`
	Report             *ReportResponse  `json:"report,omitempty"`
}

// ReviewItemView is one row of the post-quiz review
type ReviewItemView struct {
	Kind          string `json:"kind"`
	Prompt        string `json:"prompt"`
	UserAnswer    string `json:"user_answer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// ReportResponse is the final score and review for a finished quiz
type ReportResponse struct {
	SessionID string           `json:"session_id"`
	Topic     string           `json:"topic"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Review    []ReviewItemView `json:"review"`
}

// AttemptView is one stored attempt in the history listing
type AttemptView struct {
	ID        string           `json:"id"`
	Topic     string           `json:"topic"`
	Mode      string           `json:"mode"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Review    []ReviewItemView `json:"review,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// AttemptsResponse lists recent finished attempts
type AttemptsResponse struct {
	Attempts []AttemptView `json:"attempts"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

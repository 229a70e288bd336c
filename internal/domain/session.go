package domain

import (
	"encoding/json"
	"time"
)

// SessionState is the quiz session lifecycle state.
type SessionState string

const (
	StateIdle        SessionState = "idle"
	StatePlaying     SessionState = "playing"
	StateRemediating SessionState = "remediating"
	StateFinished    SessionState = "finished"
)

// QuizMode selects which question kinds a quiz is built from.
type QuizMode string

const (
	// ModeMultipleChoice builds the quiz from multiple-choice items only.
	ModeMultipleChoice QuizMode = "mcq"
	// ModeMixed mixes multiple-choice, true/false and fill-in-the-blank items.
	ModeMixed QuizMode = "mixed"
)

// Session is the mutable state of one quiz attempt. It is mutated only by
// its transition methods; every transition validates the current state first,
// so an out-of-order call from the UI layer is rejected instead of corrupting
// the attempt. A session is owned exclusively by one student flow and is
// never shared.
type Session struct {
	ID           string
	Topic        string
	Mode         QuizMode
	State        SessionState
	Questions    QuestionList
	CurrentIndex int
	Answers      []string
	Pending      *RemediationPacket
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSession creates an idle session waiting for a question batch.
func NewSession(id, topic string, mode QuizMode) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Topic:     topic,
		Mode:      mode,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start installs the generated batch and begins play.
// Valid only from Idle with a non-empty batch.
func (s *Session) Start(questions []Question) error {
	if s.State != StateIdle {
		return NewInvalidStateError("start", s.State)
	}
	if len(questions) == 0 {
		return NewEmptyBatchError(s.Topic)
	}
	s.Questions = questions
	s.CurrentIndex = 0
	s.Answers = nil
	s.Pending = nil
	s.State = StatePlaying
	s.touch()
	return nil
}

// AnswerOutcome describes what a submitted answer did to the session.
type AnswerOutcome struct {
	Correct  bool
	Finished bool
	// NeedsRemediation is set when the answer was wrong and the session is
	// now waiting for a remediation packet.
	NeedsRemediation bool
}

// SubmitAnswer records the student's answer for the current question and
// advances the machine. A correct answer moves to the next question (or
// finishes); a wrong answer parks the session in Remediating without
// advancing. The missed question's index moves only on Resume.
func (s *Session) SubmitAnswer(answer string) (AnswerOutcome, error) {
	if s.State != StatePlaying {
		return AnswerOutcome{}, NewInvalidStateError("submit_answer", s.State)
	}
	s.Answers = append(s.Answers, answer)
	s.touch()

	if !AnswerMatches(s.Questions[s.CurrentIndex], answer) {
		s.State = StateRemediating
		s.Pending = nil
		return AnswerOutcome{NeedsRemediation: true}, nil
	}
	if s.CurrentIndex == len(s.Questions)-1 {
		s.State = StateFinished
		return AnswerOutcome{Correct: true, Finished: true}, nil
	}
	s.CurrentIndex++
	return AnswerOutcome{Correct: true}, nil
}

// AttachRemediation installs a validated packet for the pending wrong answer.
// Valid only while Remediating with no packet present; a failed generation
// leaves the session here so the same request can be retried.
func (s *Session) AttachRemediation(packet *RemediationPacket) error {
	if s.State != StateRemediating {
		return NewInvalidStateError("attach_remediation", s.State)
	}
	if s.Pending != nil {
		return NewInvalidStateError("attach_remediation", s.State)
	}
	s.Pending = packet
	s.touch()
	return nil
}

// SubmitFollowUpAnswer records the student's answer to the follow-up check.
// At most one answer is accepted per packet; the state machine rejects a
// second submission so the follow-up cannot be double-scored.
func (s *Session) SubmitFollowUpAnswer(answer string) (bool, error) {
	if s.State != StateRemediating || s.Pending == nil {
		return false, NewInvalidStateError("submit_follow_up", s.State)
	}
	if s.Pending.FollowUpAnswered {
		return false, NewInvalidStateError("submit_follow_up", s.State)
	}
	s.Pending.FollowUpAnswer = answer
	s.Pending.FollowUpAnswered = true
	s.touch()
	return s.Pending.FollowUpCorrect(), nil
}

// Resume clears the remediation packet and moves past the missed question.
// Progression does not depend on the follow-up being answered correctly;
// remediation teaches, it does not gate. Valid only after the follow-up
// answer was recorded.
func (s *Session) Resume() error {
	if s.State != StateRemediating || s.Pending == nil || !s.Pending.FollowUpAnswered {
		return NewInvalidStateError("resume", s.State)
	}
	s.Pending = nil
	s.touch()
	if s.CurrentIndex == len(s.Questions)-1 {
		s.State = StateFinished
		return nil
	}
	s.CurrentIndex++
	s.State = StatePlaying
	return nil
}

// Reset abandons the attempt and returns to Idle. Valid from any state.
func (s *Session) Reset() {
	s.Questions = nil
	s.Answers = nil
	s.CurrentIndex = 0
	s.Pending = nil
	s.State = StateIdle
	s.touch()
}

// CurrentQuestion returns the question at the cursor. It is the question
// being played, or the missed question while remediating.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.State != StatePlaying && s.State != StateRemediating {
		return nil, NewInvalidStateError("current_question", s.State)
	}
	return s.Questions[s.CurrentIndex], nil
}

// LastAnswer returns the most recently recorded answer.
func (s *Session) LastAnswer() string {
	if len(s.Answers) == 0 {
		return ""
	}
	return s.Answers[len(s.Answers)-1]
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// sessionSnapshot is the serialized form of a session. Persistence is a thin
// boundary around the state machine: the machine itself never talks to a
// store.
type sessionSnapshot struct {
	ID           string             `json:"id"`
	Topic        string             `json:"topic"`
	Mode         QuizMode           `json:"mode"`
	State        SessionState       `json:"state"`
	Questions    QuestionList       `json:"questions,omitempty"`
	CurrentIndex int                `json:"current_index"`
	Answers      []string           `json:"answers,omitempty"`
	Pending      *RemediationPacket `json:"pending,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionSnapshot{
		ID:           s.ID,
		Topic:        s.Topic,
		Mode:         s.Mode,
		State:        s.State,
		Questions:    s.Questions,
		CurrentIndex: s.CurrentIndex,
		Answers:      s.Answers,
		Pending:      s.Pending,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.ID = snap.ID
	s.Topic = snap.Topic
	s.Mode = snap.Mode
	s.State = snap.State
	s.Questions = snap.Questions
	s.CurrentIndex = snap.CurrentIndex
	s.Answers = snap.Answers
	s.Pending = snap.Pending
	s.CreatedAt = snap.CreatedAt
	s.UpdatedAt = snap.UpdatedAt
	return nil
}

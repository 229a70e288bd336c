package domain

import (
	"encoding/json"
	"strings"
)

// RemediationPacket carries the tutoring content generated for one
// wrong-answer event. It lives only while its session is Remediating.
type RemediationPacket struct {
	Diagnosis        string
	MicroLesson      string
	FollowUp         *MultipleChoiceQuestion
	FollowUpAnswer   string
	FollowUpAnswered bool
}

// NewRemediationPacket builds a packet and checks the shape contract:
// non-empty diagnosis and micro-lesson, and a follow-up check question with
// exactly four distinct options, a correct answer among them, and Easy
// difficulty. Generated content that violates the contract never reaches a
// session.
func NewRemediationPacket(diagnosis, microLesson string, followUp *MultipleChoiceQuestion) (*RemediationPacket, error) {
	if strings.TrimSpace(diagnosis) == "" {
		return nil, NewInvalidInputError("diagnosis is required")
	}
	if strings.TrimSpace(microLesson) == "" {
		return nil, NewInvalidInputError("micro-lesson is required")
	}
	if followUp == nil {
		return nil, NewInvalidInputError("follow-up question is required")
	}
	if len(followUp.Options) != 4 {
		return nil, NewInvalidInputError("follow-up question must offer exactly 4 options")
	}
	if err := followUp.Validate(); err != nil {
		return nil, err
	}
	followUp.Level = DifficultyEasy
	return &RemediationPacket{
		Diagnosis:   diagnosis,
		MicroLesson: microLesson,
		FollowUp:    followUp,
	}, nil
}

// FollowUpCorrect reports whether the recorded follow-up answer matches.
// Follow-up answers are always one of the offered option strings, so the
// comparison is case-sensitive exact match.
func (p *RemediationPacket) FollowUpCorrect() bool {
	return p.FollowUpAnswered && p.FollowUpAnswer == p.FollowUp.Answer
}

// remediationSnapshot is the packet's wire form inside session snapshots.
type remediationSnapshot struct {
	Diagnosis        string           `json:"diagnosis"`
	MicroLesson      string           `json:"micro_lesson"`
	FollowUp         questionEnvelope `json:"follow_up"`
	FollowUpAnswer   string           `json:"follow_up_answer,omitempty"`
	FollowUpAnswered bool             `json:"follow_up_answered"`
}

func (p *RemediationPacket) MarshalJSON() ([]byte, error) {
	return json.Marshal(remediationSnapshot{
		Diagnosis:   p.Diagnosis,
		MicroLesson: p.MicroLesson,
		FollowUp: questionEnvelope{
			Kind:       KindMultipleChoice,
			Prompt:     p.FollowUp.Text,
			Options:    p.FollowUp.Options,
			Answer:     p.FollowUp.Answer,
			Difficulty: p.FollowUp.Level,
		},
		FollowUpAnswer:   p.FollowUpAnswer,
		FollowUpAnswered: p.FollowUpAnswered,
	})
}

func (p *RemediationPacket) UnmarshalJSON(data []byte) error {
	var snap remediationSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	p.Diagnosis = snap.Diagnosis
	p.MicroLesson = snap.MicroLesson
	p.FollowUp = &MultipleChoiceQuestion{
		Text:    snap.FollowUp.Prompt,
		Options: snap.FollowUp.Options,
		Answer:  snap.FollowUp.Answer,
		Level:   snap.FollowUp.Difficulty,
	}
	p.FollowUpAnswer = snap.FollowUpAnswer
	p.FollowUpAnswered = snap.FollowUpAnswered
	return nil
}

package domain

import "context"

// QuizGenerator is the port for the quiz content source. Implementations ask
// the inference gateway for a fixed-size batch of questions and validate the
// result before it reaches a session.
type QuizGenerator interface {
	// GenerateBatch produces the question batch for one quiz attempt.
	// It returns EmptyBatchError when no usable questions came back.
	GenerateBatch(ctx context.Context, topic string, mode QuizMode) ([]Question, error)
}

// RemediationGenerator is the port for generating the diagnosis, micro-lesson
// and follow-up check after a wrong answer. Implementations validate the
// packet shape and return MalformedRemediationError on violations; the
// session stays Remediating with no packet so the caller can retry.
type RemediationGenerator interface {
	Generate(ctx context.Context, topic string, question Question, wrongAnswer string) (*RemediationPacket, error)
}

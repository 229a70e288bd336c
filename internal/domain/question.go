package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionKind identifies the concrete variant of a question.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "MCQ"
	KindTrueFalse      QuestionKind = "TF"
	KindFillInBlank    QuestionKind = "FIB"
)

// Difficulty is informational only; it has no behavioral effect on scoring.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty normalizes a difficulty label. Unknown labels fall back to Easy.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// Question is the tagged variant for assessment items. Each concrete type
// carries only the fields its kind needs; exhaustive handling happens via
// type switches on the concrete types.
type Question interface {
	Kind() QuestionKind
	Prompt() string
	CorrectAnswer() string
	Difficulty() Difficulty
	Validate() error
}

// MultipleChoiceQuestion is a question answered by picking one of the offered options.
type MultipleChoiceQuestion struct {
	Text    string
	Options []string
	Answer  string
	Level   Difficulty
}

func (q *MultipleChoiceQuestion) Kind() QuestionKind     { return KindMultipleChoice }
func (q *MultipleChoiceQuestion) Prompt() string         { return q.Text }
func (q *MultipleChoiceQuestion) CorrectAnswer() string  { return q.Answer }
func (q *MultipleChoiceQuestion) Difficulty() Difficulty { return q.Level }

func (q *MultipleChoiceQuestion) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError("multiple choice question needs at least two options")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewInvalidInputError("multiple choice option must not be empty")
		}
		if seen[opt] {
			return NewInvalidInputError(fmt.Sprintf("duplicate option: %q", opt))
		}
		seen[opt] = true
	}
	if !seen[q.Answer] {
		return NewInvalidInputError(fmt.Sprintf("correct answer %q is not among the options", q.Answer))
	}
	return nil
}

// TrueFalseQuestion is a statement judged true or false.
type TrueFalseQuestion struct {
	Text   string
	Answer string
	Level  Difficulty
}

func (q *TrueFalseQuestion) Kind() QuestionKind     { return KindTrueFalse }
func (q *TrueFalseQuestion) Prompt() string         { return q.Text }
func (q *TrueFalseQuestion) CorrectAnswer() string  { return q.Answer }
func (q *TrueFalseQuestion) Difficulty() Difficulty { return q.Level }

func (q *TrueFalseQuestion) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	switch strings.ToLower(q.Answer) {
	case "true", "false":
		return nil
	}
	return NewInvalidInputError(fmt.Sprintf("true/false answer must be true or false, got %q", q.Answer))
}

// FillInBlankQuestion is answered with free text typed by the student.
type FillInBlankQuestion struct {
	Text   string
	Answer string
	Level  Difficulty
}

func (q *FillInBlankQuestion) Kind() QuestionKind     { return KindFillInBlank }
func (q *FillInBlankQuestion) Prompt() string         { return q.Text }
func (q *FillInBlankQuestion) CorrectAnswer() string  { return q.Answer }
func (q *FillInBlankQuestion) Difficulty() Difficulty { return q.Level }

func (q *FillInBlankQuestion) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if q.Answer == "" {
		return NewInvalidInputError("answer is required")
	}
	return nil
}

// AnswerMatches reports whether a submitted answer earns credit for q.
// Comparison is case-insensitive exact match: user-typed capitalization is
// not meaningful, but no trimming or fuzzy matching is applied.
func AnswerMatches(q Question, answer string) bool {
	return strings.ToLower(answer) == strings.ToLower(q.CorrectAnswer())
}

// Options returns the offered options of a question, or nil for kinds
// that are not option-based.
func Options(q Question) []string {
	if mcq, ok := q.(*MultipleChoiceQuestion); ok {
		return mcq.Options
	}
	return nil
}

// questionEnvelope is the wire form shared by every question kind. Session
// snapshots and API payloads round-trip questions through it.
type questionEnvelope struct {
	Kind       QuestionKind `json:"kind"`
	Prompt     string       `json:"prompt"`
	Options    []string     `json:"options,omitempty"`
	Answer     string       `json:"answer"`
	Difficulty Difficulty   `json:"difficulty"`
}

// MarshalQuestion encodes a question with its kind tag.
func MarshalQuestion(q Question) ([]byte, error) {
	env := questionEnvelope{
		Kind:       q.Kind(),
		Prompt:     q.Prompt(),
		Options:    Options(q),
		Answer:     q.CorrectAnswer(),
		Difficulty: q.Difficulty(),
	}
	return json.Marshal(env)
}

// UnmarshalQuestion decodes a kind-tagged question. Unknown kinds fail.
func UnmarshalQuestion(data []byte) (Question, error) {
	var env questionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return env.toQuestion()
}

func (env questionEnvelope) toQuestion() (Question, error) {
	switch env.Kind {
	case KindMultipleChoice:
		return &MultipleChoiceQuestion{Text: env.Prompt, Options: env.Options, Answer: env.Answer, Level: env.Difficulty}, nil
	case KindTrueFalse:
		return &TrueFalseQuestion{Text: env.Prompt, Answer: env.Answer, Level: env.Difficulty}, nil
	case KindFillInBlank:
		return &FillInBlankQuestion{Text: env.Prompt, Answer: env.Answer, Level: env.Difficulty}, nil
	default:
		return nil, fmt.Errorf("unknown question kind: %q", env.Kind)
	}
}

// QuestionList makes []Question usable inside JSON snapshots.
type QuestionList []Question

func (l QuestionList) MarshalJSON() ([]byte, error) {
	envs := make([]questionEnvelope, len(l))
	for i, q := range l {
		envs[i] = questionEnvelope{
			Kind:       q.Kind(),
			Prompt:     q.Prompt(),
			Options:    Options(q),
			Answer:     q.CorrectAnswer(),
			Difficulty: q.Difficulty(),
		}
	}
	return json.Marshal(envs)
}

func (l *QuestionList) UnmarshalJSON(data []byte) error {
	var envs []questionEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := make(QuestionList, 0, len(envs))
	for _, env := range envs {
		q, err := env.toQuestion()
		if err != nil {
			return err
		}
		out = append(out, q)
	}
	*l = out
	return nil
}

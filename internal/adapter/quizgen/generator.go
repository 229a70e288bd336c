package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"quizwhiz/internal/adapter/gateway"
	"quizwhiz/internal/domain"
	"quizwhiz/internal/logger"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const mcqPromptTemplate = `Generate a %d-question multiple-choice quiz on the topic: "%s". For each question, provide the question text, 4 options, the correct answer, and a difficulty level (Easy, Medium, or Hard). Ensure the options are distinct and plausible.

Respond with ONLY a JSON array of %d objects, each in the following format:
{
  "question": "the question text",
  "options": ["option 1", "option 2", "option 3", "option 4"],
  "answer": "the correct option, verbatim",
  "difficulty": "Easy"
}`

const mixedPromptTemplate = `Generate a %d-item interactive quiz about "%s". The quiz should be a mix of question types: Multiple Choice (MCQ), True/False (TF), and Fill-in-the-Blank (FIB).

Respond with ONLY a JSON array of %d objects, each in the following format:
{
  "type": "MCQ" | "TF" | "FIB",
  "question": "the question text",
  "options": ["only for MCQ: 4 distinct options"],
  "answer": "the correct answer ('True'/'False' for TF)",
  "difficulty": "Easy" | "Medium" | "Hard"
}`

// quizItem is the wire shape of one generated question.
type quizItem struct {
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
}

// Generator implements domain.QuizGenerator against the inference gateway.
type Generator struct {
	client    gateway.Client
	batchSize int
	group     singleflight.Group
}

// NewGenerator creates a quiz content source producing batches of batchSize questions.
func NewGenerator(client gateway.Client, batchSize int) *Generator {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Generator{client: client, batchSize: batchSize}
}

// GenerateBatch implements domain.QuizGenerator. Identical concurrent
// requests for the same topic and mode are collapsed into one gateway call.
func (g *Generator) GenerateBatch(ctx context.Context, topic string, mode domain.QuizMode) ([]domain.Question, error) {
	key := fmt.Sprintf("%s|%s|%d", strings.ToLower(topic), mode, g.batchSize)
	v, err, _ := g.group.Do(key, func() (interface{}, error) {
		return g.generate(ctx, topic, mode)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]domain.Question)
	// Each session owns its batch exclusively; don't hand out the shared slice.
	questions := make([]domain.Question, len(shared))
	copy(questions, shared)
	return questions, nil
}

func (g *Generator) generate(ctx context.Context, topic string, mode domain.QuizMode) ([]domain.Question, error) {
	l := logger.Get()

	var prompt string
	switch mode {
	case domain.ModeMixed:
		prompt = fmt.Sprintf(mixedPromptTemplate, g.batchSize, topic, g.batchSize)
	default:
		prompt = fmt.Sprintf(mcqPromptTemplate, g.batchSize, topic, g.batchSize)
	}

	response, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := gateway.CleanResponse(response)
	var items []quizItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		l.Error("Failed to parse quiz batch response",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("response", cleaned))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to parse quiz batch response: %w", err))
	}

	questions := make([]domain.Question, 0, len(items))
	for _, item := range items {
		q, err := item.toQuestion(mode)
		if err != nil {
			l.Warn("Skipping malformed generated question",
				zap.Error(err),
				zap.String("topic", topic),
				zap.String("question", item.Question))
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, domain.NewEmptyBatchError(topic)
	}

	l.Info("Generated quiz batch",
		zap.String("topic", topic),
		zap.String("mode", string(mode)),
		zap.Int("requested", g.batchSize),
		zap.Int("usable", len(questions)))
	return questions, nil
}

func (item quizItem) toQuestion(mode domain.QuizMode) (domain.Question, error) {
	kind := domain.QuestionKind(strings.ToUpper(strings.TrimSpace(item.Type)))
	if mode == domain.ModeMultipleChoice || kind == "" {
		kind = domain.KindMultipleChoice
	}

	var q domain.Question
	switch kind {
	case domain.KindMultipleChoice:
		q = &domain.MultipleChoiceQuestion{
			Text:    item.Question,
			Options: item.Options,
			Answer:  item.Answer,
			Level:   domain.ParseDifficulty(item.Difficulty),
		}
	case domain.KindTrueFalse:
		q = &domain.TrueFalseQuestion{
			Text:   item.Question,
			Answer: item.Answer,
			Level:  domain.ParseDifficulty(item.Difficulty),
		}
	case domain.KindFillInBlank:
		q = &domain.FillInBlankQuestion{
			Text:   item.Question,
			Answer: item.Answer,
			Level:  domain.ParseDifficulty(item.Difficulty),
		}
	default:
		return nil, fmt.Errorf("unknown question type: %q", item.Type)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

var _ domain.QuizGenerator = (*Generator)(nil)

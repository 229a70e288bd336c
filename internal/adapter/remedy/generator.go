package remedy

import (
	"context"
	"encoding/json"
	"fmt"
	"quizwhiz/internal/adapter/gateway"
	"quizwhiz/internal/domain"
	"quizwhiz/internal/logger"
	"strings"

	"go.uber.org/zap"
)

const promptTemplate = `You are an expert adaptive tutor. A student is taking a quiz on the topic "%s". They have answered a question incorrectly. Your task is to help them understand their mistake and learn the concept.

Here is the information:
- Question Type: "%s"
- Original Question: "%s"
- Student's Incorrect Answer: "%s"
- Correct Answer: "%s"

Please generate the following in a JSON format:
1.  "diagnosis": A gentle, encouraging explanation of the likely misconception behind the student's error. Explain *why* their answer is wrong.
2.  "microLesson": A concise, easy-to-understand "micro-lesson" that clarifies the core concept tested in the question.
3.  "followUpQuestion": A new, slightly different multiple-choice question to check if the student has understood the micro-lesson. This new question must include the question text ("question"), 4 options ("options"), the correct answer ("answer"), and a difficulty of "Easy".

Return only the JSON object.`

// payload is the wire shape of a remediation response.
type payload struct {
	Diagnosis        string `json:"diagnosis"`
	MicroLesson      string `json:"microLesson"`
	FollowUpQuestion struct {
		Question   string   `json:"question"`
		Options    []string `json:"options"`
		Answer     string   `json:"answer"`
		Difficulty string   `json:"difficulty"`
	} `json:"followUpQuestion"`
}

// Generator implements domain.RemediationGenerator against the inference
// gateway. It only produces validated packets; a shape violation surfaces as
// MalformedRemediationError and nothing reaches the session.
type Generator struct {
	client gateway.Client
}

func NewGenerator(client gateway.Client) *Generator {
	return &Generator{client: client}
}

// Generate implements domain.RemediationGenerator.
func (g *Generator) Generate(ctx context.Context, topic string, question domain.Question, wrongAnswer string) (*domain.RemediationPacket, error) {
	if question == nil || strings.TrimSpace(question.Prompt()) == "" {
		return nil, domain.NewInvalidInputError("question is required")
	}
	if strings.TrimSpace(wrongAnswer) == "" {
		return nil, domain.NewInvalidInputError("wrong answer is required")
	}
	if strings.TrimSpace(question.CorrectAnswer()) == "" {
		return nil, domain.NewInvalidInputError("correct answer is required")
	}

	prompt := fmt.Sprintf(promptTemplate, topic, question.Kind(), question.Prompt(), wrongAnswer, question.CorrectAnswer())

	response, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := gateway.CleanResponse(response)
	var p payload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		logger.Get().Error("Failed to parse remediation response",
			zap.Error(err),
			zap.String("response", cleaned))
		return nil, domain.NewMalformedRemediationError(err)
	}

	followUp := &domain.MultipleChoiceQuestion{
		Text:    p.FollowUpQuestion.Question,
		Options: p.FollowUpQuestion.Options,
		Answer:  p.FollowUpQuestion.Answer,
		Level:   domain.ParseDifficulty(p.FollowUpQuestion.Difficulty),
	}
	packet, err := domain.NewRemediationPacket(p.Diagnosis, p.MicroLesson, followUp)
	if err != nil {
		logger.Get().Warn("Remediation response failed shape validation",
			zap.Error(err),
			zap.String("question", question.Prompt()))
		return nil, domain.NewMalformedRemediationError(err)
	}
	return packet, nil
}

var _ domain.RemediationGenerator = (*Generator)(nil)

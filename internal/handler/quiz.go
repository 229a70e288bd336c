package handler

import (
	"strconv"

	"quizwhiz/internal/domain"
	"quizwhiz/internal/dto"
	"quizwhiz/internal/logger"
	"quizwhiz/internal/service"
	"quizwhiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz session HTTP requests. Errors are returned as-is
// and mapped to responses by the centralized error handler.
type QuizHandler struct {
	service   service.QuizSessionService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizSessionService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// StartQuiz handles POST /api/quizzes
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateStartQuizRequest(req.Topic, req.Mode); len(errs) > 0 {
		return errs
	}

	mode := domain.ModeMultipleChoice
	if req.Mode != "" {
		mode = domain.QuizMode(req.Mode)
	}

	resp, err := h.service.StartQuiz(c.Context(), req.Topic, mode)
	if err != nil {
		logger.Get().Error("Failed to start quiz",
			zap.Error(err),
			zap.String("topic", req.Topic),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession handles GET /api/quizzes/:id
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	view, err := h.service.GetSession(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// SubmitAnswer handles POST /api/quizzes/:id/answers
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	sessionID := c.Params("id")
	if errs := h.validator.ValidateAnswerRequest(sessionID, req.Answer); len(errs) > 0 {
		return errs
	}

	result, err := h.service.SubmitAnswer(c.Context(), sessionID, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// RetryRemediation handles POST /api/quizzes/:id/remediation
func (h *QuizHandler) RetryRemediation(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	view, err := h.service.RetryRemediation(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// SubmitFollowUp handles POST /api/quizzes/:id/follow-up
func (h *QuizHandler) SubmitFollowUp(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	sessionID := c.Params("id")
	if errs := h.validator.ValidateAnswerRequest(sessionID, req.Answer); len(errs) > 0 {
		return errs
	}

	result, err := h.service.SubmitFollowUp(c.Context(), sessionID, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Resume handles POST /api/quizzes/:id/resume
func (h *QuizHandler) Resume(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Resume(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// AbandonQuiz handles DELETE /api/quizzes/:id
func (h *QuizHandler) AbandonQuiz(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	if err := h.service.AbandonQuiz(c.Context(), sessionID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetReport handles GET /api/quizzes/:id/report
func (h *QuizHandler) GetReport(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	report, err := h.service.GetReport(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// ListAttempts handles GET /api/attempts
func (h *QuizHandler) ListAttempts(c *fiber.Ctx) error {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("limit", limitStr)}
		}
		limit = parsed
	}

	if errs := h.validator.ValidateAttemptsLimit(limit); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ListAttempts(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

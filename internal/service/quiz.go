package service

import (
	"context"
	"quizwhiz/internal/domain"
	"quizwhiz/internal/dto"
	"quizwhiz/internal/logger"
	"quizwhiz/internal/util"

	"go.uber.org/zap"
)

// QuizSessionService orchestrates the adaptive quiz flow: one user action in,
// one state transition applied, one snapshot written back. The session's own
// state-validity checks serialize the flow; no locks are involved.
type QuizSessionService interface {
	StartQuiz(ctx context.Context, topic string, mode domain.QuizMode) (*dto.StartQuizResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionView, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (*dto.AnswerResult, error)
	RetryRemediation(ctx context.Context, sessionID string) (*dto.RemediationView, error)
	SubmitFollowUp(ctx context.Context, sessionID, answer string) (*dto.FollowUpResult, error)
	Resume(ctx context.Context, sessionID string) (*dto.ResumeResult, error)
	AbandonQuiz(ctx context.Context, sessionID string) error
	GetReport(ctx context.Context, sessionID string) (*dto.ReportResponse, error)
	ListAttempts(ctx context.Context, limit int) (*dto.AttemptsResponse, error)
}

type quizSessionService struct {
	quizGen   domain.QuizGenerator
	remedyGen domain.RemediationGenerator
	store     SessionStore
	attempts  domain.AttemptRepository
	tokens    SessionTokenService
}

// NewQuizSessionService creates a new instance of quizSessionService
func NewQuizSessionService(
	quizGen domain.QuizGenerator,
	remedyGen domain.RemediationGenerator,
	store SessionStore,
	attempts domain.AttemptRepository,
	tokens SessionTokenService,
) QuizSessionService {
	return &quizSessionService{
		quizGen:   quizGen,
		remedyGen: remedyGen,
		store:     store,
		attempts:  attempts,
		tokens:    tokens,
	}
}

// StartQuiz implements QuizSessionService
func (s *quizSessionService) StartQuiz(ctx context.Context, topic string, mode domain.QuizMode) (*dto.StartQuizResponse, error) {
	questions, err := s.quizGen.GenerateBatch(ctx, topic, mode)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(util.NewULID(), topic, mode)
	if err := session.Start(questions); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(session.ID)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz session started",
		zap.String("session_id", session.ID),
		zap.String("topic", topic),
		zap.String("mode", string(mode)),
		zap.Int("questions", len(questions)))

	return &dto.StartQuizResponse{
		SessionID: session.ID,
		Token:     token,
		State:     string(session.State),
		Total:     len(session.Questions),
		Question:  questionView(session.Questions[0], 1),
	}, nil
}

// GetSession implements QuizSessionService
func (s *quizSessionService) GetSession(ctx context.Context, sessionID string) (*dto.SessionView, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &dto.SessionView{
		SessionID:     session.ID,
		Topic:         session.Topic,
		Mode:          string(session.Mode),
		State:         string(session.State),
		Total:         len(session.Questions),
		CurrentNumber: session.CurrentIndex + 1,
	}

	switch session.State {
	case domain.StatePlaying:
		q, err := session.CurrentQuestion()
		if err != nil {
			return nil, err
		}
		view.Question = questionView(q, session.CurrentIndex+1)
	case domain.StateRemediating:
		if session.Pending != nil {
			view.Remediation = remediationView(session.Pending)
			view.FollowUpAnswered = session.Pending.FollowUpAnswered
		} else {
			view.RemediationPending = true
		}
	case domain.StateFinished:
		view.Report = report(session)
	}

	return view, nil
}

// SubmitAnswer implements QuizSessionService
func (s *quizSessionService) SubmitAnswer(ctx context.Context, sessionID, answer string) (*dto.AnswerResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := session.SubmitAnswer(answer)
	if err != nil {
		return nil, err
	}

	result := &dto.AnswerResult{Correct: outcome.Correct}

	if outcome.NeedsRemediation {
		// The wrong answer is recorded and the session is parked in
		// Remediating before the generator runs; a failed generation leaves
		// a retryable snapshot behind.
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
		view, err := s.generateRemediation(ctx, session)
		if err != nil {
			return nil, err
		}
		result.State = string(session.State)
		result.Remediation = view
		return result, nil
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	result.State = string(session.State)

	if outcome.Finished {
		s.recordAttempt(ctx, session)
		result.Report = report(session)
		return result, nil
	}

	q, err := session.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	result.Question = questionView(q, session.CurrentIndex+1)
	return result, nil
}

// RetryRemediation implements QuizSessionService. Valid only while the
// session is waiting for a packet that a previous generation failed to
// deliver.
func (s *quizSessionService) RetryRemediation(ctx context.Context, sessionID string) (*dto.RemediationView, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != domain.StateRemediating || session.Pending != nil {
		return nil, domain.NewInvalidStateError("retry_remediation", session.State)
	}
	return s.generateRemediation(ctx, session)
}

// generateRemediation asks the generator for a packet for the current missed
// question and installs it. The session must already be Remediating.
func (s *quizSessionService) generateRemediation(ctx context.Context, session *domain.Session) (*dto.RemediationView, error) {
	question, err := session.CurrentQuestion()
	if err != nil {
		return nil, err
	}

	packet, err := s.remedyGen.Generate(ctx, session.Topic, question, session.LastAnswer())
	if err != nil {
		logger.Get().Warn("Remediation generation failed",
			zap.Error(err),
			zap.String("session_id", session.ID))
		return nil, err
	}

	if err := session.AttachRemediation(packet); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return remediationView(packet), nil
}

// SubmitFollowUp implements QuizSessionService
func (s *quizSessionService) SubmitFollowUp(ctx context.Context, sessionID, answer string) (*dto.FollowUpResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	correct, err := session.SubmitFollowUpAnswer(answer)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	return &dto.FollowUpResult{
		Correct:       correct,
		CorrectAnswer: session.Pending.FollowUp.Answer,
	}, nil
}

// Resume implements QuizSessionService
func (s *quizSessionService) Resume(ctx context.Context, sessionID string) (*dto.ResumeResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Resume(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	result := &dto.ResumeResult{State: string(session.State)}
	if session.State == domain.StateFinished {
		s.recordAttempt(ctx, session)
		result.Report = report(session)
		return result, nil
	}

	q, err := session.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	result.Question = questionView(q, session.CurrentIndex+1)
	return result, nil
}

// AbandonQuiz implements QuizSessionService
func (s *quizSessionService) AbandonQuiz(ctx context.Context, sessionID string) error {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.Get().Info("Quiz session abandoned", zap.String("session_id", sessionID))
	return nil
}

// GetReport implements QuizSessionService
func (s *quizSessionService) GetReport(ctx context.Context, sessionID string) (*dto.ReportResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != domain.StateFinished {
		return nil, domain.NewInvalidStateError("report", session.State)
	}
	return report(session), nil
}

// ListAttempts implements QuizSessionService
func (s *quizSessionService) ListAttempts(ctx context.Context, limit int) (*dto.AttemptsResponse, error) {
	attempts, err := s.attempts.ListRecent(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}

	views := make([]dto.AttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		views = append(views, dto.AttemptView{
			ID:        attempt.ID,
			Topic:     attempt.Topic,
			Mode:      string(attempt.Mode),
			Score:     attempt.Score,
			Total:     attempt.Total,
			Review:    reviewViews(attempt.Review),
			CreatedAt: attempt.CreatedAt,
		})
	}
	return &dto.AttemptsResponse{Attempts: views}, nil
}

// recordAttempt stores the finished attempt in history. Failures are logged
// and swallowed; losing a history row must not fail the quiz itself.
func (s *quizSessionService) recordAttempt(ctx context.Context, session *domain.Session) {
	attempt := &domain.QuizAttempt{
		ID:        util.NewULID(),
		Topic:     session.Topic,
		Mode:      session.Mode,
		Score:     domain.Score(session),
		Total:     len(session.Questions),
		Review:    domain.Review(session),
		CreatedAt: session.UpdatedAt,
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		logger.Get().Error("Failed to record quiz attempt",
			zap.Error(err),
			zap.String("session_id", session.ID))
	}
}

// --- view builders ---

func questionView(q domain.Question, number int) *dto.QuestionView {
	return &dto.QuestionView{
		Kind:       string(q.Kind()),
		Prompt:     q.Prompt(),
		Options:    domain.Options(q),
		Difficulty: string(q.Difficulty()),
		Number:     number,
	}
}

func remediationView(packet *domain.RemediationPacket) *dto.RemediationView {
	return &dto.RemediationView{
		Diagnosis:   packet.Diagnosis,
		MicroLesson: packet.MicroLesson,
		FollowUp: dto.QuestionView{
			Kind:       string(domain.KindMultipleChoice),
			Prompt:     packet.FollowUp.Text,
			Options:    packet.FollowUp.Options,
			Difficulty: string(packet.FollowUp.Level),
		},
	}
}

func reviewViews(review []domain.ReviewItem) []dto.ReviewItemView {
	views := make([]dto.ReviewItemView, 0, len(review))
	for _, item := range review {
		views = append(views, dto.ReviewItemView{
			Kind:          string(item.Question.Kind()),
			Prompt:        item.Question.Prompt(),
			UserAnswer:    item.UserAnswer,
			Correct:       item.Correct,
			CorrectAnswer: item.CorrectAnswer,
		})
	}
	return views
}

func report(session *domain.Session) *dto.ReportResponse {
	return &dto.ReportResponse{
		SessionID: session.ID,
		Topic:     session.Topic,
		Score:     domain.Score(session),
		Total:     len(session.Questions),
		Review:    reviewViews(domain.Review(session)),
	}
}

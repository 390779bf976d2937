// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package quiz

import (
	"context"
	"log/slog"
	"time"

	"github.com/subgquiz/subg-api/internal/core/question"
	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/pkg/pagination"
	"github.com/subgquiz/subg-api/pkg/slug"
	"github.com/subgquiz/subg-api/pkg/uuid"
)

// # Collaborator Contracts

// QuestionBank supplies and resolves questions for attempts. Satisfied by
// the question service.
type QuestionBank interface {
	DrawForQuiz(context context.Context, categoryID, level, count int) ([]*question.Question, error)
	Get(context context.Context, id string) (*question.Question, error)
}

// EntitlementSource yields per-student subscription profiles. Satisfied by
// the Redis profile store.
type EntitlementSource interface {
	For(studentID string) subscription.ProfileSource
}

// RewardRecorder credits points for a completed attempt. Satisfied by the
// reward service.
type RewardRecorder interface {
	Award(context context.Context, studentID, attemptID string, points int, reason string) error
}

// Service orchestrates the quiz catalog and the attempt lifecycle.
type Service struct {
	quizRepository    QuizRepository
	attemptRepository AttemptRepository
	questionBank      QuestionBank
	entitlements      EntitlementSource
	rewards           RewardRecorder
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service].
func NewService(
	quizRepo QuizRepository,
	attemptRepo AttemptRepository,
	questionBank QuestionBank,
	entitlements EntitlementSource,
	rewards RewardRecorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		quizRepository:    quizRepo,
		attemptRepository: attemptRepo,
		questionBank:      questionBank,
		entitlements:      entitlements,
		rewards:           rewards,
		logger:            logger,
		now:               time.Now,
	}
}

// SetClock overrides the service clock. Test hook.
func (service *Service) SetClock(now func() time.Time) {
	service.now = now
}

// # Catalog

// ListForStudent returns the catalog visible to one student: active quizzes
// whose level falls under the student's effective plan ceiling.
func (service *Service) ListForStudent(context context.Context, studentID string, categoryID int, params pagination.Params) ([]*Quiz, pagination.Meta, error) {
	evaluator := subscription.NewEvaluatorWithClock(service.entitlements.For(studentID), service.now)

	quizzes, total, err := service.quizRepository.List(context, Filter{
		CategoryID: categoryID,
		MaxLevel:   evaluator.MaxAccessibleLevel(),
	}, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return quizzes, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ListAll returns the unfiltered catalog for the back-office.
func (service *Service) ListAll(context context.Context, categoryID int, params pagination.Params) ([]*Quiz, pagination.Meta, error) {
	quizzes, total, err := service.quizRepository.List(context, Filter{
		CategoryID:      categoryID,
		IncludeInactive: true,
	}, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return quizzes, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id string) (*Quiz, error) {
	return service.quizRepository.GetByID(context, id)
}

func (service *Service) GetBySlug(context context.Context, quizSlug string) (*Quiz, error) {
	return service.quizRepository.GetBySlug(context, quizSlug)
}

// CreateInput holds the admin-supplied quiz fields.
type CreateInput struct {
	CategoryID       int
	Title            string
	Level            int
	QuestionCount    int
	TimeLimitSeconds int
}

func (service *Service) Create(context context.Context, input CreateInput) (*Quiz, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Level("level", input.Level)
	if err := v.Err(); err != nil {
		return nil, err
	}

	newQuiz := &Quiz{
		ID:               uuid.New(),
		CategoryID:       input.CategoryID,
		Title:            input.Title,
		Slug:             slug.From(input.Title),
		Level:            input.Level,
		QuestionCount:    input.QuestionCount,
		TimeLimitSeconds: input.TimeLimitSeconds,
		IsActive:         true,
	}
	if newQuiz.QuestionCount <= 0 {
		newQuiz.QuestionCount = constants.DefaultQuestionCount
	}

	if err := service.quizRepository.Create(context, newQuiz); err != nil {
		return nil, err
	}

	service.logger.Info("quiz_created",
		slog.String("quiz_id", newQuiz.ID),
		slog.Int("level", newQuiz.Level),
	)

	return newQuiz, nil
}

// UpdateInput applies a partial update; nil fields are left untouched.
type UpdateInput struct {
	CategoryID       *int
	Title            *string
	Level            *int
	QuestionCount    *int
	TimeLimitSeconds *int
	IsActive         *bool
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Quiz, error) {
	existing, err := service.quizRepository.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		existing.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		existing.Title = *input.Title
		existing.Slug = slug.From(*input.Title)
	}
	if input.Level != nil {
		existing.Level = *input.Level
	}
	if input.QuestionCount != nil {
		existing.QuestionCount = *input.QuestionCount
	}
	if input.TimeLimitSeconds != nil {
		existing.TimeLimitSeconds = *input.TimeLimitSeconds
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	v := &validate.Validator{}
	v.Required("title", existing.Title).Level("level", existing.Level)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.quizRepository.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.quizRepository.Delete(context, id)
}

// # Attempt Lifecycle

// StartedAttempt is the response to a successful start: the attempt plus the
// drawn questions in their student-facing projection.
type StartedAttempt struct {
	Attempt          *Attempt          `json:"attempt"`
	Questions        []question.Public `json:"questions"`
	RemainingSeconds int               `json:"remaining_seconds"`
}

/*
StartAttempt opens (or resumes) an attempt on a quiz.

Description: The student's effective plan ceiling must cover the quiz level;
otherwise the start is rejected with an upgrade prompt. An open attempt on
the same quiz is resumed rather than duplicated, unless its deadline has
already passed, in which case it is expired and a fresh attempt begins.

Parameters:
  - context: context.Context
  - studentID: string
  - quizID: string

Returns:
  - *StartedAttempt: Attempt plus projected questions
  - error: NotFound, UpgradeRequired, or storage failures
*/
func (service *Service) StartAttempt(context context.Context, studentID, quizID string) (*StartedAttempt, error) {
	targetQuiz, err := service.quizRepository.GetByID(context, quizID)
	if err != nil {
		return nil, err
	}
	if !targetQuiz.IsActive {
		return nil, apperr.NotFound("Quiz")
	}

	evaluator := subscription.NewEvaluatorWithClock(service.entitlements.For(studentID), service.now)
	if !evaluator.CanAccessLevel(targetQuiz.Level) {
		return nil, apperr.UpgradeRequired("This quiz requires a higher subscription plan")
	}

	// Resume an open attempt when its clock is still running.
	if open, err := service.attemptRepository.FindInProgress(context, studentID, quizID); err == nil {
		if service.now().Before(open.Deadline) {
			return service.resumeAttempt(context, open)
		}

		// The open attempt timed out while the student was away.
		service.expireAttempt(context, open)
	}

	drawn, err := service.questionBank.DrawForQuiz(context, targetQuiz.CategoryID, targetQuiz.Level, targetQuiz.QuestionCount)
	if err != nil {
		return nil, err
	}
	if len(drawn) == 0 {
		return nil, apperr.Unprocessable("No questions available for this quiz")
	}

	startedAt := service.now()
	attempt := &Attempt{
		ID:             uuid.New(),
		QuizID:         quizID,
		StudentID:      studentID,
		Status:         StatusInProgress,
		TotalQuestions: len(drawn),
		QuestionIDs:    make([]string, 0, len(drawn)),
		StartedAt:      startedAt,
		Deadline:       startedAt.Add(targetQuiz.TimeLimit(constants.DefaultQuizTimeLimit)),
	}

	questions := make([]question.Public, 0, len(drawn))
	for _, q := range drawn {
		attempt.QuestionIDs = append(attempt.QuestionIDs, q.ID)
		questions = append(questions, q.AsPublic())
	}

	if err := service.attemptRepository.Create(context, attempt); err != nil {
		return nil, err
	}

	service.logger.Info("quiz_attempt_started",
		slog.String("attempt_id", attempt.ID),
		slog.String("quiz_id", quizID),
		slog.String("student_id", studentID),
	)

	return &StartedAttempt{
		Attempt:          attempt,
		Questions:        questions,
		RemainingSeconds: int(attempt.RemainingTime(service.now()) / time.Second),
	}, nil
}

// resumeAttempt re-projects the questions of an open attempt.
func (service *Service) resumeAttempt(context context.Context, attempt *Attempt) (*StartedAttempt, error) {
	questions := make([]question.Public, 0, len(attempt.QuestionIDs))
	for _, questionID := range attempt.QuestionIDs {
		q, err := service.questionBank.Get(context, questionID)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q.AsPublic())
	}

	return &StartedAttempt{
		Attempt:          attempt,
		Questions:        questions,
		RemainingSeconds: int(attempt.RemainingTime(service.now()) / time.Second),
	}, nil
}

// expireAttempt finalizes a timed-out attempt with whatever score it earned.
func (service *Service) expireAttempt(context context.Context, attempt *Attempt) {
	attempt.Status = StatusExpired
	attempt.Score = service.scoreOf(context, attempt)

	if err := service.attemptRepository.UpdateStatus(context, attempt); err != nil {
		service.logger.Error("quiz_attempt_expire_failed",
			slog.String("attempt_id", attempt.ID),
			slog.Any("error", err),
		)
	}
}

/*
SubmitAnswer records one graded response inside an open attempt.

Description: Grading happens at submission time, server-side. Re-answering
the same question overwrites the previous response. A submission past the
deadline expires the attempt instead.

Parameters:
  - context: context.Context
  - studentID: string
  - attemptID: string
  - questionID: string
  - selectedIndex: int

Returns:
  - error: NotFound, Unprocessable, or storage failures
*/
func (service *Service) SubmitAnswer(context context.Context, studentID, attemptID, questionID string, selectedIndex int) error {
	attempt, err := service.ownedAttempt(context, studentID, attemptID)
	if err != nil {
		return err
	}

	if attempt.Status != StatusInProgress {
		return apperr.Unprocessable("Attempt is already finished")
	}

	if !service.now().Before(attempt.Deadline) {
		service.expireAttempt(context, attempt)
		return apperr.Unprocessable("Time is up for this attempt")
	}

	if !attempt.Contains(questionID) {
		return apperr.Unprocessable("Question does not belong to this attempt")
	}

	q, err := service.questionBank.Get(context, questionID)
	if err != nil {
		return err
	}

	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return apperr.Unprocessable("Selected answer index is out of range")
	}

	return service.attemptRepository.SaveAnswer(context, &Answer{
		ID:            uuid.New(),
		AttemptID:     attemptID,
		QuestionID:    questionID,
		SelectedIndex: selectedIndex,
		IsCorrect:     q.IsCorrect(selectedIndex),
		AnsweredAt:    service.now(),
	})
}

// AttemptResult is the graded outcome revealed on completion.
type AttemptResult struct {
	Attempt   *Attempt         `json:"attempt"`
	Questions []ResultQuestion `json:"questions"`
	Points    int              `json:"points_awarded"`
}

// ResultQuestion pairs a question with the student's response, grading data
// now included.
type ResultQuestion struct {
	Question      *question.Question `json:"question"`
	SelectedIndex *int               `json:"selected_index,omitempty"`
	IsCorrect     bool               `json:"is_correct"`
}

/*
CompleteAttempt finalizes an attempt and reveals grading data.

Description: Completion within the deadline earns reward points proportional
to score and quiz level; a completion past the deadline finalizes the
attempt as expired with its earned score and no points.

Parameters:
  - context: context.Context
  - studentID: string
  - attemptID: string

Returns:
  - *AttemptResult: Graded outcome
  - error: NotFound, Unprocessable, or storage failures
*/
func (service *Service) CompleteAttempt(context context.Context, studentID, attemptID string) (*AttemptResult, error) {
	attempt, err := service.ownedAttempt(context, studentID, attemptID)
	if err != nil {
		return nil, err
	}

	if attempt.Status != StatusInProgress {
		return nil, apperr.Unprocessable("Attempt is already finished")
	}

	onTime := service.now().Before(attempt.Deadline)

	attempt.Score = service.scoreOf(context, attempt)
	if onTime {
		attempt.Status = StatusCompleted
		completedAt := service.now()
		attempt.CompletedAt = &completedAt
	} else {
		attempt.Status = StatusExpired
	}

	if err := service.attemptRepository.UpdateStatus(context, attempt); err != nil {
		return nil, err
	}

	result, err := service.buildResult(context, attempt)
	if err != nil {
		return nil, err
	}

	if onTime && attempt.Score > 0 {
		targetQuiz, err := service.quizRepository.GetByID(context, attempt.QuizID)
		if err == nil {
			result.Points = attempt.Score * targetQuiz.Level
			// Points are best-effort: a reward outage must not fail the
			// completion the student just earned.
			if err := service.rewards.Award(context, studentID, attempt.ID, result.Points, "quiz_completed"); err != nil {
				service.logger.Error("quiz_reward_award_failed",
					slog.String("attempt_id", attempt.ID),
					slog.Any("error", err),
				)
				result.Points = 0
			}
		}
	}

	service.logger.Info("quiz_attempt_finished",
		slog.String("attempt_id", attempt.ID),
		slog.String("status", attempt.Status),
		slog.Int("score", attempt.Score),
	)

	return result, nil
}

// GetAttempt returns an attempt with its remaining time, for polling.
func (service *Service) GetAttempt(context context.Context, studentID, attemptID string) (*Attempt, int, error) {
	attempt, err := service.ownedAttempt(context, studentID, attemptID)
	if err != nil {
		return nil, 0, err
	}

	return attempt, int(attempt.RemainingTime(service.now()) / time.Second), nil
}

// History returns the student's attempt history, newest first.
func (service *Service) History(context context.Context, studentID string, params pagination.Params) ([]*Attempt, pagination.Meta, error) {
	attempts, total, err := service.attemptRepository.ListByStudent(context, studentID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return attempts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ownedAttempt loads an attempt and enforces ownership. A foreign attempt is
// reported as NotFound, not Forbidden, to avoid leaking attempt IDs.
func (service *Service) ownedAttempt(context context.Context, studentID, attemptID string) (*Attempt, error) {
	attempt, err := service.attemptRepository.GetByID(context, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, apperr.NotFound("Attempt")
	}
	return attempt, nil
}

// scoreOf counts correct answers recorded so far.
func (service *Service) scoreOf(context context.Context, attempt *Attempt) int {
	answers, err := service.attemptRepository.ListAnswers(context, attempt.ID)
	if err != nil {
		service.logger.Error("quiz_attempt_score_failed",
			slog.String("attempt_id", attempt.ID),
			slog.Any("error", err),
		)
		return 0
	}

	score := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			score++
		}
	}
	return score
}

// buildResult assembles the per-question breakdown of a finished attempt.
func (service *Service) buildResult(context context.Context, attempt *Attempt) (*AttemptResult, error) {
	answers, err := service.attemptRepository.ListAnswers(context, attempt.ID)
	if err != nil {
		return nil, err
	}

	answerByQuestion := make(map[string]*Answer, len(answers))
	for _, answer := range answers {
		answerByQuestion[answer.QuestionID] = answer
	}

	questions := make([]ResultQuestion, 0, len(attempt.QuestionIDs))
	for _, questionID := range attempt.QuestionIDs {
		q, err := service.questionBank.Get(context, questionID)
		if err != nil {
			return nil, err
		}

		entry := ResultQuestion{Question: q}
		if answer, ok := answerByQuestion[questionID]; ok {
			selected := answer.SelectedIndex
			entry.SelectedIndex = &selected
			entry.IsCorrect = answer.IsCorrect
		}
		questions = append(questions, entry)
	}

	return &AttemptResult{Attempt: attempt, Questions: questions}, nil
}

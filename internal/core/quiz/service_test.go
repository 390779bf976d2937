// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package quiz

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/core/question"
	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

var quizNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// # Fakes

type fakeQuizRepo struct {
	quizzes map[string]*Quiz
}

func (repo *fakeQuizRepo) List(_ context.Context, filter Filter, _ pagination.Params) ([]*Quiz, int, error) {
	out := make([]*Quiz, 0)
	for _, q := range repo.quizzes {
		if !filter.IncludeInactive && !q.IsActive {
			continue
		}
		if filter.MaxLevel > 0 && q.Level > filter.MaxLevel {
			continue
		}
		out = append(out, q)
	}
	return out, len(out), nil
}

func (repo *fakeQuizRepo) GetByID(_ context.Context, id string) (*Quiz, error) {
	if q, ok := repo.quizzes[id]; ok {
		return q, nil
	}
	return nil, apperr.NotFound("Quiz")
}

func (repo *fakeQuizRepo) GetBySlug(_ context.Context, slug string) (*Quiz, error) {
	for _, q := range repo.quizzes {
		if q.Slug == slug {
			return q, nil
		}
	}
	return nil, apperr.NotFound("Quiz")
}

func (repo *fakeQuizRepo) Create(_ context.Context, quiz *Quiz) error {
	repo.quizzes[quiz.ID] = quiz
	return nil
}

func (repo *fakeQuizRepo) Update(_ context.Context, quiz *Quiz) error {
	repo.quizzes[quiz.ID] = quiz
	return nil
}

func (repo *fakeQuizRepo) Delete(_ context.Context, id string) error {
	delete(repo.quizzes, id)
	return nil
}

type fakeAttemptRepo struct {
	attempts map[string]*Attempt
	answers  map[string][]*Answer
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts: make(map[string]*Attempt),
		answers:  make(map[string][]*Answer),
	}
}

func (repo *fakeAttemptRepo) Create(_ context.Context, attempt *Attempt) error {
	repo.attempts[attempt.ID] = attempt
	return nil
}

func (repo *fakeAttemptRepo) GetByID(_ context.Context, id string) (*Attempt, error) {
	if attempt, ok := repo.attempts[id]; ok {
		return attempt, nil
	}
	return nil, apperr.NotFound("Attempt")
}

func (repo *fakeAttemptRepo) FindInProgress(_ context.Context, studentID, quizID string) (*Attempt, error) {
	for _, attempt := range repo.attempts {
		if attempt.StudentID == studentID && attempt.QuizID == quizID && attempt.Status == StatusInProgress {
			return attempt, nil
		}
	}
	return nil, apperr.NotFound("Attempt")
}

func (repo *fakeAttemptRepo) UpdateStatus(_ context.Context, attempt *Attempt) error {
	repo.attempts[attempt.ID] = attempt
	return nil
}

func (repo *fakeAttemptRepo) SaveAnswer(_ context.Context, answer *Answer) error {
	existing := repo.answers[answer.AttemptID]
	for i, prev := range existing {
		if prev.QuestionID == answer.QuestionID {
			existing[i] = answer
			return nil
		}
	}
	repo.answers[answer.AttemptID] = append(existing, answer)
	return nil
}

func (repo *fakeAttemptRepo) ListAnswers(_ context.Context, attemptID string) ([]*Answer, error) {
	return repo.answers[attemptID], nil
}

func (repo *fakeAttemptRepo) ListByStudent(_ context.Context, studentID string, _ pagination.Params) ([]*Attempt, int, error) {
	out := make([]*Attempt, 0)
	for _, attempt := range repo.attempts {
		if attempt.StudentID == studentID {
			out = append(out, attempt)
		}
	}
	return out, len(out), nil
}

type fakeQuestionBank struct {
	questions map[string]*question.Question
	drawOrder []string
}

func (bank *fakeQuestionBank) DrawForQuiz(_ context.Context, _, level, count int) ([]*question.Question, error) {
	out := make([]*question.Question, 0, count)
	for _, id := range bank.drawOrder {
		q := bank.questions[id]
		if q.Level <= level && len(out) < count {
			out = append(out, q)
		}
	}
	return out, nil
}

func (bank *fakeQuestionBank) Get(_ context.Context, id string) (*question.Question, error) {
	if q, ok := bank.questions[id]; ok {
		return q, nil
	}
	return nil, apperr.NotFound("Question")
}

type staticEntitlements struct {
	profile subscription.Profile
}

func (entitlements *staticEntitlements) For(string) subscription.ProfileSource {
	return subscription.StaticProfile(entitlements.profile)
}

type recordedAward struct {
	StudentID string
	AttemptID string
	Points    int
	Reason    string
}

type fakeRewards struct {
	awards []recordedAward
}

func (rewards *fakeRewards) Award(_ context.Context, studentID, attemptID string, points int, reason string) error {
	rewards.awards = append(rewards.awards, recordedAward{studentID, attemptID, points, reason})
	return nil
}

// # Fixture

type quizFixture struct {
	service  *Service
	quizzes  *fakeQuizRepo
	attempts *fakeAttemptRepo
	bank     *fakeQuestionBank
	rewards  *fakeRewards
	clock    *time.Time
}

func newQuizFixture(t *testing.T, profile subscription.Profile) *quizFixture {
	t.Helper()

	explanation := "two plus two"
	bank := &fakeQuestionBank{
		questions: map[string]*question.Question{
			"q1": {ID: "q1", CategoryID: 1, Level: 3, Prompt: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Explanation: &explanation},
			"q2": {ID: "q2", CategoryID: 1, Level: 4, Prompt: "3+3?", Options: []string{"6", "7"}, CorrectIndex: 0},
			"q3": {ID: "q3", CategoryID: 1, Level: 5, Prompt: "5*5?", Options: []string{"25", "10"}, CorrectIndex: 0},
		},
		drawOrder: []string{"q1", "q2", "q3"},
	}

	quizzes := &fakeQuizRepo{quizzes: map[string]*Quiz{
		"quiz-6": {ID: "quiz-6", CategoryID: 1, Title: "Basic Algebra", Slug: "basic-algebra", Level: 6, QuestionCount: 3, TimeLimitSeconds: 600, IsActive: true},
		"quiz-7": {ID: "quiz-7", CategoryID: 1, Title: "Advanced Algebra", Slug: "advanced-algebra", Level: 7, QuestionCount: 3, TimeLimitSeconds: 600, IsActive: true},
	}}

	attempts := newFakeAttemptRepo()
	rewards := &fakeRewards{}

	clock := quizNow
	fixture := &quizFixture{
		quizzes:  quizzes,
		attempts: attempts,
		bank:     bank,
		rewards:  rewards,
		clock:    &clock,
	}

	fixture.service = NewService(
		quizzes, attempts, bank,
		&staticEntitlements{profile: profile},
		rewards,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	fixture.service.SetClock(func() time.Time { return *fixture.clock })

	return fixture
}

func (fixture *quizFixture) advance(d time.Duration) {
	*fixture.clock = fixture.clock.Add(d)
}

func activeProfile(plan subscription.Plan) subscription.Profile {
	return subscription.Profile{
		SubscriptionStatus: subscription.StatusActive,
		SubscriptionPlan:   string(plan),
	}
}

// # Start

func TestStartAttempt_PlanCeilingGatesLevel(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, started.Attempt.Status)
	assert.Len(t, started.Questions, 3)

	_, err = fixture.service.StartAttempt(context.Background(), "student-1", "quiz-7")
	require.Error(t, err)
	assert.Equal(t, "UPGRADE_REQUIRED", apperr.As(err).Code)
}

func TestStartAttempt_InactiveSubscriptionCollapsesToFree(t *testing.T) {
	fixture := newQuizFixture(t, subscription.Profile{
		SubscriptionStatus: "expired",
		SubscriptionPlan:   string(subscription.PlanPro),
	})

	_, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.Error(t, err)
	assert.Equal(t, "UPGRADE_REQUIRED", apperr.As(err).Code)
}

func TestStartAttempt_DeadlineFromTimeLimit(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	assert.Equal(t, quizNow, started.Attempt.StartedAt)
	assert.Equal(t, quizNow.Add(10*time.Minute), started.Attempt.Deadline)
	assert.Equal(t, 600, started.RemainingSeconds)
}

func TestStartAttempt_QuestionsAreStripped(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	for _, q := range started.Questions {
		assert.NotEmpty(t, q.Prompt)
		assert.NotEmpty(t, q.Options)
	}
}

func TestStartAttempt_ResumesOpenAttempt(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	first, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	fixture.advance(2 * time.Minute)

	second, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	assert.Equal(t, first.Attempt.ID, second.Attempt.ID)
	assert.Equal(t, 480, second.RemainingSeconds)
}

func TestStartAttempt_ExpiresStaleAttemptAndStartsFresh(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	first, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	fixture.advance(11 * time.Minute)

	second, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	assert.NotEqual(t, first.Attempt.ID, second.Attempt.ID)
	assert.Equal(t, StatusExpired, fixture.attempts.attempts[first.Attempt.ID].Status)
	assert.Equal(t, StatusInProgress, second.Attempt.Status)
}

// # Answers

func TestSubmitAnswer_GradesServerSide(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 1))
	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q2", 1))

	answers := fixture.attempts.answers[started.Attempt.ID]
	require.Len(t, answers, 2)
	assert.True(t, answers[0].IsCorrect)
	assert.False(t, answers[1].IsCorrect)
}

func TestSubmitAnswer_ReanswerOverwrites(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 0))
	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 1))

	answers := fixture.attempts.answers[started.Attempt.ID]
	require.Len(t, answers, 1)
	assert.Equal(t, 1, answers[0].SelectedIndex)
	assert.True(t, answers[0].IsCorrect)
}

func TestSubmitAnswer_RejectsForeignQuestion(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))
	fixture.bank.questions["outsider"] = &question.Question{
		ID: "outsider", Level: 1, Prompt: "?", Options: []string{"a", "b"}, CorrectIndex: 0,
	}

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	err = fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "outsider", 0)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestSubmitAnswer_RejectsOutOfRangeIndex(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	err = fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 5)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestSubmitAnswer_PastDeadlineExpiresAttempt(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 1))

	fixture.advance(11 * time.Minute)

	err = fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q2", 0)
	require.Error(t, err)

	finalized := fixture.attempts.attempts[started.Attempt.ID]
	assert.Equal(t, StatusExpired, finalized.Status)
	assert.Equal(t, 1, finalized.Score)
}

func TestSubmitAnswer_ForeignAttemptReadsAsNotFound(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	err = fixture.service.SubmitAnswer(context.Background(), "student-2", started.Attempt.ID, "q1", 0)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Completion

func TestCompleteAttempt_ScoresAndAwardsPoints(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 1))
	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q2", 0))
	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q3", 1))

	result, err := fixture.service.CompleteAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Attempt.Status)
	assert.Equal(t, 2, result.Attempt.Score)
	require.NotNil(t, result.Attempt.CompletedAt)

	// 2 correct on a level-6 quiz.
	assert.Equal(t, 12, result.Points)
	require.Len(t, fixture.rewards.awards, 1)
	assert.Equal(t, recordedAward{"student-1", started.Attempt.ID, 12, "quiz_completed"}, fixture.rewards.awards[0])
}

func TestCompleteAttempt_RevealsGradingData(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 0))

	result, err := fixture.service.CompleteAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.NoError(t, err)
	require.Len(t, result.Questions, 3)

	first := result.Questions[0]
	assert.Equal(t, "q1", first.Question.ID)
	assert.Equal(t, 1, first.Question.CorrectIndex)
	require.NotNil(t, first.SelectedIndex)
	assert.Equal(t, 0, *first.SelectedIndex)
	assert.False(t, first.IsCorrect)

	// Unanswered questions appear with no selection.
	assert.Nil(t, result.Questions[1].SelectedIndex)
}

func TestCompleteAttempt_PastDeadlineExpiresWithoutPoints(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	require.NoError(t, fixture.service.SubmitAnswer(context.Background(), "student-1", started.Attempt.ID, "q1", 1))

	fixture.advance(11 * time.Minute)

	result, err := fixture.service.CompleteAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusExpired, result.Attempt.Status)
	assert.Equal(t, 1, result.Attempt.Score)
	assert.Nil(t, result.Attempt.CompletedAt)
	assert.Zero(t, result.Points)
	assert.Empty(t, fixture.rewards.awards)
}

func TestCompleteAttempt_DoubleCompleteRejected(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	_, err = fixture.service.CompleteAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.NoError(t, err)

	_, err = fixture.service.CompleteAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

// # Catalog

func TestListForStudent_FiltersAbovePlanCeiling(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	quizzes, _, err := fixture.service.ListForStudent(context.Background(), "student-1", 0, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.Len(t, quizzes, 1)
	assert.Equal(t, "quiz-6", quizzes[0].ID)
}

func TestGetAttempt_ReportsRemainingTime(t *testing.T) {
	fixture := newQuizFixture(t, activeProfile(subscription.PlanBasic))

	started, err := fixture.service.StartAttempt(context.Background(), "student-1", "quiz-6")
	require.NoError(t, err)

	fixture.advance(9 * time.Minute)

	_, remaining, err := fixture.service.GetAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, remaining)

	fixture.advance(5 * time.Minute)

	_, remaining, err = fixture.service.GetAttempt(context.Background(), "student-1", started.Attempt.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

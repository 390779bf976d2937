// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package quiz implements the quiz catalog and the attempt lifecycle.

# Attempt Lifecycle

An attempt moves through exactly one of three terminal paths:

	in_progress -> completed   (student submits within the deadline)
	in_progress -> expired     (deadline passes before completion)

Starting a quiz is gated by the student's subscription plan: the quiz's
difficulty level must fall under the plan's ceiling. Grading data (correct
indexes, explanations) is revealed only in the completion result.
*/
package quiz

import "time"

// Quiz is a published set of drawing rules over the question bank.
type Quiz struct {
	ID               string    `json:"id"`
	CategoryID       int       `json:"category_id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Level            int       `json:"level"`
	QuestionCount    int       `json:"question_count"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TimeLimit returns the quiz's countdown budget, falling back to the
// platform default when unset.
func (quiz *Quiz) TimeLimit(fallback time.Duration) time.Duration {
	if quiz.TimeLimitSeconds <= 0 {
		return fallback
	}
	return time.Duration(quiz.TimeLimitSeconds) * time.Second
}

// Attempt statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusExpired    = "expired"
)

// Attempt is one student's run through a quiz.
type Attempt struct {
	ID             string     `json:"id"`
	QuizID         string     `json:"quiz_id"`
	StudentID      string     `json:"student_id"`
	Status         string     `json:"status"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	QuestionIDs    []string   `json:"question_ids"`
	StartedAt      time.Time  `json:"started_at"`
	Deadline       time.Time  `json:"deadline"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// RemainingTime returns the countdown left at the given instant, floored at
// zero.
func (attempt *Attempt) RemainingTime(now time.Time) time.Duration {
	remaining := attempt.Deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Contains reports whether the question belongs to this attempt's draw.
func (attempt *Attempt) Contains(questionID string) bool {
	for _, id := range attempt.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// Answer is one graded response inside an attempt.
type Answer struct {
	ID            string    `json:"id"`
	AttemptID     string    `json:"attempt_id"`
	QuestionID    string    `json:"question_id"`
	SelectedIndex int       `json:"selected_index"`
	IsCorrect     bool      `json:"is_correct"`
	AnsweredAt    time.Time `json:"answered_at"`
}

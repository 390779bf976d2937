// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package question implements the question bank.

Questions carry a difficulty level on the 1..10 ladder; the subscription
evaluator decides how high a student may climb. The correct answer index and
explanation never leave this package through the student-facing projection.
*/
package question

import "time"

// Question is the full back-office entity, correct answer included.
type Question struct {
	ID           string    `json:"id"`
	CategoryID   int       `json:"category_id"`
	Level        int       `json:"level"`
	Prompt       string    `json:"prompt"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"correct_index"`
	Explanation  *string   `json:"explanation"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public is the student-facing projection: no correct index, no explanation.
type Public struct {
	ID         string   `json:"id"`
	CategoryID int      `json:"category_id"`
	Level      int      `json:"level"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
}

// AsPublic strips grading data from the question.
func (question *Question) AsPublic() Public {
	return Public{
		ID:         question.ID,
		CategoryID: question.CategoryID,
		Level:      question.Level,
		Prompt:     question.Prompt,
		Options:    question.Options,
	}
}

// IsCorrect reports whether the selected option index is the right answer.
func (question *Question) IsCorrect(selectedIndex int) bool {
	return selectedIndex == question.CorrectIndex
}

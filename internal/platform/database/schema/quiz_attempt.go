package schema

// QuizAttemptTable represents the 'quiz.attempt' table
type QuizAttemptTable struct {
	Table          string
	ID             string
	QuizID         string
	StudentID      string
	Status         string
	Score          string
	TotalQuestions string
	QuestionIDs    string
	StartedAt      string
	Deadline       string
	CompletedAt    string
}

// QuizAttempt is the schema definition for quiz.attempt
var QuizAttempt = QuizAttemptTable{
	Table:          "quiz.attempt",
	ID:             "id",
	QuizID:         "quizid",
	StudentID:      "studentid",
	Status:         "status",
	Score:          "score",
	TotalQuestions: "totalquestions",
	QuestionIDs:    "questionids",
	StartedAt:      "startedat",
	Deadline:       "deadline",
	CompletedAt:    "completedat",
}

func (t QuizAttemptTable) Columns() []string {
	return []string{
		t.ID, t.QuizID, t.StudentID, t.Status, t.Score, t.TotalQuestions,
		t.QuestionIDs, t.StartedAt, t.Deadline, t.CompletedAt,
	}
}

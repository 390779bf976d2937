package schema

// QuizAttemptAnswerTable represents the 'quiz.attemptanswer' table
type QuizAttemptAnswerTable struct {
	Table         string
	ID            string
	AttemptID     string
	QuestionID    string
	SelectedIndex string
	IsCorrect     string
	AnsweredAt    string
}

// QuizAttemptAnswer is the schema definition for quiz.attemptanswer
var QuizAttemptAnswer = QuizAttemptAnswerTable{
	Table:         "quiz.attemptanswer",
	ID:            "id",
	AttemptID:     "attemptid",
	QuestionID:    "questionid",
	SelectedIndex: "selectedindex",
	IsCorrect:     "iscorrect",
	AnsweredAt:    "answeredat",
}

func (t QuizAttemptAnswerTable) Columns() []string {
	return []string{
		t.ID, t.AttemptID, t.QuestionID, t.SelectedIndex, t.IsCorrect,
		t.AnsweredAt,
	}
}

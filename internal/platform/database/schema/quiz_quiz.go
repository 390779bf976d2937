package schema

// QuizQuizTable represents the 'quiz.quiz' table
type QuizQuizTable struct {
	Table            string
	ID               string
	CategoryID       string
	Title            string
	Slug             string
	Level            string
	QuestionCount    string
	TimeLimitSeconds string
	IsActive         string
	CreatedAt        string
	UpdatedAt        string
}

// QuizQuiz is the schema definition for quiz.quiz
var QuizQuiz = QuizQuizTable{
	Table:            "quiz.quiz",
	ID:               "id",
	CategoryID:       "categoryid",
	Title:            "title",
	Slug:             "slug",
	Level:            "level",
	QuestionCount:    "questioncount",
	TimeLimitSeconds: "timelimitseconds",
	IsActive:         "isactive",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t QuizQuizTable) Columns() []string {
	return []string{
		t.ID, t.CategoryID, t.Title, t.Slug, t.Level, t.QuestionCount,
		t.TimeLimitSeconds, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}

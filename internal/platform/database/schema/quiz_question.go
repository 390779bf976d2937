package schema

// QuizQuestionTable represents the 'quiz.question' table
type QuizQuestionTable struct {
	Table        string
	ID           string
	CategoryID   string
	Level        string
	Prompt       string
	Options      string
	CorrectIndex string
	Explanation  string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// QuizQuestion is the schema definition for quiz.question
var QuizQuestion = QuizQuestionTable{
	Table:        "quiz.question",
	ID:           "id",
	CategoryID:   "categoryid",
	Level:        "level",
	Prompt:       "prompt",
	Options:      "options",
	CorrectIndex: "correctindex",
	Explanation:  "explanation",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t QuizQuestionTable) Columns() []string {
	return []string{
		t.ID, t.CategoryID, t.Level, t.Prompt, t.Options, t.CorrectIndex,
		t.Explanation, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}

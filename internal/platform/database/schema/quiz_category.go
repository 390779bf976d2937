package schema

// QuizCategoryTable represents the 'quiz.category' table
type QuizCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	IconURL     string
	SortOrder   string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// QuizCategory is the schema definition for quiz.category
var QuizCategory = QuizCategoryTable{
	Table:       "quiz.category",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	IconURL:     "iconurl",
	SortOrder:   "sortorder",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t QuizCategoryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Description, t.IconURL, t.SortOrder,
		t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}

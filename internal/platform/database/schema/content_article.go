package schema

// ContentArticleTable represents the 'content.article' table
type ContentArticleTable struct {
	Table       string
	ID          string
	AuthorID    string
	Title       string
	Slug        string
	Summary     string
	Body        string
	CoverURL    string
	IsPublished string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// ContentArticle is the schema definition for content.article
var ContentArticle = ContentArticleTable{
	Table:       "content.article",
	ID:          "id",
	AuthorID:    "authorid",
	Title:       "title",
	Slug:        "slug",
	Summary:     "summary",
	Body:        "body",
	CoverURL:    "coverurl",
	IsPublished: "ispublished",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ContentArticleTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Slug, t.Summary, t.Body, t.CoverURL,
		t.IsPublished, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}

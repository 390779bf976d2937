// Package article implements study articles: long-form content published by
// admins and read by students. Unlike quizzes, articles are not level-gated.
package article

import "time"

type Article struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     *string    `json:"summary"`
	Body        string     `json:"body"`
	CoverURL    *string    `json:"cover_url"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

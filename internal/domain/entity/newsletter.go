package entity

import (
	"strings"
	"time"
)

// Newsletter is a piece of authored content. Newly created newsletters are drafts.
type Newsletter struct {
	ID           string
	Title        string
	Subtitle     string
	Content      string
	Image        string
	Category     *Category
	Published    bool
	ScheduledFor *time.Time
	AuthorID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Author is populated by queries that join the users table.
	Author *User
}

// Validate checks the fields every stored newsletter must carry.
func (n *Newsletter) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return &ValidationError{Field: "title", Message: "Title is required"}
	}
	if strings.TrimSpace(n.Content) == "" {
		return &ValidationError{Field: "content", Message: "Content is required"}
	}
	if n.AuthorID == "" {
		return &ValidationError{Field: "authorId", Message: "Author is required"}
	}
	return nil
}

// CategoryOrOther returns the category label, falling back to Other when unset.
func (n *Newsletter) CategoryOrOther() Category {
	if n.Category == nil || *n.Category == "" {
		return CategoryOther
	}
	return *n.Category
}

// VisibleTo reports whether viewer may read the newsletter.
// Published newsletters are public; drafts are limited to the author and admins.
func (n *Newsletter) VisibleTo(viewer *User) bool {
	if n.Published {
		return true
	}
	return n.EditableBy(viewer)
}

// EditableBy reports whether actor may modify or delete the newsletter.
func (n *Newsletter) EditableBy(actor *User) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == n.AuthorID
}

package models

import "time"

// DeletedCommentContent replaces the body of a soft-deleted comment in
// responses so that replies under it stay readable.
const DeletedCommentContent = "[deleted]"

// Comment is a threaded discussion entry attached to a posting. A nil
// ParentCommentID marks a root comment; replies carry their parent's ID
// and a depth of parent.Depth+1. Deleted comments are kept as rows with
// DeletedAt set so reply chains below them survive.
type Comment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PostingID       uint       `gorm:"index;not null" json:"posting_id"`
	AuthorID        uint       `gorm:"index;not null" json:"author_id"`
	Author          User       `gorm:"foreignKey:AuthorID" json:"author"`
	ParentCommentID *uint      `gorm:"index" json:"parent_comment_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Depth           int        `gorm:"not null;default:0" json:"depth"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at"`
}

// Deleted reports whether the comment has been soft deleted.
func (c *Comment) Deleted() bool {
	return c.DeletedAt != nil
}

// DisplayContent returns the comment body, masked when deleted.
func (c *Comment) DisplayContent() string {
	if c.Deleted() {
		return DeletedCommentContent
	}
	return c.Content
}

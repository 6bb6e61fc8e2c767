// Package models contains data structures for the application's domain models.
package models

// Post is a scraped submission. Rows are immutable once scraped except for
// the engagement counters, which the ingestion side may refresh.
//
// CreatedAt is stored as the raw scraped string; the upstream corpus mixes
// serialization formats, so parsing happens at read time (see ParseTimestamp).
type Post struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Author       string `gorm:"index;not null" json:"author"`
	Title        string `json:"title"`
	Content      string `gorm:"type:text" json:"content"`
	CreatedAt    string `gorm:"column:created_at" json:"created_at"`
	Upvotes      int    `json:"upvotes"`
	Downvotes    int    `json:"downvotes"`
	CommentCount int    `json:"comment_count"`
	Submolt      string `gorm:"index" json:"submolt"`
}

// Comment is a scraped reply. PostID is required; ParentID is set for nested
// replies. Depth is the thread depth as reported by the platform.
type Comment struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	PostID    string  `gorm:"index;not null" json:"post_id"`
	ParentID  *string `gorm:"index" json:"parent_id,omitempty"`
	Author    string  `gorm:"index;not null" json:"author"`
	Content   string  `gorm:"type:text" json:"content"`
	CreatedAt string  `gorm:"column:created_at" json:"created_at"`
	Depth     int     `json:"depth"`
}

// Interaction is a directed edge between two authors derived from
// comment/post adjacency. Weight counts repeated interactions of the
// same type between the same pair.
type Interaction struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	AuthorFrom      string `gorm:"index:idx_interaction_pair;not null" json:"author_from"`
	AuthorTo        string `gorm:"index:idx_interaction_pair;index;not null" json:"author_to"`
	Weight          int    `gorm:"default:1" json:"weight"`
	InteractionType string `json:"interaction_type"`
}

package models

import "time"

// Submission kinds accepted from external observers.
const (
	SubmissionObservation = "observation"
	SubmissionCorrection  = "correction"
	SubmissionSuggestion  = "suggestion"
)

// Review states a submission moves through.
const (
	SubmissionStatusNew       = "new"
	SubmissionStatusReviewed  = "reviewed"
	SubmissionStatusDismissed = "dismissed"
)

// Submission is an externally submitted correction or observation about an
// account's classification. Stored verbatim; review is manual.
type Submission struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"not null;index" json:"type"`
	Username  string    `gorm:"index" json:"username"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Contact   string    `json:"contact,omitempty"`
	Status    string    `gorm:"default:new" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidSubmissionType reports whether t is an accepted submission kind.
func ValidSubmissionType(t string) bool {
	switch t {
	case SubmissionObservation, SubmissionCorrection, SubmissionSuggestion:
		return true
	}
	return false
}

// ValidSubmissionStatus reports whether st is an accepted review state.
func ValidSubmissionStatus(st string) bool {
	switch st {
	case SubmissionStatusNew, SubmissionStatusReviewed, SubmissionStatusDismissed:
		return true
	}
	return false
}

package repository

import (
	"context"

	"observatory/internal/models"

	"gorm.io/gorm"
)

// SubmissionRepository stores externally submitted observations and corrections.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	List(ctx context.Context, status string, limit, offset int) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Submission, error) {
	var submissions []models.Submission
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

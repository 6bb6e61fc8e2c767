package server

import (
	"errors"
	"strings"
	"time"

	"observatory/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxSubmissionContentLen = 5000

// CreateSubmission handles POST /api/v1/submit
func (s *Server) CreateSubmission(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Type     string `json:"type"`
		Username string `json:"username"`
		Content  string `json:"content"`
		Contact  string `json:"contact"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if !models.ValidSubmissionType(req.Type) {
		return models.RespondWithError(c, models.NewValidationError(
			"Type must be observation, correction, or suggestion"))
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return models.RespondWithError(c, models.NewValidationError("Content is required"))
	}
	if len(req.Content) > maxSubmissionContentLen {
		return models.RespondWithError(c, models.NewValidationError("Content is too long"))
	}

	submission := &models.Submission{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Username:  strings.TrimSpace(req.Username),
		Content:   req.Content,
		Contact:   strings.TrimSpace(req.Contact),
		Status:    models.SubmissionStatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

// GetSubmissions handles GET /api/v1/submissions (admin)
func (s *Server) GetSubmissions(c *fiber.Ctx) error {
	ctx := c.Context()

	status := c.Query("status")
	if status != "" && !models.ValidSubmissionStatus(status) {
		return models.RespondWithError(c, models.NewValidationError("Unknown status"))
	}
	page := parsePagination(c, 20)

	submissions, err := s.submissionRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	return c.JSON(submissions)
}

// UpdateSubmissionStatus handles POST /api/v1/submissions/:id/status (admin)
func (s *Server) UpdateSubmissionStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	id := c.Params("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if !models.ValidSubmissionStatus(req.Status) {
		return models.RespondWithError(c, models.NewValidationError(
			"Status must be new, reviewed, or dismissed"))
	}

	if err := s.submissionRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, models.NewNotFoundError("Submission not found"))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"id": id, "status": req.Status})
}

package server

import (
	"context"

	"vipgate/internal/models"
	"vipgate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRecommendation handles POST /api/recommendations
// @Summary Submit a content recommendation
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body service.CreateRecommendationRequest true "Recommendation"
// @Success 201 {object} models.Recommendation
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /recommendations [post]
func (s *Server) CreateRecommendation(c *fiber.Ctx) error {
	var req service.CreateRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	rec, err := s.recService.Create(c.UserContext(), user.Email, req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetMyRecommendations handles GET /api/recommendations/me
// @Summary List my recommendations
// @Tags recommendations
// @Produce json
// @Success 200 {array} models.Recommendation
// @Security BearerAuth
// @Router /recommendations/me [get]
func (s *Server) GetMyRecommendations(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	recs, err := s.recService.ListByEmail(c.UserContext(), user.Email)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(recs)
}

// GetRecommendations handles GET /api/recommendations
// @Summary List recommendations for review
// @Tags recommendations-admin
// @Produce json
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{recommendations=[]models.Recommendation,total=int}
// @Security BearerAuth
// @Router /recommendations [get]
func (s *Server) GetRecommendations(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	status := models.RecommendationStatus(c.Query("status"))

	recs, total, err := s.recService.List(c.UserContext(), status, p.Limit, p.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"recommendations": recs,
		"total":           total,
	})
}

// ApproveRecommendation handles POST /api/recommendations/:id/approve
// @Summary Approve a recommendation
// @Tags recommendations-admin
// @Param id path int true "Recommendation ID"
// @Produce json
// @Success 200 {object} models.Recommendation
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /recommendations/{id}/approve [post]
func (s *Server) ApproveRecommendation(c *fiber.Ctx) error {
	return s.reviewRecommendation(c, s.recService.Approve)
}

// RejectRecommendation handles POST /api/recommendations/:id/reject
// @Summary Reject a recommendation
// @Tags recommendations-admin
// @Param id path int true "Recommendation ID"
// @Produce json
// @Success 200 {object} models.Recommendation
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /recommendations/{id}/reject [post]
func (s *Server) RejectRecommendation(c *fiber.Ctx) error {
	return s.reviewRecommendation(c, s.recService.Reject)
}

type reviewFn func(ctx context.Context, id, reviewerID uint) (*models.Recommendation, error)

func (s *Server) reviewRecommendation(c *fiber.Ctx, review reviewFn) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	reviewerID := c.Locals("userID").(uint)

	rec, err := review(c.UserContext(), id, reviewerID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(rec)
}

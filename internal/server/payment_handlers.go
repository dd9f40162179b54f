package server

import (
	"vipgate/internal/models"
	"vipgate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// VipPayment handles POST /api/pay/vip-payment
// @Summary Start a VIP checkout
// @Description Return the external checkout URL for the chosen plan
// @Tags payments
// @Accept json
// @Produce json
// @Param request body object{planType=string} true "Plan type: monthly or annual"
// @Success 200 {object} object{url=string}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /pay/vip-payment [post]
func (s *Server) VipPayment(c *fiber.Ctx) error {
	var req struct {
		PlanType string `json:"planType"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PlanType == "" {
		req.PlanType = string(service.PlanMonthly)
	}

	// Checkout is always for the authenticated user; a client-supplied email
	// is ignored.
	user, err := s.currentUser(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	checkoutURL, err := s.paymentService.CheckoutURL(user.Email, service.PaymentPlan(req.PlanType))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"url": checkoutURL})
}

// GetStats handles GET /api/stats
// @Summary Platform statistics
// @Description Aggregate user and content counters
// @Tags stats
// @Produce json
// @Success 200 {object} service.Stats
// @Router /stats [get]
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Snapshot(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(stats)
}

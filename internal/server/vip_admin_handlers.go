package server

import (
	"context"

	"vipgate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetVipUsers handles GET /api/auth/vip-users
// @Summary List VIP users
// @Description Return all VIP grant holders, expired grants first
// @Tags vip-admin
// @Produce json
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /auth/vip-users [get]
func (s *Server) GetVipUsers(c *fiber.Ctx) error {
	users, err := s.vipService.ListVipUsers(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(users)
}

// GetVipDisabledUsers handles GET /api/auth/vip-disabled-users
// @Summary List disabled VIP users
// @Tags vip-admin
// @Produce json
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /auth/vip-disabled-users [get]
func (s *Server) GetVipDisabledUsers(c *fiber.Ctx) error {
	users, err := s.vipService.ListVipDisabledUsers(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(users)
}

// RenewVip handles POST /api/auth/renew-vip
// @Summary Renew VIP for 30 days
// @Description Extend the user's grant by 30 days from its current expiration, or from now if lapsed
// @Tags vip-admin
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Target user email"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/renew-vip [post]
func (s *Server) RenewVip(c *fiber.Ctx) error {
	return s.vipTransitionByEmail(c, s.vipService.RenewMonth)
}

// RenewVipYear handles POST /api/auth/renew-vip-year
// @Summary Renew VIP for one year
// @Tags vip-admin
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Target user email"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/renew-vip-year [post]
func (s *Server) RenewVipYear(c *fiber.Ctx) error {
	return s.vipTransitionByEmail(c, s.vipService.RenewYear)
}

// DisableUser handles POST /api/auth/disable-user
// @Summary Disable a user's VIP access
// @Description Block VIP access without touching the expiration date
// @Tags vip-admin
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Target user email"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/disable-user [post]
func (s *Server) DisableUser(c *fiber.Ctx) error {
	return s.vipTransitionByEmail(c, s.vipService.Disable)
}

// RemoveVip handles POST /api/auth/remove-vip
// @Summary Remove a user's VIP grant entirely
// @Tags vip-admin
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Target user email"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/remove-vip [post]
func (s *Server) RemoveVip(c *fiber.Ctx) error {
	return s.vipTransitionByEmail(c, s.vipService.RemoveVip)
}

// vipTransitionByEmail parses the email payload shared by the VIP admin
// endpoints and applies the given transition.
func (s *Server) vipTransitionByEmail(c *fiber.Ctx, transition func(context.Context, string) (*models.User, error)) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	user, err := transition(c.UserContext(), req.Email)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user)
}

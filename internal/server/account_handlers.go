package server

import (
	"vipgate/internal/vip"

	"github.com/gofiber/fiber/v2"
)

// Dashboard handles GET /api/auth/dashboard
// @Summary Account dashboard
// @Description Return the authenticated user's profile, VIP state and days remaining
// @Tags account
// @Produce json
// @Success 200 {object} object{user=models.User,favorites=[]models.ContentItem,vipState=string,daysLeft=int}
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/dashboard [get]
func (s *Server) Dashboard(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	favorites, err := s.userRepo.ListFavorites(c.UserContext(), user.ID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":      user,
		"favorites": favorites,
		"vipState":  string(s.vipService.StateOf(user)),
		"daysLeft":  s.vipService.DaysLeft(user),
	})
}

// IsVip handles GET /api/auth/is-vip
// @Summary VIP status check
// @Description Report whether the authenticated user currently has VIP access
// @Tags account
// @Produce json
// @Success 200 {object} object{isVip=bool,vipState=string}
// @Security BearerAuth
// @Router /auth/is-vip [get]
func (s *Server) IsVip(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	state := s.vipService.StateOf(user)
	return c.JSON(fiber.Map{
		"isVip":    state == vip.StateActive || state == vip.StateCanceling,
		"vipState": string(state),
	})
}

// IsAdmin handles GET /api/auth/is-admin
// @Summary Admin status check
// @Tags account
// @Produce json
// @Success 200 {object} object{isAdmin=bool}
// @Security BearerAuth
// @Router /auth/is-admin [get]
func (s *Server) IsAdmin(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"isAdmin": user.IsAdmin})
}

// CancelSubscription handles POST /api/auth/cancel-subscription
// @Summary Cancel subscription
// @Description Stop billing at the current period end; access continues until expiration
// @Tags account
// @Produce json
// @Success 200 {object} object{vipExpirationDate=string,user=models.User,message=string}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/cancel-subscription [post]
func (s *Server) CancelSubscription(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.vipService.CancelAtPeriodEnd(c.UserContext(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"vipExpirationDate": user.VipExpirationDate,
		"user":              user,
		"message":           "Subscription will end at the current period's expiration",
	})
}

// GetFavorites handles GET /api/auth/favorites
// @Summary List favorites
// @Tags account
// @Produce json
// @Success 200 {array} models.ContentItem
// @Security BearerAuth
// @Router /auth/favorites [get]
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	items, err := s.userRepo.ListFavorites(c.UserContext(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(items)
}

// AddFavorite handles POST /api/auth/favorites/:id
// @Summary Save a content item
// @Tags account
// @Param id path int true "Content item ID"
// @Produce json
// @Success 201 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/favorites/{id} [post]
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Verify the item exists so favorites never dangle.
	if _, err := s.contentRepo.GetByID(c.UserContext(), itemID); err != nil {
		return handleServiceError(c, err)
	}
	if err := s.userRepo.AddFavorite(c.UserContext(), userID, itemID); err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Favorite saved"})
}

// RemoveFavorite handles DELETE /api/auth/favorites/:id
// @Summary Remove a saved content item
// @Tags account
// @Param id path int true "Content item ID"
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/favorites/{id} [delete]
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userRepo.RemoveFavorite(c.UserContext(), userID, itemID); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Favorite removed"})
}

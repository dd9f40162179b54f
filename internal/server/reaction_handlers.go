package server

import (
	"vipgate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetEmojis handles GET /api/emojis
// @Summary Reaction counts for a content item
// @Tags reactions
// @Produce json
// @Param linkId query int true "Content item ID"
// @Success 200 {array} models.Reaction
// @Failure 404 {object} models.ErrorResponse
// @Router /emojis [get]
func (s *Server) GetEmojis(c *fiber.Ctx) error {
	linkID := c.QueryInt("linkId", 0)
	if linkID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid link ID"))
	}

	reactions, err := s.reactionService.ListForItem(c.UserContext(), uint(linkID))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(reactions)
}

// ReactWithEmoji handles POST /api/emoji/:name/react
// @Summary React to a content item
// @Description Increment the named emoji's counter for the given content item
// @Tags reactions
// @Accept json
// @Produce json
// @Param name path string true "Emoji name"
// @Param request body object{linkId=int} true "Content item reference"
// @Success 200 {object} object{success=bool,reaction=models.Reaction}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /emoji/{name}/react [post]
func (s *Server) ReactWithEmoji(c *fiber.Ctx) error {
	name := c.Params("name")

	var req struct {
		LinkID uint `json:"linkId"`
	}
	if err := c.BodyParser(&req); err != nil || req.LinkID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid link ID"))
	}

	reaction, err := s.reactionService.React(c.UserContext(), req.LinkID, name)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"reaction": reaction,
	})
}

package server

import (
	"vipgate/internal/contentview"
	"vipgate/internal/models"
	"vipgate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFreeContent handles GET /api/freecontent
// @Summary List free content
// @Description Return the raw free-tier content items, newest first
// @Tags content
// @Produce json
// @Success 200 {array} models.ContentItem
// @Router /freecontent [get]
func (s *Server) GetFreeContent(c *fiber.Ctx) error {
	return s.listContent(c, models.TierFree)
}

// GetVipContent handles GET /api/vipcontent
// @Summary List VIP content
// @Tags content
// @Produce json
// @Success 200 {array} models.ContentItem
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /vipcontent [get]
func (s *Server) GetVipContent(c *fiber.Ctx) error {
	return s.listContent(c, models.TierVip)
}

func (s *Server) listContent(c *fiber.Ctx, tier models.ContentTier) error {
	items, err := s.contentService.List(c.UserContext(), tier)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(items)
}

// GetFreeContentView handles GET /api/freecontent/view
// @Summary Rendered free content view
// @Description Return the filtered, sorted, grouped content view with recency marks
// @Tags content
// @Produce json
// @Param search query string false "Case-insensitive name substring"
// @Param month query string false "Two-digit month filter (01-12)"
// @Param category query string false "Exact category filter"
// @Param sort query string false "mostRecent (default) or oldest"
// @Success 200 {object} contentview.View
// @Router /freecontent/view [get]
func (s *Server) GetFreeContentView(c *fiber.Ctx) error {
	return s.contentViewHandler(c, models.TierFree)
}

// GetVipContentView handles GET /api/vipcontent/view
// @Summary Rendered VIP content view
// @Tags content
// @Produce json
// @Param search query string false "Case-insensitive name substring"
// @Param month query string false "Two-digit month filter (01-12)"
// @Param category query string false "Exact category filter"
// @Param sort query string false "mostRecent (default) or oldest"
// @Success 200 {object} contentview.View
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /vipcontent/view [get]
func (s *Server) GetVipContentView(c *fiber.Ctx) error {
	return s.contentViewHandler(c, models.TierVip)
}

func (s *Server) contentViewHandler(c *fiber.Ctx, tier models.ContentTier) error {
	var params contentview.Params
	if err := c.QueryParser(&params); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid query parameters"))
	}

	view, err := s.contentService.BuildView(c.UserContext(), tier, params)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(view)
}

// GetFreeContentCategories handles GET /api/freecontent/categories
// @Summary Free content categories
// @Tags content
// @Produce json
// @Success 200 {array} string
// @Router /freecontent/categories [get]
func (s *Server) GetFreeContentCategories(c *fiber.Ctx) error {
	return s.contentCategories(c, models.TierFree)
}

// GetVipContentCategories handles GET /api/vipcontent/categories
// @Summary VIP content categories
// @Tags content
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /vipcontent/categories [get]
func (s *Server) GetVipContentCategories(c *fiber.Ctx) error {
	return s.contentCategories(c, models.TierVip)
}

func (s *Server) contentCategories(c *fiber.Ctx, tier models.ContentTier) error {
	categories, err := s.contentService.Categories(c.UserContext(), tier)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(categories)
}

// CreateFreeContent handles POST /api/freecontent
// @Summary Create free content item
// @Tags content-admin
// @Accept json
// @Produce json
// @Param request body service.CreateContentRequest true "Content item"
// @Success 201 {object} models.ContentItem
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /freecontent [post]
func (s *Server) CreateFreeContent(c *fiber.Ctx) error {
	return s.createContent(c, models.TierFree)
}

// CreateVipContent handles POST /api/vipcontent
// @Summary Create VIP content item
// @Tags content-admin
// @Accept json
// @Produce json
// @Param request body service.CreateContentRequest true "Content item"
// @Success 201 {object} models.ContentItem
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /vipcontent [post]
func (s *Server) CreateVipContent(c *fiber.Ctx) error {
	return s.createContent(c, models.TierVip)
}

func (s *Server) createContent(c *fiber.Ctx, tier models.ContentTier) error {
	var req service.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.Create(c.UserContext(), tier, req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateContent handles PUT /api/freecontent/:id and PUT /api/vipcontent/:id
// @Summary Update content item
// @Tags content-admin
// @Accept json
// @Produce json
// @Param id path int true "Content item ID"
// @Param request body service.CreateContentRequest true "Content item"
// @Success 200 {object} models.ContentItem
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /freecontent/{id} [put]
func (s *Server) UpdateContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.contentService.Update(c.UserContext(), id, req)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(item)
}

// DeleteContent handles DELETE /api/freecontent/:id and DELETE /api/vipcontent/:id
// @Summary Delete content item
// @Tags content-admin
// @Param id path int true "Content item ID"
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /freecontent/{id} [delete]
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contentService.Delete(c.UserContext(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Content item deleted"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/ports"
)

// ArticleHandler handles catalogue routes.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type articleRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Brand       string  `json:"brand"       validate:"required,max=50"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	Color       string  `json:"color"       validate:"required,oneof=red blue green yellow purple orange grey black white"`
	Image       string  `json:"image"       validate:"omitempty,max=255"`
	Description string  `json:"description" validate:"omitempty,max=500"`
}

func (r articleRequest) toInput() ports.ArticleInput {
	return ports.ArticleInput{
		Name:        r.Name,
		Brand:       r.Brand,
		Price:       r.Price,
		Stock:       r.Stock,
		Color:       r.Color,
		Image:       r.Image,
		Description: r.Description,
	}
}

// List handles GET /api/articles.
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:id.
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	article, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/articles/:id.
func (h *ArticleHandler) Update(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	article, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id.
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "article deleted"})
}

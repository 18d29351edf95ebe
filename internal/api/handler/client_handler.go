package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/ports"
)

// ClientHandler handles CRM client routes.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type addressRequest struct {
	Street     string `json:"street"      validate:"required,max=100"`
	City       string `json:"city"        validate:"required,max=50"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

type clientRequest struct {
	FirstName string         `json:"firstname" validate:"required,max=50"`
	LastName  string         `json:"lastname"  validate:"required,max=50"`
	Company   string         `json:"company"   validate:"omitempty,max=100"`
	Email     string         `json:"email"     validate:"required,email"`
	Phone     string         `json:"phone"     validate:"required,numeric,len=10"`
	Address   addressRequest `json:"address"   validate:"required"`
}

func (r clientRequest) toInput() ports.ClientInput {
	return ports.ClientInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Company:   r.Company,
		Email:     r.Email,
		Phone:     r.Phone,
		Address: ports.AddressInput{
			Street:     r.Address.Street,
			City:       r.Address.City,
			PostalCode: r.Address.PostalCode,
		},
	}
}

// List handles GET /api/clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Get handles GET /api/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Update handles PUT /api/clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/clients/:id.
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "client deleted"})
}

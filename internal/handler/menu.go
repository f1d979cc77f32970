package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gastroflow/gastroflow/internal/menu"
)

// MenuHandler serves the read-only dining catalog.  No authentication:
// guests browse the menu before deciding anything.
type MenuHandler struct {
	Catalog *menu.Catalog
}

func NewMenuHandler(c *menu.Catalog) *MenuHandler {
	return &MenuHandler{Catalog: c}
}

// Products lists menu items.  ?category= filters by category id and
// ?without= excludes items containing that allergen id.
func (h *MenuHandler) Products(c echo.Context) error {
	products := h.Catalog.Products(c.QueryParam("category"), c.QueryParam("without"))
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// Categories lists the menu categories in display order.
func (h *MenuHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": h.Catalog.Categories()})
}

// Allergens lists the declarable allergens.
func (h *MenuHandler) Allergens(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"allergens": h.Catalog.Allergens()})
}

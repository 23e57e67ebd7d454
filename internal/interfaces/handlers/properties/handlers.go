package properties

import (
	"errors"

	"estate-backend/internal/application/catalog"
	"estate-backend/internal/pkg/response"
	"estate-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves catalog browsing and the yield calculator.
type Handlers struct {
	Catalog *catalog.Service
}

// List GET /api/v1/properties?location=&min_yield=&max_yield=
func (h *Handlers) List(c *fiber.Ctx) error {
	f := catalog.DefaultFilter()
	f.Location = c.Query("location")

	var err error
	if f.MinYield, err = validation.ParseDecimal(c.Query("min_yield"), f.MinYield); err != nil {
		return response.Error(c, "min_yield must be a number", fiber.StatusBadRequest, nil)
	}
	if f.MaxYield, err = validation.ParseDecimal(c.Query("max_yield"), f.MaxYield); err != nil {
		return response.Error(c, "max_yield must be a number", fiber.StatusBadRequest, nil)
	}

	props, err := h.Catalog.Filter(f)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	return response.Success(c, "Properties fetched successfully", props, fiber.Map{"count": len(props)})
}

// Locations GET /api/v1/properties/locations
func (h *Handlers) Locations(c *fiber.Ctx) error {
	return response.Success(c, "Locations fetched successfully", h.Catalog.Locations(), nil)
}

// Get GET /api/v1/properties/:id, with the city risk of the property's location.
func (h *Handlers) Get(c *fiber.Ctx) error {
	p, err := h.Catalog.FindByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrPropertyNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property fetched successfully", fiber.Map{
		"property":  p,
		"city_risk": catalog.CityRisk(p.Location),
	}, nil)
}

// YieldCalculator POST /api/v1/properties/:id/yield-calculator
func (h *Handlers) YieldCalculator(c *fiber.Ctx) error {
	p, err := h.Catalog.FindByID(c.Params("id"))
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	}

	var req catalog.YieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "investment and duration are required", fiber.StatusBadRequest, nil)
	}
	out, err := catalog.ProjectYield(p, req, p.PricePerFraction.Currency())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	return response.Success(c, "Projection calculated", out, nil)
}

// CityRisk GET /api/v1/cities/:city/risk
func (h *Handlers) CityRisk(c *fiber.Ctx) error {
	return response.Success(c, "City risk fetched successfully", catalog.CityRisk(c.Params("city")), nil)
}

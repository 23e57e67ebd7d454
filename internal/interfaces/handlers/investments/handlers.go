package investments

import (
	"estate-backend/internal/application/allocation"
	"estate-backend/internal/domain"
	"estate-backend/internal/middleware"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handlers runs share purchases for the session user.
type Handlers struct {
	Engine *allocation.Engine
}

// InvestRequest body for POST /api/v1/investments.
type InvestRequest struct {
	PropertyID string           `json:"property_id"`
	Amount     *decimal.Decimal `json:"amount"`
	GroupID    string           `json:"group_id"`
}

// Invest POST /api/v1/investments
func (h *Handlers) Invest(c *fiber.Ctx) error {
	var body InvestRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "property_id and amount are required", fiber.StatusBadRequest, nil)
	}
	if body.PropertyID == "" || body.Amount == nil {
		return response.Error(c, "property_id and amount are required", fiber.StatusBadRequest, nil)
	}

	result := h.Engine.Invest(c.UserContext(), allocation.InvestRequest{
		PropertyID: body.PropertyID,
		Amount:     *body.Amount,
		OwnerID:    middleware.UserID(c),
		GroupID:    body.GroupID,
	})
	return Respond(c, result)
}

// Respond writes an allocation result: 201 on success, otherwise the status for
// its failure code, with the result as data either way.
func Respond(c *fiber.Ctx, result domain.AllocationResult) error {
	if result.Success {
		return response.SuccessCreated(c, result.Message, result, nil)
	}
	return response.Failure(c, result.Message, StatusFor(result.Code), result)
}

// StatusFor maps a failure code to an HTTP status.
func StatusFor(code domain.FailureCode) int {
	switch code {
	case domain.FailNotFound, domain.FailGroupNotFound:
		return fiber.StatusNotFound
	case domain.FailInsufficientInventory:
		return fiber.StatusConflict
	case domain.FailNotConfigured, domain.FailBelowMinimum, domain.FailInvalidAmount:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

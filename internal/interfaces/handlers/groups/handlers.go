package groups

import (
	"errors"

	"estate-backend/internal/application/allocation"
	"estate-backend/internal/application/ledger"
	"estate-backend/internal/application/portfolio"
	"estate-backend/internal/domain"
	"estate-backend/internal/interfaces/handlers/investments"
	"estate-backend/internal/middleware"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Portfolio *portfolio.Service
	Engine    *allocation.Engine
	Ledger    *ledger.Service // optional
}

// List GET /api/v1/groups
func (h *Handlers) List(c *fiber.Ctx) error {
	groups := h.Portfolio.ListGroups()
	return response.Success(c, "Groups fetched successfully", groups, fiber.Map{"count": len(groups)})
}

// Get GET /api/v1/groups/:idOrCode
func (h *Handlers) Get(c *fiber.Ctx) error {
	g, err := h.Portfolio.ResolveGroup(c.Params("idOrCode"))
	if err != nil {
		return groupError(c, err)
	}
	return response.Success(c, "Group fetched successfully", g, nil)
}

// Invest POST /api/v1/groups/:idOrCode/investments, body {property_id, amount}.
func (h *Handlers) Invest(c *fiber.Ctx) error {
	g, err := h.Portfolio.ResolveGroup(c.Params("idOrCode"))
	if err != nil {
		return groupError(c, err)
	}

	var body struct {
		PropertyID string           `json:"property_id"`
		Amount     *decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil || body.PropertyID == "" || body.Amount == nil {
		return response.Error(c, "property_id and amount are required", fiber.StatusBadRequest, nil)
	}

	result := h.Engine.Invest(c.UserContext(), allocation.InvestRequest{
		PropertyID: body.PropertyID,
		Amount:     *body.Amount,
		OwnerID:    middleware.UserID(c),
		GroupID:    g.ID,
	})
	return investments.Respond(c, result)
}

// Transactions GET /api/v1/groups/:idOrCode/transactions?limit=
func (h *Handlers) Transactions(c *fiber.Ctx) error {
	g, err := h.Portfolio.ResolveGroup(c.Params("idOrCode"))
	if err != nil {
		return groupError(c, err)
	}
	if h.Ledger == nil {
		return response.Success(c, "Transactions fetched successfully", []domain.Transaction{}, nil)
	}
	txs, err := h.Ledger.ListByGroup(c.UserContext(), g.ID, c.QueryInt("limit", 0))
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transactions fetched successfully", txs, fiber.Map{"count": len(txs)})
}

func groupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, portfolio.ErrGroupNotFound) {
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	}
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}

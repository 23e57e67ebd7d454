package portfolio

import (
	"estate-backend/internal/application/ledger"
	portfoliosvc "estate-backend/internal/application/portfolio"
	"estate-backend/internal/application/snapshots"
	"estate-backend/internal/domain"
	"estate-backend/internal/middleware"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Portfolio *portfoliosvc.Service
	Ledger    *ledger.Service    // optional
	Snapshot  *snapshots.Service // optional
}

// Get GET /api/v1/portfolio: holdings joined with properties plus totals.
func (h *Handlers) Get(c *fiber.Ctx) error {
	holdings, summary := h.Portfolio.Overview(middleware.UserID(c))
	return response.Success(c, "Portfolio fetched successfully", fiber.Map{
		"holdings": holdings,
		"summary":  summary,
	}, nil)
}

// Transactions GET /api/v1/portfolio/transactions?limit=
func (h *Handlers) Transactions(c *fiber.Ctx) error {
	if h.Ledger == nil {
		return response.Success(c, "Transactions fetched successfully", []domain.Transaction{}, nil)
	}
	txs, err := h.Ledger.ListByOwner(c.UserContext(), middleware.UserID(c), c.QueryInt("limit", 0))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("portfolio: list transactions")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transactions fetched successfully", txs, fiber.Map{"count": len(txs)})
}

// Snapshots GET /api/v1/portfolio/snapshots?limit=
func (h *Handlers) Snapshots(c *fiber.Ctx) error {
	if h.Snapshot == nil {
		return response.Success(c, "Snapshots fetched successfully", []domain.PortfolioSnapshot{}, nil)
	}
	rows, err := h.Snapshot.Latest(c.UserContext(), domain.SnapshotOwner, middleware.UserID(c), c.QueryInt("limit", 0))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("portfolio: list snapshots")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Snapshots fetched successfully", rows, fiber.Map{"count": len(rows)})
}

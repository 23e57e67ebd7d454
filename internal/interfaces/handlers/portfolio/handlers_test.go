package portfolio

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"estate-backend/internal/application/allocation"
	"estate-backend/internal/application/ledger"
	portfoliosvc "estate-backend/internal/application/portfolio"
	"estate-backend/internal/application/snapshots"
	"estate-backend/internal/infrastructure/database"
	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/infrastructure/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app       *fiber.App
	engine    *allocation.Engine
	snapshots *snapshots.Service
}

func setup(t *testing.T, userID string) fixture {
	t.Helper()
	store := memstore.New()
	require.NoError(t, seed.Load(store))
	db, err := database.Open("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	led := &ledger.Service{DB: db}
	psvc := &portfoliosvc.Service{Store: store}
	snaps := &snapshots.Service{DB: db, Portfolio: psvc}
	h := &Handlers{Portfolio: psvc, Ledger: led, Snapshot: snaps}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": userID})
		return c.Next()
	})
	app.Get("/portfolio", h.Get)
	app.Get("/portfolio/transactions", h.Transactions)
	app.Get("/portfolio/snapshots", h.Snapshots)

	return fixture{
		app: app,
		engine: &allocation.Engine{
			Store:          store,
			Markups:        allocation.DefaultMarkups(),
			DefaultOwnerID: seed.DemoOwnerID,
			Ledger:         led,
			Now:            time.Now,
		},
		snapshots: snaps,
	}
}

func get(t *testing.T, app *fiber.App, path string) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestGet_SeededOwner(t *testing.T) {
	f := setup(t, "1")
	out := get(t, f.app, "/portfolio")
	data := out["data"].(map[string]interface{})
	assert.Len(t, data["holdings"], 3)
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, 450000.0, summary["total_invested"])
	assert.Equal(t, 505000.0, summary["current_value"])
	assert.Equal(t, 42100.0, summary["projected_annual_return"])
}

func TestGet_EmptyOwner(t *testing.T) {
	f := setup(t, "nobody")
	out := get(t, f.app, "/portfolio")
	data := out["data"].(map[string]interface{})
	assert.Len(t, data["holdings"], 0)
	assert.Equal(t, 0.0, data["summary"].(map[string]interface{})["total_invested"])
}

func TestTransactions_AfterInvest(t *testing.T) {
	f := setup(t, "u9")
	res := f.engine.Invest(context.Background(), allocation.InvestRequest{
		PropertyID: "2", Amount: decimal.NewFromInt(30000), OwnerID: "u9",
	})
	require.True(t, res.Success, res.Message)

	out := get(t, f.app, "/portfolio/transactions")
	rows := out["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "2", row["property_id"])
	assert.Equal(t, 3.0, row["shares"])
	assert.Equal(t, 1.0, out["metadata"].(map[string]interface{})["count"])
}

func TestSnapshots_AfterTakeAll(t *testing.T) {
	f := setup(t, "1")
	_, err := f.snapshots.TakeAll(context.Background())
	require.NoError(t, err)

	out := get(t, f.app, "/portfolio/snapshots")
	rows := out["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, 450000.0, rows[0].(map[string]interface{})["total_invested"])
}

func TestSnapshots_NoServiceConfigured(t *testing.T) {
	store := memstore.New()
	require.NoError(t, seed.Load(store))
	h := &Handlers{Portfolio: &portfoliosvc.Service{Store: store}}

	app := fiber.New()
	app.Get("/portfolio/snapshots", h.Snapshots)
	out := get(t, app, "/portfolio/snapshots")
	assert.Len(t, out["data"], 0)
}

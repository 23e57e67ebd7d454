package groups

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"estate-backend/internal/application/allocation"
	"estate-backend/internal/application/ledger"
	"estate-backend/internal/application/portfolio"
	"estate-backend/internal/infrastructure/database"
	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/infrastructure/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memstore.New()
	require.NoError(t, seed.Load(store))
	db, err := database.Open("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	led := &ledger.Service{DB: db}

	h := &Handlers{
		Portfolio: &portfolio.Service{Store: store},
		Engine:    &allocation.Engine{Store: store, Markups: allocation.DefaultMarkups(), DefaultOwnerID: "1", Ledger: led},
		Ledger:    led,
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": "4"})
		return c.Next()
	})
	app.Get("/groups", h.List)
	app.Get("/groups/:idOrCode", h.Get)
	app.Post("/groups/:idOrCode/investments", h.Invest)
	app.Get("/groups/:idOrCode/transactions", h.Transactions)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestList(t *testing.T) {
	app := setupApp(t)
	code, out := call(t, app, "GET", "/groups", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Len(t, out["data"], 2)
}

func TestGet_ByIDAndCode(t *testing.T) {
	app := setupApp(t)

	code, out := call(t, app, "GET", "/groups/group-1", nil)
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "FAMILY23", data["code"])
	assert.Equal(t, 3.0, data["member_count"])
	assert.Equal(t, 1800000.0, data["total_invested"])

	code, out = call(t, app, "GET", "/groups/techinv", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "group-2", out["data"].(map[string]interface{})["id"])

	code, out = call(t, app, "GET", "/groups/unknown", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Group not found", out["error"].(map[string]interface{})["message"])
}

func TestInvest_ByCodeThenTransactions(t *testing.T) {
	app := setupApp(t)

	code, out := call(t, app, "POST", "/groups/TECHINV/investments", map[string]interface{}{"property_id": "2", "amount": 50000})
	require.Equal(t, fiber.StatusCreated, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, 5.0, data["shares_acquired"])
	assert.Equal(t, "create", data["upsert"])

	code, out = call(t, app, "GET", "/groups/group-2", nil)
	require.Equal(t, fiber.StatusOK, code)
	g := out["data"].(map[string]interface{})
	assert.Equal(t, 1.0, g["investment_count"])
	assert.Equal(t, 50000.0, g["total_invested"])

	code, out = call(t, app, "GET", "/groups/group-2/transactions", nil)
	require.Equal(t, fiber.StatusOK, code)
	rows := out["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "group-2", row["group_id"])
	assert.Equal(t, "4", row["owner_id"])
}

func TestInvest_Rejections(t *testing.T) {
	app := setupApp(t)

	code, _ := call(t, app, "POST", "/groups/missing/investments", map[string]interface{}{"property_id": "2", "amount": 50000})
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = call(t, app, "POST", "/groups/group-1/investments", map[string]interface{}{"property_id": "2"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, out := call(t, app, "POST", "/groups/group-1/investments", map[string]interface{}{"property_id": "3", "amount": 50000})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "not_configured", out["data"].(map[string]interface{})["code"])
}

package ledger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLedger(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db}
}

func allocationAt(owner, group string, amount, shares int, at time.Time) domain.Allocation {
	return domain.Allocation{
		PropertyID:         "1",
		OwnerID:            owner,
		GroupID:            group,
		Amount:             domain.M(amount, "INR"),
		Shares:             shares,
		NewAvailableShares: 5,
		Upsert:             domain.UpsertCreate,
		At:                 at,
	}
}

func TestRecord_ListByOwnerNewestFirst(t *testing.T) {
	svc := setupLedger(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Record(ctx, allocationAt("u", "", 25000, 2, base)))
	require.NoError(t, svc.Record(ctx, allocationAt("u", "", 10000, 1, base.Add(time.Hour))))
	require.NoError(t, svc.Record(ctx, allocationAt("other", "", 10000, 1, base)))

	txs, err := svc.ListByOwner(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 1, txs[0].Shares)
	assert.Equal(t, 2, txs[1].Shares)
	assert.Equal(t, domain.TxTypeInvest, txs[1].Type)
	assert.Equal(t, "INR", txs[1].Currency)
	assert.Equal(t, "25000", txs[1].Amount.String())
	assert.Nil(t, txs[1].GroupID)

	var d map[string]interface{}
	require.NoError(t, json.Unmarshal(txs[1].Details, &d))
	assert.Equal(t, "₹25,000", d["formatted_amount"])
	assert.Equal(t, 5.0, d["new_available_shares"])

	limited, err := svc.ListByOwner(ctx, "u", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRecord_ListByGroup(t *testing.T) {
	svc := setupLedger(t)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, allocationAt("u", "group-1", 50000, 5, time.Now())))
	require.NoError(t, svc.Record(ctx, allocationAt("u", "", 10000, 1, time.Now())))

	txs, err := svc.ListByGroup(ctx, "group-1", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].GroupID)
	assert.Equal(t, "group-1", *txs[0].GroupID)

	none, err := svc.ListByGroup(ctx, "group-2", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

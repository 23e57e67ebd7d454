package database

import (
	"testing"

	"estate-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost:5432/db"))
	assert.True(t, IsPostgres("postgresql://u:p@localhost/db"))
	assert.False(t, IsPostgres(""))
	assert.False(t, IsPostgres("file:ledger.db"))
}

func TestOpen_MemoryDatabasesAreIsolated(t *testing.T) {
	a, err := Open("")
	require.NoError(t, err)
	b, err := Open("")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(a))
	require.NoError(t, AutoMigrate(b))

	require.NoError(t, a.Create(&domain.Transaction{
		Type: domain.TxTypeInvest, PropertyID: "1", OwnerID: "1",
		Amount: decimal.NewFromInt(10000), Currency: "INR", Shares: 1, Upsert: "create",
	}).Error)

	var n int64
	require.NoError(t, a.Model(&domain.Transaction{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, b.Model(&domain.Transaction{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

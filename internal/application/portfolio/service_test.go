package portfolio

import (
	"context"
	"testing"

	"estate-backend/internal/application/allocation"
	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/infrastructure/seed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inr(v int) domain.Money { return domain.M(v, "INR") }

func setup(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, seed.Load(store))
	return &Service{Store: store, Currency: "INR"}, store
}

func TestPortfolioWithDetails_SeededOwner(t *testing.T) {
	svc, _ := setup(t)

	details := svc.PortfolioWithDetails(seed.DemoOwnerID)
	require.Len(t, details, 3)
	assert.Equal(t, "1", details[0].PropertyID)
	assert.Equal(t, "Sunset Heights Apartment", details[0].Property.Name)
	assert.Equal(t, "3", details[1].PropertyID)
	assert.Equal(t, domain.StatusSoldOut, details[1].Property.Status())
	assert.Equal(t, "4", details[2].PropertyID)
}

func TestSummary_SeededOwner(t *testing.T) {
	svc, _ := setup(t)

	sum := svc.Summary(seed.DemoOwnerID)
	assert.Equal(t, 3, sum.Holdings)
	assert.True(t, sum.TotalInvested.Equal(inr(450000)), sum.TotalInvested.String())
	assert.True(t, sum.CurrentValue.Equal(inr(505000)), sum.CurrentValue.String())
	// 8500 + 15600 + 18000
	assert.True(t, sum.ProjectedAnnualReturn.Equal(inr(42100)), sum.ProjectedAnnualReturn.String())

	assert.True(t, svc.TotalInvested(seed.DemoOwnerID).Equal(sum.TotalInvested))
	assert.True(t, svc.CurrentValue(seed.DemoOwnerID).Equal(sum.CurrentValue))
	assert.True(t, svc.ProjectedAnnualReturn(seed.DemoOwnerID).Equal(sum.ProjectedAnnualReturn))
}

func TestSummary_EmptyOwner(t *testing.T) {
	svc, _ := setup(t)

	details, sum := svc.Overview("stranger")
	assert.Empty(t, details)
	assert.Equal(t, 0, sum.Holdings)
	assert.True(t, sum.TotalInvested.Equal(inr(0)))
	assert.Equal(t, "INR", sum.CurrentValue.Currency())
}

func TestSummary_AfterInvestments(t *testing.T) {
	svc, store := setup(t)
	engine := &allocation.Engine{Store: store, Markups: allocation.DefaultMarkups(), DefaultOwnerID: "1"}

	res := engine.Invest(context.Background(), allocation.InvestRequest{
		PropertyID: "2", Amount: decimal.NewFromInt(50000), OwnerID: "u",
	})
	require.True(t, res.Success)

	sum := svc.Summary("u")
	assert.True(t, sum.TotalInvested.Equal(inr(50000)))
	assert.True(t, sum.CurrentValue.Equal(inr(51000)))
	assert.True(t, sum.ProjectedAnnualReturn.Equal(inr(5100)), sum.ProjectedAnnualReturn.String())
	assert.Equal(t, []string{"1", "u"}, svc.Owners())
}

func TestResolveGroup(t *testing.T) {
	svc, _ := setup(t)

	byID, err := svc.ResolveGroup("group-1")
	require.NoError(t, err)
	byCode, err := svc.ResolveGroup("family23")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byCode.ID)

	assert.Equal(t, "FAMILY23", byID.Code)
	assert.Equal(t, 3, byID.MemberCount)
	assert.Equal(t, 1, byID.InvestmentCount)
	assert.True(t, byID.TotalInvested.Equal(inr(1800000)))
	require.Len(t, byID.Investments, 1)
	assert.Equal(t, "Green Valley Villa", byID.Investments[0].Property.Name)
	assert.True(t, byID.Investments[0].GrowthPercent.Equal(decimal.RequireFromString("9.36")))

	_, err = svc.ResolveGroup("NOPE")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestListGroups(t *testing.T) {
	svc, _ := setup(t)

	groups := svc.ListGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, "TECHINV", groups[1].Code)
	assert.Empty(t, groups[1].Investments)
	assert.True(t, groups[1].TotalInvested.Equal(inr(0)))
}

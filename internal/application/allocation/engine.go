package allocation

import (
	"context"
	"fmt"
	"time"

	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/memstore"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Recorder receives every successful allocation after the store lock is released.
type Recorder interface {
	Record(ctx context.Context, a domain.Allocation) error
}

// Markups applied to a holding's current value. Kept apart because the first
// purchase and later purchases use different constants, and the later one
// replaces the value rather than compounding it.
type Markups struct {
	InitialPercent    decimal.Decimal
	AccumulatePercent decimal.Decimal
}

// DefaultMarkups are 2% on first purchase and 5% on accumulation.
func DefaultMarkups() Markups {
	return Markups{
		InitialPercent:    decimal.NewFromInt(2),
		AccumulatePercent: decimal.NewFromInt(5),
	}
}

// InvestRequest is one invest call. OwnerID falls back to the engine's default owner.
type InvestRequest struct {
	PropertyID string
	Amount     decimal.Decimal
	OwnerID    string
	GroupID    string
}

// Engine converts money into shares and records the position.
type Engine struct {
	Store          *memstore.Store
	Markups        Markups
	DefaultOwnerID string
	Ledger         Recorder         // optional
	Now            func() time.Time // optional, defaults to time.Now
}

// plan is the validated outcome of an invest call, ready to apply.
type plan struct {
	property domain.Property
	amount   domain.Money
	shares   int
	holding  *domain.IndividualHolding
	groupInv *domain.GroupInvestment
	upsert   domain.UpsertKind
}

// Invest validates the request and, when valid, decrements inventory and upserts
// the holding or group investment in one write transaction. It never returns an
// error: every rejection is reported in the result.
func (e *Engine) Invest(ctx context.Context, req InvestRequest) domain.AllocationResult {
	if req.OwnerID == "" {
		req.OwnerID = e.DefaultOwnerID
	}
	now := e.now()

	var result domain.AllocationResult
	var p plan
	err := e.Store.Update(func(tx *memstore.Tx) error {
		var ok bool
		p, result, ok = e.validate(tx, req, domain.DateOf(now))
		if !ok {
			return nil
		}
		result = e.apply(tx, p)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("allocation: store update failed")
		return failure(domain.FailInternal, domain.MsgInternal)
	}

	evt := log.Info()
	if !result.Success {
		evt = log.Warn().Str("code", string(result.Code))
	}
	evt.Str("property_id", req.PropertyID).
		Str("owner_id", req.OwnerID).
		Str("group_id", req.GroupID).
		Str("amount", req.Amount.String()).
		Int("shares", result.SharesAcquired).
		Msg("allocation: " + result.Message)

	if result.Success && e.Ledger != nil {
		err := e.Ledger.Record(ctx, domain.Allocation{
			PropertyID:         req.PropertyID,
			OwnerID:            req.OwnerID,
			GroupID:            req.GroupID,
			Amount:             p.amount,
			Shares:             p.shares,
			NewAvailableShares: result.NewAvailableShares,
			Upsert:             p.upsert,
			At:                 now,
		})
		if err != nil {
			log.Error().Err(err).Str("property_id", req.PropertyID).Str("owner_id", req.OwnerID).
				Msg("allocation: ledger write failed")
		}
	}
	return result
}

func (e *Engine) validate(r memstore.Reader, req InvestRequest, today domain.Date) (plan, domain.AllocationResult, bool) {
	property, err := r.Property(req.PropertyID)
	if err != nil {
		return plan{}, failure(domain.FailNotFound, domain.MsgPropertyNotFound), false
	}
	if property.SharePrice == nil || property.SharePrice.IsZero() || property.AvailableShares == 0 {
		return plan{}, failure(domain.FailNotConfigured, domain.MsgNotConfigured), false
	}
	price := *property.SharePrice
	amount := domain.NewMoney(req.Amount, price.Currency())
	if amount.LessThan(price) {
		return plan{}, failure(domain.FailBelowMinimum, fmt.Sprintf(domain.MsgBelowMinimum, price)), false
	}
	shares := amount.UnitsFloor(price)
	if shares <= 0 {
		return plan{}, failure(domain.FailInvalidAmount, domain.MsgInvalidAmount), false
	}
	if shares > int64(property.AvailableShares) {
		return plan{}, failure(domain.FailInsufficientInventory,
			fmt.Sprintf(domain.MsgInsufficientInventory, property.AvailableShares)), false
	}

	p := plan{property: property, amount: amount, shares: int(shares)}
	if req.GroupID != "" {
		if _, err := r.Group(req.GroupID); err != nil {
			return plan{}, failure(domain.FailGroupNotFound, domain.MsgGroupNotFound), false
		}
		gi, kind := e.groupUpsert(r, req.GroupID, p, today)
		p.groupInv, p.upsert = &gi, kind
	} else {
		h, kind := e.holdingUpsert(r, req.OwnerID, p, today)
		p.holding, p.upsert = &h, kind
	}
	return p, domain.AllocationResult{}, true
}

// holdingUpsert computes the holding after this purchase.
func (e *Engine) holdingUpsert(r memstore.Reader, ownerID string, p plan, today domain.Date) (domain.IndividualHolding, domain.UpsertKind) {
	existing, ok := r.Holding(ownerID, p.property.ID)
	if !ok {
		return domain.IndividualHolding{
			OwnerID:          ownerID,
			PropertyID:       p.property.ID,
			InvestmentAmount: p.amount,
			SharesOwned:      p.shares,
			FractionsOwned:   int(p.amount.UnitsCeil(p.property.PricePerFraction)),
			PurchaseDate:     today,
			CurrentValue:     p.amount.WithMarkup(e.Markups.InitialPercent),
		}, domain.UpsertCreate
	}
	h := existing
	h.InvestmentAmount = h.InvestmentAmount.Add(p.amount)
	h.SharesOwned += p.shares
	h.CurrentValue = h.InvestmentAmount.WithMarkup(e.Markups.AccumulatePercent)
	return h, domain.UpsertAccumulate
}

// groupUpsert computes the group investment after this purchase. The purchase
// date always moves to today.
func (e *Engine) groupUpsert(r memstore.Reader, groupID string, p plan, today domain.Date) (domain.GroupInvestment, domain.UpsertKind) {
	existing, ok := r.GroupInvestment(groupID, p.property.ID)
	if !ok {
		return domain.GroupInvestment{
			GroupID:         groupID,
			PropertyID:      p.property.ID,
			TotalInvestment: p.amount,
			TotalShares:     p.shares,
			PurchaseDate:    today,
		}, domain.UpsertCreate
	}
	gi := existing
	gi.TotalInvestment = gi.TotalInvestment.Add(p.amount)
	gi.TotalShares += p.shares
	gi.PurchaseDate = today
	return gi, domain.UpsertAccumulate
}

func (e *Engine) apply(tx *memstore.Tx, p plan) domain.AllocationResult {
	remaining, err := tx.TakeShares(p.property.ID, p.shares)
	if err != nil {
		// validate checked the bound under the same lock
		panic(fmt.Sprintf("allocation: inventory changed under write lock: %v", err))
	}
	if p.groupInv != nil {
		if err := tx.PutGroupInvestment(*p.groupInv); err != nil {
			panic(fmt.Sprintf("allocation: group vanished under write lock: %v", err))
		}
	} else {
		tx.PutHolding(*p.holding)
	}
	return domain.AllocationResult{
		Success:            true,
		Message:            fmt.Sprintf(domain.MsgInvested, p.amount, p.shares),
		SharesAcquired:     p.shares,
		NewAvailableShares: remaining,
		Upsert:             p.upsert,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func failure(code domain.FailureCode, msg string) domain.AllocationResult {
	return domain.AllocationResult{Success: false, Message: msg, Code: code}
}

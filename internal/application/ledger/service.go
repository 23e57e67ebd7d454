package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"estate-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultLimit = 50

// Service appends allocations to the Transactions table and reads them back.
type Service struct {
	DB *gorm.DB
}

type details struct {
	NewAvailableShares int    `json:"new_available_shares"`
	Formatted          string `json:"formatted_amount"`
}

// Record implements allocation.Recorder.
func (s *Service) Record(ctx context.Context, a domain.Allocation) error {
	raw, err := json.Marshal(details{
		NewAvailableShares: a.NewAvailableShares,
		Formatted:          a.Amount.String(),
	})
	if err != nil {
		return err
	}

	tx := domain.Transaction{
		Type:       domain.TxTypeInvest,
		PropertyID: a.PropertyID,
		OwnerID:    a.OwnerID,
		Amount:     a.Amount.Decimal(),
		Currency:   a.Amount.Currency(),
		Shares:     a.Shares,
		Upsert:     string(a.Upsert),
		Details:    datatypes.JSON(raw),
		CreatedAt:  a.At,
	}
	if a.GroupID != "" {
		groupID := a.GroupID
		tx.GroupID = &groupID
	}
	if err := s.DB.WithContext(ctx).Create(&tx).Error; err != nil {
		return fmt.Errorf("ledger: record %s/%s: %w", a.OwnerID, a.PropertyID, err)
	}
	return nil
}

// ListByOwner returns every purchase the owner made, group ones included, newest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Transaction, error) {
	return s.list(ctx, s.DB.Where("owner_id = ?", ownerID), limit)
}

// ListByGroup returns purchases made on behalf of the group, newest first.
func (s *Service) ListByGroup(ctx context.Context, groupID string, limit int) ([]domain.Transaction, error) {
	return s.list(ctx, s.DB.Where("group_id = ?", groupID), limit)
}

func (s *Service) list(ctx context.Context, q *gorm.DB, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	txs := []domain.Transaction{}
	if err := q.WithContext(ctx).
		Order(`"createdAt" DESC`).
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

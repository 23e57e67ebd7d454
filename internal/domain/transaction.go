package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const TxTypeInvest = "invest"

// Transaction is an append-only ledger row written after each successful allocation.
type Transaction struct {
	TxID       uuid.UUID       `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	Type       string          `gorm:"column:type;type:varchar(20);not null" json:"type"`
	PropertyID string          `gorm:"column:property_id;not null;index" json:"property_id"`
	OwnerID    string          `gorm:"column:owner_id;not null;index" json:"owner_id"`
	GroupID    *string         `gorm:"column:group_id;index" json:"group_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Currency   string          `gorm:"column:currency;type:varchar(3);not null" json:"currency"`
	Shares     int             `gorm:"column:shares;not null" json:"shares"`
	Upsert     string          `gorm:"column:upsert;type:varchar(20);not null" json:"upsert"`
	Details    datatypes.JSON  `gorm:"column:details" json:"details"`
	CreatedAt  time.Time       `gorm:"column:createdAt" json:"createdAt"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}

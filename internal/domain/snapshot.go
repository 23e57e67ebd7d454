package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SnapshotOwner = "owner"
	SnapshotGroup = "group"
)

// PortfolioSnapshot is a point-in-time valuation of an owner's or a group's portfolio.
type PortfolioSnapshot struct {
	SnapshotID            uuid.UUID       `gorm:"column:snapshot_id;type:uuid;primaryKey" json:"snapshot_id"`
	SubjectKind           string          `gorm:"column:subject_kind;type:varchar(10);not null;index:idx_snapshot_subject" json:"subject_kind"`
	SubjectID             string          `gorm:"column:subject_id;not null;index:idx_snapshot_subject" json:"subject_id"`
	Holdings              int             `gorm:"column:holdings;not null" json:"holdings"`
	TotalInvested         decimal.Decimal `gorm:"column:total_invested;type:decimal(18,2);not null" json:"total_invested"`
	CurrentValue          decimal.Decimal `gorm:"column:current_value;type:decimal(18,2);not null" json:"current_value"`
	ProjectedAnnualReturn decimal.Decimal `gorm:"column:projected_annual_return;type:decimal(18,2);not null" json:"projected_annual_return"`
	TakenAt               time.Time       `gorm:"column:taken_at;not null" json:"taken_at"`
}

func (PortfolioSnapshot) TableName() string {
	return "PortfolioSnapshots"
}

func (s *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.SnapshotID == uuid.Nil {
		s.SnapshotID = uuid.New()
	}
	return nil
}

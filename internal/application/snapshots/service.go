package snapshots

import (
	"context"
	"errors"
	"time"

	"estate-backend/internal/application/portfolio"
	"estate-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultLimit = 30

var ErrInvalidSubject = errors.New("subject kind must be owner or group")

// Service stores point-in-time valuations of owner and group portfolios.
type Service struct {
	DB        *gorm.DB
	Portfolio *portfolio.Service
	Now       func() time.Time // optional
}

// TakeAll writes one snapshot per owner with holdings and one per group with
// investments, and returns how many rows were written.
func (s *Service) TakeAll(ctx context.Context) (int, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	rows := []domain.PortfolioSnapshot{}
	for _, owner := range s.Portfolio.Owners() {
		sum := s.Portfolio.Summary(owner)
		rows = append(rows, domain.PortfolioSnapshot{
			SubjectKind:           domain.SnapshotOwner,
			SubjectID:             owner,
			Holdings:              sum.Holdings,
			TotalInvested:         sum.TotalInvested.Decimal(),
			CurrentValue:          sum.CurrentValue.Decimal(),
			ProjectedAnnualReturn: sum.ProjectedAnnualReturn.Decimal(),
			TakenAt:               now,
		})
	}
	for _, g := range s.Portfolio.ListGroups() {
		if g.InvestmentCount == 0 {
			continue
		}
		// groups carry no markup, so value equals the amount invested
		rows = append(rows, domain.PortfolioSnapshot{
			SubjectKind:           domain.SnapshotGroup,
			SubjectID:             g.ID,
			Holdings:              g.InvestmentCount,
			TotalInvested:         g.TotalInvested.Decimal(),
			CurrentValue:          g.TotalInvested.Decimal(),
			ProjectedAnnualReturn: g.ProjectedAnnualReturn.Decimal(),
			TakenAt:               now,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Latest returns up to limit snapshots for one subject, newest first.
func (s *Service) Latest(ctx context.Context, kind, subjectID string, limit int) ([]domain.PortfolioSnapshot, error) {
	if kind != domain.SnapshotOwner && kind != domain.SnapshotGroup {
		return nil, ErrInvalidSubject
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	out := []domain.PortfolioSnapshot{}
	err := s.DB.WithContext(ctx).
		Where("subject_kind = ? AND subject_id = ?", kind, subjectID).
		Order("taken_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// Job adapts the service to the scheduler.
type Job struct {
	Service *Service
	Timeout time.Duration
}

func (j *Job) Name() string { return "portfolio-snapshots" }

func (j *Job) Run() error {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := j.Service.TakeAll(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("rows", n).Msg("portfolio snapshots written")
	return nil
}

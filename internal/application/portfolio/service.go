package portfolio

import (
	"errors"
	"fmt"

	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/memstore"

	"github.com/shopspring/decimal"
)

// ErrGroupNotFound is returned when neither the id nor the code matches a group.
var ErrGroupNotFound = memstore.ErrGroupNotFound

// groupGrowthFactor scales a property's annual yield into the growth shown on group investments.
var groupGrowthFactor = decimal.NewFromFloat(1.2)

// Service answers read-only portfolio questions over the shared store.
type Service struct {
	Store    *memstore.Store
	Currency string // used for totals of empty portfolios
}

// HoldingDetail is a holding joined with its property.
type HoldingDetail struct {
	domain.IndividualHolding
	Property domain.Property `json:"property"`
}

// Summary bundles an owner's totals.
type Summary struct {
	Holdings              int          `json:"holdings"`
	TotalInvested         domain.Money `json:"total_invested"`
	CurrentValue          domain.Money `json:"current_value"`
	ProjectedAnnualReturn domain.Money `json:"projected_annual_return"`
}

// GroupInvestmentDetail is a group investment joined with its property.
type GroupInvestmentDetail struct {
	domain.GroupInvestment
	Property      domain.Property `json:"property"`
	GrowthPercent decimal.Decimal `json:"growth_percent"`
}

// GroupDetail is a resolved group with joined investments and totals.
type GroupDetail struct {
	ID                    string                  `json:"id"`
	Code                  string                  `json:"code"`
	Name                  string                  `json:"name"`
	Members               []domain.Member         `json:"members"`
	Investments           []GroupInvestmentDetail `json:"investments"`
	MemberCount           int                     `json:"member_count"`
	InvestmentCount       int                     `json:"investment_count"`
	TotalInvested         domain.Money            `json:"total_invested"`
	ProjectedAnnualReturn domain.Money            `json:"projected_annual_return"`
}

// orZero gives totals over nothing the configured currency.
func (s *Service) orZero(m domain.Money) domain.Money {
	if m.Currency() != "" {
		return m
	}
	c := s.Currency
	if c == "" {
		c = domain.DefaultCurrency
	}
	return domain.M(0, c)
}

// PortfolioWithDetails joins the owner's holdings with their properties, in
// first-purchase order.
func (s *Service) PortfolioWithDetails(ownerID string) []HoldingDetail {
	var out []HoldingDetail
	_ = s.Store.View(func(r memstore.Reader) error {
		out = joinHoldings(r, ownerID)
		return nil
	})
	return out
}

func joinHoldings(r memstore.Reader, ownerID string) []HoldingDetail {
	holdings := r.Holdings(ownerID)
	out := make([]HoldingDetail, 0, len(holdings))
	for _, h := range holdings {
		p, err := r.Property(h.PropertyID)
		if err != nil {
			// holdings are only created against catalog properties, which are never removed
			panic(fmt.Sprintf("portfolio: holding %s/%s references missing property", ownerID, h.PropertyID))
		}
		out = append(out, HoldingDetail{IndividualHolding: h, Property: p})
	}
	return out
}

// TotalInvested sums investment amounts over the owner's holdings.
func (s *Service) TotalInvested(ownerID string) domain.Money {
	return s.Summary(ownerID).TotalInvested
}

// CurrentValue sums current values over the owner's holdings.
func (s *Service) CurrentValue(ownerID string) domain.Money {
	return s.Summary(ownerID).CurrentValue
}

// ProjectedAnnualReturn is the sum of amount * yield / 100 over the owner's holdings.
func (s *Service) ProjectedAnnualReturn(ownerID string) domain.Money {
	return s.Summary(ownerID).ProjectedAnnualReturn
}

// Summary computes all owner totals from one consistent read.
func (s *Service) Summary(ownerID string) Summary {
	var details []HoldingDetail
	_ = s.Store.View(func(r memstore.Reader) error {
		details = joinHoldings(r, ownerID)
		return nil
	})
	return s.summarize(details)
}

func (s *Service) summarize(details []HoldingDetail) Summary {
	sum := Summary{Holdings: len(details)}
	for _, d := range details {
		sum.TotalInvested = sum.TotalInvested.Add(d.InvestmentAmount)
		sum.CurrentValue = sum.CurrentValue.Add(d.CurrentValue)
		sum.ProjectedAnnualReturn = sum.ProjectedAnnualReturn.Add(d.InvestmentAmount.Percent(d.Property.AnnualYield))
	}
	sum.TotalInvested = s.orZero(sum.TotalInvested)
	sum.CurrentValue = s.orZero(sum.CurrentValue)
	sum.ProjectedAnnualReturn = s.orZero(sum.ProjectedAnnualReturn)
	return sum
}

// Overview returns the joined portfolio and its summary from one read.
func (s *Service) Overview(ownerID string) ([]HoldingDetail, Summary) {
	var details []HoldingDetail
	_ = s.Store.View(func(r memstore.Reader) error {
		details = joinHoldings(r, ownerID)
		return nil
	})
	return details, s.summarize(details)
}

// Owners lists every owner holding at least one property.
func (s *Service) Owners() []string {
	var out []string
	_ = s.Store.View(func(r memstore.Reader) error {
		out = r.Owners()
		return nil
	})
	return out
}

// ResolveGroup looks a group up by id first, then by code.
func (s *Service) ResolveGroup(idOrCode string) (GroupDetail, error) {
	var out GroupDetail
	err := s.Store.View(func(r memstore.Reader) error {
		g, err := r.Group(idOrCode)
		if errors.Is(err, memstore.ErrGroupNotFound) {
			g, err = r.GroupByCode(idOrCode)
		}
		if err != nil {
			return err
		}
		out = s.detail(r, g)
		return nil
	})
	return out, err
}

// ListGroups returns every group with joined investments, in seed order.
func (s *Service) ListGroups() []GroupDetail {
	var out []GroupDetail
	_ = s.Store.View(func(r memstore.Reader) error {
		groups := r.Groups()
		out = make([]GroupDetail, 0, len(groups))
		for _, g := range groups {
			out = append(out, s.detail(r, g))
		}
		return nil
	})
	return out
}

func (s *Service) detail(r memstore.Reader, g domain.Group) GroupDetail {
	d := GroupDetail{
		ID:              g.ID,
		Code:            g.Code,
		Name:            g.Name,
		Members:         g.Members,
		Investments:     make([]GroupInvestmentDetail, 0, len(g.Investments)),
		MemberCount:     len(g.Members),
		InvestmentCount: len(g.Investments),
	}
	if d.Members == nil {
		d.Members = []domain.Member{}
	}
	for _, gi := range g.Investments {
		p, err := r.Property(gi.PropertyID)
		if err != nil {
			panic(fmt.Sprintf("portfolio: group investment %s/%s references missing property", g.ID, gi.PropertyID))
		}
		d.Investments = append(d.Investments, GroupInvestmentDetail{
			GroupInvestment: gi,
			Property:        p,
			GrowthPercent:   p.AnnualYield.Mul(groupGrowthFactor),
		})
		d.TotalInvested = d.TotalInvested.Add(gi.TotalInvestment)
		d.ProjectedAnnualReturn = d.ProjectedAnnualReturn.Add(gi.TotalInvestment.Percent(p.AnnualYield))
	}
	d.TotalInvested = s.orZero(d.TotalInvested)
	d.ProjectedAnnualReturn = s.orZero(d.ProjectedAnnualReturn)
	return d
}

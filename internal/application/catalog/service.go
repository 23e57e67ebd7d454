package catalog

import (
	"errors"

	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/memstore"

	"github.com/shopspring/decimal"
)

var (
	ErrPropertyNotFound  = memstore.ErrPropertyNotFound
	ErrInvalidYieldRange = errors.New("min_yield must not exceed max_yield")
)

// Service exposes catalog reads.
type Service struct {
	Store *memstore.Store
}

// Filter narrows the catalog. A zero-value Filter matches everything.
type Filter struct {
	Location string
	MinYield decimal.Decimal
	MaxYield decimal.Decimal
}

// DefaultFilter matches every yield the browse page allows.
func DefaultFilter() Filter {
	return Filter{MinYield: decimal.Zero, MaxYield: decimal.NewFromInt(100)}
}

// FindByID returns one property.
func (s *Service) FindByID(id string) (domain.Property, error) {
	var p domain.Property
	err := s.Store.View(func(r memstore.Reader) error {
		var err error
		p, err = r.Property(id)
		return err
	})
	return p, err
}

// List returns the full catalog.
func (s *Service) List() []domain.Property {
	var out []domain.Property
	_ = s.Store.View(func(r memstore.Reader) error {
		out = r.Properties()
		return nil
	})
	return out
}

// Filter returns properties matching f in catalog order.
func (s *Service) Filter(f Filter) ([]domain.Property, error) {
	if f.MinYield.GreaterThan(f.MaxYield) {
		return nil, ErrInvalidYieldRange
	}
	var out []domain.Property
	_ = s.Store.View(func(r memstore.Reader) error {
		out = r.Filter(f.Location, f.MinYield, f.MaxYield)
		return nil
	})
	return out, nil
}

// Locations lists the distinct property locations.
func (s *Service) Locations() []string {
	var out []string
	_ = s.Store.View(func(r memstore.Reader) error {
		out = r.Locations()
		return nil
	})
	return out
}

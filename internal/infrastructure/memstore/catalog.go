package memstore

import (
	"fmt"

	"estate-backend/internal/domain"

	"github.com/shopspring/decimal"
)

func (s *state) Property(id string) (domain.Property, error) {
	p, ok := s.properties[id]
	if !ok {
		return domain.Property{}, ErrPropertyNotFound
	}
	return p.Clone(), nil
}

// Properties returns the catalog in load order.
func (s *state) Properties() []domain.Property {
	out := make([]domain.Property, 0, len(s.propertyOrder))
	for _, id := range s.propertyOrder {
		out = append(out, s.properties[id].Clone())
	}
	return out
}

// Filter returns properties in location (any when empty) whose annual yield lies
// in [minYield, maxYield].
func (s *state) Filter(location string, minYield, maxYield decimal.Decimal) []domain.Property {
	out := []domain.Property{}
	for _, id := range s.propertyOrder {
		p := s.properties[id]
		if location != "" && p.Location != location {
			continue
		}
		if p.AnnualYield.LessThan(minYield) || p.AnnualYield.GreaterThan(maxYield) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Locations lists distinct locations in catalog order.
func (s *state) Locations() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, id := range s.propertyOrder {
		loc := s.properties[id].Location
		if !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	return out
}

// AddProperty loads a property into the catalog.
func (tx *Tx) AddProperty(p domain.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := tx.properties[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrPropertyExists, p.ID)
	}
	c := p.Clone()
	tx.properties[p.ID] = &c
	tx.propertyOrder = append(tx.propertyOrder, p.ID)
	return nil
}

// TakeShares decrements the available share counter and returns what is left.
func (tx *Tx) TakeShares(propertyID string, n int) (int, error) {
	p, ok := tx.properties[propertyID]
	if !ok {
		return 0, ErrPropertyNotFound
	}
	if n <= 0 {
		return p.AvailableShares, ErrInvalidQuantity
	}
	if n > p.AvailableShares {
		return p.AvailableShares, ErrInsufficientInventory
	}
	p.AvailableShares -= n
	return p.AvailableShares, nil
}

package memstore

import (
	"fmt"
	"strings"

	"estate-backend/internal/domain"
)

func (s *state) Holding(ownerID, propertyID string) (domain.IndividualHolding, bool) {
	h, ok := s.holdings[holdingKey{ownerID, propertyID}]
	if !ok {
		return domain.IndividualHolding{}, false
	}
	return *h, true
}

// Holdings returns an owner's holdings in first-purchase order.
func (s *state) Holdings(ownerID string) []domain.IndividualHolding {
	ids := s.byOwner[ownerID]
	out := make([]domain.IndividualHolding, 0, len(ids))
	for _, pid := range ids {
		out = append(out, *s.holdings[holdingKey{ownerID, pid}])
	}
	return out
}

// Owners lists every owner with at least one holding.
func (s *state) Owners() []string {
	return append([]string(nil), s.ownerOrder...)
}

// PutHolding inserts or replaces the holding keyed by (owner, property).
func (tx *Tx) PutHolding(h domain.IndividualHolding) {
	key := holdingKey{h.OwnerID, h.PropertyID}
	if _, ok := tx.holdings[key]; !ok {
		if _, known := tx.byOwner[h.OwnerID]; !known {
			tx.ownerOrder = append(tx.ownerOrder, h.OwnerID)
		}
		tx.byOwner[h.OwnerID] = append(tx.byOwner[h.OwnerID], h.PropertyID)
	}
	tx.holdings[key] = &h
}

func (s *state) Group(id string) (domain.Group, error) {
	g, ok := s.groups[id]
	if !ok {
		return domain.Group{}, ErrGroupNotFound
	}
	return s.assemble(g), nil
}

// GroupByCode matches codes case-insensitively.
func (s *state) GroupByCode(code string) (domain.Group, error) {
	id, ok := s.groupCodes[strings.ToUpper(code)]
	if !ok {
		return domain.Group{}, ErrGroupNotFound
	}
	return s.Group(id)
}

func (s *state) Groups() []domain.Group {
	out := make([]domain.Group, 0, len(s.groupOrder))
	for _, id := range s.groupOrder {
		out = append(out, s.assemble(s.groups[id]))
	}
	return out
}

func (s *state) GroupInvestment(groupID, propertyID string) (domain.GroupInvestment, bool) {
	gi, ok := s.groupInvestments[groupInvestmentKey{groupID, propertyID}]
	if !ok {
		return domain.GroupInvestment{}, false
	}
	return *gi, true
}

func (s *state) assemble(g *domain.Group) domain.Group {
	c := g.Clone()
	c.Investments = make([]domain.GroupInvestment, 0, len(s.byGroup[g.ID]))
	for _, pid := range s.byGroup[g.ID] {
		c.Investments = append(c.Investments, *s.groupInvestments[groupInvestmentKey{g.ID, pid}])
	}
	return c
}

// AddGroup registers a group. Investments on g are loaded as well.
func (tx *Tx) AddGroup(g domain.Group) error {
	if g.ID == "" || g.Code == "" {
		return fmt.Errorf("group: id and code are required")
	}
	code := strings.ToUpper(g.Code)
	if _, ok := tx.groups[g.ID]; ok {
		return fmt.Errorf("%w: %s", ErrGroupExists, g.ID)
	}
	if _, ok := tx.groupCodes[code]; ok {
		return fmt.Errorf("%w: code %s", ErrGroupExists, code)
	}
	c := g.Clone()
	c.Code = code
	investments := c.Investments
	c.Investments = nil
	tx.groups[g.ID] = &c
	tx.groupOrder = append(tx.groupOrder, g.ID)
	tx.groupCodes[code] = g.ID
	for _, gi := range investments {
		gi.GroupID = g.ID
		if err := tx.PutGroupInvestment(gi); err != nil {
			return err
		}
	}
	return nil
}

// PutGroupInvestment inserts or replaces the investment keyed by (group, property).
func (tx *Tx) PutGroupInvestment(gi domain.GroupInvestment) error {
	if _, ok := tx.groups[gi.GroupID]; !ok {
		return ErrGroupNotFound
	}
	key := groupInvestmentKey{gi.GroupID, gi.PropertyID}
	if _, ok := tx.groupInvestments[key]; !ok {
		tx.byGroup[gi.GroupID] = append(tx.byGroup[gi.GroupID], gi.PropertyID)
	}
	tx.groupInvestments[key] = &gi
	return nil
}

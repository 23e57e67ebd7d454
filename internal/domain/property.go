package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type PropertyType string

const (
	Residential PropertyType = "Residential"
	Commercial  PropertyType = "Commercial"
	MixedUse    PropertyType = "Mixed Use"
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "Available"
	StatusSoldOut   PropertyStatus = "Sold Out"
)

// Property is a catalog listing. Only the inventory counters ever change after
// the catalog is loaded, and only through the allocation engine.
type Property struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Location          string          `json:"location"`
	Description       string          `json:"description"`
	Image             string          `json:"image"`
	PropertyType      PropertyType    `json:"property_type"`
	Area              int             `json:"area"`
	Amenities         []string        `json:"amenities"`
	RentalIncome      Money           `json:"rental_income"`
	MinimumInvestment Money           `json:"minimum_investment"`
	AnnualYield       decimal.Decimal `json:"annual_yield"`

	// Share economics. A nil SharePrice means the property is not share-investable.
	SharePrice      *Money `json:"share_price,omitempty"`
	TotalShares     int    `json:"total_shares"`
	AvailableShares int    `json:"available_shares"`

	// Legacy fraction inventory.
	PricePerFraction   Money `json:"price_per_fraction"`
	TotalFractions     int   `json:"total_fractions"`
	AvailableFractions int   `json:"available_fractions"`
}

// HasShareEconomics reports whether availability is tracked in shares rather than fractions.
func (p Property) HasShareEconomics() bool {
	return p.SharePrice != nil && p.TotalShares > 0
}

// Status is derived from the inventory counters on every read.
func (p Property) Status() PropertyStatus {
	remaining := p.AvailableFractions
	if p.HasShareEconomics() {
		remaining = p.AvailableShares
	}
	if remaining == 0 {
		return StatusSoldOut
	}
	return StatusAvailable
}

// Validate checks the inventory bounds.
func (p Property) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("property: empty id")
	}
	if p.AvailableShares < 0 || p.AvailableShares > p.TotalShares {
		return fmt.Errorf("property %s: available shares %d outside [0, %d]", p.ID, p.AvailableShares, p.TotalShares)
	}
	if p.AvailableFractions < 0 || p.AvailableFractions > p.TotalFractions {
		return fmt.Errorf("property %s: available fractions %d outside [0, %d]", p.ID, p.AvailableFractions, p.TotalFractions)
	}
	if p.AnnualYield.IsNegative() {
		return fmt.Errorf("property %s: negative annual yield", p.ID)
	}
	return nil
}

// Clone returns a copy that shares no mutable state with p.
func (p Property) Clone() Property {
	c := p
	if p.Amenities != nil {
		c.Amenities = append([]string(nil), p.Amenities...)
	}
	if p.SharePrice != nil {
		price := *p.SharePrice
		c.SharePrice = &price
	}
	return c
}

// MarshalJSON adds the derived status.
func (p Property) MarshalJSON() ([]byte, error) {
	type plain Property
	return json.Marshal(struct {
		plain
		Status PropertyStatus `json:"status"`
	}{plain(p), p.Status()})
}

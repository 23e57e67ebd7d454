// Package memstore holds the catalog and portfolio state in process memory.
//
// All access goes through Store.View or Store.Update. Update holds the write lock
// for the whole callback, so a validate-then-mutate sequence inside one callback is
// never interleaved with another writer. Values handed out by the store are copies.
package memstore

import (
	"sync"

	"estate-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type holdingKey struct {
	ownerID    string
	propertyID string
}

type groupInvestmentKey struct {
	groupID    string
	propertyID string
}

type state struct {
	properties    map[string]*domain.Property
	propertyOrder []string

	holdings   map[holdingKey]*domain.IndividualHolding
	ownerOrder []string
	byOwner    map[string][]string // owner -> property ids in first-purchase order

	groups           map[string]*domain.Group // investments kept in groupInvestments
	groupOrder       []string
	groupCodes       map[string]string
	groupInvestments map[groupInvestmentKey]*domain.GroupInvestment
	byGroup          map[string][]string
}

// Store owns one catalog and one portfolio.
type Store struct {
	mu sync.RWMutex
	st state
}

// New returns an empty store.
func New() *Store {
	return &Store{st: state{
		properties:       make(map[string]*domain.Property),
		holdings:         make(map[holdingKey]*domain.IndividualHolding),
		byOwner:          make(map[string][]string),
		groups:           make(map[string]*domain.Group),
		groupCodes:       make(map[string]string),
		groupInvestments: make(map[groupInvestmentKey]*domain.GroupInvestment),
		byGroup:          make(map[string][]string),
	}}
}

// Reader is the read-only view of the store.
type Reader interface {
	Property(id string) (domain.Property, error)
	Properties() []domain.Property
	Filter(location string, minYield, maxYield decimal.Decimal) []domain.Property
	Locations() []string

	Holding(ownerID, propertyID string) (domain.IndividualHolding, bool)
	Holdings(ownerID string) []domain.IndividualHolding
	Owners() []string

	Group(id string) (domain.Group, error)
	GroupByCode(code string) (domain.Group, error)
	Groups() []domain.Group
	GroupInvestment(groupID, propertyID string) (domain.GroupInvestment, bool)
}

// Tx is the writable view handed to Update callbacks.
type Tx struct {
	*state
}

// View runs fn under the read lock.
func (s *Store) View(fn func(r Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.st)
}

// Update runs fn under the write lock. There is no rollback: fn must finish all
// validation before its first mutation.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{&s.st})
}

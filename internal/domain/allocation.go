package domain

import "time"

// FailureCode classifies a rejected allocation.
type FailureCode string

const (
	FailNotFound              FailureCode = "not_found"
	FailNotConfigured         FailureCode = "not_configured"
	FailBelowMinimum          FailureCode = "below_minimum"
	FailInvalidAmount         FailureCode = "invalid_amount"
	FailInsufficientInventory FailureCode = "insufficient_inventory"
	FailGroupNotFound         FailureCode = "group_not_found"
	FailInternal              FailureCode = "internal"
)

// Messages surfaced to clients. Templated ones take the formatted argument.
const (
	MsgPropertyNotFound      = "Property not found"
	MsgNotConfigured         = "Property not configured for share investment"
	MsgBelowMinimum          = "Minimum investment must be at least %s"
	MsgInvalidAmount         = "Invalid investment amount"
	MsgInsufficientInventory = "Only %d shares available"
	MsgGroupNotFound         = "Group not found"
	MsgInvested              = "Successfully invested %s and acquired %d shares"
	MsgInternal              = "Investment could not be processed"
)

// AllocationResult is returned by every invest call; the engine never fails with an error.
type AllocationResult struct {
	Success            bool        `json:"success"`
	Message            string      `json:"message"`
	Code               FailureCode `json:"code,omitempty"`
	SharesAcquired     int         `json:"shares_acquired"`
	NewAvailableShares int         `json:"new_available_shares"`
	Upsert             UpsertKind  `json:"upsert,omitempty"`
}

// Allocation describes a successful invest call for the ledger.
type Allocation struct {
	PropertyID         string
	OwnerID            string
	GroupID            string
	Amount             Money
	Shares             int
	NewAvailableShares int
	Upsert             UpsertKind
	At                 time.Time
}

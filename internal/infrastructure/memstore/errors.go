package memstore

import "errors"

var (
	ErrPropertyNotFound      = errors.New("Property not found")
	ErrPropertyExists        = errors.New("Property already exists")
	ErrGroupNotFound         = errors.New("Group not found")
	ErrGroupExists           = errors.New("Group already exists")
	ErrInsufficientInventory = errors.New("Insufficient shares available")
	ErrInvalidQuantity       = errors.New("Quantity must be positive")
)

package domain

// UpsertKind tags how an allocation touched a portfolio entry.
type UpsertKind string

const (
	UpsertCreate     UpsertKind = "create"
	UpsertAccumulate UpsertKind = "accumulate"
)

// IndividualHolding is one owner's cumulative position in one property.
type IndividualHolding struct {
	OwnerID          string `json:"owner_id"`
	PropertyID       string `json:"property_id"`
	InvestmentAmount Money  `json:"investment_amount"`
	SharesOwned      int    `json:"shares_owned"`
	FractionsOwned   int    `json:"fractions_owned"`
	PurchaseDate     Date   `json:"purchase_date"`
	CurrentValue     Money  `json:"current_value"`
}

package domain

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// CityRisk is reference data shown next to listings.
type CityRisk struct {
	City         string    `json:"city"`
	Risk         RiskLevel `json:"risk"`
	Appreciation string    `json:"appreciation"`
	Tier         int       `json:"tier"`
}

package catalog

import (
	"strings"

	"estate-backend/internal/domain"
)

var cityRisks = []domain.CityRisk{
	{City: "Mumbai", Risk: domain.RiskLow, Appreciation: "12%", Tier: 1},
	{City: "Delhi", Risk: domain.RiskLow, Appreciation: "10%", Tier: 1},
	{City: "Bangalore", Risk: domain.RiskLow, Appreciation: "14%", Tier: 1},
	{City: "Pune", Risk: domain.RiskMedium, Appreciation: "8%", Tier: 2},
	{City: "Kolkata", Risk: domain.RiskMedium, Appreciation: "7%", Tier: 1},
	{City: "Chennai", Risk: domain.RiskLow, Appreciation: "9%", Tier: 1},
	{City: "Hyderabad", Risk: domain.RiskLow, Appreciation: "11%", Tier: 1},
	{City: "Ahmedabad", Risk: domain.RiskMedium, Appreciation: "7%", Tier: 2},
	{City: "Jaipur", Risk: domain.RiskHigh, Appreciation: "5%", Tier: 2},
	{City: "Lucknow", Risk: domain.RiskHigh, Appreciation: "4%", Tier: 2},
	{City: "Gurgaon", Risk: domain.RiskLow, Appreciation: "11%", Tier: 1},
}

// CityRisk looks a city up case-insensitively. Unknown cities are Medium risk
// with no appreciation figure.
func CityRisk(city string) domain.CityRisk {
	for _, c := range cityRisks {
		if strings.EqualFold(c.City, city) {
			return c
		}
	}
	return domain.CityRisk{City: city, Risk: domain.RiskMedium}
}

// CityRisks returns the whole table.
func CityRisks() []domain.CityRisk {
	return append([]domain.CityRisk(nil), cityRisks...)
}

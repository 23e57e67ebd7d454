// Package seed loads the demo catalog, the demo owner's portfolio and the
// pre-seeded investment groups.
package seed

import (
	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/memstore"

	"github.com/shopspring/decimal"
)

// DemoOwnerID is the identity the mock login hands out.
const DemoOwnerID = "1"

type amounts string

func (c amounts) of(v int) domain.Money { return domain.M(v, string(c)) }

func (c amounts) ptr(v int) *domain.Money {
	m := c.of(v)
	return &m
}

// Properties is the demo catalog. Share counters are consistent with Holdings and Groups.
func Properties(currency string) []domain.Property {
	c := amounts(currency)
	return []domain.Property{
		{
			ID:                 "1",
			Name:               "Sunset Heights Apartment",
			Location:           "Mumbai",
			Description:        "Luxurious apartment complex in the heart of Mumbai with stunning sea views.",
			Image:              "/placeholder.svg",
			PropertyType:       domain.Residential,
			Area:               1200,
			Amenities:          []string{"Swimming Pool", "Gym", "Security", "24/7 Power Backup"},
			RentalIncome:       c.of(25000),
			MinimumInvestment:  c.of(50000),
			AnnualYield:        decimal.RequireFromString("8.5"),
			SharePrice:         c.ptr(10000),
			TotalShares:        250,
			AvailableShares:    240,
			PricePerFraction:   c.of(25000),
			TotalFractions:     100,
			AvailableFractions: 45,
		},
		{
			ID:                 "2",
			Name:               "Tech Park Office Space",
			Location:           "Bangalore",
			Description:        "Premium office space in Bangalore's tech corridor with modern infrastructure.",
			Image:              "/placeholder.svg",
			PropertyType:       domain.Commercial,
			Area:               3500,
			Amenities:          []string{"Conference Rooms", "High-speed Internet", "Cafeteria", "Parking"},
			RentalIncome:       c.of(45000),
			MinimumInvestment:  c.of(70000),
			AnnualYield:        decimal.RequireFromString("10.2"),
			SharePrice:         c.ptr(10000),
			TotalShares:        700,
			AvailableShares:    700,
			PricePerFraction:   c.of(35000),
			TotalFractions:     200,
			AvailableFractions: 120,
		},
		{
			ID:                 "3",
			Name:               "Green Valley Villa",
			Location:           "Pune",
			Description:        "Spacious villa in a gated community surrounded by lush greenery.",
			Image:              "/placeholder.svg",
			PropertyType:       domain.Residential,
			Area:               2800,
			Amenities:          []string{"Garden", "Club House", "Children's Play Area", "Jogging Track"},
			RentalIncome:       c.of(35000),
			MinimumInvestment:  c.of(80000),
			AnnualYield:        decimal.RequireFromString("7.8"),
			SharePrice:         c.ptr(20000),
			TotalShares:        100,
			AvailableShares:    0,
			PricePerFraction:   c.of(40000),
			TotalFractions:     50,
			AvailableFractions: 0,
		},
		{
			ID:                 "4",
			Name:               "City Center Mall Space",
			Location:           "Delhi",
			Description:        "Retail space in a busy shopping center with high footfall.",
			Image:              "/placeholder.svg",
			PropertyType:       domain.Commercial,
			Area:               5000,
			Amenities:          []string{"Air Conditioning", "Escalators", "Food Court Proximity", "Security"},
			RentalIncome:       c.of(85000),
			MinimumInvestment:  c.of(100000),
			AnnualYield:        decimal.RequireFromString("12.0"),
			SharePrice:         c.ptr(15000),
			TotalShares:        300,
			AvailableShares:    290,
			PricePerFraction:   c.of(50000),
			TotalFractions:     150,
			AvailableFractions: 30,
		},
		{
			ID:                 "5",
			Name:               "Riverside Residency",
			Location:           "Kolkata",
			Description:        "Elegant apartment complex with a scenic view of the river.",
			Image:              "/placeholder.svg",
			PropertyType:       domain.Residential,
			Area:               1500,
			Amenities:          []string{"Riverside View", "Parking", "Community Hall", "Gym"},
			RentalIncome:       c.of(18000),
			MinimumInvestment:  c.of(40000),
			AnnualYield:        decimal.RequireFromString("9.5"),
			PricePerFraction:   c.of(20000),
			TotalFractions:     120,
			AvailableFractions: 80,
		},
	}
}

// Holdings is the demo owner's starting portfolio.
func Holdings(currency string) []domain.IndividualHolding {
	c := amounts(currency)
	return []domain.IndividualHolding{
		{
			OwnerID:          DemoOwnerID,
			PropertyID:       "1",
			InvestmentAmount: c.of(100000),
			SharesOwned:      10,
			FractionsOwned:   4,
			PurchaseDate:     domain.MustParseDate("2023-06-15"),
			CurrentValue:     c.of(110000),
		},
		{
			OwnerID:          DemoOwnerID,
			PropertyID:       "3",
			InvestmentAmount: c.of(200000),
			SharesOwned:      10,
			FractionsOwned:   5,
			PurchaseDate:     domain.MustParseDate("2023-02-10"),
			CurrentValue:     c.of(230000),
		},
		{
			OwnerID:          DemoOwnerID,
			PropertyID:       "4",
			InvestmentAmount: c.of(150000),
			SharesOwned:      10,
			FractionsOwned:   3,
			PurchaseDate:     domain.MustParseDate("2023-09-22"),
			CurrentValue:     c.of(165000),
		},
	}
}

// Groups are the pre-seeded investment groups.
func Groups(currency string) []domain.Group {
	c := amounts(currency)
	return []domain.Group{
		{
			ID:   "group-1",
			Code: "FAMILY23",
			Name: "Family Investment Circle",
			Members: []domain.Member{
				{ID: "1", Name: "Demo Investor", Email: "demo@example.com"},
				{ID: "2", Name: "Priya Sharma", Email: "priya@example.com"},
				{ID: "3", Name: "Rahul Verma", Email: "rahul@example.com"},
			},
			Investments: []domain.GroupInvestment{
				{
					PropertyID:      "3",
					TotalInvestment: c.of(1800000),
					TotalShares:     90,
					PurchaseDate:    domain.MustParseDate("2023-03-05"),
				},
			},
		},
		{
			ID:   "group-2",
			Code: "TECHINV",
			Name: "Tech Professionals Fund",
			Members: []domain.Member{
				{ID: "4", Name: "Ananya Iyer", Email: "ananya@example.com"},
				{ID: "5", Name: "Vikram Rao", Email: "vikram@example.com"},
			},
		},
	}
}

// Load puts the demo data into an empty store, priced in rupees.
func Load(store *memstore.Store) error {
	return LoadIn(store, domain.DefaultCurrency)
}

// LoadIn puts the demo data into an empty store with amounts in currency.
func LoadIn(store *memstore.Store, currency string) error {
	return store.Update(func(tx *memstore.Tx) error {
		for _, p := range Properties(currency) {
			if err := tx.AddProperty(p); err != nil {
				return err
			}
		}
		for _, h := range Holdings(currency) {
			tx.PutHolding(h)
		}
		for _, g := range Groups(currency) {
			if err := tx.AddGroup(g); err != nil {
				return err
			}
		}
		return nil
	})
}

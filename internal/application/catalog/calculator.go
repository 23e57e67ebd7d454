package catalog

import (
	"errors"

	"estate-backend/internal/domain"

	"github.com/shopspring/decimal"
)

const maxProjectionMonths = 600

var (
	ErrInvalidInvestment   = errors.New("Investment must be positive")
	ErrInvalidDuration     = errors.New("Duration must be between 1 and 600 months")
	ErrInvalidDurationType = errors.New("Duration type must be months or years")
)

// YieldRequest is one rental yield calculation.
type YieldRequest struct {
	Investment   decimal.Decimal `json:"investment"`
	Duration     int             `json:"duration"`
	DurationType string          `json:"durationType"`
}

// ProjectionPoint is the value of the investment plus accrued rent after Month months.
type ProjectionPoint struct {
	Month int          `json:"month"`
	Value domain.Money `json:"value"`
}

// YieldProjection is the calculator output.
type YieldProjection struct {
	PropertyID    string            `json:"property_id"`
	AnnualYield   decimal.Decimal   `json:"annual_yield"`
	Investment    domain.Money      `json:"investment"`
	Months        int               `json:"months"`
	MonthlyIncome domain.Money      `json:"monthly_income"`
	TotalReturn   domain.Money      `json:"total_return"`
	Series        []ProjectionPoint `json:"series"`
}

// Months converts the request duration to months.
func (r YieldRequest) Months() (int, error) {
	months := r.Duration
	switch r.DurationType {
	case "", "months":
	case "years":
		months = r.Duration * 12
	default:
		return 0, ErrInvalidDurationType
	}
	if months < 1 || months > maxProjectionMonths {
		return 0, ErrInvalidDuration
	}
	return months, nil
}

// ProjectYield computes simple (non-compounding) rental income on an investment
// in p. Amounts are rounded to two decimal places.
func ProjectYield(p domain.Property, req YieldRequest, currency string) (YieldProjection, error) {
	if !req.Investment.IsPositive() {
		return YieldProjection{}, ErrInvalidInvestment
	}
	months, err := req.Months()
	if err != nil {
		return YieldProjection{}, err
	}

	investment := domain.NewMoney(req.Investment, currency)
	monthly := investment.Percent(p.AnnualYield).Div(decimal.NewFromInt(12))
	at := func(month int) domain.Money {
		v := investment.Add(monthly.Mul(decimal.NewFromInt(int64(month))))
		return domain.NewMoney(v.Decimal().Round(2), currency)
	}

	series := make([]ProjectionPoint, 0, months+1)
	for m := 0; m <= months; m++ {
		series = append(series, ProjectionPoint{Month: m, Value: at(m)})
	}
	return YieldProjection{
		PropertyID:    p.ID,
		AnnualYield:   p.AnnualYield,
		Investment:    investment,
		Months:        months,
		MonthlyIncome: domain.NewMoney(monthly.Decimal().Round(2), currency),
		TotalReturn:   at(months),
		Series:        series,
	}, nil
}

package domain

// Member of an investment group.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Group is a pooled portfolio. Groups are seeded; allocations only touch Investments.
type Group struct {
	ID          string            `json:"id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Members     []Member          `json:"members"`
	Investments []GroupInvestment `json:"investments"`
}

// GroupInvestment is a group's cumulative position in one property.
type GroupInvestment struct {
	GroupID         string `json:"group_id"`
	PropertyID      string `json:"property_id"`
	TotalInvestment Money  `json:"total_investment"`
	TotalShares     int    `json:"total_shares"`
	PurchaseDate    Date   `json:"purchase_date"`
}

// Clone returns a copy that shares no slices with g.
func (g Group) Clone() Group {
	c := g
	c.Members = append([]Member(nil), g.Members...)
	c.Investments = append([]GroupInvestment(nil), g.Investments...)
	return c
}

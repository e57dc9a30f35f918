package model

// BudgetWindow is the span over which the daily budget is computed.
// Either date may be empty until the user supplies it.
type BudgetWindow struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// IsSet reports whether both ends of the window are present.
func (w BudgetWindow) IsSet() bool {
	return w.StartDate != "" && w.EndDate != ""
}

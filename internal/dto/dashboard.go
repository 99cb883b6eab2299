package dto

// DashboardMetrics aggregates the headline numbers for one month scope.
type DashboardMetrics struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalExpenses  float64 `json:"totalExpenses"`
	NetProfit      float64 `json:"netProfit"`
	ActiveStudents int     `json:"activeStudents"`
	FeesPending    float64 `json:"feesPending"`
}

// TrendPoint is one month in the income/expense trend series.
type TrendPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// ExpenseSlice is one category's share of paid expenses.
type ExpenseSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthOption is a selectable month scope for dashboard filtering.
type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

package model

// EnrichedGoal is a stored goal annotated with the even monthly installment
// its target amount and deadline imply. The annotations are present only
// when both the amount and date parse.
type EnrichedGoal struct {
	Goal
	MonthlySavingsNeeded *float64 `json:"monthly_savings_needed,omitempty"`
	MonthsRemaining      *int     `json:"months_remaining,omitempty"`
}

// GoalRecommendation is one row of the budget analysis: how much a goal
// needs per month and how urgent it is.
type GoalRecommendation struct {
	GoalID               string  `json:"goal_id"`
	GoalLabel            string  `json:"goal_label"`
	TargetAmount         float64 `json:"target_amount"`
	TargetDate           string  `json:"target_date,omitempty"`
	MonthlySavingsNeeded float64 `json:"monthly_savings_needed"`
	MonthsRemaining      int     `json:"months_remaining"`
	Status               string  `json:"status"`
}

// BudgetAnalysis summarizes what the goal list demands per month against
// the user's average spending.
type BudgetAnalysis struct {
	HasGoals                  bool                 `json:"has_goals"`
	Message                   string               `json:"message,omitempty"`
	TotalMonthlySavingsNeeded float64              `json:"total_monthly_savings_needed,omitempty"`
	AvgMonthlySpending        float64              `json:"avg_monthly_spending,omitempty"`
	Goals                     []GoalRecommendation `json:"goals,omitempty"`
	Tip                       string               `json:"tip,omitempty"`
}

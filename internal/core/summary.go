package core

import "time"

// MonthBucket holds income and expense sums for one calendar month.
type MonthBucket struct {
	Year    int
	Month   time.Month
	Label   string // MM/YYYY
	Income  Money
	Expense Money
}

// CategoryTotal is the magnitude moved through a category, both types combined.
type CategoryTotal struct {
	CategoryID string
	Amount     Money
}

// Totals summarises a set of transactions.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// GoalProgress describes the balance relative to the savings goal.
// Set is false when no positive goal exists; Percent is then meaningless.
type GoalProgress struct {
	Set     bool
	Percent float64 // 0..100
	Met     bool
}

// ChangeOp names a ledger mutation.
type ChangeOp string

const (
	OpCreate  ChangeOp = "create"
	OpUpdate  ChangeOp = "update"
	OpDelete  ChangeOp = "delete"
	OpSetGoal ChangeOp = "set_goal"
)

// Change describes one applied ledger mutation.
type Change struct {
	Op            ChangeOp
	TransactionID string
	Revision      uint64
	At            time.Time
}

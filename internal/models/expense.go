package models

// SplitType selects how an expense amount is divided between members.
type SplitType string

const (
	// SplitEqual divides the amount evenly across all group members.
	SplitEqual SplitType = "equal"
	// SplitPercentage divides the amount by explicit member percentages.
	SplitPercentage SplitType = "percentage"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	return t == SplitEqual || t == SplitPercentage
}

// Expense represents an amount paid by one member on behalf of a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group that owns this expense.
	GroupID string

	// Description is a short label (e.g., "Groceries").
	Description string

	// Amount is the total paid. Always > 0.
	Amount float64

	// PayerID is the member who paid. Must belong to the group.
	PayerID string

	// SplitType records how the amount was allocated.
	SplitType SplitType

	// Splits are the non-payer shares. The payer implicitly covers the rest.
	Splits []Split

	// CreatedBy is the account ID that recorded the expense, if known.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one member's owed share of an expense.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// MemberID is the debtor. Never the expense payer.
	MemberID string

	// Amount is what the debtor owes the payer, rounded to cents.
	Amount float64

	// Percentage is the requested share for percentage splits, nil otherwise.
	Percentage *float64
}

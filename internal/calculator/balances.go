package calculator

import (
	"sort"

	"github.com/mmynk/splitledger/internal/models"
)

// topSpenders is how many creditors the highest spenders ranking keeps.
const topSpenders = 3

// MemberForBalance is the minimal member information needed for ranking.
type MemberForBalance struct {
	ID   string
	Name string
}

// GroupForBalance represents a group with the minimal information needed for balance calculations.
type GroupForBalance struct {
	ID      string
	Budget  float64
	Members []MemberForBalance
}

// SplitForBalance is one debtor's share of an expense.
type SplitForBalance struct {
	MemberID string
	Amount   float64
}

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	Amount  float64
	PayerID string
	Splits  []SplitForBalance
}

// Balance is a directed amount one member owes another.
type Balance struct {
	DebtorID   string
	CreditorID string
	Amount     float64
}

// Spender is a creditor with the total amount owed to them.
type Spender struct {
	MemberID string
	Name     string
	Amount   float64
}

// GroupBalance summarises a group's spending and debts.
type GroupBalance struct {
	GroupID         string
	TotalSpent      float64
	RemainingBudget float64
	BudgetExceeded  bool
	Balances        []Balance
	HighestSpenders []Spender
}

// ComputeGroupBalance replays a group's expense history into a balance summary.
//
// Algorithm:
//   - total spent is the sum of expense amounts; the budget is exceeded only
//     when the total is strictly greater than it
//   - every split adds to debts[debtor][payer]; debts in opposite directions
//     between the same pair are kept apart, never netted
//   - pairs above the 0.01 noise floor become balances, rounded to cents
//   - highest spenders rank creditors by the raw total owed to them,
//     ties broken by ascending member ID, top 3
//
// Output is ordered by member ID so repeated calls over the same history
// are identical.
func ComputeGroupBalance(group *GroupForBalance, expenses []ExpenseForBalance) (*GroupBalance, error) {
	if group == nil {
		return nil, models.ErrGroupNotFound
	}

	members := make([]MemberForBalance, len(group.Members))
	copy(members, group.Members)
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	// debts[debtor][creditor] = amount, seeded for every ordered pair of distinct members
	debts := make(map[string]map[string]float64, len(members))
	for _, debtor := range members {
		debts[debtor.ID] = make(map[string]float64, len(members)-1)
		for _, creditor := range members {
			if creditor.ID != debtor.ID {
				debts[debtor.ID][creditor.ID] = 0
			}
		}
	}

	var totalSpent float64
	for _, expense := range expenses {
		totalSpent += expense.Amount
		for _, split := range expense.Splits {
			owed, ok := debts[split.MemberID]
			if !ok {
				continue
			}
			if _, ok := owed[expense.PayerID]; !ok {
				// payer is the debtor, or not a member
				continue
			}
			owed[expense.PayerID] += split.Amount
		}
	}

	result := &GroupBalance{
		GroupID:         group.ID,
		TotalSpent:      Round2(totalSpent),
		RemainingBudget: Round2(group.Budget - totalSpent),
		BudgetExceeded:  totalSpent > group.Budget,
		Balances:        []Balance{},
		HighestSpenders: []Spender{},
	}

	spendingTotals := make(map[string]float64, len(members))
	for _, debtor := range members {
		for _, creditor := range members {
			if creditor.ID == debtor.ID {
				continue
			}
			amount := debts[debtor.ID][creditor.ID]
			spendingTotals[creditor.ID] += amount
			if amount > noiseFloor {
				result.Balances = append(result.Balances, Balance{
					DebtorID:   debtor.ID,
					CreditorID: creditor.ID,
					Amount:     Round2(amount),
				})
			}
		}
	}

	result.HighestSpenders = rankSpenders(members, spendingTotals)
	return result, nil
}

// rankSpenders expects members sorted by ID; the stable sort keeps that as the tie-break.
func rankSpenders(members []MemberForBalance, totals map[string]float64) []Spender {
	ranked := make([]Spender, 0, len(members))
	for _, m := range members {
		if totals[m.ID] > 0 {
			ranked = append(ranked, Spender{MemberID: m.ID, Name: m.Name, Amount: totals[m.ID]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Amount > ranked[j].Amount })

	if len(ranked) > topSpenders {
		ranked = ranked[:topSpenders]
	}
	for i := range ranked {
		ranked[i].Amount = Round2(ranked[i].Amount)
	}
	return ranked
}

// MemberBalance is a balance involving a particular member, tagged with its group.
type MemberBalance struct {
	GroupID string
	Balance
}

// MemberBalances collects every balance in which memberID is the debtor or the creditor.
// Results follow the order of groups, then the per-group balance order.
func MemberBalances(memberID string, groups []*GroupBalance) []MemberBalance {
	out := []MemberBalance{}
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, b := range g.Balances {
			if b.DebtorID == memberID || b.CreditorID == memberID {
				out = append(out, MemberBalance{GroupID: g.GroupID, Balance: b})
			}
		}
	}
	return out
}

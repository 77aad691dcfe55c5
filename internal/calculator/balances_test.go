package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func threeMemberGroup(budget float64) *GroupForBalance {
	return &GroupForBalance{
		ID:     "g1",
		Budget: budget,
		Members: []MemberForBalance{
			{ID: "c", Name: "Carol"},
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
	}
}

// expenseFrom runs the allocator so scenarios exercise both halves of the core.
func expenseFrom(t *testing.T, req ExpenseRequest, members []string) ExpenseForBalance {
	t.Helper()
	splits, err := AllocateSplits(req, members)
	if err != nil {
		t.Fatalf("AllocateSplits: %v", err)
	}
	exp := ExpenseForBalance{Amount: req.Amount, PayerID: req.PayerID}
	for _, s := range splits {
		exp.Splits = append(exp.Splits, SplitForBalance{MemberID: s.MemberID, Amount: s.Amount})
	}
	return exp
}

func TestComputeGroupBalance_NoExpenses(t *testing.T) {
	result, err := ComputeGroupBalance(threeMemberGroup(100), nil)
	if err != nil {
		t.Fatalf("ComputeGroupBalance failed: %v", err)
	}
	if result.TotalSpent != 0 {
		t.Errorf("TotalSpent = %v, want 0", result.TotalSpent)
	}
	if result.RemainingBudget != 100 {
		t.Errorf("RemainingBudget = %v, want 100", result.RemainingBudget)
	}
	if result.BudgetExceeded {
		t.Error("BudgetExceeded = true, want false")
	}
	if result.Balances == nil || len(result.Balances) != 0 {
		t.Errorf("Balances = %#v, want empty slice", result.Balances)
	}
	if result.HighestSpenders == nil || len(result.HighestSpenders) != 0 {
		t.Errorf("HighestSpenders = %#v, want empty slice", result.HighestSpenders)
	}
}

func TestComputeGroupBalance_NilGroup(t *testing.T) {
	_, err := ComputeGroupBalance(nil, nil)
	if !errors.Is(err, models.ErrGroupNotFound) {
		t.Errorf("error = %v, want ErrGroupNotFound", err)
	}
}

func TestComputeGroupBalance_Scenarios(t *testing.T) {
	members := []string{"a", "b", "c"}
	group := threeMemberGroup(100)

	first := expenseFrom(t, ExpenseRequest{Amount: 90, PayerID: "a", SplitType: models.SplitEqual}, members)

	t.Run("equal split", func(t *testing.T) {
		result, err := ComputeGroupBalance(group, []ExpenseForBalance{first})
		if err != nil {
			t.Fatalf("ComputeGroupBalance failed: %v", err)
		}
		if result.TotalSpent != 90 || result.RemainingBudget != 10 || result.BudgetExceeded {
			t.Errorf("totals = (%v, %v, %v), want (90, 10, false)",
				result.TotalSpent, result.RemainingBudget, result.BudgetExceeded)
		}
		want := []Balance{
			{DebtorID: "b", CreditorID: "a", Amount: 30},
			{DebtorID: "c", CreditorID: "a", Amount: 30},
		}
		assertBalances(t, result.Balances, want)

		if len(result.HighestSpenders) != 1 {
			t.Fatalf("HighestSpenders = %+v, want one entry", result.HighestSpenders)
		}
		top := result.HighestSpenders[0]
		if top.Name != "Alice" || top.MemberID != "a" || top.Amount != 60 {
			t.Errorf("top spender = %+v, want Alice 60", top)
		}
	})

	t.Run("percentage split on top, debts kept per direction", func(t *testing.T) {
		second := expenseFrom(t, ExpenseRequest{
			Amount: 50, PayerID: "b", SplitType: models.SplitPercentage,
			Shares: []PercentageShare{{MemberID: "a", Percentage: 60}, {MemberID: "c", Percentage: 40}},
		}, members)

		result, err := ComputeGroupBalance(group, []ExpenseForBalance{first, second})
		if err != nil {
			t.Fatalf("ComputeGroupBalance failed: %v", err)
		}
		if result.TotalSpent != 140 || result.RemainingBudget != -40 || !result.BudgetExceeded {
			t.Errorf("totals = (%v, %v, %v), want (140, -40, true)",
				result.TotalSpent, result.RemainingBudget, result.BudgetExceeded)
		}
		want := []Balance{
			{DebtorID: "a", CreditorID: "b", Amount: 30},
			{DebtorID: "b", CreditorID: "a", Amount: 30},
			{DebtorID: "c", CreditorID: "a", Amount: 30},
			{DebtorID: "c", CreditorID: "b", Amount: 20},
		}
		assertBalances(t, result.Balances, want)

		if len(result.HighestSpenders) != 2 {
			t.Fatalf("HighestSpenders = %+v, want two entries", result.HighestSpenders)
		}
		if result.HighestSpenders[0].Name != "Alice" || result.HighestSpenders[0].Amount != 60 {
			t.Errorf("first spender = %+v, want Alice 60", result.HighestSpenders[0])
		}
		if result.HighestSpenders[1].Name != "Bob" || result.HighestSpenders[1].Amount != 50 {
			t.Errorf("second spender = %+v, want Bob 50", result.HighestSpenders[1])
		}
	})
}

func TestComputeGroupBalance_BudgetBoundary(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		exceeded bool
	}{
		{"below budget", 99.99, false},
		{"exactly at budget", 100, false},
		{"above budget", 100.01, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeGroupBalance(threeMemberGroup(100), []ExpenseForBalance{{Amount: tt.amount, PayerID: "a"}})
			if err != nil {
				t.Fatalf("ComputeGroupBalance failed: %v", err)
			}
			if result.BudgetExceeded != tt.exceeded {
				t.Errorf("BudgetExceeded = %v, want %v", result.BudgetExceeded, tt.exceeded)
			}
		})
	}
}

func TestComputeGroupBalance_NoiseFloor(t *testing.T) {
	expenses := []ExpenseForBalance{
		{Amount: 0.02, PayerID: "a", Splits: []SplitForBalance{{MemberID: "b", Amount: 0.01}}},
		{Amount: 0.04, PayerID: "b", Splits: []SplitForBalance{{MemberID: "c", Amount: 0.02}}},
	}
	result, err := ComputeGroupBalance(threeMemberGroup(100), expenses)
	if err != nil {
		t.Fatalf("ComputeGroupBalance failed: %v", err)
	}
	assertBalances(t, result.Balances, []Balance{{DebtorID: "c", CreditorID: "b", Amount: 0.02}})

	// spending totals ignore the floor: Alice is still owed 0.01
	if len(result.HighestSpenders) != 2 {
		t.Fatalf("HighestSpenders = %+v, want two entries", result.HighestSpenders)
	}
	if result.HighestSpenders[1].Name != "Alice" || math.Abs(result.HighestSpenders[1].Amount-0.01) > 1e-9 {
		t.Errorf("second spender = %+v, want Alice 0.01", result.HighestSpenders[1])
	}
}

func TestComputeGroupBalance_TopThreeWithTies(t *testing.T) {
	group := &GroupForBalance{
		ID:     "g",
		Budget: 1000,
		Members: []MemberForBalance{
			{ID: "d", Name: "Dan"},
			{ID: "b", Name: "Bob"},
			{ID: "a", Name: "Alice"},
			{ID: "c", Name: "Carol"},
		},
	}
	// everyone except Alice is owed 10; Alice is owed 20
	expenses := []ExpenseForBalance{
		{Amount: 20, PayerID: "a", Splits: []SplitForBalance{{MemberID: "b", Amount: 20}}},
		{Amount: 10, PayerID: "b", Splits: []SplitForBalance{{MemberID: "a", Amount: 10}}},
		{Amount: 10, PayerID: "c", Splits: []SplitForBalance{{MemberID: "a", Amount: 10}}},
		{Amount: 10, PayerID: "d", Splits: []SplitForBalance{{MemberID: "a", Amount: 10}}},
	}
	for i := 0; i < 3; i++ {
		result, err := ComputeGroupBalance(group, expenses)
		if err != nil {
			t.Fatalf("ComputeGroupBalance failed: %v", err)
		}
		got := make([]string, len(result.HighestSpenders))
		for i, s := range result.HighestSpenders {
			got[i] = s.Name
		}
		want := []string{"Alice", "Bob", "Carol"}
		if len(got) != len(want) {
			t.Fatalf("HighestSpenders = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("HighestSpenders = %v, want %v", got, want)
			}
		}
	}
}

func TestComputeGroupBalance_SkipsForeignSplits(t *testing.T) {
	expenses := []ExpenseForBalance{
		{Amount: 30, PayerID: "a", Splits: []SplitForBalance{
			{MemberID: "a", Amount: 10},
			{MemberID: "zed", Amount: 10},
			{MemberID: "b", Amount: 10},
		}},
	}
	result, err := ComputeGroupBalance(threeMemberGroup(100), expenses)
	if err != nil {
		t.Fatalf("ComputeGroupBalance failed: %v", err)
	}
	assertBalances(t, result.Balances, []Balance{{DebtorID: "b", CreditorID: "a", Amount: 10}})
}

func TestMemberBalances(t *testing.T) {
	groups := []*GroupBalance{
		{GroupID: "g1", Balances: []Balance{
			{DebtorID: "a", CreditorID: "b", Amount: 5},
			{DebtorID: "c", CreditorID: "b", Amount: 7},
		}},
		nil,
		{GroupID: "g2", Balances: []Balance{
			{DebtorID: "b", CreditorID: "a", Amount: 3},
		}},
	}

	got := MemberBalances("a", groups)
	if len(got) != 2 {
		t.Fatalf("MemberBalances = %+v, want 2 entries", got)
	}
	if got[0].GroupID != "g1" || got[0].CreditorID != "b" {
		t.Errorf("first = %+v, want g1 a->b", got[0])
	}
	if got[1].GroupID != "g2" || got[1].DebtorID != "b" {
		t.Errorf("second = %+v, want g2 b->a", got[1])
	}

	if none := MemberBalances("nobody", groups); len(none) != 0 {
		t.Errorf("expected no balances, got %+v", none)
	}
}

func assertBalances(t *testing.T, got, want []Balance) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("balances = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].DebtorID != want[i].DebtorID || got[i].CreditorID != want[i].CreditorID {
			t.Errorf("balance[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if math.Abs(got[i].Amount-want[i].Amount) > 0.001 {
			t.Errorf("balance[%d] amount = %v, want %v", i, got[i].Amount, want[i].Amount)
		}
	}
}

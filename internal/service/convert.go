package service

import (
	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		Id:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func toAPIGroup(g *models.Group, members map[string]*models.Member, spending float64) *api.Group {
	apiMembers := make([]*api.Member, 0, len(g.MemberIDs))
	for _, id := range g.MemberIDs {
		if m, ok := members[id]; ok {
			apiMembers = append(apiMembers, toAPIMember(m))
		}
	}
	return &api.Group{
		Id:              g.ID,
		Name:            g.Name,
		Budget:          g.Budget,
		Members:         apiMembers,
		CurrentSpending: calculator.Round2(spending),
		RemainingBudget: calculator.Round2(g.Budget - spending),
		CreatedAt:       g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splits := make([]*api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &api.Split{
			Id:         s.ID,
			MemberId:   s.MemberID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return &api.Expense{
		Id:          e.ID,
		GroupId:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PayerId:     e.PayerID,
		SplitType:   string(e.SplitType),
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIGroupBalance(b *calculator.GroupBalance) *api.GetGroupBalanceResponse {
	balances := make([]*api.Balance, len(b.Balances))
	for i, bal := range b.Balances {
		balances[i] = &api.Balance{
			DebtorId:   bal.DebtorID,
			CreditorId: bal.CreditorID,
			Amount:     bal.Amount,
		}
	}
	spenders := make([]*api.Spender, len(b.HighestSpenders))
	for i, sp := range b.HighestSpenders {
		spenders[i] = &api.Spender{
			MemberId: sp.MemberID,
			Name:     sp.Name,
			Amount:   sp.Amount,
		}
	}
	return &api.GetGroupBalanceResponse{
		TotalSpent:      b.TotalSpent,
		RemainingBudget: b.RemainingBudget,
		BudgetExceeded:  b.BudgetExceeded,
		Balances:        balances,
		HighestSpenders: spenders,
	}
}

// balanceSnapshot flattens stored records into the calculator's input shapes.
func balanceSnapshot(g *models.Group, members map[string]*models.Member, expenses []*models.Expense) (*calculator.GroupForBalance, []calculator.ExpenseForBalance) {
	group := &calculator.GroupForBalance{
		ID:      g.ID,
		Budget:  g.Budget,
		Members: make([]calculator.MemberForBalance, 0, len(g.MemberIDs)),
	}
	for _, id := range g.MemberIDs {
		name := ""
		if m, ok := members[id]; ok {
			name = m.Name
		}
		group.Members = append(group.Members, calculator.MemberForBalance{ID: id, Name: name})
	}

	history := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		splits := make([]calculator.SplitForBalance, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = calculator.SplitForBalance{MemberID: s.MemberID, Amount: s.Amount}
		}
		history[i] = calculator.ExpenseForBalance{
			Amount:  e.Amount,
			PayerID: e.PayerID,
			Splits:  splits,
		}
	}
	return group, history
}

package api

// Member is a ledger participant.
type Member struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Group is a budgeted set of members, with its spending so far.
type Group struct {
	Id              string    `json:"id"`
	Name            string    `json:"name"`
	Budget          float64   `json:"budget"`
	Members         []*Member `json:"members"`
	CurrentSpending float64   `json:"current_spending"`
	RemainingBudget float64   `json:"remaining_budget"`
	CreatedAt       int64     `json:"created_at"`
}

// SplitInput is one requested share of a percentage split.
type SplitInput struct {
	MemberId   string  `json:"member_id"`
	Percentage float64 `json:"percentage"`
}

// Split is one member's owed share of an expense.
type Split struct {
	Id         string   `json:"id"`
	MemberId   string   `json:"member_id"`
	Amount     float64  `json:"amount"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Expense is an amount paid by one member for the group.
type Expense struct {
	Id          string   `json:"id"`
	GroupId     string   `json:"group_id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	PayerId     string   `json:"payer_id"`
	SplitType   string   `json:"split_type"`
	Splits      []*Split `json:"splits"`
	CreatedAt   int64    `json:"created_at"`
}

// Balance is a directed amount owed by debtor to creditor.
type Balance struct {
	DebtorId   string  `json:"debtor_id"`
	CreditorId string  `json:"creditor_id"`
	Amount     float64 `json:"amount"`
}

// Spender is a member ranked by the total owed to them.
type Spender struct {
	MemberId string  `json:"member_id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// MemberBalance is a balance involving one member, tagged with its group.
type MemberBalance struct {
	GroupId    string  `json:"group_id"`
	DebtorId   string  `json:"debtor_id"`
	CreditorId string  `json:"creditor_id"`
	Amount     float64 `json:"amount"`
}

type CreateMemberRequest struct {
	Name string `json:"name"`
}

type CreateMemberResponse struct {
	Member *Member `json:"member"`
}

type GetMemberRequest struct {
	MemberId string `json:"member_id"`
}

type GetMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Budget  float64  `json:"budget"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type AddExpenseRequest struct {
	GroupId     string        `json:"group_id"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	PayerId     string        `json:"payer_id"`
	SplitType   string        `json:"split_type"`
	Splits      []*SplitInput `json:"splits,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListGroupExpensesRequest struct {
	GroupId string `json:"group_id"`
}

type ListGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetGroupBalanceRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupBalanceResponse struct {
	TotalSpent      float64    `json:"total_spent"`
	RemainingBudget float64    `json:"remaining_budget"`
	BudgetExceeded  bool       `json:"budget_exceeded"`
	Balances        []*Balance `json:"balances"`
	HighestSpenders []*Spender `json:"highest_spenders"`
}

type GetMemberBalancesRequest struct {
	MemberId string `json:"member_id"`
}

type GetMemberBalancesResponse struct {
	Balances []*MemberBalance `json:"balances"`
}

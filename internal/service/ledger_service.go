package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewLedgerService creates a LedgerService over the given storage backend.
// A nil publisher discards events.
func NewLedgerService(store storage.Store, publisher events.Publisher) *LedgerService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &LedgerService{store: store, publisher: publisher}
}

// CreateMember registers a new member.
func (s *LedgerService) CreateMember(ctx context.Context, req *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error) {
	slog.Info("CreateMember request received", "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(ErrEmptyName)
	}

	member := models.NewMember(name)
	if err := s.store.CreateMember(ctx, member); err != nil {
		slog.Error("CreateMember failed", "name", name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member created", "member_id", member.ID)
	return connect.NewResponse(&api.CreateMemberResponse{Member: toAPIMember(member)}), nil
}

// GetMember retrieves a member by ID.
func (s *LedgerService) GetMember(ctx context.Context, req *connect.Request[api.GetMemberRequest]) (*connect.Response[api.GetMemberResponse], error) {
	slog.Info("GetMember request received", "member_id", req.Msg.MemberId)

	member, err := s.store.GetMember(ctx, req.Msg.MemberId)
	if err != nil {
		slog.Error("GetMember failed", "member_id", req.Msg.MemberId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMemberResponse{Member: toAPIMember(member)}), nil
}

// ListMembers returns every member.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	slog.Info("ListMembers request received")

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		slog.Error("ListMembers failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Member, len(members))
	for i, m := range members {
		out[i] = toAPIMember(m)
	}

	slog.Info("ListMembers successful", "count", len(members))
	return connect.NewResponse(&api.ListMembersResponse{Members: out}), nil
}

// CreateGroup creates a group, adding members by name and creating unknown ones.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"budget", req.Msg.Budget,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(ErrEmptyName)
	}
	if req.Msg.Budget <= 0 {
		return nil, toConnectError(ErrInvalidBudget)
	}
	memberNames := distinctNames(req.Msg.Members)
	if len(memberNames) < 2 {
		return nil, toConnectError(ErrTooFewMembers)
	}

	group := &models.Group{Name: name, Budget: req.Msg.Budget}
	if err := s.store.CreateGroup(ctx, group, memberNames); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	apiGroup, err := s.describeGroup(ctx, group)
	if err != nil {
		slog.Error("Failed to load created group", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.MemberIDs))
	return connect.NewResponse(&api.CreateGroupResponse{Group: apiGroup}), nil
}

// GetGroup retrieves a group by ID with its current spending.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	apiGroup, err := s.describeGroup(ctx, group)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.GetGroupResponse{Group: apiGroup}), nil
}

// ListGroups retrieves all groups with their current spending.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroup, err := s.describeGroup(ctx, group)
		if err != nil {
			slog.Error("ListGroups failed", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
		out[i] = apiGroup
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group and all of its expenses.
func (s *LedgerService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	if req.Msg.GroupId == "" {
		return nil, toConnectError(ErrMissingID)
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, events.NewGroupDeleted(req.Msg.GroupId))

	slog.Info("Group deleted", "group_id", req.Msg.GroupId)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddExpense allocates an expense across the group and stores it with its splits.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupId,
		"amount", req.Msg.Amount,
		"payer_id", req.Msg.PayerId,
		"split_type", req.Msg.SplitType,
	)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("AddExpense failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	splitType := models.SplitType(strings.ToLower(req.Msg.SplitType))
	shares := make([]calculator.PercentageShare, len(req.Msg.Splits))
	for i, sp := range req.Msg.Splits {
		shares[i] = calculator.PercentageShare{MemberID: sp.MemberId, Percentage: sp.Percentage}
	}

	allocated, err := calculator.AllocateSplits(calculator.ExpenseRequest{
		Amount:    req.Msg.Amount,
		PayerID:   req.Msg.PayerId,
		SplitType: splitType,
		Shares:    shares,
	}, group.MemberIDs)
	if err != nil {
		slog.Warn("AddExpense rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: strings.TrimSpace(req.Msg.Description),
		Amount:      req.Msg.Amount,
		PayerID:     req.Msg.PayerId,
		SplitType:   splitType,
		Splits:      make([]models.Split, len(allocated)),
		CreatedBy:   middleware.GetAccountID(ctx),
	}
	for i, a := range allocated {
		expense.Splits[i] = models.Split{
			MemberID:   a.MemberID,
			Amount:     a.Amount,
			Percentage: a.Percentage,
		}
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, events.NewExpenseRecorded(group.ID, expense.ID, expense.PayerID, expense.Amount))

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"splits_count", len(expense.Splits),
	)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListGroupExpenses returns a group's expenses, oldest first.
func (s *LedgerService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	slog.Info("ListGroupExpenses request received", "group_id", req.Msg.GroupId)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("ListGroupExpenses failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListGroupExpenses failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}

	slog.Info("ListGroupExpenses successful", "group_id", req.Msg.GroupId, "count", len(expenses))
	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: out}), nil
}

// GetGroupBalance replays a group's expenses into debts and spending totals.
func (s *LedgerService) GetGroupBalance(ctx context.Context, req *connect.Request[api.GetGroupBalanceRequest]) (*connect.Response[api.GetGroupBalanceResponse], error) {
	slog.Info("GetGroupBalance request received", "group_id", req.Msg.GroupId)

	balance, err := s.GroupBalance(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroupBalance failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetGroupBalance successful",
		"group_id", req.Msg.GroupId,
		"total_spent", balance.TotalSpent,
		"budget_exceeded", balance.BudgetExceeded,
		"balances_count", len(balance.Balances),
	)
	return connect.NewResponse(toAPIGroupBalance(balance)), nil
}

// GetMemberBalances lists every debt a member is part of, across all their groups.
func (s *LedgerService) GetMemberBalances(ctx context.Context, req *connect.Request[api.GetMemberBalancesRequest]) (*connect.Response[api.GetMemberBalancesResponse], error) {
	slog.Info("GetMemberBalances request received", "member_id", req.Msg.MemberId)

	if _, err := s.store.GetMember(ctx, req.Msg.MemberId); err != nil {
		slog.Error("GetMemberBalances failed", "member_id", req.Msg.MemberId, "error", err)
		return nil, toConnectError(err)
	}

	groups, err := s.store.ListGroupsByMember(ctx, req.Msg.MemberId)
	if err != nil {
		slog.Error("GetMemberBalances failed", "member_id", req.Msg.MemberId, "error", err)
		return nil, toConnectError(err)
	}

	groupBalances := make([]*calculator.GroupBalance, 0, len(groups))
	for _, group := range groups {
		balance, err := s.GroupBalance(ctx, group.ID)
		if err != nil {
			slog.Error("GetMemberBalances failed", "group_id", group.ID, "error", err)
			return nil, toConnectError(err)
		}
		groupBalances = append(groupBalances, balance)
	}

	memberBalances := calculator.MemberBalances(req.Msg.MemberId, groupBalances)
	out := make([]*api.MemberBalance, len(memberBalances))
	for i, mb := range memberBalances {
		out[i] = &api.MemberBalance{
			GroupId:    mb.GroupID,
			DebtorId:   mb.DebtorID,
			CreditorId: mb.CreditorID,
			Amount:     mb.Amount,
		}
	}

	slog.Info("GetMemberBalances successful", "member_id", req.Msg.MemberId, "count", len(out))
	return connect.NewResponse(&api.GetMemberBalancesResponse{Balances: out}), nil
}

// GroupBalance loads a group snapshot and its full expense history and
// computes the group's balance.
func (s *LedgerService) GroupBalance(ctx context.Context, groupID string) (*calculator.GroupBalance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.GetMembersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	snapshot, history := balanceSnapshot(group, members, expenses)
	balance, err := calculator.ComputeGroupBalance(snapshot, history)
	if err != nil {
		return nil, fmt.Errorf("compute balance for group %s: %w", groupID, err)
	}
	return balance, nil
}

func (s *LedgerService) describeGroup(ctx context.Context, group *models.Group) (*api.Group, error) {
	members, err := s.store.GetMembersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, err
	}
	spending, err := s.store.GroupSpending(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return toAPIGroup(group, members, spending), nil
}

// publish sends an event after the change is committed. Failures are logged only.
func (s *LedgerService) publish(ctx context.Context, msg *events.Message) {
	if err := s.publisher.Publish(ctx, msg); err != nil {
		slog.Warn("Failed to publish ledger event", "kind", msg.Kind, "group_id", msg.GroupID, "error", err)
	}
}

// distinctNames trims names and drops blanks and repeats, keeping first-seen order.
func distinctNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

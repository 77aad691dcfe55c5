package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService.
	LedgerServiceName = "splitledger.v1.LedgerService"
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "splitledger.v1.AuthService"
)

// Procedure paths, as served under the service name prefix.
const (
	LedgerServiceCreateMemberProcedure      = "/splitledger.v1.LedgerService/CreateMember"
	LedgerServiceGetMemberProcedure         = "/splitledger.v1.LedgerService/GetMember"
	LedgerServiceListMembersProcedure       = "/splitledger.v1.LedgerService/ListMembers"
	LedgerServiceCreateGroupProcedure       = "/splitledger.v1.LedgerService/CreateGroup"
	LedgerServiceGetGroupProcedure          = "/splitledger.v1.LedgerService/GetGroup"
	LedgerServiceListGroupsProcedure        = "/splitledger.v1.LedgerService/ListGroups"
	LedgerServiceDeleteGroupProcedure       = "/splitledger.v1.LedgerService/DeleteGroup"
	LedgerServiceAddExpenseProcedure        = "/splitledger.v1.LedgerService/AddExpense"
	LedgerServiceListGroupExpensesProcedure = "/splitledger.v1.LedgerService/ListGroupExpenses"
	LedgerServiceGetGroupBalanceProcedure   = "/splitledger.v1.LedgerService/GetGroupBalance"
	LedgerServiceGetMemberBalancesProcedure = "/splitledger.v1.LedgerService/GetMemberBalances"
	AuthServiceRegisterProcedure            = "/splitledger.v1.AuthService/Register"
	AuthServiceLoginProcedure               = "/splitledger.v1.AuthService/Login"
)

// withCodec puts the JSON codec ahead of caller options.
func withCodec[O any](codec O, opts []O) []O {
	return append([]O{codec}, opts...)
}

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	CreateMember(context.Context, *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error)
	GetMember(context.Context, *connect.Request[GetMemberRequest]) (*connect.Response[GetMemberResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[ListGroupExpensesRequest]) (*connect.Response[ListGroupExpensesResponse], error)
	GetGroupBalance(context.Context, *connect.Request[GetGroupBalanceRequest]) (*connect.Response[GetGroupBalanceResponse], error)
	GetMemberBalances(context.Context, *connect.Request[GetMemberBalancesRequest]) (*connect.Response[GetMemberBalancesResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec[connect.HandlerOption](connect.WithCodec(Codec{}), opts)
	handlers := map[string]http.Handler{
		LedgerServiceCreateMemberProcedure:      connect.NewUnaryHandler(LedgerServiceCreateMemberProcedure, svc.CreateMember, opts...),
		LedgerServiceGetMemberProcedure:         connect.NewUnaryHandler(LedgerServiceGetMemberProcedure, svc.GetMember, opts...),
		LedgerServiceListMembersProcedure:       connect.NewUnaryHandler(LedgerServiceListMembersProcedure, svc.ListMembers, opts...),
		LedgerServiceCreateGroupProcedure:       connect.NewUnaryHandler(LedgerServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		LedgerServiceGetGroupProcedure:          connect.NewUnaryHandler(LedgerServiceGetGroupProcedure, svc.GetGroup, opts...),
		LedgerServiceListGroupsProcedure:        connect.NewUnaryHandler(LedgerServiceListGroupsProcedure, svc.ListGroups, opts...),
		LedgerServiceDeleteGroupProcedure:       connect.NewUnaryHandler(LedgerServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		LedgerServiceAddExpenseProcedure:        connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceListGroupExpensesProcedure: connect.NewUnaryHandler(LedgerServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts...),
		LedgerServiceGetGroupBalanceProcedure:   connect.NewUnaryHandler(LedgerServiceGetGroupBalanceProcedure, svc.GetGroupBalance, opts...),
		LedgerServiceGetMemberBalancesProcedure: connect.NewUnaryHandler(LedgerServiceGetMemberBalancesProcedure, svc.GetMemberBalances, opts...),
	}
	return "/" + LedgerServiceName + "/", routeProcedures(handlers)
}

// LedgerServiceClient calls the ledger service.
type LedgerServiceClient interface {
	CreateMember(context.Context, *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error)
	GetMember(context.Context, *connect.Request[GetMemberRequest]) (*connect.Response[GetMemberResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[ListGroupExpensesRequest]) (*connect.Response[ListGroupExpensesResponse], error)
	GetGroupBalance(context.Context, *connect.Request[GetGroupBalanceRequest]) (*connect.Response[GetGroupBalanceResponse], error)
	GetMemberBalances(context.Context, *connect.Request[GetMemberBalancesRequest]) (*connect.Response[GetMemberBalancesResponse], error)
}

// NewLedgerServiceClient constructs a client for the ledger service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec[connect.ClientOption](connect.WithCodec(Codec{}), opts)
	return &ledgerServiceClient{
		createMember:      connect.NewClient[CreateMemberRequest, CreateMemberResponse](httpClient, baseURL+LedgerServiceCreateMemberProcedure, opts...),
		getMember:         connect.NewClient[GetMemberRequest, GetMemberResponse](httpClient, baseURL+LedgerServiceGetMemberProcedure, opts...),
		listMembers:       connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+LedgerServiceListMembersProcedure, opts...),
		createGroup:       connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+LedgerServiceCreateGroupProcedure, opts...),
		getGroup:          connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+LedgerServiceGetGroupProcedure, opts...),
		listGroups:        connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+LedgerServiceListGroupsProcedure, opts...),
		deleteGroup:       connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+LedgerServiceDeleteGroupProcedure, opts...),
		addExpense:        connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		listGroupExpenses: connect.NewClient[ListGroupExpensesRequest, ListGroupExpensesResponse](httpClient, baseURL+LedgerServiceListGroupExpensesProcedure, opts...),
		getGroupBalance:   connect.NewClient[GetGroupBalanceRequest, GetGroupBalanceResponse](httpClient, baseURL+LedgerServiceGetGroupBalanceProcedure, opts...),
		getMemberBalances: connect.NewClient[GetMemberBalancesRequest, GetMemberBalancesResponse](httpClient, baseURL+LedgerServiceGetMemberBalancesProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createMember      *connect.Client[CreateMemberRequest, CreateMemberResponse]
	getMember         *connect.Client[GetMemberRequest, GetMemberResponse]
	listMembers       *connect.Client[ListMembersRequest, ListMembersResponse]
	createGroup       *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup          *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups        *connect.Client[ListGroupsRequest, ListGroupsResponse]
	deleteGroup       *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	addExpense        *connect.Client[AddExpenseRequest, AddExpenseResponse]
	listGroupExpenses *connect.Client[ListGroupExpensesRequest, ListGroupExpensesResponse]
	getGroupBalance   *connect.Client[GetGroupBalanceRequest, GetGroupBalanceResponse]
	getMemberBalances *connect.Client[GetMemberBalancesRequest, GetMemberBalancesResponse]
}

func (c *ledgerServiceClient) CreateMember(ctx context.Context, req *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error) {
	return c.createMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMember(ctx context.Context, req *connect.Request[GetMemberRequest]) (*connect.Response[GetMemberResponse], error) {
	return c.getMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroupExpenses(ctx context.Context, req *connect.Request[ListGroupExpensesRequest]) (*connect.Response[ListGroupExpensesResponse], error) {
	return c.listGroupExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGroupBalance(ctx context.Context, req *connect.Request[GetGroupBalanceRequest]) (*connect.Response[GetGroupBalanceResponse], error) {
	return c.getGroupBalance.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMemberBalances(ctx context.Context, req *connect.Request[GetMemberBalancesRequest]) (*connect.Response[GetMemberBalancesResponse], error) {
	return c.getMemberBalances.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the auth service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec[connect.HandlerOption](connect.WithCodec(Codec{}), opts)
	handlers := map[string]http.Handler{
		AuthServiceRegisterProcedure: connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:    connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
	}
	return "/" + AuthServiceName + "/", routeProcedures(handlers)
}

// AuthServiceClient calls the auth service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewAuthServiceClient constructs a client for the auth service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec[connect.ClientOption](connect.WithCodec(Codec{}), opts)
	return &authServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

type authServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func routeProcedures(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

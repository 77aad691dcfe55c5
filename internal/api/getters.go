package api

// Nil-safe getters for the ids a request addresses.

func (x *GetGroupRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *DeleteGroupRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *AddExpenseRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *AddExpenseRequest) GetPayerId() string {
	if x == nil {
		return ""
	}
	return x.PayerId
}

func (x *ListGroupExpensesRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *GetGroupBalanceRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *GetMemberRequest) GetMemberId() string {
	if x == nil {
		return ""
	}
	return x.MemberId
}

func (x *GetMemberBalancesRequest) GetMemberId() string {
	if x == nil {
		return ""
	}
	return x.MemberId
}

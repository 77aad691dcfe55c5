// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Member: a person who can belong to groups and owe or be owed money
//   - Group: a budgeted set of members that owns expenses
//   - Expense: an amount paid by one member on behalf of the group
//   - Split: one member's owed share of an expense, directed at the payer
//   - Account: a login identity for API callers (not a ledger participant)
//
// # Design Principles
//
// 1. **Ids over pointers**: relationships are expressed as ID strings
// (Group.MemberIDs, Expense.PayerID, Split.MemberID), never as live references.
// 2. **Immutable history**: splits are written together with their expense
// and never updated. Balances are always recomputed from the full history.
// 3. **Cascade on delete**: removing a group removes its expenses and splits.
package models

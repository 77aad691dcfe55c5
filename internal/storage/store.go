// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Lookups of unknown ids return errors wrapping the models.Err*NotFound sentinels.
type Store interface {
	// CreateMember persists a new member. Names are unique; a taken name
	// returns an error wrapping models.ErrMemberExists.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)

	// GetMembersByIDs retrieves several members keyed by ID.
	// Unknown ids are omitted from the result.
	GetMembersByIDs(ctx context.Context, memberIDs []string) (map[string]*models.Member, error)

	// ListMembers returns every member ordered by name.
	ListMembers(ctx context.Context) ([]*models.Member, error)

	// CreateGroup persists a group together with its members in one transaction.
	// Members are looked up by name and created when missing; group.ID,
	// group.CreatedAt and group.MemberIDs are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group, memberNames []string) error

	// GetGroup retrieves a group by ID, including its member ids.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns every group ordered by creation time.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// ListGroupsByMember returns the groups a member belongs to.
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)

	// DeleteGroup removes a group and, by cascade, its expenses and splits.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists an expense and all of its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup returns a group's expenses with their splits, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// GroupSpending returns the sum of all expense amounts in a group.
	GroupSpending(ctx context.Context, groupID string) (float64, error)

	// Close releases any resources held by the store.
	Close() error
}

package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidBudget = errors.New("budget must be greater than zero")
	ErrTooFewMembers = errors.New("a group needs at least two distinct members")
	ErrMissingID     = errors.New("id is required")
)

// toConnectError maps domain errors to Connect status codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, models.ErrGroupNotFound),
		errors.Is(err, models.ErrMemberNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrMemberExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrInvalidPayer),
		errors.Is(err, calculator.ErrInvalidSplitMember),
		errors.Is(err, calculator.ErrPercentageMismatch),
		errors.Is(err, calculator.ErrUnknownSplitType),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrInvalidBudget),
		errors.Is(err, ErrTooFewMembers),
		errors.Is(err, ErrMissingID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

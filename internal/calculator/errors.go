package calculator

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidPayer       = errors.New("payer must be a group member")
	ErrInvalidSplitMember = errors.New("split member must be a group member")
	ErrPercentageMismatch = errors.New("percentages must sum to 100")
	ErrUnknownSplitType   = errors.New("unknown split type")
)

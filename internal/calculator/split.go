package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// PercentageShare is one requested entry of a percentage split.
type PercentageShare struct {
	MemberID   string
	Percentage float64
}

// ExpenseRequest carries what the allocator needs to divide an expense.
type ExpenseRequest struct {
	Amount    float64
	PayerID   string
	SplitType models.SplitType
	// Shares is required for percentage splits and ignored for equal splits.
	Shares []PercentageShare
}

// AllocatedSplit is one debtor's computed share of an expense.
type AllocatedSplit struct {
	MemberID   string
	Amount     float64
	Percentage *float64 // set for percentage splits only
}

// AllocateSplits divides an expense between the given group members.
//
// The payer never receives a split: they implicitly cover whatever the
// other members do not owe. Rounding is per share with no cent
// redistribution, so the non-payer shares plus the payer's implicit share
// may differ from the amount by a few cents.
//
// Validation happens before any allocation, so callers either get the full
// split set or an error and nothing else.
func AllocateSplits(req ExpenseRequest, memberIDs []string) ([]AllocatedSplit, error) {
	if !finite(req.Amount) || req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	if !members[req.PayerID] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayer, req.PayerID)
	}

	switch req.SplitType {
	case models.SplitEqual:
		return allocateEqual(req, memberIDs), nil
	case models.SplitPercentage:
		return allocatePercentage(req, members)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, req.SplitType)
	}
}

func allocateEqual(req ExpenseRequest, memberIDs []string) []AllocatedSplit {
	perMember := Round2(req.Amount / float64(len(memberIDs)))

	splits := make([]AllocatedSplit, 0, len(memberIDs)-1)
	for _, id := range memberIDs {
		if id == req.PayerID {
			continue
		}
		splits = append(splits, AllocatedSplit{MemberID: id, Amount: perMember})
	}
	return splits
}

func allocatePercentage(req ExpenseRequest, members map[string]bool) ([]AllocatedSplit, error) {
	total := decimal.Zero
	for _, s := range req.Shares {
		if !finite(s.Percentage) {
			return nil, fmt.Errorf("%w: %s has percentage %v", ErrPercentageMismatch, s.MemberID, s.Percentage)
		}
		total = total.Add(decimal.NewFromFloat(s.Percentage))
	}
	if total.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return nil, fmt.Errorf("%w: got %s", ErrPercentageMismatch, total.String())
	}

	seen := make(map[string]bool, len(req.Shares))
	for _, s := range req.Shares {
		if !members[s.MemberID] {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSplitMember, s.MemberID)
		}
		if seen[s.MemberID] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidSplitMember, s.MemberID)
		}
		seen[s.MemberID] = true
	}

	splits := make([]AllocatedSplit, 0, len(req.Shares))
	for _, s := range req.Shares {
		if s.MemberID == req.PayerID {
			continue
		}
		pct := s.Percentage
		splits = append(splits, AllocatedSplit{
			MemberID:   s.MemberID,
			Amount:     share(req.Amount, pct),
			Percentage: &pct,
		})
	}
	return splits, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func sumSplits(splits []AllocatedSplit) float64 {
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	return total
}

func TestAllocateSplits(t *testing.T) {
	members := []string{"alice", "bob", "carol"}

	tests := []struct {
		name         string
		req          ExpenseRequest
		members      []string
		wantErr      error
		validateFunc func(t *testing.T, splits []AllocatedSplit)
	}{
		{
			name:    "equal split excludes payer",
			req:     ExpenseRequest{Amount: 90, PayerID: "alice", SplitType: models.SplitEqual},
			members: members,
			validateFunc: func(t *testing.T, splits []AllocatedSplit) {
				if len(splits) != 2 {
					t.Fatalf("expected 2 splits, got %d", len(splits))
				}
				for _, s := range splits {
					if s.MemberID == "alice" {
						t.Error("payer must not receive a split")
					}
					if math.Abs(s.Amount-30.0) > 0.001 {
						t.Errorf("%s amount = %v, want 30.0", s.MemberID, s.Amount)
					}
					if s.Percentage != nil {
						t.Errorf("%s: equal split should not carry a percentage", s.MemberID)
					}
				}
			},
		},
		{
			name:    "equal split rounds each share without redistribution",
			req:     ExpenseRequest{Amount: 100, PayerID: "bob", SplitType: models.SplitEqual},
			members: members,
			validateFunc: func(t *testing.T, splits []AllocatedSplit) {
				// 100 / 3 = 33.333... -> 33.33 each, payer covers 33.34 implicitly
				for _, s := range splits {
					if s.Amount != 33.33 {
						t.Errorf("%s amount = %v, want 33.33", s.MemberID, s.Amount)
					}
				}
				if math.Abs(sumSplits(splits)-66.66) > 0.001 {
					t.Errorf("sum = %v, want 66.66", sumSplits(splits))
				}
			},
		},
		{
			name: "equal split ignores supplied shares",
			req: ExpenseRequest{
				Amount: 20, PayerID: "alice", SplitType: models.SplitEqual,
				Shares: []PercentageShare{{MemberID: "stranger", Percentage: 5}},
			},
			members: []string{"alice", "bob"},
			validateFunc: func(t *testing.T, splits []AllocatedSplit) {
				if len(splits) != 1 || splits[0].MemberID != "bob" || splits[0].Amount != 10 {
					t.Errorf("unexpected splits: %+v", splits)
				}
			},
		},
		{
			name: "percentage split",
			req: ExpenseRequest{
				Amount: 50, PayerID: "bob", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "alice", Percentage: 60}, {MemberID: "carol", Percentage: 40}},
			},
			members: members,
			validateFunc: func(t *testing.T, splits []AllocatedSplit) {
				if len(splits) != 2 {
					t.Fatalf("expected 2 splits, got %d", len(splits))
				}
				if splits[0].MemberID != "alice" || splits[0].Amount != 30 {
					t.Errorf("first split = %+v, want alice 30", splits[0])
				}
				if splits[1].MemberID != "carol" || splits[1].Amount != 20 {
					t.Errorf("second split = %+v, want carol 20", splits[1])
				}
				if splits[0].Percentage == nil || *splits[0].Percentage != 60 {
					t.Errorf("alice percentage = %v, want 60", splits[0].Percentage)
				}
			},
		},
		{
			name: "percentage split drops payer entry",
			req: ExpenseRequest{
				Amount: 80, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{
					{MemberID: "alice", Percentage: 50},
					{MemberID: "bob", Percentage: 25},
					{MemberID: "carol", Percentage: 25},
				},
			},
			members: members,
			validateFunc: func(t *testing.T, splits []AllocatedSplit) {
				if len(splits) != 2 {
					t.Fatalf("expected 2 splits, got %d", len(splits))
				}
				if math.Abs(sumSplits(splits)-40.0) > 0.001 {
					t.Errorf("sum = %v, want 40.0", sumSplits(splits))
				}
			},
		},
		{
			name: "percentage within tolerance is accepted",
			req: ExpenseRequest{
				Amount: 10, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: 33.33}, {MemberID: "carol", Percentage: 66.675}},
			},
			members: members,
		},
		{
			name: "percentage mismatch",
			req: ExpenseRequest{
				Amount: 50, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: 60}, {MemberID: "carol", Percentage: 30}},
			},
			members: members,
			wantErr: ErrPercentageMismatch,
		},
		{
			name: "percentage with no shares is a mismatch",
			req: ExpenseRequest{
				Amount: 50, PayerID: "alice", SplitType: models.SplitPercentage,
			},
			members: members,
			wantErr: ErrPercentageMismatch,
		},
		{
			name:    "payer not a member",
			req:     ExpenseRequest{Amount: 10, PayerID: "mallory", SplitType: models.SplitEqual},
			members: members,
			wantErr: ErrInvalidPayer,
		},
		{
			name: "split member not in group",
			req: ExpenseRequest{
				Amount: 50, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: 50}, {MemberID: "mallory", Percentage: 50}},
			},
			members: members,
			wantErr: ErrInvalidSplitMember,
		},
		{
			name:    "zero amount",
			req:     ExpenseRequest{Amount: 0, PayerID: "alice", SplitType: models.SplitEqual},
			members: members,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown split type",
			req:     ExpenseRequest{Amount: 10, PayerID: "alice", SplitType: "exact"},
			members: members,
			wantErr: ErrUnknownSplitType,
		},
		{
			name:    "NaN amount",
			req:     ExpenseRequest{Amount: math.NaN(), PayerID: "alice", SplitType: models.SplitEqual},
			members: members,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "infinite amount",
			req:     ExpenseRequest{Amount: math.Inf(1), PayerID: "alice", SplitType: models.SplitEqual},
			members: members,
			wantErr: ErrInvalidAmount,
		},
		{
			name: "infinite percentage",
			req: ExpenseRequest{
				Amount: 10, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: math.Inf(1)}},
			},
			members: members,
			wantErr: ErrPercentageMismatch,
		},
		{
			name: "NaN percentage",
			req: ExpenseRequest{
				Amount: 10, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: math.NaN()}, {MemberID: "carol", Percentage: 100}},
			},
			members: members,
			wantErr: ErrPercentageMismatch,
		},
		{
			name: "member listed twice",
			req: ExpenseRequest{
				Amount: 10, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: 50}, {MemberID: "bob", Percentage: 50}},
			},
			members: members,
			wantErr: ErrInvalidSplitMember,
		},
		{
			name: "bad sum reported before unknown member",
			req: ExpenseRequest{
				Amount: 10, PayerID: "alice", SplitType: models.SplitPercentage,
				Shares: []PercentageShare{{MemberID: "bob", Percentage: 50}, {MemberID: "mallory", Percentage: 20}},
			},
			members: members,
			wantErr: ErrPercentageMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := AllocateSplits(tt.req, tt.members)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AllocateSplits() error = %v, want %v", err, tt.wantErr)
				}
				if splits != nil {
					t.Errorf("expected no splits on error, got %+v", splits)
				}
				return
			}
			if err != nil {
				t.Fatalf("AllocateSplits() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestAllocateSplits_EqualSumProperty(t *testing.T) {
	amounts := []float64{0.01, 1, 9.99, 10, 33.34, 100, 250.75, 1234.56}
	for n := 2; n <= 7; n++ {
		members := make([]string, n)
		for i := range members {
			members[i] = string(rune('a' + i))
		}
		for _, amount := range amounts {
			splits, err := AllocateSplits(ExpenseRequest{Amount: amount, PayerID: "a", SplitType: models.SplitEqual}, members)
			if err != nil {
				t.Fatalf("n=%d amount=%v: %v", n, amount, err)
			}
			if len(splits) != n-1 {
				t.Errorf("n=%d amount=%v: got %d splits, want %d", n, amount, len(splits), n-1)
			}
			want := Round2(amount/float64(n)) * float64(n-1)
			if math.Abs(sumSplits(splits)-want) > 1e-6 {
				t.Errorf("n=%d amount=%v: sum = %v, want %v", n, amount, sumSplits(splits), want)
			}
		}
	}
}

func TestAllocateSplits_PercentageSumProperty(t *testing.T) {
	cases := []struct {
		amount float64
		pcts   []float64
	}{
		{100, []float64{0, 50, 50}},
		{99.99, []float64{0, 33.33, 33.33, 33.34}},
		{17.5, []float64{0, 12.5, 12.5, 75}},
		{1000.01, []float64{0, 10, 20, 30, 40}},
	}
	for _, c := range cases {
		members := make([]string, len(c.pcts))
		shares := make([]PercentageShare, len(c.pcts))
		for i, p := range c.pcts {
			members[i] = string(rune('a' + i))
			shares[i] = PercentageShare{MemberID: members[i], Percentage: p}
		}
		splits, err := AllocateSplits(ExpenseRequest{
			Amount: c.amount, PayerID: "a", SplitType: models.SplitPercentage, Shares: shares,
		}, members)
		if err != nil {
			t.Fatalf("amount=%v: %v", c.amount, err)
		}
		bound := float64(len(splits))*0.01 + 1e-9
		if diff := math.Abs(sumSplits(splits) - c.amount); diff > bound {
			t.Errorf("amount=%v: sum = %v, off by %v (bound %v)", c.amount, sumSplits(splits), diff, bound)
		}
	}
}

func TestAllocateSplits_PercentageBounds(t *testing.T) {
	members := []string{"a", "b", "c"}
	tests := []struct {
		second  float64
		wantErr bool
	}{
		{49.99, false}, // 99.99
		{50.01, false}, // 100.01
		{49.98, true},  // 99.98
		{50.02, true},  // 100.02
	}
	for _, tt := range tests {
		_, err := AllocateSplits(ExpenseRequest{
			Amount: 10, PayerID: "a", SplitType: models.SplitPercentage,
			Shares: []PercentageShare{{MemberID: "b", Percentage: 50}, {MemberID: "c", Percentage: tt.second}},
		}, members)
		if (err != nil) != tt.wantErr {
			t.Errorf("second=%v: error = %v, wantErr %v", tt.second, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrPercentageMismatch) {
			t.Errorf("second=%v: error = %v, want ErrPercentageMismatch", tt.second, err)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{30, 30},
		{33.333333, 33.33},
		{0.125, 0.13},
		{2.675, 2.68},
		{-1.005, -1.01},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := Round2(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Round2(NaN) = %v, want NaN", got)
	}
	if got := Round2(math.Inf(-1)); !math.IsInf(got, -1) {
		t.Errorf("Round2(-Inf) = %v, want -Inf", got)
	}
}

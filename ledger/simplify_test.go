package ledger

import (
	"reflect"
	"testing"
)

func TestSimplifyNetsMutualDebt(t *testing.T) {
	matrix := make(Matrix)
	matrix.Add("a", "b", MoneyFromFloat(100.00))
	matrix.Add("b", "a", MoneyFromFloat(40.00))

	balances := Simplify(matrix)
	want := []Balance{{DebtorID: "a", CreditorID: "b", Amount: MoneyFromFloat(60.00)}}
	if !reflect.DeepEqual(balances, want) {
		t.Errorf("got %+v, want %+v", balances, want)
	}
}

func TestSimplifyExactSettlementEmitsNothing(t *testing.T) {
	// The full flow of recording a payment that clears the outstanding net:
	// 100 owed, 40 owed back, 60 paid across.
	snap := snapshotWithMembers("a", "b")
	snap.Expenses = []Expense{
		{ID: "e1", PayerID: "b", Amount: MoneyFromFloat(200.00), Type: SplitEqual, Target: TargetAll},
		{ID: "e2", PayerID: "a", Amount: MoneyFromFloat(80.00), Type: SplitEqual, Target: TargetAll},
	}
	snap.Payments = []Payment{
		{ID: "p1", FromID: "a", ToID: "b", Amount: MoneyFromFloat(60.00)},
	}

	matrix, _ := Aggregate(snap)
	if got := matrix.Get("a", "b"); got != MoneyFromFloat(40.00) {
		t.Fatalf("a->b: expected 40.00, got %s", got)
	}
	if got := matrix.Get("b", "a"); got != MoneyFromFloat(40.00) {
		t.Fatalf("b->a: expected 40.00, got %s", got)
	}

	if balances := Simplify(matrix); len(balances) != 0 {
		t.Errorf("settled pair must produce no balance, got %+v", balances)
	}
}

func TestSimplifySlackThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name string
		net  Money
		emit bool
	}{
		{"one satang", 1, false},
		{"two satang", 2, true},
		{"zero", 0, false},
		{"negative", -500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matrix := make(Matrix)
			matrix.Add("a", "b", tt.net)

			balances := Simplify(matrix)
			if tt.emit && len(balances) != 1 {
				t.Errorf("expected a balance for net %d, got %+v", tt.net, balances)
			}
			if !tt.emit && len(balances) != 0 {
				t.Errorf("expected nothing for net %d, got %+v", tt.net, balances)
			}
		})
	}
}

func TestSimplifyThreeCycleStays(t *testing.T) {
	// Pairwise netting only: a 3-cycle is not collapsed.
	matrix := make(Matrix)
	matrix.Add("a", "b", MoneyFromFloat(10.00))
	matrix.Add("b", "c", MoneyFromFloat(10.00))
	matrix.Add("c", "a", MoneyFromFloat(10.00))

	balances := Simplify(matrix)
	if len(balances) != 3 {
		t.Fatalf("expected the 3-cycle to survive, got %+v", balances)
	}
}

func TestSimplifyDeterministicOrder(t *testing.T) {
	matrix := make(Matrix)
	matrix.Add("c", "a", MoneyFromFloat(5.00))
	matrix.Add("a", "d", MoneyFromFloat(7.00))
	matrix.Add("a", "b", MoneyFromFloat(3.00))

	balances := Simplify(matrix)
	want := []Balance{
		{DebtorID: "a", CreditorID: "b", Amount: MoneyFromFloat(3.00)},
		{DebtorID: "a", CreditorID: "d", Amount: MoneyFromFloat(7.00)},
		{DebtorID: "c", CreditorID: "a", Amount: MoneyFromFloat(5.00)},
	}
	if !reflect.DeepEqual(balances, want) {
		t.Errorf("got %+v, want %+v", balances, want)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	matrix := make(Matrix)
	matrix.Add("a", "b", MoneyFromFloat(100.00))
	matrix.Add("b", "a", MoneyFromFloat(40.00))
	matrix.Add("c", "b", MoneyFromFloat(12.34))
	matrix.Add("a", "c", MoneyFromFloat(0.01))

	first := Simplify(matrix)

	rebuilt := make(Matrix)
	for _, b := range first {
		rebuilt.Add(b.DebtorID, b.CreditorID, b.Amount)
	}
	second := Simplify(rebuilt)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("simplify not idempotent: first %+v, second %+v", first, second)
	}
}

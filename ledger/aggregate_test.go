package ledger

import "testing"

func TestAggregatePayerNeverOwesThemselves(t *testing.T) {
	snap := snapshotWithMembers("a", "b", "c")
	snap.Expenses = []Expense{{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(300.00),
		Type:    SplitEqual,
		Target:  TargetAll,
	}}

	matrix, diags := Aggregate(snap)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if got := matrix.Get("a", "a"); got != 0 {
		t.Errorf("payer owes themselves %s", got)
	}
	if got := matrix.Get("b", "a"); got != MoneyFromFloat(100.00) {
		t.Errorf("b owes a %s, expected 100.00", got)
	}
	if got := matrix.Get("c", "a"); got != MoneyFromFloat(100.00) {
		t.Errorf("c owes a %s, expected 100.00", got)
	}
}

func TestAggregateAccumulatesAcrossExpenses(t *testing.T) {
	snap := snapshotWithMembers("a", "b")
	snap.Expenses = []Expense{
		{ID: "e1", PayerID: "a", Amount: MoneyFromFloat(10.00), Type: SplitEqual, Target: TargetAll},
		{ID: "e2", PayerID: "a", Amount: MoneyFromFloat(30.00), Type: SplitEqual, Target: TargetAll},
		{ID: "e3", PayerID: "b", Amount: MoneyFromFloat(8.00), Type: SplitEqual, Target: TargetAll},
	}

	matrix, _ := Aggregate(snap)
	if got := matrix.Get("b", "a"); got != MoneyFromFloat(20.00) {
		t.Errorf("b->a: expected 20.00, got %s", got)
	}
	if got := matrix.Get("a", "b"); got != MoneyFromFloat(4.00) {
		t.Errorf("a->b: expected 4.00, got %s", got)
	}
}

func TestAggregatePaymentsSubtract(t *testing.T) {
	snap := snapshotWithMembers("a", "b")
	snap.Expenses = []Expense{
		{ID: "e1", PayerID: "b", Amount: MoneyFromFloat(200.00), Type: SplitEqual, Target: TargetAll},
	}
	snap.Payments = []Payment{
		{ID: "p1", FromID: "a", ToID: "b", Amount: MoneyFromFloat(60.00)},
	}

	matrix, diags := Aggregate(snap)
	if got := matrix.Get("a", "b"); got != MoneyFromFloat(40.00) {
		t.Errorf("a->b after payment: expected 40.00, got %s", got)
	}
	if len(diags) != 0 {
		t.Errorf("payment within debt should not be flagged: %+v", diags)
	}
}

func TestAggregateUnmatchedPayment(t *testing.T) {
	// A payment with no prior debt still subtracts and drives the cell
	// negative; it is flagged, not rejected.
	snap := snapshotWithMembers("a", "b")
	snap.Payments = []Payment{
		{ID: "p1", FromID: "a", ToID: "b", Amount: MoneyFromFloat(25.00)},
	}

	matrix, diags := Aggregate(snap)
	if got := matrix.Get("a", "b"); got != MoneyFromFloat(-25.00) {
		t.Errorf("expected -25.00, got %s", got)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnmatchedPayment || diags[0].PaymentID != "p1" {
		t.Errorf("expected UNMATCHED_PAYMENT for p1, got %+v", diags)
	}
}

func TestAggregateEmptySplitTargetDiagnostic(t *testing.T) {
	snap := snapshotWithMembers("a", "b")
	snap.GroupMembers = map[string][]Member{"g1": nil}
	snap.Expenses = []Expense{{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(75.00),
		Type:    SplitEqual,
		Target:  TargetGroup,
		GroupID: "g1",
	}}

	matrix, diags := Aggregate(snap)
	if len(matrix) != 0 {
		t.Errorf("empty-target expense must not touch the matrix: %+v", matrix)
	}
	if len(diags) != 1 || diags[0].Kind != DiagEmptySplitTarget || diags[0].ExpenseID != "e1" {
		t.Errorf("expected EMPTY_SPLIT_TARGET for e1, got %+v", diags)
	}
}

func TestAggregateCustomSharesExcludePayerEntry(t *testing.T) {
	snap := snapshotWithMembers("a", "b", "c")
	snap.Expenses = []Expense{{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(90.00),
		Type:    SplitExact,
		Target:  TargetCustom,
		Shares: []Share{
			{MemberID: "a", Owes: MoneyFromFloat(30.00)},
			{MemberID: "b", Owes: MoneyFromFloat(25.00)},
			{MemberID: "c", Owes: MoneyFromFloat(35.00)},
		},
	}}

	matrix, _ := Aggregate(snap)
	if got := matrix.Get("a", "a"); got != 0 {
		t.Errorf("payer's own share charged: %s", got)
	}
	if got := matrix.Get("b", "a"); got != MoneyFromFloat(25.00) {
		t.Errorf("b->a: expected 25.00, got %s", got)
	}
	if got := matrix.Get("c", "a"); got != MoneyFromFloat(35.00) {
		t.Errorf("c->a: expected 35.00, got %s", got)
	}
}

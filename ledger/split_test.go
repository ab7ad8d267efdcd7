package ledger

import "testing"

func snapshotWithMembers(ids ...string) Snapshot {
	snap := Snapshot{GroupMembers: map[string][]Member{}}
	for _, id := range ids {
		snap.Members = append(snap.Members, Member{ID: id, DisplayName: "user " + id})
	}
	return snap
}

func TestResolveSharesEqualAll(t *testing.T) {
	snap := snapshotWithMembers("a", "b", "c")
	exp := Expense{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(300.00),
		Type:    SplitEqual,
		Target:  TargetAll,
	}

	shares := ResolveShares(exp, snap)
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	for _, s := range shares {
		if s.Owes != MoneyFromFloat(100.00) {
			t.Errorf("member %s: expected 100.00, got %s", s.MemberID, s.Owes)
		}
	}
}

func TestResolveSharesEqualRoundingSlack(t *testing.T) {
	// amount / n never redistributes the remainder, but the sum of shares
	// must stay within n * 0.01 of the total.
	tests := []struct {
		name    string
		amount  float64
		members int
	}{
		{"100 over 3", 100.00, 3},
		{"0.10 over 3", 0.10, 3},
		{"999.99 over 7", 999.99, 7},
		{"55.55 over 6", 55.55, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.members)
			for i := range ids {
				ids[i] = string(rune('a' + i))
			}
			snap := snapshotWithMembers(ids...)
			exp := Expense{
				ID:      "e1",
				PayerID: ids[0],
				Amount:  MoneyFromFloat(tt.amount),
				Type:    SplitEqual,
				Target:  TargetAll,
			}

			shares := ResolveShares(exp, snap)
			if len(shares) != tt.members {
				t.Fatalf("expected %d shares, got %d", tt.members, len(shares))
			}

			var sum Money
			for _, s := range shares {
				sum += s.Owes
			}
			diff := sum - exp.Amount
			if diff < 0 {
				diff = -diff
			}
			if diff > Money(tt.members) {
				t.Errorf("share sum %s drifts more than %d satang from %s", sum, tt.members, exp.Amount)
			}
		})
	}
}

func TestResolveSharesGroupUsesCurrentMembership(t *testing.T) {
	snap := snapshotWithMembers("a", "b", "c", "d")
	snap.GroupMembers["g1"] = []Member{{ID: "a"}, {ID: "b"}}

	exp := Expense{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(80.00),
		Type:    SplitEqual,
		Target:  TargetGroup,
		GroupID: "g1",
	}

	shares := ResolveShares(exp, snap)
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	if shares[0].Owes != MoneyFromFloat(40.00) {
		t.Errorf("expected 40.00 per member, got %s", shares[0].Owes)
	}

	// Same expense, the group grew afterwards: shares follow the new roster.
	snap.GroupMembers["g1"] = append(snap.GroupMembers["g1"], Member{ID: "c"}, Member{ID: "d"})
	shares = ResolveShares(exp, snap)
	if len(shares) != 4 {
		t.Fatalf("after growth expected 4 shares, got %d", len(shares))
	}
	if shares[0].Owes != MoneyFromFloat(20.00) {
		t.Errorf("after growth expected 20.00 per member, got %s", shares[0].Owes)
	}
}

func TestResolveSharesEmptyGroup(t *testing.T) {
	snap := snapshotWithMembers("a", "b")
	snap.GroupMembers["g1"] = nil

	exp := Expense{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(50.00),
		Target:  TargetGroup,
		GroupID: "g1",
	}

	if shares := ResolveShares(exp, snap); len(shares) != 0 {
		t.Fatalf("expected no shares for empty group, got %d", len(shares))
	}
}

func TestResolveSharesCustomFrozen(t *testing.T) {
	// CUSTOM shares come back verbatim: no recomputation against current
	// membership and no validation that they sum to the expense amount.
	snap := snapshotWithMembers("a", "b", "c", "d", "e")
	frozen := []Share{
		{MemberID: "a", Owes: MoneyFromFloat(10.00)},
		{MemberID: "b", Owes: MoneyFromFloat(99.99)},
	}
	exp := Expense{
		ID:      "e1",
		PayerID: "a",
		Amount:  MoneyFromFloat(50.00),
		Type:    SplitExact,
		Target:  TargetCustom,
		Shares:  frozen,
	}

	shares := ResolveShares(exp, snap)
	if len(shares) != 2 {
		t.Fatalf("expected frozen shares untouched, got %d entries", len(shares))
	}
	if shares[1].MemberID != "b" || shares[1].Owes != MoneyFromFloat(99.99) {
		t.Errorf("frozen share altered: %+v", shares[1])
	}
}

package ledger

// ResolveShares turns an expense's split configuration into per-member
// shares against the snapshot's current membership.
//
// CUSTOM expenses return their frozen shares verbatim; the stored amounts
// are trusted as-is and never rebalanced against the expense total. ALL and
// GROUP expenses are recomputed from current membership on every call, so a
// member who joins or leaves after the expense was recorded changes what the
// expense resolves to.
//
// The payer is not excluded here; aggregation skips the payer's own share.
// An empty resolved membership yields an empty share list.
func ResolveShares(exp Expense, snap Snapshot) []Share {
	if exp.Target == TargetCustom {
		return exp.Shares
	}

	var members []Member
	switch exp.Target {
	case TargetAll:
		members = snap.Members
	case TargetGroup:
		members = snap.GroupMembers[exp.GroupID]
	}

	if len(members) == 0 {
		return nil
	}

	// EQUAL is the only defined split type for dynamic targets; EXACT
	// amounts only exist as frozen CUSTOM shares.
	perMember := exp.Amount.DivideEqually(len(members))

	shares := make([]Share, 0, len(members))
	for _, m := range members {
		shares = append(shares, Share{MemberID: m.ID, Owes: perMember})
	}
	return shares
}

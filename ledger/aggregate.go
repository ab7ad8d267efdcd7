package ledger

// Aggregate folds every expense and payment in the snapshot into the signed
// pairwise debt matrix.
//
// For each expense, every resolved share except the payer's own adds
// share.Owes to matrix[member][payer]. A member never owes themselves.
//
// Payments subtract from matrix[from][to] unconditionally: there is no check
// that a matching debt exists or that the amount fits, so cells can end up
// zero or negative. That is recorded data, not an error; a diagnostic is
// emitted so callers can surface it.
func Aggregate(snap Snapshot) (Matrix, []Diagnostic) {
	matrix := make(Matrix)
	var diags []Diagnostic

	for _, exp := range snap.Expenses {
		shares := ResolveShares(exp, snap)
		if len(shares) == 0 {
			diags = append(diags, Diagnostic{Kind: DiagEmptySplitTarget, ExpenseID: exp.ID})
			continue
		}
		for _, share := range shares {
			if share.MemberID == exp.PayerID {
				continue
			}
			matrix.Add(share.MemberID, exp.PayerID, share.Owes)
		}
	}

	for _, pay := range snap.Payments {
		if matrix.Get(pay.FromID, pay.ToID) < pay.Amount {
			diags = append(diags, Diagnostic{Kind: DiagUnmatchedPayment, PaymentID: pay.ID})
		}
		matrix.Add(pay.FromID, pay.ToID, -pay.Amount)
	}

	return matrix, diags
}

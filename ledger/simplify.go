package ledger

import "sort"

// nettingSlack is one satang: a net debt must strictly exceed it to be worth
// emitting, which absorbs the per-member rounding slack of equal splits.
const nettingSlack Money = 1

// Simplify nets the matrix down to at most one directional balance per
// unordered pair, oriented toward the net creditor.
//
// Netting is strictly pairwise: a cycle across three or more members is left
// as its individual balances, and no debt is routed through third parties.
// The result is sorted by debtor id then creditor id so output is
// reproducible regardless of map iteration order.
func Simplify(matrix Matrix) []Balance {
	var balances []Balance
	for debtor, row := range matrix {
		for creditor, amount := range row {
			if debtor == creditor {
				continue
			}
			net := amount - matrix.Get(creditor, debtor)
			if net <= nettingSlack {
				continue
			}
			balances = append(balances, Balance{
				DebtorID:   debtor,
				CreditorID: creditor,
				Amount:     net,
			})
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].DebtorID != balances[j].DebtorID {
			return balances[i].DebtorID < balances[j].DebtorID
		}
		return balances[i].CreditorID < balances[j].CreditorID
	})
	return balances
}

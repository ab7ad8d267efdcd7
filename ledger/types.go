package ledger

// SplitType says how an expense's cost is divided.
type SplitType string

// SplitTarget says which member set the cost is divided across.
type SplitTarget string

const (
	SplitEqual SplitType = "EQUAL"
	SplitExact SplitType = "EXACT"

	TargetAll    SplitTarget = "ALL"
	TargetGroup  SplitTarget = "GROUP"
	TargetCustom SplitTarget = "CUSTOM"
)

// Member is an opaque participant key plus a display label. The user
// directory owns the rest of the identity.
type Member struct {
	ID          string
	DisplayName string
}

// Expense is one recorded cost, read-only to the engine.
//
// Exactly one resolution strategy applies, selected by SplitTarget: ALL and
// GROUP resolve dynamically against the snapshot's current membership every
// time the expense is read, CUSTOM uses the Shares frozen at creation time.
type Expense struct {
	ID      string
	PayerID string
	Amount  Money
	Type    SplitType
	Target  SplitTarget

	// GroupID is set iff Target == TargetGroup.
	GroupID string

	// Shares is set iff Target == TargetCustom.
	Shares []Share
}

// Payment is a recorded settlement transfer, read-only to the engine.
type Payment struct {
	ID     string
	FromID string
	ToID   string
	Amount Money
}

// Share is one member's portion of an expense.
type Share struct {
	MemberID string `json:"userId"`
	Owes     Money  `json:"owesAmount"`
}

// Snapshot is a fully materialized view of one trip's state. The caller is
// responsible for loading it consistently; the engine never goes back to
// storage.
type Snapshot struct {
	// Members is the trip's current membership.
	Members []Member

	// GroupMembers maps sub-group id to its current membership.
	GroupMembers map[string][]Member

	Expenses []Expense
	Payments []Payment
}

// Matrix is the signed pairwise debt accumulator: Matrix[debtor][creditor].
// Cells can be zero or negative after payments are applied.
type Matrix map[string]map[string]Money

// Add accumulates amount onto the (debtor, creditor) cell.
func (m Matrix) Add(debtor, creditor string, amount Money) {
	row, ok := m[debtor]
	if !ok {
		row = make(map[string]Money)
		m[debtor] = row
	}
	row[creditor] += amount
}

// Get returns the cell value, zero when absent.
func (m Matrix) Get(debtor, creditor string) Money {
	return m[debtor][creditor]
}

// Balance is one netted debt: debtor owes creditor amount, always positive.
type Balance struct {
	DebtorID   string `json:"fromUserId"`
	CreditorID string `json:"toUserId"`
	Amount     Money  `json:"amount"`
}

// DiagnosticKind classifies ledger conditions that the math tolerates but
// callers may want to surface.
type DiagnosticKind string

const (
	// DiagEmptySplitTarget marks an expense whose split target resolved to
	// zero members, so it contributes nothing to any balance.
	DiagEmptySplitTarget DiagnosticKind = "EMPTY_SPLIT_TARGET"

	// DiagUnmatchedPayment marks a payment that exceeds the recorded debt
	// between its pair at the time it is applied. The subtraction still
	// happens.
	DiagUnmatchedPayment DiagnosticKind = "UNMATCHED_PAYMENT"
)

// Diagnostic reports one tolerated inconsistency found during aggregation.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`

	// ExpenseID is set for DiagEmptySplitTarget.
	ExpenseID string `json:"expenseId,omitempty"`

	// PaymentID is set for DiagUnmatchedPayment.
	PaymentID string `json:"paymentId,omitempty"`
}

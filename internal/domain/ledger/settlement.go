package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OutstandingBill is one open bill for an account: the invoiced amount,
// what has been settled against it so far, and the remainder.
type OutstandingBill struct {
	BillNumber  string          `json:"bill_number"`
	BillDate    time.Time       `json:"bill_date"`
	Amount      decimal.Decimal `json:"amount"`
	Settled     decimal.Decimal `json:"settled"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// BuildOutstandingBills groups bill references by bill number and derives
// the open amount per bill. Fully settled bills (outstanding within
// BalanceTolerance) are dropped. Groups without a NEW_REF row come from
// settlements recorded before bill tracking existed; they are skipped, not
// treated as errors.
func BuildOutstandingBills(refs []BillReference) []OutstandingBill {
	type group struct {
		newRef  *BillReference
		settled decimal.Decimal
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for i := range refs {
		ref := &refs[i]
		g, ok := groups[ref.BillNumber]
		if !ok {
			g = &group{settled: decimal.Zero}
			groups[ref.BillNumber] = g
			order = append(order, ref.BillNumber)
		}
		switch ref.RefType {
		case RefTypeNew:
			g.newRef = ref
		case RefTypeAgainst:
			g.settled = g.settled.Add(ref.Amount)
		}
	}

	bills := make([]OutstandingBill, 0, len(groups))
	for _, billNumber := range order {
		g := groups[billNumber]
		if g.newRef == nil {
			continue
		}
		outstanding := g.newRef.Amount.Sub(g.settled)
		if outstanding.LessThanOrEqual(BalanceTolerance) {
			continue
		}
		bills = append(bills, OutstandingBill{
			BillNumber:  billNumber,
			BillDate:    g.newRef.Date,
			Amount:      g.newRef.Amount,
			Settled:     g.settled,
			Outstanding: outstanding,
		})
	}

	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].BillDate.Before(bills[j].BillDate)
	})
	return bills
}

// SortRefsByDate orders bill references by date ascending, preserving
// insertion order for equal dates. Used for the audit history view, which
// returns every row unfiltered.
func SortRefsByDate(refs []BillReference) []BillReference {
	sorted := make([]BillReference, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

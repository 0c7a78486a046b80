package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/costsplits/internal/models"
)

// SettleTolerance is the remainder below which a balance counts as settled.
// It absorbs the rounding error accumulated by the proportional divisions in
// ComputeSummary.
const SettleTolerance = 1e-8

// Summary holds per-participant totals, indexed like the participant list.
type Summary struct {
	Paid []float64 // Total fronted by each participant
	Owed []float64 // Total share of costs for each participant
	Net  []float64 // Paid - Owed: positive = owed money, negative = owes money
}

// Settlement is a suggested direct payment: From owes To Amount.
// Settlements are derived on every call and never stored.
type Settlement struct {
	From   int     `json:"from"`   // Debtor index
	To     int     `json:"to"`     // Creditor index
	Amount float64 `json:"amount"` // Always positive
}

// ComputeSummary computes what every participant paid, owes and nets across
// all transactions.
//
// Algorithm:
//   - The payer of each transaction is credited its full cost
//   - Each transaction's cost is allocated by TransactionShares
//   - net = paid - owed
//
// A payer index outside the participant list is not credited.
func ComputeSummary(people []string, transactions []models.Transaction) Summary {
	n := len(people)
	s := Summary{
		Paid: make([]float64, n),
		Owed: make([]float64, n),
		Net:  make([]float64, n),
	}

	for _, t := range transactions {
		if t.Payer >= 0 && t.Payer < n {
			s.Paid[t.Payer] += t.Cost
		}
		for i, share := range TransactionShares(n, t) {
			s.Owed[i] += share
		}
	}

	for i := range people {
		s.Net[i] = s.Paid[i] - s.Owed[i]
	}
	return s
}

// ComputeSettlements turns the net balances of the transactions into a short
// list of transfers that brings every balance to zero.
func ComputeSettlements(people []string, transactions []models.Transaction) []Settlement {
	return Settle(ComputeSummary(people, transactions).Net)
}

// balance is a creditor's or debtor's outstanding amount.
type balance struct {
	index  int
	amount float64
}

// Settle matches debtors with creditors given net balances.
//
// Greedy algorithm: creditors and debtors are each sorted by outstanding
// amount, largest first (ties keep participant order). The largest debtor pays
// the largest creditor the smaller of their two amounts; whichever side drops
// to within SettleTolerance moves on to the next. This yields at most
// len(creditors)+len(debtors)-1 transfers.
func Settle(net []float64) []Settlement {
	var creditors, debtors []balance
	for i, n := range net {
		if n > 0 {
			creditors = append(creditors, balance{index: i, amount: n})
		} else if n < 0 {
			debtors = append(debtors, balance{index: i, amount: -n})
		}
	}
	slices.SortFunc(creditors, byAmountDesc)
	slices.SortFunc(debtors, byAmountDesc)

	var settlements []Settlement
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		credit := &creditors[ci]
		debt := &debtors[di]

		amount := min(credit.amount, debt.amount)
		settlements = append(settlements, Settlement{
			From:   debt.index,
			To:     credit.index,
			Amount: amount,
		})

		credit.amount -= amount
		debt.amount -= amount

		// Negated comparisons so a NaN remainder (from infinite inputs)
		// still advances the pointer.
		if !(credit.amount > SettleTolerance) {
			ci++
		}
		if !(debt.amount > SettleTolerance) {
			di++
		}
	}
	return settlements
}

func byAmountDesc(a, b balance) int {
	if c := cmp.Compare(b.amount, a.amount); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}

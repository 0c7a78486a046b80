package calculator

import (
	"strconv"

	"github.com/mmynk/costsplits/internal/models"
)

// TransactionDetail is the per-participant breakdown of one transaction.
type TransactionDetail struct {
	Index  int     // Position in the transaction list
	Name   string  // Transaction name, or "Transaction N" when unnamed
	Cost   float64 // Transaction cost
	Shares []float64
	Items  []ItemDetail // Empty unless the transaction is itemized
}

// ItemDetail is the breakdown of one item of an itemized transaction.
type ItemDetail struct {
	Label  string  // Item label, or "Item N" when unlabeled
	Cost   float64 // Rescaled cost (face value × transaction scale)
	Shares []float64
}

// Details is the split breakdown for all transactions.
type Details struct {
	Transactions []TransactionDetail
	Totals       []float64 // Column sums of the transaction shares
}

// SplitDetails breaks every transaction down into what each participant owes,
// including each item's share for itemized transactions.
func SplitDetails(people []string, transactions []models.Transaction) Details {
	n := len(people)
	d := Details{
		Transactions: make([]TransactionDetail, 0, len(transactions)),
		Totals:       make([]float64, n),
	}

	for ti, t := range transactions {
		detail := TransactionDetail{
			Index:  ti,
			Name:   TransactionName(t, ti),
			Cost:   t.Cost,
			Shares: TransactionShares(n, t),
		}
		if t.Itemized() {
			costs, shares := ItemShares(n, t)
			for ii, item := range t.Items {
				detail.Items = append(detail.Items, ItemDetail{
					Label:  ItemLabel(item, ii),
					Cost:   costs[ii],
					Shares: shares[ii],
				})
			}
		}
		for i, share := range detail.Shares {
			d.Totals[i] += share
		}
		d.Transactions = append(d.Transactions, detail)
	}
	return d
}

// TransactionName returns the transaction's name or a positional fallback.
func TransactionName(t models.Transaction, index int) string {
	if t.Name != "" {
		return t.Name
	}
	return "Transaction " + strconv.Itoa(index+1)
}

// ItemLabel returns the item's label or a positional fallback.
func ItemLabel(item models.Item, index int) string {
	if item.Label != "" {
		return item.Label
	}
	return "Item " + strconv.Itoa(index+1)
}

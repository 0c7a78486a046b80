// Package calculator computes what each participant paid and owes across a
// list of transactions, and how to settle the resulting balances.
//
// Every function in this package is pure: it reads its arguments, never
// modifies them, and keeps no state between calls. Participants are referenced
// by index; callers must pass transactions whose payer and splits indices match
// the participant list they pass alongside.
package calculator

import "github.com/mmynk/costsplits/internal/models"

// TransactionShares computes how much each of n participants owes for a single
// transaction.
//
// For a plain transaction each participant owes cost × (weight / sum of weights).
// For an itemized transaction the item costs are first rescaled by
// cost / (sum of item costs) so that they add up to the transaction cost, then
// each item is split by its own weights.
//
// A zero weight total (or a zero item total) contributes nothing: the payer
// simply covers that amount alone. Weights past index n-1 are ignored.
func TransactionShares(n int, t models.Transaction) []float64 {
	shares := make([]float64, n)
	if t.Itemized() {
		scale := itemScale(t)
		if scale == 0 {
			return shares
		}
		for _, item := range t.Items {
			distribute(shares, item.Cost*scale, item.Splits)
		}
		return shares
	}

	distribute(shares, t.Cost, t.Splits)
	return shares
}

// ShareFor returns the amount one participant owes for a transaction.
func ShareFor(t models.Transaction, person int) float64 {
	if person < 0 {
		return 0
	}
	n := len(t.Splits)
	for _, item := range t.Items {
		n = max(n, len(item.Splits))
	}
	if person >= n {
		return 0
	}
	return TransactionShares(n, t)[person]
}

// ItemShares computes the rescaled cost of every item of an itemized
// transaction and how it is split among n participants.
func ItemShares(n int, t models.Transaction) (costs []float64, shares [][]float64) {
	scale := itemScale(t)
	costs = make([]float64, len(t.Items))
	shares = make([][]float64, len(t.Items))
	for i, item := range t.Items {
		costs[i] = item.Cost * scale
		shares[i] = make([]float64, n)
		distribute(shares[i], costs[i], item.Splits)
	}
	return costs, shares
}

// itemScale returns the factor mapping item face values onto the transaction
// cost, or 0 when the items add up to nothing.
func itemScale(t models.Transaction) float64 {
	var itemsTotal float64
	for _, item := range t.Items {
		itemsTotal += item.Cost
	}
	if !(itemsTotal > 0) {
		return 0
	}
	return t.Cost / itemsTotal
}

// distribute adds amount × (weight / total weight) to each entry of into.
func distribute(into []float64, amount float64, weights []float64) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if !(total > 0) {
		return
	}
	for i, w := range weights {
		if i >= len(into) {
			break
		}
		into[i] += w / total * amount
	}
}

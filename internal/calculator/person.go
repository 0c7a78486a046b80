package calculator

import "github.com/mmynk/costsplits/internal/models"

// TransactionsPaidBy returns the transactions the participant paid for.
func TransactionsPaidBy(transactions []models.Transaction, person int) []models.Transaction {
	var out []models.Transaction
	for _, t := range transactions {
		if t.Payer == person {
			out = append(out, t)
		}
	}
	return out
}

// TransactionsInvolving returns the transactions in which the participant has
// a positive weight, either on the transaction itself or on any of its items.
func TransactionsInvolving(transactions []models.Transaction, person int) []models.Transaction {
	var out []models.Transaction
	for _, t := range transactions {
		if involved(t, person) {
			out = append(out, t)
		}
	}
	return out
}

func involved(t models.Transaction, person int) bool {
	if weightAt(t.Splits, person) > 0 {
		return true
	}
	for _, item := range t.Items {
		if weightAt(item.Splits, person) > 0 {
			return true
		}
	}
	return false
}

func weightAt(weights []float64, i int) float64 {
	if i < 0 || i >= len(weights) {
		return 0
	}
	return weights[i]
}

// SettlementsFor returns the settlements in which the participant pays or
// gets paid.
func SettlementsFor(people []string, transactions []models.Transaction, person int) []Settlement {
	var out []Settlement
	for _, s := range ComputeSettlements(people, transactions) {
		if s.From == person || s.To == person {
			out = append(out, s)
		}
	}
	return out
}

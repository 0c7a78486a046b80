package state

import (
	"fmt"

	"github.com/mmynk/costsplits/internal/models"
)

// AddTransaction appends a transaction. Missing weights are padded with zeros
// so the splits match the participant list.
func AddTransaction(p models.Pool, t models.Transaction) (models.Pool, error) {
	if err := checkPayer(p, t.Payer); err != nil {
		return p, err
	}
	out := p.Clone()
	out.Transactions = append(out.Transactions, fit(t.Clone(), len(p.People)))
	return out, nil
}

// UpdateTransaction replaces the transaction at index ti.
func UpdateTransaction(p models.Pool, ti int, t models.Transaction) (models.Pool, error) {
	if err := checkTransaction(p, ti); err != nil {
		return p, err
	}
	if err := checkPayer(p, t.Payer); err != nil {
		return p, err
	}
	out := p.Clone()
	out.Transactions[ti] = fit(t.Clone(), len(p.People))
	return out, nil
}

// DeleteTransaction removes the transaction at index ti.
func DeleteTransaction(p models.Pool, ti int) (models.Pool, error) {
	if err := checkTransaction(p, ti); err != nil {
		return p, err
	}
	out := p.Clone()
	out.Transactions = remove(out.Transactions, ti)
	return out, nil
}

// SetSplit sets one participant's weight on a transaction.
func SetSplit(p models.Pool, ti, person int, weight float64) (models.Pool, error) {
	if err := checkTransaction(p, ti); err != nil {
		return p, err
	}
	if err := checkPerson(p, person); err != nil {
		return p, err
	}
	out := p.Clone()
	t := fit(out.Transactions[ti], len(out.People))
	t.Splits[person] = weight
	out.Transactions[ti] = t
	return out, nil
}

// Itemize converts a transaction to itemized mode with a single item carrying
// the full cost and a copy of the current weights.
func Itemize(p models.Pool, ti int) (models.Pool, error) {
	if err := checkTransaction(p, ti); err != nil {
		return p, err
	}
	out := p.Clone()
	t := &out.Transactions[ti]
	weights := make([]float64, len(t.Splits))
	copy(weights, t.Splits)
	t.Items = []models.Item{{Cost: t.Cost, Splits: weights}}
	return out, nil
}

// Unitemize drops a transaction's items. Its top-level weights, kept all
// along, apply again.
func Unitemize(p models.Pool, ti int) (models.Pool, error) {
	if err := checkTransaction(p, ti); err != nil {
		return p, err
	}
	out := p.Clone()
	out.Transactions[ti].Items = nil
	return out, nil
}

// AddItem appends an item to a transaction, itemizing it if needed.
func AddItem(p models.Pool, ti int, item models.Item) (models.Pool, error) {
	if err := checkTransaction(p, ti); err != nil {
		return p, err
	}
	out := p.Clone()
	item = item.Clone()
	item.Splits = pad(item.Splits, len(p.People))
	out.Transactions[ti].Items = append(out.Transactions[ti].Items, item)
	return out, nil
}

// UpdateItem replaces the item at index ii of transaction ti.
func UpdateItem(p models.Pool, ti, ii int, item models.Item) (models.Pool, error) {
	if err := checkItem(p, ti, ii); err != nil {
		return p, err
	}
	out := p.Clone()
	item = item.Clone()
	item.Splits = pad(item.Splits, len(p.People))
	out.Transactions[ti].Items[ii] = item
	return out, nil
}

// DeleteItem removes an item. Removing the last item un-itemizes the
// transaction.
func DeleteItem(p models.Pool, ti, ii int) (models.Pool, error) {
	if err := checkItem(p, ti, ii); err != nil {
		return p, err
	}
	out := p.Clone()
	t := &out.Transactions[ti]
	t.Items = remove(t.Items, ii)
	if len(t.Items) == 0 {
		t.Items = nil
	}
	return out, nil
}

// SetItemSplit sets one participant's weight on an item.
func SetItemSplit(p models.Pool, ti, ii, person int, weight float64) (models.Pool, error) {
	if err := checkItem(p, ti, ii); err != nil {
		return p, err
	}
	if err := checkPerson(p, person); err != nil {
		return p, err
	}
	out := p.Clone()
	item := &out.Transactions[ti].Items[ii]
	item.Splits = pad(item.Splits, len(out.People))
	item.Splits[person] = weight
	return out, nil
}

func checkTransaction(p models.Pool, ti int) error {
	if ti < 0 || ti >= len(p.Transactions) {
		return fmt.Errorf("%w: transaction %d of %d", ErrOutOfRange, ti, len(p.Transactions))
	}
	return nil
}

func checkItem(p models.Pool, ti, ii int) error {
	if err := checkTransaction(p, ti); err != nil {
		return err
	}
	if n := len(p.Transactions[ti].Items); ii < 0 || ii >= n {
		return fmt.Errorf("%w: item %d of %d", ErrOutOfRange, ii, n)
	}
	return nil
}

func checkPayer(p models.Pool, payer int) error {
	if payer < 0 || payer >= len(p.People) {
		return fmt.Errorf("%w: payer %d of %d", ErrOutOfRange, payer, len(p.People))
	}
	return nil
}

// fit pads every weight list of t to n entries.
func fit(t models.Transaction, n int) models.Transaction {
	t.Splits = pad(t.Splits, n)
	for ii := range t.Items {
		t.Items[ii].Splits = pad(t.Items[ii].Splits, n)
	}
	return t
}

func pad(weights []float64, n int) []float64 {
	if weights == nil {
		weights = []float64{}
	}
	for len(weights) < n {
		weights = append(weights, 0)
	}
	return weights
}

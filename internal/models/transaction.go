package models

// Transaction represents one expense paid by a single participant.
type Transaction struct {
	// Name is an optional display label.
	Name string `json:"name,omitempty"`

	// Cost is the total amount charged. The payer is credited all of it.
	Cost float64 `json:"cost" validate:"gte=0"`

	// Payer is the index of the participant who fronted the money.
	Payer int `json:"payer" validate:"gte=0"`

	// Splits holds one weight per participant. Weights are proportional
	// shares, not amounts. Ignored for the owed computation while the
	// transaction is itemized, but kept for when it is un-itemized.
	Splits []float64 `json:"splits" validate:"dive,gte=0"`

	// Items decomposes the transaction when non-empty.
	Items []Item `json:"items,omitempty" validate:"dive"`
}

// Itemized reports whether the transaction is split by items.
func (t Transaction) Itemized() bool {
	return len(t.Items) > 0
}

// Clone returns a deep copy of the transaction.
func (t Transaction) Clone() Transaction {
	out := t
	out.Splits = cloneWeights(t.Splits)
	if t.Items != nil {
		out.Items = make([]Item, len(t.Items))
		for i, it := range t.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}

// Item is one line of an itemized transaction.
// Item costs are face values: they are rescaled so that all items together
// add up to the parent transaction's cost.
type Item struct {
	// Label is an optional display name (e.g., "Pizza").
	Label string `json:"item,omitempty"`

	// Cost is the face amount of the item.
	Cost float64 `json:"cost" validate:"gte=0"`

	// Splits holds one weight per participant, like Transaction.Splits.
	Splits []float64 `json:"splits" validate:"dive,gte=0"`
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Splits = cloneWeights(it.Splits)
	return out
}

func cloneWeights(w []float64) []float64 {
	if w == nil {
		return nil
	}
	out := make([]float64, len(w))
	copy(out, w)
	return out
}

package models

// Pool is a named group of people and the transactions they share.
// It is the unit that gets saved to a file, a share link, or the local pool store.
type Pool struct {
	// ID is the unique identifier assigned by the pool store (UUID format).
	// It is not part of the saved document.
	ID string `json:"-"`

	// Name is the pool name used as the key in the pool store.
	// Optional in files and share links.
	Name string `json:"pool,omitempty"`

	// People is the ordered participant list. The position of a name is the
	// index every Splits slice and Payer field refers to.
	People []string `json:"people" validate:"dive,required"`

	// Transactions are the recorded expenses, in entry order.
	Transactions []Transaction `json:"transactions" validate:"dive"`

	// CreatedAt is the Unix timestamp when the pool was first saved.
	CreatedAt int64 `json:"-"`

	// UpdatedAt is the Unix timestamp of the last save.
	UpdatedAt int64 `json:"-"`
}

// Clone returns a deep copy of the pool.
func (p Pool) Clone() Pool {
	out := p
	if p.People != nil {
		out.People = make([]string, len(p.People))
		copy(out.People, p.People)
	}
	if p.Transactions != nil {
		out.Transactions = make([]Transaction, len(p.Transactions))
		for i, t := range p.Transactions {
			out.Transactions[i] = t.Clone()
		}
	}
	return out
}

// IndexOf returns the position of the named person, or -1.
func (p Pool) IndexOf(name string) int {
	for i, person := range p.People {
		if person == name {
			return i
		}
	}
	return -1
}

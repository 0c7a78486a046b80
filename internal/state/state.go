// Package state applies edits to a pool.
//
// Each function takes a pool by value and returns an edited deep copy, leaving
// the argument untouched. The functions keep the index invariants the
// calculator relies on: every splits slice has one weight per person and every
// payer is a valid person index.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/costsplits/internal/models"
)

var (
	ErrInvalidName = errors.New("name must be unique and non-empty")
	ErrOutOfRange  = errors.New("index out of range")
)

// AddPerson appends a participant with a zero weight in every split.
func AddPerson(p models.Pool, name string) (models.Pool, error) {
	name = strings.TrimSpace(name)
	if name == "" || p.IndexOf(name) >= 0 {
		return p, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	out := p.Clone()
	out.People = append(out.People, name)
	for ti := range out.Transactions {
		t := &out.Transactions[ti]
		t.Splits = append(t.Splits, 0)
		for ii := range t.Items {
			t.Items[ii].Splits = append(t.Items[ii].Splits, 0)
		}
	}
	return out, nil
}

// RenamePerson changes a participant's display name. Indices are unaffected.
func RenamePerson(p models.Pool, person int, name string) (models.Pool, error) {
	if err := checkPerson(p, person); err != nil {
		return p, err
	}
	name = strings.TrimSpace(name)
	if name == p.People[person] {
		return p.Clone(), nil
	}
	if name == "" || p.IndexOf(name) >= 0 {
		return p, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	out := p.Clone()
	out.People[person] = name
	return out, nil
}

// DeletePerson removes a participant. Transactions the person paid for or
// has a positive weight in (directly or through an item) are removed too; the
// remaining transactions lose that person's column and have their payer
// shifted down when it came after the removed person.
func DeletePerson(p models.Pool, person int) (models.Pool, error) {
	if err := checkPerson(p, person); err != nil {
		return p, err
	}

	out := p.Clone()
	out.People = remove(out.People, person)

	kept := make([]models.Transaction, 0, len(out.Transactions))
	for _, t := range out.Transactions {
		if Involves(t, person) {
			continue
		}
		t.Splits = removeColumn(t.Splits, person)
		for ii := range t.Items {
			t.Items[ii].Splits = removeColumn(t.Items[ii].Splits, person)
		}
		if t.Payer > person {
			t.Payer--
		}
		kept = append(kept, t)
	}
	out.Transactions = kept
	return out, nil
}

// Involves reports whether deleting the person would take the transaction
// with them: they paid for it, or hold a positive weight in it or in any of its
// items.
func Involves(t models.Transaction, person int) bool {
	if t.Payer == person {
		return true
	}
	if person < len(t.Splits) && t.Splits[person] > 0 {
		return true
	}
	for _, item := range t.Items {
		if person < len(item.Splits) && item.Splits[person] > 0 {
			return true
		}
	}
	return false
}

func checkPerson(p models.Pool, person int) error {
	if person < 0 || person >= len(p.People) {
		return fmt.Errorf("%w: person %d of %d", ErrOutOfRange, person, len(p.People))
	}
	return nil
}

func remove[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func removeColumn(weights []float64, i int) []float64 {
	if i >= len(weights) {
		return weights
	}
	return remove(weights, i)
}

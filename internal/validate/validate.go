// Package validate checks that pool documents loaded from files, share links
// or the pool store have the shape the calculator expects, and parses
// user-entered amounts and weights.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/costsplits/internal/models"
)

// ErrInvalidPool is wrapped by every error returned from Pool.
var ErrInvalidPool = errors.New("invalid pool")

var (
	once     sync.Once
	validate *validator.Validate
)

func structValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Pool checks a pool's shape:
//   - people are non-blank and unique
//   - every cost and weight is finite and not negative
//   - every splits slice has one weight per person
//   - every payer is a valid person index
func Pool(p models.Pool) error {
	if err := structValidator().Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidPool, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}

	seen := make(map[string]bool, len(p.People))
	for i, name := range p.People {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: person %d has an empty name", ErrInvalidPool, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate person %q", ErrInvalidPool, name)
		}
		seen[name] = true
	}

	n := len(p.People)
	for ti, t := range p.Transactions {
		if t.Payer < 0 || t.Payer >= n {
			return fmt.Errorf("%w: transaction %d payer %d is not one of the %d people", ErrInvalidPool, ti, t.Payer, n)
		}
		if err := checkAmounts(t.Cost, t.Splits, n); err != nil {
			return fmt.Errorf("%w: transaction %d: %v", ErrInvalidPool, ti, err)
		}
		for ii, item := range t.Items {
			if err := checkAmounts(item.Cost, item.Splits, n); err != nil {
				return fmt.Errorf("%w: transaction %d item %d: %v", ErrInvalidPool, ti, ii, err)
			}
		}
	}
	return nil
}

func checkAmounts(cost float64, splits []float64, n int) error {
	if !finite(cost) {
		return fmt.Errorf("cost %v is not finite", cost)
	}
	if len(splits) != n {
		return fmt.Errorf("has %d splits, want %d", len(splits), n)
	}
	for i, w := range splits {
		if !finite(w) {
			return fmt.Errorf("split %d is not finite", i)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

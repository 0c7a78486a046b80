package render

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Dollars formats an amount rounded to cents, e.g. "$12.50".
//
// The amount is rounded as its shortest decimal form, half away from zero:
// 1.005 prints as "$1.01". Rounding the binary value instead, as
// Number.prototype.toFixed does, would print "$1.00".
func Dollars(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("$%.2f", amount)
	}
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Signed formats a net balance: "+$5.00" for credit, "−$5.00" for debt and
// "$0.00" when exactly even.
func Signed(amount float64) string {
	switch {
	case amount > 0:
		return "+" + Dollars(amount)
	case amount < 0:
		return "−" + Dollars(-amount)
	default:
		return Dollars(0)
	}
}

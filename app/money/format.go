// Package money formats amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Format renders amount as whole pesos with Argentine digit grouping,
// e.g. 110000 becomes "$110.000".
func Format(amount decimal.Decimal) string {
	return "$" + printer.Sprintf("%d", amount.Round(0).IntPart())
}

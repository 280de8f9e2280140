package accounting

import (
	"fmt"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every persisted amount.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// LineAmounts computes the derived amounts of a line:
// taxable = round(quantity * unitPrice, 2), vat = round(taxable * rate / 100, 2).
func LineAmounts(quantity, unitPrice, ratePercentage decimal.Decimal) (taxable, vat decimal.Decimal) {
	taxable = RoundMoney(quantity.Mul(unitPrice))
	vat = RoundMoney(taxable.Mul(ratePercentage).Div(hundred))
	return taxable, vat
}

// RecomputeLine stores the derived amounts on line using rate.
func RecomputeLine(line *domain.DocumentLine, rate domain.VATRate) {
	line.TaxableAmount, line.VATAmount = LineAmounts(line.Quantity, line.UnitPrice, rate.Percentage)
}

// ValidateLineSigns rejects negative quantities or prices unless the document
// is a correction (credit note).
func ValidateLineSigns(line domain.DocumentLine, allowNegative bool) error {
	if allowNegative {
		return nil
	}
	if line.Quantity.IsNegative() {
		return fmt.Errorf("quantity %s is negative", line.Quantity.String())
	}
	if line.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price %s is negative", line.UnitPrice.String())
	}
	return nil
}

// HeaderTotals sums line amounts into the document header values.
// total = taxable + vat.
func HeaderTotals(lines []domain.DocumentLine) (taxable, vat, total decimal.Decimal) {
	taxable, vat = decimal.Zero, decimal.Zero
	for _, l := range lines {
		taxable = taxable.Add(l.TaxableAmount)
		vat = vat.Add(l.VATAmount)
	}
	return taxable, vat, taxable.Add(vat)
}

// ApplyHeaderTotals sets the derived header fields from already summed values.
func ApplyHeaderTotals(doc *domain.Document, taxable, vat decimal.Decimal) {
	doc.TaxableAmount = taxable
	doc.VATAmount = vat
	doc.TotalAmount = taxable.Add(vat)
}

// AccountBalance folds movements into a balance:
// sum(inflow) - sum(outflow) + sum(signed transfer legs).
func AccountBalance(movements []domain.LedgerMovement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.SignedAmount())
	}
	return balance
}

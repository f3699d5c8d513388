package models

import (
	"github.com/shopspring/decimal"
)

// FinancialDocumentItem is one line of an invoice, credit note or purchase
// order (polymorphic via DocumentType/DocumentId). Monetary totals are
// always recomputed from these lines, never read from a cached total
// column, to avoid drift.
type FinancialDocumentItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	DocumentType DocumentType    `gorm:"index;size:20;not null" json:"document_type"`
	DocumentID   int             `gorm:"index;not null" json:"document_id"`
	GLAccountId  int             `gorm:"index;not null" json:"gl_account_id" binding:"required"`
	GLAccount    *GLAccount      `gorm:"foreignKey:GLAccountId" json:"gl_account,omitempty"`
	Description  string          `gorm:"size:255" json:"description"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity" binding:"required"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost" binding:"required"`
	DiscountRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_rate"`
	MarkupRate   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"markup_rate"`
	TaxRateId    int             `gorm:"index" json:"tax_rate_id"`
	TaxRate      *TaxRate        `gorm:"foreignKey:TaxRateId" json:"tax_rate,omitempty"`
}

var decimalOne = decimal.NewFromInt(1)

// TotalExTax is quantity x unit cost x (1 - discount) x (1 + markup).
func (i *FinancialDocumentItem) TotalExTax() decimal.Decimal {
	return i.Quantity.
		Mul(i.UnitCost).
		Mul(decimalOne.Sub(i.DiscountRate)).
		Mul(decimalOne.Add(i.MarkupRate))
}

// Total applies the item's tax rate on top of TotalExTax. Items without a
// preloaded tax rate are treated as untaxed.
func (i *FinancialDocumentItem) Total() decimal.Decimal {
	taxRate := decimal.Zero
	if i.TaxRate != nil {
		taxRate = i.TaxRate.Rate
	}
	return i.TotalExTax().Mul(decimalOne.Add(taxRate))
}

// SumItemTotals folds a line set into a tax-inclusive total.
func SumItemTotals(items []FinancialDocumentItem) decimal.Decimal {
	total := decimal.Zero
	for idx := range items {
		total = total.Add(items[idx].Total())
	}
	return total
}

package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFinancialDocumentItem_TotalExTax(t *testing.T) {
	cases := []struct {
		name     string
		item     FinancialDocumentItem
		expected string
	}{
		{
			"plain quantity times unit cost",
			FinancialDocumentItem{Quantity: d("3"), UnitCost: d("100")},
			"300",
		},
		{
			"discount applied",
			FinancialDocumentItem{Quantity: d("2"), UnitCost: d("100"), DiscountRate: d("0.1")},
			"180",
		},
		{
			"markup applied",
			FinancialDocumentItem{Quantity: d("1"), UnitCost: d("200"), MarkupRate: d("0.25")},
			"250",
		},
		{
			"discount then markup",
			FinancialDocumentItem{Quantity: d("4"), UnitCost: d("50"), DiscountRate: d("0.5"), MarkupRate: d("0.1")},
			"110",
		},
	}
	for _, tc := range cases {
		got := tc.item.TotalExTax()
		if !got.Equal(d(tc.expected)) {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestFinancialDocumentItem_Total_NilTaxRateIsUntaxed(t *testing.T) {
	item := FinancialDocumentItem{Quantity: d("2"), UnitCost: d("100")}
	if got := item.Total(); !got.Equal(d("200")) {
		t.Fatalf("expected 200, got %s", got)
	}
}

func TestFinancialDocumentItem_Total_AppliesTaxRate(t *testing.T) {
	item := FinancialDocumentItem{
		Quantity: d("2"),
		UnitCost: d("100"),
		TaxRate:  &TaxRate{Rate: d("0.1")},
	}
	if got := item.Total(); !got.Equal(d("220")) {
		t.Fatalf("expected 220, got %s", got)
	}
}

func TestSumItemTotals(t *testing.T) {
	items := []FinancialDocumentItem{
		{Quantity: d("1"), UnitCost: d("100")},
		{Quantity: d("1"), UnitCost: d("50"), TaxRate: &TaxRate{Rate: d("0.1")}},
	}
	if got := SumItemTotals(items); !got.Equal(d("155")) {
		t.Fatalf("expected 155, got %s", got)
	}
}

func TestInvoiceOutstanding(t *testing.T) {
	invoice := Invoice{
		Items: []FinancialDocumentItem{
			{Quantity: d("1"), UnitCost: d("300")},
		},
		Payments: []InvoicePayment{
			{Amount: d("100")},
			{Amount: d("50")},
		},
	}
	if got := invoice.Outstanding(); !got.Equal(d("150")) {
		t.Fatalf("expected 150 outstanding, got %s", got)
	}
}

func TestJobCostTotals_Total(t *testing.T) {
	totals := JobCostTotals{
		Labour:         d("100"),
		Laha:           d("20"),
		Equipment:      d("30"),
		Materials:      d("40"),
		PurchaseOrders: d("200"),
		Reimbursements: d("10"),
	}
	if got := totals.Total(); !got.Equal(d("400")) {
		t.Fatalf("expected 400, got %s", got)
	}
}

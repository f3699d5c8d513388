package reports

import (
	"testing"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/shopspring/decimal"
)

func invoiceWithPayment(id int, items []models.FinancialDocumentItem, paid string, isFp bool) *models.Invoice {
	invoice := &models.Invoice{ID: id, Items: items}
	if paid != "" {
		invoice.Payments = []models.InvoicePayment{{InvoiceId: id, Amount: d(paid), IsFp: isFp}}
	}
	return invoice
}

func TestBuildIncomeReport_EmptyScopeYieldsEmptyReport(t *testing.T) {
	report := BuildIncomeReport(nil, nil)
	if report == nil {
		t.Fatal("expected an empty report, got nil")
	}
	if !report.TotalAmount.IsZero() || !report.NetTotalAmount.IsZero() {
		t.Fatalf("expected zero totals, got %s / %s", report.TotalAmount, report.NetTotalAmount)
	}
	if len(report.AccountTypes) != 0 {
		t.Fatalf("expected no groups, got %d", len(report.AccountTypes))
	}
}

func TestBuildIncomeReport_PaidInFullBoundary(t *testing.T) {
	account := revenueAccount(1, "Restoration Revenue", "Revenue")

	cases := []struct {
		name     string
		paid     string
		expected string
	}{
		{"payment equals items total", "200", "200"},
		{"payment exceeds items total", "250", "200"},
		{"one cent short excludes the invoice", "199.99", "0"},
	}
	for _, tc := range cases {
		invoice := invoiceWithPayment(1,
			[]models.FinancialDocumentItem{lineItem(account, "2", "100")},
			tc.paid, false)

		report := BuildIncomeReport([]*models.Invoice{invoice}, nil)
		if !report.TotalAmount.Equal(d(tc.expected)) {
			t.Fatalf("%s: expected %s recognized, got %s", tc.name, tc.expected, report.TotalAmount)
		}
	}
}

func TestBuildIncomeReport_OnlyRevenueItemsCount(t *testing.T) {
	revenue := revenueAccount(1, "Restoration Revenue", "Revenue")
	asset := assetAccount(2, "Equipment Deposit")

	// Paid-in-full threshold works off revenue items only: 100 covers the
	// revenue line even though the invoice carries a 500 asset line.
	invoice := invoiceWithPayment(1, []models.FinancialDocumentItem{
		lineItem(revenue, "1", "100"),
		lineItem(asset, "1", "500"),
	}, "100", false)

	report := BuildIncomeReport([]*models.Invoice{invoice}, nil)
	if !report.TotalAmount.Equal(d("100")) {
		t.Fatalf("expected 100 recognized, got %s", report.TotalAmount)
	}
	if len(report.AccountTypes) != 1 || report.AccountTypes[0].TypeName != "Revenue" {
		t.Fatalf("expected a single Revenue group, got %+v", report.AccountTypes)
	}
}

func TestBuildIncomeReport_NoRevenueItemsIgnored(t *testing.T) {
	asset := assetAccount(2, "Equipment Deposit")
	invoice := invoiceWithPayment(1, []models.FinancialDocumentItem{
		lineItem(asset, "1", "500"),
	}, "500", false)

	report := BuildIncomeReport([]*models.Invoice{invoice}, nil)
	if !report.TotalAmount.IsZero() {
		t.Fatalf("invoice without revenue items must not recognize income, got %s", report.TotalAmount)
	}
}

func TestBuildIncomeReport_ForwardedNetting(t *testing.T) {
	account := revenueAccount(1, "Restoration Revenue", "Revenue")

	forwarded := invoiceWithPayment(1,
		[]models.FinancialDocumentItem{lineItem(account, "1", "300")}, "300", true)
	ordinary := invoiceWithPayment(2,
		[]models.FinancialDocumentItem{lineItem(account, "1", "100")}, "100", false)

	transferred := map[int]decimal.Decimal{
		1: d("120"),
		// Amount for invoice 2 exists but must not be netted: none of its
		// payments are forwarded.
		2: d("40"),
	}

	report := BuildIncomeReport([]*models.Invoice{forwarded, ordinary}, transferred)
	if !report.TotalAmount.Equal(d("400")) {
		t.Fatalf("expected 400 gross, got %s", report.TotalAmount)
	}
	if !report.ForwardedAmount.Equal(d("120")) {
		t.Fatalf("expected 120 forwarded, got %s", report.ForwardedAmount)
	}
	if !report.NetTotalAmount.Equal(d("280")) {
		t.Fatalf("expected 280 net, got %s", report.NetTotalAmount)
	}
}

func TestBuildIncomeReport_GroupsByAccountTypeInsertionOrder(t *testing.T) {
	cleaning := revenueAccount(1, "Cleaning Revenue", "Operating Revenue")
	restoration := revenueAccount(2, "Restoration Revenue", "Operating Revenue")
	other := revenueAccount(3, "Interest", "Other Revenue")

	invoices := []*models.Invoice{
		invoiceWithPayment(1, []models.FinancialDocumentItem{
			lineItem(cleaning, "1", "100"),
			lineItem(other, "1", "10"),
		}, "110", false),
		invoiceWithPayment(2, []models.FinancialDocumentItem{
			lineItem(restoration, "1", "200"),
			lineItem(cleaning, "1", "50"),
		}, "250", false),
	}

	report := BuildIncomeReport(invoices, nil)
	if len(report.AccountTypes) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(report.AccountTypes))
	}
	operating := report.AccountTypes[0]
	if operating.TypeName != "Operating Revenue" || !operating.Subtotal.Equal(d("350")) {
		t.Fatalf("unexpected first group: %s subtotal %s", operating.TypeName, operating.Subtotal)
	}
	if len(operating.Accounts) != 2 || operating.Accounts[0].AccountName != "Cleaning Revenue" {
		t.Fatalf("unexpected account order: %+v", operating.Accounts)
	}
	if !operating.Accounts[0].Amount.Equal(d("150")) {
		t.Fatalf("cleaning revenue expected 150, got %s", operating.Accounts[0].Amount)
	}
	if report.AccountTypes[1].TypeName != "Other Revenue" {
		t.Fatalf("expected Other Revenue second, got %s", report.AccountTypes[1].TypeName)
	}
	if !report.TotalAmount.Equal(d("360")) {
		t.Fatalf("expected 360 total, got %s", report.TotalAmount)
	}
}

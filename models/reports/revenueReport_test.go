package reports

import (
	"testing"

	"github.com/dimitrizarkua/jobs_backend/models"
)

func TestBuildRevenueReport_TagDistribution(t *testing.T) {
	account := revenueAccount(1, "Restoration Revenue", "Revenue")
	invoices := []*models.Invoice{
		invoiceWithPayment(1, []models.FinancialDocumentItem{lineItem(account, "1", "100")}, "", false),
		invoiceWithPayment(2, []models.FinancialDocumentItem{lineItem(account, "1", "200")}, "", false),
		invoiceWithPayment(3, []models.FinancialDocumentItem{lineItem(account, "1", "300")}, "", false),
		invoiceWithPayment(4, []models.FinancialDocumentItem{lineItem(account, "1", "400")}, "", false),
	}
	tags := map[int][]string{
		1: {"storm"},
		2: {"storm", "commercial"},
		3: {"flood"},
		// invoice 4 untagged
	}

	report := BuildRevenueReport(invoices, nil, nil, models.JobCostTotals{}, tags)

	if !report.TotalInvoiced.Equal(d("1000")) {
		t.Fatalf("expected 1000 invoiced, got %s", report.TotalInvoiced)
	}
	if len(report.TagDistribution) != 4 {
		t.Fatalf("expected 4 distribution slices, got %d", len(report.TagDistribution))
	}

	byName := map[string]TagSummary{}
	for _, slice := range report.TagDistribution {
		byName[slice.Name] = slice
	}
	storm := byName["storm"]
	if storm.Count != 2 || !storm.Total.Equal(d("300")) || !storm.Percent.Equal(d("50")) {
		t.Fatalf("unexpected storm slice: %+v", storm)
	}
	untagged := byName[untaggedBucket]
	if untagged.Count != 1 || !untagged.Total.Equal(d("400")) || !untagged.Percent.Equal(d("25")) {
		t.Fatalf("unexpected untagged slice: %+v", untagged)
	}

	// First-seen tag order is preserved.
	if report.TagDistribution[0].Name != "storm" {
		t.Fatalf("expected storm first, got %s", report.TagDistribution[0].Name)
	}
}

func TestBuildRevenueReport_NetRevenue(t *testing.T) {
	account := revenueAccount(1, "Restoration Revenue", "Revenue")
	invoices := []*models.Invoice{
		invoiceWithPayment(1, []models.FinancialDocumentItem{lineItem(account, "1", "500")}, "", false),
	}
	creditNotes := []*models.CreditNote{
		{ID: 1, Items: []models.FinancialDocumentItem{lineItem(account, "1", "75")}},
	}

	report := BuildRevenueReport(invoices, creditNotes, nil, models.JobCostTotals{}, nil)
	if !report.NetRevenue.Equal(d("425")) {
		t.Fatalf("expected 425 net revenue, got %s", report.NetRevenue)
	}
}

func TestBuildRevenueReport_CostAndGrossProfit(t *testing.T) {
	account := revenueAccount(1, "Restoration Revenue", "Revenue")
	invoices := []*models.Invoice{
		invoiceWithPayment(1, []models.FinancialDocumentItem{lineItem(account, "1", "300")}, "", false),
	}
	creditNotes := []*models.CreditNote{
		{ID: 1, Items: []models.FinancialDocumentItem{lineItem(account, "1", "50")}},
	}
	costs := models.JobCostTotals{Labour: d("60"), Materials: d("40")}

	report := BuildRevenueReport(invoices, creditNotes, nil, costs, nil)

	if !report.TotalCost.Equal(d("100")) {
		t.Fatalf("expected 100 total cost, got %s", report.TotalCost)
	}
	// charged = 300 - 50 = 250; (250 - 100) / 250 * 100 = 60
	if !report.GrossProfit.Equal(d("60")) {
		t.Fatalf("expected 60%% gross profit, got %s", report.GrossProfit)
	}

	metrics := report.Metrics()
	for _, key := range []string{"total_cost", "gross_profit"} {
		if _, ok := metrics[key]; !ok {
			t.Fatalf("expected %s in metrics, got %v", key, metrics)
		}
	}
}

func TestBuildRevenueReport_PurchaseOrdersFeedCost(t *testing.T) {
	account := revenueAccount(1, "Restoration Revenue", "Revenue")
	invoices := []*models.Invoice{
		invoiceWithPayment(1, []models.FinancialDocumentItem{lineItem(account, "1", "500")}, "", false),
	}
	purchaseOrders := []*models.PurchaseOrder{
		{ID: 1, Items: []models.FinancialDocumentItem{lineItem(nil, "1", "150")}},
	}

	report := BuildRevenueReport(invoices, nil, purchaseOrders, models.JobCostTotals{Labour: d("100")}, nil)

	if !report.Costs.PurchaseOrders.Equal(d("150")) {
		t.Fatalf("expected 150 purchase-order cost, got %s", report.Costs.PurchaseOrders)
	}
	if !report.TotalCost.Equal(d("250")) {
		t.Fatalf("expected 250 total cost, got %s", report.TotalCost)
	}
	// (500 - 250) / 500 * 100 = 50
	if !report.GrossProfit.Equal(d("50")) {
		t.Fatalf("expected 50%% gross profit, got %s", report.GrossProfit)
	}
}

func TestBuildRevenueReport_Empty(t *testing.T) {
	report := BuildRevenueReport(nil, nil, nil, models.JobCostTotals{}, nil)
	if !report.TotalInvoiced.IsZero() || len(report.TagDistribution) != 0 {
		t.Fatalf("empty scope expected zero report, got %+v", report)
	}
	if !report.GrossProfit.IsZero() {
		t.Fatalf("zero charged amount must yield 0%% gross profit, got %s", report.GrossProfit)
	}
}

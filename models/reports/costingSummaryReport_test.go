package reports

import (
	"testing"

	"github.com/dimitrizarkua/jobs_backend/models"
)

func TestBuildCostingSummary(t *testing.T) {
	job := &models.Job{ID: 7, ClaimNumber: "CLM-1001"}
	costs := models.JobCostTotals{
		Labour:         d("100"),
		Laha:           d("20"),
		Equipment:      d("30"),
		Materials:      d("50"),
		PurchaseOrders: d("150"),
		Reimbursements: d("10"),
	}
	account := revenueAccount(1, "Restoration Revenue", "Revenue")
	invoices := []*models.Invoice{
		invoiceWithPayment(1, []models.FinancialDocumentItem{lineItem(account, "1", "600")}, "600", false),
	}
	assessmentItems := []*models.AssessmentReportItem{
		{Description: "Carpet replacement", Quantity: d("40"), UnitCost: d("12")},
	}

	summary := BuildCostingSummary(job, costs, invoices, assessmentItems)

	if summary.JobId != 7 || summary.ClaimNumber != "CLM-1001" {
		t.Fatalf("unexpected job identity: %d %s", summary.JobId, summary.ClaimNumber)
	}
	if !summary.TotalCosted.Equal(d("360")) {
		t.Fatalf("expected 360 costed, got %s", summary.TotalCosted)
	}
	if !summary.TotalInvoiced.Equal(d("600")) {
		t.Fatalf("expected 600 invoiced, got %s", summary.TotalInvoiced)
	}
	if !summary.RemainingToInvoice.Equal(d("240")) {
		t.Fatalf("expected 240 remaining, got %s", summary.RemainingToInvoice)
	}
	// (600 - 360) / 600 = 40%
	if !summary.GrossProfit.Equal(d("40")) {
		t.Fatalf("expected 40%% gross profit, got %s", summary.GrossProfit)
	}

	if !summary.Categories.Labour.Equal(d("120")) {
		t.Fatalf("labour category includes LAHA, expected 120, got %s", summary.Categories.Labour)
	}
	if !summary.Categories.Other.Equal(d("160")) {
		t.Fatalf("other category expected 160, got %s", summary.Categories.Other)
	}

	if len(summary.AssessmentItems) != 1 {
		t.Fatalf("expected 1 assessment line, got %d", len(summary.AssessmentItems))
	}
	if !summary.AssessmentItems[0].Total.Equal(d("480")) {
		t.Fatalf("assessment line total expected 480, got %s", summary.AssessmentItems[0].Total)
	}
}

func TestBuildCostingSummary_NoInvoices(t *testing.T) {
	job := &models.Job{ID: 7}
	costs := models.JobCostTotals{Labour: d("200")}

	summary := BuildCostingSummary(job, costs, nil, nil)
	if !summary.RemainingToInvoice.Equal(d("-200")) {
		t.Fatalf("expected -200 remaining, got %s", summary.RemainingToInvoice)
	}
	// Zero invoiced guards the division.
	if !summary.GrossProfit.IsZero() {
		t.Fatalf("expected 0%% gross profit, got %s", summary.GrossProfit)
	}
}

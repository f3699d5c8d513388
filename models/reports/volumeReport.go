package reports

import (
	"context"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

// VolumeReport summarizes trading volume over a filter scope: what was
// invoiced, credited, committed on purchase orders and collected, plus the
// gross-profit margin of the period.
type VolumeReport struct {
	TotalRevenue        decimal.Decimal      `json:"total_revenue"`
	TotalInvoiced       decimal.Decimal      `json:"total_invoiced"`
	TotalCreditNotes    decimal.Decimal      `json:"total_credit_notes"`
	TotalPurchaseOrders decimal.Decimal      `json:"total_purchase_orders"`
	TotalCost           decimal.Decimal      `json:"total_cost"`
	GrossProfit         decimal.Decimal      `json:"gross_profit"`
	InvoicesCount       int                  `json:"invoices_count"`
	CreditNotesCount    int                  `json:"credit_notes_count"`
	PurchaseOrdersCount int                  `json:"purchase_orders_count"`
	Costs               models.JobCostTotals `json:"costs"`
	Chart               []ChartPoint         `json:"chart"`
}

func (r *VolumeReport) Metrics() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"total_revenue":         r.TotalRevenue,
		"total_invoiced":        r.TotalInvoiced,
		"total_credit_notes":    r.TotalCreditNotes,
		"total_purchase_orders": r.TotalPurchaseOrders,
		"total_cost":            r.TotalCost,
		"gross_profit":          r.GrossProfit,
	}
}

// BuildVolumeReport folds hydrated documents into the report. Totals are
// recomputed from items; revenue is the collected (paid) amount while the
// margin works off the charged amount net of credit notes.
func BuildVolumeReport(invoices []*models.Invoice, creditNotes []*models.CreditNote, purchaseOrders []*models.PurchaseOrder, costs models.JobCostTotals) *VolumeReport {
	report := &VolumeReport{
		TotalRevenue:        decimal.Zero,
		TotalInvoiced:       decimal.Zero,
		TotalCreditNotes:    decimal.Zero,
		TotalPurchaseOrders: decimal.Zero,
		InvoicesCount:       len(invoices),
		CreditNotesCount:    len(creditNotes),
		PurchaseOrdersCount: len(purchaseOrders),
	}

	series := newChartSeries()
	for _, invoice := range invoices {
		report.TotalInvoiced = report.TotalInvoiced.Add(invoice.TotalAmount())
		report.TotalRevenue = report.TotalRevenue.Add(invoice.TotalPaid())
		series.Add(invoice.Date, invoice.TotalAmount())
	}
	for _, creditNote := range creditNotes {
		report.TotalCreditNotes = report.TotalCreditNotes.Add(creditNote.TotalAmount())
	}
	for _, purchaseOrder := range purchaseOrders {
		report.TotalPurchaseOrders = report.TotalPurchaseOrders.Add(purchaseOrder.TotalAmount())
	}

	costs.PurchaseOrders = report.TotalPurchaseOrders
	report.Costs = costs
	report.TotalCost = costs.Total()

	charged := report.TotalInvoiced.Sub(report.TotalCreditNotes)
	report.GrossProfit = utils.Percent(charged.Sub(report.TotalCost), charged)
	report.Chart = series.Points()

	return report
}

// GetVolumeReport fetches the approved documents and usage costs in scope
// and folds them into a volume report.
func GetVolumeReport(ctx context.Context, fetcher *DocumentFetcher, filter *ReportFilter) (*VolumeReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetVolumeReport", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	invoices, err := fetcher.FetchInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}
	creditNotes, err := fetcher.FetchCreditNotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	purchaseOrders, err := fetcher.FetchPurchaseOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	jobIds, err := jobIdsForFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	costs, err := models.GetJobCostTotals(ctx, jobIds)
	if err != nil {
		return nil, err
	}

	return BuildVolumeReport(invoices, creditNotes, purchaseOrders, costs), nil
}

// GetVolumeReportWithComparison runs the report for the filter window and
// the preceding equal-length window. Date-mode filters only.
func GetVolumeReportWithComparison(ctx context.Context, fetcher *DocumentFetcher, filter *ReportFilter) (*ReportWithComparison[*VolumeReport], error) {
	previousFilter, err := filter.PreviousPeriodFilter()
	if err != nil {
		return nil, err
	}

	current, err := GetVolumeReport(ctx, fetcher, filter)
	if err != nil {
		return nil, err
	}
	previous, err := GetVolumeReport(ctx, fetcher, previousFilter)
	if err != nil {
		return nil, err
	}
	return WithComparison(current, previous), nil
}

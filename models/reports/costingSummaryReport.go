package reports

import (
	"context"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// CostCategories rolls job costs up into the four headline categories
// shown on the costing summary. Labour includes LAHA per-diems; Other
// covers purchase orders and reimbursements.
type CostCategories struct {
	Labour    decimal.Decimal `json:"labour"`
	Equipment decimal.Decimal `json:"equipment"`
	Materials decimal.Decimal `json:"materials"`
	Other     decimal.Decimal `json:"other"`
}

// AssessmentLine is one quoted line from the job's assessment report.
type AssessmentLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Total       decimal.Decimal `json:"total"`
}

// CostingSummary compares what a job has cost against what has been
// invoiced for it.
type CostingSummary struct {
	JobId              int                  `json:"job_id"`
	ClaimNumber        string               `json:"claim_number"`
	TotalCosted        decimal.Decimal      `json:"total_costed"`
	TotalInvoiced      decimal.Decimal      `json:"total_invoiced"`
	RemainingToInvoice decimal.Decimal      `json:"remaining_to_invoice"`
	GrossProfit        decimal.Decimal      `json:"gross_profit"`
	Categories         CostCategories       `json:"categories"`
	Costs              models.JobCostTotals `json:"costs"`
	AssessmentItems    []AssessmentLine     `json:"assessment_items"`
}

// BuildCostingSummary folds job costs, approved invoices and assessment
// lines into the summary. Remaining is the invoiced amount net of costs
// and goes negative when a job has cost more than it has been billed.
func BuildCostingSummary(job *models.Job, costs models.JobCostTotals, invoices []*models.Invoice, assessmentItems []*models.AssessmentReportItem) *CostingSummary {
	summary := &CostingSummary{
		JobId:       job.ID,
		ClaimNumber: job.ClaimNumber,
		Costs:       costs,
	}

	summary.TotalInvoiced = decimal.Zero
	for _, invoice := range invoices {
		summary.TotalInvoiced = summary.TotalInvoiced.Add(invoice.TotalAmount())
	}

	summary.Categories = CostCategories{
		Labour:    costs.Labour.Add(costs.Laha),
		Equipment: costs.Equipment,
		Materials: costs.Materials,
		Other:     costs.PurchaseOrders.Add(costs.Reimbursements),
	}
	summary.TotalCosted = costs.Total()
	summary.RemainingToInvoice = summary.TotalInvoiced.Sub(summary.TotalCosted)
	summary.GrossProfit = utils.Percent(summary.TotalInvoiced.Sub(summary.TotalCosted), summary.TotalInvoiced)

	for _, item := range assessmentItems {
		summary.AssessmentItems = append(summary.AssessmentItems, AssessmentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			Total:       item.Total(),
		})
	}
	return summary
}

// GetCostingSummary assembles the costing summary for one job: usage
// costs, approved purchase orders (recomputed from items), approved
// invoices and the assessment report lines.
func GetCostingSummary(ctx context.Context, fetcher *DocumentFetcher, jobId int) (*CostingSummary, error) {
	ctx, span := tracer.Start(ctx, "reports.GetCostingSummary")
	defer span.End()

	job, err := models.GetJob(ctx, jobId)
	if err != nil {
		return nil, err
	}

	filter := &ReportFilter{Mode: ByJobs{JobIds: []int{jobId}}}
	invoices, err := fetcher.FetchInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}
	purchaseOrders, err := fetcher.FetchPurchaseOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	costs, err := models.GetJobCostTotals(ctx, []int{jobId})
	if err != nil {
		return nil, err
	}
	costs.PurchaseOrders = decimal.Zero
	for _, purchaseOrder := range purchaseOrders {
		costs.PurchaseOrders = costs.PurchaseOrders.Add(purchaseOrder.TotalAmount())
	}

	assessmentItems, err := models.GetAssessmentReportItems(ctx, jobId)
	if err != nil {
		return nil, err
	}

	return BuildCostingSummary(job, costs, invoices, assessmentItems), nil
}

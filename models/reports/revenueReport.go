package reports

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// GLBalanceService yields ledger balances for single accounts over a
// window. Satisfied by models.GLAccountService; taken as a collaborator so
// revenue maths can be exercised against a stub.
type GLBalanceService interface {
	AccountBalance(ctx context.Context, accountId int, from time.Time, to time.Time) (decimal.Decimal, error)
}

const untaggedBucket = "untagged"

// TagSummary is one slice of the invoice tag distribution.
type TagSummary struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

// AccountBalanceRow is the posted balance of one revenue account.
type AccountBalanceRow struct {
	AccountId   int             `json:"account_id"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

// RevenueReport breaks invoiced revenue down by tag and by revenue
// ledger account, with the same cost and margin model the volume report
// carries.
type RevenueReport struct {
	TotalInvoiced    decimal.Decimal      `json:"total_invoiced"`
	TotalCreditNotes decimal.Decimal      `json:"total_credit_notes"`
	NetRevenue       decimal.Decimal      `json:"net_revenue"`
	TotalCost        decimal.Decimal      `json:"total_cost"`
	GrossProfit      decimal.Decimal      `json:"gross_profit"`
	Costs            models.JobCostTotals `json:"costs"`
	TagDistribution  []TagSummary         `json:"tag_distribution"`
	AccountBalances  []AccountBalanceRow  `json:"account_balances"`
	Chart            []ChartPoint         `json:"chart"`
}

func (r *RevenueReport) Metrics() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"total_invoiced":     r.TotalInvoiced,
		"total_credit_notes": r.TotalCreditNotes,
		"net_revenue":        r.NetRevenue,
		"total_cost":         r.TotalCost,
		"gross_profit":       r.GrossProfit,
	}
}

// BuildRevenueReport folds invoices and credit notes into revenue totals
// and a tag distribution. An invoice carrying several tags counts once per
// tag; tagless invoices land in the untagged bucket. Percentages are by
// invoice count. The margin works off the charged amount net of credit
// notes, against usage plus purchase-order costs.
func BuildRevenueReport(invoices []*models.Invoice, creditNotes []*models.CreditNote, purchaseOrders []*models.PurchaseOrder, costs models.JobCostTotals, tagsByInvoice map[int][]string) *RevenueReport {
	report := &RevenueReport{
		TotalInvoiced:    decimal.Zero,
		TotalCreditNotes: decimal.Zero,
	}

	tagOrder := []string{}
	tagSummaries := map[string]*TagSummary{}
	bump := func(name string, total decimal.Decimal) {
		summary, ok := tagSummaries[name]
		if !ok {
			summary = &TagSummary{Name: name, Total: decimal.Zero}
			tagSummaries[name] = summary
			tagOrder = append(tagOrder, name)
		}
		summary.Count++
		summary.Total = summary.Total.Add(total)
	}

	series := newChartSeries()
	for _, invoice := range invoices {
		total := invoice.TotalAmount()
		report.TotalInvoiced = report.TotalInvoiced.Add(total)
		series.Add(invoice.Date, total)

		tags := tagsByInvoice[invoice.ID]
		if len(tags) == 0 {
			bump(untaggedBucket, total)
			continue
		}
		for _, tag := range tags {
			bump(tag, total)
		}
	}

	for _, creditNote := range creditNotes {
		report.TotalCreditNotes = report.TotalCreditNotes.Add(creditNote.TotalAmount())
	}
	report.NetRevenue = report.TotalInvoiced.Sub(report.TotalCreditNotes)

	purchaseOrdersTotal := decimal.Zero
	for _, purchaseOrder := range purchaseOrders {
		purchaseOrdersTotal = purchaseOrdersTotal.Add(purchaseOrder.TotalAmount())
	}
	costs.PurchaseOrders = purchaseOrdersTotal
	report.Costs = costs
	report.TotalCost = costs.Total()
	report.GrossProfit = utils.Percent(report.NetRevenue.Sub(report.TotalCost), report.NetRevenue)

	invoiceCount := decimal.NewFromInt(int64(len(invoices)))
	for _, name := range tagOrder {
		summary := tagSummaries[name]
		summary.Percent = utils.Percent(decimal.NewFromInt(int64(summary.Count)), invoiceCount)
		report.TagDistribution = append(report.TagDistribution, *summary)
	}

	report.Chart = series.Points()
	return report
}

// GetRevenueReport fetches the approved documents and usage costs in
// scope, folds them with their tags and, for date-mode filters, appends
// posted balances of the organization's revenue accounts.
func GetRevenueReport(ctx context.Context, fetcher *DocumentFetcher, balances GLBalanceService, filter *ReportFilter) (*RevenueReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetRevenueReport")
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

	invoiceIds := make([]int, 0, len(invoices))
	for _, invoice := range invoices {
		invoiceIds = append(invoiceIds, invoice.ID)
	}
	tagsByInvoice, err := models.GetDocumentTagNames(ctx, models.DocumentTypeInvoice, invoiceIds)
	if err != nil {
		return nil, err
	}

	report := BuildRevenueReport(invoices, creditNotes, purchaseOrders, costs, tagsByInvoice)

	// Ledger balances need an accounting organization, which hangs off the
	// location. Job-mode filters have no location, so they skip this block.
	if mode, ok := filter.Mode.(ByLocationAndDate); ok {
		organization, err := models.ResolveActiveAccountingOrganization(ctx, mode.LocationId)
		if err != nil {
			return nil, err
		}
		accounts, err := models.GetRevenueAccounts(ctx, organization.ID)
		if err != nil {
			return nil, err
		}
		for _, account := range accounts {
			balance, err := balances.AccountBalance(ctx, account.ID, mode.DateFrom, mode.DateTo)
			if err != nil {
				return nil, err
			}
			report.AccountBalances = append(report.AccountBalances, AccountBalanceRow{
				AccountId:   account.ID,
				AccountName: account.Name,
				Balance:     balance,
			})
		}
	}

	return report, nil
}

func GetRevenueReportWithComparison(ctx context.Context, fetcher *DocumentFetcher, balances GLBalanceService, filter *ReportFilter) (*ReportWithComparison[*RevenueReport], error) {
	previousFilter, err := filter.PreviousPeriodFilter()
	if err != nil {
		return nil, err
	}

	current, err := GetRevenueReport(ctx, fetcher, balances, filter)
	if err != nil {
		return nil, err
	}
	previous, err := GetRevenueReport(ctx, fetcher, balances, previousFilter)
	if err != nil {
		return nil, err
	}
	return WithComparison(current, previous), nil
}

package reports

import (
	"context"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/shopspring/decimal"
)

// IncomeAccountRow is recognized income against one revenue account.
type IncomeAccountRow struct {
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeAccountTypeGroup groups recognized income rows by account type.
type IncomeAccountTypeGroup struct {
	TypeName string             `json:"type_name"`
	Accounts []IncomeAccountRow `json:"accounts"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// IncomeReport recognizes income from invoices whose payments cover their
// revenue line items, grouped by the ledger classification of those items.
type IncomeReport struct {
	AccountTypes    []IncomeAccountTypeGroup `json:"account_types"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	ForwardedAmount decimal.Decimal          `json:"forwarded_amount"`
	NetTotalAmount  decimal.Decimal          `json:"net_total_amount"`
}

func (r *IncomeReport) Metrics() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"total_amount":     r.TotalAmount,
		"forwarded_amount": r.ForwardedAmount,
		"net_total_amount": r.NetTotalAmount,
	}
}

// BuildIncomeReport recognizes income per invoice. An invoice counts only
// when its collected payments reach the ex-tax total of its revenue-group
// items; a payment one cent short keeps the whole invoice out. Amounts
// transferred onward from forwarded-payment invoices are netted off the
// total. An empty scope yields an empty report, not nil.
func BuildIncomeReport(invoices []*models.Invoice, forwardedAmounts map[int]decimal.Decimal) *IncomeReport {
	report := &IncomeReport{
		TotalAmount:     decimal.Zero,
		ForwardedAmount: decimal.Zero,
		NetTotalAmount:  decimal.Zero,
	}

	typeOrder := []string{}
	groups := map[string]*IncomeAccountTypeGroup{}
	accountIndex := map[string]map[string]int{}

	addRow := func(typeName string, accountName string, amount decimal.Decimal) {
		group, ok := groups[typeName]
		if !ok {
			group = &IncomeAccountTypeGroup{TypeName: typeName, Subtotal: decimal.Zero}
			groups[typeName] = group
			accountIndex[typeName] = map[string]int{}
			typeOrder = append(typeOrder, typeName)
		}
		if idx, ok := accountIndex[typeName][accountName]; ok {
			group.Accounts[idx].Amount = group.Accounts[idx].Amount.Add(amount)
		} else {
			accountIndex[typeName][accountName] = len(group.Accounts)
			group.Accounts = append(group.Accounts, IncomeAccountRow{AccountName: accountName, Amount: amount})
		}
		group.Subtotal = group.Subtotal.Add(amount)
	}

	for _, invoice := range invoices {
		itemsTotal := decimal.Zero
		revenueItems := []*models.FinancialDocumentItem{}
		for idx := range invoice.Items {
			item := &invoice.Items[idx]
			if !item.GLAccount.IsRevenueGroup() {
				continue
			}
			itemsTotal = itemsTotal.Add(item.TotalExTax())
			revenueItems = append(revenueItems, item)
		}
		if len(revenueItems) == 0 {
			continue
		}

		income := invoice.TotalPaid()
		if !income.GreaterThanOrEqual(itemsTotal) {
			continue
		}

		for _, item := range revenueItems {
			typeName := ""
			accountName := ""
			if item.GLAccount != nil {
				accountName = item.GLAccount.Name
				if item.GLAccount.AccountType != nil {
					typeName = item.GLAccount.AccountType.Name
				}
			}
			amount := item.TotalExTax()
			addRow(typeName, accountName, amount)
			report.TotalAmount = report.TotalAmount.Add(amount)
		}

		if invoiceHasForwardedPayment(invoice) {
			report.ForwardedAmount = report.ForwardedAmount.Add(forwardedAmounts[invoice.ID])
		}
	}

	for _, typeName := range typeOrder {
		report.AccountTypes = append(report.AccountTypes, *groups[typeName])
	}
	report.NetTotalAmount = report.TotalAmount.Sub(report.ForwardedAmount)
	return report
}

func invoiceHasForwardedPayment(invoice *models.Invoice) bool {
	for idx := range invoice.Payments {
		if invoice.Payments[idx].IsFp {
			return true
		}
	}
	return false
}

// GetIncomeReport fetches approved invoices in scope, loads transferred
// forwarded-payment amounts and folds them into recognized income.
func GetIncomeReport(ctx context.Context, fetcher *DocumentFetcher, filter *ReportFilter) (*IncomeReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetIncomeReport")
	defer span.End()

	invoices, err := fetcher.FetchInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	invoiceIds := make([]int, 0, len(invoices))
	for _, invoice := range invoices {
		invoiceIds = append(invoiceIds, invoice.ID)
	}
	forwardedAmounts, err := models.GetForwardedAmounts(ctx, invoiceIds)
	if err != nil {
		return nil, err
	}

	return BuildIncomeReport(invoices, forwardedAmounts), nil
}

func GetIncomeReportWithComparison(ctx context.Context, fetcher *DocumentFetcher, filter *ReportFilter) (*ReportWithComparison[*IncomeReport], error) {
	previousFilter, err := filter.PreviousPeriodFilter()
	if err != nil {
		return nil, err
	}

	current, err := GetIncomeReport(ctx, fetcher, filter)
	if err != nil {
		return nil, err
	}
	previous, err := GetIncomeReport(ctx, fetcher, previousFilter)
	if err != nil {
		return nil, err
	}
	return WithComparison(current, previous), nil
}

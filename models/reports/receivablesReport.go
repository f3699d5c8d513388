package reports

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// AgingBuckets splits outstanding amounts by how far past due they are at
// the reference date.
type AgingBuckets struct {
	Current    decimal.Decimal `json:"current"`
	More30Days decimal.Decimal `json:"more_30_days"`
	More60Days decimal.Decimal `json:"more_60_days"`
	More90Days decimal.Decimal `json:"more_90_days"`
	Total      decimal.Decimal `json:"total"`
}

func newAgingBuckets() AgingBuckets {
	return AgingBuckets{
		Current:    decimal.Zero,
		More30Days: decimal.Zero,
		More60Days: decimal.Zero,
		More90Days: decimal.Zero,
		Total:      decimal.Zero,
	}
}

// add places an outstanding amount into the bucket for its overdue age.
// Up to 30 days counts as current, then 30-day steps to the 90+ bucket.
func (b *AgingBuckets) add(daysOverdue int, amount decimal.Decimal) {
	switch {
	case daysOverdue <= 30:
		b.Current = b.Current.Add(amount)
	case daysOverdue <= 60:
		b.More30Days = b.More30Days.Add(amount)
	case daysOverdue <= 90:
		b.More60Days = b.More60Days.Add(amount)
	default:
		b.More90Days = b.More90Days.Add(amount)
	}
	b.Total = b.Total.Add(amount)
}

// ContactAging is the aging breakdown for one invoice recipient.
type ContactAging struct {
	ContactId   int    `json:"contact_id"`
	ContactName string `json:"contact_name"`
	AgingBuckets
}

// ReceivablesReport is the aged-receivables summary: overall buckets plus
// a per-recipient breakdown.
type ReceivablesReport struct {
	AgingBuckets
	Contacts []ContactAging `json:"contacts"`
	Chart    []ChartPoint   `json:"chart"`
}

func (r *ReceivablesReport) Metrics() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"current":      r.Current,
		"more_30_days": r.More30Days,
		"more_60_days": r.More60Days,
		"more_90_days": r.More90Days,
		"total":        r.Total,
	}
}

// BuildReceivablesReport ages each invoice's outstanding amount against
// the reference date. Invoices due strictly after the reference date are
// not yet receivable and are excluded.
func BuildReceivablesReport(invoices []*models.Invoice, referenceDate time.Time) *ReceivablesReport {
	report := &ReceivablesReport{AgingBuckets: newAgingBuckets()}

	contactOrder := []int{}
	contactBuckets := map[int]*AgingBuckets{}

	series := newChartSeries()
	for _, invoice := range invoices {
		if invoice.DueAt.After(referenceDate) {
			continue
		}

		outstanding := invoice.Outstanding()
		daysOverdue := utils.DiffInDays(invoice.DueAt, referenceDate)

		report.add(daysOverdue, outstanding)
		series.Add(invoice.DueAt, outstanding)

		buckets, ok := contactBuckets[invoice.RecipientContactId]
		if !ok {
			fresh := newAgingBuckets()
			buckets = &fresh
			contactBuckets[invoice.RecipientContactId] = buckets
			contactOrder = append(contactOrder, invoice.RecipientContactId)
		}
		buckets.add(daysOverdue, outstanding)
	}

	for _, contactId := range contactOrder {
		report.Contacts = append(report.Contacts, ContactAging{
			ContactId:    contactId,
			AgingBuckets: *contactBuckets[contactId],
		})
	}
	report.Chart = series.Points()
	return report
}

// GetReceivablesReport fetches approved invoices in scope, builds the
// aging breakdown and resolves recipient names in one batched lookup.
func GetReceivablesReport(ctx context.Context, fetcher *DocumentFetcher, filter *ReportFilter) (*ReceivablesReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetReceivablesReport")
	defer span.End()

	invoices, err := fetcher.FetchInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := BuildReceivablesReport(invoices, filter.ReferenceDate())

	loader := NewContactNameLoader()
	thunks := make([]func() (string, error), len(report.Contacts))
	for i := range report.Contacts {
		thunks[i] = loader.Load(ctx, report.Contacts[i].ContactId)
	}
	for i, thunk := range thunks {
		name, err := thunk()
		if err != nil {
			return nil, err
		}
		report.Contacts[i].ContactName = name
	}

	return report, nil
}

func GetReceivablesReportWithComparison(ctx context.Context, fetcher *DocumentFetcher, filter *ReportFilter) (*ReportWithComparison[*ReceivablesReport], error) {
	previousFilter, err := filter.PreviousPeriodFilter()
	if err != nil {
		return nil, err
	}

	current, err := GetReceivablesReport(ctx, fetcher, filter)
	if err != nil {
		return nil, err
	}
	previous, err := GetReceivablesReport(ctx, fetcher, previousFilter)
	if err != nil {
		return nil, err
	}
	return WithComparison(current, previous), nil
}

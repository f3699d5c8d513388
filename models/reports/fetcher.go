package reports

import (
	"context"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"gorm.io/gorm"
)

// DocumentFetcher selects the approved financial documents in a filter's
// scope. Only the latest status row decides whether a document counts;
// drafts, pending and voided documents never reach a report.
type DocumentFetcher struct {
	DB *gorm.DB
}

func NewDocumentFetcher(db *gorm.DB) *DocumentFetcher {
	return &DocumentFetcher{DB: db}
}

const approvedDocumentIdsSQL = `
WITH latest_status AS (
    SELECT document_id, MAX(id) AS max_id
    FROM document_statuses
    WHERE document_type = @documentType
    GROUP BY document_id
)
SELECT d.id
FROM {{ .table }} d
JOIN latest_status ls ON ls.document_id = d.id
JOIN document_statuses ds ON ds.id = ls.max_id AND ds.status = 'approved'
WHERE
{{- if .byJobs }}
    d.job_id IN @jobIds
{{- else }}
    d.location_id = @locationId
    AND d.date >= @dateFrom AND d.date <= @dateTo
{{- end }}
{{- if .withTags }}
    AND d.id IN (
        SELECT dt.document_id FROM document_tags dt
        WHERE dt.document_type = @documentType AND dt.tag_id IN @tagIds
    )
{{- end }}
{{- if .withAccount }}
    AND d.id IN (
        SELECT di.document_id FROM financial_document_items di
        WHERE di.document_type = @documentType AND di.gl_account_id = @glAccountId
    )
{{- end }}
ORDER BY d.id
`

func (f *DocumentFetcher) approvedIds(ctx context.Context, documentType models.DocumentType, table string, filter *ReportFilter) ([]int, error) {
	params := map[string]interface{}{
		"table":       table,
		"withTags":    len(filter.TagIds) > 0,
		"withAccount": filter.GLAccountId != 0,
	}
	args := map[string]interface{}{
		"documentType": string(documentType),
		"tagIds":       filter.TagIds,
		"glAccountId":  filter.GLAccountId,
	}

	switch mode := filter.Mode.(type) {
	case ByJobs:
		params["byJobs"] = true
		args["jobIds"] = mode.JobIds
	case ByLocationAndDate:
		params["byJobs"] = false
		args["locationId"] = mode.LocationId
		args["dateFrom"] = mode.DateFrom
		args["dateTo"] = mode.DateTo
	default:
		return nil, ErrorMissingScope
	}

	sql, err := utils.ExecTemplate(approvedDocumentIdsSQL, params)
	if err != nil {
		return nil, err
	}

	var ids []int
	if err := f.DB.WithContext(ctx).Raw(sql, args).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FetchInvoices hydrates approved invoices with items, account
// classification, tax rates and payments.
func (f *DocumentFetcher) FetchInvoices(ctx context.Context, filter *ReportFilter) ([]*models.Invoice, error) {
	ids, err := f.approvedIds(ctx, models.DocumentTypeInvoice, "invoices", filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var invoices []*models.Invoice
	err = f.DB.WithContext(ctx).
		Preload("Items.TaxRate").
		Preload("Items.GLAccount.AccountType.Group").
		Preload("Payments").
		Where("id IN ?", ids).
		Order("id").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (f *DocumentFetcher) FetchCreditNotes(ctx context.Context, filter *ReportFilter) ([]*models.CreditNote, error) {
	ids, err := f.approvedIds(ctx, models.DocumentTypeCreditNote, "credit_notes", filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var creditNotes []*models.CreditNote
	err = f.DB.WithContext(ctx).
		Preload("Items.TaxRate").
		Preload("Items.GLAccount.AccountType.Group").
		Where("id IN ?", ids).
		Order("id").
		Find(&creditNotes).Error
	if err != nil {
		return nil, err
	}
	return creditNotes, nil
}

func (f *DocumentFetcher) FetchPurchaseOrders(ctx context.Context, filter *ReportFilter) ([]*models.PurchaseOrder, error) {
	ids, err := f.approvedIds(ctx, models.DocumentTypePurchaseOrder, "purchase_orders", filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var purchaseOrders []*models.PurchaseOrder
	err = f.DB.WithContext(ctx).
		Preload("Items.TaxRate").
		Where("id IN ?", ids).
		Order("id").
		Find(&purchaseOrders).Error
	if err != nil {
		return nil, err
	}
	return purchaseOrders, nil
}

// jobIdsForFilter resolves the job set whose usage costs belong to this
// scope: the explicit ids in job mode, the location's jobs otherwise.
func jobIdsForFilter(ctx context.Context, filter *ReportFilter) ([]int, error) {
	switch mode := filter.Mode.(type) {
	case ByJobs:
		return utils.UniqueSlice(mode.JobIds), nil
	case ByLocationAndDate:
		return models.GetJobIdsForLocation(ctx, mode.LocationId)
	default:
		return nil, ErrorMissingScope
	}
}

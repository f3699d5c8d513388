package reports

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TrialBalanceInput scopes the trial balance to a location's accounting
// organization over a date window.
type TrialBalanceInput struct {
	LocationId int               `json:"location_id" binding:"required"`
	DateFrom   models.DateString `json:"date_from" binding:"required"`
	DateTo     models.DateString `json:"date_to" binding:"required"`
}

// TrialBalanceRow carries period and financial-year-to-date movement for
// one ledger account.
type TrialBalanceRow struct {
	AccountId       int             `json:"account_id"`
	AccountName     string          `json:"account_name"`
	GroupName       string          `json:"group_name"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	DebitAmountYtd  decimal.Decimal `json:"debit_amount_ytd"`
	CreditAmountYtd decimal.Decimal `json:"credit_amount_ytd"`
}

// TrialBalanceGroup collects the accounts of one account-type group.
type TrialBalanceGroup struct {
	GroupName string            `json:"group_name"`
	Rows      []TrialBalanceRow `json:"rows"`
}

// TrialBalanceReport is the grouped trial balance plus a synthetic TOTAL
// row. A balanced ledger shows equal debit and credit totals.
type TrialBalanceReport struct {
	OrganizationId int                 `json:"organization_id"`
	DateFrom       time.Time           `json:"date_from"`
	DateTo         time.Time           `json:"date_to"`
	Groups         []TrialBalanceGroup `json:"groups"`
	Total          TrialBalanceRow     `json:"total"`
}

// Only these groups appear on the trial balance; accounts under other
// groups (Expense, Equity) are out of scope.
var trialBalanceGroups = []string{
	models.AccountGroupRevenue,
	models.AccountGroupAsset,
	models.AccountGroupLiability,
}

const trialBalanceSQL = `
SELECT
    ga.id AS account_id,
    ga.name AS account_name,
    atg.name AS group_name,
    COALESCE(SUM(CASE WHEN tr.is_debit AND t.created_at >= @dateFrom AND t.created_at <= @dateTo THEN tr.amount ELSE 0 END), 0) AS debit_amount,
    COALESCE(SUM(CASE WHEN NOT tr.is_debit AND t.created_at >= @dateFrom AND t.created_at <= @dateTo THEN tr.amount ELSE 0 END), 0) AS credit_amount,
    COALESCE(SUM(CASE WHEN tr.is_debit AND t.created_at >= @ytdFrom AND t.created_at <= @dateTo THEN tr.amount ELSE 0 END), 0) AS debit_amount_ytd,
    COALESCE(SUM(CASE WHEN NOT tr.is_debit AND t.created_at >= @ytdFrom AND t.created_at <= @dateTo THEN tr.amount ELSE 0 END), 0) AS credit_amount_ytd
FROM gl_accounts ga
JOIN account_types at2 ON at2.id = ga.account_type_id
JOIN account_type_groups atg ON atg.id = at2.account_type_group_id
LEFT JOIN transaction_records tr ON tr.gl_account_id = ga.id
LEFT JOIN transactions t ON t.id = tr.transaction_id
    AND t.accounting_organization_id = ga.accounting_organization_id
WHERE ga.accounting_organization_id = @organizationId AND ga.is_active = 1
    AND atg.name IN @groupNames
GROUP BY ga.id, ga.name, atg.name
ORDER BY atg.name, ga.name, ga.id
`

// BuildGroupedTrialBalance groups rows by account-type group in row order
// and sums the TOTAL row in exact decimal arithmetic.
func BuildGroupedTrialBalance(rows []TrialBalanceRow) ([]TrialBalanceGroup, TrialBalanceRow) {
	total := TrialBalanceRow{
		AccountName:     "TOTAL",
		DebitAmount:     decimal.Zero,
		CreditAmount:    decimal.Zero,
		DebitAmountYtd:  decimal.Zero,
		CreditAmountYtd: decimal.Zero,
	}

	groupOrder := []string{}
	grouped := map[string][]TrialBalanceRow{}
	for _, row := range rows {
		if _, seen := grouped[row.GroupName]; !seen {
			groupOrder = append(groupOrder, row.GroupName)
		}
		grouped[row.GroupName] = append(grouped[row.GroupName], row)

		total.DebitAmount = total.DebitAmount.Add(row.DebitAmount)
		total.CreditAmount = total.CreditAmount.Add(row.CreditAmount)
		total.DebitAmountYtd = total.DebitAmountYtd.Add(row.DebitAmountYtd)
		total.CreditAmountYtd = total.CreditAmountYtd.Add(row.CreditAmountYtd)
	}

	groups := make([]TrialBalanceGroup, 0, len(groupOrder))
	for _, name := range groupOrder {
		groups = append(groups, TrialBalanceGroup{GroupName: name, Rows: grouped[name]})
	}
	return groups, total
}

// GetGlAccountTrialReport builds the trial balance for the location's
// active accounting organization. A location without one is a hard error;
// the report never silently drops to an empty ledger. Year-to-date figures
// run from the start of the financial year containing the window end.
func GetGlAccountTrialReport(ctx context.Context, db *gorm.DB, input *TrialBalanceInput) (*TrialBalanceReport, error) {
	ctx, span := tracer.Start(ctx, "reports.GetGlAccountTrialReport")
	defer span.End()

	organization, err := models.ResolveActiveAccountingOrganization(ctx, input.LocationId)
	if err != nil {
		return nil, err
	}

	dateFrom := input.DateFrom
	dateTo := input.DateTo
	if err := dateFrom.StartOfDayUTCTime(""); err != nil {
		return nil, err
	}
	if err := dateTo.EndOfDayUTCTime(""); err != nil {
		return nil, err
	}

	ytdFrom := utils.FinancialYearStart(time.Time(dateTo))

	var rows []TrialBalanceRow
	err = db.WithContext(ctx).Raw(trialBalanceSQL, map[string]interface{}{
		"organizationId": organization.ID,
		"dateFrom":       time.Time(dateFrom),
		"dateTo":         time.Time(dateTo),
		"ytdFrom":        ytdFrom,
		"groupNames":     trialBalanceGroups,
	}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groups, total := BuildGroupedTrialBalance(rows)
	return &TrialBalanceReport{
		OrganizationId: organization.ID,
		DateFrom:       time.Time(dateFrom),
		DateTo:         time.Time(dateTo),
		Groups:         groups,
		Total:          total,
	}, nil
}

package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Three-level chart-of-accounts classification:
// GLAccount -> AccountType -> AccountTypeGroup
// e.g. "Cleaning Revenue" -> "Revenue" -> "Revenue".

type AccountTypeGroup struct {
	ID   int    `gorm:"primary_key" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name" binding:"required"`
}

type AccountType struct {
	ID                 int               `gorm:"primary_key" json:"id"`
	Name               string            `gorm:"size:100;not null" json:"name" binding:"required"`
	AccountTypeGroupId int               `gorm:"index;not null" json:"account_type_group_id" binding:"required"`
	Group              *AccountTypeGroup `gorm:"foreignKey:AccountTypeGroupId" json:"group,omitempty"`
	// Credit-normal types (revenue, liabilities) increase on credit.
	IncreaseActionIsDebit *bool `gorm:"not null;default:true" json:"increase_action_is_debit"`
}

type GLAccount struct {
	ID                       int          `gorm:"primary_key" json:"id"`
	Name                     string       `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Code                     string       `gorm:"size:20" json:"code"`
	AccountTypeId            int          `gorm:"index;not null" json:"account_type_id" binding:"required"`
	AccountType              *AccountType `gorm:"foreignKey:AccountTypeId" json:"account_type,omitempty"`
	AccountingOrganizationId int          `gorm:"index;not null" json:"accounting_organization_id" binding:"required"`
	IsActive                 *bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt                time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// IsRevenueGroup reports whether the account classifies under the Revenue
// account-type group. Requires AccountType.Group preloaded; unclassified
// accounts are treated as non-revenue.
func (a *GLAccount) IsRevenueGroup() bool {
	if a == nil || a.AccountType == nil || a.AccountType.Group == nil {
		return false
	}
	return a.AccountType.Group.Name == AccountGroupRevenue
}

func GetGLAccount(ctx context.Context, id int) (*GLAccount, error) {
	db := config.GetDB()
	var account GLAccount
	if err := db.WithContext(ctx).
		Preload("AccountType.Group").
		First(&account, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &account, nil
}

// GLAccountService computes ledger balances for single accounts. Reports
// take it as a collaborator rather than reaching for globals.
type GLAccountService struct {
	DB *gorm.DB
}

func NewGLAccountService(db *gorm.DB) *GLAccountService {
	return &GLAccountService{DB: db}
}

// AccountBalance sums transaction records posted to the account within the
// window. Credit-normal accounts report credits minus debits; debit-normal
// the reverse.
func (s *GLAccountService) AccountBalance(ctx context.Context, accountId int, from time.Time, to time.Time) (decimal.Decimal, error) {
	var account GLAccount
	if err := s.DB.WithContext(ctx).Preload("AccountType").First(&account, accountId).Error; err != nil {
		return decimal.Zero, utils.ErrorRecordNotFound
	}

	row := s.DB.WithContext(ctx).
		Table("transaction_records tr").
		Joins("JOIN transactions t ON t.id = tr.transaction_id").
		Select(
			"COALESCE(SUM(CASE WHEN tr.is_debit THEN tr.amount ELSE 0 END), 0) AS debit, "+
				"COALESCE(SUM(CASE WHEN NOT tr.is_debit THEN tr.amount ELSE 0 END), 0) AS credit").
		Where("tr.gl_account_id = ? AND t.created_at >= ? AND t.created_at <= ?", accountId, from, to).
		Row()

	var debitStr, creditStr string
	if err := row.Scan(&debitStr, &creditStr); err != nil {
		return decimal.Zero, err
	}
	debit, err := utils.ParseDecimal(debitStr)
	if err != nil {
		return decimal.Zero, err
	}
	credit, err := utils.ParseDecimal(creditStr)
	if err != nil {
		return decimal.Zero, err
	}

	if account.AccountType != nil && account.AccountType.IncreaseActionIsDebit != nil && !*account.AccountType.IncreaseActionIsDebit {
		return credit.Sub(debit), nil
	}
	return debit.Sub(credit), nil
}

// GetRevenueAccounts lists active accounts under the Revenue group for an
// accounting organization.
func GetRevenueAccounts(ctx context.Context, organizationId int) ([]*GLAccount, error) {
	db := config.GetDB()
	var accounts []*GLAccount
	err := db.WithContext(ctx).
		Joins("JOIN account_types at2 ON at2.id = gl_accounts.account_type_id").
		Joins("JOIN account_type_groups atg ON atg.id = at2.account_type_group_id").
		Where("atg.name = ? AND gl_accounts.accounting_organization_id = ? AND gl_accounts.is_active = ?",
			AccountGroupRevenue, organizationId, true).
		Preload("AccountType.Group").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

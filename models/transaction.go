package models

import (
	"context"
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger posting group under an accounting
// organization. Records are never updated after creation.
type Transaction struct {
	ID                       int                 `gorm:"primary_key" json:"id"`
	AccountingOrganizationId int                 `gorm:"index;not null" json:"accounting_organization_id" binding:"required"`
	Reference                string              `gorm:"size:100" json:"reference"`
	CreatedAt                time.Time           `gorm:"autoCreateTime;index" json:"created_at"`
	Records                  []TransactionRecord `gorm:"foreignKey:TransactionId" json:"records,omitempty"`
}

type TransactionRecord struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TransactionId int             `gorm:"index;not null" json:"transaction_id"`
	GLAccountId   int             `gorm:"index;not null" json:"gl_account_id" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount" binding:"required"`
	IsDebit       bool            `gorm:"not null" json:"is_debit"`
}

type NewTransactionRecord struct {
	GLAccountId int             `json:"gl_account_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IsDebit     bool            `json:"is_debit"`
}

// CreateTransaction posts a balanced set of records. Debits must equal
// credits; amounts must be positive.
func CreateTransaction(ctx context.Context, organizationId int, reference string, records []NewTransactionRecord) (*Transaction, error) {
	if len(records) == 0 {
		return nil, errors.New("transaction requires at least one record")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, r := range records {
		if r.Amount.IsNegative() || r.Amount.IsZero() {
			return nil, errors.New("record amount must be positive")
		}
		if r.IsDebit {
			debits = debits.Add(r.Amount)
		} else {
			credits = credits.Add(r.Amount)
		}
	}
	if !debits.Equal(credits) {
		return nil, errors.New("transaction debits and credits must balance")
	}

	transaction := Transaction{
		AccountingOrganizationId: organizationId,
		Reference:                reference,
	}
	for _, r := range records {
		transaction.Records = append(transaction.Records, TransactionRecord{
			GLAccountId: r.GLAccountId,
			Amount:      r.Amount,
			IsDebit:     r.IsDebit,
		})
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

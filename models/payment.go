package models

import (
	"context"
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// InvoicePayment is a payment received against an invoice. IsFp marks a
// forwarded payment: money collected here on behalf of another branch,
// excluded from this location's recognized income.
type InvoicePayment struct {
	ID        int             `gorm:"primary_key" json:"id"`
	InvoiceId int             `gorm:"index;not null" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount" binding:"required"`
	IsFp      bool            `gorm:"not null;default:false" json:"is_fp"`
	Reference string          `gorm:"size:100" json:"reference"`
	PaidAt    time.Time       `gorm:"index;not null" json:"paid_at"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// ForwardedPaymentInvoice records the amount of an invoice's takings
// forwarded to the owning branch.
type ForwardedPaymentInvoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceId     int             `gorm:"index;not null" json:"invoice_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	TransferredAt *time.Time      `json:"transferred_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewInvoicePayment struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	IsFp      bool            `json:"is_fp"`
	Reference string          `json:"reference"`
	PaidAt    DateString      `json:"paid_at" binding:"required"`
}

func CreateInvoicePayment(ctx context.Context, invoiceId int, input *NewInvoicePayment) (*InvoicePayment, error) {
	if input.Amount.IsZero() || input.Amount.IsNegative() {
		return nil, errors.New("payment amount must be positive")
	}
	if err := utils.ValidateResourceId[Invoice](ctx, invoiceId); err != nil {
		return nil, err
	}

	payment := InvoicePayment{
		InvoiceId: invoiceId,
		Amount:    input.Amount,
		IsFp:      input.IsFp,
		Reference: input.Reference,
		PaidAt:    time.Time(input.PaidAt),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetForwardedAmounts sums forwarded-payment rows per invoice id.
func GetForwardedAmounts(ctx context.Context, invoiceIds []int) (map[int]decimal.Decimal, error) {
	result := make(map[int]decimal.Decimal, len(invoiceIds))
	if len(invoiceIds) == 0 {
		return result, nil
	}

	db := config.GetDB()
	rows, err := db.WithContext(ctx).
		Model(&ForwardedPaymentInvoice{}).
		Select("invoice_id, COALESCE(SUM(amount), 0)").
		Where("invoice_id IN ?", invoiceIds).
		Group("invoice_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var invoiceId int
		var amountStr string
		if err := rows.Scan(&invoiceId, &amountStr); err != nil {
			return nil, err
		}
		amount, err := utils.ParseDecimal(amountStr)
		if err != nil {
			return nil, err
		}
		result[invoiceId] = amount
	}
	return result, rows.Err()
}

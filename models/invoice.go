package models

import (
	"context"
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID                 int                     `gorm:"primary_key" json:"id"`
	LocationId         int                     `gorm:"index;not null" json:"location_id" binding:"required"`
	JobId              int                     `gorm:"index" json:"job_id"`
	RecipientContactId int                     `gorm:"index;not null" json:"recipient_contact_id" binding:"required"`
	Date               time.Time               `gorm:"index;not null" json:"date"`
	DueAt              time.Time               `gorm:"index;not null" json:"due_at"`
	Reference          string                  `gorm:"size:100" json:"reference"`
	Items              []FinancialDocumentItem `gorm:"polymorphic:Document;polymorphicValue:invoice" json:"items,omitempty"`
	Payments           []InvoicePayment        `gorm:"foreignKey:InvoiceId" json:"payments,omitempty"`
	CreatedAt          time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

// TotalAmount recomputes the tax-inclusive total from items.
func (i *Invoice) TotalAmount() decimal.Decimal {
	return SumItemTotals(i.Items)
}

// TotalPaid sums all payments, forwarded or not.
func (i *Invoice) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for idx := range i.Payments {
		total = total.Add(i.Payments[idx].Amount)
	}
	return total
}

// Outstanding is the unpaid remainder; may be negative when overpaid.
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount().Sub(i.TotalPaid())
}

type NewInvoiceItem struct {
	GLAccountId  int             `json:"gl_account_id" binding:"required"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	MarkupRate   decimal.Decimal `json:"markup_rate"`
	TaxRateId    int             `json:"tax_rate_id"`
}

type NewInvoice struct {
	LocationId         int              `json:"location_id" binding:"required"`
	JobId              int              `json:"job_id"`
	RecipientContactId int              `json:"recipient_contact_id" binding:"required"`
	Date               DateString       `json:"date" binding:"required"`
	DueAt              DateString       `json:"due_at" binding:"required"`
	Reference          string           `json:"reference"`
	Items              []NewInvoiceItem `json:"items" binding:"required,dive"`
}

func (input *NewInvoice) validate(ctx context.Context) error {
	if len(input.Items) == 0 {
		return errors.New("invoice requires at least one item")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.LocationId); err != nil {
		return errors.New("location not found")
	}
	if err := utils.ValidateResourceId[Contact](ctx, input.RecipientContactId); err != nil {
		return errors.New("recipient contact not found")
	}
	if input.JobId != 0 {
		if err := utils.ValidateResourceId[Job](ctx, input.JobId); err != nil {
			return errors.New("job not found")
		}
	}
	accountIds := make([]int, 0, len(input.Items))
	for _, item := range input.Items {
		accountIds = append(accountIds, item.GLAccountId)
	}
	if err := utils.ValidateResourcesId[GLAccount](ctx, accountIds); err != nil {
		return errors.New("gl account not found")
	}
	return nil
}

// CreateInvoice creates the invoice in draft status.
func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	invoice := Invoice{
		LocationId:         input.LocationId,
		JobId:              input.JobId,
		RecipientContactId: input.RecipientContactId,
		Date:               time.Time(input.Date),
		DueAt:              time.Time(input.DueAt),
		Reference:          input.Reference,
	}
	for _, item := range input.Items {
		invoice.Items = append(invoice.Items, FinancialDocumentItem{
			GLAccountId:  item.GLAccountId,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
			DiscountRate: item.DiscountRate,
			MarkupRate:   item.MarkupRate,
			TaxRateId:    item.TaxRateId,
		})
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := SetDocumentStatus(ctx, tx, DocumentTypeInvoice, invoice.ID, invoice.LocationId, DocumentStatusDraft, userId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if invoice.JobId != 0 {
		_ = TouchJob(ctx, invoice.JobId)
	}
	return &invoice, nil
}

// ApproveInvoice transitions the invoice to approved, making it
// reportable. Voided invoices cannot be approved.
func ApproveInvoice(ctx context.Context, id int) error {
	status, err := GetLatestStatus(ctx, DocumentTypeInvoice, id)
	if err != nil {
		return err
	}
	if status == DocumentStatusVoided {
		return errors.New("voided invoice cannot be approved")
	}
	if status == DocumentStatusApproved {
		return nil
	}

	invoice, err := GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	db := config.GetDB()
	tx := db.Begin()
	if err := SetDocumentStatus(ctx, tx, DocumentTypeInvoice, id, invoice.LocationId, DocumentStatusApproved, userId); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()
	var invoice Invoice
	err := db.WithContext(ctx).
		Preload("Items.TaxRate").
		Preload("Items.GLAccount.AccountType.Group").
		Preload("Payments").
		First(&invoice, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &invoice, nil
}

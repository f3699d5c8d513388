package models

import (
	"context"
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// CreditNote reduces the amount charged to a recipient; reported as a
// deduction from invoiced revenue.
type CreditNote struct {
	ID                 int                     `gorm:"primary_key" json:"id"`
	LocationId         int                     `gorm:"index;not null" json:"location_id" binding:"required"`
	JobId              int                     `gorm:"index" json:"job_id"`
	RecipientContactId int                     `gorm:"index;not null" json:"recipient_contact_id" binding:"required"`
	Date               time.Time               `gorm:"index;not null" json:"date"`
	Reference          string                  `gorm:"size:100" json:"reference"`
	Items              []FinancialDocumentItem `gorm:"polymorphic:Document;polymorphicValue:credit_note" json:"items,omitempty"`
	CreatedAt          time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CreditNote) TotalAmount() decimal.Decimal {
	return SumItemTotals(c.Items)
}

type NewCreditNote struct {
	LocationId         int              `json:"location_id" binding:"required"`
	JobId              int              `json:"job_id"`
	RecipientContactId int              `json:"recipient_contact_id" binding:"required"`
	Date               DateString       `json:"date" binding:"required"`
	Reference          string           `json:"reference"`
	Items              []NewInvoiceItem `json:"items" binding:"required,dive"`
}

func CreateCreditNote(ctx context.Context, input *NewCreditNote) (*CreditNote, error) {
	if len(input.Items) == 0 {
		return nil, errors.New("credit note requires at least one item")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.LocationId); err != nil {
		return nil, errors.New("location not found")
	}
	if err := utils.ValidateResourceId[Contact](ctx, input.RecipientContactId); err != nil {
		return nil, errors.New("recipient contact not found")
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	creditNote := CreditNote{
		LocationId:         input.LocationId,
		JobId:              input.JobId,
		RecipientContactId: input.RecipientContactId,
		Date:               time.Time(input.Date),
		Reference:          input.Reference,
	}
	for _, item := range input.Items {
		creditNote.Items = append(creditNote.Items, FinancialDocumentItem{
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
	if err := tx.WithContext(ctx).Create(&creditNote).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := SetDocumentStatus(ctx, tx, DocumentTypeCreditNote, creditNote.ID, creditNote.LocationId, DocumentStatusDraft, userId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &creditNote, nil
}

func ApproveCreditNote(ctx context.Context, id int) error {
	status, err := GetLatestStatus(ctx, DocumentTypeCreditNote, id)
	if err != nil {
		return err
	}
	if status == DocumentStatusVoided {
		return errors.New("voided credit note cannot be approved")
	}
	if status == DocumentStatusApproved {
		return nil
	}

	db := config.GetDB()
	var creditNote CreditNote
	if err := db.WithContext(ctx).First(&creditNote, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	tx := db.Begin()
	if err := SetDocumentStatus(ctx, tx, DocumentTypeCreditNote, id, creditNote.LocationId, DocumentStatusApproved, userId); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

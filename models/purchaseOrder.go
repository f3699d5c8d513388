package models

import (
	"context"
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// PurchaseOrder commits spend against a job; counted as a cost input in
// gross-profit maths.
type PurchaseOrder struct {
	ID                 int                     `gorm:"primary_key" json:"id"`
	LocationId         int                     `gorm:"index;not null" json:"location_id" binding:"required"`
	JobId              int                     `gorm:"index" json:"job_id"`
	RecipientContactId int                     `gorm:"index;not null" json:"recipient_contact_id" binding:"required"`
	Date               time.Time               `gorm:"index;not null" json:"date"`
	Reference          string                  `gorm:"size:100" json:"reference"`
	Items              []FinancialDocumentItem `gorm:"polymorphic:Document;polymorphicValue:purchase_order" json:"items,omitempty"`
	CreatedAt          time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PurchaseOrder) TotalAmount() decimal.Decimal {
	return SumItemTotals(p.Items)
}

type NewPurchaseOrder struct {
	LocationId         int              `json:"location_id" binding:"required"`
	JobId              int              `json:"job_id"`
	RecipientContactId int              `json:"recipient_contact_id" binding:"required"`
	Date               DateString       `json:"date" binding:"required"`
	Reference          string           `json:"reference"`
	Items              []NewInvoiceItem `json:"items" binding:"required,dive"`
}

func CreatePurchaseOrder(ctx context.Context, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, errors.New("purchase order requires at least one item")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.LocationId); err != nil {
		return nil, errors.New("location not found")
	}
	if err := utils.ValidateResourceId[Contact](ctx, input.RecipientContactId); err != nil {
		return nil, errors.New("recipient contact not found")
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	purchaseOrder := PurchaseOrder{
		LocationId:         input.LocationId,
		JobId:              input.JobId,
		RecipientContactId: input.RecipientContactId,
		Date:               time.Time(input.Date),
		Reference:          input.Reference,
	}
	for _, item := range input.Items {
		purchaseOrder.Items = append(purchaseOrder.Items, FinancialDocumentItem{
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
	if err := tx.WithContext(ctx).Create(&purchaseOrder).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := SetDocumentStatus(ctx, tx, DocumentTypePurchaseOrder, purchaseOrder.ID, purchaseOrder.LocationId, DocumentStatusDraft, userId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &purchaseOrder, nil
}

func ApprovePurchaseOrder(ctx context.Context, id int) error {
	status, err := GetLatestStatus(ctx, DocumentTypePurchaseOrder, id)
	if err != nil {
		return err
	}
	if status == DocumentStatusVoided {
		return errors.New("voided purchase order cannot be approved")
	}
	if status == DocumentStatusApproved {
		return nil
	}

	db := config.GetDB()
	var purchaseOrder PurchaseOrder
	if err := db.WithContext(ctx).First(&purchaseOrder, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	userId, _ := utils.GetUserIdFromContext(ctx)

	tx := db.Begin()
	if err := SetDocumentStatus(ctx, tx, DocumentTypePurchaseOrder, id, purchaseOrder.LocationId, DocumentStatusApproved, userId); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

package models

import (
	"context"
	"errors"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"gorm.io/gorm"
)

// DocumentStatus is one row of a document's status history. The row with
// the highest id per document is the current status; only documents whose
// latest status is `approved` are reportable.
type DocumentStatus struct {
	ID           int                 `gorm:"primary_key" json:"id"`
	DocumentType DocumentType        `gorm:"index;size:20;not null" json:"document_type"`
	DocumentId   int                 `gorm:"index;not null" json:"document_id"`
	Status       DocumentStatusValue `gorm:"index;size:20;not null" json:"status"`
	UserId       int                 `gorm:"index" json:"user_id"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

// SetDocumentStatus appends a status row inside tx. Approvals also write an
// outbox record so downstream consumers hear about reportable documents.
func SetDocumentStatus(ctx context.Context, tx *gorm.DB, documentType DocumentType, documentId int, locationId int, status DocumentStatusValue, userId int) error {
	if !status.Valid() {
		return errors.New("invalid document status")
	}

	row := DocumentStatus{
		DocumentType: documentType,
		DocumentId:   documentId,
		Status:       status,
		UserId:       userId,
	}
	if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	if status == DocumentStatusApproved || status == DocumentStatusVoided {
		if err := AddOutboxRecord(ctx, tx, locationId, documentType, documentId, status); err != nil {
			return err
		}
	}
	return nil
}

// GetLatestStatus returns the current status of a document, or draft when
// no history exists yet.
func GetLatestStatus(ctx context.Context, documentType DocumentType, documentId int) (DocumentStatusValue, error) {
	db := config.GetDB()
	var row DocumentStatus
	err := db.WithContext(ctx).
		Where("document_type = ? AND document_id = ?", documentType, documentId).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentStatusDraft, nil
		}
		return "", err
	}
	return row.Status, nil
}

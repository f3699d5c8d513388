package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OutboxRecord implements a transactional outbox for document status
// events: the row is written inside the caller's DB transaction and
// published to Pub/Sub asynchronously after commit.
type OutboxRecord struct {
	ID            int                 `gorm:"primary_key" json:"id"`
	LocationId    int                 `gorm:"index;not null" json:"location_id"`
	ReferenceType DocumentType        `gorm:"index;size:20;not null" json:"reference_type"`
	ReferenceId   int                 `gorm:"index;not null" json:"reference_id"`
	Status        DocumentStatusValue `gorm:"size:20;not null" json:"status"`
	PublishStatus OutboxPublishStatus `gorm:"index;size:10;not null;default:'PENDING'" json:"publish_status"`
	CorrelationId string              `gorm:"size:40" json:"correlation_id"`
	OccurredAt    time.Time           `gorm:"not null" json:"occurred_at"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

// AddOutboxRecord writes the outbox row inside tx; it does NOT publish.
func AddOutboxRecord(ctx context.Context, tx *gorm.DB, locationId int, referenceType DocumentType, referenceId int, status DocumentStatusValue) error {
	record := OutboxRecord{
		LocationId:    locationId,
		ReferenceType: referenceType,
		ReferenceId:   referenceId,
		Status:        status,
		PublishStatus: OutboxPublishStatusPending,
		CorrelationId: correlationIdFromContextOrNew(ctx),
		OccurredAt:    time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&record).Error
}

const outboxBatchSize = 50

// DispatchOutboxOnce publishes up to one batch of pending records and
// marks them published. Returns the number handled.
func DispatchOutboxOnce(ctx context.Context, logger *logrus.Logger) (int, error) {
	db := config.GetDB()

	var records []*OutboxRecord
	err := db.WithContext(ctx).
		Where("publish_status = ?", OutboxPublishStatusPending).
		Order("id ASC").
		Limit(outboxBatchSize).
		Find(&records).Error
	if err != nil {
		return 0, err
	}

	published := 0
	for _, record := range records {
		_, err := config.PublishDocumentEvent(ctx, config.DocumentEvent{
			ID:            record.ID,
			LocationId:    record.LocationId,
			OccurredAt:    record.OccurredAt,
			ReferenceId:   record.ReferenceId,
			ReferenceType: string(record.ReferenceType),
			Status:        string(record.Status),
			CorrelationId: record.CorrelationId,
		})
		if err != nil {
			config.LogError(logger, "models", "DispatchOutboxOnce", "publish document event", record.ID, err)
			continue
		}
		if err := db.WithContext(ctx).Model(record).
			Update("publish_status", OutboxPublishStatusPublished).Error; err != nil {
			return published, err
		}
		published++
	}
	return published, nil
}

// RunOutboxDispatcher loops until ctx is canceled.
func RunOutboxDispatcher(ctx context.Context, logger *logrus.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := DispatchOutboxOnce(ctx, logger); err != nil {
				config.LogError(logger, "models", "RunOutboxDispatcher", "dispatch batch", nil, err)
			}
		}
	}
}

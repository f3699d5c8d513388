package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// AssessmentReport is the scoped damage assessment for a job; its line
// items surface in the costing summary.
type AssessmentReport struct {
	ID        int                    `gorm:"primary_key" json:"id"`
	JobId     int                    `gorm:"index;not null" json:"job_id" binding:"required"`
	Title     string                 `gorm:"size:150" json:"title"`
	Items     []AssessmentReportItem `gorm:"foreignKey:AssessmentReportId" json:"items,omitempty"`
	CreatedAt time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

type AssessmentReportItem struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	AssessmentReportId int             `gorm:"index;not null" json:"assessment_report_id"`
	Description        string          `gorm:"size:255;not null" json:"description"`
	Quantity           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitCost           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost"`
}

func (i *AssessmentReportItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}

type NewAssessmentReportItem struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost" binding:"required"`
}

type NewAssessmentReport struct {
	JobId int                       `json:"job_id" binding:"required"`
	Title string                    `json:"title"`
	Items []NewAssessmentReportItem `json:"items" binding:"dive"`
}

func CreateAssessmentReport(ctx context.Context, input *NewAssessmentReport) (*AssessmentReport, error) {
	if err := utils.ValidateResourceId[Job](ctx, input.JobId); err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	report := AssessmentReport{
		JobId: input.JobId,
		Title: input.Title,
	}
	for _, item := range input.Items {
		report.Items = append(report.Items, AssessmentReportItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
		})
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// GetAssessmentReportItems lists all assessment line items for a job.
func GetAssessmentReportItems(ctx context.Context, jobId int) ([]*AssessmentReportItem, error) {
	db := config.GetDB()
	var items []*AssessmentReportItem
	err := db.WithContext(ctx).
		Joins("JOIN assessment_reports ar ON ar.id = assessment_report_items.assessment_report_id").
		Where("ar.job_id = ?", jobId).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

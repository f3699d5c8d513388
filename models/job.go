package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
)

// Job is a restoration job opened against an insurance claim.
type Job struct {
	ID               int        `gorm:"primary_key" json:"id"`
	LocationId       int        `gorm:"index;not null" json:"location_id" binding:"required"`
	InsuredContactId int        `gorm:"index" json:"insured_contact_id"`
	ClaimNumber      string     `gorm:"index;size:50" json:"claim_number"`
	ReferenceNumber  string     `gorm:"index;size:50" json:"reference_number"`
	Description      string     `gorm:"type:text" json:"description"`
	TouchedAt        *time.Time `json:"touched_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewJob struct {
	LocationId       int    `json:"location_id" binding:"required"`
	InsuredContactId int    `json:"insured_contact_id"`
	ClaimNumber      string `json:"claim_number"`
	ReferenceNumber  string `json:"reference_number"`
	Description      string `json:"description"`
}

func CreateJob(ctx context.Context, input *NewJob) (*Job, error) {
	if err := utils.ValidateResourceId[Location](ctx, input.LocationId); err != nil {
		return nil, err
	}
	if input.InsuredContactId != 0 {
		if err := utils.ValidateResourceId[Contact](ctx, input.InsuredContactId); err != nil {
			return nil, err
		}
	}

	job := Job{
		LocationId:       input.LocationId,
		InsuredContactId: input.InsuredContactId,
		ClaimNumber:      input.ClaimNumber,
		ReferenceNumber:  input.ReferenceNumber,
		Description:      input.Description,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func GetJob(ctx context.Context, id int) (*Job, error) {
	db := config.GetDB()
	var job Job
	if err := db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &job, nil
}

// TouchJob records activity against the job (used for staleness views).
func TouchJob(ctx context.Context, id int) error {
	db := config.GetDB()
	now := time.Now().UTC()
	return db.WithContext(ctx).Model(&Job{}).Where("id = ?", id).
		Update("touched_at", &now).Error
}

// GetJobIdsForLocation lists job ids belonging to a location, used when a
// report filter carries a location rather than an explicit job set.
func GetJobIdsForLocation(ctx context.Context, locationId int) ([]int, error) {
	db := config.GetDB()
	var ids []int
	if err := db.WithContext(ctx).Model(&Job{}).
		Where("location_id = ?", locationId).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

package models

import (
	"context"
	"strings"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
)

// Attachment is a photo or document filed against a job, stored on the
// configured blob backend.
type Attachment struct {
	ID           int       `gorm:"primary_key" json:"id"`
	JobId        int       `gorm:"index;not null" json:"job_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	Url          string    `gorm:"size:500" json:"url"`
	ThumbnailUrl string    `gorm:"size:500" json:"thumbnail_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	thumbnailMaxWidth  = 320
	thumbnailMaxHeight = 320
)

// SaveJobAttachment uploads the blob (plus a thumbnail for images) and
// records the attachment row.
func SaveJobAttachment(ctx context.Context, jobId int, fileName string, contentType string, data []byte) (*Attachment, error) {
	if err := utils.ValidateResourceId[Job](ctx, jobId); err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	objectName := "jobs/" + utils.GenerateUniqueFilename() + "-" + fileName
	url, err := utils.UploadToGCS(ctx, objectName, contentType, data)
	if err != nil {
		return nil, err
	}

	thumbnailUrl := ""
	if strings.HasPrefix(contentType, "image/") {
		thumb, thumbErr := utils.MakeThumbnail(data, thumbnailMaxWidth, thumbnailMaxHeight)
		if thumbErr == nil {
			thumbnailUrl, thumbErr = utils.UploadToGCS(ctx, objectName+".thumb.jpg", "image/jpeg", thumb)
			if thumbErr != nil {
				thumbnailUrl = ""
			}
		}
		// Thumbnail failures are non-fatal; the original upload stands.
	}

	attachment := Attachment{
		JobId:        jobId,
		FileName:     fileName,
		ContentType:  contentType,
		Url:          url,
		ThumbnailUrl: thumbnailUrl,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, err
	}

	_ = TouchJob(ctx, jobId)
	return &attachment, nil
}

func DeleteAttachment(ctx context.Context, id int) error {
	db := config.GetDB()
	var attachment Attachment
	if err := db.WithContext(ctx).First(&attachment, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	return db.WithContext(ctx).Delete(&attachment).Error
}

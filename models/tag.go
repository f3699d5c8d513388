package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
)

type Tag struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name" binding:"required"`
	Color     string    `gorm:"size:10" json:"color"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DocumentTag links a tag to a financial document (polymorphic).
type DocumentTag struct {
	ID           int          `gorm:"primary_key" json:"id"`
	TagId        int          `gorm:"index;not null" json:"tag_id"`
	DocumentType DocumentType `gorm:"index;size:20;not null" json:"document_type"`
	DocumentId   int          `gorm:"index;not null" json:"document_id"`
}

func CreateTag(ctx context.Context, name string, color string) (*Tag, error) {
	tag := Tag{Name: name, Color: color}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func AttachTag(ctx context.Context, tagId int, documentType DocumentType, documentId int) error {
	db := config.GetDB()
	link := DocumentTag{TagId: tagId, DocumentType: documentType, DocumentId: documentId}
	return db.WithContext(ctx).Create(&link).Error
}

// GetDocumentTagNames returns tag names per document id for one document
// kind, used by the tag-distribution breakdown.
func GetDocumentTagNames(ctx context.Context, documentType DocumentType, documentIds []int) (map[int][]string, error) {
	result := make(map[int][]string, len(documentIds))
	if len(documentIds) == 0 {
		return result, nil
	}

	db := config.GetDB()
	rows, err := db.WithContext(ctx).
		Table("document_tags dt").
		Joins("JOIN tags ON tags.id = dt.tag_id").
		Select("dt.document_id, tags.name").
		Where("dt.document_type = ? AND dt.document_id IN ?", documentType, documentIds).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var documentId int
		var name string
		if err := rows.Scan(&documentId, &name); err != nil {
			return nil, err
		}
		result[documentId] = append(result[documentId], name)
	}
	return result, rows.Err()
}

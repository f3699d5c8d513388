package models

import (
	"context"
	"strings"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
)

type Contact struct {
	ID          int         `gorm:"primary_key" json:"id"`
	ContactType ContactType `gorm:"type:enum('person','company');default:'person';size:10;not null" json:"contact_type" binding:"required"`
	FirstName   string      `gorm:"size:100" json:"first_name"`
	LastName    string      `gorm:"size:100" json:"last_name"`
	LegalName   string      `gorm:"size:150" json:"legal_name"`
	Email       string      `gorm:"index;size:100" json:"email"`
	Phone       string      `gorm:"size:30" json:"phone"`
	IsManaged   *bool       `gorm:"not null;default:false" json:"is_managed"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// Name returns the display name: legal name for companies, first+last for
// persons.
func (c *Contact) Name() string {
	if c.ContactType == ContactTypeCompany {
		return c.LegalName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type NewContact struct {
	ContactType ContactType `json:"contact_type" binding:"required"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	LegalName   string      `json:"legal_name"`
	Email       string      `json:"email" binding:"omitempty,email"`
	Phone       string      `json:"phone" binding:"omitempty,au_phone"`
}

func CreateContact(ctx context.Context, input *NewContact) (*Contact, error) {
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, "AU"); err != nil {
			return nil, err
		}
	}

	contact := Contact{
		ContactType: input.ContactType,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		LegalName:   input.LegalName,
		Email:       input.Email,
		Phone:       input.Phone,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func GetContact(ctx context.Context, id int) (*Contact, error) {
	db := config.GetDB()
	var contact Contact
	if err := db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &contact, nil
}

// GetContactsByIds returns contacts keyed by id, for batch name resolution.
func GetContactsByIds(ctx context.Context, ids []int) (map[int]*Contact, error) {
	result := make(map[int]*Contact, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	db := config.GetDB()
	var contacts []*Contact
	if err := db.WithContext(ctx).Where("id IN ?", utils.UniqueSlice(ids)).Find(&contacts).Error; err != nil {
		return nil, err
	}
	for _, c := range contacts {
		result[c.ID] = c
	}
	return result, nil
}

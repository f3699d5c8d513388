package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/shopspring/decimal"
)

type TaxRate struct {
	ID        int             `gorm:"primary_key" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate" binding:"required"`
	IsActive  *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTaxRate struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

func CreateTaxRate(ctx context.Context, input *NewTaxRate) (*TaxRate, error) {
	taxRate := TaxRate{
		Name: input.Name,
		Rate: input.Rate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&taxRate).Error; err != nil {
		return nil, err
	}
	return &taxRate, nil
}

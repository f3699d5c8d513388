package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
)

type Location struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Code      string    `gorm:"index;size:10" json:"code"`
	Timezone  string    `gorm:"size:50" json:"timezone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AccountingOrganization owns a ledger (chart of accounts + transactions).
// A location is served by at most one active organization at a time.
type AccountingOrganization struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name" binding:"required"`
	ABN           string    `gorm:"size:20" json:"abn"`
	ContactEmail  string    `gorm:"size:100" json:"contact_email"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AccountingOrganizationLocation struct {
	ID                       int `gorm:"primary_key" json:"id"`
	AccountingOrganizationId int `gorm:"index;not null" json:"accounting_organization_id"`
	LocationId               int `gorm:"index;not null" json:"location_id"`
}

var ErrorNoAccountingOrganization = errors.New("location has no active accounting organization")

func GetLocation(ctx context.Context, id int) (*Location, error) {
	db := config.GetDB()
	var location Location
	if err := db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &location, nil
}

// ResolveActiveAccountingOrganization resolves the ledger serving a
// location. The resolution is cached in redis; invalidated when the
// organization-location link changes. Returns
// ErrorNoAccountingOrganization when none is active: trial balance cannot
// be computed without a ledger to query.
func ResolveActiveAccountingOrganization(ctx context.Context, locationId int) (*AccountingOrganization, error) {
	cacheKey := "activeAccountingOrg:" + fmt.Sprint(locationId)

	var cached AccountingOrganization
	exists, err := config.GetRedisObject(cacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if exists && cached.ID != 0 {
		return &cached, nil
	}

	db := config.GetDB()
	var org AccountingOrganization
	err = db.WithContext(ctx).
		Joins("JOIN accounting_organization_locations aol ON aol.accounting_organization_id = accounting_organizations.id").
		Where("aol.location_id = ? AND accounting_organizations.is_active = ?", locationId, true).
		First(&org).Error
	if err != nil {
		return nil, ErrorNoAccountingOrganization
	}

	if err := config.SetRedisObject(cacheKey, &org, 10*time.Minute); err != nil {
		return nil, err
	}
	return &org, nil
}

// LinkAccountingOrganization attaches an organization to a location and
// drops the cached resolution.
func LinkAccountingOrganization(ctx context.Context, organizationId int, locationId int) error {
	if err := utils.ValidateResourceId[AccountingOrganization](ctx, organizationId); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Location](ctx, locationId); err != nil {
		return err
	}

	db := config.GetDB()
	link := AccountingOrganizationLocation{
		AccountingOrganizationId: organizationId,
		LocationId:               locationId,
	}
	if err := db.WithContext(ctx).Create(&link).Error; err != nil {
		return err
	}
	return config.RemoveRedisKey("activeAccountingOrg:" + fmt.Sprint(locationId))
}

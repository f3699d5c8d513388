package models

import (
	"context"
	"time"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// Usage/cost tracking per job. These feed the cost side of gross-profit
// maths and the per-category costing summary.

type LabourUsage struct {
	ID              int             `gorm:"primary_key" json:"id"`
	JobId           int             `gorm:"index;not null" json:"job_id" binding:"required"`
	WorkerContactId int             `gorm:"index" json:"worker_contact_id"`
	Hours           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"hours" binding:"required"`
	HourlyRate      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"hourly_rate" binding:"required"`
	StartedAt       time.Time       `gorm:"index" json:"started_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (u *LabourUsage) Cost() decimal.Decimal {
	return u.Hours.Mul(u.HourlyRate)
}

// LahaCompensation is the living-away-from-home per-diem paid to workers
// on remote jobs; a labour cost category of its own.
type LahaCompensation struct {
	ID              int             `gorm:"primary_key" json:"id"`
	JobId           int             `gorm:"index;not null" json:"job_id" binding:"required"`
	WorkerContactId int             `gorm:"index" json:"worker_contact_id"`
	RatePerDay      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate_per_day" binding:"required"`
	Days            int             `gorm:"not null" json:"days" binding:"required"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (u *LahaCompensation) Cost() decimal.Decimal {
	return u.RatePerDay.Mul(decimal.NewFromInt(int64(u.Days)))
}

type EquipmentUsage struct {
	ID              int             `gorm:"primary_key" json:"id"`
	JobId           int             `gorm:"index;not null" json:"job_id" binding:"required"`
	Name            string          `gorm:"size:100" json:"name"`
	IntervalsUsed   int             `gorm:"not null" json:"intervals_used" binding:"required"`
	RatePerInterval decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate_per_interval" binding:"required"`
	StartedAt       time.Time       `gorm:"index" json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (u *EquipmentUsage) Cost() decimal.Decimal {
	return u.RatePerInterval.Mul(decimal.NewFromInt(int64(u.IntervalsUsed)))
}

type MaterialUsage struct {
	ID        int             `gorm:"primary_key" json:"id"`
	JobId     int             `gorm:"index;not null" json:"job_id" binding:"required"`
	Name      string          `gorm:"size:100" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost" binding:"required"`
	UsedAt    time.Time       `gorm:"index" json:"used_at"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (u *MaterialUsage) Cost() decimal.Decimal {
	return u.Quantity.Mul(u.UnitCost)
}

type Reimbursement struct {
	ID          int             `gorm:"primary_key" json:"id"`
	JobId       int             `gorm:"index;not null" json:"job_id" binding:"required"`
	UserId      int             `gorm:"index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount" binding:"required"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// JobCostTotals carries per-category cost sums for a job set.
type JobCostTotals struct {
	Labour         decimal.Decimal `json:"labour"`
	Laha           decimal.Decimal `json:"laha"`
	Equipment      decimal.Decimal `json:"equipment"`
	Materials      decimal.Decimal `json:"materials"`
	PurchaseOrders decimal.Decimal `json:"purchase_orders"`
	Reimbursements decimal.Decimal `json:"reimbursements"`
}

// Total is the all-in cost across categories.
func (t JobCostTotals) Total() decimal.Decimal {
	return t.Labour.
		Add(t.Laha).
		Add(t.Equipment).
		Add(t.Materials).
		Add(t.PurchaseOrders).
		Add(t.Reimbursements)
}

// GetJobCostTotals sums usage costs across the job set. Purchase-order
// totals are recomputed from items (never a cached column) and restricted
// to approved orders; the caller supplies that total separately when it
// already holds the hydrated documents.
func GetJobCostTotals(ctx context.Context, jobIds []int) (JobCostTotals, error) {
	totals := JobCostTotals{
		Labour:         decimal.Zero,
		Laha:           decimal.Zero,
		Equipment:      decimal.Zero,
		Materials:      decimal.Zero,
		PurchaseOrders: decimal.Zero,
		Reimbursements: decimal.Zero,
	}
	if len(jobIds) == 0 {
		return totals, nil
	}

	db := config.GetDB()

	sums := []struct {
		dest *decimal.Decimal
		sql  string
	}{
		{&totals.Labour, "SELECT COALESCE(SUM(hours * hourly_rate), 0) FROM labour_usages WHERE job_id IN ?"},
		{&totals.Laha, "SELECT COALESCE(SUM(rate_per_day * days), 0) FROM laha_compensations WHERE job_id IN ?"},
		{&totals.Equipment, "SELECT COALESCE(SUM(rate_per_interval * intervals_used), 0) FROM equipment_usages WHERE job_id IN ?"},
		{&totals.Materials, "SELECT COALESCE(SUM(quantity * unit_cost), 0) FROM material_usages WHERE job_id IN ?"},
		{&totals.Reimbursements, "SELECT COALESCE(SUM(amount), 0) FROM reimbursements WHERE job_id IN ?"},
	}
	for _, s := range sums {
		var value string
		if err := db.WithContext(ctx).Raw(s.sql, jobIds).Scan(&value).Error; err != nil {
			return totals, err
		}
		parsed, err := utils.ParseDecimal(value)
		if err != nil {
			return totals, err
		}
		*s.dest = parsed
	}

	return totals, nil
}

package models

import (
	"encoding/json"
	"time"

	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/domain/shared"
)

// ReportJobModel persists report job outcomes. The unique
// (user_id, filters_hash, created_on) index is what collapses duplicate
// dispatches of the same logical request into a single row per day.
type ReportJobModel struct {
	ID          int64            `gorm:"primaryKey;autoIncrement"`
	JobID       string           `gorm:"size:36;not null;uniqueIndex"`
	UserID      uint             `gorm:"not null;uniqueIndex:idx_report_jobs_dedup,priority:1"`
	FiltersHash string           `gorm:"size:64;not null;uniqueIndex:idx_report_jobs_dedup,priority:2"`
	Filters     string           `gorm:"type:jsonb;not null"`
	ResultKey   string           `gorm:"size:512"`
	Error       *report.JobError `gorm:"type:jsonb"`
	CreatedOn   shared.Date      `gorm:"type:date;not null;uniqueIndex:idx_report_jobs_dedup,priority:3"`
	CreatedAt   time.Time        `gorm:"not null"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for ReportJobModel
func (ReportJobModel) TableName() string {
	return "report_jobs"
}

// ToDomain converts ReportJobModel to a domain JobRecord
func (m *ReportJobModel) ToDomain() *report.JobRecord {
	return &report.JobRecord{
		ID:          m.ID,
		JobID:       m.JobID,
		UserID:      m.UserID,
		Filters:     json.RawMessage(m.Filters),
		FiltersHash: m.FiltersHash,
		ResultKey:   m.ResultKey,
		Error:       m.Error,
		CreatedOn:   m.CreatedOn,
	}
}

// ReportJobModelFromDomain converts a domain JobRecord to ReportJobModel
func ReportJobModelFromDomain(r *report.JobRecord) *ReportJobModel {
	return &ReportJobModel{
		ID:          r.ID,
		JobID:       r.JobID,
		UserID:      r.UserID,
		FiltersHash: r.FiltersHash,
		Filters:     string(r.Filters),
		ResultKey:   r.ResultKey,
		Error:       r.Error,
		CreatedOn:   r.CreatedOn,
	}
}

package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/domain/shared"
	"github.com/demandcast/backend/internal/infrastructure/persistence/models"
)

// GormReportJobLedger implements report.JobLedger using GORM
type GormReportJobLedger struct {
	db *gorm.DB
}

// NewGormReportJobLedger creates a new GormReportJobLedger
func NewGormReportJobLedger(db *gorm.DB) *GormReportJobLedger {
	return &GormReportJobLedger{db: db}
}

// FindSuccessful returns the error-free record for the exact
// (user, filters, day) key.
func (r *GormReportJobLedger) FindSuccessful(ctx context.Context, userID uint, filtersHash string, day shared.Date) (*report.JobRecord, error) {
	var model models.ReportJobModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND filters_hash = ? AND created_on = ?", userID, filtersHash, day).
		Where("error IS NULL").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpdateJobID re-points an existing record at a newer dispatch.
func (r *GormReportJobLedger) UpdateJobID(ctx context.Context, recordID int64, jobID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.ReportJobModel{}).
		Where("id = ?", recordID).
		Update("job_id", jobID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RecordOutcome writes the record, upserting on the
// (user_id, filters_hash, created_on) unique key so concurrent duplicate
// dispatches collapse into one row.
func (r *GormReportJobLedger) RecordOutcome(ctx context.Context, record *report.JobRecord) error {
	model := models.ReportJobModelFromDomain(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "filters_hash"},
				{Name: "created_on"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"job_id", "result_key", "error", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return err
	}
	record.ID = model.ID
	return nil
}

// FindByJobID returns the record for one dispatched job id.
func (r *GormReportJobLedger) FindByJobID(ctx context.Context, jobID string) (*report.JobRecord, error) {
	var model models.ReportJobModel
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

package report

import (
	"context"

	"github.com/demandcast/backend/internal/domain/shared"
)

// JobLedger persists report job outcomes. The orchestrator is its only
// writer; the retrieval path reads only.
type JobLedger interface {
	// FindSuccessful returns the successful record for the exact
	// (user, filters, day) key, or shared.ErrNotFound.
	// "Successful" here means no recorded error; whether the blob still
	// exists is the caller's concern.
	FindSuccessful(ctx context.Context, userID uint, filtersHash string, day shared.Date) (*JobRecord, error)

	// UpdateJobID re-points an existing record at a newer dispatch.
	UpdateJobID(ctx context.Context, recordID int64, jobID string) error

	// RecordOutcome writes the record, upserting on the
	// (user_id, filters_hash, created_on) unique key so concurrent
	// duplicate dispatches collapse into one row.
	RecordOutcome(ctx context.Context, record *JobRecord) error

	// FindByJobID returns the record a poller asked for, or
	// shared.ErrNotFound.
	FindByJobID(ctx context.Context, jobID string) (*JobRecord, error)
}

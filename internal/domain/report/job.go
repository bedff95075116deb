package report

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/demandcast/backend/internal/domain/shared"
)

// JobError is the structured failure payload recorded into the ledger.
// It carries no transport status code; HTTP mapping happens at the
// retrieval boundary.
type JobError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Value implements driver.Valuer for JSON column storage.
func (e *JobError) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (e *JobError) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JobError", src)
	}
}

// JobRecord is one report-generation attempt persisted in the job ledger.
// Exactly one record exists per (user, filters, day); its JobID always
// reflects the most recent dispatch for that logical request.
type JobRecord struct {
	ID          int64
	JobID       string
	UserID      uint
	Filters     json.RawMessage
	FiltersHash string
	ResultKey   string
	Error       *JobError
	CreatedOn   shared.Date
}

// HasResult reports whether a result blob key was recorded.
func (r *JobRecord) HasResult() bool {
	return r.ResultKey != ""
}

// Failed reports whether a structured error was recorded.
func (r *JobRecord) Failed() bool {
	return r.Error != nil
}

// NewSucceededRecord builds a ledger record for a finished job whose result
// blob was stored under resultKey.
func NewSucceededRecord(userID uint, jobID string, filters json.RawMessage, filtersHash, resultKey string, day shared.Date) *JobRecord {
	return &JobRecord{
		JobID:       jobID,
		UserID:      userID,
		Filters:     filters,
		FiltersHash: filtersHash,
		ResultKey:   resultKey,
		CreatedOn:   day,
	}
}

// NewFailedRecord builds a ledger record for a job that ended in a
// structured error. No blob is referenced.
func NewFailedRecord(userID uint, jobID string, filters json.RawMessage, filtersHash string, jobErr *JobError, day shared.Date) *JobRecord {
	return &JobRecord{
		JobID:       jobID,
		UserID:      userID,
		Filters:     filters,
		FiltersHash: filtersHash,
		Error:       jobErr,
		CreatedOn:   day,
	}
}

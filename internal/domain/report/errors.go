package report

import (
	"errors"

	"github.com/demandcast/backend/internal/domain/shared"
)

// Report-domain failures are recorded into the job ledger rather than
// propagated to the dispatcher.
var (
	ErrNoForecasts = shared.NewDomainError("NOT_FOUND", "No forecasts found")
	ErrNoSales     = shared.NewDomainError("NOT_FOUND", "Sales data not found")
)

// ErrUnknownKind indicates a report kind the orchestrator does not
// recognize. This is a programming error and is never recorded softly.
var ErrUnknownKind = errors.New("unknown report kind")

package report

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/domain/shared"
)

// XLSXContentType is the MIME type of the produced spreadsheets.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// guardTTL bounds how long a dispatch guard key lives; the cache key is
// scoped to one calendar day.
const guardTTL = 24 * time.Hour

// A dispatch that loses the guard race waits for the winner's ledger row
// instead of generating a duplicate. The wait is bounded; past it the job
// regenerates and the ledger upsert collapses the rows.
const (
	winnerPollInterval = 200 * time.Millisecond
	winnerPollAttempts = 10
)

// BlobStore is the binary result store the orchestrator writes artifacts to.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// DispatchGuard serializes concurrent dispatches of the same logical
// request. Acquire returns true when the caller is first for the key.
type DispatchGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// TaskQueue accepts fire-and-forget background work.
type TaskQueue interface {
	Enqueue(name, id string, run func(ctx context.Context) error) error
}

// Service orchestrates report generation: it validates and dispatches
// requests, runs the background job, and serves the retrieval path. It is
// the job ledger's only writer.
type Service struct {
	ledger     report.JobLedger
	blobs      BlobStore
	guard      DispatchGuard
	queue      TaskQueue
	resolver   *Resolver
	generators map[report.Kind]Generator
	logger     *zap.Logger
	today      func() shared.Date
}

// NewService creates a report Service wired to the given generators.
func NewService(
	ledger report.JobLedger,
	blobs BlobStore,
	guard DispatchGuard,
	queue TaskQueue,
	resolver *Resolver,
	logger *zap.Logger,
	generators ...Generator,
) *Service {
	byKind := make(map[report.Kind]Generator, len(generators))
	for _, g := range generators {
		byKind[g.Kind()] = g
	}
	return &Service{
		ledger:     ledger,
		blobs:      blobs,
		guard:      guard,
		queue:      queue,
		resolver:   resolver,
		generators: byKind,
		logger:     logger,
		today:      shared.Today,
	}
}

// Dispatch validates the request synchronously and enqueues the background
// job, returning the new job id immediately.
func (s *Service) Dispatch(ctx context.Context, userID uint, kind report.Kind, req report.Request) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", report.ErrUnknownKind, kind)
	}
	if err := req.Validate(kind); err != nil {
		return "", err
	}

	jobID := uuid.NewString()
	err := s.queue.Enqueue(string(kind)+"_report", jobID, func(jobCtx context.Context) error {
		return s.runJob(jobCtx, jobID, userID, kind, &req)
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("report job dispatched",
		zap.String("job_id", jobID),
		zap.String("kind", string(kind)),
		zap.Uint("user_id", userID),
	)
	return jobID, nil
}

// runJob is the background entry point. It terminates by either updating an
// existing ledger row's job id (cache hit) or writing exactly one new
// outcome row; generation failures are recorded, never propagated. Only an
// unknown report kind, a canceled wait on a concurrent dispatch, or a
// ledger write failure escapes as an error.
func (s *Service) runJob(ctx context.Context, jobID string, userID uint, kind report.Kind, req *report.Request) error {
	canonical, err := req.Canonical()
	if err != nil {
		return err
	}
	hash, err := req.Fingerprint()
	if err != nil {
		return err
	}
	day := s.today()

	if s.guard != nil {
		key := fmt.Sprintf("report:dispatch:%d:%s:%s", userID, hash, day)
		acquired, err := s.guard.Acquire(ctx, key, guardTTL)
		switch {
		case err != nil:
			s.logger.Warn("dispatch guard unavailable", zap.String("job_id", jobID), zap.Error(err))
		case !acquired:
			adopted, err := s.awaitWinner(ctx, jobID, userID, hash, day)
			if err != nil {
				return err
			}
			if adopted {
				return nil
			}
			s.logger.Warn("concurrent dispatch produced no result, regenerating",
				zap.String("job_id", jobID))
		}
	}

	if existing, err := s.ledger.FindSuccessful(ctx, userID, hash, day); err == nil {
		adopted, adoptErr := s.adoptRecord(ctx, jobID, existing)
		if adoptErr != nil {
			return adoptErr
		}
		if adopted {
			return nil
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("ledger lookup failed, regenerating", zap.String("job_id", jobID), zap.Error(err))
	}

	generator, ok := s.generators[kind]
	if !ok {
		return fmt.Errorf("%w: %q", report.ErrUnknownKind, kind)
	}

	artifact, genErr := generator.Generate(ctx, req)
	if genErr != nil {
		record := report.NewFailedRecord(userID, jobID, canonical, hash, toJobError(genErr), day)
		s.logger.Info("report generation failed",
			zap.String("job_id", jobID),
			zap.String("error_code", record.Error.Code),
			zap.String("error", record.Error.Message),
		)
		return s.ledger.RecordOutcome(ctx, record)
	}

	key := resultKey(day, jobID, artifact.Name)
	if err := s.blobs.Upload(ctx, key, artifact.Content, XLSXContentType); err != nil {
		record := report.NewFailedRecord(userID, jobID, canonical, hash,
			&report.JobError{Code: "INTERNAL", Message: err.Error()}, day)
		return s.ledger.RecordOutcome(ctx, record)
	}

	record := report.NewSucceededRecord(userID, jobID, canonical, hash, key, day)
	if err := s.ledger.RecordOutcome(ctx, record); err != nil {
		return err
	}
	s.logger.Info("report generated",
		zap.String("job_id", jobID),
		zap.String("result_key", key),
		zap.Int("bytes", len(artifact.Content)),
	)
	return nil
}

// awaitWinner polls the ledger for the row written by the concurrent
// dispatch that holds the guard key, and adopts it once it lands.
func (s *Service) awaitWinner(ctx context.Context, jobID string, userID uint, hash string, day shared.Date) (bool, error) {
	for attempt := 0; attempt < winnerPollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(winnerPollInterval):
			}
		}
		existing, err := s.ledger.FindSuccessful(ctx, userID, hash, day)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, nil
		}
		return s.adoptRecord(ctx, jobID, existing)
	}
	return false, nil
}

// adoptRecord re-points an existing successful row at this dispatch's job
// id, provided its blob is still there. A missing blob means the row is
// stale and the caller must regenerate.
func (s *Service) adoptRecord(ctx context.Context, jobID string, existing *report.JobRecord) (bool, error) {
	exists, err := s.blobs.Exists(ctx, existing.ResultKey)
	if err != nil || !exists {
		return false, nil
	}
	if err := s.ledger.UpdateJobID(ctx, existing.ID, jobID); err != nil {
		return false, err
	}
	s.logger.Info("report cache hit",
		zap.String("job_id", jobID),
		zap.String("previous_job_id", existing.JobID),
	)
	return true, nil
}

// Outcome is what the retrieval path returns: either a downloadable file or
// the recorded structured error.
type Outcome struct {
	FileName    string
	ContentType string
	Content     []byte
	Err         *report.JobError
}

// Fetch returns the outcome of a job for its owning user. Jobs that do not
// exist, or belong to another user, are NotFound.
func (s *Service) Fetch(ctx context.Context, userID uint, jobID string) (*Outcome, error) {
	record, err := s.ledger.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, shared.ErrNotFound
	}

	if record.Failed() {
		return &Outcome{Err: record.Error}, nil
	}

	exists, err := s.blobs.Exists(ctx, record.ResultKey)
	if err != nil {
		return nil, err
	}
	if !record.HasResult() || !exists {
		return &Outcome{Err: &report.JobError{Code: "NOT_FOUND", Message: "Report file not found"}}, nil
	}

	content, err := s.blobs.Download(ctx, record.ResultKey)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		FileName:    fileName(record.ResultKey),
		ContentType: XLSXContentType,
		Content:     content,
	}, nil
}

// Statistics serves the computed per-(store, SKU) metric rows directly,
// without the job machinery.
func (s *Service) Statistics(ctx context.Context, req report.Request) ([]StatRow, error) {
	if err := req.Validate(report.KindStatistics); err != nil {
		return nil, err
	}
	data, err := s.resolver.ResolveForecasts(ctx, &req)
	if err != nil {
		return nil, err
	}
	sales, err := s.resolver.ResolveSales(ctx, &req, data.SKUs)
	if err != nil {
		return nil, err
	}
	return ComputeStatistics(data.Forecasts, sales), nil
}

// toJobError maps a generation failure to the structured ledger error.
// Domain failures keep their code; anything else is a 500-class internal
// failure with the stringified cause, so the job never vanishes silently.
func toJobError(err error) *report.JobError {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return &report.JobError{Code: domainErr.Code, Message: domainErr.Message}
	}
	return &report.JobError{Code: "INTERNAL", Message: err.Error()}
}

// resultKey builds the blob key for a finished artifact, partitioned by day.
func resultKey(day shared.Date, jobID, name string) string {
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s_%s", day.Year(), day.Month(), day.Day(), jobID, name)
}

func fileName(key string) string {
	base := path.Base(key)
	// Strip the job-id prefix added by resultKey.
	if idx := len(uuid.UUID{}.String()); len(base) > idx+1 && base[idx] == '_' {
		return base[idx+1:]
	}
	return base
}

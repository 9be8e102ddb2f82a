package sync

import (
	"context"
	"errors"
	"fmt"

	"eprel-mirror/core/eprel"
	"eprel-mirror/feature/catalog/models"
	"eprel-mirror/feature/catalog/store"

	"go.uber.org/zap"
)

// CatalogClient is the slice of the EPREL client the orchestrator needs.
type CatalogClient interface {
	FetchPage(ctx context.Context, group string, page, pageSize int) (*eprel.Page, error)
	ProductCount(ctx context.Context, group string) (int, error)
	PageSize() int
	HealthCheck(ctx context.Context) error
}

// Store is the persistence surface the orchestrator drives.
type Store interface {
	GroupByCode(code string) (*models.ProductGroup, error)
	UpdateGroupCount(code string, total int) error
	UpsertBatch(payloads []map[string]any, groupCode string) ([]store.UpsertResult, error)
	SaveProgress(jobID uint, groupCode string, currentPage int, totalPages *int, lastProcessedID, status string) error
	ResumePage(groupCode string) (int, error)
	CreateSyncJob(jobType string, groupID *uint) (uint, error)
	FinishSyncJob(jobID uint, status string, synced, failed int, lastError string) error
	Statistics() (*store.Statistics, error)
}

// Service walks categories page by page and lands every product in the store.
// It is strictly sequential; resumability comes from the per-category
// checkpoints the store keeps, not from any in-memory state.
type Service struct {
	store  Store
	client CatalogClient
	log    *zap.Logger
}

// New creates a sync service.
func New(st Store, client CatalogClient, log *zap.Logger) *Service {
	return &Service{store: st, client: client, log: log}
}

// Result is the aggregate outcome of one category sync.
type Result struct {
	Synced int
	Failed int
}

// SyncCategory runs a standalone sync of a single category under its own
// sync job. Unknown category codes are a logged no-op.
func (s *Service) SyncCategory(ctx context.Context, code string, resume bool, maxProducts int) (Result, error) {
	cat, ok := models.CategoryByCode(code)
	if !ok {
		s.log.Warn("Skipping unknown product group", zap.String("group", code))
		return Result{}, nil
	}

	var groupID *uint
	if group, err := s.store.GroupByCode(code); err == nil && group != nil {
		groupID = &group.ID
	}

	jobID, err := s.store.CreateSyncJob(models.JobTypeCategory, groupID)
	if err != nil {
		return Result{}, fmt.Errorf("creating sync job: %w", err)
	}

	res, err := s.syncCategory(ctx, jobID, cat.Code, resume, maxProducts)
	s.finishJob(jobID, res, err)
	return res, err
}

// SyncAll syncs the given categories sequentially under one full sync job.
// An empty code list means every registered category. A failing category is
// recorded in the tallies and skipped, and the run still finalizes as
// completed; only cancellation stops the whole run, at the next page
// boundary, and marks the job interrupted.
func (s *Service) SyncAll(ctx context.Context, codes []string, resume bool) (Result, error) {
	if len(codes) == 0 {
		codes = models.CategoryCodes()
	}

	jobID, err := s.store.CreateSyncJob(models.JobTypeFull, nil)
	if err != nil {
		return Result{}, fmt.Errorf("creating sync job: %w", err)
	}

	var total Result
	var runErr error
	var lastFailure error
	for _, code := range codes {
		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}

		cat, ok := models.CategoryByCode(code)
		if !ok {
			s.log.Warn("Skipping unknown product group", zap.String("group", code))
			continue
		}

		res, err := s.syncCategory(ctx, jobID, cat.Code, resume, 0)
		total.Synced += res.Synced
		total.Failed += res.Failed
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				runErr = err
				break
			}
			s.log.Error("Product group sync failed, continuing with next",
				zap.String("group", cat.Code), zap.Error(err))
			lastFailure = err
		}
	}

	status := models.JobStatusCompleted
	msg := ""
	if runErr != nil {
		status = models.JobStatusInterrupted
		msg = runErr.Error()
	} else if lastFailure != nil {
		msg = lastFailure.Error()
	}
	if err := s.store.FinishSyncJob(jobID, status, total.Synced, total.Failed, msg); err != nil {
		s.log.Error("Failed to finalize sync job", zap.Uint("job_id", jobID), zap.Error(err))
	}

	return total, runErr
}

// syncCategory is the page loop shared by SyncCategory and SyncAll. It saves
// a checkpoint after every page, so a crash at any point loses at most the
// page in flight.
func (s *Service) syncCategory(ctx context.Context, jobID uint, code string, resume bool, maxProducts int) (Result, error) {
	var res Result

	startPage := 1
	if resume {
		page, err := s.store.ResumePage(code)
		if err != nil {
			return res, fmt.Errorf("loading checkpoint for %s: %w", code, err)
		}
		startPage = page
	}

	total, err := s.client.ProductCount(ctx, code)
	if err != nil {
		s.saveProgress(jobID, code, startPage-1, nil, "", models.ProgressError)
		return res, fmt.Errorf("counting products in %s: %w", code, err)
	}
	if err := s.store.UpdateGroupCount(code, total); err != nil {
		return res, fmt.Errorf("recording total for %s: %w", code, err)
	}

	pageSize := s.client.PageSize()
	totalPages := (total + pageSize - 1) / pageSize

	s.log.Info("Syncing product group",
		zap.String("group", code),
		zap.Int("total_products", total),
		zap.Int("total_pages", totalPages),
		zap.Int("start_page", startPage))

	lastID := ""
	seen := 0
	lastPage := startPage - 1
	for page := startPage; ; page++ {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		resp, err := s.client.FetchPage(ctx, code, page, 0)
		if err != nil {
			// The failed page counts against the budget at full page
			// weight; its true item count is unknowable.
			res.Failed += pageSize
			s.saveProgress(jobID, code, page-1, &totalPages, lastID, models.ProgressError)
			return res, fmt.Errorf("fetching page %d of %s: %w", page, code, err)
		}
		if len(resp.Items) == 0 {
			break
		}

		results, err := s.store.UpsertBatch(resp.Items, code)
		if err != nil {
			res.Failed += len(resp.Items)
			s.saveProgress(jobID, code, page-1, &totalPages, lastID, models.ProgressError)
			return res, err
		}
		for _, r := range results {
			if r.Ok() {
				res.Synced++
				if r.ExternalID != "" {
					lastID = r.ExternalID
				}
			} else {
				res.Failed++
			}
		}
		seen += len(resp.Items)

		if err := s.store.SaveProgress(jobID, code, page, &totalPages, lastID, models.ProgressInProgress); err != nil {
			return res, fmt.Errorf("saving checkpoint for %s: %w", code, err)
		}
		lastPage = page

		if maxProducts > 0 && seen >= maxProducts {
			break
		}
		if !resp.HasMore {
			break
		}
	}

	s.saveProgress(jobID, code, lastPage, &totalPages, lastID, models.ProgressCompleted)

	s.log.Info("Product group synced",
		zap.String("group", code),
		zap.Int("synced", res.Synced),
		zap.Int("failed", res.Failed))
	return res, nil
}

// saveProgress writes a checkpoint where failure must not mask the original
// outcome of the page loop.
func (s *Service) saveProgress(jobID uint, code string, page int, totalPages *int, lastID, status string) {
	if err := s.store.SaveProgress(jobID, code, page, totalPages, lastID, status); err != nil {
		s.log.Error("Failed to save sync checkpoint",
			zap.String("group", code), zap.String("status", status), zap.Error(err))
	}
}

// finishJob maps the run outcome onto a terminal job status.
func (s *Service) finishJob(jobID uint, res Result, runErr error) {
	status := models.JobStatusCompleted
	msg := ""
	switch {
	case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
		status = models.JobStatusInterrupted
		msg = runErr.Error()
	case runErr != nil:
		status = models.JobStatusFailed
		msg = runErr.Error()
	}

	if err := s.store.FinishSyncJob(jobID, status, res.Synced, res.Failed, msg); err != nil {
		s.log.Error("Failed to finalize sync job", zap.Uint("job_id", jobID), zap.Error(err))
	}
}

// HealthCheck probes the API. The bool distinguishes a reachable API with a
// bad key from an unreachable one only through the returned error.
func (s *Service) HealthCheck(ctx context.Context) (bool, error) {
	if err := s.client.HealthCheck(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Statistics reports the current mirror state.
func (s *Service) Statistics() (*store.Statistics, error) {
	return s.store.Statistics()
}

package store

import (
	"errors"
	"time"

	"eprel-mirror/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveProgress upserts the unique (job, category) checkpoint. updated_at
// refreshes on every call. The orchestrator calls this after every page, so
// for a live job current_page only ever moves forward.
func (s *Store) SaveProgress(jobID uint, groupCode string, currentPage int, totalPages *int, lastProcessedID, status string) error {
	row := models.SyncProgress{
		SyncJobID:        jobID,
		ProductGroupCode: groupCode,
		CurrentPage:      currentPage,
		TotalPages:       totalPages,
		Status:           status,
		UpdatedAt:        time.Now(),
	}
	if lastProcessedID != "" {
		row.LastProcessedID = &lastProcessedID
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "sync_job_id"},
			{Name: "product_group_code"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_page", "total_pages", "last_processed_id", "status", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	// A completed run supersedes any older abandoned run of the same
	// category. Without this, an interrupted job's in_progress row would
	// outlive later full passes and feed every future resume a stale page.
	if status == models.ProgressCompleted {
		return s.db.Model(&models.SyncProgress{}).
			Where("product_group_code = ? AND status = ? AND sync_job_id <> ?",
				groupCode, models.ProgressInProgress, jobID).
			Updates(map[string]any{
				"status":     models.ProgressInterrupted,
				"updated_at": time.Now(),
			}).Error
	}
	return nil
}

// Progress loads the checkpoint for a (job, category) pair. Absence is not
// an error: it returns (nil, nil).
func (s *Store) Progress(jobID uint, groupCode string) (*models.SyncProgress, error) {
	var progress models.SyncProgress
	err := s.db.Where("sync_job_id = ? AND product_group_code = ?", jobID, groupCode).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// LatestInProgress returns the most recent in_progress checkpoint for a
// category across all jobs, or nil. This is what makes a sync resumable
// after a process restart, when the interrupted job id is no longer known.
func (s *Store) LatestInProgress(groupCode string) (*models.SyncProgress, error) {
	var progress models.SyncProgress
	err := s.db.Where("product_group_code = ? AND status = ?", groupCode, models.ProgressInProgress).
		Order("updated_at DESC").
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ResumePage computes the page a category sync should start from: the page
// after the latest in_progress checkpoint, or 1 when there is none.
func (s *Store) ResumePage(groupCode string) (int, error) {
	progress, err := s.LatestInProgress(groupCode)
	if err != nil {
		return 1, err
	}
	if progress == nil {
		return 1, nil
	}
	return progress.CurrentPage + 1, nil
}

package store

import (
	"errors"
	"time"

	"eprel-mirror/feature/catalog/models"

	"gorm.io/gorm"
)

// CreateSyncJob records the start of a run and returns the job id.
func (s *Store) CreateSyncJob(jobType string, groupID *uint) (uint, error) {
	job := models.SyncJob{
		JobType:        jobType,
		Status:         models.JobStatusRunning,
		ProductGroupID: groupID,
		StartedAt:      time.Now(),
	}
	if err := s.db.Create(&job).Error; err != nil {
		return 0, err
	}
	return job.ID, nil
}

// FinishSyncJob moves a job to its terminal state with aggregate counts.
// Status transitions are one-directional from running; callers never move a
// job back.
func (s *Store) FinishSyncJob(jobID uint, status string, synced, failed int, lastError string) error {
	updates := map[string]any{
		"status":          status,
		"synced_products": synced,
		"failed_products": failed,
	}
	if lastError != "" {
		updates["last_error"] = lastError
	}
	if status != models.JobStatusRunning {
		updates["completed_at"] = time.Now()
	}

	return s.db.Model(&models.SyncJob{}).Where("id = ?", jobID).Updates(updates).Error
}

// LatestCompletedJob returns the most recent completed job, or nil.
func (s *Store) LatestCompletedJob() (*models.SyncJob, error) {
	var job models.SyncJob
	err := s.db.Where("status = ?", models.JobStatusCompleted).
		Order("completed_at DESC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

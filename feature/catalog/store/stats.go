package store

import (
	"time"

	"eprel-mirror/feature/catalog/models"
)

// CategoryCount is the mirrored-product count of one category.
type CategoryCount struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Products int64  `json:"products"`
}

// Statistics summarizes the mirror for external callers.
type Statistics struct {
	TotalProducts  int64           `json:"total_products"`
	TotalSuppliers int64           `json:"total_suppliers"`
	ByCategory     []CategoryCount `json:"by_category"`
	// LatestJob is the most recent completed sync job with its status and
	// synced/failed tallies, nil before the first completed run.
	LatestJob  *models.SyncJob `json:"latest_job,omitempty"`
	LastSyncAt *time.Time      `json:"last_sync_at,omitempty"`
}

// Statistics aggregates product and supplier counts, per-category counts and
// the latest finished sync job.
func (s *Store) Statistics() (*Statistics, error) {
	var stats Statistics

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Supplier{}).Count(&stats.TotalSuppliers).Error; err != nil {
		return nil, err
	}

	err := s.db.Model(&models.ProductGroup{}).
		Select("product_groups.code AS code, product_groups.name AS name, COUNT(products.id) AS products").
		Joins("LEFT JOIN products ON products.product_group_id = product_groups.id").
		Group("product_groups.id, product_groups.code, product_groups.name").
		Order("product_groups.code").
		Scan(&stats.ByCategory).Error
	if err != nil {
		return nil, err
	}

	job, err := s.LatestCompletedJob()
	if err != nil {
		return nil, err
	}
	if job != nil {
		stats.LatestJob = job
		stats.LastSyncAt = job.CompletedAt
	}

	return &stats, nil
}

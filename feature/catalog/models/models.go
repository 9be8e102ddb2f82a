package models

import (
	"time"

	"gorm.io/datatypes"
)

// Sync job types.
const (
	JobTypeFull     = "full"
	JobTypeCategory = "category"
)

// Sync job statuses. Running is the only non-terminal state; transitions are
// one-directional.
const (
	JobStatusRunning     = "running"
	JobStatusCompleted   = "completed"
	JobStatusFailed      = "failed"
	JobStatusInterrupted = "interrupted"
)

// Sync progress statuses. Interrupted marks a checkpoint from an abandoned
// run that a later completed run superseded; it never feeds a resume.
const (
	ProgressInProgress  = "in_progress"
	ProgressError       = "error"
	ProgressCompleted   = "completed"
	ProgressInterrupted = "interrupted"
)

// ProductGroup represents one EPREL product category. Rows are seeded at
// startup from the category registry and never removed by the sync path.
type ProductGroup struct {
	ID            uint       `gorm:"column:id;primaryKey"`
	Code          string     `gorm:"column:code;uniqueIndex;size:64"`
	Name          string     `gorm:"column:name;size:128"`
	TotalProducts int        `gorm:"column:total_products"`
	LastSyncAt    *time.Time `gorm:"column:last_sync_at"`
}

// TableName overrides the table name.
func (ProductGroup) TableName() string {
	return "product_groups"
}

// Supplier is a manufacturer or importer, upserted as a side effect of
// product upserts.
type Supplier struct {
	ID              uint    `gorm:"column:id;primaryKey"`
	EprelSupplierID string  `gorm:"column:eprel_supplier_id;uniqueIndex;size:64"`
	Name            string  `gorm:"column:name;size:255"`
	TradeName       *string `gorm:"column:trade_name;size:255"`
	Address         *string `gorm:"column:address;size:512"`
	Country         *string `gorm:"column:country;size:64"`
}

// TableName overrides the table name.
func (Supplier) TableName() string {
	return "suppliers"
}

// Product is the mirrored entity. EprelProductID is the sole identity key:
// the first sync creates the row, every later sync overwrites it in place and
// increments SyncVersion. The sync path never deletes products.
type Product struct {
	ID                uint           `gorm:"column:id;primaryKey"`
	EprelProductID    string         `gorm:"column:eprel_product_id;uniqueIndex;size:64"`
	ProductGroupID    *uint          `gorm:"column:product_group_id"`
	SupplierID        *uint          `gorm:"column:supplier_id"`
	ModelIdentifier   *string        `gorm:"column:model_identifier;size:255"`
	Brand             *string        `gorm:"column:brand;size:255"`
	EnergyClass       *string        `gorm:"column:energy_class;size:16"`
	EnergyClassIndex  *float64       `gorm:"column:energy_class_index"`
	Status            string         `gorm:"column:status;size:32"`
	OnMarketStartDate *time.Time     `gorm:"column:on_market_start_date"`
	OnMarketEndDate   *time.Time     `gorm:"column:on_market_end_date"`
	RegistrationDate  *time.Time     `gorm:"column:registration_date"`
	EnergyLabelURL    *string        `gorm:"column:energy_label_url;size:512"`
	ProductFicheURL   *string        `gorm:"column:product_fiche_url;size:512"`
	RawData           datatypes.JSON `gorm:"column:raw_data;type:jsonb"`
	SyncVersion       int            `gorm:"column:sync_version;default:1"`
	LastSyncAt        time.Time      `gorm:"column:last_sync_at"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// SyncJob records one sync run and its aggregate outcome.
type SyncJob struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	JobType        string     `gorm:"column:job_type;size:16"`
	Status         string     `gorm:"column:status;size:16"`
	ProductGroupID *uint      `gorm:"column:product_group_id"`
	TotalProducts  int        `gorm:"column:total_products"`
	SyncedProducts int        `gorm:"column:synced_products"`
	FailedProducts int        `gorm:"column:failed_products"`
	LastError      string     `gorm:"column:last_error;type:text"`
	StartedAt      time.Time  `gorm:"column:started_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (SyncJob) TableName() string {
	return "sync_jobs"
}

// SyncProgress is the resumable checkpoint, unique per (job, category).
// CurrentPage never decreases for a live job.
type SyncProgress struct {
	ID               uint      `gorm:"column:id;primaryKey"`
	SyncJobID        uint      `gorm:"column:sync_job_id;uniqueIndex:idx_sync_progress_job_group"`
	ProductGroupCode string    `gorm:"column:product_group_code;size:64;uniqueIndex:idx_sync_progress_job_group"`
	CurrentPage      int       `gorm:"column:current_page"`
	TotalPages       *int      `gorm:"column:total_pages"`
	LastProcessedID  *string   `gorm:"column:last_processed_id;size:64"`
	Status           string    `gorm:"column:status;size:16"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (SyncProgress) TableName() string {
	return "sync_progress"
}

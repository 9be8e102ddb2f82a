package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := postgres.New(postgres.Config{Conn: db})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return New(gormDB, zap.NewNop()), mock
}

func TestUpsertProductInsertsWithVersionIncrement(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "product_groups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).AddRow(3, "dishwashers", "dishwashers"))
	mock.ExpectQuery(`INSERT INTO "suppliers" .* ON CONFLICT \("eprel_supplier_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "products" .* ON CONFLICT \("eprel_product_id"\) DO UPDATE SET .*"sync_version"=products\.sync_version \+ 1.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`INSERT INTO "product_dishwashers" .* ON CONFLICT \("product_id"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payload := map[string]any{
		"productId":       "100500",
		"modelIdentifier": "DW-9000",
		"energyClass":     "B",
		"supplier": map[string]any{
			"id":   "77",
			"name": "Acme Appliances",
		},
		"placeSettings": float64(13),
		"noiseLevel":    float64(44),
	}

	id, err := s.UpsertProduct(payload, "dishwashers")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProductMissingID(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.UpsertProduct(map[string]any{"modelIdentifier": "no-id"}, "dishwashers")
	assert.ErrorIs(t, err, ErrMissingProductID)
}

func TestUpsertProductNoAttributesForPlainCategory(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "product_groups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}))
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	// airconditioners has no side table, and this payload has no supplier,
	// so only the products insert happens.
	id, err := s.UpsertProduct(map[string]any{"productId": "42"}, "airconditioners")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatchPartialFailure(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()

	// First payload succeeds under its savepoint.
	mock.ExpectExec(`SAVEPOINT sp`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "product_groups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}))
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Second payload has no id: rolled back to its savepoint and skipped.
	mock.ExpectExec(`SAVEPOINT sp`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT sp`).WillReturnResult(sqlmock.NewResult(0, 0))

	// Third payload succeeds again; the batch still commits.
	mock.ExpectExec(`SAVEPOINT sp`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "product_groups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}))
	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	mock.ExpectCommit()

	payloads := []map[string]any{
		{"productId": "A1"},
		{"modelIdentifier": "broken"},
		{"productId": "A3"},
	}

	results, err := s.UpsertBatch(payloads, "airconditioners")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, SuccessCount(results))
	assert.True(t, results[0].Ok())
	assert.ErrorIs(t, results[1].Err, ErrMissingProductID)
	assert.True(t, results[2].Ok())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatchEmpty(t *testing.T) {
	s, _ := setupMockStore(t)

	results, err := s.UpsertBatch(nil, "dishwashers")
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestSaveProgressUpsert(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "sync_progress" .* ON CONFLICT \("sync_job_id","product_group_code"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	total := 12
	err := s.SaveProgress(5, "dishwashers", 4, &total, "100500", "in_progress")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletedCheckpointSupersedesAbandonedRuns(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "sync_progress"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	// Older in_progress rows of other jobs are flipped to interrupted so a
	// later resume cannot pick up their stale page.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "sync_progress" SET .* WHERE product_group_code = \$\d+ AND status = \$\d+ AND sync_job_id <> \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	total := 3
	err := s.SaveProgress(2, "dishwashers", 3, &total, "100500", "completed")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInProgressCheckpointLeavesOtherRunsAlone(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "sync_progress"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	total := 3
	err := s.SaveProgress(2, "dishwashers", 1, &total, "100001", "in_progress")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressNotFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "sync_progress"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	progress, err := s.Progress(5, "dishwashers")
	assert.NoError(t, err)
	assert.Nil(t, progress)
}

func TestResumePageFromCheckpoint(t *testing.T) {
	s, mock := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "sync_job_id", "product_group_code", "current_page", "status"}).
		AddRow(1, 5, "dishwashers", 7, "in_progress")
	mock.ExpectQuery(`SELECT \* FROM "sync_progress"`).WillReturnRows(rows)

	page, err := s.ResumePage("dishwashers")
	require.NoError(t, err)
	assert.Equal(t, 8, page)
}

func TestResumePageWithoutCheckpoint(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "sync_progress"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	page, err := s.ResumePage("dishwashers")
	require.NoError(t, err)
	assert.Equal(t, 1, page)
}

func TestCreateSyncJob(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "sync_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	id, err := s.CreateSyncJob("full", nil)
	require.NoError(t, err)
	assert.Equal(t, uint(11), id)
}

func TestFinishSyncJobSetsCompletedAt(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "sync_jobs" SET .*"completed_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.FinishSyncJob(11, "completed", 250, 0, "")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupByCodeUnknown(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "product_groups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	group, err := s.GroupByCode("hoverboards")
	assert.NoError(t, err)
	assert.Nil(t, group)
}

func TestUpdateGroupCount(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "product_groups" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.UpdateGroupCount("dishwashers", 1234)
	assert.NoError(t, err)
}

func TestStatistics(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(300))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT .* FROM "product_groups" LEFT JOIN products`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "products"}).
			AddRow("dishwashers", "dishwashers", 200).
			AddRow("tyres", "tyres", 100))
	completedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "sync_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_type", "status", "synced_products", "failed_products", "completed_at"}).
			AddRow(9, "full", "completed", 298, 2, completedAt))

	stats, err := s.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(300), stats.TotalProducts)
	assert.Equal(t, int64(12), stats.TotalSuppliers)
	require.Len(t, stats.ByCategory, 2)
	assert.Equal(t, "dishwashers", stats.ByCategory[0].Code)
	assert.Equal(t, int64(200), stats.ByCategory[0].Products)

	// The latest completed job is surfaced whole, tallies included.
	require.NotNil(t, stats.LatestJob)
	assert.Equal(t, "completed", stats.LatestJob.Status)
	assert.Equal(t, 298, stats.LatestJob.SyncedProducts)
	assert.Equal(t, 2, stats.LatestJob.FailedProducts)
	require.NotNil(t, stats.LastSyncAt)
	assert.True(t, completedAt.Equal(*stats.LastSyncAt))
}

func TestStatisticsBeforeFirstSync(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM "product_groups" LEFT JOIN products`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "products"}))
	mock.ExpectQuery(`SELECT \* FROM "sync_jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	stats, err := s.Statistics()
	require.NoError(t, err)
	assert.Nil(t, stats.LatestJob)
	assert.Nil(t, stats.LastSyncAt)
}

func TestStatisticsPropagatesErrors(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Statistics()
	assert.Error(t, err)
}

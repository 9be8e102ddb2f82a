package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"eprel-mirror/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMissingProductID is returned for payloads without a usable external id.
var ErrMissingProductID = errors.New("payload has no product id")

// Store persists mirrored catalog data. All writes go through one *gorm.DB;
// the sync path is a single logical writer so no cross-writer coordination
// exists or is needed.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a Store on top of an established database connection.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Migrate creates or updates the mirror schema, including the per-category
// attribute side tables.
func (s *Store) Migrate() error {
	targets := []any{
		&models.ProductGroup{},
		&models.Supplier{},
		&models.Product{},
		&models.SyncJob{},
		&models.SyncProgress{},
	}
	targets = append(targets, models.AttributeModels()...)
	return s.db.AutoMigrate(targets...)
}

// SeedGroups inserts a row for every registered category, leaving existing
// rows untouched.
func (s *Store) SeedGroups() error {
	for _, c := range models.Categories() {
		group := models.ProductGroup{Code: c.Code, Name: c.Code}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&group).Error
		if err != nil {
			return fmt.Errorf("seeding product group %s: %w", c.Code, err)
		}
	}
	return nil
}

// GroupByCode returns the product group row for a code, or nil when unknown.
func (s *Store) GroupByCode(code string) (*models.ProductGroup, error) {
	var group models.ProductGroup
	err := s.db.Where("code = ?", code).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroupCount publishes the remote total onto the category row. The
// count is visible to external callers while a sync is still running.
func (s *Store) UpdateGroupCount(code string, total int) error {
	return s.db.Model(&models.ProductGroup{}).Where("code = ?", code).
		Updates(map[string]any{
			"total_products": total,
			"last_sync_at":   time.Now(),
		}).Error
}

// UpsertProduct inserts or updates one product, resolving its supplier and
// category attributes, inside its own transaction.
func (s *Store) UpsertProduct(payload map[string]any, groupCode string) (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = upsertProductTx(tx, payload, groupCode)
		return err
	})
	return id, err
}

// upsertProductTx is the single-product upsert used by both UpsertProduct
// and UpsertBatch. The version counter increments on every apply, even when
// the payload is byte-identical to the stored one: downstream consumers use
// sync_version as an applied-sync signal, not a changed-data signal.
func upsertProductTx(tx *gorm.DB, payload map[string]any, groupCode string) (uint, error) {
	externalID := externalProductID(payload)
	if externalID == "" {
		return 0, ErrMissingProductID
	}

	var groupID *uint
	var group models.ProductGroup
	if err := tx.Where("code = ?", groupCode).First(&group).Error; err == nil {
		groupID = &group.ID
	}

	supplierID, err := upsertSupplierTx(tx, payload)
	if err != nil {
		return 0, fmt.Errorf("upserting supplier for product %s: %w", externalID, err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding raw payload for product %s: %w", externalID, err)
	}

	now := time.Now()
	status := stringField(payload, "status")
	if status == "" {
		status = "active"
	}

	product := models.Product{
		EprelProductID:    externalID,
		ProductGroupID:    groupID,
		SupplierID:        supplierID,
		ModelIdentifier:   optStringField(payload, "modelIdentifier", "modelName"),
		Brand:             optStringField(payload, "brand", "brandName"),
		EnergyClass:       optStringField(payload, "energyClass", "energyEfficiencyClass"),
		EnergyClassIndex:  optFloatField(payload, "energyEfficiencyIndex"),
		Status:            status,
		OnMarketStartDate: parseDate(payload["onMarketStartDate"]),
		OnMarketEndDate:   parseDate(payload["onMarketEndDate"]),
		RegistrationDate:  parseDate(payload["registrationDate"]),
		EnergyLabelURL:    optStringField(payload, "energyLabelUrl"),
		ProductFicheURL:   optStringField(payload, "productFicheUrl"),
		RawData:           raw,
		SyncVersion:       1,
		LastSyncAt:        now,
	}

	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "eprel_product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"product_group_id":     product.ProductGroupID,
			"supplier_id":          product.SupplierID,
			"model_identifier":     product.ModelIdentifier,
			"brand":                product.Brand,
			"energy_class":         product.EnergyClass,
			"energy_class_index":   product.EnergyClassIndex,
			"status":               product.Status,
			"on_market_start_date": product.OnMarketStartDate,
			"on_market_end_date":   product.OnMarketEndDate,
			"registration_date":    product.RegistrationDate,
			"energy_label_url":     product.EnergyLabelURL,
			"product_fiche_url":    product.ProductFicheURL,
			"raw_data":             product.RawData,
			"last_sync_at":         now,
			"updated_at":           now,
			"sync_version":         gorm.Expr("products.sync_version + 1"),
		}),
	}).Create(&product).Error
	if err != nil {
		return 0, fmt.Errorf("upserting product %s: %w", externalID, err)
	}

	if cat, ok := models.CategoryByCode(groupCode); ok && cat.HasAttributes() {
		if err := upsertAttributesTx(tx, product.ID, cat, payload); err != nil {
			return 0, fmt.Errorf("upserting %s attributes for product %s: %w", groupCode, externalID, err)
		}
	}

	return product.ID, nil
}

// upsertSupplierTx resolves the supplier embedded in a product payload,
// either as a nested object or as flat supplierId/supplierName fields.
// Payloads without supplier information leave the product unlinked.
func upsertSupplierTx(tx *gorm.DB, payload map[string]any) (*uint, error) {
	data, _ := payload["supplier"].(map[string]any)
	if data == nil {
		if payload["supplierId"] == nil && payload["supplierName"] == nil {
			return nil, nil
		}
		data = map[string]any{
			"id":   payload["supplierId"],
			"name": payload["supplierName"],
		}
	}

	externalID := stringField(data, "supplierId", "id")
	if externalID == "" {
		return nil, nil
	}
	name := stringField(data, "supplierName", "name")
	if name == "" {
		name = "Unknown"
	}

	supplier := models.Supplier{
		EprelSupplierID: externalID,
		Name:            name,
		TradeName:       optStringField(data, "tradeName"),
		Address:         optStringField(data, "address"),
		Country:         optStringField(data, "country"),
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "eprel_supplier_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "trade_name", "address", "country"}),
	}).Create(&supplier).Error
	if err != nil {
		return nil, err
	}

	return &supplier.ID, nil
}

// upsertAttributesTx writes the category side-table row. Only allow-listed
// fields present in the payload are written; absent fields are omitted, not
// forced to NULL.
func upsertAttributesTx(tx *gorm.DB, productID uint, cat models.Category, payload map[string]any) error {
	row := map[string]any{"product_id": productID}
	columns := make([]string, 0, len(cat.Attributes)+1)

	for _, m := range cat.Attributes {
		if value, ok := payload[m.SourceField]; ok && value != nil {
			row[m.Column] = value
			columns = append(columns, m.Column)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	row["updated_at"] = time.Now()
	columns = append(columns, "updated_at")
	sort.Strings(columns)

	return tx.Table(cat.AttributeTable).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
}

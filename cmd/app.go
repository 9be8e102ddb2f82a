package cmd

import (
	"log"

	"eprel-mirror/core/config"
	"eprel-mirror/core/database"
	"eprel-mirror/core/eprel"
	"eprel-mirror/core/logger"
	"eprel-mirror/feature/catalog/store"
	catalogsync "eprel-mirror/feature/catalog/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the shared wiring every subcommand starts from.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	store   *store.Store
	client  *eprel.Client
	service *catalogsync.Service
}

// setup loads configuration and connects the common dependencies. The schema
// is migrated and categories are seeded on every startup; both are
// idempotent. requireAPI controls whether a missing API key is fatal.
func setup(requireAPI bool) *app {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}

	st := store.New(db, logg)
	if err := st.Migrate(); err != nil {
		logg.Fatal("Failed to migrate schema", zap.Error(err))
	}
	if err := st.SeedGroups(); err != nil {
		logg.Fatal("Failed to seed product groups", zap.Error(err))
	}

	// The service takes the client as an interface; a typed-nil *eprel.Client
	// would make that interface non-nil, so only pass it when it exists.
	var client *eprel.Client
	var catalogClient catalogsync.CatalogClient
	if requireAPI {
		client, err = eprel.NewClient(cfg.Eprel, logg)
		if err != nil {
			logg.Fatal("Failed to create EPREL client", zap.Error(err))
		}
		catalogClient = client
	}

	return &app{
		cfg:     cfg,
		log:     logg,
		db:      db,
		store:   st,
		client:  client,
		service: catalogsync.New(st, catalogClient, logg),
	}
}

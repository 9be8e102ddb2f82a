package labels

import (
	"bytes"
	"context"
	"fmt"

	"eprel-mirror/core/storage"
	"eprel-mirror/feature/catalog/store"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Document kinds the archiver can mirror.
const (
	KindLabel = "label"
	KindFiche = "fiche"
)

// Fetcher downloads label documents from the upstream API.
type Fetcher interface {
	EnergyLabel(ctx context.Context, group, productID, format string) ([]byte, error)
	ProductFiche(ctx context.Context, group, productID, format string) ([]byte, error)
}

// Lister enumerates mirrored products eligible for archival.
type Lister interface {
	LabelTargets(groupCode string, limit int) ([]store.LabelTarget, error)
}

// Options narrows an archive run.
type Options struct {
	// GroupCode restricts the run to one category; empty means all.
	GroupCode string
	// Format is the document format to download (pdf, svg or jpg).
	Format string
	// Limit caps the number of products handled; 0 means no cap.
	Limit int
	// Kind selects labels or fiches. Defaults to labels.
	Kind string
}

// Result is the aggregate outcome of an archive run.
type Result struct {
	Archived int
	Skipped  int
	Failed   int
}

// Archiver copies energy labels and product fiches from the API into object
// storage. Objects are keyed by category and product id, and existing objects
// are never downloaded again, so runs are idempotent and cheap to repeat.
type Archiver struct {
	lister  Lister
	fetcher Fetcher
	store   storage.Client
	bucket  string
	log     *zap.Logger
}

// New creates an archiver.
func New(lister Lister, fetcher Fetcher, st storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{lister: lister, fetcher: fetcher, store: st, bucket: bucket, log: log}
}

// Run archives documents for every eligible product. Individual download or
// upload failures are counted and skipped; only storage-level failures abort
// the run.
func (a *Archiver) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	if opts.Format == "" {
		opts.Format = "pdf"
	}
	if opts.Kind == "" {
		opts.Kind = KindLabel
	}

	if err := storage.EnsureBucket(ctx, a.store, a.bucket); err != nil {
		return res, err
	}

	targets, err := a.lister.LabelTargets(opts.GroupCode, opts.Limit)
	if err != nil {
		return res, fmt.Errorf("listing products for archival: %w", err)
	}

	a.log.Info("Archiving label documents",
		zap.Int("products", len(targets)),
		zap.String("kind", opts.Kind),
		zap.String("format", opts.Format))

	for _, target := range targets {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		key := objectKey(opts.Kind, target.GroupCode, target.ExternalID, opts.Format)

		exists, err := a.objectExists(ctx, key)
		if err != nil {
			res.Failed++
			a.log.Warn("Failed to probe archived object", zap.String("key", key), zap.Error(err))
			continue
		}
		if exists {
			res.Skipped++
			continue
		}

		body, err := a.fetch(ctx, opts.Kind, target, opts.Format)
		if err != nil {
			res.Failed++
			a.log.Warn("Failed to download document",
				zap.String("product", target.ExternalID),
				zap.String("group", target.GroupCode),
				zap.Error(err))
			continue
		}

		_, err = a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)),
			minio.PutObjectOptions{ContentType: contentType(opts.Format)})
		if err != nil {
			res.Failed++
			a.log.Warn("Failed to upload document", zap.String("key", key), zap.Error(err))
			continue
		}
		res.Archived++
	}

	a.log.Info("Archive run finished",
		zap.Int("archived", res.Archived),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}

func (a *Archiver) fetch(ctx context.Context, kind string, target store.LabelTarget, format string) ([]byte, error) {
	if kind == KindFiche {
		return a.fetcher.ProductFiche(ctx, target.GroupCode, target.ExternalID, format)
	}
	return a.fetcher.EnergyLabel(ctx, target.GroupCode, target.ExternalID, format)
}

func (a *Archiver) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := a.store.StatObject(ctx, a.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, err
}

func objectKey(kind, group, productID, format string) string {
	prefix := "labels"
	if kind == KindFiche {
		prefix = "fiches"
	}
	return fmt.Sprintf("%s/%s/%s.%s", prefix, group, productID, format)
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/pdf"
	}
}

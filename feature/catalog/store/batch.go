package store

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpsertResult is the outcome of one payload within a batch.
type UpsertResult struct {
	ExternalID string
	ProductID  uint
	Err        error
}

// Ok reports whether the payload was applied.
func (r UpsertResult) Ok() bool {
	return r.Err == nil
}

// SuccessCount counts applied payloads in a batch result.
func SuccessCount(results []UpsertResult) int {
	n := 0
	for _, r := range results {
		if r.Ok() {
			n++
		}
	}
	return n
}

// UpsertBatch applies one page of payloads inside a single transaction.
// Each payload runs under a savepoint: a failing payload is rolled back to
// its savepoint, recorded in the result slice and skipped, and the
// transaction still commits for the rest. Partial success is the contract
// here, not a best-effort accident; the caller decides whether the failure
// count is acceptable.
func (s *Store) UpsertBatch(payloads []map[string]any, groupCode string) ([]UpsertResult, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	results := make([]UpsertResult, 0, len(payloads))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, payload := range payloads {
			res := UpsertResult{ExternalID: externalProductID(payload)}

			err := tx.Transaction(func(inner *gorm.DB) error {
				id, err := upsertProductTx(inner, payload, groupCode)
				res.ProductID = id
				return err
			})
			if err != nil {
				res.Err = err
				s.log.Warn("Skipping product in batch",
					zap.String("eprel_product_id", res.ExternalID),
					zap.String("group", groupCode),
					zap.Error(err))
			}

			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch transaction for %s failed: %w", groupCode, err)
	}

	return results, nil
}

package store

import "eprel-mirror/feature/catalog/models"

// LabelTarget identifies one product whose label documents can be archived.
type LabelTarget struct {
	ExternalID string
	GroupCode  string
}

// LabelTargets lists mirrored products for the label archiver, optionally
// restricted to one category. limit 0 means no cap.
func (s *Store) LabelTargets(groupCode string, limit int) ([]LabelTarget, error) {
	q := s.db.Model(&models.Product{}).
		Select("products.eprel_product_id AS external_id, product_groups.code AS group_code").
		Joins("JOIN product_groups ON product_groups.id = products.product_group_id").
		Order("products.id")
	if groupCode != "" {
		q = q.Where("product_groups.code = ?", groupCode)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var targets []LabelTarget
	if err := q.Scan(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

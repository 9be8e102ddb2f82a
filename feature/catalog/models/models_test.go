package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRegistryCoversAllGroups(t *testing.T) {
	codes := CategoryCodes()
	assert.Len(t, codes, 18)

	// Lookup works for every registered code.
	for _, code := range codes {
		c, ok := CategoryByCode(code)
		require.True(t, ok, code)
		assert.Equal(t, code, c.Code)
		assert.NotEmpty(t, c.Endpoint)
	}
}

func TestCategoryByCodeUnknown(t *testing.T) {
	_, ok := CategoryByCode("toasters")
	assert.False(t, ok)
}

func TestOnlyKnownCategoriesHaveSideTables(t *testing.T) {
	withTables := map[string]string{
		"dishwashers":             "product_dishwashers",
		"washingmachines":         "product_washingmachines",
		"refrigeratingappliances": "product_refrigerators",
		"electronicdisplays":      "product_displays",
		"tyres":                   "product_tyres",
	}

	for _, c := range Categories() {
		table, expected := withTables[c.Code]
		if expected {
			assert.Equal(t, table, c.AttributeTable, c.Code)
			assert.True(t, c.HasAttributes(), c.Code)
			assert.NotEmpty(t, c.Attributes, c.Code)
		} else {
			assert.False(t, c.HasAttributes(), c.Code)
		}
	}
}

func TestAttributeMappingsAreUniquePerCategory(t *testing.T) {
	for _, c := range Categories() {
		seen := map[string]bool{}
		for _, m := range c.Attributes {
			assert.False(t, seen[m.Column], "%s: duplicate column %s", c.Code, m.Column)
			seen[m.Column] = true
			assert.NotEmpty(t, m.SourceField)
		}
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "products", Product{}.TableName())
	assert.Equal(t, "suppliers", Supplier{}.TableName())
	assert.Equal(t, "product_groups", ProductGroup{}.TableName())
	assert.Equal(t, "sync_jobs", SyncJob{}.TableName())
	assert.Equal(t, "sync_progress", SyncProgress{}.TableName())
}

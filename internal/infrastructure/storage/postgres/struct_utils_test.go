package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/internal/domain/catalogs/branch"
	"posadmin/internal/domain/catalogs/product"
)

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[branch.Branch]()

	// Embedded entity.Catalog/BaseEntity columns must be flattened in.
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "address")
	assert.Contains(t, cols, "is_active")
}

func TestStructToMap(t *testing.T) {
	b := branch.NewBranch("BR-001", "Main Store")
	addr := "1 High Street"
	b.Address = &addr

	m := StructToMap(b)
	require.NotNil(t, m)

	assert.Equal(t, b.ID, m["id"])
	assert.Equal(t, "BR-001", m["code"])
	assert.Equal(t, "Main Store", m["name"])
	assert.Equal(t, &addr, m["address"])
	assert.Equal(t, true, m["is_active"])
	assert.Equal(t, 1, m["version"])
}

func TestStructToMapSkipsUntaggedFields(t *testing.T) {
	p := product.NewProduct("SKU-1", "Thing")
	m := StructToMap(p)

	assert.Contains(t, m, "price")
	assert.Contains(t, m, "variant_attrs")
	assert.NotContains(t, m, "")
	assert.NotContains(t, m, "-")
}

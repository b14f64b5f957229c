package configs

import (
	"os"
	"path/filepath"
	"testing"

	"foodorder/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFromFile(t *testing.T) {
	db := openTestDB(t)

	n, err := SeedFromFile(db, "seed.example.yaml", 5000)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(3), countRows(t, db, &entity.User{}))
	assert.Equal(t, int64(2), countRows(t, db, &entity.Store{}))
	assert.Equal(t, int64(4), countRows(t, db, &entity.Menu{}))

	var customer entity.User
	require.NoError(t, db.Where("email = ?", "customer@example.com").First(&customer).Error)
	assert.Equal(t, int64(5000), customer.Point)
	assert.Equal(t, entity.RoleCustomer, customer.Role)

	// second run is a no-op
	n, err = SeedFromFile(db, "seed.example.yaml", 5000)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, int64(2), countRows(t, db, &entity.Store{}))
}

func TestSeedRejectsUnknownCategory(t *testing.T) {
	db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - email: o@example.com
    password: pw
    role: OWNER
    store:
      storeName: odd
      category: SPACEFOOD
`), 0o644))

	_, err := SeedFromFile(db, path, 0)
	assert.Error(t, err)
	assert.Equal(t, int64(0), countRows(t, db, &entity.User{}))
}

package wishlistControllers

import (
	"testing"

	"github.com/adarshalexbalmuchu/Unitech/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.WishlistItem{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	price := 499.0
	product := models.Product{Name: "Bluetooth Speaker", Category: "speakers", Price: &price}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestToggleWishlistIsItsOwnInverse(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	in, err := ToggleWishlist(db, "user-1", product.ID)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = ToggleWishlist(db, "user-1", product.ID)
	require.NoError(t, err)
	assert.False(t, in)

	items, err := FetchWishlist(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleWishlistUnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	_, err := ToggleWishlist(db, "user-1", "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestIsInWishlistMembership(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	_, err := ToggleWishlist(db, "user-1", product.ID)
	require.NoError(t, err)

	items, err := FetchWishlist(db, "user-1")
	require.NoError(t, err)
	assert.True(t, IsInWishlist(items, product.ID))
	assert.False(t, IsInWishlist(items, "other"))
}

// Two contexts signed in as the same user both observe a toggle after
// refetching, since the store is the single source of truth.
func TestTwoContextsObserveToggleAfterRefetch(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	// Both contexts load an empty wishlist.
	first, err := FetchWishlist(db, "user-1")
	require.NoError(t, err)
	second, err := FetchWishlist(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, first)
	assert.Empty(t, second)

	// One context toggles the product on.
	_, err = ToggleWishlist(db, "user-1", product.ID)
	require.NoError(t, err)

	// After refetch both contexts see it present.
	first, _ = FetchWishlist(db, "user-1")
	second, _ = FetchWishlist(db, "user-1")
	assert.True(t, IsInWishlist(first, product.ID))
	assert.True(t, IsInWishlist(second, product.ID))
}

func TestWishlistScopedPerUser(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	_, err := ToggleWishlist(db, "user-1", product.ID)
	require.NoError(t, err)

	items, err := FetchWishlist(db, "user-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myRoomStore/domain"
)

func TestProductFindAllSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	createTestProduct(t, db, "Velvet Sofa", "250.00")
	createTestProduct(t, db, "Oak Table", "120.00")
	createTestProduct(t, db, "SOFA Cushion", "15.00")

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{name: "no search returns everything", search: "", want: 3},
		{name: "case-insensitive substring", search: "sofa", want: 2},
		{name: "uppercase query", search: "SOFA", want: 2},
		{name: "partial match", search: "tab", want: 1},
		{name: "no match", search: "wardrobe", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.FindAll(ctx, tt.search, false)
			require.NoError(t, err)
			assert.Len(t, products, tt.want)
		})
	}
}

func TestProductFindAllSearchMatchesRoom(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	createTestProduct(t, db, "Bench", "30.00")

	products, err := repo.FindAll(context.Background(), "living", false)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestProductArchivedVisibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	active := createTestProduct(t, db, "Shelf", "45.00")
	archived := createTestProduct(t, db, "Old Shelf", "10.00")
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", archived.ID).
		Update("is_archived", true).Error)

	visible, err := repo.FindAll(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, active.ID, visible[0].ID)

	all, err := repo.FindAll(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Update(context.Background(), &domain.Product{Title: "ghost"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	productRepo := NewProductRepository(db)
	cartRepo := NewCartRepository(db)
	wishlistRepo := NewWishlistRepository(db)
	ordersRepo := NewOrdersRepository(db)

	user := createTestUser(t, db, "collector")
	product := createTestProduct(t, db, "Mirror", "35.00")

	require.NoError(t, wishlistRepo.Create(ctx, &domain.WishlistItem{UserID: user.ID, ProductID: product.ID}))
	require.NoError(t, cartRepo.Create(ctx, &domain.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}))
	_, err := ordersRepo.CreateFromCart(ctx, user.ID, "somewhere", "cod")
	require.NoError(t, err)

	require.NoError(t, productRepo.Delete(ctx, product.ID))

	_, err = productRepo.FindByID(ctx, product.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	wishlist, err := wishlistRepo.FindAllByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	var orderItems int64
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&orderItems).Error)
	assert.Zero(t, orderItems)
}

func TestProductDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Delete(context.Background(), 9999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"myRoomStore/domain"
	"myRoomStore/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) domain.User {
	t.Helper()

	user := domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     domain.RoleUser,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, title, price string) domain.Product {
	t.Helper()

	p := domain.Product{
		Title:       title,
		Description: "a " + title,
		Price:       decimal.RequireFromString(price),
		Room:        "living room",
		Stock:       10,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return p
}

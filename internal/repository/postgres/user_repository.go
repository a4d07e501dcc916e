package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myRoomStore/domain"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Preload("Profile").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	if err := r.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).
		Select("username", "email", "password", "role", "is_blocked", "is_active", "is_staff", "updated_at").
		Updates(user)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes the user and, through cascade, its profile, wishlist, cart
// and orders.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&domain.Profile{})
		tx.Where("user_id = ?", id).Delete(&domain.WishlistItem{})
		tx.Where("user_id = ?", id).Delete(&domain.CartItem{})

		var orderIDs []uint
		tx.Model(&domain.Order{}).Where("user_id = ?", id).Pluck("id", &orderIDs)
		if len(orderIDs) > 0 {
			tx.Where("order_id IN ?", orderIDs).Delete(&domain.OrderItem{})
			tx.Where("user_id = ?", id).Delete(&domain.Order{})
		}

		result := tx.Delete(&domain.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
}

// EnsureProfile creates the 1:1 profile row if the user does not have one
// yet. Registration and login both go through here.
func (r *UserRepository) EnsureProfile(ctx context.Context, userID uint) (domain.Profile, error) {
	var profile domain.Profile

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{}, err
	}

	profile = domain.Profile{UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&profile).Error; err != nil {
		return domain.Profile{}, err
	}

	return profile, nil
}

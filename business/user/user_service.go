package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
	"myRoomStore/pkg/utils"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	EnsureProfile(ctx context.Context, userID uint) (domain.Profile, error)
}

// TokenRepository is the durable revocation denylist.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RevocationCache fronts the denylist; misses fall through to the repository.
type RevocationCache interface {
	MarkRevoked(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	cache     RevocationCache
	validate  *validator.Validate
}

func NewUserService(userRepo UserRepository, tokenRepo TokenRepository, cache RevocationCache, validate *validator.Validate) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cache:     cache,
		validate:  validate,
	}
}

// Register creates an account with a hashed credential, default role "user",
// and an empty profile.
func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Username, "required,min=3"); err != nil {
		logger.Error("Invalid username", err)
		return domain.User{}, domain.NewValidationError("username", "username must be at least 3 characters")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, domain.NewValidationError("email", "invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByUsername(ctx, user.Username)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Username already exists")
		return domain.User{}, domain.NewValidationError("username", "username already taken")
	}

	existingUser, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, domain.NewValidationError("email", "email already taken")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, err
	}

	newUser := domain.User{
		Username: user.Username,
		Email:    user.Email,
		Password: passwordHash,
		Role:     domain.RoleUser,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	if _, err := s.userRepo.EnsureProfile(ctx, newUser.ID); err != nil {
		logger.Warn("Failed to create profile for new user", err)
	}

	newUser.Password = ""
	return newUser, nil
}

// Login validates the credential, rejects blocked accounts (only after the
// credential matched, so the error is distinguishable), lazily creates the
// profile and issues an access/refresh pair.
func (s *userService) Login(ctx context.Context, username, password string) (TokenPair, domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return TokenPair{}, domain.User{}, domain.ErrInvalidCredentials
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect")
		return TokenPair{}, domain.User{}, domain.ErrInvalidCredentials
	}

	if user.IsBlocked {
		logger.Warn("Blocked account attempted login", "user_id", user.ID)
		return TokenPair{}, domain.User{}, domain.ErrAccountBlocked
	}

	if _, err := s.userRepo.EnsureProfile(ctx, user.ID); err != nil {
		logger.Warn("Failed to ensure profile on login", err)
	}

	access, err := utils.GenerateAccessToken(user.ID, user.Role, user.CanManageStore())
	if err != nil {
		logger.Error("Failed to generate access token", err)
		return TokenPair{}, domain.User{}, err
	}

	refresh, err := utils.GenerateRefreshToken(user.ID, user.Role, user.CanManageStore())
	if err != nil {
		logger.Error("Failed to generate refresh token", err)
		return TokenPair{}, domain.User{}, err
	}

	user.Password = ""
	return TokenPair{Access: access, Refresh: refresh}, user, nil
}

// validateRefresh parses a refresh token and checks the denylist, cache
// first, then the durable store.
func (s *userService) validateRefresh(ctx context.Context, refreshToken string) (*utils.Claims, error) {
	claims, err := utils.ParseJWT(refreshToken)
	if err != nil {
		logger.Error("Failed to parse refresh token", err)
		return nil, domain.ErrInvalidToken
	}

	if claims.TokenType != utils.TokenTypeRefresh {
		logger.Error("Token is not a refresh token")
		return nil, domain.ErrInvalidToken
	}

	if s.cache != nil {
		revoked, err := s.cache.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Warn("Revocation cache lookup failed, falling back to store", err)
		} else if revoked {
			return nil, domain.ErrInvalidToken
		}
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.Error("Failed to check revocation store", err)
		return nil, err
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.validateRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	access, err := utils.GenerateAccessToken(claims.UserID, claims.Role, claims.IsStaff)
	if err != nil {
		logger.Error("Failed to generate access token", err)
		return "", err
	}

	return access, nil
}

// Logout revokes the refresh token. The jti lands in the durable denylist
// and the cache; revoking twice is harmless.
func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := utils.ParseJWT(refreshToken)
	if err != nil {
		logger.Error("Failed to parse refresh token on logout", err)
		return domain.ErrInvalidToken
	}

	if claims.TokenType != utils.TokenTypeRefresh {
		return domain.ErrInvalidToken
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.UserID, expiresAt); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}

	if s.cache != nil {
		if err := s.cache.MarkRevoked(ctx, claims.ID, time.Until(expiresAt)); err != nil {
			logger.Warn("Failed to cache revocation", err)
		}
	}

	return nil
}

// CreateUser is the admin-surface create: unlike Register it accepts role
// and flags.
func (s *userService) CreateUser(ctx context.Context, user *domain.User) (domain.User, error) {
	created, err := s.Register(ctx, &domain.User{
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
	})
	if err != nil {
		return domain.User{}, err
	}

	if user.Role == "" && !user.IsBlocked && !user.IsStaff {
		return created, nil
	}

	patch := UserPatch{}
	if user.Role != "" {
		role := string(user.Role)
		patch.Role = &role
	}
	if user.IsBlocked {
		patch.IsBlocked = &user.IsBlocked
	}
	if user.IsStaff {
		patch.IsStaff = &user.IsStaff
	}

	return s.UpdateUser(ctx, created.ID, patch)
}

// GetUserByID retrieves a user by ID. Admin surface only.
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// GetAllUsers retrieves all users. Admin surface only.
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// UserPatch carries the merge-patch for an account: only non-nil fields
// change, each validated before commit.
type UserPatch struct {
	Username  *string
	Email     *string
	Password  *string
	Role      *string
	IsBlocked *bool
	IsActive  *bool
	IsStaff   *bool
}

// UpdateUser applies a merge-patch to an account.
func (s *userService) UpdateUser(ctx context.Context, id uint, patch UserPatch) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if patch.Username != nil {
		if err := s.validate.Var(*patch.Username, "required,min=3"); err != nil {
			return domain.User{}, domain.NewValidationError("username", "username must be at least 3 characters")
		}

		userWithName, err := s.userRepo.FindByUsername(ctx, *patch.Username)
		if err == nil && userWithName.ID != id {
			logger.Error("Username already exists")
			return domain.User{}, domain.NewValidationError("username", "username already taken")
		}
		existingUser.Username = *patch.Username
	}

	if patch.Email != nil {
		if err := s.validate.Var(*patch.Email, "required,email"); err != nil {
			logger.Error("Invalid email format", err)
			return domain.User{}, domain.NewValidationError("email", "invalid email format")
		}
		existingUser.Email = *patch.Email
	}

	if patch.Password != nil {
		if err := s.validate.Var(*patch.Password, "required,min=6"); err != nil {
			logger.Error("Invalid password", err)
			return domain.User{}, domain.NewValidationError("password", "password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			logger.Error("Failed to hash password", err)
			return domain.User{}, err
		}
		existingUser.Password = passwordHash
	}

	if patch.Role != nil {
		role := domain.Role(*patch.Role)
		if !role.Valid() {
			return domain.User{}, domain.NewValidationError("role", "invalid role")
		}
		existingUser.Role = role
	}

	if patch.IsBlocked != nil {
		existingUser.IsBlocked = *patch.IsBlocked
	}

	if patch.IsActive != nil {
		existingUser.IsActive = *patch.IsActive
	}

	if patch.IsStaff != nil {
		existingUser.IsStaff = *patch.IsStaff
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

// DeleteUser removes a user and all dependent rows.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("User not found for deletion", err)
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	return nil
}

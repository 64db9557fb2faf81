package service

import (
	"context"
	"errors"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenRevoked       = errors.New("refresh token revoked")
)

type AuthService interface {
	// Register creates a new household with the user as its owner.
	Register(email, password, name, householdName string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, name string) (*model.User, error)
	RotateFeedToken(userID uint) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	householdRepo repository.HouseholdRepository
	tokens        TokenStore
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	householdRepo repository.HouseholdRepository,
	tokens TokenStore,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		householdRepo: householdRepo,
		tokens:        tokens,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(email, password, name, householdName string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if householdName == "" {
		householdName = name + "'s household"
	}
	household := &model.Household{Name: householdName}
	if err := s.householdRepo.Create(household); err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		HouseholdID:  household.ID,
		Role:         model.RoleOwner,
		FeedToken:    util.NewFeedToken(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(context.Background(), user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":      user.ID,
		"household_id": household.ID,
		"email":        email,
	})
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := util.VerifyPassword(user.PasswordHash, password); err != nil {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(context.Background(), user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id":      user.ID,
		"household_id": user.HouseholdID,
	})
	return user, tokens, nil
}

// Refresh validates the refresh token against the allow-list, revokes it,
// and issues a fresh pair. One refresh token is good for one exchange.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, util.ErrInvalidToken
	}

	if s.tokens != nil {
		ok, err := s.tokens.Exists(ctx, claims.UserID, claims.ID)
		if err != nil {
			logger.Error("Failed to check refresh token", err, map[string]interface{}{
				"user_id": claims.UserID,
			})
			return nil, err
		}
		if !ok {
			logger.Warn("Refresh rejected: token not in allow-list", map[string]interface{}{
				"user_id": claims.UserID,
			})
			return nil, ErrTokenRevoked
		}
		if err := s.tokens.Revoke(ctx, claims.UserID, claims.ID); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		// Already unusable; nothing to revoke.
		return nil
	}
	if s.tokens == nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.UserID, claims.ID)
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, name string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RotateFeedToken invalidates the old calendar feed URL and issues a new
// token.
func (s *authService) RotateFeedToken(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FeedToken = util.NewFeedToken()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.HouseholdID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	if s.tokens != nil {
		claims, err := util.ValidateToken(tokens.RefreshToken, s.jwtSecret)
		if err != nil {
			return nil, err
		}
		if err := s.tokens.Save(ctx, user.ID, claims.ID, s.refreshExpiry); err != nil {
			logger.Error("Failed to store refresh token", err, map[string]interface{}{
				"user_id": user.ID,
			})
			return nil, err
		}
	}
	return tokens, nil
}

package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/identity"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues and refreshes JWT token pairs
type TokenIssuer interface {
	IssuePair(userID uuid.UUID, email string, role string) (access, refresh string, expiresIn int64, err error)
	Refresh(refreshToken string) (access, refresh string, expiresIn int64, err error)
}

// ErrInvalidCredentials is returned for any failed login. The cause (unknown
// email, wrong password, disabled account) is deliberately not disclosed.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// UserService handles registration and authentication
type UserService struct {
	userRepo identity.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.Repository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new customer account
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, hash, req.DisplayName, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	response := ToUserResponse(user)
	return &response, nil
}

// Login verifies credentials and issues a token pair
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active || !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	access, refresh, expiresIn, err := s.tokens.IssuePair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	return &LoginResponse{
		User: ToUserResponse(user),
		Tokens: TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    expiresIn,
		},
	}, nil
}

// Refresh exchanges a refresh token for a new pair
func (s *UserService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	access, refresh, expiresIn, err := s.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}

// GetProfile returns the account of the given user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

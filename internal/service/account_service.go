package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barwy-shop/internal/config"
	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"
	"barwy-shop/internal/models"
	"barwy-shop/internal/repository"
	"barwy-shop/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// AccountService defines registration, sign-in and token operations
type AccountService interface {
	Register(ctx context.Context, vm models.RegisterVM) Response
	Login(ctx context.Context, vm models.LoginVM) Response
	Refresh(ctx context.Context, vm models.RefreshVM) Response
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) Response
	Profile(ctx context.Context, userID uuid.UUID) Response
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents the JWT claims
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type accountService struct {
	identity           IdentityService
	users              repository.UserRepository
	refreshTokens      repository.RefreshTokenRepository
	tx                 database.TxManager
	registerValidation validation.Validator[models.RegisterVM]
	loginValidation    validation.Validator[models.LoginVM]
	refreshValidation  validation.Validator[models.RefreshVM]
	jwtSecret          []byte
	accessExpiry       time.Duration
	refreshExpiry      time.Duration
	logger             *zap.Logger
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(
	identity IdentityService,
	users repository.UserRepository,
	refreshTokens repository.RefreshTokenRepository,
	tx database.TxManager,
	cfg config.JWTConfig,
	logger *zap.Logger,
) AccountService {
	return &accountService{
		identity:           identity,
		users:              users,
		refreshTokens:      refreshTokens,
		tx:                 tx,
		registerValidation: validation.RegisterValidation{},
		loginValidation:    validation.LoginValidation{},
		refreshValidation:  validation.RefreshValidation{},
		jwtSecret:          []byte(cfg.Secret),
		accessExpiry:       time.Duration(cfg.AccessExpiry) * time.Minute,
		refreshExpiry:      time.Duration(cfg.RefreshExpiry) * 24 * time.Hour,
		logger:             logger,
	}
}

// Register creates a user in the User role
func (s *accountService) Register(ctx context.Context, vm models.RegisterVM) Response {
	if result := s.registerValidation.Validate(vm); !result.IsValid {
		return Fail(KindValidation, msgInvalidData, result.Errors...)
	}

	user := &domain.User{
		Email:     vm.Email,
		FirstName: vm.FirstName,
		LastName:  vm.LastName,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.identity.CreateUser(ctx, user, vm.Password); err != nil {
			return err
		}
		return s.identity.AddToRole(ctx, user.ID, domain.RoleUser)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return Fail(KindConflict, msgUserAlreadyExists)
		}
		s.logger.Error("Failed to register user", zap.Error(err))
		return FromError(err, msgRegisterFailed)
	}

	return Ok(msgRegistered, toProfileVM(user, []string{domain.RoleUser}))
}

// Login checks credentials and issues an access and a refresh token
func (s *accountService) Login(ctx context.Context, vm models.LoginVM) Response {
	if result := s.loginValidation.Validate(vm); !result.IsValid {
		return Fail(KindValidation, msgInvalidData, result.Errors...)
	}

	user, err := s.users.FindByEmail(ctx, vm.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Fail(KindUnauthorized, msgInvalidCredentials)
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return FromError(err, msgAuthenticationError)
	}

	if !s.identity.CheckPassword(user, vm.Password) {
		s.logger.Debug("Password mismatch", zap.String("user_id", user.ID.String()))
		return Fail(KindUnauthorized, msgInvalidCredentials)
	}

	accessToken, err := s.issueAccessToken(ctx, user)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return Fail(KindInternal, msgAuthenticationError)
	}

	refreshToken, err := s.issueRefreshToken(ctx, user)
	if err != nil {
		s.logger.Error("Failed to generate refresh token", zap.Error(err))
		return FromError(err, msgAuthenticationError)
	}

	return Ok(msgLoggedIn, models.TokensVM{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessExpiry.Seconds()),
	})
}

// Refresh exchanges a live refresh token for a new access token
func (s *accountService) Refresh(ctx context.Context, vm models.RefreshVM) Response {
	if result := s.refreshValidation.Validate(vm); !result.IsValid {
		return Fail(KindValidation, msgInvalidData, result.Errors...)
	}

	token, err := s.refreshTokens.FindByToken(ctx, vm.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenRevoked) {
			return Fail(KindUnauthorized, msgInvalidToken)
		}
		s.logger.Error("Failed to find refresh token", zap.Error(err))
		return FromError(err, msgAuthenticationError)
	}

	if time.Now().After(token.ExpiresAt) {
		return Fail(KindUnauthorized, msgInvalidToken)
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Fail(KindUnauthorized, msgInvalidToken)
		}
		return FromError(err, msgAuthenticationError)
	}

	accessToken, err := s.issueAccessToken(ctx, user)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return Fail(KindInternal, msgAuthenticationError)
	}

	return Ok(msgTokenRefreshed, models.TokensVM{
		AccessToken: accessToken,
		ExpiresIn:   int(s.accessExpiry.Seconds()),
	})
}

// Logout revokes one of the caller's refresh tokens.
// Unknown tokens and tokens of other users count as already logged out and stay untouched.
func (s *accountService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) Response {
	if err := s.refreshTokens.Revoke(ctx, userID, refreshToken); err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		s.logger.Error("Failed to revoke refresh token", zap.Error(err))
		return FromError(err, msgAuthenticationError)
	}
	return Ok(msgLoggedOut, nil)
}

func (s *accountService) Profile(ctx context.Context, userID uuid.UUID) Response {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Fail(KindNotFound, msgUserNotFound)
		}
		return FromError(err, msgUserNotFound)
	}

	roles, err := s.identity.Roles(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to load roles", zap.String("user_id", user.ID.String()), zap.Error(err))
		return FromError(err, msgUserNotFound)
	}

	return Ok(msgProfileLoaded, toProfileVM(user, roles))
}

// ValidateToken validates a JWT token and returns the claims
func (s *accountService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// issueAccessToken signs a token carrying the user's id and primary role
func (s *accountService) issueAccessToken(ctx context.Context, user *domain.User) (string, error) {
	role, err := s.identity.PrimaryRole(ctx, user.ID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// issueRefreshToken generates a refresh token and stores it
func (s *accountService) issueRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	refreshToken := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.refreshExpiry),
		CreatedAt: now,
	}

	if err := s.refreshTokens.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

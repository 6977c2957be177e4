package service

import (
	"context"
	"fmt"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/repository"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/security"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// revokedKeyPrefix namespaces revoked session ids in Redis.
const revokedKeyPrefix = "revoked_session:"

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	csrf     *security.CSRFIssuer
	redis    *redis.Client
	// refresh tokens stay revoked for this long after logout
	revocationTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, csrf *security.CSRFIssuer, rdb *redis.Client, revocationTTL time.Duration) AuthService {
	if revocationTTL <= 0 {
		revocationTTL = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		tokens:        tokens,
		csrf:          csrf,
		redis:         rdb,
		revocationTTL: revocationTTL,
	}
}

func (s *authService) Signup(ctx context.Context, role domain.UserRole, name, email, phone, password string) (*domain.User, *TokenPair, error) {
	switch role {
	case domain.UserRoleCustomer, domain.UserRoleStylist, domain.UserRoleOwner:
	default:
		return nil, nil, fmt.Errorf("unknown role %q", role)
	}
	if len(password) < 8 {
		return nil, nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Role:         role,
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueSession(user)
	return user, pair, err
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueSession(user)
	return user, pair, err
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, security.ErrWrongTokenType
	}

	revoked, err := s.redis.Exists(ctx, revokedKeyPrefix+claims.SessionID).Result()
	if err != nil {
		return nil, err
	}
	if revoked > 0 {
		return nil, security.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, security.ErrInvalidToken
	}

	// The session id is preserved across refreshes so the CSRF token
	// the client already holds stays valid.
	return s.issueSessionWithID(user, claims.SessionID)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		// Expired or garbage token: nothing to revoke.
		return nil
	}
	return s.redis.Set(ctx, revokedKeyPrefix+claims.SessionID, 1, s.revocationTTL).Err()
}

func (s *authService) GetUser(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) issueSession(user *domain.User) (*TokenPair, error) {
	return s.issueSessionWithID(user, uuid.NewString())
}

func (s *authService) issueSessionWithID(user *domain.User, sessionID string) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), sessionID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		CSRFToken:    s.csrf.Token(sessionID),
		SessionID:    sessionID,
	}, nil
}

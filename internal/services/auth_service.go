package services

import (
	"errors"
	"fmt"
	"time"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"
	"milk_delivery/internal/redis"
	"milk_delivery/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller passed into every protected operation.
type Identity struct {
	UserID   string
	UserType models.UserType
}

func (i Identity) IsAdmin() bool {
	return i.UserType == models.UserTypeAdmin
}

// SessionStore keeps one entry per issued token so that a credential reset
// can revoke tokens that are still within their JWT lifetime.
type SessionStore interface {
	SetSession(tokenID string, session *redis.Session, ttl time.Duration) error
	GetSession(tokenID string) (*redis.Session, error)
	DeleteSession(tokenID string) error
	RevokeUserSessions(userID string) error
}

type LoginResult struct {
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type"`
	UserType    models.UserType        `json:"user_type"`
	UserData    map[string]interface{} `json:"user_data"`
}

type AuthService interface {
	// Login authenticates an admin by username or a delivery person by phone.
	Login(username, password string) (*LoginResult, error)
	Verify(token string) (*Identity, error)
	RevokeSessions(userID string) error
}

type authClaims struct {
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type authService struct {
	adminRepo  repository.AdminRepository
	personRepo repository.DeliveryPersonRepository
	sessions   SessionStore
	jwtSecret  []byte
	tokenTTL   time.Duration
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	personRepo repository.DeliveryPersonRepository,
	sessions SessionStore,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		adminRepo:  adminRepo,
		personRepo: personRepo,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
	}
}

func (s *authService) Login(username, password string) (*LoginResult, error) {
	// Admin login by username
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, apperr.NotFound) {
		return nil, err
	}
	if admin != nil && checkPassword(password, admin.PasswordHash) {
		token, err := s.issueToken(admin.ID, models.UserTypeAdmin)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			AccessToken: token,
			TokenType:   "bearer",
			UserType:    models.UserTypeAdmin,
			UserData: map[string]interface{}{
				"id":       admin.ID,
				"username": admin.Username,
			},
		}, nil
	}

	// Delivery person login by phone
	person, err := s.personRepo.GetByPhone(username)
	if err != nil && !errors.Is(err, apperr.NotFound) {
		return nil, err
	}
	if person != nil && checkPassword(password, person.PasswordHash) {
		token, err := s.issueToken(person.ID, models.UserTypeDeliveryPerson)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			AccessToken: token,
			TokenType:   "bearer",
			UserType:    models.UserTypeDeliveryPerson,
			UserData: map[string]interface{}{
				"id":      person.ID,
				"name":    person.Name,
				"phone":   person.Phone,
				"pincode": person.Pincode,
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: invalid credentials", apperr.Unauthorized)
}

func (s *authService) issueToken(userID string, userType models.UserType) (string, error) {
	now := time.Now()
	claims := &authClaims{
		UserType: string(userType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	session := &redis.Session{
		UserID:    userID,
		UserType:  string(userType),
		CreatedAt: now,
	}
	if err := s.sessions.SetSession(claims.ID, session, s.tokenTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return signed, nil
}

func (s *authService) Verify(tokenString string) (*Identity, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", apperr.Unauthorized)
	}

	session, err := s.sessions.GetSession(claims.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		// Token is cryptographically fine but its session was revoked.
		return nil, fmt.Errorf("%w: session revoked", apperr.Unauthorized)
	}

	return &Identity{
		UserID:   claims.Subject,
		UserType: models.UserType(claims.UserType),
	}, nil
}

func (s *authService) RevokeSessions(userID string) error {
	return s.sessions.RevokeUserSessions(userID)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

// StaticCredential is one entry of the built-in login list.
type StaticCredential struct {
	Email    string
	Password string
	Name     string
	Role     models.UserRole
}

// DefaultCredentials is the program's built-in account list.
var DefaultCredentials = []StaticCredential{
	{Email: "admin@ppgee.ufam.edu.br", Password: "admin123", Name: "Administrador", Role: models.RoleAdmin},
	{Email: "coordenador@ppgee.ufam.edu.br", Password: "coord123", Name: "Coordenador", Role: models.RoleAdmin},
	{Email: "visitante@ppgee.ufam.edu.br", Password: "visit123", Name: "Visitante", Role: models.RoleViewer},
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	// HashCost is the bcrypt cost used when hashing the credential list; zero means bcrypt.DefaultCost.
	HashCost int
}

// AuthService authenticates against a fixed credential list and issues HS256 tokens.
type AuthService struct {
	users     map[string]models.User
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService hashes creds once and returns the service.
func NewAuthService(creds []StaticCredential, validate *validator.Validate, logger *zap.Logger, config AuthConfig) (*AuthService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 8 * time.Hour
	}
	cost := config.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	users := make(map[string]models.User, len(creds))
	for i, cred := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash credential %s: %w", cred.Email, err)
		}
		email := normaliseEmail(cred.Email)
		users[email] = models.User{
			ID:           fmt.Sprintf("user-%d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Name:         cred.Name,
			Role:         cred.Role,
		}
	}

	return &AuthService{users: users, validator: validate, logger: logger, config: config, now: time.Now}, nil
}

// Login checks the credentials and returns a signed access token.
func (s *AuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid login payload")
	}

	user, ok := s.users[req.Email]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected", zap.String("email", user.Email))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	issuedAt := s.now().UTC()
	token, err := s.generateAccessToken(user, issuedAt)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to create access token")
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User:        userInfo(user),
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrUnauthorized, err, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// Me returns the account behind validated claims.
func (s *AuthService) Me(claims *models.JWTClaims) (*models.UserInfo, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	user, ok := s.users[normaliseEmail(claims.Email)]
	if !ok || user.ID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unknown account")
	}
	info := userInfo(user)
	return &info, nil
}

func (s *AuthService) generateAccessToken(user models.User, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.AccessTokenSecret))
}

func userInfo(u models.User) models.UserInfo {
	return models.UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

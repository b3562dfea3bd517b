package authenticating

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/baile-dashboard-api/internal/config"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 12 * time.Hour
	tokenIssuer     = "baile-dashboard-api"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Authenticator troca a senha compartilhada do painel por um token de acesso.
// O token é a única prova de acesso: nenhum estado de login fica no servidor.
type Authenticator interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

func (s *Service) Login(password string) (string, error) {
	if password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Senha é obrigatória")
	}

	if !s.passwordMatches(password) {
		logrus.Warn("Tentativa de acesso com senha inválida")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta")
	}

	token, err := s.generateJWT()
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de acesso")
	}

	return token, nil
}

// passwordMatches compara a senha com o hash bcrypt, quando configurado,
// ou com a senha em texto em tempo constante
func (s *Service) passwordMatches(password string) bool {
	access := s.cfg.Access

	if access.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(access.PasswordHash), []byte(password)) == nil
	}

	if access.Password == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(access.Password), []byte(password)) == 1
}

func (s *Service) generateJWT() (string, error) {
	ttl := s.cfg.Access.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := s.now()
	claims := domain.Claims{
		Scope: domain.ScopeDashboard,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.Scope != domain.ScopeDashboard {
		return nil, NewAuthError(ErrInvalidScope, apiErrors.ErrInsufficientPrivilege, claims.Scope)
	}

	return claims, nil
}

// HashPassword gera o hash bcrypt para ser usado em ACCESS_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

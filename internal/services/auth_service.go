package services

import (
	"crypto/subtle"
	"time"

	"coffeezone_backend/internal/auth"
	"coffeezone_backend/internal/config"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"
)

// AuthService выпускает токены админских сессий
type AuthService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	username  string
	password  string
	jwtSecret string
	ttl       time.Duration
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		username:  cfg.Admin.Username,
		password:  cfg.Admin.Password,
		jwtSecret: cfg.JWT.Secret,
		ttl:       time.Duration(cfg.JWT.TTL) * time.Minute,
	}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(s.username), []byte(req.Username)) == 1
	passwordOK := auth.VerifyAdminPassword(s.password, req.Password)
	if !usernameOK || !passwordOK {
		return nil, apperrors.NewUnauthorizedError("Invalid username or password")
	}

	token, err := auth.NewToken(s.jwtSecret, req.Username, s.ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.ttl.Seconds()),
	}, nil
}

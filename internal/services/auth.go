package services

import (
	"errors"
	"time"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown username and wrong
// password so login failures don't leak which accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin rider"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  models.AuthUser `json:"user"`
}

type AuthService struct {
	users   *repository.UserRepository
	jwtUtil *jwt.JWTUtil
}

func NewAuthService(users *repository.UserRepository, jwtUtil *jwt.JWTUtil) *AuthService {
	return &AuthService{
		users:   users,
		jwtUtil: jwtUtil,
	}
}

// Register creates a new dashboard account. The role defaults to rider;
// repository.ErrDuplicateUsername passes through on a taken username.
func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleRider
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        req.Email,
		Phone:        req.Phone,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	return s.users.Create(user)
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User: models.AuthUser{
			ID:       user.ID.Hex(),
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

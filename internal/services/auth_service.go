package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/rishikreddy7/bus-reservation/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid email or password"

// AuthService registers users and issues bearer tokens
type AuthService struct {
	users      UserStore
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, jwtService *jwt.Service, bcryptCost int, logger *logrus.Logger) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a traveler account and signs it in
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, models.NewConflict("EMAIL_TAKEN", "User already exists", nil)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, models.NewInternal("Failed to register user", err)
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, models.NewConflict("EMAIL_TAKEN", "User already exists", err)
		}
		return nil, models.NewInternal("Failed to register user", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return s.respond(user)
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewUnauthorized(msgInvalidCredentials)
		}
		return nil, models.NewInternal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.WithField("user_id", user.ID).Warn("Failed login attempt")
		return nil, models.NewUnauthorized(msgInvalidCredentials)
	}

	return s.respond(user)
}

// Me resolves an authenticated user id to the account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFound("User")
		}
		return nil, models.NewInternal("Failed to load user", err)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator when it does not exist yet
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.WithField("email", email).Warn("Bootstrap admin email belongs to a non-admin account")
		}
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleAdmin)
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email,
	}).Info("Bootstrap admin created")
	return nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, models.NewInternal("Failed to issue token", err)
	}
	return &models.AuthResponse{
		Success: true,
		Token:   token,
		User:    user,
	}, nil
}

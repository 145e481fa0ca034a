package services

import (
	"context"
	"testing"
	"time"

	"github.com/rishikreddy7/bus-reservation/internal/models"
	"github.com/rishikreddy7/bus-reservation/internal/services/servicetest"
	"github.com/rishikreddy7/bus-reservation/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth() (*AuthService, *jwt.Service, *servicetest.DB) {
	db := servicetest.NewDB()
	jwtService := jwt.NewService("test-secret-test-secret-test-secret", time.Hour)
	return NewAuthService(db.Users(), jwtService, bcrypt.MinCost, newTestLogger()), jwtService, db
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		auth, jwtService, _ := newAuth()
		resp, err := auth.Register(ctx, &models.RegisterRequest{Name: "Asha", Email: " Asha@Example.com ", Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "asha@example.com", resp.User.Email)
		assert.Equal(t, models.RoleUser, resp.User.Role)
		assert.NotEqual(t, "secret1", resp.User.PasswordHash)

		claims, err := jwtService.ValidateAccessToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("Email Taken", func(t *testing.T) {
		auth, _, _ := newAuth()
		_, err := auth.Register(ctx, &models.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
		require.NoError(t, err)

		_, err = auth.Register(ctx, &models.RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "secret2"})
		assert.Equal(t, models.KindConflict, models.KindOf(err))
	})

	t.Run("Weak Password", func(t *testing.T) {
		auth, _, _ := newAuth()
		_, err := auth.Register(ctx, &models.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "123"})
		assert.Equal(t, models.KindBadRequest, models.KindOf(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuth()
	registered, err := auth.Register(ctx, &models.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		resp, err := auth.Login(ctx, &models.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := auth.Login(ctx, &models.LoginRequest{Email: "asha@example.com", Password: "nope"})
		assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, err := auth.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
		assert.Equal(t, "Invalid email or password", err.Error())
	})
}

func TestAuthService_MeAndEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	auth, _, db := newAuth()

	require.NoError(t, auth.EnsureAdmin(ctx, "Administrator", "Admin@Example.com", "admin-pass"))
	// second run is a no-op
	require.NoError(t, auth.EnsureAdmin(ctx, "Administrator", "admin@example.com", "admin-pass"))
	// no email configured
	require.NoError(t, auth.EnsureAdmin(ctx, "Administrator", "", ""))

	admin, err := db.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	me, err := auth.Me(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", me.Name)

	resp, err := auth.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

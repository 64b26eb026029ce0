package auth

import (
	"context"
	"testing"
	"time"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/database"
	"inmobiliaria-backend/internal/pkg/apperr"
	"inmobiliaria-backend/internal/pkg/token"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{
		DB: db,
		Issuer: &token.Issuer{
			Secret:   "test-secret",
			IssuerID: "inmobiliaria-backend",
			Audience: "inmobiliaria-api",
			Expiry:   time.Hour,
		},
		FrontendURL: "http://localhost:3000",
	}
}

func validRegister() RegisterInput {
	return RegisterInput{
		UserName: "mgarcia",
		Email:    "Maria.Garcia@example.com",
		Password: "Passw0rd!",
		Fullname: "Maria Garcia",
		Phone:    "555-0101",
	}
}

func TestRegister_ConfirmThenLogin(t *testing.T) {
	s := setupAuthTest(t)

	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, constants.Client, u.Role)
	assert.Equal(t, "maria.garcia@example.com", u.Email)
	assert.False(t, u.EmailConfirmed)
	require.NotEmpty(t, u.ConfirmToken)

	// Unconfirmed accounts cannot log in.
	_, err = s.Login(context.Background(), u.Email, "Passw0rd!")
	require.Error(t, err)
	assert.Equal(t, "Account is not confirmed", err.Error())

	require.NoError(t, s.ConfirmEmail(context.Background(), u.ConfirmToken))

	result, err := s.Login(context.Background(), u.Email, "Passw0rd!")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := s.Issuer.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, u.UserID.String(), claims.UserID)
	assert.Equal(t, constants.Client, claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := setupAuthTest(t)
	_, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.UserName = "othername"
	_, err = s.Register(context.Background(), dup)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_WeakPassword(t *testing.T) {
	s := setupAuthTest(t)
	in := validRegister()
	in.Password = "short"
	_, err := s.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	s := setupAuthTest(t)
	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, s.ConfirmEmail(context.Background(), u.ConfirmToken))

	_, err = s.Login(context.Background(), u.Email, "Wr0ngPass!")
	require.Error(t, err)
	assert.Equal(t, "Incorrect Password", err.Error())
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := setupAuthTest(t)
	_, err := s.Login(context.Background(), "nobody@example.com", "Passw0rd!")
	require.Error(t, err)
	assert.Equal(t, "Invalid Email", err.Error())
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	s := setupAuthTest(t)
	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, s.ConfirmEmail(context.Background(), u.ConfirmToken))
	require.NoError(t, s.DB.Model(u).Update("active", false).Error)

	_, err = s.Login(context.Background(), u.Email, "Passw0rd!")
	require.Error(t, err)
	assert.Equal(t, "Account is deactivated", err.Error())
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestConfirmEmail_InvalidToken(t *testing.T) {
	s := setupAuthTest(t)
	err := s.ConfirmEmail(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

// Unknown email is a silent success so the endpoint does not leak which
// addresses are registered.
func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	s := setupAuthTest(t)
	require.NoError(t, s.ForgotPassword(context.Background(), "nobody@example.com"))
}

func TestResetPassword_Flow(t *testing.T) {
	s := setupAuthTest(t)
	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, s.ConfirmEmail(context.Background(), u.ConfirmToken))
	require.NoError(t, s.ForgotPassword(context.Background(), u.Email))

	require.NoError(t, s.DB.First(u, "user_id = ?", u.UserID).Error)
	require.NotEmpty(t, u.ResetToken)

	require.NoError(t, s.ResetPassword(context.Background(), u.ResetToken, "N3wSecret!"))

	_, err = s.Login(context.Background(), u.Email, "Passw0rd!")
	require.Error(t, err)
	_, err = s.Login(context.Background(), u.Email, "N3wSecret!")
	require.NoError(t, err)

	// Token is single use.
	err = s.ResetPassword(context.Background(), u.ResetToken, "An0therPass!")
	require.Error(t, err)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	s := setupAuthTest(t)
	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, s.ForgotPassword(context.Background(), u.Email))

	require.NoError(t, s.DB.First(u, "user_id = ?", u.UserID).Error)
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, s.DB.Model(u).Update("reset_token_expires_at", expired).Error)

	err = s.ResetPassword(context.Background(), u.ResetToken, "N3wSecret!")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

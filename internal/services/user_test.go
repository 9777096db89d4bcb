package services

import (
	"testing"

	"vms-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	user, err := service.CreateUser(&CreateUserRequest{
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role, "self-registered accounts never start as admin")
	assert.False(t, user.Verified)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestCreateUser_EmailTaken(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	_, err := service.CreateUser(&CreateUserRequest{
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	_, err = service.CreateUser(&CreateUserRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "jamie@example.com",
		Password:  "different",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"vms-backend/internal/models"
	"vms-backend/pkg/email"
	"vms-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userStore    UserStore
	jwtUtil      *jwt.JWTUtil
	emailService *email.EmailService
}

func NewAuthService(userStore UserStore, jwtUtil *jwt.JWTUtil, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userStore:    userStore,
		jwtUtil:      jwtUtil,
		emailService: emailService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *models.AuthUser `json:"user"`
	Token string           `json:"token"`
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	// Unknown email and wrong password report the same error so accounts
	// cannot be enumerated.
	user, err := s.userStore.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:  user.ToAuthUser(),
		Token: token,
	}, nil
}

func (s *AuthService) GetUserProfile(userID string) (*models.AuthUser, error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user.ToAuthUser(), nil
}

// InitiateEmailVerification stores a fresh verification code on the account
// and mails it out.
func (s *AuthService) InitiateEmailVerification(userID string) error {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	code, err := randomToken(16)
	if err != nil {
		return err
	}

	user.VerificationCode = code
	if _, err := s.userStore.Update(user.ID.Hex(), user); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendVerificationEmail(user.Email, code); err != nil {
			log.Printf("Failed to send verification email to %s: %v", user.Email, err)
			return err
		}
	}

	return nil
}

// VerifyEmail marks the account holding the code as verified.
func (s *AuthService) VerifyEmail(code string) (*models.AuthUser, error) {
	if code == "" {
		return nil, ErrInvalidVerification
	}

	users, err := s.userStore.FindAll()
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.VerificationCode != code {
			continue
		}

		user.Verified = true
		user.VerificationCode = ""
		updated, err := s.userStore.Update(user.ID.Hex(), user)
		if err != nil {
			return nil, err
		}
		return updated.ToAuthUser(), nil
	}

	return nil, ErrInvalidVerification
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword stores a hashed reset token and mails the plain token.
// It reports success for unknown emails to prevent enumeration.
func (s *AuthService) ForgotPassword(emailAddr string) error {
	user, err := s.userStore.FindByEmail(emailAddr)
	if err != nil {
		return nil
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}

	hashedToken, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	expiry := time.Now().Add(24 * time.Hour)
	if err := s.userStore.UpdatePasswordResetToken(user.Email, string(hashedToken), expiry); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendPasswordResetEmail(user.Email, token); err != nil {
			log.Printf("Failed to send reset email to %s: %v", user.Email, err)
			return err
		}
	}

	return nil
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ResetPassword sets a new password for the account holding a valid reset
// token. Tokens are stored hashed, so candidates are compared one by one.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	users, err := s.userStore.FindAll()
	if err != nil {
		return err
	}

	var matchedUser *models.User
	for _, user := range users {
		if user.PasswordResetToken == "" || user.PasswordResetExpiry == nil {
			continue
		}
		if user.PasswordResetExpiry.Before(time.Now()) {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordResetToken), []byte(token)); err == nil {
			matchedUser = user
			break
		}
	}

	if matchedUser == nil {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	matchedUser.Password = string(hashedPassword)
	if _, err := s.userStore.Update(matchedUser.ID.Hex(), matchedUser); err != nil {
		return err
	}

	// The token stays valid until it is cleared, so a failed clear is an error
	return s.userStore.ClearPasswordResetToken(matchedUser.ID.Hex())
}

func randomToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

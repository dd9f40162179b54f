package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"vipgate/internal/mailer"
	"vipgate/internal/middleware"
	"vipgate/internal/models"
	"vipgate/internal/repository"
	"vipgate/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const passwordResetTTL = time.Hour

// AuthService handles account registration, credential checks and the
// password reset flow.
type AuthService struct {
	userRepo        repository.UserRepository
	mail            mailer.Mailer
	frontendBaseURL string
	now             func() time.Time
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, frontendBaseURL string) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		mail:            mail,
		frontendBaseURL: frontendBaseURL,
		now:             time.Now,
	}
}

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateName(req.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials and returns the user. Wrong email and wrong
// password produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// ForgotPassword issues a reset token and mails the reset link. It succeeds
// silently for unknown addresses, again to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		middleware.Logger.InfoContext(ctx, "password reset requested for unknown address")
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.NewInternalError(err)
	}
	token := hex.EncodeToString(buf)

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(passwordResetTTL),
	}
	if err := s.userRepo.CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBaseURL, token)
	if err := s.mail.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to send password reset email", "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	reset, err := s.userRepo.GetPasswordReset(ctx, token)
	if err != nil {
		return err
	}
	if reset == nil || reset.UsedAt != nil || reset.ExpiresAt.Before(s.now()) {
		return models.NewUnauthorizedError("Invalid or expired reset token")
	}

	user, err := s.userRepo.GetByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.userRepo.MarkPasswordResetUsed(ctx, reset)
}

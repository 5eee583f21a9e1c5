package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskhive-be/internal/entities"
	"taskhive-be/internal/jwt"
	"taskhive-be/internal/models"
	"taskhive-be/internal/oauth"
	"taskhive-be/internal/repository"
)

const otpTTL = 10 * time.Minute

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, info *oauth.UserInfo) (*models.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	mailer     Mailer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, mailer Mailer) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
	}
}

// Register creates a new user account and logs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	passwordHash := string(hashed)
	user, err := s.userRepo.Create(ctx, req.Email, req.FirstName, req.LastName, &passwordHash, nil)
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		// OAuth-only account
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// LoginWithGoogle logs in the user Google identified, linking the Google
// account to an existing user by email or creating a fresh account
func (s *authService) LoginWithGoogle(ctx context.Context, info *oauth.UserInfo) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByGoogleID(ctx, info.GoogleID)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.userRepo.FindByEmail(ctx, info.Email)
		switch {
		case err == nil:
			// Existing password account; attach the Google identity
			if err := s.userRepo.LinkGoogleID(ctx, user.ID, info.GoogleID); err != nil {
				return nil, err
			}
		case errors.Is(err, repository.ErrNotFound):
			googleID := info.GoogleID
			user, err = s.userRepo.Create(ctx, info.Email, info.FirstName, info.LastName, nil, &googleID)
			if err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// RequestPasswordReset generates a 6-digit OTP, stores it with a 10 minute
// expiry, and emails it to the user
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.userRepo.SetResetOTP(ctx, user.ID, otp, time.Now().Add(otpTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetOTP(email, otp); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// VerifyOTP checks a pending password-reset OTP and consumes it on success
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.ResetOTP == nil || user.ResetOTPExpiresAt == nil {
		return ErrNoResetRequest
	}
	if user.ResetOTPExpiresAt.Before(time.Now()) {
		return ErrOTPExpired
	}
	if *user.ResetOTP != otp {
		return ErrOTPInvalid
	}

	return s.userRepo.ClearResetOTP(ctx, user.ID)
}

// ResetPassword replaces the user's password
func (s *authService) ResetPassword(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}

func (s *authService) issueToken(user *entities.User) (*models.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User: models.UserSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		CreatedAt: user.CreatedAt,
	}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

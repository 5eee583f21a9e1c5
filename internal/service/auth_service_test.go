package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskhive-be/internal/jwt"
	"taskhive-be/internal/models"
	"taskhive-be/internal/oauth"
	"taskhive-be/internal/repository"
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeMailer, *jwt.JWTService) {
	store := newMemStore()
	users := &fakeUserRepo{store: store}
	mail := &fakeMailer{}
	jwtSvc := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(users, jwtSvc, mail), users, mail, jwtSvc
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	svc, _, _, jwtSvc := newAuthFixture()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Archer",
		Email:     "a@example.com",
		Password:  "hunter22",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := jwtSvc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token is invalid: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Email != "a@example.com" {
		t.Errorf("token claims mismatch: %+v", claims)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	req := &models.RegisterRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "hunter22"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(ctx, req)
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{
		FirstName: "Alice", LastName: "Archer", Email: "a@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "hunter22"}); err != nil {
		t.Errorf("login with correct password failed: %v", err)
	}

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials for bad password, got %v", err)
	}

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginWithGoogleCreatesAndLinks(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()

	// First Google login creates a passwordless account
	info := &oauth.UserInfo{GoogleID: "g-1", Email: "a@example.com", FirstName: "Alice", LastName: "Archer"}
	resp, err := svc.LoginWithGoogle(ctx, info)
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	created, err := users.FindByGoogleID(ctx, "g-1")
	if err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if created.PasswordHash != nil {
		t.Error("OAuth-only account must not have a password hash")
	}
	if resp.User.Email != "a@example.com" {
		t.Errorf("wrong user in response: %+v", resp.User)
	}

	// Password login on an OAuth-only account is rejected
	_, err = svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "anything"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}

	// A second login with the same Google id reuses the account
	again, err := svc.LoginWithGoogle(ctx, info)
	if err != nil {
		t.Fatalf("repeat google login failed: %v", err)
	}
	if again.User.ID != created.ID {
		t.Error("repeat login created a second account")
	}
}

func TestLoginWithGoogleLinksExistingEmailAccount(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &models.RegisterRequest{
		FirstName: "Alice", LastName: "Archer", Email: "a@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.LoginWithGoogle(ctx, &oauth.UserInfo{GoogleID: "g-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	if resp.User.ID != reg.User.ID {
		t.Error("google login should link to the existing account, not create one")
	}
	linked, _ := users.FindByID(ctx, reg.User.ID)
	if linked.GoogleID == nil || *linked.GoogleID != "g-1" {
		t.Errorf("google id not linked: %+v", linked)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, mail, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		FirstName: "Alice", LastName: "Archer", Email: "a@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "a@example.com"); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("want one OTP email, got %d", len(mail.sent))
	}
	otp := strings.SplitN(mail.sent[0], ":", 2)[1]
	if len(otp) != 6 {
		t.Fatalf("want 6-digit OTP, got %q", otp)
	}

	wrong := "000000"
	if otp == wrong {
		wrong = "111111"
	}
	if err := svc.VerifyOTP(ctx, "a@example.com", wrong); !errors.Is(err, ErrOTPInvalid) {
		t.Errorf("want ErrOTPInvalid for wrong code, got %v", err)
	}
	if err := svc.VerifyOTP(ctx, "a@example.com", otp); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	// The OTP is consumed on success
	if err := svc.VerifyOTP(ctx, "a@example.com", otp); !errors.Is(err, ErrNoResetRequest) {
		t.Errorf("want ErrNoResetRequest after consumption, got %v", err)
	}

	if err := svc.ResetPassword(ctx, "a@example.com", "new-password"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "new-password"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "hunter22"}); err == nil {
		t.Error("old password must no longer work")
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, mail, _ := newAuthFixture()

	err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if len(mail.sent) != 0 {
		t.Error("no email should be sent for unknown accounts")
	}
}

func TestPasswordResetMailFailure(t *testing.T) {
	svc, _, mail, _ := newAuthFixture()
	ctx := context.Background()
	mail.fail = true

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		FirstName: "Alice", LastName: "Archer", Email: "a@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err := svc.RequestPasswordReset(ctx, "a@example.com")
	if !errors.Is(err, ErrMailDelivery) {
		t.Errorf("want ErrMailDelivery, got %v", err)
	}
}

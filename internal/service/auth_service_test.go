package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type authFixture struct {
	svc    *AuthService
	store  *memoryAuthStore
	sender *fakeResetSender
	now    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		store:  newMemoryAuthStore(),
		sender: &fakeResetSender{},
		now:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewAuthService(f.store, f.store, f.sender, util.NewJWTManager("test-secret", time.Hour), 15*time.Minute, 6)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *authFixture) signup(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := f.svc.Signup(context.Background(), email, password)
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return user
}

func TestSignupThenLogin(t *testing.T) {
	f := newAuthFixture(t)
	user := f.signup(t, "  Reader@Example.com ", "password1")
	if user.Email != "reader@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	res, err := f.svc.Login(context.Background(), "READER@example.com", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.User.ID != user.ID {
		t.Fatalf("unexpected login result %+v", res)
	}
	claims, err := f.svc.JWT().Parse(res.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims %+v", claims)
	}

	authed, err := f.svc.Authenticate(context.Background(), res.Token)
	if err != nil || authed.ID != user.ID {
		t.Fatalf("authenticate: %v %+v", err, authed)
	}
}

func TestSignupValidation(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "taken@example.com", "password1")

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing email", "", "password1", ErrEmailPasswordRequired},
		{"missing password", "a@example.com", "", ErrEmailPasswordRequired},
		{"bad email", "not-an-email", "password1", ErrInvalidEmail},
		{"short password", "a@example.com", "pass1", ErrPasswordTooWeak},
		{"no digit", "a@example.com", "passwordonly", ErrPasswordTooWeak},
		{"over bcrypt limit", "long@example.com", strings.Repeat("a", 72) + "1", ErrPasswordTooLong},
		{"duplicate", "TAKEN@example.com", "password1", ErrEmailAlreadyUsed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Signup(context.Background(), tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "reader@example.com", "password1")

	_, wrongPassword := f.svc.Login(context.Background(), "reader@example.com", "password2")
	_, unknownEmail := f.svc.Login(context.Background(), "ghost@example.com", "password1")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v / %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("errors differ: %q vs %q", wrongPassword, unknownEmail)
	}
	if domain.KindOf(wrongPassword) != domain.KindAuth {
		t.Fatalf("expected auth kind, got %v", domain.KindOf(wrongPassword))
	}
}

func TestLoginRepositoryFailureIsInternal(t *testing.T) {
	f := newAuthFixture(t)
	f.store.findErr = errBoom
	_, err := f.svc.Login(context.Background(), "reader@example.com", "password1")
	if domain.KindOf(err) != domain.KindInternal || !errors.Is(err, errBoom) {
		t.Fatalf("expected internal error wrapping cause, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "reader@example.com", "password1")
	ctx := context.Background()

	if err := f.svc.RequestPasswordReset(ctx, "Reader@Example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	otp := f.sender.lastOTP()
	if len(otp) != 6 {
		t.Fatalf("expected 6 digit otp, got %q", otp)
	}

	if err := f.svc.ResetPassword(ctx, "reader@example.com", otp, "newpassword2"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := f.svc.Login(ctx, "reader@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should fail, got %v", err)
	}
	if _, err := f.svc.Login(ctx, "reader@example.com", "newpassword2"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}

	if err := f.svc.ResetPassword(ctx, "reader@example.com", otp, "another3pass"); !errors.Is(err, ErrResetOTPInvalid) {
		t.Fatalf("replayed otp should fail, got %v", err)
	}
}

func TestPasswordResetSecondRequestSupersedesFirst(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "reader@example.com", "password1")
	ctx := context.Background()

	if err := f.svc.RequestPasswordReset(ctx, "reader@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first := f.sender.lastOTP()
	if err := f.svc.RequestPasswordReset(ctx, "reader@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	second := f.sender.lastOTP()
	if f.store.pendingResets() != 1 {
		t.Fatalf("expected one pending reset, got %d", f.store.pendingResets())
	}

	if first != second {
		if err := f.svc.ResetPassword(ctx, "reader@example.com", first, "newpassword2"); !errors.Is(err, ErrResetOTPInvalid) {
			t.Fatalf("superseded otp should fail, got %v", err)
		}
	}
	if err := f.svc.ResetPassword(ctx, "reader@example.com", second, "newpassword2"); err != nil {
		t.Fatalf("latest otp should work: %v", err)
	}
}

func TestPasswordResetExpiry(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "reader@example.com", "password1")
	ctx := context.Background()

	if err := f.svc.RequestPasswordReset(ctx, "reader@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := f.sender.lastOTP()

	f.now = f.now.Add(15*time.Minute + time.Second)
	if err := f.svc.ResetPassword(ctx, "reader@example.com", otp, "newpassword2"); !errors.Is(err, ErrResetOTPInvalid) {
		t.Fatalf("expired otp should fail, got %v", err)
	}
}

func TestPasswordResetFailuresAreIdentical(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "reader@example.com", "password1")
	ctx := context.Background()
	if err := f.svc.RequestPasswordReset(ctx, "reader@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := f.sender.lastOTP()
	wrong := "000000"
	if otp == wrong {
		wrong = "111111"
	}

	wrongCode := f.svc.ResetPassword(ctx, "reader@example.com", wrong, "newpassword2")
	unknown := f.svc.ResetPassword(ctx, "ghost@example.com", otp, "newpassword2")
	if !errors.Is(wrongCode, ErrResetOTPInvalid) || !errors.Is(unknown, ErrResetOTPInvalid) {
		t.Fatalf("expected invalid otp for both, got %v / %v", wrongCode, unknown)
	}
}

func TestPasswordResetValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestPasswordReset(ctx, " "); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected email required, got %v", err)
	}
	if err := f.svc.RequestPasswordReset(ctx, "ghost@example.com"); !errors.Is(err, ErrEmailNotFound) {
		t.Fatalf("expected email not found, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, "reader@example.com", "", "newpassword2"); !errors.Is(err, ErrResetFieldsRequired) {
		t.Fatalf("expected fields required, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, "reader@example.com", "123456", "short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected weak password, got %v", err)
	}
	if err := f.svc.ResetPassword(ctx, "reader@example.com", "123456", strings.Repeat("a", 72)+"1"); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected long password rejection, got %v", err)
	}
}

func TestPasswordResetUndeliveredCodeIsWithdrawn(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "reader@example.com", "password1")
	f.sender.err = errBoom

	err := f.svc.RequestPasswordReset(context.Background(), "reader@example.com")
	if domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if f.store.pendingResets() != 0 {
		t.Fatalf("undelivered reset should be removed, %d left", f.store.pendingResets())
	}
}

func TestPasswordResetWithoutSenderIsWithdrawn(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.mailer = nil
	f.signup(t, "reader@example.com", "password1")

	err := f.svc.RequestPasswordReset(context.Background(), "reader@example.com")
	if domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if f.store.pendingResets() != 0 {
		t.Fatalf("unsent reset should be removed, %d left", f.store.pendingResets())
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newAuthFixture(t)
	if _, err := f.svc.Authenticate(context.Background(), "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	other := util.NewJWTManager("test-secret", time.Hour)
	user := f.signup(t, "reader@example.com", "password1")
	token, _, err := other.Generate(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	delete(f.store.users, user.ID)
	if _, err := f.svc.Authenticate(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("deleted user should be unauthorized, got %v", err)
	}
}

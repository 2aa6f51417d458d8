package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/utils"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeSettingsRepo, *utils.JWTManager) {
	settings := newFakeSettingsRepo()
	users := newFakeUserRepo(settings)
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(users, jwt), users, settings, jwt
}

func TestRegisterCreatesUserAndSettings(t *testing.T) {
	svc, _, settings, jwt := newAuthFixture()

	out, err := svc.Register(context.Background(), &RegisterInput{
		Username: "  Operator_1 ", Password: "rahasia", ConfirmPassword: "rahasia", FullName: "Rina Wati",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if out.User.Username != "operator_1" {
		t.Errorf("Username = %q, want lower-cased and trimmed", out.User.Username)
	}
	if out.User.Password == "rahasia" {
		t.Error("password stored in clear text")
	}
	if _, ok := settings.byUser[out.User.ID]; !ok {
		t.Error("default receipt settings were not created")
	}

	claims, err := jwt.ValidateAccessToken(out.AccessToken)
	if err != nil || claims.UserID != out.User.ID || claims.FullName != "Rina Wati" {
		t.Errorf("access token claims = %+v, err = %v", claims, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		message string
	}{
		{"missing username", RegisterInput{Password: "rahasia", FullName: "Rina"}, "Username harus diisi"},
		{"short username", RegisterInput{Username: "ab", Password: "rahasia", FullName: "Rina"}, "Username minimal 3 karakter"},
		{"bad username", RegisterInput{Username: "rina wati", Password: "rahasia", FullName: "Rina"}, "Username hanya boleh mengandung huruf, angka, dan underscore"},
		{"short password", RegisterInput{Username: "rina", Password: "12345", FullName: "Rina"}, "Password minimal 6 karakter"},
		{"confirm mismatch", RegisterInput{Username: "rina", Password: "123456", ConfirmPassword: "654321", FullName: "Rina"}, "Konfirmasi password tidak sesuai"},
		{"short name", RegisterInput{Username: "rina", Password: "123456", FullName: "R"}, "Nama lengkap minimal 2 karakter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _, _ := newAuthFixture()
			_, err := svc.Register(context.Background(), &tt.input)
			if got := apperror.GetAppError(err).Message; got != tt.message {
				t.Errorf("message = %q, want %q", got, tt.message)
			}
			if len(users.users) != 0 {
				t.Error("user created despite invalid input")
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	in := &RegisterInput{Username: "rina", Password: "123456", FullName: "Rina"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(context.Background(), &RegisterInput{Username: "RINA", Password: "123456", FullName: "Rina"})
	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusConflict || appErr.Message != "Username sudah digunakan" {
		t.Errorf("error = %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), &RegisterInput{Username: "rina", Password: "123456", FullName: "Rina"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "Rina", Password: "123456"}); err != nil {
		t.Errorf("Login() error: %v", err)
	}
	for _, in := range []LoginInput{{Username: "rina", Password: "salah1"}, {Username: "budi", Password: "123456"}} {
		_, err := svc.Login(context.Background(), &in)
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Errorf("Login(%s) error = %v, want ErrInvalidCredentials", in.Username, err)
		}
	}
}

func TestRefreshToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	out, err := svc.Register(context.Background(), &RegisterInput{Username: "rina", Password: "123456", FullName: "Rina"})
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), out.RefreshToken)
	if err != nil || refreshed.User.ID != out.User.ID {
		t.Errorf("RefreshToken() = %+v, %v", refreshed, err)
	}
	if _, err := svc.RefreshToken(context.Background(), "garbage"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("RefreshToken(garbage) error = %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	out, err := svc.Register(context.Background(), &RegisterInput{Username: "rina", Password: "123456", FullName: "Rina"})
	if err != nil {
		t.Fatal(err)
	}

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{UserID: out.User.ID, CurrentPassword: "wrong!", NewPassword: "abcdef"})
	if got := apperror.GetAppError(err).Message; got != "Password lama tidak sesuai" {
		t.Errorf("message = %q", got)
	}

	if err := svc.ChangePassword(context.Background(), &ChangePasswordInput{UserID: out.User.ID, CurrentPassword: "123456", NewPassword: "abcdef"}); err != nil {
		t.Fatalf("ChangePassword() error: %v", err)
	}
	if _, err := svc.Login(context.Background(), &LoginInput{Username: "rina", Password: "abcdef"}); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	a, _ := svc.Register(context.Background(), &RegisterInput{Username: "rina", Password: "123456", FullName: "Rina"})
	if _, err := svc.Register(context.Background(), &RegisterInput{Username: "budi", Password: "123456", FullName: "Budi"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.UpdateProfile(context.Background(), &UpdateProfileInput{UserID: a.User.ID, FullName: "Rina W", Username: "budi"})
	if apperror.GetAppError(err).Code != http.StatusConflict {
		t.Errorf("taking another user's name: error = %v", err)
	}

	user, err := svc.UpdateProfile(context.Background(), &UpdateProfileInput{UserID: a.User.ID, FullName: " Rina Wati ", Username: "rina_w"})
	if err != nil {
		t.Fatal(err)
	}
	if user.FullName != "Rina Wati" || user.Username != "rina_w" {
		t.Errorf("user = %+v", user)
	}
}

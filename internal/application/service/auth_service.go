package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/utils"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// CurrentUser is the authenticated operator behind a request.
type CurrentUser struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
}

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := normalizeUsername(input.Username)
	var fieldErrors []apperror.FieldError
	if username == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "username", Message: "Username harus diisi"})
	}
	if strings.TrimSpace(input.Password) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password harus diisi"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Register creates a new user account together with its default receipt settings
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*LoginOutput, error) {
	username := normalizeUsername(input.Username)
	fullName := strings.TrimSpace(input.FullName)

	if err := validateRegistration(username, input.Password, input.ConfirmPassword, fullName); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Username sudah digunakan")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:       uuid.New(),
		Username: username,
		FullName: fullName,
		Password: hashedPassword,
	}
	if err := s.userRepo.CreateWithSettings(ctx, user, entity.DefaultReceiptSettings(user.ID)); err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}

	return s.issueTokens(user)
}

func validateRegistration(username, password, confirm, fullName string) error {
	var fieldErrors []apperror.FieldError
	add := func(field, message string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
	}

	switch {
	case username == "":
		add("username", "Username harus diisi")
	case len(username) < 3:
		add("username", "Username minimal 3 karakter")
	case !usernamePattern.MatchString(username):
		add("username", "Username hanya boleh mengandung huruf, angka, dan underscore")
	}

	switch {
	case strings.TrimSpace(password) == "":
		add("password", "Password harus diisi")
	case len(password) < 6:
		add("password", "Password minimal 6 karakter")
	case confirm != "" && confirm != password:
		add("confirm_password", "Konfirmasi password tidak sesuai")
	}

	switch {
	case fullName == "":
		add("full_name", "Nama lengkap harus diisi")
	case len([]rune(fullName)) < 2:
		add("full_name", "Nama lengkap minimal 2 karakter")
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.FullName)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID   uuid.UUID
	FullName string
	Username string
}

// UpdateProfile updates the user's display name and, when given, username
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(input.FullName)
	switch {
	case fullName == "":
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "full_name", Message: "Nama lengkap harus diisi"}})
	case len([]rune(fullName)) < 2:
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "full_name", Message: "Nama lengkap minimal 2 karakter"}})
	}

	// Check if username is taken by another user
	if username := normalizeUsername(input.Username); username != "" && username != user.Username {
		if len(username) < 3 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "username", Message: "Username minimal 3 karakter"}})
		}
		if !usernamePattern.MatchString(username) {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "username", Message: "Username hanya boleh mengandung huruf, angka, dan underscore"}})
		}
		existingUser, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, apperror.Wrap(apperror.ErrStorage, err)
		}
		if existingUser != nil && existingUser.ID != user.ID {
			return nil, apperror.NewConflictError("Username sudah digunakan")
		}
		user.Username = username
	}
	user.FullName = fullName

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	switch {
	case strings.TrimSpace(input.CurrentPassword) == "":
		return apperror.NewValidationError([]apperror.FieldError{{Field: "current_password", Message: "Password lama harus diisi"}})
	case strings.TrimSpace(input.NewPassword) == "":
		return apperror.NewValidationError([]apperror.FieldError{{Field: "new_password", Message: "Password baru harus diisi"}})
	case len(input.NewPassword) < 6:
		return apperror.NewValidationError([]apperror.FieldError{{Field: "new_password", Message: "Password baru minimal 6 karakter"}})
	}

	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Password lama tidak sesuai")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.Wrap(apperror.ErrStorage, err)
	}
	return nil
}

// DeleteAccount removes the user together with every transaction and setting they own
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.GetCurrentUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteWithData(ctx, userID); err != nil {
		return apperror.Wrap(apperror.ErrStorage, err)
	}
	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

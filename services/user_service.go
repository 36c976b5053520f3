package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/repositories"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/storage"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context, role *models.UserRole) ([]models.User, error)
	CreateAccount(ctx context.Context, actor *models.User, input CreateAccountInput) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, id int, input UpdateProfileInput) (*models.User, error)
	ChangeRole(ctx context.Context, actor *models.User, id int, role models.UserRole) (*models.User, error)
	ChangeVerificationStatus(ctx context.Context, actor *models.User, id int, status models.VerificationStatus) (*models.User, error)
	Delete(ctx context.Context, actor *models.User, id int) error
	UploadAvatar(ctx context.Context, actor *models.User, id int, contentType string, reader io.Reader) (*models.User, error)
}

type CreateAccountInput struct {
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, uploader: uploader}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) List(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	for i := range users {
		s.populateUserDetails(&users[i])
	}
	return users, nil
}

// CreateAccount provisions an account on someone's behalf. Only masters may
// mint admins; created admins start pending until a master approves them.
func (s *userService) CreateAccount(ctx context.Context, actor *models.User, input CreateAccountInput) (*models.User, error) {
	if err := authorizeMutation(actor); err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = models.RolePlayer
	}
	if !input.Role.Valid() || input.Role == models.RoleMaster {
		return nil, ErrInvalidRole
	}
	if input.Role == models.RoleAdmin && actor.Role != models.RoleMaster {
		return nil, ErrForbiddenOperation
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if input.FullName == "" {
		return nil, ErrFullNameRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verification := models.VerificationApproved
	if input.Role == models.RoleAdmin {
		verification = models.VerificationPending
	}

	user := &models.User{
		Email:              input.Email,
		FullName:           input.FullName,
		Role:               input.Role,
		VerificationStatus: verification,
		PasswordHash:       string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor *models.User, id int, input UpdateProfileInput) (*models.User, error) {
	if actor.ID != id {
		if err := authorizeMutation(actor); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, ErrFullNameRequired
		}
		user.FullName = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, ErrEmailRequired
		}
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, err
	}

	s.populateUserDetails(user)
	return user, nil
}

// ChangeRole is a master-only operation. The master role itself cannot be
// granted or revoked through the API.
func (s *userService) ChangeRole(ctx context.Context, actor *models.User, id int, role models.UserRole) (*models.User, error) {
	if actor.Role != models.RoleMaster {
		return nil, ErrForbiddenOperation
	}
	if !role.Valid() || role == models.RoleMaster {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role == models.RoleMaster {
		return nil, ErrForbiddenOperation
	}

	user.Role = role
	if role == models.RoleAdmin && user.VerificationStatus != models.VerificationApproved {
		user.VerificationStatus = models.VerificationPending
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) ChangeVerificationStatus(ctx context.Context, actor *models.User, id int, status models.VerificationStatus) (*models.User, error) {
	if actor.Role != models.RoleMaster {
		return nil, ErrForbiddenOperation
	}
	if !status.Valid() {
		return nil, ErrInvalidVerification
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.VerificationStatus = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *models.User, id int) error {
	if actor.Role != models.RoleMaster {
		return ErrForbiddenOperation
	}
	if actor.ID == id {
		return ErrForbiddenOperation
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, actor *models.User, id int, contentType string, reader io.Reader) (*models.User, error) {
	if actor.ID != id {
		if err := authorizeMutation(actor); err != nil {
			return nil, err
		}
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("avatars/user_%d%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	oldKey := user.AvatarKey
	if err := s.userRepo.UpdateAvatarKey(ctx, id, &key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != key {
		// Best effort; the new avatar is already in place.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.AvatarKey = &key
	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) populateUserDetails(user *models.User) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.AvatarKey != nil && *user.AvatarKey != "" && s.uploader != nil {
		if url := s.uploader.GetPublicURL(*user.AvatarKey); url != "" {
			user.AvatarURL = &url
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/vancoder1/CampusJobBoardSystem/internal/store"
	"github.com/vancoder1/CampusJobBoardSystem/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	UpdateStatus(ctx context.Context, id int, status types.UserStatus) error
}

// UserService covers registration, credential checks, and the admin-side
// account management.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account with a bcrypt-hashed password. Only the
// STUDENT and EMPLOYER roles are self-service; admins are provisioned out
// of band. A reused email fails with store.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, fullName, email, password string, role types.Role) (types.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))

	if fullName == "" {
		return types.User{}, newValidationError("full_name", "full name is required")
	}
	if email == "" {
		return types.User{}, newValidationError("email", "email is required")
	}
	if password == "" {
		return types.User{}, newValidationError("password", "password is required")
	}
	if role != types.RoleStudent && role != types.RoleEmployer {
		return types.User{}, newValidationError("role", "role must be STUDENT or EMPLOYER")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, store.ErrDuplicate
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		FullName:     fullName,
		Email:        email,
		Role:         role,
		Status:       types.UserActive,
		PasswordHash: string(hashed),
	})
}

// Authenticate resolves credentials to a user. Unknown email, wrong
// password, and a deactivated account all fail identically with
// ErrInvalidCredentials; an INACTIVE account cannot log in regardless of
// role.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}
	if user.Status == types.UserInactive {
		return types.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// GetAllUsers returns every account. Admin view.
func (s *UserService) GetAllUsers(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

// ActivateUser re-enables a deactivated account.
func (s *UserService) ActivateUser(ctx context.Context, id int) error {
	return s.repo.UpdateStatus(ctx, id, types.UserActive)
}

// DeactivateUser disables an account, blocking future logins.
func (s *UserService) DeactivateUser(ctx context.Context, id int) error {
	return s.repo.UpdateStatus(ctx, id, types.UserInactive)
}

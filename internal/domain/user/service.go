package user

import (
	"context"
	"errors"
	"time"

	ports "github.com/ctgmao2/planwise/internal/core/ports/repository"
	"github.com/ctgmao2/planwise/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// TaskReferenceCleaner unsets assignee/reporter references held by tasks when
// a user is removed. Implemented by the task repositories.
type TaskReferenceCleaner interface {
	ClearUserReferences(ctx context.Context, userID uuid.UUID) error
}

type CreateUserInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
	Password    string `json:"password"`
}

type UpdateUserInput struct {
	Email       *string `json:"email,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Initials    *string `json:"initials,omitempty"`
	AvatarColor *string `json:"avatar_color,omitempty"`
	Password    *string `json:"password,omitempty"`
}

type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo     Repository
	tasks    TaskReferenceCleaner
	txRunner ports.TxRunner
	logger   *zap.Logger
}

func NewService(repo Repository, tasks TaskReferenceCleaner, txRunner ports.TxRunner, logger *zap.Logger) Service {
	return &service{repo: repo, tasks: tasks, txRunner: txRunner, logger: logger}
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if input.Username == "" || input.FullName == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	if existing, err := s.repo.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "member"
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		Role:         role,
		Initials:     DeriveInitials(input.FullName),
		AvatarColor:  input.AvatarColor,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username))

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.FullName != nil {
		u.FullName = *input.FullName
		if input.Initials == nil {
			u.Initials = DeriveInitials(*input.FullName)
		}
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	if input.Initials != nil {
		u.Initials = *input.Initials
	}
	if input.AvatarColor != nil {
		u.AvatarColor = *input.AvatarColor
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteUser removes the user and unsets any task references pointing at it.
// No cascade beyond reference unsetting.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	err := s.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.tasks.ClearUserReferences(txCtx, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

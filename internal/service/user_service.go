package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "userhub/internal/errors"
	"userhub/internal/metrics"
	"userhub/internal/model"
	"userhub/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// UserPage is one page of records plus pagination totals.
type UserPage struct {
	Users       []model.User
	CurrentPage int
	TotalPages  int
	TotalUsers  int64
}

// UserService exposes record-level business operations.
type UserService interface {
	Create(ctx context.Context, input *CreateUserInput) (*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, page, limit int) (*UserPage, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *UserValidator
	metrics   *metrics.Metrics
}

// NewUserService builds a UserService with repository, validator and metrics.
func NewUserService(repo repository.UserRepository, validator *UserValidator, m *metrics.Metrics) UserService {
	return &userService{repo: repo, validator: validator, metrics: m}
}

// Create validates the input, rejects duplicate emails and persists the
// record. The FindByEmail pre-check only produces the friendly error; the
// unique index on email is the authoritative guard against concurrent writers
// racing through the check.
func (s *userService) Create(ctx context.Context, input *CreateUserInput) (*model.User, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Name:  input.Name,
		Email: input.Email,
		Age:   input.Age,
		City:  input.City,
		Phone: input.Phone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns records ordered newest first. Non-positive page or limit fall
// back to page=1, limit=10.
func (s *userService) List(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &UserPage{
		Users:       users,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalUsers:  total,
	}, nil
}

// Update replaces the supplied fields and bumps updated_at. ID and created_at
// never change.
func (s *userService) Update(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*model.User, error) {
	if err := s.validator.ValidateUpdate(input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		owner, err := s.repo.FindByEmail(ctx, *input.Email)
		if err == nil && owner.ID != user.ID {
			return nil, apperrors.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the record irrecoverably and returns its last snapshot.
// Repeating a delete yields not-found, never a second success.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Search matches the query as a case-insensitive substring of name or email.
// An empty query returns no records rather than the whole table.
func (s *userService) Search(ctx context.Context, query string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.User{}, nil
	}
	return s.repo.Search(ctx, query)
}

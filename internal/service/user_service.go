package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo repository.UserRepository
	log  logrus.FieldLogger
	cost int
}

func NewUserService(repo repository.UserRepository, log logrus.FieldLogger) *UserService {
	return &UserService{
		repo: repo,
		log:  log.WithField("component", "user_service"),
		cost: bcrypt.DefaultCost,
	}
}

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithCost(cost int) *UserService {
	s.cost = cost
	return s
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.log.WithError(err).Warn("register failed")
		return nil, fmt.Errorf("register user: %w", err)
	}

	pub := user.Public()
	return &pub, nil
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pub := user.Public()
	return &pub, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

const defaultSearchLimit = 10

// TokenIssuer is satisfied by *auth.Codec.
type TokenIssuer interface {
	Encode(userID int64) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

const maxPasswordBytes = 72

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is returned by register and login.
type Session struct {
	User  user.User
	Token string
}

type UserService struct {
	users       user.Repository
	tokens      TokenIssuer
	searchLimit int
	hashCost    int
	// dummyHash keeps the unknown-email login path as slow as a wrong password.
	dummyHash []byte
}

func NewUserService(users user.Repository, tokens TokenIssuer, searchLimit int) *UserService {
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	s := &UserService{
		users:       users,
		tokens:      tokens,
		searchLimit: searchLimit,
	}
	s.setHashCost(bcrypt.DefaultCost)
	return s
}

func (s *UserService) setHashCost(cost int) {
	s.hashCost = cost
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("event-scoring-dummy-password"), cost)
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(ctx, input); err != nil {
		return Session{}, err
	}

	// bcrypt caps input at 72 bytes; the max tag counts runes, so multi-byte passwords land here.
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return Session{}, invalidInput("password must be at most %d bytes", maxPasswordBytes)
	}
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, user.ErrEmailTaken) {
		return Session{}, conflict("Email already in use")
	}
	if err != nil {
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.issue(created)
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Login")
	defer span.End()

	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(ctx, input); err != nil {
		return Session{}, err
	}

	u, exists, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return Session{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
		return Session{}, unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return Session{}, unauthorized("Invalid email or password")
	}

	return s.issue(u)
}

func (s *UserService) Get(ctx context.Context, id int64) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Get")
	defer span.End()

	u, exists, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, notFound("User not found")
	}
	return u, nil
}

// Search matches name or email case-insensitively, ordered by name.
func (s *UserService) Search(ctx context.Context, query string) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Search")
	defer span.End()

	users, err := s.users.Search(ctx, strings.TrimSpace(query), s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *UserService) issue(u user.User) (Session, error) {
	token, err := s.tokens.Encode(u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: u, Token: token}, nil
}

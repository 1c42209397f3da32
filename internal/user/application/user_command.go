package application

import (
	"context"
	"time"

	"github.com/wyfcoding/eshop/internal/user/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/contextx"
	"golang.org/x/crypto/bcrypt"
)

type RegisterCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type UserCommandService struct {
	repo      domain.UserRepository
	tokens    *TokenService
	publisher domain.EventPublisher
}

func NewUserCommandService(repo domain.UserRepository, tokens *TokenService, publisher domain.EventPublisher) *UserCommandService {
	return &UserCommandService{repo: repo, tokens: tokens, publisher: publisher}
}

// Register creates a new account; the duplicate check and insert share one
// transaction so two racing registrations cannot both pass.
func (s *UserCommandService) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	var user *domain.User
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByEmail(txCtx, cmd.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.Business(errs.CodeEmailAlreadyExists, "Email already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user = domain.NewUser(cmd.Email, string(hash), cmd.FirstName, cmd.LastName, cmd.Phone)
		if err := s.repo.Save(txCtx, user); err != nil {
			return err
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.UserRegisteredEvent{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(txCtx, contextx.GetTx(txCtx), domain.UserRegisteredEventType, cmd.Email, event)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserCommandService) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.Unauthorized(errs.CodeInvalidEmailOrPassword, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, errs.Unauthorized(errs.CodeInvalidEmailOrPassword, "Invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

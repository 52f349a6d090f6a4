package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/email"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/LeonardoCto/myeconomyback/internal/token"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Manager
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Manager, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type SignUpInput struct {
	Name      string
	Email     string
	Password  string
	Birthdate time.Time
}

// SignUp hashes the password and stores the new user. The welcome email is
// best-effort: a send failure is logged and never fails the signup.
func (u *AuthUsecase) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Birthdate:    input.Birthdate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	subject := "Welcome to myeconomy"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Start tracking your monthly expenses and limits.</p>", user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "welcome email", "email", user.Email, "error", err)
	}

	return user, nil
}

// SignIn verifies the password against the stored bcrypt hash and mints an
// access token bound to the user's email.
func (u *AuthUsecase) SignIn(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrWrongPassword
	}

	signed, err := u.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
)

const minPasswordLen = 8

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token    string
	Identity auth.Identity
	User     *model.User
}

type UserUsecase struct {
	users       UserRepository
	tokens      TokenIssuer
	revocations auth.RevocationStore
	log         *zap.Logger
}

func NewUserUsecase(users UserRepository, tokens TokenIssuer, revocations auth.RevocationStore, log *zap.Logger) *UserUsecase {
	return &UserUsecase{users: users, tokens: tokens, revocations: revocations, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *UserUsecase) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	user := &model.User{Name: strings.TrimSpace(in.Name), Email: email}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	uc.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (uc *UserUsecase) LogIn(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, id, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Identity: id, User: user}, nil
}

// LogOut revokes the caller's token until it would have expired.
func (uc *UserUsecase) LogOut(ctx context.Context, rc auth.RequestContext) error {
	if !rc.Authenticated() {
		return ErrUnauthenticated
	}
	if err := uc.revocations.Revoke(ctx, rc.Identity.TokenID, rc.Identity.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (uc *UserUsecase) Me(ctx context.Context, rc auth.RequestContext) (*model.User, error) {
	userID, err := requireUser(rc)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

package commands

import (
	"context"
	"log/slog"

	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/infra"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/pkg/password"
	"boardinghouse/internal/usecase/queries"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User            *queries.AuthorizedUserView
	TokenPair       *TokenPair
	ClaimedBookings int64
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	orphans    OrphanBookingAssociator
	clock      clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	orphans OrphanBookingAssociator,
	clock clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		orphans:    orphans,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, tag(err, ErrAuthenticationFailed, errs.ErrValidation)
	}

	userView, err := a.validateUser(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tokens, err := a.issueTokens(userView.ID, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, userView.ID, a.clock.Now())
	})
	if err != nil {
		// login already succeeded; only last_login is stale
		slog.Warn("failed to update last login", "user_id", userView.ID, "error", err.Error())
	}

	claimed, err := a.orphans.AssociateOrphanBookings(ctx, userView.ID, userView.Email, userView.Phone)
	if err != nil {
		slog.Warn("failed to claim orphan bookings at login", "user_id", userView.ID, "error", err.Error())
	}

	return &LoginResult{
		User:            userView,
		TokenPair:       tokens,
		ClaimedBookings: claimed,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, tag(err, ErrTokenValidation, errs.ErrForbidden)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, tag(nil, ErrTokenValidation, errs.ErrForbidden)
	}

	// Validate user still exists and is active
	userView, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, tag(nil, ErrUserNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !userView.IsActive {
		return nil, tag(nil, ErrUserInactive, errs.ErrForbidden)
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	return a.issueTokens(userView.ID, role)
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, email user.Email, plain string) (*queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.readStore.FindByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a password mismatch to prevent user enumeration
			return nil, tag(nil, ErrInvalidCredentials, errs.ErrForbidden)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !userView.IsActive {
		return nil, tag(nil, ErrUserInactive, errs.ErrForbidden)
	}

	if err := password.ComparePassword(hashedPassword, plain); err != nil {
		return nil, tag(nil, ErrInvalidCredentials, errs.ErrForbidden)
	}

	return userView, nil
}

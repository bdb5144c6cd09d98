package usecase

import (
	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/usecase/shared"
)

// TokenValidator turns a bearer access token into the actor it speaks for.
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, err
	}

	return shared.UserActor(claims.UserID, role), nil
}

package usecase_test

import (
	"testing"
	"time"

	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/usecase"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Minute, time.Hour)
	validator := usecase.NewTokenValidator(svc)
	id := uuid.New()

	access, err := svc.GenerateAccessToken(id, user.RoleAdmin)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(id, user.RoleAdmin)
	require.NoError(t, err)

	actor, err := validator.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, shared.UserActor(id, user.RoleAdmin), actor)
	assert.True(t, actor.IsAdmin())

	_, err = validator.ValidateToken(refresh)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}

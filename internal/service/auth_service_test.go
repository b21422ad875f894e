package service

import (
	"testing"

	"survey_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIssuesToken(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.auth.Register("alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.Zero(t, result.SurveysTaken)
	assert.Zero(t, result.TotalScore)

	claims, err := util.ParseJWT(result.Token, env.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, result.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Same email, different username.
	_, err = env.auth.Register("alice2", "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, util.ErrUserExists)

	// Same username, different email.
	_, err = env.auth.Register("alice", "other@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, util.ErrUserExists)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.auth.Register("alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, err := env.userRepo.FindByID(result.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register("alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	result, err := env.auth.Login("alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.NotEmpty(t, result.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register("alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = env.auth.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidLogin)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, util.ErrInvalidLogin)
}

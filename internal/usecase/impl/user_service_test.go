package impl

import (
	"context"
	"testing"

	"basket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(factory *fakeRepoFactory) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager:        &fakeTxManager{factory: factory},
		UserRepo:         factory.users,
		RefreshTokenRepo: factory.sessions,
		Hasher:           fakeHasher{},
		TokenService:     fakeTokenService{},
		Logger:           testLogger(),
	})
}

func signupInput() *usecase.SignupInput {
	return &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	}
}

func TestSignup_CreatesAccount(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	output, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.NotZero(t, output.User.ID)
	assert.Equal(t, "alice", output.User.Username)
	assert.NotEqual(t, "hunter22", output.User.PasswordHash, "password must be stored hashed")
}

func TestSignup_RejectsTakenEmail(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	input := signupInput()
	input.Username = "someone-else"
	_, err = svc.Signup(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "EMAIL_TAKEN", appErrorCode(t, err))
}

func TestSignup_RejectsTakenUsername(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	input := signupInput()
	input.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "USERNAME_TAKEN", appErrorCode(t, err))
}

func TestSignin_IssuesTokensAndStoresSession(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newUserService(factory)

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	output, err := svc.Signin(context.Background(), &usecase.SigninInput{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	require.NotNil(t, output.User)

	hash := fakeTokenService{}.HashToken(output.RefreshToken)
	_, err = factory.sessions.FindRefreshTokenByHash(context.Background(), hash)
	assert.NoError(t, err, "signin must persist the session")
}

func TestSignin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	_, wrongPassErr := svc.Signin(context.Background(), &usecase.SigninInput{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	require.Error(t, wrongPassErr)

	_, unknownErr := svc.Signin(context.Background(), &usecase.SigninInput{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	require.Error(t, unknownErr)

	assert.Equal(t, "INVALID_CREDENTIALS", appErrorCode(t, wrongPassErr))
	assert.Equal(t, "INVALID_CREDENTIALS", appErrorCode(t, unknownErr))
}

func TestRefreshToken_MintsNewAccessToken(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	signin, err := svc.Signin(context.Background(), &usecase.SigninInput{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	output, err := svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: signin.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
}

func TestRefreshToken_RejectsUnknownSession(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newUserService(factory)

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	// A token that validates cryptographically but has no stored session.
	userID := firstUserID(factory)
	_, err = svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: "refresh." + userID + ".stale",
	})
	require.Error(t, err)
	assert.Equal(t, "REFRESH_TOKEN_INVALID", appErrorCode(t, err))
}

func TestRefreshToken_RejectsGarbage(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: "not-a-token",
	})
	require.Error(t, err)
	assert.Equal(t, "REFRESH_TOKEN_INVALID", appErrorCode(t, err))
}

func TestLogout_EndsSession(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	signin, err := svc.Signin(context.Background(), &usecase.SigninInput{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: signin.RefreshToken,
	}))

	_, err = svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: signin.RefreshToken,
	})
	assert.Error(t, err, "session must be gone after logout")

	// Logging out twice is not an error.
	assert.NoError(t, svc.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: signin.RefreshToken,
	}))
}

func TestEmailAndUsernameExists(t *testing.T) {
	svc := newUserService(newFakeRepoFactory())

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	exists, err := svc.EmailExists(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.UsernameExists(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func firstUserID(factory *fakeRepoFactory) string {
	for id := range factory.users.users {
		return id.String()
	}

	return ""
}

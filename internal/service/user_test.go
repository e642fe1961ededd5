package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"contactdesk/internal/models"
	"contactdesk/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
	CreateFunc           func(ctx context.Context, user *models.User) error
	FindByUsernameFunc   func(ctx context.Context, username string) (*models.User, error)
	FindByTokenFunc      func(ctx context.Context, token string) (*models.User, error)
	UpdateFunc           func(ctx context.Context, user *models.User) error
	UpdateTokenFunc      func(ctx context.Context, username string, token sql.NullString) error
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.ExistsByUsernameFunc(ctx, username)
}
func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.FindByUsernameFunc(ctx, username)
}
func (m *mockUserRepo) FindByToken(ctx context.Context, token string) (*models.User, error) {
	return m.FindByTokenFunc(ctx, token)
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.UpdateFunc(ctx, user)
}
func (m *mockUserRepo) UpdateToken(ctx context.Context, username string, token sql.NullString) error {
	return m.UpdateTokenFunc(ctx, username, token)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_Success(t *testing.T) {
	var created *models.User
	repo := &mockUserRepo{
		ExistsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewUserService(repo)

	resp, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "test", Password: "test", Name: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "test", resp.Username)
	assert.Equal(t, "test", resp.Name)
	assert.Empty(t, resp.Token)

	require.NotNil(t, created)
	assert.False(t, created.Token.Valid, "new account must start logged out")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("test")),
		"stored password must be a hash of the plain password")
	assert.NotEqual(t, "test", created.Password)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := &mockUserRepo{
		ExistsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "test", Password: "other", Name: "other",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_InvalidRequest(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := &mockUserRepo{
		FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Login(context.Background(), models.LoginUserRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockUserRepo{
		FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: "test", Name: "test", Password: mustHash(t, "right")}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Login(context.Background(), models.LoginUserRequest{Username: "test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"wrong password must fail exactly like an unknown username")
}

func TestLogin_IssuesToken(t *testing.T) {
	var stored sql.NullString
	repo := &mockUserRepo{
		FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: "test", Name: "test", Password: mustHash(t, "test")}, nil
		},
		UpdateTokenFunc: func(ctx context.Context, username string, token sql.NullString) error {
			stored = token
			return nil
		},
	}
	svc := NewUserService(repo)

	resp, err := svc.Login(context.Background(), models.LoginUserRequest{Username: "test", Password: "test"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.True(t, stored.Valid)
	assert.Equal(t, stored.String, resp.Token, "the persisted token must be the one returned")
}

func TestLogin_RotatesToken(t *testing.T) {
	var tokens []string
	repo := &mockUserRepo{
		FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: "test", Name: "test", Password: mustHash(t, "test")}, nil
		},
		UpdateTokenFunc: func(ctx context.Context, username string, token sql.NullString) error {
			tokens = append(tokens, token.String)
			return nil
		},
	}
	svc := NewUserService(repo)

	req := models.LoginUserRequest{Username: "test", Password: "test"}
	_, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1], "each login must overwrite the previous session token")
}

func TestByToken_Unknown(t *testing.T) {
	repo := &mockUserRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*models.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewUserService(repo)

	_, err := svc.ByToken(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestByToken_Success(t *testing.T) {
	repo := &mockUserRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*models.User, error) {
			return &models.User{Username: "test", Name: "test"}, nil
		},
	}
	svc := NewUserService(repo)

	user, err := svc.ByToken(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "test", user.Username)
}

func TestUpdateUser_NameOnly(t *testing.T) {
	var updated *models.User
	repo := &mockUserRepo{
		UpdateFunc: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(repo)

	user := &models.User{Username: "test", Name: "test", Password: "$2a$10$hash"}
	name := "test123"
	resp, err := svc.Update(context.Background(), user, models.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "test123", resp.Name)
	require.NotNil(t, updated)
	assert.Equal(t, "$2a$10$hash", updated.Password, "password must stay untouched")
}

func TestUpdateUser_PasswordRehashed(t *testing.T) {
	var updated *models.User
	repo := &mockUserRepo{
		UpdateFunc: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(repo)

	user := &models.User{Username: "test", Name: "test", Password: "old-hash"}
	password := "newpass"
	resp, err := svc.Update(context.Background(), user, models.UpdateUserRequest{Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "test", resp.Name)
	require.NotNil(t, updated)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass")))
}

func TestUpdateUser_EmptyProvidedFieldRejected(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	empty := ""
	_, err := svc.Update(context.Background(), &models.User{Username: "test"}, models.UpdateUserRequest{Name: &empty})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr, "a field that is present must not be empty")
}

func TestLogout_ClearsToken(t *testing.T) {
	var cleared sql.NullString
	calledFor := ""
	repo := &mockUserRepo{
		UpdateTokenFunc: func(ctx context.Context, username string, token sql.NullString) error {
			calledFor = username
			cleared = token
			return nil
		},
	}
	svc := NewUserService(repo)

	user := &models.User{Username: "test", Name: "test", Token: sql.NullString{String: "t", Valid: true}}
	resp, err := svc.Logout(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "test", resp.Username)
	assert.Equal(t, "test", calledFor)
	assert.False(t, cleared.Valid, "logout must null out the token")
}

func TestRegister_RepoError(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockUserRepo{
		ExistsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
			return false, wantErr
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "test", Password: "test", Name: "test",
	})
	assert.ErrorIs(t, err, wantErr)
}

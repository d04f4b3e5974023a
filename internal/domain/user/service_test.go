package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func newService(repo Repository) *Service {
	return NewService(repo, NewPasswordValidator(), slog.Default())
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{name: "valid", login: "alice", password: "correct1horse"},
		{name: "short login", login: "al", password: "correct1horse", wantErr: ErrInvalidInput},
		{name: "short password", login: "alice", password: "ab1", wantErr: ErrInvalidInput},
		{name: "password without digits", login: "alice", password: "onlyletters", wantErr: ErrInvalidInput},
		{name: "login with bad characters", login: "al ice!", password: "correct1horse", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.wantErr == nil {
				repo.On("Create", mock.Anything, tt.login, mock.AnythingOfType("string")).Return(1, nil)
			}
			svc := newService(repo)

			id, err := svc.Register(context.Background(), tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, id)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Register_StoresHashNotPassword(t *testing.T) {
	repo := new(MockRepository)
	var storedHash string
	repo.On("Create", mock.Anything, "alice", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { storedHash = args.String(2) }).
		Return(1, nil)
	svc := newService(repo)

	_, err := svc.Register(context.Background(), "alice", "correct1horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct1horse", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("correct1horse")))
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct1horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("FindByLogin", mock.Anything, "alice").Return(User{ID: 1, Login: "alice", Password: string(hash)}, nil)
	repo.On("FindByLogin", mock.Anything, "ghost").Return(User{}, ErrNotFound)
	svc := newService(repo)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "alice", "correct1horse")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidAuth)

	_, err = svc.Authenticate(ctx, "ghost", "correct1horse")
	assert.ErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Resolve(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByLogin", mock.Anything, "alice").Return(User{ID: 7, Login: "alice"}, nil)
	repo.On("FindByLogin", mock.Anything, "ghost").Return(User{}, ErrNotFound)
	svc := newService(repo)
	ctx := context.Background()

	id, err := svc.Resolve(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = svc.Resolve(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

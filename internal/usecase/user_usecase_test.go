package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"
	mock_interfaces "tallerpro/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newUserUseCaseForTest(t *testing.T) (*UserUseCase, *mock_interfaces.MockIUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIUserRepository(ctrl)
	uc := NewUserUseCase(repo, NewPINIndexer("test-key"), nil)
	uc.pinCost = bcrypt.MinCost
	uc.now = func() time.Time { return fixedNow }
	return uc, repo
}

func TestUserUseCase_CreateUser(t *testing.T) {
	valid := CreateUserInput{FullName: "Luis Ortiz", Email: " Luis@Taller.PR ", Role: "technician", PIN: "1234", HourlyRate: 15.5}

	t.Run("validations", func(t *testing.T) {
		uc, _ := newUserUseCaseForTest(t)
		cases := []struct {
			name   string
			mutate func(in *CreateUserInput)
			want   error
		}{
			{"missing name", func(in *CreateUserInput) { in.FullName = "" }, ErrInvalidUserInput},
			{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, ErrInvalidUserInput},
			{"negative rate", func(in *CreateUserInput) { in.HourlyRate = -1 }, ErrInvalidUserInput},
			{"unknown role", func(in *CreateUserInput) { in.Role = "owner" }, ErrInvalidRole},
			{"missing pin", func(in *CreateUserInput) { in.PIN = "" }, ErrPINRequired},
			{"short pin", func(in *CreateUserInput) { in.PIN = "12" }, ErrInvalidPINFormat},
		}
		for _, tc := range cases {
			in := valid
			tc.mutate(&in)
			_, err := uc.CreateUser(context.Background(), in)
			assert.ErrorIs(t, err, tc.want, tc.name)
		}
	})

	t.Run("pin already used by an active user", func(t *testing.T) {
		uc, repo := newUserUseCaseForTest(t)
		repo.EXPECT().ListActive(gomock.Any()).Return([]entities.User{{ID: "u-9", Active: true, PINHash: pinHash(t, "1234")}}, nil)

		_, err := uc.CreateUser(context.Background(), valid)
		require.ErrorIs(t, err, ErrPINInUse)
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, repo := newUserUseCaseForTest(t)
		repo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.User{}, interfaces.ErrDuplicate)

		_, err := uc.CreateUser(context.Background(), valid)
		require.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("success hashes pin and merges permissions", func(t *testing.T) {
		uc, repo := newUserUseCaseForTest(t)
		repo.EXPECT().ListActive(gomock.Any()).Return([]entities.User{{ID: "u-9", Active: true, PINHash: pinHash(t, "9999")}}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u entities.User) (entities.User, error) {
			return u, nil
		})

		in := valid
		in.Permissions = map[string]bool{"record_payments": true}
		u, err := uc.CreateUser(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, "luis@taller.pr", u.Email)
		assert.Equal(t, entities.RoleTechnician, u.Role)
		assert.True(t, u.Active)
		assert.NotEqual(t, "1234", u.PINHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte("1234")))
		assert.True(t, u.Permissions["change_status"])
		assert.True(t, u.Permissions["record_payments"])
		assert.False(t, u.Permissions["manage_users"])
		assert.Equal(t, fixedNow, u.CreatedAt)
		assert.Equal(t, NewPINIndexer("test-key").Index("1234"), u.PINIndex)
	})

	t.Run("pin of an indexed active user", func(t *testing.T) {
		uc, repo := newUserUseCaseForTest(t)
		pins := NewPINIndexer("test-key")
		repo.EXPECT().ListActive(gomock.Any()).Return([]entities.User{
			{ID: "u-8", Active: true, PINHash: pinHash(t, "5555"), PINIndex: pins.Index("5555")},
			{ID: "u-9", Active: true, PINHash: pinHash(t, "1234"), PINIndex: pins.Index("1234")},
		}, nil)

		_, err := uc.CreateUser(context.Background(), valid)
		require.ErrorIs(t, err, ErrPINInUse)
	})
}

func TestUserUseCase_SetActiveAndGet(t *testing.T) {
	uc, repo := newUserUseCaseForTest(t)

	_, err := uc.SetActive(context.Background(), " ", false)
	require.ErrorIs(t, err, ErrInvalidUserID)

	repo.EXPECT().SetActive(gomock.Any(), "u-404", false).Return(entities.User{}, nil)
	_, err = uc.SetActive(context.Background(), "u-404", false)
	require.ErrorIs(t, err, ErrUserNotFound)

	repo.EXPECT().SetActive(gomock.Any(), "u-1", false).Return(entities.User{ID: "u-1", Active: false}, nil)
	u, err := uc.SetActive(context.Background(), "u-1", false)
	require.NoError(t, err)
	assert.False(t, u.Active)

	repo.EXPECT().GetByID(gomock.Any(), "u-1").Return(entities.User{}, errors.New("db"))
	_, err = uc.GetByID(context.Background(), "u-1")
	require.EqualError(t, err, "db")

	repo.EXPECT().GetByID(gomock.Any(), "u-2").Return(entities.User{}, nil)
	_, err = uc.GetByID(context.Background(), "u-2")
	require.ErrorIs(t, err, ErrUserNotFound)

	repo.EXPECT().List(gomock.Any()).Return([]entities.User{{ID: "u-1"}, {ID: "u-2"}}, nil)
	all, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

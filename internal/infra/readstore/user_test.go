//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) FindUserByEmail(ctx context.Context, db psqlbuilder.DBTX, email string) (dbq.User, error) {
	args := m.Called(ctx, db, email)
	return args.Get(0).(dbq.User), args.Error(1)
}

func (m *MockUserReadQueries) FindUserByID(ctx context.Context, db psqlbuilder.DBTX, id uuid.UUID) (dbq.User, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(dbq.User), args.Error(1)
}

func TestFindByEmail(t *testing.T) {
	testUser := builder.NewUserBuilder().BuildInfra()

	tests := []struct {
		name       string
		email      string
		mockReturn dbq.User
		mockError  error
		wantUser   bool
		wantHash   string
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success",
			email:      testUser.Email,
			mockReturn: testUser,
			wantUser:   true,
			wantHash:   testUser.PasswordHash,
		},
		{
			name:       "user not found",
			email:      "missing@example.com",
			mockReturn: dbq.User{},
			mockError:  pgx.ErrNoRows,
			wantKind:   infra.KindNotFound,
		},
		{
			name:       "database error",
			email:      testUser.Email,
			mockReturn: dbq.User{},
			mockError:  assert.AnError,
			wantKind:   infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, tt.email).Return(tt.mockReturn, tt.mockError)

			store := NewUserReadStore(mockQueries, nil)
			view, hash, err := store.FindByEmail(context.Background(), tt.email)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				assert.Nil(t, view)
				assert.Empty(t, hash)
			} else {
				require.NoError(t, err)
				require.NotNil(t, view)
				assert.Equal(t, testUser.ID, view.ID)
				assert.Equal(t, testUser.Email, view.Email)
				assert.Equal(t, tt.wantHash, hash)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestFindByID(t *testing.T) {
	lastBooking := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	testUser := builder.NewUserBuilder().WithRole("admin").WithLastBookingAt(lastBooking).BuildInfra()

	t.Run("success", func(t *testing.T) {
		mockQueries := new(MockUserReadQueries)
		mockQueries.On("FindUserByID", mock.Anything, mock.Anything, testUser.ID).Return(testUser, nil)

		view, err := NewUserReadStore(mockQueries, nil).FindByID(context.Background(), testUser.ID)
		require.NoError(t, err)

		assert.Equal(t, "admin", view.Role)
		assert.Equal(t, "Grace", view.FirstName)
		assert.True(t, view.HasBookings)
		require.NotNil(t, view.LastBookingAt)
		assert.True(t, lastBooking.Equal(*view.LastBookingAt))
		mockQueries.AssertExpectations(t)
	})

	t.Run("user not found", func(t *testing.T) {
		id := uuid.New()
		mockQueries := new(MockUserReadQueries)
		mockQueries.On("FindUserByID", mock.Anything, mock.Anything, id).Return(dbq.User{}, pgx.ErrNoRows)

		view, err := NewUserReadStore(mockQueries, nil).FindByID(context.Background(), id)
		assert.Nil(t, view)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

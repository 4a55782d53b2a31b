//go:build unit

package user_test

import (
	"testing"
	"time"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {

		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		name, _ := user.NewName("Grace", "Hopper")
		email, _ := user.NewEmail("test@example.com")
		now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
		expected := user.NewUser(name, email, "hashed_password", user.RoleMember, now)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Grace Hopper", actual.Name().Full())
		assert.False(t, actual.HasBookings())
		assert.Nil(t, actual.LastBookingAt())
		assert.Equal(t, now, actual.CreatedAt())
	})

	t.Run("メールアドレス検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "有効なメールアドレスOK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "大文字混在OK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("  Dr.Who@Clinic.Example.COM ") },
			},
			{
				name:   "空のメールアドレスNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "無効な形式NG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "@なしNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("ロール検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "member ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("member") },
			},
			{
				name:   "admin ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "無効なロールNG",
				mutate: func(b *builder.UserBuilder) { b.WithRole("operator") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "空のロールNG",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("氏名検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "前後空白はトリムOK",
				mutate: func(b *builder.UserBuilder) { b.WithName("  Ada ", " Lovelace ") },
			},
			{
				name:   "名が空NG",
				mutate: func(b *builder.UserBuilder) { b.WithName(" ", "Lovelace") },
				errIs:  user.ErrInvalidName,
			},
			{
				name:   "姓が空NG",
				mutate: func(b *builder.UserBuilder) { b.WithName("Ada", "") },
				errIs:  user.ErrInvalidName,
			},
		})
	})
}

func TestEmail_Normalize(t *testing.T) {
	email, err := user.NewEmail("  Dr.Who@Clinic.Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "dr.who@clinic.example.com", email.Value())
}

func TestPassword(t *testing.T) {
	_, err := user.NewPassword("short")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("password123")
	require.NoError(t, err)
	assert.Equal(t, "password123", p.Value())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name string
		role user.Role
		min  user.Role
		want bool
	}{
		{"adminはmember権限を満たす", user.RoleAdmin, user.RoleMember, true},
		{"adminはadmin権限を満たす", user.RoleAdmin, user.RoleAdmin, true},
		{"memberはadmin権限を満たさない", user.RoleMember, user.RoleAdmin, false},
		{"未知のロールは何も満たさない", user.Role("receptionist"), user.RoleMember, false},
		{"未知の要求ロールは誰も満たさない", user.RoleAdmin, user.Role("owner"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.min))
		})
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

func newAuth(t *testing.T) (AuthService, UserService) {
	db := newTestDB(t)
	return &authService{db: db, cost: bcrypt.MinCost}, NewUserService(db)
}

func TestSignupRoles(t *testing.T) {
	auth, _ := newAuth(t)
	cases := []struct {
		requested string
		want      model.Role
	}{
		{"affiliate", model.RoleAffiliate},
		{"buyer", model.RoleBuyer},
		{"", model.RoleBuyer},
		{"admin", model.RoleBuyer},
		{"superuser", model.RoleBuyer},
	}
	for i, tc := range cases {
		u, err := auth.Signup(context.Background(), SignupInput{
			Name:     "Asha",
			Email:    "asha" + string(rune('a'+i)) + "@example.com",
			Password: "s3cret",
			Role:     tc.requested,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, u.Role, tc.requested)
		assert.True(t, u.IsActive)
		assert.False(t, u.AdFree)
	}
}

func TestSignupDuplicateAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)
	in := SignupInput{Name: "Ravi", Email: "ravi@example.com", Password: "hunter2"}

	u, err := auth.Signup(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", u.PasswordHash)

	_, err = auth.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrAccountExists)

	got, err := auth.Login(ctx, "ravi@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = auth.Login(ctx, "ravi@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	auth, _ := newAuth(t)
	age := 130
	gender := "robot"

	for name, in := range map[string]SignupInput{
		"email":  {Name: "X", Email: "nope", Password: "p"},
		"age":    {Name: "X", Email: "x@example.com", Password: "p", Age: &age},
		"gender": {Name: "X", Email: "y@example.com", Password: "p", Gender: &gender},
	} {
		_, err := auth.Signup(context.Background(), in)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestUpdateAndListUsers(t *testing.T) {
	ctx := context.Background()
	auth, users := newAuth(t)
	u, err := auth.Signup(ctx, SignupInput{Name: "Meera", Email: "Meera@Example.com", Password: "p", Role: "affiliate"})
	require.NoError(t, err)

	same, err := users.Update(ctx, u.ID, UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Meera", same.Name)

	adFree := true
	got, err := users.Update(ctx, u.ID, UserUpdate{Name: strPtr("Meera K"), AdFree: &adFree})
	require.NoError(t, err)
	assert.Equal(t, "Meera K", got.Name)
	assert.True(t, got.AdFree)

	_, err = users.Update(ctx, "f4a1b6e2-3c7d-4e8f-9a0b-1c2d3e4f5a6b", UserUpdate{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	list, err := users.List(ctx, "affiliate", "meera@")
	require.NoError(t, err)
	require.Len(t, list, 1)
	list, err = users.List(ctx, "buyer", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

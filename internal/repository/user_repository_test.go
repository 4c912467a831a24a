package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	id, err := users.Create(ctx, NewUser{
		Email:        "Anna@Example.com",
		PasswordHash: "hash",
		FirstName:    "Anna",
		LastName:     "Svensson",
		Phone:        "0701234567",
		Personnummer: "19900415-1234",
		Role:         "member",
	})
	require.NoError(t, err)

	u, err := users.GetByEmail(ctx, "ANNA@example.COM")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "anna@example.com", u.Email, "email is stored lowercased")
	assert.True(t, u.IsActive)
	assert.False(t, u.Address.Valid, "empty optional fields are NULL, not empty strings")

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)

	newMember(t, users, "anna@example.com", "19900415-1234")
	_, err := users.Create(context.Background(), NewUser{
		Email:        "anna@example.com",
		PasswordHash: "x",
		FirstName:    "Other",
		LastName:     "Person",
		Personnummer: "19850101-5678",
		Role:         "member",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserExistenceChecks(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	newMember(t, users, "anna@example.com", "19900415-1234")

	ok, err := users.EmailExists(ctx, "ANNA@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.PersonnummerExists(ctx, "19900415-1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.PersonnummerExists(ctx, "19990101-0000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	id := newMember(t, users, "anna@example.com", "19900415-1234")
	require.NoError(t, users.UpdateProfile(ctx, id, "Anna-Lena", "Svensson", "0317654321", "Nygatan 2"))

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Anna-Lena", u.FirstName)
	assert.Equal(t, "0317654321", u.Phone.String)
	assert.Equal(t, "Nygatan 2", u.Address.String)

	assert.ErrorIs(t, users.UpdateProfile(ctx, 9999, "A", "B", "", ""), ErrNotFound)
}

func TestUserSetActive(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	id := newMember(t, users, "anna@example.com", "19900415-1234")
	require.NoError(t, users.SetActive(ctx, id, false))

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	// Role-scoped toggle must not touch accounts of another role.
	assert.ErrorIs(t, users.SetActiveByRole(ctx, id, true, "admin"), ErrNotFound)
	require.NoError(t, users.SetActiveByRole(ctx, id, true, "member"))
}

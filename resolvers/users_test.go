package resolvers

import (
	"context"
	"testing"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(sub, email, role string) *auth.Claims {
	c := &auth.Claims{
		Email:            email,
		GivenName:        "Ana",
		FamilyName:       "Mora",
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
	}
	c.PublicMetadata.Role = role
	return c
}

func TestSyncIdentityProvisionsThenRefreshes(t *testing.T) {
	r, clock := newTestResolver(t)
	ctx := context.Background()

	id, err := r.SyncIdentity(ctx, claimsFor("user_ana", "Ana@Example.org", ""))
	require.NoError(t, err)
	assert.Equal(t, "user_ana", id.Subject)
	assert.Equal(t, models.RoleObserver, id.Role)
	assert.Equal(t, "ana@example.org", id.Email)
	assert.Equal(t, "Ana Mora", id.Name)

	me, err := r.Me(ctx, auth.RequestContext{Identity: id})
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.True(t, me.IsActive)
	assert.Equal(t, models.DefaultPreferences(), me.Preferences)
	assert.Equal(t, clock.t, *me.LastLogin)
	firstLogin := *me.LastLogin

	// The stored role wins over later claims.
	clock.advance(time.Hour)
	id, err = r.SyncIdentity(ctx, claimsFor("user_ana", "ana@example.org", "administrador"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleObserver, id.Role)

	me, err = r.Me(ctx, auth.RequestContext{Identity: id})
	require.NoError(t, err)
	assert.True(t, me.LastLogin.After(firstLogin))

	all, err := r.Users(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSyncIdentityRoleFromClaims(t *testing.T) {
	r, _ := newTestResolver(t)
	id, err := r.SyncIdentity(context.Background(), claimsFor("user_boss", "boss@example.org", "administrador"))
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())
}

func TestSyncIdentityRejectsInactiveUsers(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()
	id, err := r.SyncIdentity(ctx, claimsFor("user_gone", "gone@example.org", ""))
	require.NoError(t, err)

	_, err = r.UpdateUser(ctx, admin, id.UserID, models.UserInput{IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = r.SyncIdentity(ctx, claimsFor("user_gone", "gone@example.org", ""))
	assert.ErrorIs(t, err, auth.ErrInactiveUser)
}

func TestMeIsNullForAnonymous(t *testing.T) {
	r, _ := newTestResolver(t)
	me, err := r.Me(context.Background(), anon)
	require.NoError(t, err)
	assert.Nil(t, me)
}

func TestUserAdministration(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()
	in := models.UserInput{
		ClerkID:   ptr("user_new"),
		Email:     ptr("new@example.org"),
		FirstName: ptr("Luis"),
		LastName:  ptr("Vega"),
		Role:      ptr(models.RoleResearcher),
	}

	_, err := r.CreateUser(ctx, researcher, in)
	assert.True(t, models.IsAuth(err))

	u, err := r.CreateUser(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleResearcher, u.Role)
	assert.Equal(t, "user_admin", u.CreatedBy)

	in.ClerkID = ptr("user_other")
	_, err = r.CreateUser(ctx, admin, in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = r.User(ctx, anon, u.IDHex())
	assert.True(t, models.IsAuth(err))
	got, err := r.User(ctx, researcher, u.IDHex())
	require.NoError(t, err)
	assert.Equal(t, "Luis", got.FirstName)

	_, err = r.Users(ctx, researcher)
	assert.True(t, models.IsAuth(err))

	_, err = r.DeleteUser(ctx, researcher, u.IDHex())
	assert.True(t, models.IsAuth(err))
	ok, err := r.DeleteUser(ctx, admin, u.IDHex())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateUserSelfService(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()
	self, err := r.SyncIdentity(ctx, claimsFor("user_self", "self@example.org", ""))
	require.NoError(t, err)
	other, err := r.SyncIdentity(ctx, claimsFor("user_other", "other@example.org", ""))
	require.NoError(t, err)
	rc := auth.RequestContext{Identity: self}

	u, err := r.UpdateUser(ctx, rc, self.UserID, models.UserInput{Institution: ptr("INBio")})
	require.NoError(t, err)
	assert.Equal(t, "INBio", *u.Institution)

	_, err = r.UpdateUser(ctx, rc, self.UserID, models.UserInput{Role: ptr(models.RoleAdministrator)})
	assert.True(t, models.IsAuth(err))

	// Restating the current role is not a change.
	_, err = r.UpdateUser(ctx, rc, self.UserID, models.UserInput{Role: ptr(models.RoleObserver)})
	require.NoError(t, err)

	_, err = r.UpdateUser(ctx, rc, other.UserID, models.UserInput{Institution: ptr("x")})
	assert.True(t, models.IsAuth(err))

	promoted, err := r.UpdateUser(ctx, admin, other.UserID, models.UserInput{Role: ptr(models.RoleResearcher)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleResearcher, promoted.Role)
}

// path: resolvers/users.go
package resolvers

import (
	"context"
	"strings"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const unknownName = "N/A"

var byCreatedDesc = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// Me returns the caller's user record, or nil for anonymous callers.
func (r *Resolver) Me(ctx context.Context, rc auth.RequestContext) (*models.User, error) {
	if !rc.Authenticated() {
		return nil, nil
	}
	u, err := r.repo.Users().FindOne(ctx, bson.M{"clerkId": rc.Identity.Subject})
	if err != nil {
		return nil, r.storeErr("users.me", err)
	}
	return u, nil
}

func (r *Resolver) Users(ctx context.Context, rc auth.RequestContext) ([]models.User, error) {
	if _, err := auth.RequireAdmin(rc); err != nil {
		return nil, err
	}
	return list(ctx, r, r.repo.Users(), "users.list", store.Query{Sort: byCreatedDesc})
}

func (r *Resolver) User(ctx context.Context, rc auth.RequestContext, id string) (*models.User, error) {
	if _, err := auth.RequireAuth(rc); err != nil {
		return nil, err
	}
	return getByID(ctx, r, r.repo.Users(), "users.get", id)
}

func (r *Resolver) CreateUser(ctx context.Context, rc auth.RequestContext, in models.UserInput) (*models.User, error) {
	caller, err := auth.RequireAdmin(rc)
	if err != nil {
		return nil, err
	}
	u := newUser()
	in.Apply(u)
	if err := r.insertUser(ctx, u, caller.Subject); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser lets administrators edit any record and everyone else edit
// their own, without touching role, clerkId or isActive.
func (r *Resolver) UpdateUser(ctx context.Context, rc auth.RequestContext, id string, in models.UserInput) (*models.User, error) {
	caller, err := auth.RequireAuth(rc)
	if err != nil {
		return nil, err
	}
	u, oid, err := loadForUpdate(ctx, r, r.repo.Users(), "users.update", "user", id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		if u.ClerkID != caller.Subject {
			return nil, &models.AuthError{Reason: models.AuthForbidden}
		}
		if changes(in.Role, u.Role) || changes(in.ClerkID, u.ClerkID) || changes(in.IsActive, u.IsActive) {
			return nil, &models.AuthError{Reason: models.AuthForbidden}
		}
	}
	in.Apply(u)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := r.uniqueUser(ctx, u); err != nil {
		return nil, err
	}
	u.UpdatedAt = r.clock()
	if err := replace(ctx, r, r.repo.Users(), "users.update", "user", oid, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, rc auth.RequestContext, id string) (bool, error) {
	if _, err := auth.RequireAdmin(rc); err != nil {
		return false, err
	}
	return deleteByID(ctx, r, r.repo.Users(), "users.delete", id)
}

// SyncIdentity links verified claims to a local user: the first sighting of
// a subject creates the record, later ones refresh lastLogin. The returned
// identity carries the stored role.
func (r *Resolver) SyncIdentity(ctx context.Context, claims *auth.Claims) (*auth.Identity, error) {
	u, err := r.repo.Users().FindOne(ctx, bson.M{"clerkId": claims.Subject})
	if err != nil {
		return nil, r.storeErr("users.sync", err)
	}

	now := r.clock()
	if u == nil {
		u = newUser()
		u.ClerkID = claims.Subject
		u.Email = strings.ToLower(strings.TrimSpace(claims.Email))
		u.FirstName = claims.First()
		u.LastName = claims.Last()
		if u.FirstName == "" {
			u.FirstName, _, _ = strings.Cut(u.Email, "@")
		}
		if u.LastName == "" {
			u.LastName = unknownName
		}
		if role, ok := claims.ClaimedRole(); ok {
			u.Role = role
		}
		u.LastLogin = &now
		if err := r.insertUser(ctx, u, claims.Subject); err != nil {
			return nil, err
		}
		r.log.Info().Str("clerkId", u.ClerkID).Str("role", string(u.Role)).Msg("provisioned user")
	} else {
		if !u.IsActive {
			return nil, auth.ErrInactiveUser
		}
		u, err = r.repo.Users().Update(ctx, u.ID, bson.M{"lastLogin": now, "updatedAt": now})
		if err != nil {
			return nil, r.storeErr("users.sync", err)
		}
		if u == nil {
			return nil, notFound("user", claims.Subject)
		}
	}

	return &auth.Identity{
		UserID:  u.IDHex(),
		Subject: u.ClerkID,
		Email:   u.Email,
		Name:    u.FullName(),
		Role:    u.Role,
	}, nil
}

func newUser() *models.User {
	return &models.User{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleObserver,
		IsActive:    true,
		Preferences: models.DefaultPreferences(),
	}
}

func (r *Resolver) insertUser(ctx context.Context, u *models.User, createdBy string) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if err := r.uniqueUser(ctx, u); err != nil {
		return err
	}
	r.stamp(&u.Audit, createdBy)
	if err := r.repo.Users().Insert(ctx, u); err != nil {
		return r.storeErr("users.create", err)
	}
	return nil
}

func (r *Resolver) uniqueUser(ctx context.Context, u *models.User) error {
	keys := []struct{ field, value string }{{"clerkId", u.ClerkID}, {"email", u.Email}}
	for _, k := range keys {
		other, err := r.repo.Users().FindOne(ctx, bson.M{k.field: k.value, "_id": bson.M{"$ne": u.ID}})
		if err != nil {
			return r.storeErr("users.unique", err)
		}
		if other != nil {
			return models.Invalid(k.field, "%q already exists", k.value)
		}
	}
	return nil
}

func changes[T comparable](v *T, current T) bool {
	return v != nil && *v != current
}

package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/resolvers"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const secret = "test-secret"

type whoami struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject"`
	Role          string `json:"role"`
}

func newApp(t *testing.T, v auth.Verifier, p auth.Provisioner) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(OptionalAuth(v, p, zerolog.Nop()))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		rc := auth.FromContext(c.UserContext())
		out := whoami{Authenticated: rc.Authenticated()}
		if rc.Identity != nil {
			out.Subject = rc.Identity.Subject
			out.Role = string(rc.Identity.Role)
		}
		return c.JSON(out)
	})
	return app
}

func call(t *testing.T, app *fiber.App, authz string) whoami {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	if authz != "" {
		req.Header.Set(fiber.HeaderAuthorization, authz)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out whoami
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func mint(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	tok, err := auth.IssueToken(secret, auth.TokenRequest{
		Subject: sub, Email: sub + "@example.org", FirstName: "Test", Role: role, TTL: time.Hour,
	})
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestOptionalAuthProvisionsUser(t *testing.T) {
	v, err := auth.NewJWTVerifier(config.AuthConfig{JWTSecret: secret})
	require.NoError(t, err)
	repo := store.NewMemory()
	app := newApp(t, v, resolvers.New(repo))

	got := call(t, app, mint(t, "user_new", models.RoleResearcher))
	assert.Equal(t, whoami{Authenticated: true, Subject: "user_new", Role: "RESEARCHER"}, got)

	u, err := repo.Users().FindOne(context.Background(), bson.M{"clerkId": "user_new"})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "user_new@example.org", u.Email)
}

func TestOptionalAuthFailsOpen(t *testing.T) {
	v, err := auth.NewJWTVerifier(config.AuthConfig{JWTSecret: secret})
	require.NoError(t, err)
	app := newApp(t, v, resolvers.New(store.NewMemory()))

	assert.False(t, call(t, app, "").Authenticated)
	assert.False(t, call(t, app, "Bearer not.a.jwt").Authenticated)
	assert.False(t, call(t, app, "Basic dXNlcjpwYXNz").Authenticated)

	other, err := auth.IssueToken("another-secret", auth.TokenRequest{Subject: "user_x"})
	require.NoError(t, err)
	assert.False(t, call(t, app, "Bearer "+other).Authenticated)
}

func TestOptionalAuthWithoutVerifier(t *testing.T) {
	app := newApp(t, nil, nil)
	assert.False(t, call(t, app, mint(t, "user_x", models.RoleAdministrator)).Authenticated)
}

func TestOptionalAuthWithoutProvisioner(t *testing.T) {
	v, err := auth.NewJWTVerifier(config.AuthConfig{JWTSecret: secret})
	require.NoError(t, err)
	app := newApp(t, v, nil)

	got := call(t, app, mint(t, "user_x", ""))
	assert.Equal(t, whoami{Authenticated: true, Subject: "user_x", Role: "OBSERVER"}, got)
}

type failingProvisioner struct{ err error }

func (f failingProvisioner) SyncIdentity(context.Context, *auth.Claims) (*auth.Identity, error) {
	return nil, f.err
}

func TestOptionalAuthProvisioningFailure(t *testing.T) {
	v, err := auth.NewJWTVerifier(config.AuthConfig{JWTSecret: secret})
	require.NoError(t, err)

	for _, perr := range []error{auth.ErrInactiveUser, errors.New("store down")} {
		app := newApp(t, v, failingProvisioner{err: perr})
		assert.False(t, call(t, app, mint(t, "user_x", models.RoleAdministrator)).Authenticated, perr.Error())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(RequestIDKey, "req-1")
		return c.Next()
	})
	app.Use(RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	resp.Body.Close()

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ok", line["path"])
	assert.EqualValues(t, 200, line["status"])

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.EqualValues(t, 404, line["status"])
}

package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGates(t *testing.T) {
	anon := Anonymous()
	_, err := RequireAuth(anon)
	var authErr *models.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AuthUnauthenticated, authErr.Reason)

	_, err = RequireAdmin(anon)
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AuthUnauthenticated, authErr.Reason)

	observer := RequestContext{Identity: &Identity{Subject: "user_1", Role: models.RoleObserver}}
	id, err := RequireAuth(observer)
	require.NoError(t, err)
	assert.Equal(t, "user_1", id.Subject)

	_, err = RequireAdmin(observer)
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AuthForbidden, authErr.Reason)

	admin := RequestContext{Identity: &Identity{Subject: "user_2", Role: models.RoleAdministrator}}
	_, err = RequireAdmin(admin)
	require.NoError(t, err)
}

func TestRequestContextRoundTrip(t *testing.T) {
	assert.False(t, FromContext(context.Background()).Authenticated())

	rc := RequestContext{Identity: &Identity{Subject: "user_1"}}
	got := FromContext(WithRequest(context.Background(), rc))
	require.True(t, got.Authenticated())
	assert.Equal(t, "user_1", got.Identity.Subject)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def.ghi")
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, ok = BearerToken("  bearer xyz ")
	require.True(t, ok)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestHS256IssueAndVerify(t *testing.T) {
	v, err := NewJWTVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "biodiversity"})
	require.NoError(t, err)

	token, err := IssueToken("s3cret", TokenRequest{
		Subject:   "user_abc",
		Email:     "ana@example.org",
		FirstName: "Ana",
		LastName:  "Mora",
		Role:      models.RoleResearcher,
		Issuer:    "biodiversity",
		TTL:       time.Hour,
	})
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", claims.Subject)
	assert.Equal(t, "ana@example.org", claims.Email)
	assert.Equal(t, "Ana", claims.First())
	assert.Equal(t, "Mora", claims.Last())
	role, ok := claims.ClaimedRole()
	require.True(t, ok)
	assert.Equal(t, models.RoleResearcher, role)

	wrongIssuer, err := IssueToken("s3cret", TokenRequest{Subject: "user_abc", Issuer: "elsewhere"})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), wrongIssuer)
	assert.Error(t, err)

	forged, err := IssueToken("other", TokenRequest{Subject: "user_abc", Issuer: "biodiversity"})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), forged)
	assert.Error(t, err)

	expired, err := IssueToken("s3cret", TokenRequest{Subject: "user_abc", Issuer: "biodiversity", TTL: -time.Minute})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), expired)
	assert.Error(t, err)

	noSubject, err := IssueToken("s3cret", TokenRequest{Issuer: "biodiversity"})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), noSubject)
	assert.Error(t, err)
}

func TestRS256Verify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "idp.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	v, err := NewJWTVerifier(config.AuthConfig{PublicKeyFile: path})
	require.NoError(t, err)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user_rs",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	claims.PublicMetadata.Role = "administrador"
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	got, err := v.Verify(context.Background(), signed)
	require.NoError(t, err)
	role, ok := got.ClaimedRole()
	require.True(t, ok)
	assert.Equal(t, models.RoleAdministrator, role)

	// An HS256 token must not be accepted by an RS256 verifier.
	hs, err := IssueToken("whatever", TokenRequest{Subject: "user_rs"})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), hs)
	assert.Error(t, err)
}

func TestNewJWTVerifierWithoutKey(t *testing.T) {
	_, err := NewJWTVerifier(config.AuthConfig{})
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	v, err := NewJWTVerifier(config.AuthConfig{JWTSecret: "s3cret"})
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_abc"},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), noExp)
	assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)

	before := time.Now()
	token, err := IssueToken("s3cret", TokenRequest{Subject: "user_abc"})
	require.NoError(t, err)
	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, before.Add(MaxTokenTTL), claims.ExpiresAt.Time, time.Minute)

	expired, err := IssueToken("s3cret", TokenRequest{Subject: "user_abc", TTL: -time.Minute})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

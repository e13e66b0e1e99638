// path: auth/jwt.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoKey is returned by NewJWTVerifier when neither a shared secret nor a
// public key is configured.
var ErrNoKey = errors.New("auth: no JWT secret or public key configured")

// Claims accepts both the identity provider's session claims
// (public_metadata.role) and plain tokens minted by the token command.
type Claims struct {
	Email          string `json:"email,omitempty"`
	GivenName      string `json:"given_name,omitempty"`
	FamilyName     string `json:"family_name,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Role           string `json:"role,omitempty"`
	PublicMetadata struct {
		Role string `json:"role,omitempty"`
	} `json:"public_metadata,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) First() string {
	return firstNonEmpty(c.GivenName, c.FirstName)
}

func (c *Claims) Last() string {
	return firstNonEmpty(c.FamilyName, c.LastName)
}

// ClaimedRole maps the role claim onto a Role. Unknown or missing roles
// are reported as not ok.
func (c *Claims) ClaimedRole() (models.Role, bool) {
	return models.ParseRole(firstNonEmpty(c.Role, c.PublicMetadata.Role))
}

// Verifier turns a bearer token into claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// ErrInactiveUser is returned by a Provisioner for deactivated accounts; the
// request then proceeds anonymously.
var ErrInactiveUser = errors.New("user is deactivated")

// Provisioner links verified claims to a local user record.
type Provisioner interface {
	SyncIdentity(ctx context.Context, claims *Claims) (*Identity, error)
}

type JWTVerifier struct {
	method jwt.SigningMethod
	key    any
	issuer string
}

func NewJWTVerifier(cfg config.AuthConfig) (*JWTVerifier, error) {
	v := &JWTVerifier{issuer: cfg.Issuer}
	switch {
	case cfg.PublicKeyFile != "":
		pem, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("auth: read public key: %w", err)
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("auth: parse public key: %w", err)
		}
		v.method, v.key = jwt.SigningMethodRS256, key
	case cfg.JWTSecret != "":
		v.method, v.key = jwt.SigningMethodHS256, []byte(cfg.JWTSecret)
	default:
		return nil, ErrNoKey
	}
	return v, nil
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// MaxTokenTTL is the lifetime IssueToken uses when TokenRequest.TTL is zero.
// Verify rejects tokens without an exp claim.
const MaxTokenTTL = 365 * 24 * time.Hour

// TokenRequest describes a development token minted with a shared secret.
type TokenRequest struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Role      models.Role
	Issuer    string
	TTL       time.Duration
}

func IssueToken(secret string, req TokenRequest) (string, error) {
	if secret == "" {
		return "", ErrNoKey
	}
	now := time.Now()
	claims := Claims{
		Email:      req.Email,
		GivenName:  req.FirstName,
		FamilyName: req.LastName,
		Role:       string(req.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  req.Subject,
			Issuer:   req.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	ttl := req.TTL
	if ttl == 0 {
		ttl = MaxTokenTTL
	}
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

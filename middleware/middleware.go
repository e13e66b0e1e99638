// path: middleware/middleware.go
package middleware

import (
	"errors"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestIDKey is the fiber local the requestid middleware stores ids under.
const RequestIDKey = "requestid"

// OptionalAuth resolves the bearer token, if any, into the request's
// identity. Requests without a usable token continue anonymously; the
// resolvers decide what an anonymous caller may do.
func OptionalAuth(verifier auth.Verifier, prov auth.Provisioner, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := auth.Anonymous()
		if token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization)); ok && verifier != nil {
			rc = resolve(c, verifier, prov, token, log)
		}
		c.SetUserContext(auth.WithRequest(c.UserContext(), rc))
		return c.Next()
	}
}

func resolve(c *fiber.Ctx, verifier auth.Verifier, prov auth.Provisioner, token string, log zerolog.Logger) auth.RequestContext {
	ctx := c.UserContext()
	reqLog := log.With().Str("request_id", requestID(c)).Logger()

	claims, err := verifier.Verify(ctx, token)
	if err != nil {
		reqLog.Debug().Err(err).Msg("bearer token rejected")
		return auth.Anonymous()
	}
	if prov == nil {
		role, ok := claims.ClaimedRole()
		if !ok {
			role = models.RoleObserver
		}
		return auth.RequestContext{Identity: &auth.Identity{
			Subject: claims.Subject,
			Email:   claims.Email,
			Role:    role,
		}}
	}
	id, err := prov.SyncIdentity(ctx, claims)
	if err != nil {
		ev := reqLog.Warn()
		if errors.Is(err, auth.ErrInactiveUser) {
			ev = reqLog.Info()
		}
		ev.Err(err).Str("sub", claims.Subject).Msg("identity not provisioned")
		return auth.Anonymous()
	}
	return auth.RequestContext{Identity: id}
}

// RequestLogger writes one line per request.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

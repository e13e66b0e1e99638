// path: controllers/graphql.go
package controllers

import (
	"strings"

	"github.com/RodyMacay/biodiversity-monitoring/graph"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// HandleGraphQL serves POST /graphql with a JSON body and GET /graphql with
// query, variables and operationName in the query string. Resolver errors
// are reported inside the result with status 200.
func (h *Handlers) HandleGraphQL(c *fiber.Ctx) error {
	var req graph.Request
	switch c.Method() {
	case fiber.MethodGet:
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if vars := c.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return badReq(c, "invalid variables JSON")
			}
		}
	default:
		ct := c.Get(fiber.HeaderContentType)
		if ct != "" && !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).
				JSON(ErrorResp{OK: false, Error: "unsupported content type"})
		}
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return badReq(c, "invalid JSON")
		}
	}
	if strings.TrimSpace(req.Query) == "" {
		return badReq(c, "missing query")
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()
	res := h.Schema.Do(ctx, req)
	if res.HasErrors() {
		h.Log.Debug().Int("errors", len(res.Errors)).Str("operation", req.OperationName).Msg("graphql errors")
	}
	return c.JSON(res)
}

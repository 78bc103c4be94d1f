// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the acting staff user for the request. The admin API
// sits behind the organization's SSO proxy, which forwards the
// authenticated user's numeric id in the X-User-ID header; an upstream
// auth layer may also have placed it in the Gin context under "userID".
//
// Every mutation in the ticket workflow is attributed in the audit trail,
// so requests that cannot be attributed to a user are rejected with 401
// before any handler or service code runs.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// actorKey is the Gin context key under which the resolved actor id is
// stored. The string form is also stored under "userID" so the access
// logger and rate limiter key on the same identity.
const actorKey = "actorID"

// actorHeader carries the authenticated user's id, set by the SSO proxy.
const actorHeader = "X-User-ID"

// ActorID returns the acting user's id resolved for this request.
// It reports false when no actor was resolved (route not behind
// ActorRequired, or resolution failed).
func ActorID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(actorKey); ok {
		if id, ok := v.(uint); ok && id > 0 {
			return id, true
		}
	}
	return 0, false
}

// ActorRequired resolves the acting user from the context or the
// X-User-ID header and stores it for downstream handlers. Requests
// without a resolvable positive numeric actor id are rejected with 401;
// failure to resolve an actor is an authorization error, not a
// validation error.
func ActorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if v, ok := c.Get("userID"); ok {
			if s, ok := v.(string); ok {
				raw = s
			}
		}
		if raw == "" {
			raw = strings.TrimSpace(c.GetHeader(actorHeader))
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if raw == "" || err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "unauthorized",
				"message":    "no authenticated user for this request",
			})
			return
		}

		c.Set(actorKey, uint(id))
		c.Set("userID", raw)
		c.Next()
	}
}

package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextTokenID  = "tokenID"
	ContextTokenExp = "tokenExp"
)

// AuthMiddleware accepts a non-revoked access token. The role claim is taken
// as issued; it catches up with the store on the next refresh.
func AuthMiddleware(issuer *token.Issuer, revoked revocation.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, httperr.Unauthorized("missing_authorization_header", "Authorization header is required."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, httperr.Unauthorized("invalid_authorization_header", "Authorization header must be a Bearer token."))
			return
		}

		claims, err := issuer.Parse(parts[1], token.TypeAccess)
		if err != nil {
			msg := "Token is invalid."
			if errors.Is(err, token.ErrExpired) {
				msg = "Token has expired."
			}
			httperr.Abort(c, httperr.Unauthorized("invalid_token", msg))
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if isRevoked {
			httperr.Abort(c, httperr.Revoked("Token has been revoked."))
			return
		}

		userID, _ := claims.UserID()
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, identity.Role(claims.Role))
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextTokenExp, claims.ExpiresAtTime())

		c.Next()
	}
}

// OptionalAuth authenticates when an Authorization header is present and
// lets anonymous requests through untouched.
func OptionalAuth(issuer *token.Issuer, revoked revocation.Store) gin.HandlerFunc {
	auth := AuthMiddleware(issuer, revoked)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		auth(c)
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, httperr.Forbidden("insufficient_role", "You do not have permission to perform this action."))
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func Role(c *gin.Context) identity.Role {
	v, _ := c.Get(ContextUserRole)
	r, _ := v.(identity.Role)
	return r
}

func TokenID(c *gin.Context) string {
	return c.GetString(ContextTokenID)
}

func TokenExpiry(c *gin.Context) time.Time {
	return c.GetTime(ContextTokenExp)
}

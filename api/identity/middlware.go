package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/patrol-api/api/render"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClaims is the key used to store token claims in the Gin context.
	ContextClaims = "claims"
)

// Authoriz rejects requests without a valid bearer token.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			render.Abort(c, http.StatusUnauthorized, render.CodeUnauthorized, "missing bearer token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			render.Abort(c, http.StatusUnauthorized, render.CodeUnauthorized, "malformed authorization header")
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			render.Abort(c, http.StatusUnauthorized, render.CodeUnauthorized, "invalid token")
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

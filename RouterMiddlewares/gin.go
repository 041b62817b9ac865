package routermiddlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jwks "github.com/tyler-technologies/go-jwks"
)

// ClaimsKey is the context key the middlewares store validated claims under.
const ClaimsKey = "claims"

// Gin middleware for adding bearer token validation into the request
// pipeline. The validator is shared across requests.
func Gin(v *jwks.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := v.ValidateBearerToken(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

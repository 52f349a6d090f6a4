package middleware

import (
	"net/http"
	"strings"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/LeonardoCto/myeconomyback/internal/token"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

const errAccessDenied = "Access denied"

// Auth is the admission gate for protected routes. It verifies the Bearer
// token and resolves the embedded email to a stored user id, attaching the
// resulting Principal to the gin context.
//
// A missing header, an invalid or expired token, and an unknown email all
// produce the same 403 response, so the endpoint cannot be used as an oracle
// for credential guessing.
func Auth(tokens *token.Manager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errAccessDenied})
			return
		}

		email, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errAccessDenied})
			return
		}

		// The only blocking step of the gate. Unknown email means the account
		// was removed after the token was signed, or the token survived a
		// secret rotation.
		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errAccessDenied})
			return
		}

		SetPrincipal(c, domain.Principal{Email: user.Email, UserID: user.ID})
		c.Next()
	}
}

// SetPrincipal attaches a resolved identity to the gin context. Exposed so
// handler tests can stand in for the Auth middleware.
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// Principal returns the identity attached by Auth. It is only meaningful on
// routes behind the Auth middleware.
func Principal(c *gin.Context) domain.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(domain.Principal)
	return principal
}
